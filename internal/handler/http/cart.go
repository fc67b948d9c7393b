package http

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mad-madhu-001/ecommerce/internal/domain"
	"github.com/mad-madhu-001/ecommerce/internal/event"
	"github.com/mad-madhu-001/ecommerce/internal/repository"
	"github.com/mad-madhu-001/ecommerce/internal/service"
	apperrors "github.com/mad-madhu-001/ecommerce/pkg/errors"
	"github.com/mad-madhu-001/ecommerce/pkg/httputil"
	"github.com/mad-madhu-001/ecommerce/pkg/middleware"
	"github.com/mad-madhu-001/ecommerce/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints. Each request gets its
// own CartStore keyed by the session, so nothing is shared between requests
// except the key-value store.
type CartHandler struct {
	kv      repository.KeyValueStore
	catalog *service.CatalogService
	sink    event.Sink
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler. A nil sink discards events
// beyond the per-request notifications echoed in responses.
func NewCartHandler(kv repository.KeyValueStore, catalog *service.CatalogService, sink event.Sink, logger *slog.Logger) *CartHandler {
	if sink == nil {
		sink = event.Discard{}
	}
	return &CartHandler{
		kv:      kv,
		catalog: catalog,
		sink:    sink,
		logger:  logger,
	}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for the explicit add path. Size and
// color are checked by the cart store so a missing choice yields its
// notification.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity" validate:"omitempty,gte=1,lte=99"`
}

// QuickAddRequest is the JSON request body for adding a product's default
// variant.
type QuickAddRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// UpdateQuantityRequest is the JSON request body for updating a line. Zero or
// less removes the line. Quantity must be present.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,lte=99"`
}

// --- Responses ---

// CartResponse is the cart state after a request, with the notifications the
// request emitted.
type CartResponse struct {
	Items         []domain.CartItem     `json:"items"`
	Summary       domain.OrderSummary   `json:"summary"`
	Notifications []domain.Notification `json:"notifications"`
}

type failureDetails struct {
	Notifications []domain.Notification `json:"notifications"`
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	store, rec := h.open(r)
	h.respond(w, r, store, rec)
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := decode(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.catalog.Product(r.Context(), req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	store, rec := h.open(r)
	if err := store.AddSelection(r.Context(), product, req.Size, req.Color, req.Quantity); err != nil {
		h.fail(w, r, err, rec)
		return
	}
	h.respond(w, r, store, rec)
}

// QuickAdd handles POST /api/v1/cart/items/quick
func (h *CartHandler) QuickAdd(w http.ResponseWriter, r *http.Request) {
	var req QuickAddRequest
	if err := decode(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	product, err := h.catalog.Product(r.Context(), req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	store, rec := h.open(r)
	if err := store.QuickAdd(r.Context(), product); err != nil {
		h.fail(w, r, err, rec)
		return
	}
	h.respond(w, r, store, rec)
}

// UpdateItemQuantity handles PUT /api/v1/cart/items/{productId}/{size}/{color}
func (h *CartHandler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := decode(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	key := itemKey(r)
	store, rec := h.open(r)
	if err := store.UpdateQuantity(r.Context(), key.ProductID, key.Size, key.Color, *req.Quantity); err != nil {
		h.fail(w, r, err, rec)
		return
	}
	h.respond(w, r, store, rec)
}

// RemoveItem handles DELETE /api/v1/cart/items/{productId}/{size}/{color}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	key := itemKey(r)
	store, rec := h.open(r)
	if err := store.RemoveFromCart(r.Context(), key.ProductID, key.Size, key.Color); err != nil {
		h.fail(w, r, err, rec)
		return
	}
	h.respond(w, r, store, rec)
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	store, rec := h.open(r)
	if err := store.ClearCart(r.Context()); err != nil {
		h.fail(w, r, err, rec)
		return
	}
	h.respond(w, r, store, rec)
}

// --- Helpers ---

// open builds the cart store for the request's session. Notifications go to
// the recorder for the response and to the configured sink.
func (h *CartHandler) open(r *http.Request) (*service.CartStore, *event.Recorder) {
	rec := event.NewRecorder()
	key := repository.SessionCartKey(middleware.SessionIDFromRequest(r))
	return service.NewCartStore(h.kv, key, event.Multi{rec, h.sink}, h.logger), rec
}

func (h *CartHandler) respond(w http.ResponseWriter, r *http.Request, store *service.CartStore, rec *event.Recorder) {
	ctx := r.Context()
	cart := store.Items(ctx)
	httputil.WriteData(w, http.StatusOK, CartResponse{
		Items:         cart.Items,
		Summary:       cart.Summarize(),
		Notifications: rec.Notifications(),
	})
}

// fail writes err, attaching any notifications emitted before the failure.
func (h *CartHandler) fail(w http.ResponseWriter, r *http.Request, err error, rec *event.Recorder) {
	notes := rec.Notifications()
	if len(notes) == 0 {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteErrorDetails(w, r, err, failureDetails{Notifications: notes}, h.logger)
}

// decode reads and validates a JSON body. Malformed JSON is reported as
// invalid input; field failures keep their per-field messages.
func decode(r *http.Request, dst any) error {
	err := validator.DecodeAndValidate(r, dst)
	if err == nil {
		return nil
	}
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		return err
	}
	return apperrors.InvalidInput("invalid request body: " + err.Error())
}

// itemKey reads the line identity from the path. Size and color may contain
// escaped spaces ("Sky%20Blue").
func itemKey(r *http.Request) domain.ItemKey {
	return domain.ItemKey{
		ProductID: pathParam(r, "productId"),
		Size:      pathParam(r, "size"),
		Color:     pathParam(r, "color"),
	}
}

func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if !strings.Contains(raw, "%") {
		return raw
	}
	v, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return v
}
