package http

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/mad-madhu-001/ecommerce/internal/domain"
	"github.com/mad-madhu-001/ecommerce/internal/service"
	apperrors "github.com/mad-madhu-001/ecommerce/pkg/errors"
	"github.com/mad-madhu-001/ecommerce/pkg/httputil"
	"github.com/mad-madhu-001/ecommerce/pkg/pagination"
)

// CatalogHandler handles HTTP requests for the read-only catalog.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// ProductListResponse echoes the normalized query next to the page so a
// client can keep its URL in sync with what was evaluated.
type ProductListResponse struct {
	Query    domain.Query                      `json:"query"`
	Products pagination.Result[domain.Product] `json:"products"`
}

// ProductResponse adds the slug and derived pricing to a product.
type ProductResponse struct {
	domain.Product
	Slug            string `json:"slug"`
	DiscountPercent int    `json:"discount_percent"`
	CanQuickAdd     bool   `json:"can_quick_add"`
}

// ListProducts handles GET /api/v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	result := h.service.Search(r.Context(), q, pagination.FromRequest(r))
	httputil.WriteData(w, http.StatusOK, ProductListResponse{Query: q, Products: result})
}

// GetProduct handles GET /api/v1/products/{productId}. The path segment may
// also be the product's slug.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Product(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, ProductResponse{
		Product:         p,
		Slug:            h.service.Slug(p.ID),
		DiscountPercent: p.DiscountPercent(),
		CanQuickAdd:     p.CanQuickAdd(),
	})
}

// ListCategories handles GET /api/v1/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.service.Categories(r.Context()))
}

// CategoryProducts handles GET /api/v1/categories/{categoryId}/products
func (h *CatalogHandler) CategoryProducts(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()
	// The path selects the category; a category query parameter is ignored.
	v.Del("category")

	q, err := parseQuery(v)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	page, err := h.service.CategoryPage(r.Context(), chi.URLParam(r, "categoryId"), q, pagination.FromValues(v))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, page)
}

// Collections handles GET /api/v1/collections
func (h *CatalogHandler) Collections(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.service.Collections(r.Context()))
}

// parseQuery maps query parameters onto a catalog query. Unknown sort and
// price tokens fall back to their defaults; an unknown category is rejected
// since it can never match.
func parseQuery(v url.Values) (domain.Query, error) {
	q := domain.Query{
		SearchText:  v.Get("search"),
		Subcategory: v.Get("subcategory"),
		PriceRange:  v.Get("price"),
		SortKey:     domain.ParseSortKey(v.Get("sort")),
	}
	if _, ok := domain.ParsePriceRange(q.PriceRange); !ok {
		q.PriceRange = domain.PriceAll
	}

	switch c := v.Get("category"); c {
	case "", "all":
	default:
		if !domain.IsValidCategory(c) {
			return domain.Query{}, apperrors.InvalidInputf("unknown category %q", c)
		}
		q.Category = domain.Category(c)
	}
	return q, nil
}
