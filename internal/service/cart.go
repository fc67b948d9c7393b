package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mad-madhu-001/ecommerce/internal/domain"
	"github.com/mad-madhu-001/ecommerce/internal/event"
	"github.com/mad-madhu-001/ecommerce/internal/repository"
	apperrors "github.com/mad-madhu-001/ecommerce/pkg/errors"
	"github.com/mad-madhu-001/ecommerce/pkg/logger"
	"github.com/mad-madhu-001/ecommerce/pkg/tracing"
)

const tracerName = "github.com/mad-madhu-001/ecommerce/internal/service"

// CartStore owns the cart of one browsing session. It restores the persisted
// snapshot on first use and writes the full snapshot after every mutation.
//
// A CartStore is not safe for concurrent use.
type CartStore struct {
	kv     repository.KeyValueStore
	key    string
	sink   event.Sink
	logger *slog.Logger

	cart   domain.Cart
	loaded bool
}

// NewCartStore creates a cart store persisting under key. A nil sink
// discards events.
func NewCartStore(kv repository.KeyValueStore, key string, sink event.Sink, logger *slog.Logger) *CartStore {
	if sink == nil {
		sink = event.Discard{}
	}
	return &CartStore{
		kv:     kv,
		key:    key,
		sink:   sink,
		logger: logger,
	}
}

// Key returns the snapshot key the store persists under.
func (s *CartStore) Key() string {
	return s.key
}

// load restores the snapshot once. A missing, unreadable, or malformed
// snapshot leaves the cart empty.
func (s *CartStore) load(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true

	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		logger.WithContext(ctx, s.logger).WarnContext(ctx, "cart snapshot unreadable, starting empty",
			slog.String("cart_key", s.key),
			slog.String("error", err.Error()),
		)
		return
	}
	if !ok {
		return
	}

	items, err := decodeSnapshot(raw)
	if err != nil {
		logger.WithContext(ctx, s.logger).WarnContext(ctx, "cart snapshot malformed, starting empty",
			slog.String("cart_key", s.key),
			slog.String("error", err.Error()),
		)
		return
	}
	s.cart = domain.Cart{Items: items}
}

// commit persists next and makes it current. On a write failure the current
// cart is left unchanged.
func (s *CartStore) commit(ctx context.Context, op string, next domain.Cart) error {
	ctx, span := tracing.Tracer(tracerName).Start(ctx, "cart."+op,
		trace.WithAttributes(
			attribute.String("cart.key", s.key),
			attribute.Int("cart.lines", len(next.Items)),
		),
	)
	defer span.End()

	raw, err := encodeSnapshot(next.Items)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "encode snapshot")
		return apperrors.Internal(fmt.Errorf("encode cart snapshot: %w", err))
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist snapshot")
		return fmt.Errorf("persist cart %s: %w", s.key, err)
	}

	s.cart = next
	cartMutationsTotal.WithLabelValues(op).Inc()
	s.sink.CartUpdated(ctx, s.key, next)
	return nil
}

func (s *CartStore) notify(ctx context.Context, n domain.Notification) {
	s.sink.Notify(ctx, s.key, n)
}

// AddToCart merges quantity units of the selection into the cart. Size and
// color are taken as given.
func (s *CartStore) AddToCart(ctx context.Context, product domain.Product, size, color string, quantity int) error {
	if quantity < 1 {
		return apperrors.InvalidInputf("quantity must be at least 1, got %d", quantity)
	}
	s.load(ctx)

	if err := s.commit(ctx, opAdd, s.cart.Add(product, size, color, quantity)); err != nil {
		return err
	}

	s.notify(ctx, domain.Notification{
		Kind:        domain.NotificationItemAdded,
		Title:       "Added to Cart",
		Description: fmt.Sprintf("%s has been added to your cart.", product.Name),
		Variant:     domain.VariantDefault,
	})
	logger.WithContext(ctx, s.logger).InfoContext(ctx, "item added to cart",
		slog.String("cart_key", s.key),
		slog.String("product_id", product.ID),
		slog.String("size", size),
		slog.String("color", color),
		slog.Int("quantity", quantity),
	)
	return nil
}

// AddSelection is the product page add path: the shopper must have chosen a
// size and a color, and both must be among the product's options when it
// declares any. A missing choice emits a destructive notification.
func (s *CartStore) AddSelection(ctx context.Context, product domain.Product, size, color string, quantity int) error {
	if size == "" {
		s.notify(ctx, domain.Notification{
			Kind:        domain.NotificationSelectionMissing,
			Title:       "Please select a size",
			Description: "Choose your preferred size before adding to cart.",
			Variant:     domain.VariantDestructive,
		})
		return apperrors.InvalidInput("size is required")
	}
	if color == "" {
		s.notify(ctx, domain.Notification{
			Kind:        domain.NotificationSelectionMissing,
			Title:       "Please select a color",
			Description: "Choose your preferred color before adding to cart.",
			Variant:     domain.VariantDestructive,
		})
		return apperrors.InvalidInput("color is required")
	}
	if len(product.Sizes) > 0 && !product.HasSize(size) {
		return apperrors.InvalidInputf("size %q is not available for %s", size, product.Name)
	}
	if len(product.Colors) > 0 && !product.HasColor(color) {
		return apperrors.InvalidInputf("color %q is not available for %s", color, product.Name)
	}
	return s.AddToCart(ctx, product, size, color, quantity)
}

// QuickAdd adds one unit of the product's first size and first color. It
// refuses products that are out of stock or lack sizes or colors.
func (s *CartStore) QuickAdd(ctx context.Context, product domain.Product) error {
	if !product.CanQuickAdd() {
		if !product.InStock {
			return apperrors.InvalidInputf("%s is out of stock", product.Name)
		}
		return apperrors.InvalidInputf("%s needs a size and color selection", product.Name)
	}
	return s.AddToCart(ctx, product, product.Sizes[0], product.Colors[0], 1)
}

// RemoveFromCart deletes the matching line. A missing line is a no-op, but
// the snapshot is still written and the notification still emitted.
func (s *CartStore) RemoveFromCart(ctx context.Context, productID, size, color string) error {
	s.load(ctx)

	key := domain.ItemKey{ProductID: productID, Size: size, Color: color}
	if err := s.commit(ctx, opRemove, s.cart.Remove(key)); err != nil {
		return err
	}

	s.notify(ctx, domain.Notification{
		Kind:        domain.NotificationItemRemoved,
		Title:       "Removed from Cart",
		Description: "Item has been removed from your cart.",
		Variant:     domain.VariantDefault,
	})
	return nil
}

// UpdateQuantity sets the quantity of the matching line. A quantity of zero
// or less removes the line exactly as RemoveFromCart does.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID, size, color string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, productID, size, color)
	}
	s.load(ctx)

	key := domain.ItemKey{ProductID: productID, Size: size, Color: color}
	return s.commit(ctx, opUpdate, s.cart.SetQuantity(key, quantity))
}

// ClearCart removes every line.
func (s *CartStore) ClearCart(ctx context.Context) error {
	s.load(ctx)

	if err := s.commit(ctx, opClear, s.cart.Clear()); err != nil {
		return err
	}

	s.notify(ctx, domain.Notification{
		Kind:        domain.NotificationCartCleared,
		Title:       "Cart Cleared",
		Description: "All items have been removed from your cart.",
		Variant:     domain.VariantDefault,
	})
	return nil
}

// Items returns a copy of the current cart. Items is never nil.
func (s *CartStore) Items(ctx context.Context) domain.Cart {
	s.load(ctx)
	items := make([]domain.CartItem, len(s.cart.Items))
	copy(items, s.cart.Items)
	return domain.Cart{Items: items}
}

// TotalPrice returns the sum of price times quantity.
func (s *CartStore) TotalPrice(ctx context.Context) int64 {
	s.load(ctx)
	return s.cart.TotalPrice()
}

// TotalItems returns the total number of units.
func (s *CartStore) TotalItems(ctx context.Context) int {
	s.load(ctx)
	return s.cart.TotalItems()
}

// Summary returns the order summary for the current cart.
func (s *CartStore) Summary(ctx context.Context) domain.OrderSummary {
	s.load(ctx)
	return s.cart.Summarize()
}

func encodeSnapshot(items []domain.CartItem) (string, error) {
	if items == nil {
		items = []domain.CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeSnapshot(raw string) ([]domain.CartItem, error) {
	var items []domain.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	return items, nil
}
