package event

import (
	"context"
	"log/slog"

	"github.com/mad-madhu-001/ecommerce/internal/domain"
	pkgkafka "github.com/mad-madhu-001/ecommerce/pkg/kafka"
	"github.com/mad-madhu-001/ecommerce/pkg/logger"
)

// Kafka topics for storefront cart events.
const (
	TopicCartNotifications = "storefront.cart.notifications"
	TopicCartUpdated       = "storefront.cart.updated"
)

// Envelope constants.
const (
	SourceStorefront = "storefront"
	EventCartUpdated = "cart.updated"
)

// Publisher is the part of pkg/kafka.Producer the sink needs.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// NotificationData is the payload of a notification event.
type NotificationData struct {
	CartKey     string `json:"cart_key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

// CartUpdatedData is the payload of a cart.updated event.
type CartUpdatedData struct {
	CartKey    string            `json:"cart_key"`
	Items      []domain.CartItem `json:"items"`
	TotalItems int               `json:"total_items"`
	TotalPrice int64             `json:"total_price"`
}

// KafkaSink publishes notifications and snapshots to Kafka. Publish failures
// are logged and otherwise ignored.
type KafkaSink struct {
	publisher Publisher
	logger    *slog.Logger
}

// NewKafkaSink creates a sink publishing through p.
func NewKafkaSink(p Publisher, l *slog.Logger) *KafkaSink {
	return &KafkaSink{publisher: p, logger: l}
}

// Notify publishes n to TopicCartNotifications with the notification kind as
// event type.
func (s *KafkaSink) Notify(ctx context.Context, key string, n domain.Notification) {
	data := NotificationData{
		CartKey:     key,
		Title:       n.Title,
		Description: n.Description,
		Variant:     n.Variant,
	}
	s.publish(ctx, TopicCartNotifications, string(n.Kind), key, data)
}

// CartUpdated publishes the full snapshot to TopicCartUpdated.
func (s *KafkaSink) CartUpdated(ctx context.Context, key string, cart domain.Cart) {
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	data := CartUpdatedData{
		CartKey:    key,
		Items:      items,
		TotalItems: cart.TotalItems(),
		TotalPrice: cart.TotalPrice(),
	}
	s.publish(ctx, TopicCartUpdated, EventCartUpdated, key, data)
}

func (s *KafkaSink) publish(ctx context.Context, topic, eventType, key string, data any) {
	log := logger.WithContext(ctx, s.logger)

	var opts []pkgkafka.Option
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		opts = append(opts, pkgkafka.WithCorrelationID(id))
	}
	if id := logger.SessionIDFromContext(ctx); id != "" {
		opts = append(opts, pkgkafka.WithSessionID(id))
	}

	evt, err := pkgkafka.NewEvent(SourceStorefront, eventType, key, data, opts...)
	if err != nil {
		log.ErrorContext(ctx, "failed to build event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
		return
	}
	if err := s.publisher.Publish(ctx, topic, evt); err != nil {
		log.WarnContext(ctx, "failed to publish cart event",
			slog.String("topic", topic),
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
	}
}
