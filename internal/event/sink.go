// Package event delivers cart notifications and snapshot updates to whoever
// is listening: the HTTP response, the log, or Kafka.
package event

import (
	"context"
	"sync"

	"github.com/mad-madhu-001/ecommerce/internal/domain"
)

// Sink receives what the cart store emits. key is the snapshot key of the
// cart the event belongs to. Delivery is best-effort: sinks never return
// errors to the cart store.
type Sink interface {
	Notify(ctx context.Context, key string, n domain.Notification)
	CartUpdated(ctx context.Context, key string, cart domain.Cart)
}

// Discard is a Sink that drops everything.
type Discard struct{}

// Notify drops n.
func (Discard) Notify(context.Context, string, domain.Notification) {}

// CartUpdated drops cart.
func (Discard) CartUpdated(context.Context, string, domain.Cart) {}

// Recorder collects notifications in emission order. The HTTP layer uses one
// per request to echo notifications back to the UI.
type Recorder struct {
	mu            sync.Mutex
	notifications []domain.Notification
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Notify records n.
func (r *Recorder) Notify(_ context.Context, _ string, n domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

// CartUpdated is a no-op.
func (r *Recorder) CartUpdated(context.Context, string, domain.Cart) {}

// Notifications returns a copy of the recorded notifications, never nil.
func (r *Recorder) Notifications() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

// Multi fans every event out to each sink in order.
type Multi []Sink

// Notify forwards n to every sink.
func (m Multi) Notify(ctx context.Context, key string, n domain.Notification) {
	for _, s := range m {
		s.Notify(ctx, key, n)
	}
}

// CartUpdated forwards cart to every sink.
func (m Multi) CartUpdated(ctx context.Context, key string, cart domain.Cart) {
	for _, s := range m {
		s.CartUpdated(ctx, key, cart)
	}
}
