package kafka

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cart event delivery metrics. Both counters carry the event type so a
// dashboard can tell snapshot traffic from notification traffic on a
// shared topic.
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_events_published_total",
			Help: "Cart events acknowledged by the broker",
		},
		[]string{"topic", "event_type"},
	)

	EventPublishFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_event_publish_failures_total",
			Help: "Cart events the broker rejected or never acknowledged",
		},
		[]string{"topic", "event_type"},
	)

	// Writes are batched, so this includes time spent waiting for the batch.
	EventPublishSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_event_publish_seconds",
			Help:    "Wall time of one cart event write, batching included",
			Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"topic"},
	)
)
