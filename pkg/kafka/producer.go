// Package kafka publishes storefront events with trace context attached.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
)

// Message header names.
const (
	HeaderEventType     = "event_type"
	HeaderSource        = "source"
	HeaderCorrelationID = "correlation_id"
	HeaderSessionID     = "session_id"
)

// ProducerConfig holds Kafka producer configuration.
type ProducerConfig struct {
	Brokers      []string
	BatchSize    int
	BatchTimeout time.Duration
	WriteTimeout time.Duration
	DialTimeout  time.Duration
}

// DefaultProducerConfig returns settings for a low-volume synchronous
// producer.
func DefaultProducerConfig(brokers []string) ProducerConfig {
	return ProducerConfig{
		Brokers:      brokers,
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
		DialTimeout:  3 * time.Second,
	}
}

// MessageWriter is the part of *kafka.Writer the producer needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer writes events to Kafka topics.
type Producer struct {
	writer      MessageWriter
	brokers     []string
	dialTimeout time.Duration
	logger      *slog.Logger
}

// NewProducer creates a producer backed by a kafka-go writer.
func NewProducer(cfg ProducerConfig, logger *slog.Logger) *Producer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchSize:              cfg.BatchSize,
		BatchTimeout:           cfg.BatchTimeout,
		WriteTimeout:           cfg.WriteTimeout,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
	p := NewProducerWithWriter(w, cfg.Brokers, logger)
	p.dialTimeout = cfg.DialTimeout
	return p
}

// NewProducerWithWriter creates a producer around an existing writer.
func NewProducerWithWriter(w MessageWriter, brokers []string, logger *slog.Logger) *Producer {
	return &Producer{writer: w, brokers: brokers, logger: logger}
}

// Publish writes e to topic.
func (p *Producer) Publish(ctx context.Context, topic string, e *Event) error {
	msg, err := newMessage(ctx, topic, e)
	if err != nil {
		return err
	}

	start := time.Now()
	err = p.writer.WriteMessages(ctx, msg)
	EventPublishSeconds.WithLabelValues(topic).Observe(time.Since(start).Seconds())
	if err != nil {
		EventPublishFailures.WithLabelValues(topic, e.Type).Inc()
		return fmt.Errorf("publish %s to %s: %w", e.Type, topic, err)
	}

	EventsPublished.WithLabelValues(topic, e.Type).Inc()
	p.logger.DebugContext(ctx, "event published",
		slog.String("topic", topic),
		slog.String("event_type", e.Type),
		slog.String("key", e.Key),
	)
	return nil
}

func newMessage(ctx context.Context, topic string, e *Event) (kafka.Message, error) {
	value, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal event: %w", err)
	}

	msg := kafka.Message{Topic: topic, Key: []byte(e.Key), Value: value}
	carrier := NewHeaderCarrier(&msg.Headers)
	carrier.Set(HeaderEventType, e.Type)
	carrier.Set(HeaderSource, e.Source)
	if e.CorrelationID != "" {
		carrier.Set(HeaderCorrelationID, e.CorrelationID)
	}
	if e.SessionID != "" {
		carrier.Set(HeaderSessionID, e.SessionID)
	}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	return msg, nil
}

// Ping checks that at least one configured broker answers.
func (p *Producer) Ping(ctx context.Context) error {
	if p.dialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.dialTimeout)
		defer cancel()
	}
	return PingBrokers(ctx, p.brokers)
}

// PingBrokers returns nil at the first broker that answers a metadata
// request, otherwise every dial error joined.
func PingBrokers(ctx context.Context, brokers []string) error {
	if len(brokers) == 0 {
		return errors.New("kafka: no brokers configured")
	}

	var errs []error
	for _, addr := range brokers {
		conn, err := kafka.DialContext(ctx, "tcp", addr)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		_, err = conn.Brokers()
		_ = conn.Close()
		if err == nil {
			return nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", addr, err))
	}
	return fmt.Errorf("kafka: no broker reachable: %w", errors.Join(errs...))
}

// Close flushes pending messages and closes the writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
