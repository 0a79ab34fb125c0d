package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/ventry/ventry/internal/domain/model"
)

// Event types emitted over the purchase lifecycle.
const (
	TypePurchaseInitiated = "purchase.initiated"
	TypePurchaseCompleted = "purchase.completed"
	TypePurchaseFailed    = "purchase.failed"
)

// Event is the envelope published to the purchase events topic. Events are
// keyed by reference so all events of one purchase land on one partition.
type Event struct {
	Type       string    `json:"type"`
	Reference  string    `json:"reference"`
	CustomerID string    `json:"customer_id"`
	CarID      string    `json:"car_id"`
	Amount     float64   `json:"amount"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent builds an event from a purchase snapshot.
func NewEvent(eventType string, purchase *model.Purchase) Event {
	return Event{
		Type:       eventType,
		Reference:  purchase.Reference,
		CustomerID: purchase.CustomerID,
		CarID:      purchase.CarID,
		Amount:     purchase.Amount,
		Status:     string(purchase.Status),
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher emits purchase lifecycle events. Publishing is best effort:
// failures are logged and never fed back into business state.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// messageWriter is the subset of kafka.Writer the publisher relies on;
// tests swap in a stub through the same interface.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher implements Publisher on a kafka topic.
type KafkaPublisher struct {
	writer messageWriter
	logger *slog.Logger
}

// NewKafkaPublisher creates a publisher writing to topic on brokers.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaPublisher{writer: writer, logger: logger}
}

// Publish writes the event keyed by its purchase reference.
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) {
	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("marshal purchase event", slog.String("error", err.Error()))
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.Reference),
		Value: value,
		Time:  event.OccurredAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("publish purchase event",
			slog.String("type", event.Type),
			slog.String("reference", event.Reference),
			slog.String("error", err.Error()))
	}
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops events. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}
