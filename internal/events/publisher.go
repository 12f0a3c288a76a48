// Package events publishes booking lifecycle events to Kafka so downstream
// consumers (notifications, seat inventory) can react to them.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/pkordes/tourcal/internal/domain"
)

// BookingCancelledType is the event type carried in the message header and body.
const BookingCancelledType = "booking.cancelled.v1"

// BookingCancelled is the JSON body of a cancellation event.
type BookingCancelled struct {
	Type        string    `json:"type"`
	BookingID   string    `json:"booking_id"`
	TourID      string    `json:"tour_id"`
	CustomerID  string    `json:"customer_id"`
	DepartureAt time.Time `json:"departure_at"`
	CancelledAt time.Time `json:"cancelled_at"`
}

// MessageWriter is the subset of *kafka.Writer used by Publisher.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes booking events to a Kafka topic, keyed by booking id so
// all events for one booking land on the same partition in order.
type Publisher struct {
	w MessageWriter
}

// NewPublisher constructs a Publisher on top of w.
func NewPublisher(w MessageWriter) *Publisher {
	return &Publisher{w: w}
}

// NewKafkaWriter builds the production writer for the given brokers and topic.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		BatchTimeout: 50 * time.Millisecond,
	}
}

// BookingCancelled publishes a cancellation event for b.
func (p *Publisher) BookingCancelled(ctx context.Context, b domain.Booking, at time.Time) error {
	body, err := json.Marshal(BookingCancelled{
		Type:        BookingCancelledType,
		BookingID:   b.ID.String(),
		TourID:      b.TourID.String(),
		CustomerID:  b.CustomerID,
		DepartureAt: b.DepartureAt.UTC(),
		CancelledAt: at.UTC(),
	})
	if err != nil {
		return fmt.Errorf("events.Publisher.BookingCancelled: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(b.ID.String()),
		Value: body,
		Time:  at,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(BookingCancelledType)},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("events.Publisher.BookingCancelled: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.w.Close()
}

// LogPublisher stands in for Publisher when no brokers are configured.
// It records the event in the log and never fails.
type LogPublisher struct {
	Log *slog.Logger
}

// BookingCancelled logs the event.
func (p LogPublisher) BookingCancelled(ctx context.Context, b domain.Booking, at time.Time) error {
	if p.Log != nil {
		p.Log.InfoContext(ctx, "booking event (kafka disabled)",
			"type", BookingCancelledType,
			"booking_id", b.ID,
			"cancelled_at", at.UTC(),
		)
	}
	return nil
}
