package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tourcal/internal/booking"
	"github.com/pkordes/tourcal/internal/domain"
	"github.com/pkordes/tourcal/internal/repo"
)

// EventPublisher announces booking state changes to downstream consumers.
// events.Publisher and events.LogPublisher both satisfy it.
type EventPublisher interface {
	BookingCancelled(ctx context.Context, b domain.Booking, at time.Time) error
}

// BookingHistory is a customer's bookings split for the "my bookings" page,
// each annotated with its cancellation deadline.
type BookingHistory struct {
	Upcoming []booking.Card
	Past     []booking.Card
}

// BookingService implements the customer-facing booking list and cancellation.
type BookingService struct {
	bookings repo.BookingRepo
	events   EventPublisher
	log      *slog.Logger
	now      func() time.Time
}

// NewBookingService constructs a BookingService. A nil now defaults to time.Now.
func NewBookingService(bookings repo.BookingRepo, events EventPublisher, log *slog.Logger, now func() time.Time) *BookingService {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if now == nil {
		now = time.Now
	}
	return &BookingService{bookings: bookings, events: events, log: log, now: now}
}

// History returns the customer's bookings partitioned around today.
// Both slices are always non-nil.
func (s *BookingService) History(ctx context.Context, customerID string) (BookingHistory, error) {
	list, err := s.bookings.ListByCustomer(ctx, customerID)
	if err != nil {
		return BookingHistory{}, fmt.Errorf("service.BookingService.History: %w", err)
	}
	now := s.now()
	parts := booking.Partition(list, domain.DateOf(now))
	return BookingHistory{
		Upcoming: annotateAll(parts.Upcoming, now),
		Past:     annotateAll(parts.Past, now),
	}, nil
}

// Cancel cancels the booking if the policy allows it at the current instant.
// Returns domain.ErrNotFound for an unknown booking and domain.ErrNotCancellable
// once the booking is cancelled, departed or inside the notice period.
//
// The event is published after the status change is stored; a publish failure
// is logged and does not undo the cancellation.
func (s *BookingService) Cancel(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Cancel: %w", err)
	}
	now := s.now()
	if !booking.CanCancel(b.DepartureAt, b.Status, now) {
		return domain.Booking{}, fmt.Errorf("%w: deadline was %s",
			domain.ErrNotCancellable, booking.Deadline(b.DepartureAt).Format(time.RFC3339))
	}

	cancelled, err := s.bookings.MarkCancelled(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		// Lost a race with a concurrent cancel.
		return domain.Booking{}, fmt.Errorf("service.BookingService.Cancel: %w", domain.ErrNotCancellable)
	}
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Cancel: %w", err)
	}

	if s.events != nil {
		if err := s.events.BookingCancelled(ctx, cancelled, now); err != nil {
			s.log.ErrorContext(ctx, "publish booking cancelled", "booking_id", id, "error", err)
		}
	}
	return cancelled, nil
}

func annotateAll(list []domain.Booking, now time.Time) []booking.Card {
	cards := make([]booking.Card, len(list))
	for i, b := range list {
		cards[i] = booking.Annotate(b, now)
	}
	return cards
}
