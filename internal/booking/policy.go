// Package booking holds the booking-history rules: the cancellation deadline
// and the upcoming/past split. Like the calendar engine, nothing here reads
// the clock; now and today are always passed in.
package booking

import (
	"time"

	"github.com/pkordes/tourcal/internal/domain"
)

// CancellationNotice is how long before departure cancellation closes.
const CancellationNotice = 48 * time.Hour

// Deadline returns the last instant a booking departing at departureAt may be
// cancelled. It is exact instant arithmetic in UTC, not rounded to a day, so
// DST transitions in the traveller's zone cannot shift it.
func Deadline(departureAt time.Time) time.Time {
	return departureAt.UTC().Add(-CancellationNotice)
}

// CanCancel reports whether a booking may still be cancelled at now: it is not
// already cancelled, it has not departed, and now is strictly before the deadline.
func CanCancel(departureAt time.Time, status domain.BookingStatus, now time.Time) bool {
	if status == domain.BookingCancelled {
		return false
	}
	if !departureAt.After(now) {
		return false
	}
	return now.Before(Deadline(departureAt))
}

// Card is a booking annotated for the booking-card view.
type Card struct {
	domain.Booking
	CancelDeadline time.Time `json:"cancel_deadline"`
	Cancellable    bool      `json:"cancellable"`
}

// Annotate evaluates the cancellation policy for b at now.
func Annotate(b domain.Booking, now time.Time) Card {
	return Card{
		Booking:        b,
		CancelDeadline: Deadline(b.DepartureAt),
		Cancellable:    CanCancel(b.DepartureAt, b.Status, now),
	}
}
