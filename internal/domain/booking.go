package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the lifecycle state of a Booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is a customer's reservation on one tour departure.
// The calendar engine only reads DepartureAt, ReturnAt and Status.
type Booking struct {
	ID          uuid.UUID     `json:"id"`
	TourID      uuid.UUID     `json:"tour_id"`
	CustomerID  string        `json:"customer_id"`
	DepartureAt time.Time     `json:"departure_at"`
	ReturnAt    time.Time     `json:"return_at"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
