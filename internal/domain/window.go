package domain

import "time"

// RawAvailability is an availability record as the upstream feed delivered it,
// after the shape has been flattened but before any value has been parsed.
// Slots holds whatever JSON value arrived (json.Number, string, nil, ...).
type RawAvailability struct {
	ID              string
	Departure       string
	Return          string
	Slots           any
	BookingDeadline string
}

// AvailabilityWindow is a bookable departure/return interval with a slot capacity.
// Windows are created by the calendar normalizer and never mutated afterwards.
//
// Invariants: DepartureAt <= ReturnAt, DepartureDate <= ReturnDate, AvailableSlots >= 0.
type AvailabilityWindow struct {
	ID              string     `json:"id"`
	DepartureAt     time.Time  `json:"departure_at"`
	ReturnAt        time.Time  `json:"return_at"`
	DepartureDate   Date       `json:"departure_date"`
	ReturnDate      Date       `json:"return_date"`
	AvailableSlots  int        `json:"available_slots"`
	BookingDeadline *time.Time `json:"booking_deadline,omitempty"`
}

// Contains reports whether d falls inside [DepartureDate, ReturnDate], inclusive on both ends.
func (w AvailabilityWindow) Contains(d Date) bool {
	return !d.Before(w.DepartureDate) && !d.After(w.ReturnDate)
}

// SingleDay reports whether the window departs and returns on the same calendar date.
func (w AvailabilityWindow) SingleDay() bool {
	return w.DepartureDate == w.ReturnDate
}
