// Package domain contains the core data types for the tour calendar service.
// This package depends only on google/uuid and is imported by every other
// internal package (calendar, booking, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tour is a bookable product. Its departures are described by availability
// records supplied by the upstream tour feed.
type Tour struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// AvailabilityRecord is one upstream availability payload stored verbatim.
// The payload is decoded and normalized on read, so a record that fails to
// parse only drops out of the calendar instead of failing the whole tour.
type AvailabilityRecord struct {
	ID        uuid.UUID
	TourID    uuid.UUID
	Payload   []byte
	CreatedAt time.Time
}
