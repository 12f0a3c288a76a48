package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. malformed date, availability payload that is not a JSON object).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrNotAvailable is matched by a *Rejection when a picked calendar date is in
// the past or not covered by a bookable window.
// Handlers should map this to HTTP 409 Conflict.
var ErrNotAvailable = errors.New("date not available")

// ErrNotCancellable is returned when a cancellation is requested for a booking
// that is already cancelled, already departed, or inside the cancellation deadline.
// Handlers should map this to HTTP 409 Conflict.
var ErrNotCancellable = errors.New("booking cannot be cancelled")
