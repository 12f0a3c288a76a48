// Package calendar resolves tour availability into calendar classifications.
//
// Raw upstream records pass through exactly one boundary (DecodeRaw, then
// Normalize) before anything else sees them. Everything after that boundary is
// a pure function of its arguments: the engine never reads the clock, so
// callers pass today explicitly.
package calendar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkordes/tourcal/internal/domain"
)

// Field aliases accepted from the upstream feed, checked in order.
var (
	idKeys        = []string{"id", "_id", "availability_id"}
	departureKeys = []string{"departure_time", "departureTime", "departure", "departure_at", "start"}
	returnKeys    = []string{"return_time", "returnTime", "return", "return_at", "end"}
	slotsKeys     = []string{"available_slots", "availableSlots", "slots"}
	deadlineKeys  = []string{"booking_deadline", "bookingDeadline", "deadline"}
)

// DecodeRaw flattens one upstream availability payload into a RawAvailability.
//
// Two shapes are accepted: a flat object carrying the timestamps directly, and
// an object whose timestamps sit under a nested "availability" object (the id
// may live on either level). Values are not parsed here; a missing timestamp
// is left empty for Normalize to reject.
//
// Only a payload that is not a JSON object is an error.
func DecodeRaw(payload []byte) (domain.RawAvailability, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var outer map[string]any
	if err := dec.Decode(&outer); err != nil {
		return domain.RawAvailability{}, fmt.Errorf("%w: availability payload must be a JSON object", domain.ErrValidation)
	}
	if outer == nil {
		return domain.RawAvailability{}, fmt.Errorf("%w: availability payload must be a JSON object", domain.ErrValidation)
	}

	fields := outer
	if nested, ok := outer["availability"].(map[string]any); ok {
		fields = nested
	}

	raw := domain.RawAvailability{
		ID:              firstString(fields, idKeys),
		Departure:       firstString(fields, departureKeys),
		Return:          firstString(fields, returnKeys),
		Slots:           firstValue(fields, slotsKeys),
		BookingDeadline: firstString(fields, deadlineKeys),
	}
	if raw.ID == "" {
		raw.ID = firstString(outer, idKeys)
	}
	return raw, nil
}

func firstValue(m map[string]any, keys []string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// firstString returns the first present key as a string. Numbers are kept in
// their literal form so numeric ids survive the trip.
func firstString(m map[string]any, keys []string) string {
	switch v := firstValue(m, keys).(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}
