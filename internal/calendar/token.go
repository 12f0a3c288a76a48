package calendar

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/pkordes/tourcal/internal/domain"
)

// EncodeSelection packs a Selection into an opaque, URL-safe token that can
// ride through a login redirect as a query parameter.
func EncodeSelection(sel domain.Selection) (string, error) {
	b, err := json.Marshal(sel)
	if err != nil {
		return "", fmt.Errorf("calendar.EncodeSelection: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DecodeSelection reverses EncodeSelection.
// Returns domain.ErrValidation if the token is malformed or does not describe
// a selection Commit could have produced.
func DecodeSelection(token string) (domain.Selection, error) {
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return domain.Selection{}, fmt.Errorf("%w: malformed selection token", domain.ErrValidation)
	}
	var sel domain.Selection
	if err := json.Unmarshal(b, &sel); err != nil {
		return domain.Selection{}, fmt.Errorf("%w: malformed selection token", domain.ErrValidation)
	}
	if sel.PickedDate.IsZero() || sel.RangeStart.IsZero() || sel.RangeEnd.IsZero() {
		return domain.Selection{}, fmt.Errorf("%w: incomplete selection token", domain.ErrValidation)
	}
	if err := checkSelection(sel); err != nil {
		return domain.Selection{}, err
	}
	return sel, nil
}

// checkSelection enforces the shape Commit guarantees: the range is the
// window's own date span, the picked date lies inside it and the window
// has slots.
func checkSelection(sel domain.Selection) error {
	w := sel.Window
	if sel.RangeStart.Compare(w.DepartureDate) != 0 || sel.RangeEnd.Compare(w.ReturnDate) != 0 {
		return fmt.Errorf("%w: selection range does not match its window", domain.ErrValidation)
	}
	if sel.PickedDate.Before(sel.RangeStart) || sel.PickedDate.After(sel.RangeEnd) {
		return fmt.Errorf("%w: picked date outside selection range", domain.ErrValidation)
	}
	if w.AvailableSlots <= 0 {
		return fmt.Errorf("%w: selection window has no slots", domain.ErrValidation)
	}
	return nil
}
