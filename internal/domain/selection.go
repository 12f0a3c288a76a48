package domain

// Selection is the result of a user picking a valid calendar date: the window
// that covers the date plus its range boundaries.
//
// A Selection must survive a login redirect, so every field round-trips
// through JSON without loss.
type Selection struct {
	Window     AvailabilityWindow `json:"window"`
	PickedDate Date               `json:"picked_date"`
	RangeStart Date               `json:"range_start"`
	RangeEnd   Date               `json:"range_end"`
}

// RejectReason is the machine-readable code carried by a Rejection.
type RejectReason string

// RejectNotAvailable is the only rejection today: the date is past or not bookable.
const RejectNotAvailable RejectReason = "not_available"

// Rejection is returned in place of a Selection when a pick is refused.
// It is an expected, user-driven outcome rather than a failure, but it
// implements error so callers can return it up the stack and match it with
// errors.Is(err, ErrNotAvailable).
type Rejection struct {
	Reason RejectReason `json:"reason"`
	Date   Date         `json:"date"`
}

func (r *Rejection) Error() string {
	return "selection rejected: " + string(r.Reason) + " (" + r.Date.String() + ")"
}

// Is makes errors.Is(r, ErrNotAvailable) true for not_available rejections.
func (r *Rejection) Is(target error) bool {
	return target == ErrNotAvailable && r.Reason == RejectNotAvailable
}
