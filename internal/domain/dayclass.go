package domain

import "fmt"

// DayClass is the classification of one calendar cell. It is derived on every
// render and never stored.
type DayClass int

const (
	DayPast DayClass = iota
	DayUnavailable
	DayRangeStart
	DayRangeEnd
	DayRangeInterior
	DayRangeSingleDay
)

var dayClassNames = [...]string{
	DayPast:           "past",
	DayUnavailable:    "unavailable",
	DayRangeStart:     "range_start",
	DayRangeEnd:       "range_end",
	DayRangeInterior:  "range_interior",
	DayRangeSingleDay: "range_single_day",
}

// String returns the snake_case wire name of c.
func (c DayClass) String() string {
	if c < 0 || int(c) >= len(dayClassNames) {
		return fmt.Sprintf("DayClass(%d)", int(c))
	}
	return dayClassNames[c]
}

// Selectable reports whether a cell of this class may be picked by the user.
func (c DayClass) Selectable() bool {
	switch c {
	case DayRangeStart, DayRangeEnd, DayRangeInterior, DayRangeSingleDay:
		return true
	default:
		return false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c DayClass) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(dayClassNames) {
		return nil, fmt.Errorf("domain: unknown day class %d", int(c))
	}
	return []byte(dayClassNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *DayClass) UnmarshalText(b []byte) error {
	for i, name := range dayClassNames {
		if name == string(b) {
			*c = DayClass(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown day class %q", ErrValidation, string(b))
}
