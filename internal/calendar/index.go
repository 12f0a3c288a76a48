package calendar

import (
	"slices"
	"sort"
	"strings"

	"github.com/pkordes/tourcal/internal/domain"
)

// Index is an immutable, date-ordered set of availability windows.
// Build a new Index whenever the window set changes; never mutate one.
// An Index is safe for concurrent use by multiple readers.
//
// Windows may overlap. Lookups stay deterministic because the windows are kept
// sorted by (DepartureDate, ID) and every query returns the first match in
// that order: earliest departure wins, then lowest id.
type Index struct {
	windows []domain.AvailabilityWindow
}

// NewIndex builds an Index from windows. The input slice is copied, not retained.
func NewIndex(windows []domain.AvailabilityWindow) *Index {
	sorted := slices.Clone(windows)
	slices.SortStableFunc(sorted, compareWindows)
	return &Index{windows: sorted}
}

// Len returns the number of windows in the index.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.windows)
}

// Windows returns a copy of the indexed windows in index order.
func (idx *Index) Windows() []domain.AvailabilityWindow {
	if idx == nil {
		return []domain.AvailabilityWindow{}
	}
	return slices.Clone(idx.windows)
}

// Resolve returns the window covering d, if any.
func (idx *Index) Resolve(d domain.Date) (domain.AvailabilityWindow, bool) {
	if idx == nil {
		return domain.AvailabilityWindow{}, false
	}
	for _, w := range idx.windows {
		if w.DepartureDate.After(d) {
			// Sorted by departure: nothing further can cover d.
			break
		}
		if w.Contains(d) {
			return w, true
		}
	}
	return domain.AvailabilityWindow{}, false
}

// IsAvailable reports whether d can be booked as of today. Dates before today
// are never available; otherwise d must be covered by a window with free slots.
func (idx *Index) IsAvailable(d, today domain.Date) bool {
	if d.Before(today) {
		return false
	}
	w, ok := idx.Resolve(d)
	return ok && w.AvailableSlots > 0
}

// EarliestFutureWindow returns the window with the smallest DepartureDate on
// or after today. It does not consider slots: it only picks the month the
// calendar opens on.
func (idx *Index) EarliestFutureWindow(today domain.Date) (domain.AvailabilityWindow, bool) {
	if idx == nil {
		return domain.AvailabilityWindow{}, false
	}
	i := sort.Search(len(idx.windows), func(i int) bool {
		return !idx.windows[i].DepartureDate.Before(today)
	})
	if i == len(idx.windows) {
		return domain.AvailabilityWindow{}, false
	}
	return idx.windows[i], true
}

// FocusedMonth returns the first day of the month the calendar should open on:
// the month of the earliest future window, or today's month when there is none.
func (idx *Index) FocusedMonth(today domain.Date) domain.Date {
	if w, ok := idx.EarliestFutureWindow(today); ok {
		return w.DepartureDate.FirstOfMonth()
	}
	return today.FirstOfMonth()
}

func compareWindows(a, b domain.AvailabilityWindow) int {
	if c := a.DepartureDate.Compare(b.DepartureDate); c != 0 {
		return c
	}
	return compareIDs(a.ID, b.ID)
}

// compareIDs orders window ids. All-digit ids sort before any other id and
// compare by value among themselves, so "9" precedes "10"; the rest compare
// byte-wise.
func compareIDs(a, b string) int {
	da, db := isDigits(a), isDigits(b)
	switch {
	case da && !db:
		return -1
	case !da && db:
		return 1
	case da && db:
		ta, tb := strings.TrimLeft(a, "0"), strings.TrimLeft(b, "0")
		if len(ta) != len(tb) {
			if len(ta) < len(tb) {
				return -1
			}
			return 1
		}
		if c := strings.Compare(ta, tb); c != 0 {
			return c
		}
	}
	return strings.Compare(a, b)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
