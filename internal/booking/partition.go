package booking

import (
	"slices"

	"github.com/pkordes/tourcal/internal/domain"
)

// Partitions is a booking history split around today.
type Partitions struct {
	// Upcoming holds bookings departing today or later, soonest first.
	Upcoming []domain.Booking
	// Past holds bookings that departed before today, most recent first.
	Past []domain.Booking
}

// Partition splits bookings into upcoming and past relative to today, using
// the UTC calendar date of each departure. Every booking lands in exactly one
// partition. Both orderings are stable for equal departures, and the input
// slice is left untouched.
func Partition(bookings []domain.Booking, today domain.Date) Partitions {
	p := Partitions{
		Upcoming: []domain.Booking{},
		Past:     []domain.Booking{},
	}
	for _, b := range bookings {
		if domain.DateOf(b.DepartureAt).Before(today) {
			p.Past = append(p.Past, b)
		} else {
			p.Upcoming = append(p.Upcoming, b)
		}
	}

	slices.SortStableFunc(p.Upcoming, func(a, b domain.Booking) int {
		return a.DepartureAt.Compare(b.DepartureAt)
	})
	slices.SortStableFunc(p.Past, func(a, b domain.Booking) int {
		return b.DepartureAt.Compare(a.DepartureAt)
	})
	return p
}
