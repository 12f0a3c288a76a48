package calendar

import "github.com/pkordes/tourcal/internal/domain"

// Commit turns a picked date into a Selection.
//
// If the date classifies as DayPast or DayUnavailable it returns a
// *domain.Rejection with reason not_available and a zero Selection; the caller
// must not advance the reservation flow. Commit has no side effects.
func Commit(idx *Index, d, today domain.Date) (domain.Selection, error) {
	switch Classify(idx, d, today) {
	case domain.DayPast, domain.DayUnavailable:
		return domain.Selection{}, &domain.Rejection{Reason: domain.RejectNotAvailable, Date: d}
	}

	w, _ := idx.Resolve(d)
	return domain.Selection{
		Window:     w,
		PickedDate: d,
		RangeStart: w.DepartureDate,
		RangeEnd:   w.ReturnDate,
	}, nil
}
