package calendar

import "github.com/pkordes/tourcal/internal/domain"

// DayCell is one classified calendar cell, ready for a date-picker widget.
// WindowID is empty unless the day is selectable.
type DayCell struct {
	Date       domain.Date     `json:"date"`
	Class      domain.DayClass `json:"class"`
	Selectable bool            `json:"selectable"`
	WindowID   string          `json:"window_id,omitempty"`
}

// Classify returns the class of calendar date d as of today.
//
// Past dates are DayPast before any window is consulted. Available dates take
// their class from their position inside the resolved window.
func Classify(idx *Index, d, today domain.Date) domain.DayClass {
	if d.Before(today) {
		return domain.DayPast
	}
	if !idx.IsAvailable(d, today) {
		return domain.DayUnavailable
	}
	w, _ := idx.Resolve(d)
	switch {
	case w.SingleDay() && w.DepartureDate == d:
		return domain.DayRangeSingleDay
	case d == w.DepartureDate:
		return domain.DayRangeStart
	case d == w.ReturnDate:
		return domain.DayRangeEnd
	default:
		return domain.DayRangeInterior
	}
}

// ClassifyRange classifies every date in [from, to], inclusive.
// It returns an empty slice when to is before from.
func ClassifyRange(idx *Index, from, to, today domain.Date) []DayCell {
	if to.Before(from) {
		return []DayCell{}
	}
	cells := make([]DayCell, 0, 31)
	for d := from; !d.After(to); d = d.AddDays(1) {
		cells = append(cells, classifyCell(idx, d, today))
	}
	return cells
}

// ClassifyMonth classifies every day of the month containing month.
func ClassifyMonth(idx *Index, month, today domain.Date) []DayCell {
	first := month.FirstOfMonth()
	last := first.AddMonths(1).AddDays(-1)
	return ClassifyRange(idx, first, last, today)
}

func classifyCell(idx *Index, d, today domain.Date) DayCell {
	class := Classify(idx, d, today)
	cell := DayCell{Date: d, Class: class, Selectable: class.Selectable()}
	if cell.Selectable {
		w, _ := idx.Resolve(d)
		cell.WindowID = w.ID
	}
	return cell
}
