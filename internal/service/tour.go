// Package service contains the business logic for the tour calendar API.
// Services load records through repo interfaces, run them through the pure
// calendar and booking engines, and hand the results to the HTTP layer.
// No SQL lives here and no engine function reads the clock: "now" is injected.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tourcal/internal/calendar"
	"github.com/pkordes/tourcal/internal/domain"
	"github.com/pkordes/tourcal/internal/repo"
)

// CalendarView is one month of a tour's booking calendar.
type CalendarView struct {
	Tour domain.Tour
	// Month is the first day of the displayed month.
	Month domain.Date
	// Earliest is the first window departing on or after today, if any.
	Earliest *domain.AvailabilityWindow
	Days     []calendar.DayCell
}

// TourService implements the calendar operations for a single tour.
type TourService struct {
	tours   repo.TourRepo
	records repo.AvailabilityRepo
	log     *slog.Logger
	now     func() time.Time
}

// NewTourService constructs a TourService. A nil now defaults to time.Now;
// a nil logger discards normalizer diagnostics.
func NewTourService(tours repo.TourRepo, records repo.AvailabilityRepo, log *slog.Logger, now func() time.Time) *TourService {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if now == nil {
		now = time.Now
	}
	return &TourService{tours: tours, records: records, log: log, now: now}
}

// GetByID returns a single tour.
// Returns domain.ErrNotFound if the tour does not exist.
func (s *TourService) GetByID(ctx context.Context, id uuid.UUID) (domain.Tour, error) {
	t, err := s.tours.GetByID(ctx, id)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("service.TourService.GetByID: %w", err)
	}
	return t, nil
}

// List returns one page of tours and the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TourService) List(ctx context.Context, p domain.PaginationParams) ([]domain.Tour, int64, error) {
	tours, total, err := s.tours.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TourService.List: %w", err)
	}
	if tours == nil {
		tours = []domain.Tour{}
	}
	return tours, total, nil
}

// Calendar renders one month of the tour's calendar. When month is nil the
// month of the earliest upcoming departure is shown, falling back to today's.
func (s *TourService) Calendar(ctx context.Context, tourID uuid.UUID, month *domain.Date) (CalendarView, error) {
	tour, err := s.tours.GetByID(ctx, tourID)
	if err != nil {
		return CalendarView{}, fmt.Errorf("service.TourService.Calendar: %w", err)
	}
	idx, err := s.index(ctx, tourID)
	if err != nil {
		return CalendarView{}, fmt.Errorf("service.TourService.Calendar: %w", err)
	}

	today := domain.DateOf(s.now())
	view := CalendarView{Tour: tour}
	if month != nil {
		view.Month = month.FirstOfMonth()
	} else {
		view.Month = idx.FocusedMonth(today)
	}
	if w, ok := idx.EarliestFutureWindow(today); ok {
		view.Earliest = &w
	}
	view.Days = calendar.ClassifyMonth(idx, view.Month, today)
	return view, nil
}

// Select commits the user's pick of d for the tour.
// Returns an error matching domain.ErrNotAvailable (a *domain.Rejection) when
// d cannot be booked, and domain.ErrNotFound if the tour does not exist.
func (s *TourService) Select(ctx context.Context, tourID uuid.UUID, d domain.Date) (domain.Selection, error) {
	if _, err := s.tours.GetByID(ctx, tourID); err != nil {
		return domain.Selection{}, fmt.Errorf("service.TourService.Select: %w", err)
	}
	idx, err := s.index(ctx, tourID)
	if err != nil {
		return domain.Selection{}, fmt.Errorf("service.TourService.Select: %w", err)
	}
	sel, err := calendar.Commit(idx, d, domain.DateOf(s.now()))
	if err != nil {
		return domain.Selection{}, err
	}
	return sel, nil
}

// ReplaceAvailability swaps the tour's raw availability records for payloads.
// Every payload must be a JSON object DecodeRaw understands; timestamps are
// not checked here because the normalizer skips bad records at read time.
func (s *TourService) ReplaceAvailability(ctx context.Context, tourID uuid.UUID, payloads []json.RawMessage) (int, error) {
	if _, err := s.tours.GetByID(ctx, tourID); err != nil {
		return 0, fmt.Errorf("service.TourService.ReplaceAvailability: %w", err)
	}
	raw := make([][]byte, len(payloads))
	for i, p := range payloads {
		if _, err := calendar.DecodeRaw(p); err != nil {
			return 0, fmt.Errorf("service.TourService.ReplaceAvailability: availability[%d]: %w", i, err)
		}
		raw[i] = p
	}
	n, err := s.records.Replace(ctx, tourID, raw)
	if err != nil {
		return 0, fmt.Errorf("service.TourService.ReplaceAvailability: %w", err)
	}
	s.log.InfoContext(ctx, "availability replaced", "tour_id", tourID, "records", n)
	return n, nil
}

// index loads and normalizes the tour's windows. Undecodable records are
// logged and skipped like any other malformed record.
func (s *TourService) index(ctx context.Context, tourID uuid.UUID) (*calendar.Index, error) {
	records, err := s.records.ListByTour(ctx, tourID)
	if err != nil {
		return nil, err
	}
	raw := make([]domain.RawAvailability, 0, len(records))
	for _, rec := range records {
		r, err := calendar.DecodeRaw(rec.Payload)
		if err != nil {
			s.log.WarnContext(ctx, "skipping undecodable availability record",
				"tour_id", tourID, "record_id", rec.ID, "error", err)
			continue
		}
		raw = append(raw, r)
	}
	return calendar.NewIndex(calendar.Normalize(raw, s.log)), nil
}
