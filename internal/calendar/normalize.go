package calendar

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/tourcal/internal/domain"
)

var (
	errMissingTimestamp = errors.New("timestamp missing")
	errBadTimestamp     = errors.New("timestamp not parseable")
	errReturnBeforeDep  = errors.New("return before departure")
)

// instantLayouts are tried in order. Layouts without an offset are read as UTC.
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	domain.DateLayout,
}

// Normalize converts raw records into availability windows.
//
// A record whose departure or return timestamp is missing or unparseable, or
// whose return precedes its departure, is dropped and a warning is logged; the
// remaining records are still returned. Output order is unspecified.
func Normalize(raw []domain.RawAvailability, log *slog.Logger) []domain.AvailabilityWindow {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	windows := make([]domain.AvailabilityWindow, 0, len(raw))
	for _, r := range raw {
		w, err := normalizeOne(r, log)
		if err != nil {
			log.Warn("skipping availability record",
				"availability_id", r.ID,
				"departure", r.Departure,
				"return", r.Return,
				"error", err,
			)
			continue
		}
		windows = append(windows, w)
	}
	return windows
}

func normalizeOne(r domain.RawAvailability, log *slog.Logger) (domain.AvailabilityWindow, error) {
	dep, err := parseInstant(r.Departure)
	if err != nil {
		return domain.AvailabilityWindow{}, fmt.Errorf("departure: %w", err)
	}
	ret, err := parseInstant(r.Return)
	if err != nil {
		return domain.AvailabilityWindow{}, fmt.Errorf("return: %w", err)
	}
	if ret.Before(dep) {
		return domain.AvailabilityWindow{}, errReturnBeforeDep
	}

	w := domain.AvailabilityWindow{
		ID:             r.ID,
		DepartureAt:    dep,
		ReturnAt:       ret,
		DepartureDate:  domain.DateOf(dep),
		ReturnDate:     domain.DateOf(ret),
		AvailableSlots: parseSlots(r.Slots),
	}

	if strings.TrimSpace(r.BookingDeadline) != "" {
		deadline, err := parseInstant(r.BookingDeadline)
		if err != nil {
			log.Warn("ignoring unparseable booking deadline",
				"availability_id", r.ID,
				"booking_deadline", r.BookingDeadline,
			)
		} else {
			w.BookingDeadline = &deadline
		}
	}
	return w, nil
}

// parseInstant parses s into a UTC instant.
func parseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errMissingTimestamp
	}
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errBadTimestamp
}

// parseSlots reads a slot count from whatever JSON value the feed sent.
// Absent, non-numeric, fractional and negative values all count as zero.
func parseSlots(v any) int {
	var n float64
	switch s := v.(type) {
	case json.Number:
		f, err := s.Float64()
		if err != nil {
			return 0
		}
		n = f
	case float64:
		n = s
	case int:
		n = float64(s)
	case int64:
		n = float64(s)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
		n = f
	default:
		return 0
	}
	if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) || n <= 0 {
		return 0
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}
