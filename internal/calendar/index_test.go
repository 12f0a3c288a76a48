package calendar_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tourcal/internal/calendar"
	"github.com/pkordes/tourcal/internal/domain"
)

// ---- helpers ---------------------------------------------------------------

func day(m time.Month, d int) domain.Date {
	return domain.NewDate(2024, m, d)
}

// window builds a window departing at 08:00 UTC on dep and returning at 20:00 UTC on ret.
func window(id string, dep, ret domain.Date, slots int) domain.AvailabilityWindow {
	return domain.AvailabilityWindow{
		ID:             id,
		DepartureAt:    dep.Time().Add(8 * time.Hour),
		ReturnAt:       ret.Time().Add(20 * time.Hour),
		DepartureDate:  dep,
		ReturnDate:     ret,
		AvailableSlots: slots,
	}
}

var today = day(time.May, 1)

// ---- Resolve ---------------------------------------------------------------

func TestIndex_Resolve_ContainmentIsInclusive(t *testing.T) {
	a := window("a", day(time.June, 10), day(time.June, 12), 5)
	idx := calendar.NewIndex([]domain.AvailabilityWindow{a})

	for d := day(time.June, 10); !d.After(day(time.June, 12)); d = d.AddDays(1) {
		got, ok := idx.Resolve(d)
		require.True(t, ok, "date %s", d)
		assert.Equal(t, a, got)
	}

	_, ok := idx.Resolve(day(time.June, 9))
	assert.False(t, ok)
	_, ok = idx.Resolve(day(time.June, 13))
	assert.False(t, ok)
}

func TestIndex_Resolve_OverlapPrefersEarliestDeparture(t *testing.T) {
	early := window("z", day(time.June, 8), day(time.June, 15), 5)
	late := window("a", day(time.June, 10), day(time.June, 12), 5)
	idx := calendar.NewIndex([]domain.AvailabilityWindow{late, early})

	got, ok := idx.Resolve(day(time.June, 11))

	require.True(t, ok)
	assert.Equal(t, "z", got.ID)
}

func TestIndex_Resolve_SameDepartureLowestIDWins(t *testing.T) {
	idx := calendar.NewIndex([]domain.AvailabilityWindow{
		window("10", day(time.June, 10), day(time.June, 12), 5),
		window("9", day(time.June, 10), day(time.June, 14), 5),
		window("b", day(time.June, 10), day(time.June, 12), 5),
	})

	got, ok := idx.Resolve(day(time.June, 11))

	require.True(t, ok)
	assert.Equal(t, "9", got.ID, "numeric ids compare by value, not byte-wise")
}

func TestIndex_Resolve_MixedIDsIndependentOfInputOrder(t *testing.T) {
	ids := []string{"10", "9", "1a"}
	perms := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}

	for _, p := range perms {
		in := make([]domain.AvailabilityWindow, 0, len(p))
		order := make([]string, 0, len(p))
		for _, i := range p {
			in = append(in, window(ids[i], day(time.June, 10), day(time.June, 12), 5))
			order = append(order, ids[i])
		}
		idx := calendar.NewIndex(in)

		got, ok := idx.Resolve(day(time.June, 11))

		require.True(t, ok, "order %v", order)
		assert.Equal(t, "9", got.ID, "order %v", order)
	}
}

func TestIndex_Resolve_IsIdempotent(t *testing.T) {
	idx := calendar.NewIndex([]domain.AvailabilityWindow{
		window("b", day(time.June, 10), day(time.June, 12), 5),
		window("a", day(time.June, 10), day(time.June, 12), 5),
	})

	first, _ := idx.Resolve(day(time.June, 11))
	second, _ := idx.Resolve(day(time.June, 11))

	assert.Equal(t, first, second)
	assert.Equal(t, "a", first.ID)
}

func TestIndex_NewIndex_DoesNotRetainInput(t *testing.T) {
	input := []domain.AvailabilityWindow{window("a", day(time.June, 10), day(time.June, 12), 5)}
	idx := calendar.NewIndex(input)

	input[0].AvailableSlots = 0

	assert.True(t, idx.IsAvailable(day(time.June, 11), today))
}

// ---- IsAvailable -----------------------------------------------------------

func TestIndex_IsAvailable(t *testing.T) {
	idx := calendar.NewIndex([]domain.AvailabilityWindow{
		window("a", day(time.June, 10), day(time.June, 12), 5),
	})

	assert.True(t, idx.IsAvailable(day(time.June, 11), today))
	assert.False(t, idx.IsAvailable(day(time.June, 13), today))
}

func TestIndex_IsAvailable_PastAlwaysUnavailable(t *testing.T) {
	idx := calendar.NewIndex([]domain.AvailabilityWindow{
		window("a", day(time.April, 1), day(time.June, 30), 5),
	})

	for d := day(time.April, 1); d.Before(today); d = d.AddDays(1) {
		assert.False(t, idx.IsAvailable(d, today), "date %s", d)
	}
	assert.True(t, idx.IsAvailable(today, today), "today itself is bookable")
}

func TestIndex_IsAvailable_ZeroSlotsNeverAvailable(t *testing.T) {
	idx := calendar.NewIndex([]domain.AvailabilityWindow{
		window("a", day(time.June, 10), day(time.June, 12), 0),
	})

	for d := day(time.June, 10); !d.After(day(time.June, 12)); d = d.AddDays(1) {
		assert.False(t, idx.IsAvailable(d, today), "date %s", d)
	}
}

func TestIndex_IsAvailable_ZeroSlotWindowShadowsLaterOverlap(t *testing.T) {
	// The earliest-departure window wins the date even when it is full.
	idx := calendar.NewIndex([]domain.AvailabilityWindow{
		window("full", day(time.June, 8), day(time.June, 12), 0),
		window("open", day(time.June, 10), day(time.June, 12), 5),
	})

	assert.False(t, idx.IsAvailable(day(time.June, 11), today))
}

func TestIndex_NilIndex(t *testing.T) {
	var idx *calendar.Index

	_, ok := idx.Resolve(day(time.June, 1))
	assert.False(t, ok)
	assert.False(t, idx.IsAvailable(day(time.June, 1), today))
	assert.Equal(t, 0, idx.Len())
	assert.Empty(t, idx.Windows())
}

// ---- EarliestFutureWindow / FocusedMonth -----------------------------------

func TestIndex_EarliestFutureWindow(t *testing.T) {
	a := window("a", day(time.June, 10), day(time.June, 12), 5)
	b := window("b", day(time.June, 20), day(time.June, 22), 5)
	idx := calendar.NewIndex([]domain.AvailabilityWindow{b, a})

	got, ok := idx.EarliestFutureWindow(today)

	require.True(t, ok)
	assert.Equal(t, "a", got.ID)
}

func TestIndex_EarliestFutureWindow_SkipsPastDepartures(t *testing.T) {
	idx := calendar.NewIndex([]domain.AvailabilityWindow{
		window("past", day(time.April, 20), day(time.May, 5), 5),
		window("next", day(time.May, 1), day(time.May, 3), 0),
	})

	got, ok := idx.EarliestFutureWindow(today)

	require.True(t, ok)
	assert.Equal(t, "next", got.ID, "departure on today counts; slots are not considered")
}

func TestIndex_EarliestFutureWindow_TieBreaksOnID(t *testing.T) {
	idx := calendar.NewIndex([]domain.AvailabilityWindow{
		window("b", day(time.June, 10), day(time.June, 12), 5),
		window("a", day(time.June, 10), day(time.June, 11), 5),
	})

	got, ok := idx.EarliestFutureWindow(today)

	require.True(t, ok)
	assert.Equal(t, "a", got.ID)
}

func TestIndex_EarliestFutureWindow_None(t *testing.T) {
	idx := calendar.NewIndex([]domain.AvailabilityWindow{
		window("past", day(time.March, 1), day(time.March, 3), 5),
	})

	_, ok := idx.EarliestFutureWindow(today)
	assert.False(t, ok)

	_, ok = calendar.NewIndex(nil).EarliestFutureWindow(today)
	assert.False(t, ok)
}

func TestIndex_FocusedMonth(t *testing.T) {
	idx := calendar.NewIndex([]domain.AvailabilityWindow{
		window("a", day(time.June, 10), day(time.June, 12), 5),
	})

	assert.Equal(t, day(time.June, 1), idx.FocusedMonth(today))
	assert.Equal(t, day(time.July, 1), idx.FocusedMonth(day(time.July, 9)), "falls back to today's month")
}

// ---- concurrency -----------------------------------------------------------

func TestIndex_ConcurrentReaders(t *testing.T) {
	idx := calendar.NewIndex([]domain.AvailabilityWindow{
		window("a", day(time.June, 10), day(time.June, 12), 5),
		window("b", day(time.June, 20), day(time.June, 22), 5),
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for d := day(time.June, 1); !d.After(day(time.June, 30)); d = d.AddDays(1) {
				_ = calendar.Classify(idx, d, today)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, idx.Len())
}
