package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tourcal/internal/domain"
	"github.com/pkordes/tourcal/internal/repo"
)

var bookingDeparture = time.Date(2030, 6, 10, 8, 0, 0, 0, time.UTC)

func TestBookingRepo_GetByID(t *testing.T) {
	tx := newTestTx(t)
	tourID := insertTour(t, tx, "Atlas")
	id := insertBooking(t, tx, tourID, "cust-1", bookingDeparture, domain.BookingConfirmed)
	r := repo.NewBookingRepo(tx)

	got, err := r.GetByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, tourID, got.TourID)
	assert.Equal(t, "cust-1", got.CustomerID)
	assert.True(t, got.DepartureAt.Equal(bookingDeparture))
	assert.Equal(t, domain.BookingConfirmed, got.Status)
}

func TestBookingRepo_GetByID_NotFound(t *testing.T) {
	r := repo.NewBookingRepo(newTestTx(t))

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingRepo_ListByCustomer(t *testing.T) {
	tx := newTestTx(t)
	tourID := insertTour(t, tx, "Atlas")
	insertBooking(t, tx, tourID, "cust-1", bookingDeparture, domain.BookingConfirmed)
	insertBooking(t, tx, tourID, "cust-1", bookingDeparture.AddDate(-1, 0, 0), domain.BookingCancelled)
	insertBooking(t, tx, tourID, "cust-2", bookingDeparture, domain.BookingPending)
	r := repo.NewBookingRepo(tx)

	got, err := r.ListByCustomer(context.Background(), "cust-1")

	require.NoError(t, err)
	assert.Len(t, got, 2)
	for _, b := range got {
		assert.Equal(t, "cust-1", b.CustomerID)
	}
}

func TestBookingRepo_ListByCustomer_Empty(t *testing.T) {
	r := repo.NewBookingRepo(newTestTx(t))

	got, err := r.ListByCustomer(context.Background(), "nobody")

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBookingRepo_MarkCancelled(t *testing.T) {
	tx := newTestTx(t)
	tourID := insertTour(t, tx, "Atlas")
	id := insertBooking(t, tx, tourID, "cust-1", bookingDeparture, domain.BookingConfirmed)
	r := repo.NewBookingRepo(tx)
	ctx := context.Background()

	got, err := r.MarkCancelled(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, got.Status)

	// A second cancel finds no row to update.
	_, err = r.MarkCancelled(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
