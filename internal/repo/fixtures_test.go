package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tourcal/internal/domain"
	"github.com/pkordes/tourcal/testutil"
)

// newTestTx opens a transaction against the test database. The transaction is
// automatically rolled back when the test finishes, giving free per-test isolation.
//
// Requires TEST_DATABASE_URL to be set; TestMain applies the migrations.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test, so no cleanup SQL is needed.
		_ = tx.Rollback(context.Background())
	})
	return tx
}

// insertTour writes a tour row directly; the service never creates tours.
func insertTour(t *testing.T, tx pgx.Tx, name string) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := tx.QueryRow(context.Background(),
		`INSERT INTO tours (name) VALUES (@name) RETURNING id`,
		pgx.NamedArgs{"name": name},
	).Scan(&id)
	require.NoError(t, err, "insert tour")
	return id
}

// insertBooking writes a booking row directly; bookings come from the reservation flow.
func insertBooking(t *testing.T, tx pgx.Tx, tourID uuid.UUID, customerID string, departure time.Time, status domain.BookingStatus) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := tx.QueryRow(context.Background(), `
		INSERT INTO bookings (tour_id, customer_id, departure_at, return_at, status)
		VALUES (@tour_id, @customer_id, @departure_at, @return_at, @status)
		RETURNING id`,
		pgx.NamedArgs{
			"tour_id":      tourID,
			"customer_id":  customerID,
			"departure_at": departure,
			"return_at":    departure.Add(72 * time.Hour),
			"status":       string(status),
		},
	).Scan(&id)
	require.NoError(t, err, "insert booking")
	return id
}
