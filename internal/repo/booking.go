package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tourcal/internal/domain"
)

// BookingRepo defines the persistence operations for Bookings.
// Bookings are created by the reservation flow; this service reads them and
// records cancellations.
type BookingRepo interface {
	// GetByID retrieves a single booking by its UUID primary key.
	// Returns domain.ErrNotFound if no booking with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error)

	// ListByCustomer returns all bookings of a customer in no particular order.
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error)

	// MarkCancelled sets a booking's status to cancelled and returns the updated row.
	// Returns domain.ErrNotFound if the booking does not exist or is already cancelled.
	MarkCancelled(ctx context.Context, id uuid.UUID) (domain.Booking, error)
}

// pgBookingRepo is the Postgres implementation of BookingRepo.
type pgBookingRepo struct {
	db db
}

// NewBookingRepo constructs a BookingRepo backed by the provided db connection.
func NewBookingRepo(db db) BookingRepo {
	return &pgBookingRepo{db: db}
}

const bookingColumns = `id, tour_id, customer_id, departure_at, return_at, status, created_at, updated_at`

// GetByID retrieves a booking by primary key.
func (r *pgBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanBooking(row)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByCustomer returns every booking belonging to customerID.
// Ordering is left to the booking partitioner.
func (r *pgBookingRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings WHERE customer_id = @customer_id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"customer_id": customerID})
	if err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.ListByCustomer: %w", err)
	}
	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.BookingRepo.ListByCustomer: scan: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.ListByCustomer: rows: %w", err)
	}
	return bookings, nil
}

// MarkCancelled flips status to cancelled. The status guard makes the update
// idempotent under concurrent cancels: only the first one returns a row.
func (r *pgBookingRepo) MarkCancelled(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	q := `
		UPDATE bookings
		SET status     = 'cancelled',
		    updated_at = now()
		WHERE id = @id
		  AND status <> 'cancelled'
		RETURNING ` + bookingColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanBooking(row)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.MarkCancelled: %w", err)
	}
	return result, nil
}

// scanBooking maps a single database row into a domain.Booking.
func scanBooking(s scanner) (domain.Booking, error) {
	var (
		b      domain.Booking
		id     pgtype.UUID
		tourID pgtype.UUID
		status string
	)
	err := s.Scan(&id, &tourID, &b.CustomerID, &b.DepartureAt, &b.ReturnAt, &status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Booking{}, domain.ErrNotFound
		}
		return domain.Booking{}, err
	}
	b.ID = uuid.UUID(id.Bytes)
	b.TourID = uuid.UUID(tourID.Bytes)
	b.Status = domain.BookingStatus(status)
	b.DepartureAt = b.DepartureAt.UTC()
	b.ReturnAt = b.ReturnAt.UTC()
	return b, nil
}
