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

// TourRepo defines the read operations for Tours.
// Tours are created by the catalogue admin tooling; this service only reads them.
type TourRepo interface {
	// GetByID retrieves a single tour by its UUID primary key.
	// Returns domain.ErrNotFound if no tour with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Tour, error)

	// ListPaged returns one page of tours ordered by name, plus the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Tour, int64, error)
}

// pgTourRepo is the Postgres implementation of TourRepo.
type pgTourRepo struct {
	db db
}

// NewTourRepo constructs a TourRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTourRepo(db db) TourRepo {
	return &pgTourRepo{db: db}
}

// GetByID retrieves a tour by primary key.
func (r *pgTourRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Tour, error) {
	const q = `
		SELECT id, name, created_at
		FROM tours
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTour(row)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("repo.TourRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of tours ordered by name, id.
func (r *pgTourRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Tour, int64, error) {
	const countQ = `SELECT count(*) FROM tours`
	const q = `
		SELECT id, name, created_at
		FROM tours
		ORDER BY name, id
		LIMIT @limit OFFSET @offset`

	var total int64
	if err := r.db.QueryRow(ctx, countQ).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TourRepo.ListPaged: count: %w", err)
	}

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TourRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	tours := []domain.Tour{}
	for rows.Next() {
		t, err := scanTour(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TourRepo.ListPaged: scan: %w", err)
		}
		tours = append(tours, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TourRepo.ListPaged: rows: %w", err)
	}
	return tours, total, nil
}

// scanTour maps a single database row into a domain.Tour.
func scanTour(s scanner) (domain.Tour, error) {
	var (
		t  domain.Tour
		id pgtype.UUID
	)
	err := s.Scan(&id, &t.Name, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Tour{}, domain.ErrNotFound
		}
		return domain.Tour{}, err
	}
	t.ID = uuid.UUID(id.Bytes)
	return t, nil
}
