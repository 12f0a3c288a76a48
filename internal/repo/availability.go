package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tourcal/internal/domain"
)

// AvailabilityRepo stores the upstream availability payloads of each tour.
// Payloads are kept verbatim (JSONB); parsing happens in the calendar package.
type AvailabilityRepo interface {
	// ListByTour returns every stored record of a tour in insertion order.
	ListByTour(ctx context.Context, tourID uuid.UUID) ([]domain.AvailabilityRecord, error)

	// Replace atomically swaps the tour's record set for payloads and returns
	// the number of records stored. An empty payloads slice clears the tour.
	Replace(ctx context.Context, tourID uuid.UUID, payloads [][]byte) (int, error)
}

// pgAvailabilityRepo is the Postgres implementation of AvailabilityRepo.
type pgAvailabilityRepo struct {
	db db
}

// NewAvailabilityRepo constructs an AvailabilityRepo backed by the provided db connection.
func NewAvailabilityRepo(db db) AvailabilityRepo {
	return &pgAvailabilityRepo{db: db}
}

// ListByTour returns the tour's records ordered by position.
func (r *pgAvailabilityRepo) ListByTour(ctx context.Context, tourID uuid.UUID) ([]domain.AvailabilityRecord, error) {
	const q = `
		SELECT id, tour_id, payload, created_at
		FROM availability_records
		WHERE tour_id = @tour_id
		ORDER BY position`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"tour_id": tourID})
	if err != nil {
		return nil, fmt.Errorf("repo.AvailabilityRepo.ListByTour: %w", err)
	}
	defer rows.Close()

	records := []domain.AvailabilityRecord{}
	for rows.Next() {
		rec, err := scanAvailabilityRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.AvailabilityRepo.ListByTour: scan: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.AvailabilityRepo.ListByTour: rows: %w", err)
	}
	return records, nil
}

// Replace deletes the tour's existing records and inserts payloads in one
// transaction, so readers never observe a half-replaced set.
func (r *pgAvailabilityRepo) Replace(ctx context.Context, tourID uuid.UUID, payloads [][]byte) (int, error) {
	const del = `DELETE FROM availability_records WHERE tour_id = @tour_id`
	const ins = `
		INSERT INTO availability_records (tour_id, position, payload)
		VALUES (@tour_id, @position, @payload)`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("repo.AvailabilityRepo.Replace: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, del, pgx.NamedArgs{"tour_id": tourID}); err != nil {
		return 0, fmt.Errorf("repo.AvailabilityRepo.Replace: delete: %w", err)
	}

	batch := &pgx.Batch{}
	for i, p := range payloads {
		batch.Queue(ins, pgx.NamedArgs{"tour_id": tourID, "position": i, "payload": string(p)})
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return 0, fmt.Errorf("repo.AvailabilityRepo.Replace: insert: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("repo.AvailabilityRepo.Replace: commit: %w", err)
	}
	return len(payloads), nil
}

// scanAvailabilityRecord maps a single database row into a domain.AvailabilityRecord.
func scanAvailabilityRecord(s scanner) (domain.AvailabilityRecord, error) {
	var (
		rec    domain.AvailabilityRecord
		id     pgtype.UUID
		tourID pgtype.UUID
	)
	if err := s.Scan(&id, &tourID, &rec.Payload, &rec.CreatedAt); err != nil {
		return domain.AvailabilityRecord{}, err
	}
	rec.ID = uuid.UUID(id.Bytes)
	rec.TourID = uuid.UUID(tourID.Bytes)
	return rec, nil
}
