package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tourcal/internal/domain"
	"github.com/pkordes/tourcal/internal/repo"
	"github.com/pkordes/tourcal/internal/service"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones your test needs.

type mockTourRepo struct {
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Tour, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Tour, int64, error)
}

func (m *mockTourRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Tour, error) {
	return m.getByID(ctx, id)
}
func (m *mockTourRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Tour, int64, error) {
	return m.listPaged(ctx, p)
}

type mockAvailabilityRepo struct {
	listByTour func(ctx context.Context, tourID uuid.UUID) ([]domain.AvailabilityRecord, error)
	replace    func(ctx context.Context, tourID uuid.UUID, payloads [][]byte) (int, error)
}

func (m *mockAvailabilityRepo) ListByTour(ctx context.Context, tourID uuid.UUID) ([]domain.AvailabilityRecord, error) {
	return m.listByTour(ctx, tourID)
}
func (m *mockAvailabilityRepo) Replace(ctx context.Context, tourID uuid.UUID, payloads [][]byte) (int, error) {
	return m.replace(ctx, tourID, payloads)
}

type mockBookingRepo struct {
	getByID        func(ctx context.Context, id uuid.UUID) (domain.Booking, error)
	listByCustomer func(ctx context.Context, customerID string) ([]domain.Booking, error)
	markCancelled  func(ctx context.Context, id uuid.UUID) (domain.Booking, error)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	return m.getByID(ctx, id)
}
func (m *mockBookingRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error) {
	return m.listByCustomer(ctx, customerID)
}
func (m *mockBookingRepo) MarkCancelled(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	return m.markCancelled(ctx, id)
}

type mockStore struct {
	put  func(ctx context.Context, sel domain.Selection) (string, error)
	take func(ctx context.Context, token string) (domain.Selection, error)
}

func (m *mockStore) Put(ctx context.Context, sel domain.Selection) (string, error) {
	return m.put(ctx, sel)
}
func (m *mockStore) Take(ctx context.Context, token string) (domain.Selection, error) {
	return m.take(ctx, token)
}

type mockPublisher struct {
	bookingCancelled func(ctx context.Context, b domain.Booking, at time.Time) error
}

func (m *mockPublisher) BookingCancelled(ctx context.Context, b domain.Booking, at time.Time) error {
	return m.bookingCancelled(ctx, b, at)
}

// compile-time checks: mocks must satisfy the interfaces they replace.
var (
	_ repo.TourRepo          = (*mockTourRepo)(nil)
	_ repo.AvailabilityRepo  = (*mockAvailabilityRepo)(nil)
	_ repo.BookingRepo       = (*mockBookingRepo)(nil)
	_ service.SelectionStore = (*mockStore)(nil)
	_ service.EventPublisher = (*mockPublisher)(nil)
)

// fixedClock returns a now func pinned to t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
