package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tourcal/internal/domain"
	"github.com/pkordes/tourcal/internal/handler"
	"github.com/pkordes/tourcal/internal/service"
)

// Test doubles for the handler's service interfaces.
// Set only the method fields your test needs.

type mockTourServicer struct {
	getByID             func(ctx context.Context, id uuid.UUID) (domain.Tour, error)
	list                func(ctx context.Context, p domain.PaginationParams) ([]domain.Tour, int64, error)
	calendar            func(ctx context.Context, tourID uuid.UUID, month *domain.Date) (service.CalendarView, error)
	selectDate          func(ctx context.Context, tourID uuid.UUID, d domain.Date) (domain.Selection, error)
	replaceAvailability func(ctx context.Context, tourID uuid.UUID, payloads []json.RawMessage) (int, error)
}

func (m *mockTourServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Tour, error) {
	return m.getByID(ctx, id)
}
func (m *mockTourServicer) List(ctx context.Context, p domain.PaginationParams) ([]domain.Tour, int64, error) {
	return m.list(ctx, p)
}
func (m *mockTourServicer) Calendar(ctx context.Context, tourID uuid.UUID, month *domain.Date) (service.CalendarView, error) {
	return m.calendar(ctx, tourID, month)
}
func (m *mockTourServicer) Select(ctx context.Context, tourID uuid.UUID, d domain.Date) (domain.Selection, error) {
	return m.selectDate(ctx, tourID, d)
}
func (m *mockTourServicer) ReplaceAvailability(ctx context.Context, tourID uuid.UUID, payloads []json.RawMessage) (int, error) {
	return m.replaceAvailability(ctx, tourID, payloads)
}

type mockSelectionServicer struct {
	park   func(ctx context.Context, sel domain.Selection) (string, error)
	resume func(ctx context.Context, token string) (domain.Selection, error)
}

func (m *mockSelectionServicer) Park(ctx context.Context, sel domain.Selection) (string, error) {
	return m.park(ctx, sel)
}
func (m *mockSelectionServicer) Resume(ctx context.Context, token string) (domain.Selection, error) {
	return m.resume(ctx, token)
}

type mockBookingServicer struct {
	history func(ctx context.Context, customerID string) (service.BookingHistory, error)
	cancel  func(ctx context.Context, id uuid.UUID) (domain.Booking, error)
}

func (m *mockBookingServicer) History(ctx context.Context, customerID string) (service.BookingHistory, error) {
	return m.history(ctx, customerID)
}
func (m *mockBookingServicer) Cancel(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	return m.cancel(ctx, id)
}

// compile-time checks: mocks must satisfy the handler interfaces.
var (
	_ handler.TourServicer      = (*mockTourServicer)(nil)
	_ handler.SelectionServicer = (*mockSelectionServicer)(nil)
	_ handler.BookingServicer   = (*mockBookingServicer)(nil)
	_ handler.TourServicer      = (*service.TourService)(nil)
	_ handler.SelectionServicer = (*service.SelectionService)(nil)
	_ handler.BookingServicer   = (*service.BookingService)(nil)
)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mocks into the chi router.
// This mirrors exactly how main.go wires it in production.
func newHTTPHandler(tours handler.TourServicer, selections handler.SelectionServicer, bookings handler.BookingServicer) http.Handler {
	return handler.NewServer(tours, selections, bookings, nil).Handler()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, body *bytes.Buffer) handler.ErrorDetail {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp.Error
}
