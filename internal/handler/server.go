// Package handler implements the HTTP handlers for the tour calendar API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, tour.go, booking.go, ...) but share the same Server struct
// so they can access its dependencies. Routes are declared in Handler and
// mirror spec/openapi.yaml.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pkordes/tourcal/internal/domain"
	"github.com/pkordes/tourcal/internal/service"
)

// TourServicer defines the calendar operations the tour handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TourServicer interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Tour, error)
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Tour, int64, error)
	Calendar(ctx context.Context, tourID uuid.UUID, month *domain.Date) (service.CalendarView, error)
	Select(ctx context.Context, tourID uuid.UUID, d domain.Date) (domain.Selection, error)
	ReplaceAvailability(ctx context.Context, tourID uuid.UUID, payloads []json.RawMessage) (int, error)
}

// SelectionServicer parks and resumes selections across the login redirect.
type SelectionServicer interface {
	Park(ctx context.Context, sel domain.Selection) (string, error)
	Resume(ctx context.Context, token string) (domain.Selection, error)
}

// BookingServicer defines the customer booking operations.
type BookingServicer interface {
	History(ctx context.Context, customerID string) (service.BookingHistory, error)
	Cancel(ctx context.Context, id uuid.UUID) (domain.Booking, error)
}

// Server holds the dependencies shared by every handler.
// Wire it in main.go via server.Handler().
type Server struct {
	tours      TourServicer
	selections SelectionServicer
	bookings   BookingServicer
	log        *slog.Logger
	validate   *validator.Validate
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default().
func NewServer(tours TourServicer, selections SelectionServicer, bookings BookingServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		tours:      tours,
		selections: selections,
		bookings:   bookings,
		log:        log,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil)
}

// Handler returns the chi router serving every API route.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Get("/tours", s.ListTours)
	r.Get("/tours/{id}", s.GetTour)
	r.Get("/tours/{id}/calendar", s.GetTourCalendar)
	r.Put("/tours/{id}/availability", s.ReplaceTourAvailability)
	r.Post("/tours/{id}/selection", s.SelectTourDate)

	r.Get("/selections/{token}", s.ResumeSelection)

	r.Get("/customers/{customerID}/bookings", s.ListCustomerBookings)
	r.Post("/bookings/{id}/cancel", s.CancelBooking)

	return r
}
