package handler

import (
	"net/http"

	"github.com/pkordes/tourcal/internal/booking"
)

// ListCustomerBookings handles GET /customers/{customerID}/bookings.
func (s *Server) ListCustomerBookings(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathString(r, "customerID")
	if err != nil {
		s.badParam(w, r, "customerID", err)
		return
	}
	if err := s.validate.Var(customerID, "required,max=128,printascii"); err != nil {
		s.writeErrorBody(w, r, http.StatusUnprocessableEntity, "validation_error", "customerID must be 1-128 printable ASCII characters")
		return
	}

	history, err := s.bookings.History(r.Context(), customerID)
	if err != nil {
		s.writeError(w, r, err, "customer not found")
		return
	}
	s.writeJSON(w, r, http.StatusOK, BookingHistory{
		Upcoming: cardsToResponse(history.Upcoming),
		Past:     cardsToResponse(history.Past),
	})
}

// CancelBooking handles POST /bookings/{id}/cancel.
// Returns 409 once the booking is cancelled, departed or inside the notice period.
func (s *Server) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.badParam(w, r, "id", err)
		return
	}

	b, err := s.bookings.Cancel(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "booking not found")
		return
	}
	s.writeJSON(w, r, http.StatusOK, cardToResponse(booking.Card{
		Booking:        b,
		CancelDeadline: booking.Deadline(b.DepartureAt),
		Cancellable:    false,
	}))
}
