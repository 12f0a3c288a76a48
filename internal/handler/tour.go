package handler

import (
	"net/http"

	"github.com/pkordes/tourcal/internal/domain"
)

// ListTours handles GET /tours.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTours(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		s.badParam(w, r, "page", err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.badParam(w, r, "limit", err)
		return
	}

	params := domain.NewPaginationParams(page, limit)
	tours, total, err := s.tours.List(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	data := make([]Tour, len(tours))
	for i, t := range tours {
		data[i] = tourToResponse(t)
	}
	s.writeJSON(w, r, http.StatusOK, TourList{
		Data: data,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetTour handles GET /tours/{id}.
func (s *Server) GetTour(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.badParam(w, r, "id", err)
		return
	}

	tour, err := s.tours.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "tour not found")
		return
	}
	s.writeJSON(w, r, http.StatusOK, tourToResponse(tour))
}

// GetTourCalendar handles GET /tours/{id}/calendar.
// ?month= takes any date inside the wanted month; without it the month of the
// earliest upcoming departure is shown.
func (s *Server) GetTourCalendar(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.badParam(w, r, "id", err)
		return
	}
	month, err := queryDate(r, "month")
	if err != nil {
		s.badParam(w, r, "month", err)
		return
	}

	var focus *domain.Date
	if month != nil {
		d := domain.DateOf(month.Time)
		focus = &d
	}

	view, err := s.tours.Calendar(r.Context(), id, focus)
	if err != nil {
		s.writeError(w, r, err, "tour not found")
		return
	}
	s.writeJSON(w, r, http.StatusOK, calendarToResponse(view))
}

// ReplaceTourAvailability handles PUT /tours/{id}/availability.
// The request replaces the tour's whole availability feed.
func (s *Server) ReplaceTourAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.badParam(w, r, "id", err)
		return
	}
	var body ReplaceAvailabilityRequest
	if !s.decodeBody(w, r, &body) {
		return
	}

	n, err := s.tours.ReplaceAvailability(r.Context(), id, body.Availability)
	if err != nil {
		s.writeError(w, r, err, "tour not found")
		return
	}
	s.writeJSON(w, r, http.StatusOK, ReplaceAvailabilityResponse{Records: n})
}

// SelectTourDate handles POST /tours/{id}/selection.
// A bookable date is committed and parked; the response carries the token the
// client keeps through the login redirect. Past or unavailable dates get 409.
func (s *Server) SelectTourDate(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.badParam(w, r, "id", err)
		return
	}
	var body SelectDateRequest
	if !s.decodeBody(w, r, &body) {
		return
	}
	d, err := domain.ParseDate(body.Date)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	sel, err := s.tours.Select(r.Context(), id, d)
	if err != nil {
		s.writeError(w, r, err, "tour not found")
		return
	}
	token, err := s.selections.Park(r.Context(), sel)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	s.writeJSON(w, r, http.StatusCreated, SelectionCreated{
		Selection: selectionToResponse(sel),
		Token:     token,
	})
}
