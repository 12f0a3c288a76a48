package handler

import (
	"encoding/json"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tourcal/internal/booking"
	"github.com/pkordes/tourcal/internal/calendar"
	"github.com/pkordes/tourcal/internal/domain"
	"github.com/pkordes/tourcal/internal/service"
)

// Wire types. Field names and JSON tags follow the schemas in spec/openapi.yaml.

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Tour is the API representation of a tour.
type Tour struct {
	Id        openapi_types.UUID `json:"id"`
	Name      string             `json:"name"`
	CreatedAt time.Time          `json:"created_at"`
}

// TourList is the body of GET /tours.
type TourList struct {
	Data       []Tour     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Window is one bookable departure.
type Window struct {
	Id              string             `json:"id"`
	DepartureAt     time.Time          `json:"departure_at"`
	ReturnAt        time.Time          `json:"return_at"`
	DepartureDate   openapi_types.Date `json:"departure_date"`
	ReturnDate      openapi_types.Date `json:"return_date"`
	AvailableSlots  int                `json:"available_slots"`
	BookingDeadline *time.Time         `json:"booking_deadline,omitempty"`
}

// Day is one calendar cell.
type Day struct {
	Date       openapi_types.Date `json:"date"`
	Class      string             `json:"class"`
	Selectable bool               `json:"selectable"`
	WindowId   *string            `json:"window_id,omitempty"`
}

// Calendar is the body of GET /tours/{id}/calendar.
type Calendar struct {
	Tour     Tour               `json:"tour"`
	Month    openapi_types.Date `json:"month"`
	Earliest *Window            `json:"earliest,omitempty"`
	Days     []Day              `json:"days"`
}

// SelectDateRequest is the body of POST /tours/{id}/selection.
type SelectDateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

// Selection is a committed date pick and the window it resolved to.
type Selection struct {
	Window     Window             `json:"window"`
	PickedDate openapi_types.Date `json:"picked_date"`
	RangeStart openapi_types.Date `json:"range_start"`
	RangeEnd   openapi_types.Date `json:"range_end"`
}

// SelectionCreated is the body of a successful POST /tours/{id}/selection.
// Token is carried through login and redeemed at GET /selections/{token}.
type SelectionCreated struct {
	Selection Selection `json:"selection"`
	Token     string    `json:"token"`
}

// ReplaceAvailabilityRequest is the body of PUT /tours/{id}/availability.
// Each element is one upstream record, stored verbatim.
type ReplaceAvailabilityRequest struct {
	Availability []json.RawMessage `json:"availability" validate:"required,max=5000,dive,required"`
}

// ReplaceAvailabilityResponse reports how many records were stored.
type ReplaceAvailabilityResponse struct {
	Records int `json:"records"`
}

// Booking is a booking card on the "my bookings" page.
type Booking struct {
	Id             openapi_types.UUID `json:"id"`
	TourId         openapi_types.UUID `json:"tour_id"`
	CustomerId     string             `json:"customer_id"`
	DepartureAt    time.Time          `json:"departure_at"`
	ReturnAt       time.Time          `json:"return_at"`
	Status         string             `json:"status"`
	CancelDeadline time.Time          `json:"cancel_deadline"`
	Cancellable    bool               `json:"cancellable"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// BookingHistory is the body of GET /customers/{customerID}/bookings.
type BookingHistory struct {
	Upcoming []Booking `json:"upcoming"`
	Past     []Booking `json:"past"`
}

// --- mapping helpers --------------------------------------------------------

func toAPIDate(d domain.Date) openapi_types.Date {
	return openapi_types.Date{Time: d.Time()}
}

func tourToResponse(t domain.Tour) Tour {
	return Tour{Id: t.ID, Name: t.Name, CreatedAt: t.CreatedAt.UTC()}
}

func windowToResponse(w domain.AvailabilityWindow) Window {
	resp := Window{
		Id:             w.ID,
		DepartureAt:    w.DepartureAt,
		ReturnAt:       w.ReturnAt,
		DepartureDate:  toAPIDate(w.DepartureDate),
		ReturnDate:     toAPIDate(w.ReturnDate),
		AvailableSlots: w.AvailableSlots,
	}
	if w.BookingDeadline != nil {
		bd := *w.BookingDeadline
		resp.BookingDeadline = &bd
	}
	return resp
}

func dayToResponse(c calendar.DayCell) Day {
	d := Day{
		Date:       toAPIDate(c.Date),
		Class:      c.Class.String(),
		Selectable: c.Selectable,
	}
	if c.WindowID != "" {
		id := c.WindowID
		d.WindowId = &id
	}
	return d
}

func calendarToResponse(v service.CalendarView) Calendar {
	days := make([]Day, len(v.Days))
	for i, c := range v.Days {
		days[i] = dayToResponse(c)
	}
	resp := Calendar{
		Tour:  tourToResponse(v.Tour),
		Month: toAPIDate(v.Month),
		Days:  days,
	}
	if v.Earliest != nil {
		w := windowToResponse(*v.Earliest)
		resp.Earliest = &w
	}
	return resp
}

func selectionToResponse(sel domain.Selection) Selection {
	return Selection{
		Window:     windowToResponse(sel.Window),
		PickedDate: toAPIDate(sel.PickedDate),
		RangeStart: toAPIDate(sel.RangeStart),
		RangeEnd:   toAPIDate(sel.RangeEnd),
	}
}

func cardToResponse(c booking.Card) Booking {
	return Booking{
		Id:             c.ID,
		TourId:         c.TourID,
		CustomerId:     c.CustomerID,
		DepartureAt:    c.DepartureAt.UTC(),
		ReturnAt:       c.ReturnAt.UTC(),
		Status:         string(c.Status),
		CancelDeadline: c.CancelDeadline,
		Cancellable:    c.Cancellable,
		CreatedAt:      c.CreatedAt.UTC(),
		UpdatedAt:      c.UpdatedAt.UTC(),
	}
}

func cardsToResponse(cards []booking.Card) []Booking {
	out := make([]Booking, len(cards))
	for i, c := range cards {
		out[i] = cardToResponse(c)
	}
	return out
}
