package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pkordes/tourcal/internal/domain"
)

// writeJSON encodes v with the given status. Encoding errors are logged;
// the status line has already been sent by then.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.ErrorContext(r.Context(), "encode response", "path", r.URL.Path, "error", err)
	}
}

func (s *Server) writeErrorBody(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	s.writeJSON(w, r, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// writeError maps a service error onto a status code. notFound is the
// message used for domain.ErrNotFound because the handler is the layer that
// knows what was being looked up.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var rej *domain.Rejection
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &rej):
		s.writeErrorBody(w, r, http.StatusConflict, string(rej.Reason),
			fmt.Sprintf("%s is not available", rej.Date))
	case errors.Is(err, domain.ErrNotFound):
		s.writeErrorBody(w, r, http.StatusNotFound, "not_found", notFound)
	case errors.Is(err, domain.ErrValidation):
		s.writeErrorBody(w, r, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrNotCancellable):
		s.writeErrorBody(w, r, http.StatusConflict, "not_cancellable", unwrapMessage(err, domain.ErrNotCancellable))
	case errors.Is(err, domain.ErrNotAvailable):
		s.writeErrorBody(w, r, http.StatusConflict, "not_available", "date is not available")
	case errors.As(err, &tooLarge):
		s.writeErrorBody(w, r, http.StatusRequestEntityTooLarge, "payload_too_large",
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
	default:
		s.log.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		s.writeErrorBody(w, r, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// badParam reports a path or query parameter that failed to bind.
func (s *Server) badParam(w http.ResponseWriter, r *http.Request, name string, err error) {
	s.writeErrorBody(w, r, http.StatusBadRequest, "invalid_parameter",
		fmt.Sprintf("invalid %s: %v", name, err))
}

// decodeBody reads a JSON request body into dst and runs struct validation.
// It writes the error response itself and reports whether the caller may continue.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, err, "")
			return false
		}
		s.writeErrorBody(w, r, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		s.writeErrorBody(w, r, http.StatusUnprocessableEntity, "validation_error", validationMessage(err))
		return false
	}
	return true
}

// validationMessage renders validator errors as "field: rule" pairs.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			parts = append(parts, field+" is required")
		case "datetime":
			parts = append(parts, field+" must be a date in "+fe.Param()+" format")
		case "max":
			parts = append(parts, field+" must have at most "+fe.Param()+" items")
		default:
			parts = append(parts, field+" failed "+fe.Tag())
		}
	}
	return strings.Join(parts, "; ")
}

// unwrapMessage extracts the human-readable part after a wrapped sentinel.
// e.g. "service.X: validation error: date is required" → "date is required"
func unwrapMessage(err, sentinel error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return sentinel.Error()
}
