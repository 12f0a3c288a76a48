package handler

import "net/http"

// ResumeSelection handles GET /selections/{token}.
// Called after login to restore the date the user picked before the redirect.
func (s *Server) ResumeSelection(w http.ResponseWriter, r *http.Request) {
	token, err := pathString(r, "token")
	if err != nil {
		s.badParam(w, r, "token", err)
		return
	}

	sel, err := s.selections.Resume(r.Context(), token)
	if err != nil {
		s.writeError(w, r, err, "selection not found or expired")
		return
	}
	s.writeJSON(w, r, http.StatusOK, selectionToResponse(sel))
}
