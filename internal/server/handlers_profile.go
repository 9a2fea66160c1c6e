package server

import (
	"net/http"

	"github.com/sajid-itinnovator/stock-analyzer/internal/models"
)

// handleProfile handles GET and PUT /api/profile.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		WriteJSON(w, http.StatusOK, s.app.ProfileService.Get(r.Context(), s.userID(r)))
	case http.MethodPut:
		var patch models.ProfilePatch
		if !DecodeJSON(w, r, &patch) {
			return
		}
		WriteJSON(w, http.StatusOK, s.app.ProfileService.Update(r.Context(), s.userID(r), &patch))
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut)
	}
}
