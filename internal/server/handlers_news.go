package server

import "net/http"

// handleNews handles GET /api/news.
func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	items, err := s.app.NewsService.Latest(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to fetch news feed")
		return
	}
	WriteJSON(w, http.StatusOK, items)
}
