package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sajid-itinnovator/stock-analyzer/internal/models"
)

// handleHistory handles GET and POST /api/history.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleHistoryList(w, r)
	case http.MethodPost:
		s.handleHistoryCreate(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.HistoryFilter{
		Ticker: strings.TrimSpace(q.Get("ticker")),
		Type:   models.AnalysisType(strings.TrimSpace(q.Get("type"))),
	}

	records, err := s.app.HistoryService.Query(r.Context(), s.userID(r), filter)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, records)
}

func (s *Server) handleHistoryCreate(w http.ResponseWriter, r *http.Request) {
	var record models.HistoryRecord
	if !DecodeJSON(w, r, &record) {
		return
	}

	saved, err := s.app.HistoryService.Append(r.Context(), s.userID(r), &record)
	switch {
	case err == nil:
		WriteJSON(w, http.StatusCreated, saved)
	case errors.Is(err, models.ErrUserNotFound):
		WriteError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, models.ErrInvalidRecord):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrStoreUnavailable):
		s.logger.Warn().Err(err).Msg("History append rejected, primary store unavailable")
		WriteError(w, http.StatusServiceUnavailable, "History store unavailable")
	default:
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
