package server

import (
	"net/http"
	"strings"

	"github.com/sajid-itinnovator/stock-analyzer/internal/models"
)

// handleAnalyze handles POST /api/analyze.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.AnalysisRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.Ticker = strings.TrimSpace(req.Ticker)
	req.Type = strings.TrimSpace(req.Type)
	if req.Ticker == "" || req.Type == "" {
		WriteError(w, http.StatusBadRequest, "ticker and type are required")
		return
	}

	resp := s.app.AdvisorService.Analyze(r.Context(), s.userID(r), &req)
	if resp.Simulated {
		w.Header().Set("X-StockAI-Simulated", "true")
	}
	WriteJSON(w, http.StatusOK, resp)
}

// handleChat handles POST /api/chat.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.ChatRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		WriteError(w, http.StatusBadRequest, "message is required")
		return
	}

	resp := s.app.AdvisorService.Chat(r.Context(), s.userID(r), &req)
	if resp.Simulated {
		w.Header().Set("X-StockAI-Simulated", "true")
	}
	WriteJSON(w, http.StatusOK, resp)
}
