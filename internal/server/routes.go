package server

import (
	"net/http"
	"os"
	"time"

	"github.com/sajid-itinnovator/stock-analyzer/internal/common"
	"github.com/sajid-itinnovator/stock-analyzer/internal/metrics"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/health", s.handleAPIHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.Handle("/metrics", metrics.Handler())

	// Agent proxy
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/chat", s.handleChat)

	// Credentials
	mux.HandleFunc("/api/credentials/active-key", s.handleActiveKey)
	mux.HandleFunc("/api/credentials", s.handleCredentials)

	// History, news, profile
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/news", s.handleNews)
	mux.HandleFunc("/api/profile", s.handleProfile)

	// Dashboard bundle
	if dir := s.app.Config.Server.StaticDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			s.logger.Info().Str("dir", dir).Msg("Serving static files")
			mux.Handle("/", http.FileServer(http.Dir(dir)))
			return
		}
		s.logger.Warn().Str("dir", dir).Msg("Static directory not found, not serving static files")
	}
	mux.HandleFunc("/", s.handleNotFound)
}

// userID returns the identity resolved by userContextMiddleware.
func (s *Server) userID(r *http.Request) string {
	return common.ResolveUserID(r.Context(), s.app.Config.Demo.Email)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusNotFound, "Not found")
}

// handleHealth is the liveness probe the dashboard polls.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "OK",
		"message": "Backend sub-system is running",
	})
}

func (s *Server) handleAPIHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	storage := "online"
	if !s.app.Storage.Available() {
		storage = "offline"
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"storage": storage,
		"uptime":  time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, common.GetBuildInfo())
}
