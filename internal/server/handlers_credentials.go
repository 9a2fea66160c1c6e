package server

import (
	"net/http"

	"github.com/sajid-itinnovator/stock-analyzer/internal/models"
)

// credentialSourceHeader reports which tier served or stored a bundle.
const credentialSourceHeader = "X-StockAI-Credential-Source"

// activeKeyResponse is the body of GET /api/credentials/active-key.
type activeKeyResponse struct {
	Provider string `json:"provider"`
	APIKey   string `json:"apiKey"`
	Model    string `json:"model"`
	Message  string `json:"message,omitempty"`
}

// handleCredentials handles GET and PUT /api/credentials.
func (s *Server) handleCredentials(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		bundle, source := s.app.CredentialService.Bundle(r.Context(), s.userID(r))
		w.Header().Set(credentialSourceHeader, string(source))
		WriteJSON(w, http.StatusOK, bundle)
	case http.MethodPut:
		var partial models.CredentialBundle
		if !DecodeJSON(w, r, &partial) {
			return
		}
		bundle, source := s.app.CredentialService.Save(r.Context(), s.userID(r), &partial)
		w.Header().Set(credentialSourceHeader, string(source))
		WriteJSON(w, http.StatusOK, bundle)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut)
	}
}

// handleActiveKey handles GET /api/credentials/active-key.
func (s *Server) handleActiveKey(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	cred := s.app.CredentialService.Resolve(r.Context(), s.userID(r), models.CapabilityLLM)
	w.Header().Set(credentialSourceHeader, string(cred.Source))

	resp := activeKeyResponse{Provider: cred.Provider, APIKey: cred.APIKey, Model: cred.Model}
	if !cred.Configured() {
		resp.Message = "No API key configured."
	}
	WriteJSON(w, http.StatusOK, resp)
}
