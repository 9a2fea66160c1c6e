package models

import (
	"encoding/json"
	"time"
)

// AnalysisRequest is the body of POST /api/analyze.
type AnalysisRequest struct {
	Ticker string `json:"ticker"`
	Type   string `json:"type"`
	Period string `json:"period,omitempty"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string `json:"message"`
	Ticker  string `json:"ticker,omitempty"`
}

// AgentAnalyzePayload is what the agent receives on /agent/analyze.
type AgentAnalyzePayload struct {
	Ticker   string `json:"ticker"`
	Type     string `json:"type"`
	Period   string `json:"period,omitempty"`
	APIKey   string `json:"apiKey"`
	Provider string `json:"provider"`
	Model    string `json:"model,omitempty"`
}

// AgentChatPayload is what the agent receives on /agent/chat.
type AgentChatPayload struct {
	Message  string `json:"message"`
	Ticker   string `json:"ticker,omitempty"`
	APIKey   string `json:"apiKey"`
	Provider string `json:"provider"`
	Model    string `json:"model,omitempty"`
}

// AnalysisResult is the canned analysis returned when the agent is unavailable.
type AnalysisResult struct {
	Ticker     string         `json:"ticker"`
	Type       string         `json:"type"`
	Rating     string         `json:"rating"`
	Summary    string         `json:"summary"`
	KeyMetrics map[string]any `json:"keyMetrics"`
	Timestamp  time.Time      `json:"timestamp"`
}

// ChatReply is the canned chat reply returned when the agent is unavailable.
type ChatReply struct {
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// AgentResponse carries either the agent's body verbatim or a simulated one.
type AgentResponse struct {
	Raw       json.RawMessage
	Simulated bool
}

// MarshalJSON writes the body unchanged.
func (r AgentResponse) MarshalJSON() ([]byte, error) {
	if len(r.Raw) == 0 {
		return []byte("null"), nil
	}
	return r.Raw, nil
}
