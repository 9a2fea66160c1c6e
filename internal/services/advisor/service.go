// Package advisor forwards analysis and chat requests to the external agent,
// attaching the resolved credential, and substitutes a canned reply when the
// agent cannot answer.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sajid-itinnovator/stock-analyzer/internal/common"
	"github.com/sajid-itinnovator/stock-analyzer/internal/interfaces"
	"github.com/sajid-itinnovator/stock-analyzer/internal/metrics"
	"github.com/sajid-itinnovator/stock-analyzer/internal/models"
)

// Compile-time interface check
var _ interfaces.AdvisorService = (*Service)(nil)

const (
	advisorSender = "AI Advisor"
	fallbackHold  = "Hold"

	reasonAgentFailed = "AI agent failed to process request"
	reasonNoAgent     = "Connection to AI agent failed"
)

// Service implements AdvisorService
type Service struct {
	credentials interfaces.CredentialService
	agent       interfaces.AgentClient
	logger      *common.Logger
	now         func() time.Time
}

// NewService creates a new advisor service
func NewService(credentials interfaces.CredentialService, agent interfaces.AgentClient, logger *common.Logger) *Service {
	return &Service{
		credentials: credentials,
		agent:       agent,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Analyze asks the agent for an analysis of req.Ticker. News analysis uses the
// search credential, every other type the LLM credential.
func (s *Service) Analyze(ctx context.Context, userID string, req *models.AnalysisRequest) models.AgentResponse {
	cred := s.credentials.Resolve(ctx, userID, models.CapabilityForAnalysis(req.Type))

	raw, err := s.agent.Analyze(ctx, &models.AgentAnalyzePayload{
		Ticker:   req.Ticker,
		Type:     req.Type,
		Period:   req.Period,
		APIKey:   cred.APIKey,
		Provider: cred.Provider,
		Model:    cred.Model,
	})
	if err == nil {
		return models.AgentResponse{Raw: raw}
	}

	metrics.RecordAgentFallback("analyze")
	s.logger.Warn().
		Err(err).
		Str("ticker", req.Ticker).
		Str("type", req.Type).
		Str("credential_source", string(cred.Source)).
		Msg("Agent analysis failed, returning simulated result")

	return s.simulated(models.AnalysisResult{
		Ticker:     req.Ticker,
		Type:       req.Type,
		Rating:     fallbackHold,
		Summary:    fmt.Sprintf("Simulated %s analysis (agent unavailable).", req.Type),
		KeyMetrics: map[string]any{},
		Timestamp:  s.now(),
	})
}

// Chat relays a message to the agent with the user's LLM credential.
func (s *Service) Chat(ctx context.Context, userID string, req *models.ChatRequest) models.AgentResponse {
	cred := s.credentials.Resolve(ctx, userID, models.CapabilityLLM)

	raw, err := s.agent.Chat(ctx, &models.AgentChatPayload{
		Message:  req.Message,
		Ticker:   req.Ticker,
		APIKey:   cred.APIKey,
		Provider: cred.Provider,
		Model:    cred.Model,
	})
	if err == nil {
		return models.AgentResponse{Raw: raw}
	}

	metrics.RecordAgentFallback("chat")
	s.logger.Warn().
		Err(err).
		Str("ticker", req.Ticker).
		Bool("key_configured", cred.Configured()).
		Msg("Agent chat failed, returning canned reply")

	subject := req.Ticker
	if subject == "" {
		subject = "the market"
	}
	reason := reasonNoAgent
	if cred.Configured() {
		reason = reasonAgentFailed
	}

	return s.simulated(models.ChatReply{
		Sender:    advisorSender,
		Text:      fmt.Sprintf("I received your message about %s: \"%s\". (Note: %s)", subject, req.Message, reason),
		Timestamp: s.now(),
	})
}

func (s *Service) simulated(v any) models.AgentResponse {
	raw, err := json.Marshal(v)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode simulated agent reply")
		raw = []byte("{}")
	}
	return models.AgentResponse{Raw: raw, Simulated: true}
}
