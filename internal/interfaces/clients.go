package interfaces

import (
	"context"
	"encoding/json"

	"github.com/sajid-itinnovator/stock-analyzer/internal/models"
)

// AgentClient provides access to the external analysis agent
type AgentClient interface {
	// Analyze posts to /agent/analyze and returns the JSON object body.
	Analyze(ctx context.Context, payload *models.AgentAnalyzePayload) (json.RawMessage, error)

	// Chat posts to /agent/chat and returns the JSON object body.
	Chat(ctx context.Context, payload *models.AgentChatPayload) (json.RawMessage, error)
}

// FeedFetcher retrieves and parses a single RSS/Atom feed
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (*models.Feed, error)
}
