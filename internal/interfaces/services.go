package interfaces

import (
	"context"

	"github.com/sajid-itinnovator/stock-analyzer/internal/models"
)

// CredentialService resolves and persists per-capability credentials
type CredentialService interface {
	// Resolve walks primary store, local file, then the "none" sentinel.
	// It never returns an error.
	Resolve(ctx context.Context, userID string, capability models.Capability) models.ResolvedCredential

	// Bundle returns the full credential bundle and the tier that supplied it.
	Bundle(ctx context.Context, userID string) (*models.CredentialBundle, models.CredentialSource)

	// Save persists a partial bundle to the first tier that accepts it and
	// returns the resulting bundle. A bundle with SourceDefault was not persisted.
	Save(ctx context.Context, userID string, partial *models.CredentialBundle) (*models.CredentialBundle, models.CredentialSource)
}

// AdvisorService forwards analysis and chat requests to the agent
type AdvisorService interface {
	// Analyze never fails; an unreachable agent yields a simulated result.
	Analyze(ctx context.Context, userID string, req *models.AnalysisRequest) models.AgentResponse

	// Chat never fails; an unreachable agent yields a canned reply.
	Chat(ctx context.Context, userID string, req *models.ChatRequest) models.AgentResponse
}

// HistoryService records and lists analysis history
type HistoryService interface {
	Append(ctx context.Context, userID string, record *models.HistoryRecord) (*models.HistoryRecord, error)
	Query(ctx context.Context, userID string, filter models.HistoryFilter) ([]*models.HistoryRecord, error)
}

// NewsService aggregates market headlines
type NewsService interface {
	Latest(ctx context.Context) ([]*models.NewsItem, error)
}

// ProfileService reads and updates the user profile
type ProfileService interface {
	Get(ctx context.Context, userID string) *models.UserProfile
	Update(ctx context.Context, userID string, patch *models.ProfilePatch) *models.UserProfile
}
