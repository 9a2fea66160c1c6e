package surrealdb

import (
	"context"
	"fmt"

	"github.com/sajid-itinnovator/stock-analyzer/internal/common"
	"github.com/sajid-itinnovator/stock-analyzer/internal/models"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// CredentialStore keeps one credential bundle per user, keyed by user ID.
type CredentialStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewCredentialStore(db *surrealdb.DB, logger *common.Logger) *CredentialStore {
	return &CredentialStore{
		db:     db,
		logger: logger,
	}
}

func credentialsRecordID(userID string) surrealmodels.RecordID {
	return surrealmodels.NewRecordID(tableCredentials, common.NormalizeUserID(userID))
}

func (s *CredentialStore) GetCredentials(ctx context.Context, userID string) (*models.CredentialBundle, error) {
	results, err := surrealdb.Query[[]models.CredentialBundle](ctx, s.db, "SELECT * FROM $rid", map[string]any{
		"rid": credentialsRecordID(userID),
	})
	if err != nil {
		if isNotFoundError(err) {
			return nil, fmt.Errorf("credentials for %s: %w", userID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to select credentials: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("credentials for %s: %w", userID, models.ErrNotFound)
	}
	bundle := (*results)[0].Result[0]
	if bundle.IsEmpty() {
		return nil, fmt.Errorf("credentials for %s: %w", userID, models.ErrNotFound)
	}
	return &bundle, nil
}

// SaveCredentials replaces the stored bundle. Callers merge partial updates first.
func (s *CredentialStore) SaveCredentials(ctx context.Context, userID string, bundle *models.CredentialBundle) error {
	doc := bundle.Clone()
	doc.UserID = common.NormalizeUserID(userID)

	vars := map[string]any{"rid": credentialsRecordID(userID), "bundle": doc}
	if err := writeWithRetry(ctx, s.db, "UPSERT $rid CONTENT $bundle", vars); err != nil {
		return fmt.Errorf("failed to save credentials after retries: %w", err)
	}
	return nil
}
