package storage

import (
	"context"

	"github.com/sajid-itinnovator/stock-analyzer/internal/models"
)

// offlineStore stands in for the primary store when it could not be reached.
type offlineStore struct{}

func (offlineStore) GetUser(context.Context, string) (*models.UserProfile, error) {
	return nil, models.ErrStoreUnavailable
}

func (offlineStore) SaveUser(context.Context, *models.UserProfile) error {
	return models.ErrStoreUnavailable
}

func (offlineStore) GetCredentials(context.Context, string) (*models.CredentialBundle, error) {
	return nil, models.ErrStoreUnavailable
}

func (offlineStore) SaveCredentials(context.Context, string, *models.CredentialBundle) error {
	return models.ErrStoreUnavailable
}

func (offlineStore) AppendHistory(context.Context, *models.HistoryRecord) error {
	return models.ErrStoreUnavailable
}

func (offlineStore) QueryHistory(context.Context, string, models.HistoryFilter) ([]*models.HistoryRecord, error) {
	return nil, models.ErrStoreUnavailable
}
