package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/sajid-itinnovator/stock-analyzer/internal/common"
	"github.com/sajid-itinnovator/stock-analyzer/internal/models"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// UserStore keeps user profiles keyed by lowercased email.
type UserStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewUserStore(db *surrealdb.DB, logger *common.Logger) *UserStore {
	return &UserStore{
		db:     db,
		logger: logger,
	}
}

func userRecordID(email string) surrealmodels.RecordID {
	return surrealmodels.NewRecordID(tableUser, common.NormalizeUserID(email))
}

func (s *UserStore) GetUser(ctx context.Context, email string) (*models.UserProfile, error) {
	results, err := surrealdb.Query[[]models.UserProfile](ctx, s.db, "SELECT * FROM $rid", map[string]any{
		"rid": userRecordID(email),
	})
	if err != nil {
		if isNotFoundError(err) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to select user: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, models.ErrUserNotFound
	}
	return &(*results)[0].Result[0], nil
}

func (s *UserStore) SaveUser(ctx context.Context, profile *models.UserProfile) error {
	if profile.Email == "" {
		return fmt.Errorf("%w: user email is required", models.ErrInvalidRecord)
	}
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	vars := map[string]any{"rid": userRecordID(profile.Email), "user": profile}
	if err := writeWithRetry(ctx, s.db, "UPSERT $rid CONTENT $user", vars); err != nil {
		return fmt.Errorf("failed to save user after retries: %w", err)
	}
	return nil
}
