// Package profile serves the user profile, falling back to a built-in demo
// profile whenever the primary store cannot answer.
package profile

import (
	"context"
	"errors"

	"github.com/sajid-itinnovator/stock-analyzer/internal/common"
	"github.com/sajid-itinnovator/stock-analyzer/internal/interfaces"
	"github.com/sajid-itinnovator/stock-analyzer/internal/models"
)

// Compile-time interface check
var _ interfaces.ProfileService = (*Service)(nil)

// Service implements ProfileService
type Service struct {
	storage  interfaces.StorageManager
	mockName string
	logger   *common.Logger
}

// NewService creates a new profile service. mockName is the display name of
// profiles created from the demo template.
func NewService(storage interfaces.StorageManager, mockName string, logger *common.Logger) *Service {
	return &Service{
		storage:  storage,
		mockName: mockName,
		logger:   logger,
	}
}

func (s *Service) mock(userID string) *models.UserProfile {
	return models.MockProfile(s.mockName, common.NormalizeUserID(userID))
}

// Get returns the stored profile. A missing profile is created from the demo
// template; any store failure returns the template unsaved.
func (s *Service) Get(ctx context.Context, userID string) *models.UserProfile {
	users := s.storage.UserStore()

	profile, err := users.GetUser(ctx, userID)
	if err == nil {
		return profile
	}
	if !errors.Is(err, models.ErrNotFound) {
		s.logger.Warn().Err(err).Str("user", userID).Msg("Profile fetch failed, using mock profile")
		return s.mock(userID)
	}

	profile = s.mock(userID)
	if err := users.SaveUser(ctx, profile); err != nil {
		s.logger.Warn().Err(err).Str("user", userID).Msg("Failed to create profile, using mock profile")
		return s.mock(userID)
	}
	s.logger.Info().Str("user", profile.Email).Msg("Created profile from demo template")
	return profile
}

// Update applies patch to the stored profile. When the patch is invalid, the
// user does not exist or the store fails, the patch is applied to the demo
// template and returned unsaved.
func (s *Service) Update(ctx context.Context, userID string, patch *models.ProfilePatch) *models.UserProfile {
	if err := patch.Validate(); err != nil {
		s.logger.Warn().Err(err).Str("user", userID).Msg("Invalid profile update, returning patched mock")
		return patch.Apply(s.mock(userID))
	}

	users := s.storage.UserStore()

	current, err := users.GetUser(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user", userID).Msg("Profile update skipped, returning patched mock")
		return patch.Apply(s.mock(userID))
	}

	updated := patch.Apply(current)
	if err := users.SaveUser(ctx, updated); err != nil {
		s.logger.Warn().Err(err).Str("user", userID).Msg("Profile update failed, returning patched mock")
		return patch.Apply(s.mock(userID))
	}
	return updated
}
