// Package credentials resolves and persists per-capability API credentials
// across the primary store, the local credential file and compiled-in defaults.
package credentials

import (
	"context"
	"errors"

	"github.com/sajid-itinnovator/stock-analyzer/internal/common"
	"github.com/sajid-itinnovator/stock-analyzer/internal/interfaces"
	"github.com/sajid-itinnovator/stock-analyzer/internal/metrics"
	"github.com/sajid-itinnovator/stock-analyzer/internal/models"
)

// Service implements CredentialService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new credential service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// primaryLookup is the outcome of reading a user's bundle from the primary store.
type primaryLookup struct {
	user   models.Lookup[*models.UserProfile]
	bundle models.Lookup[*models.CredentialBundle]
}

// userExists reports whether the primary store answered and holds the user.
func (p primaryLookup) userExists() bool {
	return p.user.OK()
}

func (s *Service) lookupPrimary(ctx context.Context, userID string) primaryLookup {
	var out primaryLookup
	out.user = models.LookupFromError(s.storage.UserStore().GetUser(ctx, userID))
	if !out.user.OK() {
		out.bundle = models.Lookup[*models.CredentialBundle]{Status: out.user.Status, Detail: out.user.Detail}
		return out
	}
	out.bundle = models.LookupFromError(s.storage.CredentialStore().GetCredentials(ctx, userID))
	return out
}

func (s *Service) lookupLocal() models.Lookup[*models.CredentialBundle] {
	return models.LookupFromError(s.storage.LocalCredentials().Read())
}

// Resolve returns the credential for capability, walking primary store,
// local file, then the "none" sentinel. A tier without a non-empty key
// for the capability is skipped.
func (s *Service) Resolve(ctx context.Context, userID string, capability models.Capability) models.ResolvedCredential {
	if !capability.Valid() {
		s.logger.Warn().Str("user", userID).Str("capability", string(capability)).Msg("Unknown capability, no credential")
		return s.resolved(capability, models.NoCredential())
	}

	primary := s.lookupPrimary(ctx, userID)
	if primary.bundle.OK() {
		if cred, ok := primary.bundle.Value.Credential(capability); ok {
			cred.Source = models.SourcePrimary
			return s.resolved(capability, cred)
		}
	}
	s.logTier("primary", userID, capability, primary.bundle)

	local := s.lookupLocal()
	if local.OK() {
		if cred, ok := local.Value.Credential(capability); ok {
			cred.Source = models.SourceLocal
			return s.resolved(capability, cred)
		}
	}
	s.logTier("local", userID, capability, local)

	return s.resolved(capability, models.NoCredential())
}

func (s *Service) resolved(capability models.Capability, cred models.ResolvedCredential) models.ResolvedCredential {
	metrics.RecordCredentialResolution(string(capability), string(cred.Source))
	s.logger.Debug().
		Str("capability", string(capability)).
		Str("source", string(cred.Source)).
		Str("provider", cred.Provider).
		Msg("Credential resolved")
	return cred
}

// logTier records why a tier did not supply a credential.
func (s *Service) logTier(tier, userID string, capability models.Capability, l models.Lookup[*models.CredentialBundle]) {
	ev := s.logger.Debug()
	if l.Status == models.LookupStoreError && !errors.Is(l.Detail, models.ErrStoreUnavailable) {
		ev = s.logger.Warn()
	}
	ev.Str("tier", tier).
		Str("user", userID).
		Str("capability", string(capability)).
		Str("status", l.Status.String()).
		AnErr("detail", l.Detail).
		Msg("Credential tier skipped")
}

// Bundle returns the full bundle for display. When the primary store holds
// the user but neither tier holds a bundle, defaults are written to the
// primary store.
func (s *Service) Bundle(ctx context.Context, userID string) (*models.CredentialBundle, models.CredentialSource) {
	primary := s.lookupPrimary(ctx, userID)
	if primary.bundle.OK() {
		return primary.bundle.Value.WithDefaults(), models.SourcePrimary
	}
	s.logTier("primary", userID, "", primary.bundle)

	local := s.lookupLocal()
	if local.OK() {
		return local.Value.WithDefaults(), models.SourceLocal
	}
	s.logTier("local", userID, "", local)

	defaults := models.DefaultCredentialBundle()
	if primary.userExists() && primary.bundle.Status == models.LookupNotFound {
		if err := s.storage.CredentialStore().SaveCredentials(ctx, userID, defaults); err != nil {
			s.logger.Warn().Err(err).Str("user", userID).Msg("Failed to create default credentials")
			return defaults, models.SourceDefault
		}
		s.logger.Info().Str("user", userID).Msg("Created default credentials on first read")
		defaults.UserID = common.NormalizeUserID(userID)
		return defaults, models.SourcePrimary
	}
	return defaults, models.SourceDefault
}

// Save applies a partial bundle. Each group present in partial replaces the
// stored group; absent groups are kept. The primary store is tried first,
// then the local file. If both fail the merged bundle is returned unsaved
// with SourceDefault.
func (s *Service) Save(ctx context.Context, userID string, partial *models.CredentialBundle) (*models.CredentialBundle, models.CredentialSource) {
	if partial == nil {
		partial = &models.CredentialBundle{}
	}
	partial = partial.Clone()
	partial.UserID = ""

	saved, err := s.savePrimary(ctx, userID, partial)
	if err == nil {
		return saved, models.SourcePrimary
	}
	s.logger.Warn().Err(err).Str("user", userID).Msg("Primary credential save failed, writing local file")

	saved, err = s.saveLocal(partial)
	if err == nil {
		return saved, models.SourceLocal
	}
	s.logger.Error().Err(err).Str("path", s.storage.LocalCredentials().Path()).Msg("Local credential save failed")

	return partial.WithDefaults(), models.SourceDefault
}

func (s *Service) savePrimary(ctx context.Context, userID string, partial *models.CredentialBundle) (*models.CredentialBundle, error) {
	if _, err := s.storage.UserStore().GetUser(ctx, userID); err != nil {
		return nil, err
	}

	base, err := s.storage.CredentialStore().GetCredentials(ctx, userID)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrNotFound):
		base = models.DefaultCredentialBundle()
	default:
		return nil, err
	}

	merged := base.Merge(partial).WithDefaults()
	if err := s.storage.CredentialStore().SaveCredentials(ctx, userID, merged); err != nil {
		return nil, err
	}
	merged.UserID = common.NormalizeUserID(userID)
	return merged, nil
}

func (s *Service) saveLocal(partial *models.CredentialBundle) (*models.CredentialBundle, error) {
	local := s.storage.LocalCredentials()

	existing, err := local.Read()
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.logger.Warn().Err(err).Str("path", local.Path()).Msg("Unreadable credential file, overwriting")
		}
		existing = &models.CredentialBundle{}
	}

	merged := existing.Merge(partial).WithDefaults()
	if err := local.Write(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// Compile-time check
var _ interfaces.CredentialService = (*Service)(nil)
