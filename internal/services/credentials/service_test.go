package credentials

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sajid-itinnovator/stock-analyzer/internal/common"
	"github.com/sajid-itinnovator/stock-analyzer/internal/models"
	"github.com/sajid-itinnovator/stock-analyzer/internal/storage/storagetest"
)

const user = "john.doe@example.com"

func bundleWithLLMKey(key string) *models.CredentialBundle {
	b := models.DefaultCredentialBundle()
	b.LLMProvider.APIKey = key
	return b
}

func newTestService(primary *storagetest.Primary, local *storagetest.Local) *Service {
	return NewService(storagetest.NewManager(primary, local), common.NewSilentLogger())
}

func TestResolve_TierPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(p *storagetest.Primary)
		local    *models.CredentialBundle
		wantKey  string
		wantProv string
		wantSrc  models.CredentialSource
	}{
		{
			name: "primary wins over local",
			setup: func(p *storagetest.Primary) {
				p.SeedUser(user)
				p.SeedCredentials(user, bundleWithLLMKey("sk-primary"))
			},
			local:    bundleWithLLMKey("sk-local"),
			wantKey:  "sk-primary",
			wantProv: "openai",
			wantSrc:  models.SourcePrimary,
		},
		{
			name:     "user missing in primary falls to local",
			setup:    func(p *storagetest.Primary) {},
			local:    bundleWithLLMKey("sk-local"),
			wantKey:  "sk-local",
			wantProv: "openai",
			wantSrc:  models.SourceLocal,
		},
		{
			name: "primary unreachable falls to local",
			setup: func(p *storagetest.Primary) {
				p.SeedUser(user)
				p.SeedCredentials(user, bundleWithLLMKey("sk-primary"))
				p.Err = errors.New("connection refused")
			},
			local:    bundleWithLLMKey("sk-local"),
			wantKey:  "sk-local",
			wantProv: "openai",
			wantSrc:  models.SourceLocal,
		},
		{
			name: "primary bundle without key falls to local",
			setup: func(p *storagetest.Primary) {
				p.SeedUser(user)
				p.SeedCredentials(user, models.DefaultCredentialBundle())
			},
			local:    bundleWithLLMKey("sk-local"),
			wantKey:  "sk-local",
			wantProv: "openai",
			wantSrc:  models.SourceLocal,
		},
		{
			name: "no key anywhere yields none sentinel",
			setup: func(p *storagetest.Primary) {
				p.SeedUser(user)
			},
			local:    models.DefaultCredentialBundle(),
			wantKey:  "",
			wantProv: models.ProviderNone,
			wantSrc:  models.SourceDefault,
		},
		{
			name:     "nothing at all yields none sentinel",
			setup:    func(p *storagetest.Primary) { p.Err = models.ErrStoreUnavailable },
			wantKey:  "",
			wantProv: models.ProviderNone,
			wantSrc:  models.SourceDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := storagetest.NewPrimary()
			tt.setup(primary)
			svc := newTestService(primary, storagetest.NewLocal(tt.local))

			got := svc.Resolve(context.Background(), user, models.CapabilityLLM)
			assert.Equal(t, tt.wantKey, got.APIKey)
			assert.Equal(t, tt.wantProv, got.Provider)
			assert.Equal(t, tt.wantSrc, got.Source)
			assert.NotEmpty(t, got.Provider, "provider is never empty")
		})
	}
}

func TestResolve_CorruptLocalFileYieldsNone(t *testing.T) {
	local := storagetest.NewLocal(nil)
	local.ReadErr = errors.New("failed to parse credentials.json")
	svc := newTestService(storagetest.NewPrimary(), local)

	got := svc.Resolve(context.Background(), user, models.CapabilityWeb)
	assert.Equal(t, models.NoCredential(), got)
}

func TestResolve_SearchFallsBackToWebKey(t *testing.T) {
	local := models.DefaultCredentialBundle()
	local.WebTools.APIKey = "fc-key"
	svc := newTestService(storagetest.NewPrimary(), storagetest.NewLocal(local))

	got := svc.Resolve(context.Background(), user, models.CapabilitySearch)
	assert.Equal(t, "fc-key", got.APIKey)
	assert.Equal(t, "firecrawl", got.Provider)
	assert.Equal(t, models.SourceLocal, got.Source)
}

func TestResolve_SearchKeyPreferredOverWeb(t *testing.T) {
	primary := storagetest.NewPrimary()
	primary.SeedUser(user)
	b := models.DefaultCredentialBundle()
	b.WebTools.APIKey = "fc-key"
	b.SearchTools.APIKey = "serper-key"
	primary.SeedCredentials(user, b)
	svc := newTestService(primary, storagetest.NewLocal(nil))

	got := svc.Resolve(context.Background(), user, models.CapabilitySearch)
	assert.Equal(t, "serper-key", got.APIKey)
	assert.Equal(t, "serper", got.Provider)
	assert.Equal(t, "Search", got.Mode)
}

func TestResolve_UnknownCapability(t *testing.T) {
	svc := newTestService(storagetest.NewPrimary(), storagetest.NewLocal(bundleWithLLMKey("sk")))

	got := svc.Resolve(context.Background(), user, models.Capability("video"))
	assert.Equal(t, models.ProviderNone, got.Provider)
	assert.Empty(t, got.APIKey)
}

func TestBundle_FromPrimary(t *testing.T) {
	primary := storagetest.NewPrimary()
	primary.SeedUser(user)
	primary.SeedCredentials(user, &models.CredentialBundle{LLMProvider: &models.LLMProvider{SelectedProvider: "anthropic", APIKey: "sk"}})
	svc := newTestService(primary, storagetest.NewLocal(bundleWithLLMKey("sk-local")))

	got, src := svc.Bundle(context.Background(), user)
	assert.Equal(t, models.SourcePrimary, src)
	assert.Equal(t, "anthropic", got.LLMProvider.SelectedProvider)
	require.NotNil(t, got.WebTools, "missing groups filled with defaults")
	assert.Equal(t, "firecrawl", got.WebTools.SelectedTool)
}

func TestBundle_FromLocal(t *testing.T) {
	svc := newTestService(storagetest.NewPrimary(), storagetest.NewLocal(bundleWithLLMKey("sk-local")))

	got, src := svc.Bundle(context.Background(), user)
	assert.Equal(t, models.SourceLocal, src)
	assert.Equal(t, "sk-local", got.LLMProvider.APIKey)
}

func TestBundle_CreatesDefaultsOnFirstRead(t *testing.T) {
	primary := storagetest.NewPrimary()
	primary.SeedUser(user)
	svc := newTestService(primary, storagetest.NewLocal(nil))

	got, src := svc.Bundle(context.Background(), user)
	assert.Equal(t, models.SourcePrimary, src)
	assert.Equal(t, "openai", got.LLMProvider.SelectedProvider)
	assert.Equal(t, 1, primary.CredentialWrites)

	stored := primary.StoredCredentials(user)
	require.NotNil(t, stored)
	assert.Equal(t, "serper", stored.SearchTools.SelectedProvider)

	// Second read comes straight from the stored bundle.
	_, src = svc.Bundle(context.Background(), user)
	assert.Equal(t, models.SourcePrimary, src)
	assert.Equal(t, 1, primary.CredentialWrites)
}

func TestBundle_DefaultsWithoutWriteWhenOffline(t *testing.T) {
	primary := storagetest.NewPrimary()
	primary.Err = models.ErrStoreUnavailable
	svc := newTestService(primary, storagetest.NewLocal(nil))

	got, src := svc.Bundle(context.Background(), user)
	assert.Equal(t, models.SourceDefault, src)
	assert.Equal(t, models.DefaultCredentialBundle(), got)
	assert.Equal(t, 0, primary.CredentialWrites)
}

func TestBundle_NoDefaultWriteWhenLocalHasBundle(t *testing.T) {
	primary := storagetest.NewPrimary()
	primary.SeedUser(user)
	svc := newTestService(primary, storagetest.NewLocal(bundleWithLLMKey("sk-local")))

	_, src := svc.Bundle(context.Background(), user)
	assert.Equal(t, models.SourceLocal, src)
	assert.Equal(t, 0, primary.CredentialWrites)
}

func TestSave_PartialPreservesOtherGroups(t *testing.T) {
	primary := storagetest.NewPrimary()
	primary.SeedUser(user)
	existing := models.DefaultCredentialBundle()
	existing.LLMProvider.APIKey = "sk-old"
	existing.WebTools.APIKey = "fc-key"
	primary.SeedCredentials(user, existing)
	svc := newTestService(primary, storagetest.NewLocal(nil))

	saved, src := svc.Save(context.Background(), user, &models.CredentialBundle{
		SearchTools: &models.SearchTools{SelectedProvider: "serper", APIKey: "serper-key", Mode: "Search"},
	})
	assert.Equal(t, models.SourcePrimary, src)
	assert.Equal(t, "serper-key", saved.SearchTools.APIKey)

	stored := primary.StoredCredentials(user)
	assert.Equal(t, "sk-old", stored.LLMProvider.APIKey)
	assert.Equal(t, "fc-key", stored.WebTools.APIKey)
	assert.Equal(t, "serper-key", stored.SearchTools.APIKey)
}

func TestSave_CreatesPrimaryBundleWithDefaults(t *testing.T) {
	primary := storagetest.NewPrimary()
	primary.SeedUser(user)
	svc := newTestService(primary, storagetest.NewLocal(nil))

	_, src := svc.Save(context.Background(), user, &models.CredentialBundle{
		LLMProvider: &models.LLMProvider{SelectedProvider: "openai", APIKey: "sk-new", Model: "gpt-4o"},
	})
	assert.Equal(t, models.SourcePrimary, src)

	stored := primary.StoredCredentials(user)
	require.NotNil(t, stored)
	assert.Equal(t, "sk-new", stored.LLMProvider.APIKey)
	assert.Equal(t, "firecrawl", stored.WebTools.SelectedTool)
	assert.Equal(t, "serper", stored.SearchTools.SelectedProvider)
}

func TestSave_FallsBackToLocalWhenUserMissing(t *testing.T) {
	primary := storagetest.NewPrimary()
	localSeed := models.DefaultCredentialBundle()
	localSeed.WebTools.APIKey = "fc-local"
	local := storagetest.NewLocal(localSeed)
	svc := newTestService(primary, local)

	saved, src := svc.Save(context.Background(), user, &models.CredentialBundle{
		LLMProvider: &models.LLMProvider{SelectedProvider: "openai", APIKey: "sk-new", Model: "gpt-4"},
	})
	assert.Equal(t, models.SourceLocal, src)
	assert.Equal(t, "sk-new", saved.LLMProvider.APIKey)
	assert.Equal(t, "fc-local", saved.WebTools.APIKey)

	stored := local.Stored()
	assert.Equal(t, "sk-new", stored.LLMProvider.APIKey)
	assert.Equal(t, "fc-local", stored.WebTools.APIKey)
	assert.Equal(t, 0, primary.CredentialWrites)

	// The resolver now finds the key in the local tier.
	got := svc.Resolve(context.Background(), user, models.CapabilityLLM)
	assert.Equal(t, "sk-new", got.APIKey)
	assert.Equal(t, models.SourceLocal, got.Source)
}

func TestSave_FallsBackToLocalWhenPrimaryWriteFails(t *testing.T) {
	primary := storagetest.NewPrimary()
	primary.SeedUser(user)
	primary.Err = errors.New("write timeout")
	local := storagetest.NewLocal(nil)
	svc := newTestService(primary, local)

	_, src := svc.Save(context.Background(), user, &models.CredentialBundle{WebTools: &models.WebTools{SelectedTool: "firecrawl", APIKey: "fc"}})
	assert.Equal(t, models.SourceLocal, src)
	require.NotNil(t, local.Stored())
	assert.Equal(t, "fc", local.Stored().WebTools.APIKey)
	assert.NotNil(t, local.Stored().LLMProvider, "missing groups filled with defaults")
}

func TestSave_CorruptLocalFileIsOverwritten(t *testing.T) {
	local := storagetest.NewLocal(nil)
	local.ReadErr = errors.New("failed to parse")
	svc := newTestService(storagetest.NewPrimary(), local)

	_, src := svc.Save(context.Background(), user, &models.CredentialBundle{LLMProvider: &models.LLMProvider{APIKey: "sk"}})
	assert.Equal(t, models.SourceLocal, src)
	assert.Equal(t, 1, local.Writes)
}

func TestSave_BothTiersFailReturnsAttemptedData(t *testing.T) {
	primary := storagetest.NewPrimary()
	primary.Err = models.ErrStoreUnavailable
	local := storagetest.NewLocal(nil)
	local.WriteErr = errors.New("read-only filesystem")
	svc := newTestService(primary, local)

	saved, src := svc.Save(context.Background(), user, &models.CredentialBundle{
		LLMProvider: &models.LLMProvider{SelectedProvider: "openai", APIKey: "sk-lost"},
	})
	assert.Equal(t, models.SourceDefault, src)
	assert.Equal(t, "sk-lost", saved.LLMProvider.APIKey)
	assert.Equal(t, "firecrawl", saved.WebTools.SelectedTool)
	assert.Nil(t, local.Stored())
}

func TestSave_NilPartial(t *testing.T) {
	local := storagetest.NewLocal(nil)
	svc := newTestService(storagetest.NewPrimary(), local)

	saved, src := svc.Save(context.Background(), user, nil)
	assert.Equal(t, models.SourceLocal, src)
	assert.Equal(t, models.DefaultCredentialBundle(), saved)
}
