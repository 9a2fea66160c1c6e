// Package storage provides the top-level StorageManager that pairs the
// primary SurrealDB store with the local credential file.
package storage

import (
	"github.com/sajid-itinnovator/stock-analyzer/internal/common"
	"github.com/sajid-itinnovator/stock-analyzer/internal/interfaces"
	"github.com/sajid-itinnovator/stock-analyzer/internal/storage/localfile"
	"github.com/sajid-itinnovator/stock-analyzer/internal/storage/surrealdb"
)

// Manager implements interfaces.StorageManager.
type Manager struct {
	primary *surrealdb.Manager // nil when the primary store is offline
	users   interfaces.UserStore
	creds   interfaces.CredentialStore
	history interfaces.HistoryStore
	local   interfaces.LocalCredentialStore
	logger  *common.Logger
}

// NewStorageManager connects to the primary store. A failed connection is
// not fatal: the manager starts with offline primary stores and the local
// credential file, and every primary call reports models.ErrStoreUnavailable.
func NewStorageManager(logger *common.Logger, config *common.Config) *Manager {
	local := localfile.NewStore(logger, config.Storage.CredentialsFile)

	primary, err := surrealdb.NewManager(logger, config)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("address", config.Storage.Address).
			Str("credentials_file", local.Path()).
			Msg("Primary store unavailable, continuing with local credential file")
		return NewOfflineManager(logger, local)
	}

	return &Manager{
		primary: primary,
		users:   primary.UserStore(),
		creds:   primary.CredentialStore(),
		history: primary.HistoryStore(),
		local:   local,
		logger:  logger,
	}
}

// NewOfflineManager returns a manager with no primary store.
func NewOfflineManager(logger *common.Logger, local interfaces.LocalCredentialStore) *Manager {
	off := offlineStore{}
	return &Manager{
		users:   off,
		creds:   off,
		history: off,
		local:   local,
		logger:  logger,
	}
}

// NewManagerWithStores assembles a manager from explicit stores.
func NewManagerWithStores(logger *common.Logger, users interfaces.UserStore, creds interfaces.CredentialStore,
	history interfaces.HistoryStore, local interfaces.LocalCredentialStore) *Manager {
	return &Manager{
		users:   users,
		creds:   creds,
		history: history,
		local:   local,
		logger:  logger,
	}
}

func (m *Manager) UserStore() interfaces.UserStore {
	return m.users
}

func (m *Manager) CredentialStore() interfaces.CredentialStore {
	return m.creds
}

func (m *Manager) HistoryStore() interfaces.HistoryStore {
	return m.history
}

func (m *Manager) LocalCredentials() interfaces.LocalCredentialStore {
	return m.local
}

func (m *Manager) Available() bool {
	_, offline := m.users.(offlineStore)
	return !offline
}

func (m *Manager) Close() error {
	if m.primary != nil {
		return m.primary.Close()
	}
	return nil
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)
