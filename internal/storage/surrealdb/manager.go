package surrealdb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/sajid-itinnovator/stock-analyzer/internal/common"
	"github.com/surrealdb/surrealdb.go"
)

// Table names in the primary store.
const (
	tableUser        = "user"
	tableCredentials = "credentials"
	tableHistory     = "analysis_history"
)

// connectTimeout bounds sign-in and table setup at startup.
const connectTimeout = 10 * time.Second

// writeAttempts is the number of tries for every UPSERT/CREATE.
const writeAttempts = 3

// Manager owns the SurrealDB connection and the primary stores built on it.
type Manager struct {
	db     *surrealdb.DB
	logger *common.Logger

	userStore       *UserStore
	credentialStore *CredentialStore
	historyStore    *HistoryStore
}

// NewManager connects to SurrealDB and prepares the primary stores.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	db, err := surrealdb.New(config.Storage.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": config.Storage.Username,
		"pass": config.Storage.Password,
	}); err != nil {
		db.Close(context.Background())
		return nil, fmt.Errorf("failed to sign in to SurrealDB: %w", err)
	}

	if err := db.Use(ctx, config.Storage.Namespace, config.Storage.Database); err != nil {
		db.Close(context.Background())
		return nil, fmt.Errorf("failed to select namespace/database: %w", err)
	}

	// SurrealDB v3 errors on querying tables that were never defined.
	if err := defineTables(ctx, db); err != nil {
		db.Close(context.Background())
		return nil, err
	}

	m := newManager(db, logger)

	logger.Info().
		Str("address", config.Storage.Address).
		Str("namespace", config.Storage.Namespace).
		Str("database", config.Storage.Database).
		Msg("SurrealDB storage manager initialized")

	return m, nil
}

func newManager(db *surrealdb.DB, logger *common.Logger) *Manager {
	return &Manager{
		db:              db,
		logger:          logger,
		userStore:       NewUserStore(db, logger),
		credentialStore: NewCredentialStore(db, logger),
		historyStore:    NewHistoryStore(db, logger),
	}
}

func defineTables(ctx context.Context, db *surrealdb.DB) error {
	for _, table := range []string{tableUser, tableCredentials, tableHistory} {
		sql := fmt.Sprintf("DEFINE TABLE IF NOT EXISTS %s SCHEMALESS", table)
		if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
			return fmt.Errorf("failed to define table %s: %w", table, err)
		}
	}
	return nil
}

func (m *Manager) UserStore() *UserStore {
	return m.userStore
}

func (m *Manager) CredentialStore() *CredentialStore {
	return m.credentialStore
}

func (m *Manager) HistoryStore() *HistoryStore {
	return m.historyStore
}

func (m *Manager) Close() error {
	m.db.Close(context.Background())
	return nil
}

// writeWithRetry runs a write query, retrying transient failures.
func writeWithRetry(ctx context.Context, db *surrealdb.DB, sql string, vars map[string]any) error {
	return retry.Do(
		func() error {
			_, err := surrealdb.Query[any](ctx, db, sql, vars)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(writeAttempts),
		retry.Delay(50*time.Millisecond),
		retry.LastErrorOnly(true),
	)
}

// isNotFoundError reports whether SurrealDB signalled a missing record or table.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "does not exist")
}
