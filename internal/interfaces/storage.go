// Package interfaces defines service contracts for StockAI
package interfaces

import (
	"context"

	"github.com/sajid-itinnovator/stock-analyzer/internal/models"
)

// StorageManager coordinates the primary store and the local credential file.
type StorageManager interface {
	// Primary store accessors. When the primary store is unreachable these
	// return offline stores whose every call fails with models.ErrStoreUnavailable.
	UserStore() UserStore
	CredentialStore() CredentialStore
	HistoryStore() HistoryStore

	// LocalCredentials is always available.
	LocalCredentials() LocalCredentialStore

	// Available reports whether the primary store connected at startup.
	Available() bool

	// Lifecycle
	Close() error
}

// UserStore manages user profiles keyed by email.
type UserStore interface {
	// GetUser returns models.ErrUserNotFound when no profile exists for email.
	GetUser(ctx context.Context, email string) (*models.UserProfile, error)
	SaveUser(ctx context.Context, profile *models.UserProfile) error
}

// CredentialStore manages per-user credential bundles in the primary store.
type CredentialStore interface {
	// GetCredentials returns models.ErrNotFound when the user has no bundle.
	GetCredentials(ctx context.Context, userID string) (*models.CredentialBundle, error)
	SaveCredentials(ctx context.Context, userID string, bundle *models.CredentialBundle) error
}

// HistoryStore is the append-only analysis history log.
type HistoryStore interface {
	AppendHistory(ctx context.Context, record *models.HistoryRecord) error
	// QueryHistory returns the user's records matching filter, newest first.
	QueryHistory(ctx context.Context, userID string, filter models.HistoryFilter) ([]*models.HistoryRecord, error)
}

// LocalCredentialStore is the single-document credential file.
type LocalCredentialStore interface {
	// Read returns models.ErrNotFound when the file does not exist.
	Read() (*models.CredentialBundle, error)
	Write(bundle *models.CredentialBundle) error
	Path() string
}
