// Package storagetest provides in-memory storage fakes for service and
// handler tests.
package storagetest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sajid-itinnovator/stock-analyzer/internal/common"
	"github.com/sajid-itinnovator/stock-analyzer/internal/models"
	"github.com/sajid-itinnovator/stock-analyzer/internal/storage"
)

// Primary is an in-memory primary store. Setting Err makes every call fail
// with it, which simulates an unreachable database.
type Primary struct {
	mu      sync.Mutex
	Err     error
	users   map[string]models.UserProfile
	creds   map[string]*models.CredentialBundle
	history []*models.HistoryRecord

	CredentialWrites int
}

// NewPrimary returns an empty, reachable primary store.
func NewPrimary() *Primary {
	return &Primary{
		users: make(map[string]models.UserProfile),
		creds: make(map[string]*models.CredentialBundle),
	}
}

// SeedUser stores a profile for email.
func (p *Primary) SeedUser(email string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.users[common.NormalizeUserID(email)] = *models.MockProfile("", email)
}

// SeedCredentials stores a bundle without counting it as a write.
func (p *Primary) SeedCredentials(userID string, bundle *models.CredentialBundle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.creds[common.NormalizeUserID(userID)] = bundle.Clone()
}

// StoredCredentials returns the bundle held for userID, or nil.
func (p *Primary) StoredCredentials(userID string) *models.CredentialBundle {
	p.mu.Lock()
	defer p.mu.Unlock()
	if b, ok := p.creds[common.NormalizeUserID(userID)]; ok {
		return b.Clone()
	}
	return nil
}

// HistoryLen returns the number of stored history records.
func (p *Primary) HistoryLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.history)
}

func (p *Primary) GetUser(_ context.Context, email string) (*models.UserProfile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	u, ok := p.users[common.NormalizeUserID(email)]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return &u, nil
}

func (p *Primary) SaveUser(_ context.Context, profile *models.UserProfile) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.users[common.NormalizeUserID(profile.Email)] = *profile
	return nil
}

func (p *Primary) GetCredentials(_ context.Context, userID string) (*models.CredentialBundle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	b, ok := p.creds[common.NormalizeUserID(userID)]
	if !ok {
		return nil, fmt.Errorf("credentials for %s: %w", userID, models.ErrNotFound)
	}
	return b.Clone(), nil
}

func (p *Primary) SaveCredentials(_ context.Context, userID string, bundle *models.CredentialBundle) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.creds[common.NormalizeUserID(userID)] = bundle.Clone()
	p.CredentialWrites++
	return nil
}

func (p *Primary) AppendHistory(_ context.Context, record *models.HistoryRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	r := *record
	p.history = append(p.history, &r)
	return nil
}

func (p *Primary) QueryHistory(_ context.Context, userID string, filter models.HistoryFilter) ([]*models.HistoryRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	out := make([]*models.HistoryRecord, 0)
	for _, r := range p.history {
		if common.NormalizeUserID(r.UserID) == common.NormalizeUserID(userID) && filter.Matches(r) {
			c := *r
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

// Local is an in-memory local credential file.
type Local struct {
	mu       sync.Mutex
	bundle   *models.CredentialBundle
	ReadErr  error
	WriteErr error
	Writes   int
}

// NewLocal returns an empty local store; seed may be nil.
func NewLocal(seed *models.CredentialBundle) *Local {
	l := &Local{}
	if seed != nil {
		l.bundle = seed.Clone()
	}
	return l
}

func (l *Local) Read() (*models.CredentialBundle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ReadErr != nil {
		return nil, l.ReadErr
	}
	if l.bundle == nil {
		return nil, models.ErrNotFound
	}
	return l.bundle.Clone(), nil
}

func (l *Local) Write(bundle *models.CredentialBundle) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.WriteErr != nil {
		return l.WriteErr
	}
	l.bundle = bundle.Clone()
	l.Writes++
	return nil
}

func (l *Local) Path() string {
	return "memory://credentials.json"
}

// Stored returns the current document, or nil.
func (l *Local) Stored() *models.CredentialBundle {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.bundle == nil {
		return nil
	}
	return l.bundle.Clone()
}

// NewManager wires a storage manager over the fakes.
func NewManager(primary *Primary, local *Local) *storage.Manager {
	return storage.NewManagerWithStores(common.NewSilentLogger(), primary, primary, primary, local)
}
