// Package history records and lists a user's analysis history
package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sajid-itinnovator/stock-analyzer/internal/common"
	"github.com/sajid-itinnovator/stock-analyzer/internal/interfaces"
	"github.com/sajid-itinnovator/stock-analyzer/internal/models"
)

// Compile-time interface check
var _ interfaces.HistoryService = (*Service)(nil)

// Service implements HistoryService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
	now     func() time.Time
}

// NewService creates a new history service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Append validates record, stamps a new id and the current time, and stores it
// for userID. Errors wrap models.ErrInvalidRecord, models.ErrUserNotFound or
// models.ErrStoreUnavailable.
func (s *Service) Append(ctx context.Context, userID string, record *models.HistoryRecord) (*models.HistoryRecord, error) {
	if record == nil {
		return nil, fmt.Errorf("%w: empty history record", models.ErrInvalidRecord)
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.storage.UserStore().GetUser(ctx, userID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, unavailable(err)
	}

	rec := *record
	rec.ID = uuid.New().String()
	rec.UserID = common.NormalizeUserID(userID)
	rec.Ticker = strings.TrimSpace(rec.Ticker)
	rec.Timestamp = s.now()
	if rec.KeyMetrics == nil {
		rec.KeyMetrics = map[string]any{}
	}

	if err := s.storage.HistoryStore().AppendHistory(ctx, &rec); err != nil {
		return nil, unavailable(err)
	}

	s.logger.Info().Str("user", rec.UserID).Str("ticker", rec.Ticker).Str("type", string(rec.Type)).Str("id", rec.ID).Msg("History record appended")
	return &rec, nil
}

// Query lists userID's records matching filter, newest first. An unreachable
// store yields an empty list.
func (s *Service) Query(ctx context.Context, userID string, filter models.HistoryFilter) ([]*models.HistoryRecord, error) {
	records, err := s.storage.HistoryStore().QueryHistory(ctx, userID, filter)
	if err != nil {
		s.logger.Warn().Err(err).Str("user", userID).Msg("History query failed, returning empty list")
		return []*models.HistoryRecord{}, nil
	}
	if records == nil {
		records = []*models.HistoryRecord{}
	}
	return records, nil
}

func unavailable(err error) error {
	if errors.Is(err, models.ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
}
