package surrealdb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sajid-itinnovator/stock-analyzer/internal/common"
	"github.com/sajid-itinnovator/stock-analyzer/internal/models"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// historySelectFields lists the stored columns; history_id is the record key
// and must not collide with the SurrealDB record id.
const historySelectFields = `history_id, user_id, ticker, analysis_type, rating,
	summary, key_metrics, created_at`

// historyRow is the stored shape of a models.HistoryRecord.
type historyRow struct {
	HistoryID  string         `json:"history_id"`
	UserID     string         `json:"user_id"`
	Ticker     string         `json:"ticker"`
	Type       string         `json:"analysis_type"`
	Rating     string         `json:"rating"`
	Summary    string         `json:"summary"`
	KeyMetrics map[string]any `json:"key_metrics"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (r *historyRow) toRecord() *models.HistoryRecord {
	if r.KeyMetrics == nil {
		r.KeyMetrics = map[string]any{}
	}
	return &models.HistoryRecord{
		ID:         r.HistoryID,
		UserID:     r.UserID,
		Ticker:     r.Ticker,
		Type:       models.AnalysisType(r.Type),
		Rating:     r.Rating,
		Summary:    r.Summary,
		KeyMetrics: r.KeyMetrics,
		Timestamp:  r.CreatedAt,
	}
}

// HistoryStore is the append-only analysis history table.
type HistoryStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewHistoryStore(db *surrealdb.DB, logger *common.Logger) *HistoryStore {
	return &HistoryStore{db: db, logger: logger}
}

// AppendHistory writes a new record. ID and Timestamp must already be set.
func (s *HistoryStore) AppendHistory(ctx context.Context, record *models.HistoryRecord) error {
	if record.ID == "" || record.Timestamp.IsZero() {
		return fmt.Errorf("%w: history id and timestamp are required", models.ErrInvalidRecord)
	}
	metrics := record.KeyMetrics
	if metrics == nil {
		metrics = map[string]any{}
	}

	sql := `UPSERT $rid SET
		history_id = $history_id, user_id = $user_id, ticker = $ticker,
		analysis_type = $analysis_type, rating = $rating, summary = $summary,
		key_metrics = $key_metrics, created_at = $created_at`
	vars := map[string]any{
		"rid":           surrealmodels.NewRecordID(tableHistory, record.ID),
		"history_id":    record.ID,
		"user_id":       common.NormalizeUserID(record.UserID),
		"ticker":        record.Ticker,
		"analysis_type": string(record.Type),
		"rating":        record.Rating,
		"summary":       record.Summary,
		"key_metrics":   metrics,
		"created_at":    record.Timestamp,
	}

	if err := writeWithRetry(ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}

// QueryHistory lists a user's records, newest first. Ticker matches as a
// case-insensitive substring, type exactly.
func (s *HistoryStore) QueryHistory(ctx context.Context, userID string, filter models.HistoryFilter) ([]*models.HistoryRecord, error) {
	where := " WHERE user_id = $user_id"
	vars := map[string]any{"user_id": common.NormalizeUserID(userID)}

	if filter.Ticker != "" {
		where += " AND string::contains(string::lowercase(ticker), $ticker)"
		vars["ticker"] = strings.ToLower(filter.Ticker)
	}
	if filter.Type != "" {
		where += " AND analysis_type = $analysis_type"
		vars["analysis_type"] = string(filter.Type)
	}

	// history_id breaks ties so equal timestamps list deterministically.
	sql := "SELECT " + historySelectFields + " FROM " + tableHistory + where + " ORDER BY created_at DESC, history_id DESC"

	results, err := surrealdb.Query[[]historyRow](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}

	records := make([]*models.HistoryRecord, 0)
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			records = append(records, (*results)[0].Result[i].toRecord())
		}
	}
	return records, nil
}
