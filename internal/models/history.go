package models

import (
	"fmt"
	"strings"
	"time"
)

// AnalysisType is the kind of analysis recorded in history.
type AnalysisType string

const (
	AnalysisFundamental AnalysisType = "Fundamental"
	AnalysisTechnical   AnalysisType = "Technical"
	AnalysisSentiment   AnalysisType = "Sentiment"
	AnalysisRisk        AnalysisType = "Risk"
)

// AnalysisTypes lists the accepted history types in display order.
var AnalysisTypes = []AnalysisType{AnalysisFundamental, AnalysisTechnical, AnalysisSentiment, AnalysisRisk}

// Valid reports whether t is an accepted history type.
func (t AnalysisType) Valid() bool {
	for _, v := range AnalysisTypes {
		if t == v {
			return true
		}
	}
	return false
}

// HistoryRecord is one append-only analysis history entry.
type HistoryRecord struct {
	ID         string         `json:"id"`
	UserID     string         `json:"userId,omitempty"`
	Ticker     string         `json:"ticker"`
	Type       AnalysisType   `json:"type"`
	Rating     string         `json:"rating,omitempty"`
	Summary    string         `json:"summary,omitempty"`
	KeyMetrics map[string]any `json:"keyMetrics"`
	Timestamp  time.Time      `json:"timestamp"`
}

// Validate checks the fields a caller must supply.
func (r *HistoryRecord) Validate() error {
	if strings.TrimSpace(r.Ticker) == "" {
		return fmt.Errorf("%w: ticker is required", ErrInvalidRecord)
	}
	if !r.Type.Valid() {
		return fmt.Errorf("%w %q: must be one of Fundamental, Technical, Sentiment, Risk", ErrInvalidAnalysisType, r.Type)
	}
	return nil
}

// HistoryFilter narrows a history query. Empty fields match everything.
type HistoryFilter struct {
	Ticker string
	Type   AnalysisType
}

// Matches applies the filter in memory: ticker is a case-insensitive
// substring match, type is exact.
func (f HistoryFilter) Matches(r *HistoryRecord) bool {
	if f.Ticker != "" && !strings.Contains(strings.ToLower(r.Ticker), strings.ToLower(f.Ticker)) {
		return false
	}
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	return true
}
