package storage

import (
	"time"

	"github.com/google/uuid"

	"github.com/chidionyema/verdict-sub009/internal/reputation"
)

// Ledger entry type constants
const (
	EntryEarn   = "earn"
	EntryBonus  = "bonus"
	EntrySpend  = "spend"
	EntryRefund = "refund"
)

// ReviewerRecord is the persisted reputation state for one reviewer. Created
// on the first completed review, never deleted; a banned status is terminal.
type ReviewerRecord struct {
	ReviewerID         string
	QualityScore       int
	Tier               reputation.Tier
	Status             reputation.Status
	CurrentStreakDays  int
	LongestStreakDays  int
	LastJudgmentDate   string // UTC calendar date "2006-01-02", empty before first judgment
	TotalJudgments     int
	ConsensusTotal     int
	ConsensusMatches   int
	HelpfulnessSum     float64
	HelpfulnessCount   int
	ReportCount        int
	ResponseMinutesSum float64
	ResponseSamples    int
	CreatedAt          time.Time
	LastActive         time.Time
}

// ConsensusRate is the percentage of consensus-checked judgments that
// matched, in [0,100]. Judgments with no consensus data are excluded.
func (r *ReviewerRecord) ConsensusRate() float64 {
	if r.ConsensusTotal == 0 {
		return 0
	}
	return float64(r.ConsensusMatches) / float64(r.ConsensusTotal) * 100
}

// AverageHelpfulness is the running mean of 1-5 helpfulness ratings, or 0
// when the reviewer has none yet.
func (r *ReviewerRecord) AverageHelpfulness() float64 {
	if r.HelpfulnessCount == 0 {
		return 0
	}
	return r.HelpfulnessSum / float64(r.HelpfulnessCount)
}

// AverageResponseMinutes is the running mean response time, or 0 with no
// samples.
func (r *ReviewerRecord) AverageResponseMinutes() float64 {
	if r.ResponseSamples == 0 {
		return 0
	}
	return r.ResponseMinutesSum / float64(r.ResponseSamples)
}

// LedgerEntry is one append-only credit-affecting event. The actor's balance
// is always the sum of their entries; user_credits is a materialized view of
// that sum.
type LedgerEntry struct {
	ID          string
	ActorID     string
	Amount      int
	Type        string
	SourceID    string
	Description string
	CreatedAt   time.Time
}

// GenerateID returns a unique identifier for ledger entries.
func GenerateID() string {
	return uuid.New().String()
}
