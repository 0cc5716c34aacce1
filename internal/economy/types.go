package economy

import (
	"github.com/chidionyema/verdict-sub009/internal/reputation"
)

// Credit economy constants. These are policy, not configuration: consumers
// across the marketplace depend on the exact values.
const (
	// CreditValuePerJudgment is the points granted per completed review.
	CreditValuePerJudgment = 1

	// JudgmentsPerCredit is the fixed points-to-spendable-credit ratio.
	// Three awarded points convert to one spendable credit.
	JudgmentsPerCredit = 3

	// StreakBonusThreshold is the streak length granting a bonus; bonuses
	// repeat at every positive multiple (7, 14, 21, ...).
	StreakBonusThreshold = 7

	// StreakBonusCredits is the bonus granted at each streak threshold.
	StreakBonusCredits = 1
)

// Premium submission pricing, additive per feature.
const (
	costPrivate    = 1
	costExpertOnly = 2
	costPriority   = 1
)

// CreditsFromPoints converts accumulated judgment points into spendable
// credits at the fixed 3:1 ratio.
func CreditsFromPoints(points int) int {
	if points < 0 {
		return 0
	}
	return points / JudgmentsPerCredit
}

// AwardResult reports the outcome of crediting one completed review.
type AwardResult struct {
	ReviewerID        string          `json:"reviewer_id"`
	ReviewID          string          `json:"review_id"`
	PointsAwarded     int             `json:"points_awarded"`
	BonusCredits      int             `json:"bonus_credits"`
	StreakDays        int             `json:"streak_days"`
	LongestStreakDays int             `json:"longest_streak_days"`
	TotalJudgments    int             `json:"total_judgments"`
	QualityScore      int             `json:"quality_score"`
	Tier              reputation.Tier `json:"tier"`
	NewBalance        int             `json:"new_balance"`
}

// Evaluation is the outcome of re-running scoring, tiering and the
// moderation rules against a reviewer's current record.
type Evaluation struct {
	ReviewerID   string            `json:"reviewer_id"`
	QualityScore int               `json:"quality_score"`
	Tier         reputation.Tier   `json:"tier"`
	Action       reputation.Action `json:"action"`
	Reason       string            `json:"reason,omitempty"`
	Status       reputation.Status `json:"status"`
}

// Snapshot is the read-side projection of a reviewer: persisted record plus
// the derived score, routing weight and payout multiplier.
type Snapshot struct {
	ReviewerID         string            `json:"reviewer_id"`
	QualityScore       int               `json:"quality_score"`
	Tier               reputation.Tier   `json:"tier"`
	Status             reputation.Status `json:"status"`
	CurrentStreakDays  int               `json:"current_streak_days"`
	LongestStreakDays  int               `json:"longest_streak_days"`
	TotalJudgments     int               `json:"total_judgments"`
	ConsensusRate      float64           `json:"consensus_rate"`
	AverageRating      float64           `json:"average_rating"`
	AvgResponseMinutes float64           `json:"avg_response_minutes"`
	ReportCount        int               `json:"report_count"`
	AssignmentPriority int               `json:"assignment_priority"`
	EarningsMultiplier float64           `json:"earnings_multiplier"`
}

// SubmissionOptions are the premium feature flags on a feedback request.
type SubmissionOptions struct {
	Private       bool `json:"private"`
	ExpertOnly    bool `json:"expert_only"`
	PriorityQueue bool `json:"priority_queue"`
}

// SubmissionCharge reports a priced (and possibly charged) submission.
type SubmissionCharge struct {
	Cost       int      `json:"cost"`
	Features   []string `json:"features"`
	NewBalance int      `json:"new_balance"`
}
