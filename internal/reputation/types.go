package reputation

import "fmt"

// Tier classifies a reviewer by quality and volume. Tiers gate the earnings
// multiplier and contribute to assignment priority.
type Tier string

const (
	TierNew    Tier = "new"
	TierBronze Tier = "bronze"
	TierSilver Tier = "silver"
	TierGold   Tier = "gold"
	TierExpert Tier = "expert"
)

// Status is the account standing of a reviewer. Banned is terminal.
type Status string

const (
	StatusActive    Status = "active"
	StatusProbation Status = "probation"
	StatusSuspended Status = "suspended"
	StatusBanned    Status = "banned"
)

// Action is a moderation outcome produced by the action rules.
type Action string

const (
	ActionNone      Action = "none"
	ActionProbation Action = "probation"
	ActionSuspend   Action = "suspend"
	ActionBan       Action = "ban"
)

// Performance is the aggregate read model fed into quality scoring. It is a
// projection derived at evaluation time, not a persisted record.
type Performance struct {
	AverageRating          float64 // mean of 1-5 ratings; 0 means no ratings yet
	TotalReviews           int
	AvgResponseTimeMinutes float64
	ReportCount            int // substantiated complaints
	AccountAgeDays         float64
}

// Validate rejects out-of-range input before any formula runs. Bad input is
// an error, never silently clamped.
func (p Performance) Validate() error {
	if p.AverageRating < 0 || p.AverageRating > 5 {
		return fmt.Errorf("%w: averageRating %.2f outside [0,5]", ErrInvalidPerformance, p.AverageRating)
	}
	if p.TotalReviews < 0 {
		return fmt.Errorf("%w: totalReviews %d negative", ErrInvalidPerformance, p.TotalReviews)
	}
	if p.AvgResponseTimeMinutes < 0 {
		return fmt.Errorf("%w: averageResponseTimeMinutes %.2f negative", ErrInvalidPerformance, p.AvgResponseTimeMinutes)
	}
	if p.ReportCount < 0 {
		return fmt.Errorf("%w: reportCount %d negative", ErrInvalidPerformance, p.ReportCount)
	}
	if p.AccountAgeDays < 0 {
		return fmt.Errorf("%w: accountAgeDays %.2f negative", ErrInvalidPerformance, p.AccountAgeDays)
	}
	return nil
}

// Decision is the outcome of evaluating the moderation rules against a
// reviewer's record.
type Decision struct {
	Action Action
	Reason string
}
