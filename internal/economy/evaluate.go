package economy

import (
	"context"
	"fmt"

	"github.com/chidionyema/verdict-sub009/internal/reputation"
)

// EvaluateReviewer recomputes a reviewer's quality score and tier, runs the
// moderation rules, applies the resulting status transition, and persists
// the outcome. Called on demand after reviews or by operator tooling; it is
// not a background sweep.
func (e *Engine) EvaluateReviewer(ctx context.Context, reviewerID string) (*Evaluation, error) {
	if reviewerID == "" {
		return nil, fmt.Errorf("%w: reviewer id required", ErrInvalidRequest)
	}

	now := e.clock.Now().UTC()
	var eval *Evaluation

	err := e.store.Transact(ctx, func(tx Tx) error {
		rec, err := tx.Reviewer(reviewerID)
		if err != nil {
			return err
		}

		if err := refreshScore(rec, now); err != nil {
			return err
		}

		decision := reputation.ActionFor(reputation.ActionInput{
			QualityScore:           rec.QualityScore,
			TotalReviews:           rec.TotalJudgments,
			AverageRating:          rec.AverageHelpfulness(),
			ReportCount:            rec.ReportCount,
			AvgResponseTimeMinutes: rec.AverageResponseMinutes(),
		})
		rec.Status = reputation.StatusFor(rec.Status, decision.Action)

		if err := tx.SaveReviewer(rec); err != nil {
			return fmt.Errorf("failed to persist evaluation: %w", err)
		}

		eval = &Evaluation{
			ReviewerID:   reviewerID,
			QualityScore: rec.QualityScore,
			Tier:         rec.Tier,
			Action:       decision.Action,
			Reason:       decision.Reason,
			Status:       rec.Status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return eval, nil
}

// ReviewerSnapshot is the read path: the persisted record plus the derived
// score, routing weight and payout multiplier. The score is recomputed from
// current aggregates rather than read back stale.
func (e *Engine) ReviewerSnapshot(ctx context.Context, reviewerID string) (*Snapshot, error) {
	if reviewerID == "" {
		return nil, fmt.Errorf("%w: reviewer id required", ErrInvalidRequest)
	}

	rec, err := e.store.GetReviewer(ctx, reviewerID)
	if err != nil {
		return nil, err
	}

	now := e.clock.Now().UTC()
	perf := performanceFrom(rec, now)
	score, err := reputation.QualityScore(perf)
	if err != nil {
		return nil, err
	}
	tier := reputation.TierFor(score, rec.TotalJudgments)

	return &Snapshot{
		ReviewerID:         rec.ReviewerID,
		QualityScore:       score,
		Tier:               tier,
		Status:             rec.Status,
		CurrentStreakDays:  rec.CurrentStreakDays,
		LongestStreakDays:  rec.LongestStreakDays,
		TotalJudgments:     rec.TotalJudgments,
		ConsensusRate:      rec.ConsensusRate(),
		AverageRating:      rec.AverageHelpfulness(),
		AvgResponseMinutes: rec.AverageResponseMinutes(),
		ReportCount:        rec.ReportCount,
		AssignmentPriority: reputation.AssignmentPriority(tier, score, rec.AverageResponseMinutes(), rec.Status),
		EarningsMultiplier: reputation.EarningsMultiplier(tier),
	}, nil
}
