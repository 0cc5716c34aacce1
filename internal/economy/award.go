package economy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chidionyema/verdict-sub009/internal/reputation"
	"github.com/chidionyema/verdict-sub009/internal/storage"
)

const dateLayout = "2006-01-02"

// AwardCreditsForReview credits a reviewer for one completed review. Three
// steps run inside a single transaction: the point award to the ledger, the
// reputation aggregate update, and the streak check with its possible bonus
// credit. Either all three apply or none do.
//
// consensusMatch and helpfulnessRating are optional; nil means the review
// produced no consensus or helpfulness signal.
func (e *Engine) AwardCreditsForReview(ctx context.Context, reviewerID, reviewID string, consensusMatch *bool, helpfulnessRating *float64) (*AwardResult, error) {
	if reviewerID == "" {
		return nil, fmt.Errorf("%w: reviewer id required", ErrInvalidRequest)
	}
	if reviewID == "" {
		return nil, fmt.Errorf("%w: review id required", ErrInvalidRequest)
	}
	if helpfulnessRating != nil && (*helpfulnessRating < 1 || *helpfulnessRating > 5) {
		return nil, fmt.Errorf("%w: helpfulness rating %.2f outside [1,5]", ErrInvalidRequest, *helpfulnessRating)
	}

	now := e.clock.Now().UTC()
	var result *AwardResult

	err := e.store.Transact(ctx, func(tx Tx) error {
		rec, err := tx.Reviewer(reviewerID)
		if errors.Is(err, storage.ErrReviewerNotFound) {
			rec = newReviewerRecord(reviewerID, now)
		} else if err != nil {
			return err
		}

		// Step 1: point award.
		if err := tx.AppendEntry(&storage.LedgerEntry{
			ActorID:     reviewerID,
			Amount:      CreditValuePerJudgment,
			Type:        storage.EntryEarn,
			SourceID:    reviewID,
			Description: "earned 1 point for judging",
			CreatedAt:   now,
		}); err != nil {
			return fmt.Errorf("failed to award point: %w", err)
		}

		// Step 2: reputation aggregates.
		rec.TotalJudgments++
		if consensusMatch != nil {
			rec.ConsensusTotal++
			if *consensusMatch {
				rec.ConsensusMatches++
			}
		}
		if helpfulnessRating != nil {
			rec.HelpfulnessSum += *helpfulnessRating
			rec.HelpfulnessCount++
		}
		rec.LastActive = now

		// Step 3: streak check. Same-day activity is never double-counted
		// and never re-triggers a bonus.
		streak, changed := advanceStreak(rec.CurrentStreakDays, rec.LastJudgmentDate, now)
		rec.CurrentStreakDays = streak
		if streak > rec.LongestStreakDays {
			rec.LongestStreakDays = streak
		}
		rec.LastJudgmentDate = now.Format(dateLayout)

		bonus := 0
		if changed && streak > 0 && streak%StreakBonusThreshold == 0 {
			bonus = StreakBonusCredits
			if err := tx.AppendEntry(&storage.LedgerEntry{
				ActorID:     reviewerID,
				Amount:      bonus,
				Type:        storage.EntryBonus,
				SourceID:    reviewID,
				Description: fmt.Sprintf("%d-day judging streak bonus", streak),
				CreatedAt:   now,
			}); err != nil {
				return fmt.Errorf("failed to grant streak bonus: %w", err)
			}
		}

		// Scores are derived from the aggregates just updated, so refresh
		// the stored score and tier while we hold the transaction.
		if err := refreshScore(rec, now); err != nil {
			return err
		}

		if err := tx.SaveReviewer(rec); err != nil {
			return fmt.Errorf("failed to update reputation: %w", err)
		}

		balance, err := tx.Balance(reviewerID)
		if err != nil {
			return err
		}

		result = &AwardResult{
			ReviewerID:        reviewerID,
			ReviewID:          reviewID,
			PointsAwarded:     CreditValuePerJudgment,
			BonusCredits:      bonus,
			StreakDays:        rec.CurrentStreakDays,
			LongestStreakDays: rec.LongestStreakDays,
			TotalJudgments:    rec.TotalJudgments,
			QualityScore:      rec.QualityScore,
			Tier:              rec.Tier,
			NewBalance:        balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecordResponseTime folds one response-time sample (minutes from assignment
// to submitted review) into the reviewer's running average. Called by the
// dispatch collaborator when a review comes back.
func (e *Engine) RecordResponseTime(ctx context.Context, reviewerID string, minutes float64) error {
	if reviewerID == "" {
		return fmt.Errorf("%w: reviewer id required", ErrInvalidRequest)
	}
	if minutes < 0 {
		return fmt.Errorf("%w: response time %.2f negative", ErrInvalidRequest, minutes)
	}

	now := e.clock.Now().UTC()
	return e.store.Transact(ctx, func(tx Tx) error {
		rec, err := tx.Reviewer(reviewerID)
		if err != nil {
			return err
		}
		rec.ResponseMinutesSum += minutes
		rec.ResponseSamples++
		rec.LastActive = now
		if err := refreshScore(rec, now); err != nil {
			return err
		}
		return tx.SaveReviewer(rec)
	})
}

// ReportReviewer records one substantiated complaint against a reviewer.
// Moderation consequences are applied on the next evaluation.
func (e *Engine) ReportReviewer(ctx context.Context, reviewerID string) error {
	if reviewerID == "" {
		return fmt.Errorf("%w: reviewer id required", ErrInvalidRequest)
	}

	now := e.clock.Now().UTC()
	return e.store.Transact(ctx, func(tx Tx) error {
		rec, err := tx.Reviewer(reviewerID)
		if err != nil {
			return err
		}
		rec.ReportCount++
		if err := refreshScore(rec, now); err != nil {
			return err
		}
		return tx.SaveReviewer(rec)
	})
}

func newReviewerRecord(reviewerID string, now time.Time) *storage.ReviewerRecord {
	return &storage.ReviewerRecord{
		ReviewerID: reviewerID,
		Tier:       reputation.TierNew,
		Status:     reputation.StatusActive,
		CreatedAt:  now,
		LastActive: now,
	}
}

// advanceStreak applies the calendar-day streak transition: unchanged on a
// same-day repeat, +1 on a gap of exactly one day, reset to 1 otherwise.
// changed reports whether the streak value was re-established, which gates
// the bonus so a same-day award cannot re-trigger it.
func advanceStreak(current int, lastDate string, now time.Time) (streak int, changed bool) {
	today := now.Format(dateLayout)
	if lastDate == "" {
		return 1, true
	}
	if lastDate == today {
		return current, false
	}

	last, err := time.Parse(dateLayout, lastDate)
	if err != nil {
		// Unparseable date means corrupt state; restart the streak.
		return 1, true
	}
	if last.AddDate(0, 0, 1).Format(dateLayout) == today {
		return current + 1, true
	}
	return 1, true
}

// refreshScore recomputes the stored quality score and tier from the
// record's current aggregates.
func refreshScore(rec *storage.ReviewerRecord, now time.Time) error {
	perf := performanceFrom(rec, now)
	score, err := reputation.QualityScore(perf)
	if err != nil {
		return err
	}
	rec.QualityScore = score
	rec.Tier = reputation.TierFor(score, rec.TotalJudgments)
	return nil
}

// performanceFrom derives the scoring read model from a persisted record.
func performanceFrom(rec *storage.ReviewerRecord, now time.Time) reputation.Performance {
	ageDays := now.Sub(rec.CreatedAt).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	return reputation.Performance{
		AverageRating:          rec.AverageHelpfulness(),
		TotalReviews:           rec.TotalJudgments,
		AvgResponseTimeMinutes: rec.AverageResponseMinutes(),
		ReportCount:            rec.ReportCount,
		AccountAgeDays:         ageDays,
	}
}
