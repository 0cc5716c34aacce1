package reputation

import "math"

// Scoring weights and thresholds. The components sum to 100 points before the
// report penalty and experience bonuses are applied.
const (
	ratingWeight         = 40.0
	unratedDefaultScore  = 30.0 // lenient default before any ratings arrive
	volumeBonusCap       = 20.0
	volumeBonusScale     = 8.0
	responseWeight       = 20.0
	responseTargetMins   = 60.0
	responsePenaltyScale = 10.0
	reliabilityCap       = 10.0
	reliabilityFullDays  = 30.0
	reportPenalty        = 15.0
	experienceBonus      = 5.0
	experienceFirstAt    = 100
	experienceSecondAt   = 500
)

// QualityScore maps aggregate reviewer performance to a 0-100 integer.
// Deterministic, no I/O. Input is validated first; out-of-range values are
// rejected rather than clamped into the formula.
//
// The rating component replaces the running score rather than discounting
// from a 100-point base; the remaining components are additive on top of it.
// Downstream consumers (tiering, priority) depend on the exact outputs, so
// the component order and rounding here must not change.
func QualityScore(p Performance) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	// Rating component (0-40), or a lenient default for unrated reviewers
	// so first-timers are not gated before they have any ratings.
	score := unratedDefaultScore
	if p.AverageRating > 0 {
		score = (p.AverageRating / 5.0) * ratingWeight
	}

	// Volume bonus (0-20) with strongly diminishing returns.
	score += math.Min(volumeBonusCap, math.Log10(float64(p.TotalReviews)+1)*volumeBonusScale)

	// Response-time component (0-20) against a 60-minute target, floored at 0.
	score += math.Max(0, responseWeight-(p.AvgResponseTimeMinutes/responseTargetMins)*responsePenaltyScale)

	// Account reliability (0-10), full credit after 30 days of tenure.
	score += math.Min(reliabilityCap, p.AccountAgeDays/reliabilityFullDays*reliabilityCap)

	// Report penalty, unbounded below before the final clamp.
	score -= float64(p.ReportCount) * reportPenalty

	// Experience bonuses stack: +5 past 100 reviews, +5 more past 500.
	if p.TotalReviews > experienceFirstAt {
		score += experienceBonus
	}
	if p.TotalReviews > experienceSecondAt {
		score += experienceBonus
	}

	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0, nil
	}
	if rounded > 100 {
		return 100, nil
	}
	return rounded, nil
}
