package reputation

// Assignment priority bounds consumed by the work dispatcher.
const (
	PriorityMin = 0
	PriorityMax = 150
)

// tierPriorityBonus is added to the quality score when computing the routing
// weight. New reviewers are deliberately deprioritized.
var tierPriorityBonus = map[Tier]int{
	TierExpert: 20,
	TierGold:   15,
	TierSilver: 10,
	TierBronze: 5,
	TierNew:    -10,
}

// earningsMultiplier keys the payout rate by tier.
var earningsMultiplier = map[Tier]float64{
	TierExpert: 1.5,
	TierGold:   1.3,
	TierSilver: 1.1,
	TierBronze: 1.0,
	TierNew:    0.8,
}

// AssignmentPriority computes the routing weight the dispatcher uses to
// prefer reviewers for new work. Non-active reviewers always get 0 and must
// never be offered work. The result is clamped to [0,150]; higher is better.
func AssignmentPriority(tier Tier, qualityScore int, avgResponseTimeMinutes float64, status Status) int {
	if status != StatusActive {
		return 0
	}

	priority := qualityScore + tierPriorityBonus[tier]

	switch {
	case avgResponseTimeMinutes < 30:
		priority += 10
	case avgResponseTimeMinutes < 60:
		priority += 5
	case avgResponseTimeMinutes > 240:
		priority -= 10
	}

	if priority < PriorityMin {
		return PriorityMin
	}
	if priority > PriorityMax {
		return PriorityMax
	}
	return priority
}

// EarningsMultiplier returns the payout multiplier for a tier. Unknown tiers
// fall back to the new-reviewer rate.
func EarningsMultiplier(tier Tier) float64 {
	if m, ok := earningsMultiplier[tier]; ok {
		return m
	}
	return earningsMultiplier[TierNew]
}
