package reputation

// minReviewsForTiering is the volume floor below which a reviewer stays in
// the "new" tier no matter how high their score is.
const minReviewsForTiering = 10

// tierRule is one entry in the ordered tier table. Rules are evaluated
// top-to-bottom and the first match wins.
type tierRule struct {
	minScore   int
	minReviews int
	tier       Tier
}

var tierRules = []tierRule{
	{minScore: 85, minReviews: 200, tier: TierExpert},
	{minScore: 75, minReviews: 100, tier: TierGold},
	{minScore: 65, minReviews: 50, tier: TierSilver},
	{minScore: 55, minReviews: 0, tier: TierBronze},
}

// TierFor classifies a reviewer from score and review volume. Reviewers with
// fewer than 10 reviews are always "new".
func TierFor(score, totalReviews int) Tier {
	if totalReviews < minReviewsForTiering {
		return TierNew
	}
	for _, r := range tierRules {
		if score >= r.minScore && totalReviews >= r.minReviews {
			return r.tier
		}
	}
	return TierNew
}
