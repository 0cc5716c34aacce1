package reputation

// ActionInput is the record slice the moderation rules inspect.
type ActionInput struct {
	QualityScore           int
	TotalReviews           int
	AverageRating          float64
	ReportCount            int
	AvgResponseTimeMinutes float64
}

// actionRule is one entry in the ordered moderation table. Rules are
// evaluated top-to-bottom and the first match wins: bans take priority over
// suspension, suspension over probation.
type actionRule struct {
	applies func(ActionInput) bool
	action  Action
	reason  string
}

var actionRules = []actionRule{
	{
		applies: func(in ActionInput) bool { return in.ReportCount >= 5 },
		action:  ActionBan,
		reason:  "multiple user reports",
	},
	{
		applies: func(in ActionInput) bool { return in.AverageRating < 2.0 && in.TotalReviews >= 10 },
		action:  ActionBan,
		reason:  "consistently poor ratings",
	},
	{
		applies: func(in ActionInput) bool { return in.QualityScore < 30 && in.TotalReviews >= 20 },
		action:  ActionSuspend,
		reason:  "poor overall quality score",
	},
	{
		applies: func(in ActionInput) bool { return in.AvgResponseTimeMinutes > 1440 && in.TotalReviews >= 5 },
		action:  ActionSuspend,
		reason:  "extremely slow response times",
	},
	{
		applies: func(in ActionInput) bool { return in.QualityScore < 50 && in.TotalReviews >= 10 },
		action:  ActionProbation,
		reason:  "below average quality score",
	},
	{
		applies: func(in ActionInput) bool { return in.ReportCount >= 2 },
		action:  ActionProbation,
		reason:  "user complaints received",
	},
}

// ActionFor evaluates the moderation rules against a reviewer's current
// aggregates and returns the first matching outcome, or ActionNone.
func ActionFor(in ActionInput) Decision {
	for _, r := range actionRules {
		if r.applies(in) {
			return Decision{Action: r.action, Reason: r.reason}
		}
	}
	return Decision{Action: ActionNone}
}

// StatusFor maps a moderation action onto the account status it implies.
// ActionNone returns the current status unchanged; a banned account never
// transitions out.
func StatusFor(current Status, action Action) Status {
	if current == StatusBanned {
		return StatusBanned
	}
	switch action {
	case ActionBan:
		return StatusBanned
	case ActionSuspend:
		return StatusSuspended
	case ActionProbation:
		return StatusProbation
	default:
		return current
	}
}
