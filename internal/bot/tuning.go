package bot

import "guandan/internal/domain"

// DefaultLeadThreshold is the hand size above which a lead sheds the lowest single
// before looking for pairs or straights.
const DefaultLeadThreshold = 5

// Tuning holds the policy knobs of the strategy.
type Tuning struct {
	// LeadThreshold: hands larger than this lead their lowest single.
	LeadThreshold int
	Rules         domain.Rules
}

// DefaultTuning is the policy used when nothing is configured.
var DefaultTuning = Tuning{
	LeadThreshold: DefaultLeadThreshold,
	Rules:         domain.DefaultRules,
}
