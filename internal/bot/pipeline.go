package bot

import (
	"guandan/internal/bot/internal"
	"guandan/internal/domain"
)

// LeadContext holds the state for the lead decision pipeline.
type LeadContext struct {
	Hand   []domain.Card
	Phase  internal.HandPhase
	Tuning Tuning

	Selected domain.Combination
	Rule     string
	Done     bool
}

// LeadRule represents a logic unit that may claim the lead play.
// Rules run in order; the first one that sets Done wins.
type LeadRule interface {
	Name() string
	Apply(ctx *LeadContext)
}

// DefaultLeadPipeline is the lead policy in priority order.
var DefaultLeadPipeline = []LeadRule{
	&ShedLowestSingleRule{},
	&LowestPairRule{},
	&LowestStraightRule{},
	&LowestSingleRule{},
}

// RunLeadPipeline applies rules until one selects a play.
func RunLeadPipeline(ctx *LeadContext, rules []LeadRule) {
	for _, rule := range rules {
		if ctx.Done {
			return
		}
		rule.Apply(ctx)
	}
}

func (ctx *LeadContext) selectCombo(combo domain.Combination, rule string) {
	ctx.Selected = combo
	ctx.Rule = rule
	ctx.Done = true
}

// ShedLowestSingleRule leads the lowest single while the hand is above the lead threshold.
type ShedLowestSingleRule struct{}

func (r *ShedLowestSingleRule) Name() string { return "shed-lowest-single" }

func (r *ShedLowestSingleRule) Apply(ctx *LeadContext) {
	if ctx.Phase != internal.PhaseShedding {
		return
	}
	if combo, ok := domain.LowestCombination(domain.FindSingles(ctx.Hand)); ok {
		ctx.selectCombo(combo, r.Name())
	}
}

// LowestPairRule leads the weakest pair in hand.
type LowestPairRule struct{}

func (r *LowestPairRule) Name() string { return "lowest-pair" }

func (r *LowestPairRule) Apply(ctx *LeadContext) {
	if combo, ok := domain.LowestCombination(domain.FindPairs(ctx.Hand, ctx.Tuning.Rules)); ok {
		ctx.selectCombo(combo, r.Name())
	}
}

// LowestStraightRule leads the weakest straight in hand.
type LowestStraightRule struct{}

func (r *LowestStraightRule) Name() string { return "lowest-straight" }

func (r *LowestStraightRule) Apply(ctx *LeadContext) {
	if combo, ok := domain.LowestCombination(domain.FindStraights(ctx.Hand)); ok {
		ctx.selectCombo(combo, r.Name())
	}
}

// LowestSingleRule is the catch-all lead.
type LowestSingleRule struct{}

func (r *LowestSingleRule) Name() string { return "lowest-single" }

func (r *LowestSingleRule) Apply(ctx *LeadContext) {
	if combo, ok := domain.LowestCombination(domain.FindSingles(ctx.Hand)); ok {
		ctx.selectCombo(combo, r.Name())
	}
}
