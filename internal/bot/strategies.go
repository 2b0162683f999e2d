package bot

import (
	"guandan/internal/bot/internal"
	"guandan/internal/domain"
)

// Rule names reported for moves that are not produced by a lead rule or counter tier.
const (
	RuleNoPlayable = "no-playable-card"
	RuleNoCounter  = "no-counter"
	RuleUnbeatable = "unbeatable"
)

// GreedyBot never plays a stronger combination than necessary. On lead it sheds
// low singles while the hand is large, then its weakest pair, straight or single.
type GreedyBot struct {
	tuning Tuning
	lead   []LeadRule
}

// NewGreedyBot creates a greedy strategy. A non-positive lead threshold falls back
// to DefaultLeadThreshold.
func NewGreedyBot(tuning Tuning) *GreedyBot {
	if tuning.LeadThreshold <= 0 {
		tuning.LeadThreshold = DefaultLeadThreshold
	}
	return &GreedyBot{tuning: tuning, lead: DefaultLeadPipeline}
}

func (b *GreedyBot) Tuning() Tuning {
	return b.tuning
}

func (b *GreedyBot) CalculateMove(hand []domain.Card, prev domain.Combination) (Move, error) {
	if prev.IsPass() {
		return b.leadMove(hand), nil
	}
	return b.counterMove(hand, prev), nil
}

func (b *GreedyBot) leadMove(hand []domain.Card) Move {
	ctx := &LeadContext{
		Hand:   hand,
		Phase:  internal.DetectPhase(len(hand), b.tuning.LeadThreshold),
		Tuning: b.tuning,
	}
	RunLeadPipeline(ctx, b.lead)
	if !ctx.Done {
		return passMove(RuleNoPlayable)
	}
	return playMove(ctx.Selected, ctx.Rule)
}

func (b *GreedyBot) counterMove(hand []domain.Card, prev domain.Combination) Move {
	tiers := internal.GetCounterTiers(hand, prev, b.tuning.Rules)
	if tiers == nil {
		return passMove(RuleUnbeatable)
	}
	for _, tier := range tiers {
		if combo, ok := domain.LowestCombination(tier.Moves); ok {
			return playMove(combo, tier.Name)
		}
	}
	return passMove(RuleNoCounter)
}
