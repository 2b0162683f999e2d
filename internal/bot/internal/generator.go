package internal

import (
	"guandan/internal/domain"
)

// Tier names, also surfaced as Move.Rule.
const (
	TierSingle         = "counter-single"
	TierPair           = "counter-pair"
	TierStraight       = "counter-straight"
	TierLongerStraight = "longer-straight"
	TierBomb           = "counter-bomb"
	TierBombFallback   = "bomb-fallback"
)

// CounterTier is a group of legal counters the strategy weighs together.
// Earlier tiers are preferred over later ones regardless of strength.
type CounterTier struct {
	Name  string
	Moves []domain.Combination
}

// GetCounterTiers returns the legal answers to prev found in hand, grouped by
// preference. Every returned combination satisfies domain.CanBeat(prev, c, rules).
func GetCounterTiers(hand []domain.Card, prev domain.Combination, rules domain.Rules) []CounterTier {
	switch prev.Kind {
	case domain.Single:
		return []CounterTier{
			{Name: TierSingle, Moves: beating(domain.FindSingles(hand), prev, rules)},
		}
	case domain.Pair:
		return []CounterTier{
			{Name: TierPair, Moves: beating(domain.FindPairs(hand, rules), prev, rules)},
			{Name: TierBombFallback, Moves: beating(domain.FindBombs(hand), prev, rules)},
		}
	case domain.Straight:
		straights := domain.FindStraights(hand)
		var sameLength, longer []domain.Combination
		for _, s := range beating(straights, prev, rules) {
			if s.Strength.Size == prev.Strength.Size {
				sameLength = append(sameLength, s)
			} else {
				longer = append(longer, s)
			}
		}
		return []CounterTier{
			{Name: TierStraight, Moves: sameLength},
			{Name: TierLongerStraight, Moves: longer},
			{Name: TierBombFallback, Moves: beating(domain.FindBombs(hand), prev, rules)},
		}
	case domain.Bomb:
		return []CounterTier{
			{Name: TierBomb, Moves: beating(domain.FindBombs(hand), prev, rules)},
		}
	default:
		return nil
	}
}

func beating(candidates []domain.Combination, prev domain.Combination, rules domain.Rules) []domain.Combination {
	var moves []domain.Combination
	for _, c := range candidates {
		if domain.CanBeat(prev, c, rules) {
			moves = append(moves, c)
		}
	}
	return moves
}
