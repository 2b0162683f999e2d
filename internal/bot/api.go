package bot

import (
	"guandan/internal/domain"
)

// Move represents the decision made by the engine.
type Move struct {
	Pass  bool
	Combo domain.Combination
	// Rule names the policy that produced the move.
	Rule string
}

// Cards returns the cards to play, or nil for a pass.
func (m Move) Cards() []domain.Card {
	if m.Pass {
		return nil
	}
	return m.Combo.Cards
}

func (m Move) String() string {
	if m.Pass {
		return "pass"
	}
	return m.Combo.String()
}

func passMove(rule string) Move {
	return Move{Pass: true, Combo: domain.PassCombination, Rule: rule}
}

func playMove(combo domain.Combination, rule string) Move {
	return Move{Combo: combo, Rule: rule}
}

// Brain is the interface that all strategies must implement.
// A prev combination of kind Pass means the caller is leading.
type Brain interface {
	CalculateMove(hand []domain.Card, prev domain.Combination) (Move, error)
	Tuning() Tuning
}
