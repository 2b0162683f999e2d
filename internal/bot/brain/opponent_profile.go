package brain

import (
	"guandan/internal/domain"
)

// OpponentProfile tracks the behavioral history of the opponent.
type OpponentProfile struct {
	CardsPlayed int
	Passes      int
	// Weaknesses maps a combination kind to the strongest combination the opponent FAILED to beat.
	Weaknesses map[domain.Kind]domain.Strength
	// PlayedStats tracks how many of each combination kind the opponent has played.
	PlayedStats map[domain.Kind]int
}

func NewOpponentProfile() *OpponentProfile {
	return &OpponentProfile{
		Weaknesses:  make(map[domain.Kind]domain.Strength),
		PlayedStats: make(map[domain.Kind]int),
	}
}

// RecordPlay logs a combination played by the opponent.
func (p *OpponentProfile) RecordPlay(combo domain.Combination) {
	if combo.IsPass() {
		return
	}
	p.PlayedStats[combo.Kind]++
	p.CardsPlayed += len(combo.Cards)
}

// RecordFailure notes that the opponent could not (or chose not to) beat combo.
func (p *OpponentProfile) RecordFailure(combo domain.Combination) {
	p.Passes++
	if combo.IsPass() || combo.Kind == domain.Other {
		return
	}

	current, ok := p.Weaknesses[combo.Kind]
	if !ok || current.Less(combo.Strength) {
		p.Weaknesses[combo.Kind] = combo.Strength
	}
}

// CanPossiblyBeat returns true if we have no evidence that the opponent cannot beat combo.
func (p *OpponentProfile) CanPossiblyBeat(combo domain.Combination) bool {
	maxFailed, ok := p.Weaknesses[combo.Kind]
	if !ok {
		return true
	}
	// Anything at least as strong as a combination they already let through is assumed safe.
	return combo.Strength.Less(maxFailed)
}

// WeaknessesCopy returns a copy of Weaknesses.
func (p *OpponentProfile) WeaknessesCopy() map[domain.Kind]domain.Strength {
	out := make(map[domain.Kind]domain.Strength, len(p.Weaknesses))
	for k, v := range p.Weaknesses {
		out[k] = v
	}
	return out
}

// Stats returns a copy of the per-kind play tally.
func (p *OpponentProfile) Stats() map[domain.Kind]int {
	out := make(map[domain.Kind]int, len(p.PlayedStats))
	for k, v := range p.PlayedStats {
		out[k] = v
	}
	return out
}
