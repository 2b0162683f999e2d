package brain

import (
	"guandan/internal/domain"
)

// GameMemory is the assistant's private view of the cards in play. It is kept for
// display and is never consulted by the strategy.
type GameMemory struct {
	Decks int
	// Opponent tracks what the opponent has played and passed on.
	Opponent *OpponentProfile
	// CurrentCombo is the combination currently on the table.
	CurrentCombo domain.Combination

	mine   map[string]int // rank token -> copies in my hand
	played map[string]int // rank token -> copies played by either side
}

// NewMemory initializes a fresh memory for the given number of decks.
func NewMemory(decks int) *GameMemory {
	if decks < 1 {
		decks = domain.DefaultDecks
	}
	m := &GameMemory{Decks: decks}
	m.Reset()
	return m
}

// Reset clears the memory for a new game.
func (m *GameMemory) Reset() {
	m.Opponent = NewOpponentProfile()
	m.CurrentCombo = domain.PassCombination
	m.mine = make(map[string]int)
	m.played = make(map[string]int)
}

// UpdateHand replaces the set of cards known to be mine.
func (m *GameMemory) UpdateHand(hand []domain.Card) {
	m.mine = countRanks(hand)
}

// RecordOwnPlay puts combo on the table. Only held, the cards that actually left my
// hand, are counted as played.
func (m *GameMemory) RecordOwnPlay(combo domain.Combination, held []domain.Card) {
	for rank, n := range countRanks(held) {
		m.played[rank] += n
		m.mine[rank] -= n
		if m.mine[rank] <= 0 {
			delete(m.mine, rank)
		}
	}
	m.CurrentCombo = combo
}

// RecordOpponentPlay logs a combination played by the opponent.
func (m *GameMemory) RecordOpponentPlay(combo domain.Combination) {
	if combo.IsPass() {
		m.RecordPass()
		return
	}
	for rank, n := range countRanks(combo.Cards) {
		m.played[rank] += n
	}
	m.Opponent.RecordPlay(combo)
	m.CurrentCombo = combo
}

// RecordPass notes that the opponent passed on the combination on the table.
func (m *GameMemory) RecordPass() {
	m.Opponent.RecordFailure(m.CurrentCombo)
	m.CurrentCombo = domain.PassCombination
}

// Unseen returns, per rank token, how many copies are neither in my hand nor played.
func (m *GameMemory) Unseen() map[string]int {
	total := domain.RankCount(m.Decks)
	unseen := make(map[string]int, len(domain.RankTokens))
	for _, rank := range domain.RankTokens {
		n := total - m.mine[rank] - m.played[rank]
		if n < 0 {
			n = 0
		}
		unseen[rank] = n
	}
	return unseen
}

// IsBoss returns true if no copy of a higher rank is still unseen.
func (m *GameMemory) IsBoss(c domain.Card) bool {
	if !c.Playable() {
		return false
	}
	unseen := m.Unseen()
	for _, rank := range domain.RankTokens {
		if domain.TokenValue(rank) > c.Value() && unseen[rank] > 0 {
			return false
		}
	}
	return true
}

// IsExhausted returns true if every copy of the card's rank has been played.
func (m *GameMemory) IsExhausted(c domain.Card) bool {
	return c.Playable() && m.played[c.Rank()] >= domain.RankCount(m.Decks)
}

// BossCards returns the cards of hand that no unseen card can outrank.
func (m *GameMemory) BossCards(hand []domain.Card) []domain.Card {
	var boss []domain.Card
	for _, c := range hand {
		if m.IsBoss(c) {
			boss = append(boss, c)
		}
	}
	return boss
}

// ExhaustedRanks lists, ascending, the rank tokens with every copy played.
func (m *GameMemory) ExhaustedRanks() []string {
	var ranks []string
	for _, rank := range domain.RankTokens {
		if m.IsExhausted(domain.Card(rank)) {
			ranks = append(ranks, rank)
		}
	}
	return ranks
}

func countRanks(cards []domain.Card) map[string]int {
	counts := make(map[string]int)
	for _, c := range cards {
		if !c.Playable() {
			continue
		}
		counts[c.Rank()]++
	}
	return counts
}
