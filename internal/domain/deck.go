package domain

import (
	"sort"
)

// CopiesPerDeck is the number of cards of one rank in a single deck.
const CopiesPerDeck = 4

// NewDeck returns the 52 ranked cards over the given suit tokens, in rank order.
func NewDeck(suits []string) []Card {
	deck := make([]Card, 0, len(suits)*len(RankTokens))
	for _, r := range RankTokens {
		for _, s := range suits {
			deck = append(deck, Card(s+r))
		}
	}
	return deck
}

// RankCount returns how many cards of each rank are in play for the given deck count.
func RankCount(decks int) int {
	if decks < 1 {
		decks = 1
	}
	return CopiesPerDeck * decks
}

// SortHand orders a hand by ascending rank value. Cards of equal rank keep their order.
func SortHand(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		return RankValue(cards[i]) < RankValue(cards[j])
	})
}

// SortedCopy returns a sorted copy of cards.
func SortedCopy(cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	SortHand(out)
	return out
}
