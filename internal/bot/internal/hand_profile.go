package internal

import "guandan/internal/domain"

// HandProfile summarizes which combinations a hand can currently form.
// Counts overlap: a card can belong to a pair, a straight and a bomb at once.
type HandProfile struct {
	TotalCards      int
	Unplayable      int
	Pairs           int
	Straights       int
	LongestStraight int
	Bombs           int
	LargestBomb     domain.Strength
}

// ProfileHand analyzes a hand with the combination finders.
func ProfileHand(hand []domain.Card, rules domain.Rules) HandProfile {
	profile := HandProfile{TotalCards: len(hand)}
	if len(hand) == 0 {
		return profile
	}

	for _, c := range hand {
		if !c.Playable() {
			profile.Unplayable++
		}
	}

	profile.Pairs = len(domain.FindPairs(hand, rules))

	straights := domain.FindStraights(hand)
	profile.Straights = len(straights)
	for _, s := range straights {
		if s.Strength.Size > profile.LongestStraight {
			profile.LongestStraight = s.Strength.Size
		}
	}

	bombs := domain.FindBombs(hand)
	profile.Bombs = len(bombs)
	for _, b := range bombs {
		if profile.LargestBomb.Less(b.Strength) {
			profile.LargestBomb = b.Strength
		}
	}

	return profile
}
