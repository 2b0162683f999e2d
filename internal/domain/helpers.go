package domain

import "strings"

// RemoveCards removes the specified cards from a hand and returns the updated hand
// along with the number of cards actually removed. Cards not in the hand are ignored.
func RemoveCards(hand []Card, toRemove []Card) ([]Card, int) {
	if len(toRemove) == 0 || len(hand) == 0 {
		return hand, 0
	}

	removeCounts := make(map[Card]int, len(toRemove))
	for _, card := range toRemove {
		removeCounts[card]++
	}

	removed := 0
	updated := make([]Card, 0, len(hand))
	for _, card := range hand {
		if count, ok := removeCounts[card]; ok && count > 0 {
			removeCounts[card] = count - 1
			removed++
			continue
		}
		updated = append(updated, card)
	}

	return updated, removed
}

// ParseCards splits free-text card entry on whitespace and commas.
// Identifiers are returned verbatim; no validation is performed.
func ParseCards(text string) []Card {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '，' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		cards = append(cards, Card(f))
	}
	return cards
}

// Duplicates returns every identifier that appears more than once, in first-seen order.
func Duplicates(cards []Card) []Card {
	seen := make(map[Card]int, len(cards))
	var dups []Card
	for _, c := range cards {
		seen[c]++
		if seen[c] == 2 {
			dups = append(dups, c)
		}
	}
	return dups
}

// CardStrings converts cards to plain strings.
func CardStrings(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = string(c)
	}
	return out
}

// CardsFromStrings converts plain strings to cards.
func CardsFromStrings(ids []string) []Card {
	out := make([]Card, len(ids))
	for i, id := range ids {
		out[i] = Card(id)
	}
	return out
}
