package domain

// Hand is the ordered set of cards currently held, kept ascending by rank value.
type Hand struct {
	cards []Card
}

// NewHand returns an empty hand.
func NewHand() *Hand {
	return &Hand{}
}

// SetHand replaces the hand. Exact duplicate identifiers are rejected with an
// *InvalidHandError and the hand is left unchanged.
func (h *Hand) SetHand(cards []Card) error {
	if dups := Duplicates(cards); len(dups) > 0 {
		return &InvalidHandError{Duplicates: dups}
	}
	h.cards = SortedCopy(cards)
	return nil
}

// RemoveCards removes each listed card that is held and returns how many were removed.
// Cards not in the hand are ignored.
func (h *Hand) RemoveCards(cards []Card) int {
	var removed int
	h.cards, removed = RemoveCards(h.cards, cards)
	return removed
}

// Size returns the number of cards held.
func (h *Hand) Size() int {
	return len(h.cards)
}

// Cards returns a copy of the held cards in ascending order.
func (h *Hand) Cards() []Card {
	out := make([]Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// Take removes each listed card that is held and returns the removed cards in hand
// order. Cards not in the hand are ignored.
func (h *Hand) Take(cards []Card) []Card {
	want := make(map[Card]int, len(cards))
	for _, c := range cards {
		want[c]++
	}
	var taken []Card
	kept := make([]Card, 0, len(h.cards))
	for _, c := range h.cards {
		if want[c] > 0 {
			want[c]--
			taken = append(taken, c)
			continue
		}
		kept = append(kept, c)
	}
	h.cards = kept
	return taken
}

// Clear empties the hand.
func (h *Hand) Clear() {
	h.cards = nil
}
