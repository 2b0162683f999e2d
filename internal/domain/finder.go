package domain

// Finder functions enumerate combinations present in a hand. They are pure and are
// re-run on every call; hands hold at most a couple dozen cards.

type rankGroup struct {
	value int
	cards []Card
}

// groupByRank returns playable cards grouped by rank value, ascending.
func groupByRank(hand []Card) []rankGroup {
	sorted := SortedCopy(hand)
	var groups []rankGroup
	for _, c := range sorted {
		v := RankValue(c)
		if v == UnknownRankValue {
			continue
		}
		if n := len(groups); n > 0 && groups[n-1].value == v {
			groups[n-1].cards = append(groups[n-1].cards, c)
			continue
		}
		groups = append(groups, rankGroup{value: v, cards: []Card{c}})
	}
	return groups
}

// FindSingles returns one single per playable card, ascending.
func FindSingles(hand []Card) []Combination {
	var singles []Combination
	for _, g := range groupByRank(hand) {
		for _, c := range g.cards {
			singles = append(singles, Combination{
				Kind:     Single,
				Cards:    []Card{c},
				Strength: Strength{Size: 1, Value: g.value},
			})
		}
	}
	return singles
}

// FindPairs returns one pair per rank holding at least two cards, built from the first
// two held cards of that rank (the first two with different suits under DistinctSuitPairs).
func FindPairs(hand []Card, rules Rules) []Combination {
	var pairs []Combination
	for _, g := range groupByRank(hand) {
		if len(g.cards) < 2 {
			continue
		}
		pair, ok := pickPair(g.cards, rules)
		if !ok {
			continue
		}
		pairs = append(pairs, Combination{
			Kind:     Pair,
			Cards:    pair,
			Strength: Strength{Size: 2, Value: g.value},
		})
	}
	return pairs
}

func pickPair(cards []Card, rules Rules) ([]Card, bool) {
	if !rules.DistinctSuitPairs {
		return []Card{cards[0], cards[1]}, true
	}
	for i := 0; i < len(cards)-1; i++ {
		for j := i + 1; j < len(cards); j++ {
			if cards[i].Suit() != cards[j].Suit() {
				return []Card{cards[i], cards[j]}, true
			}
		}
	}
	return nil, false
}

// FindStraights returns every window of at least MinStraightLength consecutive distinct
// ranks, one card per rank. Overlapping windows are all returned, ordered by starting
// rank and then by length.
func FindStraights(hand []Card) []Combination {
	groups := groupByRank(hand)
	var straights []Combination

	for start := 0; start < len(groups); start++ {
		for end := start + 1; end < len(groups); end++ {
			if groups[end].value != groups[end-1].value+1 {
				break
			}
			length := end - start + 1
			if length < MinStraightLength {
				continue
			}

			cards := make([]Card, 0, length)
			for k := start; k <= end; k++ {
				cards = append(cards, groups[k].cards[0])
			}
			straights = append(straights, Combination{
				Kind:     Straight,
				Cards:    cards,
				Strength: Strength{Size: length, Value: groups[end].value},
			})
		}
	}
	return straights
}

// FindBombs returns one bomb per rank holding at least MinBombSize cards, containing
// every held card of that rank.
func FindBombs(hand []Card) []Combination {
	var bombs []Combination
	for _, g := range groupByRank(hand) {
		if len(g.cards) < MinBombSize {
			continue
		}
		cards := make([]Card, len(g.cards))
		copy(cards, g.cards)
		bombs = append(bombs, Combination{
			Kind:     Bomb,
			Cards:    cards,
			Strength: Strength{Size: len(cards), Value: g.value},
		})
	}
	return bombs
}
