package domain

import (
	"fmt"
)

// Kind represents the type of a card combination.
type Kind int

const (
	Pass Kind = iota
	Single
	Pair
	Straight
	Bomb
	Other // anything the engine does not classify; never suggested
)

var kindNames = map[Kind]string{
	Pass:     "pass",
	Single:   "single",
	Pair:     "pair",
	Straight: "straight",
	Bomb:     "bomb",
	Other:    "other",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Strength totally orders combinations of the same kind: Size first, then Value.
// For straights Size is the length and Value the top rank; for bombs Size is the
// card count and Value the rank.
type Strength struct {
	Size  int
	Value int
}

// Compare returns -1, 0 or 1 comparing s to o.
func (s Strength) Compare(o Strength) int {
	switch {
	case s.Size != o.Size:
		if s.Size < o.Size {
			return -1
		}
		return 1
	case s.Value < o.Value:
		return -1
	case s.Value > o.Value:
		return 1
	default:
		return 0
	}
}

// Less reports whether s orders strictly before o.
func (s Strength) Less(o Strength) bool {
	return s.Compare(o) < 0
}

// Combination is a classified group of cards.
type Combination struct {
	Kind     Kind
	Cards    []Card // sorted ascending by rank value
	Strength Strength
}

// PassCombination is the empty play.
var PassCombination = Combination{Kind: Pass}

// IsPass reports whether the combination is an explicit pass.
func (c Combination) IsPass() bool {
	return c.Kind == Pass
}

// Size returns the number of cards in the combination.
func (c Combination) Size() int {
	return len(c.Cards)
}

// String describes the combination, e.g. "pair(7)" or "5-card straight (top 9)".
func (c Combination) String() string {
	switch c.Kind {
	case Pass:
		return "pass"
	case Single:
		return fmt.Sprintf("single(%s)", valueToken(c.Strength.Value))
	case Pair:
		return fmt.Sprintf("pair(%s)", valueToken(c.Strength.Value))
	case Straight:
		return fmt.Sprintf("%d-card straight (top %s)", c.Strength.Size, valueToken(c.Strength.Value))
	case Bomb:
		return fmt.Sprintf("%d-card bomb (%s)", c.Strength.Size, valueToken(c.Strength.Value))
	default:
		return fmt.Sprintf("other (%d cards)", len(c.Cards))
	}
}

func valueToken(v int) string {
	for token, value := range rankValues {
		if value == v {
			return token
		}
	}
	return "?"
}

// Rules holds the variant switches shared by the classifier and the finder.
type Rules struct {
	// DistinctSuitPairs requires the two cards of a pair to carry different suit tokens.
	DistinctSuitPairs bool
	// LongerStraightBeats lets any longer straight answer a shorter one regardless of top card.
	LongerStraightBeats bool
}

// DefaultRules matches the lenient pair rule and the longer-straight counter policy.
var DefaultRules = Rules{
	DistinctSuitPairs:   false,
	LongerStraightBeats: true,
}

// Classify maps any list of cards to exactly one combination. It never fails.
func Classify(cards []Card, rules Rules) Combination {
	n := len(cards)
	if n == 0 {
		return PassCombination
	}

	sorted := SortedCopy(cards)
	values := make([]int, n)
	for i, c := range sorted {
		values[i] = RankValue(c)
	}

	if n == 1 {
		return Combination{Kind: Single, Cards: sorted, Strength: Strength{Size: 1, Value: values[0]}}
	}

	if n == 2 && values[0] == values[1] {
		if rules.DistinctSuitPairs && sorted[0].Suit() == sorted[1].Suit() {
			return other(sorted)
		}
		return Combination{Kind: Pair, Cards: sorted, Strength: Strength{Size: 2, Value: values[0]}}
	}

	if n >= MinStraightLength && isRun(values) {
		return Combination{Kind: Straight, Cards: sorted, Strength: Strength{Size: n, Value: values[n-1]}}
	}

	if n >= MinBombSize && allSameValue(values) {
		return Combination{Kind: Bomb, Cards: sorted, Strength: Strength{Size: n, Value: values[0]}}
	}

	return other(sorted)
}

// CanBeat reports whether next is a legal counter to prev under the engine's rules.
func CanBeat(prev, next Combination, rules Rules) bool {
	if next.Kind == Pass || next.Kind == Other {
		return false
	}

	switch prev.Kind {
	case Single:
		return next.Kind == Single && next.Strength.Value > prev.Strength.Value
	case Pair:
		if next.Kind == Bomb {
			return true
		}
		return next.Kind == Pair && next.Strength.Value > prev.Strength.Value
	case Straight:
		if next.Kind == Bomb {
			return true
		}
		if next.Kind != Straight {
			return false
		}
		if next.Strength.Size == prev.Strength.Size {
			return next.Strength.Value > prev.Strength.Value
		}
		return rules.LongerStraightBeats && next.Strength.Size > prev.Strength.Size
	case Bomb:
		return next.Kind == Bomb && prev.Strength.Less(next.Strength)
	default:
		return false
	}
}

func other(sorted []Card) Combination {
	return Combination{Kind: Other, Cards: sorted, Strength: Strength{Size: len(sorted)}}
}

// isRun expects ascending values.
func isRun(values []int) bool {
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1]+1 {
			return false // duplicate or gap
		}
	}
	return true
}

func allSameValue(values []int) bool {
	for _, v := range values {
		if v != values[0] {
			return false
		}
	}
	return true
}

// LowestCombination returns the combination with the smallest strength, and false
// when combos is empty.
func LowestCombination(combos []Combination) (Combination, bool) {
	if len(combos) == 0 {
		return Combination{}, false
	}
	best := combos[0]
	for _, c := range combos[1:] {
		if c.Strength.Less(best.Strength) {
			best = c
		}
	}
	return best, true
}
