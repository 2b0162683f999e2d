package domain

import (
	"strings"
	"unicode/utf8"
)

// Card is an opaque card identifier made of a suit token followed by a rank token,
// e.g. "红桃10", "H3" or "黑桃A". Only the rank matters for play logic.
type Card string

// UnknownRankValue is the value of any card whose rank token is not recognized.
// Such cards are never part of a suggested combination.
const UnknownRankValue = 0

// RankTokens lists the rank tokens in ascending order of strength.
var RankTokens = []string{"3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A", "2"}

var rankValues = map[string]int{
	"3": 3, "4": 4, "5": 5, "6": 6, "7": 7, "8": 8, "9": 9, "10": 10,
	"J": 11, "Q": 12, "K": 13, "A": 14, "2": 15,
}

// Suit tokens emitted by the capture collaborator.
const (
	SuitHearts   = "红桃"
	SuitDiamonds = "方块"
	SuitClubs    = "梅花"
	SuitSpades   = "黑桃"
)

// CaptureSuits are the suit tokens used by the image recognizer.
var CaptureSuits = []string{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

// SplitCard separates an identifier into its suit and rank tokens.
// The rank token is "10" when the identifier ends with it, otherwise the last rune.
func SplitCard(c Card) (suit, rank string) {
	s := string(c)
	if strings.HasSuffix(s, "10") {
		return s[:len(s)-2], "10"
	}
	if s == "" {
		return "", ""
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size], s[len(s)-size:]
}

// RankValue returns the strength of a card's rank, or UnknownRankValue.
func RankValue(c Card) int {
	_, rank := SplitCard(c)
	return rankValues[rank]
}

// TokenValue returns the strength of a bare rank token, or UnknownRankValue.
func TokenValue(rank string) int {
	return rankValues[rank]
}

// Compare orders two cards by rank value.
func Compare(a, b Card) int {
	va, vb := RankValue(a), RankValue(b)
	switch {
	case va < vb:
		return -1
	case va > vb:
		return 1
	default:
		return 0
	}
}

// Suit returns the card's suit token.
func (c Card) Suit() string {
	suit, _ := SplitCard(c)
	return suit
}

// Rank returns the card's rank token.
func (c Card) Rank() string {
	_, rank := SplitCard(c)
	return rank
}

// Value returns the card's rank value.
func (c Card) Value() int {
	return RankValue(c)
}

// Playable reports whether the card has a recognized rank.
func (c Card) Playable() bool {
	return RankValue(c) != UnknownRankValue
}

// String implements fmt.Stringer.
func (c Card) String() string {
	return string(c)
}
