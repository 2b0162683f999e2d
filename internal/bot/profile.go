package bot

import (
	"guandan/internal/bot/internal"
	"guandan/internal/domain"
)

// HandProfile summarizes the combinations a hand can form.
type HandProfile = internal.HandProfile

// ProfileHand analyzes hand for display.
func ProfileHand(hand []domain.Card, rules domain.Rules) HandProfile {
	return internal.ProfileHand(hand, rules)
}
