package app

import (
	"fmt"
	"strings"

	"guandan/internal/domain"
)

func fmtEvent(e Event, format string, args ...any) string {
	detail := fmt.Sprintf(format, args...)
	if detail == "" {
		return fmt.Sprintf("[round %d] %s", e.Round, e.Kind)
	}
	return fmt.Sprintf("[round %d] %s: %s", e.Round, e.Kind, detail)
}

func cardList(cards []domain.Card) string {
	return strings.Join(domain.CardStrings(cards), " ")
}
