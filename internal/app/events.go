package app

import (
	"guandan/internal/domain"
)

// EventKind identifies entries in a session journal.
type EventKind string

const (
	EventHandSet        EventKind = "hand_set"
	EventOpponentPlayed EventKind = "opponent_played"
	EventOpponentPassed EventKind = "opponent_passed"
	EventMyPlay         EventKind = "my_play"
	EventMyPass         EventKind = "my_pass"
	EventRoundReset     EventKind = "round_reset"
	EventGameReset      EventKind = "game_reset"
)

// Event is a journal entry. Round is the round count when the event was recorded.
type Event struct {
	Kind    EventKind
	Round   int
	Payload any
}

type HandSetPayload struct {
	Cards []domain.Card
}

type OpponentPlayedPayload struct {
	Combo domain.Combination
}

type MyPlayPayload struct {
	Cards []domain.Card
	// Removed is how many of Cards were actually held.
	Removed int
}

type RoundResetPayload struct {
	Turn Turn
}

func (e Event) String() string {
	switch p := e.Payload.(type) {
	case HandSetPayload:
		return fmtEvent(e, "%d cards", len(p.Cards))
	case OpponentPlayedPayload:
		return fmtEvent(e, "%s", p.Combo)
	case MyPlayPayload:
		return fmtEvent(e, "%s", cardList(p.Cards))
	case RoundResetPayload:
		return fmtEvent(e, "turn %s", p.Turn)
	default:
		return fmtEvent(e, "")
	}
}
