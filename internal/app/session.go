package app

import (
	"fmt"
	"strings"

	"guandan/internal/bot"
	"guandan/internal/bot/brain"
	"guandan/internal/domain"
)

// Session is the turn state machine of a single assisted game. It owns the hand,
// the outstanding opponent play and the memoized suggestion. Session is not safe
// for concurrent use; hosts wrap it in a SafeSession.
type Session struct {
	brain  bot.Brain
	rules  domain.Rules
	hand   *domain.Hand
	memory *brain.GameMemory

	turn        Turn
	roundCount  int
	activePlay  *domain.Combination
	playedCards []domain.Card
	journal     []Event

	// revision is bumped by every mutator; the memo is valid only for the revision
	// it was computed at.
	revision uint64
	memo     *suggestionMemo
}

type suggestionMemo struct {
	revision uint64
	move     bot.Move
}

// NewSession constructs a Session driven by b. decks sizes the card ledger.
func NewSession(b bot.Brain, decks int) *Session {
	return &Session{
		brain:  b,
		rules:  b.Tuning().Rules,
		hand:   domain.NewHand(),
		memory: brain.NewMemory(decks),
	}
}

func (s *Session) invalidate() {
	s.revision++
}

func (s *Session) record(kind EventKind, payload any) {
	s.journal = append(s.journal, Event{Kind: kind, Round: s.roundCount, Payload: payload})
}

// SetHand replaces the hand. Duplicate identifiers are rejected and nothing changes.
func (s *Session) SetHand(cards []domain.Card) error {
	if err := s.hand.SetHand(cards); err != nil {
		return err
	}
	s.memory.UpdateHand(cards)
	s.record(EventHandSet, HandSetPayload{Cards: s.hand.Cards()})
	s.invalidate()
	return nil
}

// RemoveCards drops held cards without recording a play and returns how many were removed.
func (s *Session) RemoveCards(cards []domain.Card) int {
	removed := s.hand.RemoveCards(cards)
	s.memory.UpdateHand(s.hand.Cards())
	s.invalidate()
	return removed
}

// Size returns the number of cards in hand.
func (s *Session) Size() int {
	return s.hand.Size()
}

// Hand returns a copy of the current hand.
func (s *Session) Hand() []domain.Card {
	return s.hand.Cards()
}

// RecordOpponentPlay stores the opponent's combination as the play to answer.
// An empty play means the opponent passed and the lead comes back to me.
func (s *Session) RecordOpponentPlay(cards []domain.Card) domain.Combination {
	defer s.invalidate()
	s.turn = TurnMine

	if len(cards) == 0 {
		s.activePlay = nil
		s.memory.RecordPass()
		s.record(EventOpponentPassed, nil)
		return domain.PassCombination
	}

	combo := domain.Classify(cards, s.rules)
	s.activePlay = &combo
	s.memory.RecordOpponentPlay(combo)
	s.record(EventOpponentPlayed, OpponentPlayedPayload{Combo: combo})
	return combo
}

// RecordMyPlay completes my turn. Empty cards is an explicit pass.
func (s *Session) RecordMyPlay(cards []domain.Card) {
	defer s.invalidate()

	var held []domain.Card
	if len(cards) == 0 {
		s.record(EventMyPass, nil)
	} else {
		held = s.hand.Take(cards)
		s.playedCards = append(s.playedCards, cards...)
		s.record(EventMyPlay, MyPlayPayload{Cards: append([]domain.Card(nil), cards...), Removed: len(held)})
	}
	s.memory.RecordOwnPlay(domain.Classify(cards, s.rules), held)
	s.memory.UpdateHand(s.hand.Cards())

	s.activePlay = nil
	s.roundCount++
	s.turn = TurnOpponent
}

// ResetRound swaps the turn without touching the outstanding play or history.
// It is used when an external collaborator detects a skipped turn.
func (s *Session) ResetRound() {
	if s.turn == TurnMine {
		s.turn = TurnOpponent
	} else {
		s.turn = TurnMine
	}
	s.record(EventRoundReset, RoundResetPayload{Turn: s.turn})
	s.invalidate()
}

// State derives the strategy state from the outstanding opponent play.
func (s *Session) State() State {
	if s.activePlay == nil {
		return StateMyLead
	}
	return StateMyResponse
}

// Turn reports who is expected to play next.
func (s *Session) Turn() Turn {
	return s.turn
}

// RoundCount is the number of my completed plays, passes included.
func (s *Session) RoundCount() int {
	return s.roundCount
}

// ActiveOpponentPlay returns the play awaiting my response, if any.
func (s *Session) ActiveOpponentPlay() (domain.Combination, bool) {
	if s.activePlay == nil {
		return domain.Combination{}, false
	}
	return *s.activePlay, true
}

// Suggest returns the recommended play for the current state. Without force it
// returns the memoized move computed at the current revision, if any. When the
// brain fails the session yields a pass along with the error.
func (s *Session) Suggest(force bool) (bot.Move, error) {
	if !force && s.memo != nil && s.memo.revision == s.revision {
		return s.memo.move, nil
	}

	prev := domain.PassCombination
	if s.activePlay != nil {
		prev = *s.activePlay
	}

	move, err := s.brain.CalculateMove(s.hand.Cards(), prev)
	if err != nil {
		return bot.Move{Pass: true, Combo: domain.PassCombination}, fmt.Errorf("calculate move: %w", err)
	}

	s.memo = &suggestionMemo{revision: s.revision, move: move}
	return move, nil
}

// OpponentMayBeat reports whether combo could still be answered, judged by the
// strongest play of the same kind the opponent has already passed on.
func (s *Session) OpponentMayBeat(combo domain.Combination) bool {
	return s.memory.Opponent.CanPossiblyBeat(combo)
}

// Classify classifies cards under the session's rules, independent of hand state.
func (s *Session) Classify(cards []domain.Card) domain.Combination {
	return domain.Classify(cards, s.rules)
}

// Reset clears all state for a new game.
func (s *Session) Reset() {
	s.hand.Clear()
	s.memory.Reset()
	s.turn = TurnMine
	s.roundCount = 0
	s.activePlay = nil
	s.playedCards = nil
	s.journal = []Event{{Kind: EventGameReset}}
	s.memo = nil
	s.invalidate()
}

// Journal returns a copy of the recorded events, oldest first.
func (s *Session) Journal() []Event {
	out := make([]Event, len(s.journal))
	copy(out, s.journal)
	return out
}

// PlayedCards returns a copy of every card I have played, in order.
func (s *Session) PlayedCards() []domain.Card {
	out := make([]domain.Card, len(s.playedCards))
	copy(out, s.playedCards)
	return out
}

// StateSummary is a read-only snapshot for display collaborators.
type StateSummary struct {
	RoundCount         int
	Turn               Turn
	State              State
	HandSize           int
	PlayedCount        int
	ActiveOpponentPlay *domain.Combination
	Hand               []domain.Card
	Profile            bot.HandProfile
	OpponentStats      map[domain.Kind]int
	OpponentCards      int
	OpponentPasses     int
	// OpponentWeaknesses holds, per kind, the strongest play the opponent passed on.
	OpponentWeaknesses map[domain.Kind]domain.Strength
	Unseen             map[string]int
	BossCards          []domain.Card
	ExhaustedRanks     []string
}

// StateSummary derives the current snapshot. It has no side effects.
func (s *Session) StateSummary() StateSummary {
	summary := StateSummary{
		RoundCount:         s.roundCount,
		Turn:               s.turn,
		State:              s.State(),
		HandSize:           s.hand.Size(),
		PlayedCount:        len(s.playedCards),
		Hand:               s.hand.Cards(),
		Profile:            bot.ProfileHand(s.hand.Cards(), s.rules),
		OpponentStats:      s.memory.Opponent.Stats(),
		OpponentCards:      s.memory.Opponent.CardsPlayed,
		OpponentPasses:     s.memory.Opponent.Passes,
		OpponentWeaknesses: s.memory.Opponent.WeaknessesCopy(),
		Unseen:             s.memory.Unseen(),
		BossCards:          s.memory.BossCards(s.hand.Cards()),
		ExhaustedRanks:     s.memory.ExhaustedRanks(),
	}
	if s.activePlay != nil {
		active := *s.activePlay
		summary.ActiveOpponentPlay = &active
	}
	return summary
}

// String renders e.g. "round 3 | turn mine | lead | hand 9 | played 4 | opponent: pair(7)".
func (ss StateSummary) String() string {
	parts := []string{
		fmt.Sprintf("round %d", ss.RoundCount),
		fmt.Sprintf("turn %s", ss.Turn),
		ss.State.String(),
		fmt.Sprintf("hand %d", ss.HandSize),
		fmt.Sprintf("played %d", ss.PlayedCount),
	}
	if ss.ActiveOpponentPlay != nil {
		parts = append(parts, fmt.Sprintf("opponent: %s", *ss.ActiveOpponentPlay))
	}
	return strings.Join(parts, " | ")
}
