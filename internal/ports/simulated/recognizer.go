package simulated

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"guandan/internal/domain"
)

// Recognizer stands in for image recognition by dealing random unique cards.
type Recognizer struct {
	mu       sync.Mutex
	rng      *rand.Rand
	handSize int
	suits    []string
}

// NewRecognizer constructs a Recognizer with provided rng or a time-seeded default.
// A non-positive handSize deals domain.DefaultHandSize cards.
func NewRecognizer(rng *rand.Rand, handSize int) *Recognizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if handSize <= 0 {
		handSize = domain.DefaultHandSize
	}
	return &Recognizer{rng: rng, handSize: handSize, suits: domain.CaptureSuits}
}

// Recognize ignores imageRef and deals handSize distinct cards from one deck.
func (r *Recognizer) Recognize(ctx context.Context, imageRef string) ([]domain.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	deck := domain.NewDeck(r.suits)
	r.mu.Lock()
	r.rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	r.mu.Unlock()

	n := r.handSize
	if n > len(deck) {
		n = len(deck)
	}
	hand := append([]domain.Card(nil), deck[:n]...)
	return hand, nil
}
