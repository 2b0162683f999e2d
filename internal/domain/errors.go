package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidHand is matched by every InvalidHandError via errors.Is.
var ErrInvalidHand = errors.New("invalid hand")

// InvalidHandError reports a hand containing the same physical card more than once.
type InvalidHandError struct {
	Duplicates []Card
}

func (e *InvalidHandError) Error() string {
	return fmt.Sprintf("invalid hand: duplicate cards %s", strings.Join(CardStrings(e.Duplicates), " "))
}

// Is lets errors.Is(err, ErrInvalidHand) match.
func (e *InvalidHandError) Is(target error) bool {
	return target == ErrInvalidHand
}
