package ports

import (
	"context"

	"guandan/internal/domain"
)

// RecognizerPort turns a captured image into card identifiers.
type RecognizerPort interface {
	// Recognize returns the unique cards visible in the image identified by imageRef.
	// Returns an error if the image cannot be read or ctx is done.
	Recognize(ctx context.Context, imageRef string) ([]domain.Card, error)
}
