// Package reference issues short opaque codes that must be unique within a
// collection: transfer references and user referral codes share the same
// generate-check-retry pattern.
package reference

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// CodeLength is the number of hex characters in a generated code.
const CodeLength = 8

// maxAttempts bounds the generate-check-retry loop. The storage layer keeps
// a unique index as the authoritative guard, so exhausting the loop means
// something is badly wrong with the code space or the store.
const maxAttempts = 5

// ErrExhausted indicates the generator could not find an unused code within
// the attempt budget.
var ErrExhausted = errors.New("reference: exhausted unique code attempts")

// ExistsFunc reports whether a candidate code is already taken.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// Generate returns a fresh code that the provided ExistsFunc did not know,
// retrying on collision up to a fixed cap.
func Generate(ctx context.Context, exists ExistsFunc) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate := newCandidate()
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrExhausted
}

func newCandidate() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:CodeLength]
}
