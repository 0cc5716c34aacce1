package economy

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by callers with errors.Is.
var (
	// ErrInsufficientCredits matches any InsufficientCreditsError.
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrInvalidRequest marks malformed engine input (empty IDs,
	// non-positive amounts, out-of-range ratings).
	ErrInvalidRequest = errors.New("invalid request")
)

// InsufficientCreditsError is the normal, expected outcome of a spend that
// exceeds the actor's balance. It carries the shortfall so callers can tell
// the user exactly what is missing rather than a generic failure.
type InsufficientCreditsError struct {
	ActorID   string
	Needed    int
	Available int
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits for %s: need %d, have %d", e.ActorID, e.Needed, e.Available)
}

// Is lets errors.Is(err, ErrInsufficientCredits) match.
func (e *InsufficientCreditsError) Is(target error) bool {
	return target == ErrInsufficientCredits
}
