package credits

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientCredits reports a consumption larger than the balance.
	// Nothing was written.
	ErrInsufficientCredits = errors.New("insufficient credits")
	// ErrLedgerUnavailable wraps store and lock failures. Nothing was written.
	ErrLedgerUnavailable = errors.New("credit ledger unavailable")
	ErrInvalidAmount     = errors.New("credit amount must be positive")
)

// InsufficientCreditsError carries the amounts behind ErrInsufficientCredits.
type InsufficientCreditsError struct {
	Requested int64
	Available int64
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("%s: requested %d, available %d", ErrInsufficientCredits, e.Requested, e.Available)
}

func (e *InsufficientCreditsError) Is(target error) bool {
	return target == ErrInsufficientCredits
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrLedgerUnavailable, op, err)
}
