package basket

import "errors"

var (
	// ErrEmptyBasket means no leg survived validation and allocation:
	// nothing enabled, no positive weight, or every leg skipped.
	ErrEmptyBasket = errors.New("basket has no tradeable legs")

	// ErrTooManyLegs means the spec exceeds the venue's batch cap.
	// The basket is rejected whole, never truncated.
	ErrTooManyLegs = errors.New("basket exceeds batch order limit")

	// ErrInvalidBudget means the total budget is zero or negative.
	ErrInvalidBudget = errors.New("total budget must be positive")
)
