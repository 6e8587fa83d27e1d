package planner

import "errors"

var (
	// ErrNegativeBudget is returned when a PTO or floating budget is negative
	ErrNegativeBudget = errors.New("budget must be non-negative")

	// ErrUnknownStrategy is returned for a strategy key outside the recognized set
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrEmptyGroupSet is returned when the group variant is invoked with zero groups
	ErrEmptyGroupSet = errors.New("at least one group is required")
)
