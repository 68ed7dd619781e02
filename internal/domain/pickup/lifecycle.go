package pickup

import (
	"fmt"

	appErrors "wastemanage/pkg/errors"
)

// Transition table for pickup request statuses. Applied to every path that
// mutates a status, including full updates.
var validTransitions = map[Status][]Status{
	StatusPending: {
		StatusScheduled,
		StatusCancelled,
	},
	StatusScheduled: {
		StatusInProgress,
		StatusCancelled,
	},
	StatusInProgress: {
		StatusCompleted,
		StatusCancelled,
	},
	StatusCompleted: {
		// Terminal state
	},
	StatusCancelled: {
		// Terminal state
	},
}

// ValidateTransition checks whether a request may move from current to next.
// A no-op transition (same status) is allowed.
func ValidateTransition(current, next Status) error {
	if current == next {
		return nil
	}

	allowed, exists := validTransitions[current]
	if !exists {
		return appErrors.NewAppError(
			"INVALID_STATUS",
			fmt.Sprintf("Unknown current status: %s", current),
			ErrInvalidStatus,
		)
	}

	for _, s := range allowed {
		if next == s {
			return nil
		}
	}

	return appErrors.NewAppError(
		"INVALID_TRANSITION",
		fmt.Sprintf("Cannot transition from %s to %s", current, next),
		ErrInvalidTransition,
	)
}

// AllowedTransitions returns the statuses reachable from current.
func AllowedTransitions(current Status) []Status {
	return validTransitions[current]
}
