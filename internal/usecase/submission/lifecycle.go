package submission

import (
	"fmt"

	"submission-portal/internal/domain/submission"
	"submission-portal/pkg/errors"
)

// validTransitions defines the allowed lifecycle moves. Archived is
// terminal; the only way out is a hard delete.
var validTransitions = map[submission.Status][]submission.Status{
	submission.StatusDraft:     {submission.StatusSubmitted, submission.StatusArchived},
	submission.StatusSubmitted: {submission.StatusArchived},
	submission.StatusArchived:  {},
}

// ValidateStatusTransition checks whether moving from one status to
// another is allowed. Staying on the same status is always a no-op.
func ValidateStatusTransition(from, to submission.Status) error {
	if from == to {
		return nil
	}

	allowed, ok := validTransitions[from]
	if !ok {
		return errors.NewAppError(
			"INVALID_STATUS",
			fmt.Sprintf("unknown submission status: %s", from),
			submission.ErrInvalidStatus,
		)
	}

	for _, next := range allowed {
		if next == to {
			return nil
		}
	}

	return errors.NewAppError(
		"INVALID_TRANSITION",
		fmt.Sprintf("cannot transition submission from %s to %s", from, to),
		submission.ErrInvalidStatusTransition,
	)
}
