package submission

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for submission repository operations
type Repository interface {
	Create(ctx context.Context, sub *Submission) error
	GetByID(ctx context.Context, id uuid.UUID) (*Submission, error)
	Update(ctx context.Context, sub *Submission) error
	Delete(ctx context.Context, id uuid.UUID) error

	// GetDraftForOwner matches id, owner and Draft status in one lookup.
	// A miss on any of the three conditions yields ErrSubmissionNotFound,
	// indistinguishable to the caller.
	GetDraftForOwner(ctx context.Context, id, ownerID uuid.UUID) (*Submission, error)

	ListByOwner(ctx context.Context, ownerID uuid.UUID, status *Status) ([]*Submission, error)
	ListSubmitted(ctx context.Context) ([]*Listing, error)
}
