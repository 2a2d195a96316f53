package submission

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle status of a submission
type Status string

const (
	StatusDraft     Status = "Draft"     // Editable, not yet visible to reviewers
	StatusSubmitted Status = "Submitted" // Visible on the public listing
	StatusArchived  Status = "Archived"  // Soft-deleted; hard delete on next delete
)

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusDraft, StatusSubmitted, StatusArchived:
		return Status(raw), true
	}
	return "", false
}

// Submission represents a user-submitted file entity in the domain.
// The file reference (FilePath, OriginalName, ContentType) is non-null
// at all times after creation.
type Submission struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Title  string
	Status Status

	FilePath     string
	OriginalName string
	ContentType  string

	SubmissionDate time.Time
	SubmittedAt    *time.Time
}

// Listing is a read-only projection of a submitted record joined with
// its owner's username.
type Listing struct {
	Submission
	OwnerUsername string
}
