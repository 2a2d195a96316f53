package submission

import "errors"

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrNotOwner           = errors.New("submission belongs to another user")
	ErrNoSubmissions      = errors.New("no submissions found")

	ErrFileRequired = errors.New("file is required")
	ErrFileMissing  = errors.New("file not found in storage")

	ErrInvalidStatus           = errors.New("invalid submission status")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
