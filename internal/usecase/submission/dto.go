package submission

import (
	"io"
	"time"
)

// UploadedFile carries the multipart upload from the handler into the
// service. A nil *UploadedFile means no file was attached.
type UploadedFile struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

type CreateRequest struct {
	Title  string `form:"title" binding:"required,min=1,max=200"`
	Status string `form:"status" binding:"omitempty,submission_status"`
}

type UpdateRequest struct {
	Title  string `form:"title" binding:"omitempty,min=1,max=200"`
	Status string `form:"status" binding:"omitempty,submission_status"`
}

type SubmissionResponse struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Status         string     `json:"status"`
	OriginalName   string     `json:"original_name"`
	ContentType    string     `json:"content_type"`
	SubmissionDate time.Time  `json:"submission_date"`
	SubmittedAt    *time.Time `json:"submitted_at,omitempty"`
}

type ListingResponse struct {
	SubmissionResponse
	Username string `json:"username"`
}

// DownloadResult streams the stored file back to the handler. The caller
// owns closing Reader.
type DownloadResult struct {
	Reader       io.ReadCloser
	Size         int64
	OriginalName string
	ContentType  string
	Inline       bool
}
