// Package submission implements the file submission lifecycle: draft
// creation, updates, resubmission, archival, deletion and downloads.
package submission

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"submission-portal/internal/domain/submission"
	"submission-portal/internal/logger"
	"submission-portal/pkg/errors"
	"submission-portal/pkg/filestore"
	"submission-portal/pkg/utils"
)

type Service struct {
	repo  submission.Repository
	store filestore.Store
}

func NewService(repo submission.Repository, store filestore.Store) *Service {
	return &Service{repo: repo, store: store}
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req *CreateRequest, file *UploadedFile) (*SubmissionResponse, error) {
	if file == nil {
		return nil, submission.ErrFileRequired
	}

	status := submission.StatusDraft
	if req.Status != "" {
		parsed, ok := submission.ParseStatus(req.Status)
		if !ok {
			return nil, errors.NewAppError("INVALID_STATUS", "unknown submission status: "+req.Status, submission.ErrInvalidStatus)
		}
		status = parsed
	}

	stored, err := s.store.Save(ctx, file.Reader, file.Size, file.Filename, file.ContentType)
	if err != nil {
		return nil, err
	}

	sub := &submission.Submission{
		UserID:         ownerID,
		Title:          utils.SanitizeString(req.Title),
		Status:         status,
		FilePath:       stored.Path,
		OriginalName:   stored.OriginalName,
		ContentType:    stored.ContentType,
		SubmissionDate: time.Now(),
	}
	if status == submission.StatusSubmitted {
		now := time.Now()
		sub.SubmittedAt = &now
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		s.releaseFile(ctx, stored.Path)
		return nil, err
	}

	logger.Info("submission created",
		zap.String("event", "submission_created"),
		zap.String("submission_id", sub.ID.String()),
		zap.String("user_id", ownerID.String()),
		zap.String("status", string(sub.Status)),
	)

	return toSubmissionResponse(sub), nil
}

func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, req *UpdateRequest, file *UploadedFile) (*SubmissionResponse, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.UserID != ownerID {
		return nil, submission.ErrNotOwner
	}

	if req.Status != "" {
		parsed, ok := submission.ParseStatus(req.Status)
		if !ok {
			return nil, errors.NewAppError("INVALID_STATUS", "unknown submission status: "+req.Status, submission.ErrInvalidStatus)
		}
		if err := ValidateStatusTransition(sub.Status, parsed); err != nil {
			return nil, err
		}
		if parsed == submission.StatusSubmitted && sub.Status != submission.StatusSubmitted {
			now := time.Now()
			sub.SubmittedAt = &now
		}
		sub.Status = parsed
	}

	if req.Title != "" {
		sub.Title = utils.SanitizeString(req.Title)
	}

	if file != nil {
		stored, err := s.store.Save(ctx, file.Reader, file.Size, file.Filename, file.ContentType)
		if err != nil {
			return nil, err
		}
		oldPath := sub.FilePath
		sub.FilePath = stored.Path
		sub.OriginalName = stored.OriginalName
		sub.ContentType = stored.ContentType
		s.releaseFile(ctx, oldPath)
	}

	sub.SubmissionDate = time.Now()

	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, err
	}

	logger.Info("submission updated",
		zap.String("event", "submission_updated"),
		zap.String("submission_id", sub.ID.String()),
		zap.String("status", string(sub.Status)),
	)

	return toSubmissionResponse(sub), nil
}

// Resubmit promotes a caller-owned draft to Submitted. The lookup matches
// id, owner and Draft status in one query, so a wrong owner and a missing
// record are indistinguishable to the caller.
func (s *Service) Resubmit(ctx context.Context, ownerID, id uuid.UUID) (*SubmissionResponse, error) {
	sub, err := s.repo.GetDraftForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sub.Status = submission.StatusSubmitted
	sub.SubmittedAt = &now

	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, err
	}

	logger.Info("submission resubmitted",
		zap.String("event", "submission_resubmitted"),
		zap.String("submission_id", sub.ID.String()),
	)

	return toSubmissionResponse(sub), nil
}

// Delete archives a live submission, and permanently removes an already
// archived one together with its stored file.
func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) (archived bool, err error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if sub.UserID != ownerID {
		return false, submission.ErrNotOwner
	}

	if sub.Status != submission.StatusArchived {
		sub.Status = submission.StatusArchived
		if err := s.repo.Update(ctx, sub); err != nil {
			return false, err
		}
		logger.Info("submission archived",
			zap.String("event", "submission_archived"),
			zap.String("submission_id", sub.ID.String()),
		)
		return true, nil
	}

	if err := s.repo.Delete(ctx, sub.ID); err != nil {
		return false, err
	}
	s.releaseFile(ctx, sub.FilePath)

	logger.Info("submission deleted",
		zap.String("event", "submission_deleted"),
		zap.String("submission_id", sub.ID.String()),
	)
	return false, nil
}

// List returns the caller's submissions, newest first. An empty or "All"
// filter returns every status.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID, statusFilter string) ([]*SubmissionResponse, error) {
	var status *submission.Status
	if statusFilter != "" && !strings.EqualFold(statusFilter, "All") {
		parsed, ok := submission.ParseStatus(statusFilter)
		if !ok {
			return nil, errors.NewAppError("INVALID_STATUS", "unknown submission status: "+statusFilter, submission.ErrInvalidStatus)
		}
		status = &parsed
	}

	subs, err := s.repo.ListByOwner(ctx, ownerID, status)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, submission.ErrNoSubmissions
	}

	responses := make([]*SubmissionResponse, len(subs))
	for i, sub := range subs {
		responses[i] = toSubmissionResponse(sub)
	}
	return responses, nil
}

// ListAll returns every submitted record joined with the owner's username.
func (s *Service) ListAll(ctx context.Context) ([]*ListingResponse, error) {
	listings, err := s.repo.ListSubmitted(ctx)
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return nil, submission.ErrNoSubmissions
	}

	responses := make([]*ListingResponse, len(listings))
	for i, listing := range listings {
		responses[i] = &ListingResponse{
			SubmissionResponse: *toSubmissionResponse(&listing.Submission),
			Username:           listing.OwnerUsername,
		}
	}
	return responses, nil
}

// Download opens the stored file for streaming. Images render inline,
// everything else downloads as an attachment.
func (s *Service) Download(ctx context.Context, id uuid.UUID) (*DownloadResult, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rc, size, err := s.store.Open(ctx, sub.FilePath)
	if err != nil {
		if stderrors.Is(err, filestore.ErrFileNotFound) {
			logger.Warn("submission file missing from storage",
				zap.String("event", "submission_file_missing"),
				zap.String("submission_id", sub.ID.String()),
				zap.String("path", sub.FilePath),
			)
			return nil, submission.ErrFileMissing
		}
		return nil, err
	}

	return &DownloadResult{
		Reader:       rc,
		Size:         size,
		OriginalName: sub.OriginalName,
		ContentType:  sub.ContentType,
		Inline:       strings.HasPrefix(sub.ContentType, "image/"),
	}, nil
}

// releaseFile removes a stored file without failing the surrounding
// operation; the record is the source of truth, storage cleanup is
// best effort. Files already gone from storage are skipped silently.
func (s *Service) releaseFile(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if exists, err := s.store.Exists(ctx, path); err == nil && !exists {
		return
	}
	if err := s.store.Remove(ctx, path); err != nil {
		logger.Warn("failed to release stored file",
			zap.String("event", "file_release_failed"),
			zap.String("path", path),
			zap.Error(err),
		)
	}
}

func toSubmissionResponse(sub *submission.Submission) *SubmissionResponse {
	return &SubmissionResponse{
		ID:             sub.ID.String(),
		Title:          sub.Title,
		Status:         string(sub.Status),
		OriginalName:   sub.OriginalName,
		ContentType:    sub.ContentType,
		SubmissionDate: sub.SubmissionDate,
		SubmittedAt:    sub.SubmittedAt,
	}
}
