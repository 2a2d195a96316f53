package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"submission-portal/internal/domain/submission"
	"submission-portal/internal/infrastructure/database/postgres/models"
)

type SubmissionRepository struct {
	db *DB
}

func NewSubmissionRepository(db *DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, s *submission.Submission) error {
	s.ID = uuid.New()
	if s.SubmissionDate.IsZero() {
		s.SubmissionDate = time.Now()
	}
	if s.Status == "" {
		s.Status = submission.StatusDraft
	}

	dbModel := toSubmissionModel(s)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}

	return nil
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*submission.Submission, error) {
	var dbModel models.SubmissionModel
	err := r.db.DB.WithContext(ctx).Where("id = ?", id).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, submission.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	return toSubmissionEntity(&dbModel), nil
}

func (r *SubmissionRepository) GetDraftForOwner(ctx context.Context, id, ownerID uuid.UUID) (*submission.Submission, error) {
	var dbModel models.SubmissionModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ? AND user_id = ? AND status = ?", id, ownerID, string(submission.StatusDraft)).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, submission.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft submission: %w", err)
	}

	return toSubmissionEntity(&dbModel), nil
}

func (r *SubmissionRepository) Update(ctx context.Context, s *submission.Submission) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.SubmissionModel{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"title":           s.Title,
			"status":          string(s.Status),
			"file_path":       s.FilePath,
			"original_name":   s.OriginalName,
			"content_type":    s.ContentType,
			"submission_date": s.SubmissionDate,
			"submitted_at":    s.SubmittedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update submission: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return submission.ErrSubmissionNotFound
	}

	return nil
}

func (r *SubmissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.SubmissionModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete submission: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return submission.ErrSubmissionNotFound
	}

	return nil
}

func (r *SubmissionRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, status *submission.Status) ([]*submission.Submission, error) {
	db := r.db.DB.WithContext(ctx).
		Model(&models.SubmissionModel{}).
		Where("user_id = ?", ownerID)

	if status != nil {
		db = db.Where("status = ?", string(*status))
	}

	var dbModels []models.SubmissionModel
	if err := db.Order("submission_date DESC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	subs := make([]*submission.Submission, len(dbModels))
	for i := range dbModels {
		subs[i] = toSubmissionEntity(&dbModels[i])
	}
	return subs, nil
}

func (r *SubmissionRepository) ListSubmitted(ctx context.Context) ([]*submission.Listing, error) {
	var dbModels []models.SubmissionModel
	err := r.db.DB.WithContext(ctx).
		Preload("User").
		Where("status = ?", string(submission.StatusSubmitted)).
		Order("submitted_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list submitted submissions: %w", err)
	}

	listings := make([]*submission.Listing, len(dbModels))
	for i := range dbModels {
		listing := &submission.Listing{Submission: *toSubmissionEntity(&dbModels[i])}
		if dbModels[i].User != nil {
			listing.OwnerUsername = dbModels[i].User.Username
		}
		listings[i] = listing
	}
	return listings, nil
}

func toSubmissionModel(s *submission.Submission) *models.SubmissionModel {
	return &models.SubmissionModel{
		ID:             s.ID,
		UserID:         s.UserID,
		Title:          s.Title,
		Status:         string(s.Status),
		FilePath:       s.FilePath,
		OriginalName:   s.OriginalName,
		ContentType:    s.ContentType,
		SubmissionDate: s.SubmissionDate,
		SubmittedAt:    s.SubmittedAt,
	}
}

func toSubmissionEntity(m *models.SubmissionModel) *submission.Submission {
	return &submission.Submission{
		ID:             m.ID,
		UserID:         m.UserID,
		Title:          m.Title,
		Status:         submission.Status(m.Status),
		FilePath:       m.FilePath,
		OriginalName:   m.OriginalName,
		ContentType:    m.ContentType,
		SubmissionDate: m.SubmissionDate,
		SubmittedAt:    m.SubmittedAt,
	}
}
