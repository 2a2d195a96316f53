package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionModel represents the database model for Submission
type SubmissionModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title          string     `gorm:"type:varchar(255);not null"`
	Status         string     `gorm:"type:varchar(20);not null;default:'Draft';index"`
	FilePath       string     `gorm:"type:text;not null"`
	OriginalName   string     `gorm:"type:varchar(255);not null"`
	ContentType    string     `gorm:"type:varchar(127);not null"`
	SubmissionDate time.Time  `gorm:"not null"`
	SubmittedAt    *time.Time `gorm:"type:timestamptz"`

	// Relations
	User *UserModel `gorm:"foreignKey:UserID"`
}

func (SubmissionModel) TableName() string {
	return "submissions"
}
