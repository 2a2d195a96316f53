package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the database model for User
type UserModel struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username            string     `gorm:"type:varchar(100);not null"`
	Email               string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHashed      string     `gorm:"type:varchar(255);not null"`
	ResetToken          *string    `gorm:"type:varchar(64);index"`
	ResetTokenExpiresAt *time.Time `gorm:"type:timestamptz"`
	CreatedAt           time.Time  `gorm:"not null"`
	UpdatedAt           time.Time  `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}
