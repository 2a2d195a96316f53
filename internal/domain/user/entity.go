package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account entity in the domain. ResetToken and
// ResetTokenExpiresAt are either both set or both nil.
type User struct {
	ID                  uuid.UUID
	Username            string
	Email               string
	PasswordHashed      string
	ResetToken          *string
	ResetTokenExpiresAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
