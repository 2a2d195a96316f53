package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for user repository operations
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	GetByResetToken(ctx context.Context, token string) (*User, error)

	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error

	// SetResetToken overwrites any outstanding token, so at most one live
	// token exists per user.
	SetResetToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, userID uuid.UUID) error

	// ResetPassword updates the credential hash and clears both reset token
	// fields in a single save.
	ResetPassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}
