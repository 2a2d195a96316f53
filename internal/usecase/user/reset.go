package user

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"submission-portal/internal/domain/user"
	"submission-portal/internal/logger"
	"submission-portal/pkg/errors"
	"submission-portal/pkg/utils"
)

// ForgotPassword issues a short-lived reset token for the account and
// emails the reset link. Issuing a new token overwrites any outstanding
// one, so at most one token is live per account.
func (s *Service) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	email := utils.SanitizeEmail(req.Email)
	if !utils.IsValidEmail(email) {
		return errors.NewAppError("INVALID_EMAIL", "invalid email address", errors.ErrInvalidInput)
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	token := utils.GenerateResetToken()
	expiresAt := time.Now().Add(s.appCfg.ResetTokenTTL)
	if err := s.repo.SetResetToken(ctx, u.ID, token, expiresAt); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.appCfg.BaseURL, token)
	if err := s.mailer.SendPasswordReset(u.Email, resetURL); err != nil {
		logger.Error("failed to send password reset email",
			zap.String("event", "reset_mail_failed"),
			zap.String("user_id", u.ID.String()),
			zap.Error(err),
		)
		return err
	}

	logger.Info("password reset issued",
		zap.String("event", "reset_issued"),
		zap.String("user_id", u.ID.String()),
		zap.Time("expires_at", expiresAt),
	)
	return nil
}

// VerifyResetToken reports whether the token is still usable without
// consuming it. Frontends call this before showing the new-password form.
func (s *Service) VerifyResetToken(ctx context.Context, token string) error {
	_, err := s.verifyToken(ctx, token)
	return err
}

// ResetPassword consumes the token and sets the new password. The token
// is cleared in the same save, so a second use fails as invalid.
func (s *Service) ResetPassword(ctx context.Context, token string, req *ResetPasswordRequest) error {
	u, err := s.verifyToken(ctx, token)
	if err != nil {
		return err
	}

	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return errors.NewAppError("WEAK_PASSWORD", err.Error(), errors.ErrWeakPassword)
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if err := s.repo.ResetPassword(ctx, u.ID, hash); err != nil {
		return err
	}

	logger.Info("password reset completed",
		zap.String("event", "reset_completed"),
		zap.String("user_id", u.ID.String()),
	)
	return nil
}

// verifyToken looks up the token holder and enforces the expiry window.
// Expired tokens are invalidated on the spot, not by a background job.
func (s *Service) verifyToken(ctx context.Context, token string) (*user.User, error) {
	if token == "" {
		return nil, user.ErrResetTokenInvalid
	}

	u, err := s.repo.GetByResetToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if u.ResetTokenExpiresAt == nil || time.Now().After(*u.ResetTokenExpiresAt) {
		if clearErr := s.repo.ClearResetToken(ctx, u.ID); clearErr != nil {
			logger.Warn("failed to clear expired reset token",
				zap.String("event", "reset_clear_failed"),
				zap.String("user_id", u.ID.String()),
				zap.Error(clearErr),
			)
		}
		return nil, user.ErrResetTokenExpired
	}

	return u, nil
}
