// Package user implements account registration, authentication and the
// password reset flow on top of the user repository.
package user

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"submission-portal/internal/config"
	"submission-portal/internal/domain/user"
	"submission-portal/internal/logger"
	"submission-portal/pkg/errors"
	"submission-portal/pkg/utils"
)

// ResetMailer delivers the password reset link.
type ResetMailer interface {
	SendPasswordReset(to, resetURL string) error
}

type Service struct {
	repo   user.Repository
	mailer ResetMailer
	jwtCfg config.JWTConfig
	appCfg config.AppConfig
}

func NewService(repo user.Repository, mailer ResetMailer, jwtCfg config.JWTConfig, appCfg config.AppConfig) *Service {
	return &Service{
		repo:   repo,
		mailer: mailer,
		jwtCfg: jwtCfg,
		appCfg: appCfg,
	}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*UserResponse, error) {
	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, errors.NewAppError("WEAK_PASSWORD", err.Error(), errors.ErrWeakPassword)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		Username:       utils.SanitizeString(req.Username),
		Email:          utils.SanitizeEmail(req.Email),
		PasswordHashed: hash,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("user registered",
		zap.String("event", "user_registered"),
		zap.String("user_id", u.ID.String()),
	)

	return toUserResponse(u), nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	u, err := s.repo.GetByEmail(ctx, utils.SanitizeEmail(req.Email))
	if err != nil {
		if stderrors.Is(err, user.ErrUserNotFound) {
			return nil, errors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(u.PasswordHashed, req.Password) {
		return nil, errors.ErrInvalidCredentials
	}

	tokens, err := utils.GenerateTokenPair(u.ID, u.Email, s.jwtCfg.Secret,
		s.jwtCfg.ExpiryHours, s.jwtCfg.RefreshExpiryHours)
	if err != nil {
		return nil, err
	}

	logger.Info("user logged in",
		zap.String("event", "user_login"),
		zap.String("user_id", u.ID.String()),
	)

	return &AuthResponse{User: *toUserResponse(u), Token: tokens}, nil
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

// ChangePassword updates the credential of the authenticated user. The
// email in the request must match the caller's account.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, req *ChangePasswordRequest) error {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !strings.EqualFold(u.Email, utils.SanitizeEmail(req.Email)) {
		return errors.ErrUnauthorized
	}

	if err := utils.ValidatePassword(req.Password); err != nil {
		return errors.NewAppError("WEAK_PASSWORD", err.Error(), errors.ErrWeakPassword)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, u.ID, hash); err != nil {
		return err
	}

	logger.Info("password changed",
		zap.String("event", "password_changed"),
		zap.String("user_id", u.ID.String()),
	)
	return nil
}

// RefreshToken exchanges a valid refresh token for a new token pair.
// Refresh tokens are stateless, so no server-side state is touched.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	claims, err := utils.ValidateToken(refreshToken, s.jwtCfg.Secret)
	if err != nil {
		return nil, errors.ErrInvalidToken
	}

	u, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.ErrInvalidToken
	}

	return utils.GenerateTokenPair(u.ID, u.Email, s.jwtCfg.Secret,
		s.jwtCfg.ExpiryHours, s.jwtCfg.RefreshExpiryHours)
}

func toUserResponse(u *user.User) *UserResponse {
	return &UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
	}
}
