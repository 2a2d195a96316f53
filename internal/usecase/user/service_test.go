package user

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"submission-portal/internal/config"
	domain "submission-portal/internal/domain/user"
	"submission-portal/internal/logger"
	pkgerrors "submission-portal/pkg/errors"
	"submission-portal/pkg/utils"
)

func TestMain(m *testing.M) {
	if err := logger.Init("development"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeRepo struct {
	users map[uuid.UUID]*domain.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *fakeRepo) Create(ctx context.Context, u *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	u.ID = uuid.New()
	stored := *u
	r.users[u.ID] = &stored
	return nil
}

func (r *fakeRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeRepo) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeRepo) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrResetTokenInvalid
}

func (r *fakeRepo) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHashed = passwordHash
	return nil
}

func (r *fakeRepo) SetResetToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ResetToken = &token
	u.ResetTokenExpiresAt = &expiresAt
	return nil
}

func (r *fakeRepo) ClearResetToken(ctx context.Context, userID uuid.UUID) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ResetToken = nil
	u.ResetTokenExpiresAt = nil
	return nil
}

func (r *fakeRepo) ResetPassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHashed = passwordHash
	u.ResetToken = nil
	u.ResetTokenExpiresAt = nil
	return nil
}

type fakeMailer struct {
	sentTo  []string
	sentURL []string
	err     error
}

func (m *fakeMailer) SendPasswordReset(to, resetURL string) error {
	if m.err != nil {
		return m.err
	}
	m.sentTo = append(m.sentTo, to)
	m.sentURL = append(m.sentURL, resetURL)
	return nil
}

func newTestService(repo *fakeRepo, mailer *fakeMailer) *Service {
	return NewService(repo, mailer,
		config.JWTConfig{Secret: "test-secret", ExpiryHours: 1, RefreshExpiryHours: 24},
		config.AppConfig{BaseURL: "http://localhost:3000", ResetTokenTTL: 2 * time.Minute},
	)
}

func registerTestUser(t *testing.T, svc *Service) *UserResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Sup3rSecret",
	})
	require.NoError(t, err)
	return resp
}

func TestRegister(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeMailer{})

	resp := registerTestUser(t, svc)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.NotEmpty(t, resp.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeMailer{})
	registerTestUser(t, svc)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "Sup3rSecret",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterWeakPassword(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeMailer{})

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "alllowercase",
	})
	assert.ErrorIs(t, err, pkgerrors.ErrWeakPassword)
}

func TestLogin(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeMailer{})
	registerTestUser(t, svc)

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "alice@example.com",
		Password: "Sup3rSecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.NotEmpty(t, resp.Token.RefreshToken)

	claims, err := utils.ValidateToken(resp.Token.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeMailer{})
	registerTestUser(t, svc)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "alice@example.com",
		Password: "WrongPass1",
	})
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeMailer{})

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "Whatever1",
	})
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeMailer{})
	resp := registerTestUser(t, svc)
	userID := uuid.MustParse(resp.ID)

	err := svc.ChangePassword(context.Background(), userID, &ChangePasswordRequest{
		Email:    "alice@example.com",
		Password: "N3wPassword",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "alice@example.com",
		Password: "N3wPassword",
	})
	assert.NoError(t, err)
}

func TestChangePasswordEmailMismatch(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeMailer{})
	resp := registerTestUser(t, svc)

	err := svc.ChangePassword(context.Background(), uuid.MustParse(resp.ID), &ChangePasswordRequest{
		Email:    "someone-else@example.com",
		Password: "N3wPassword",
	})
	assert.ErrorIs(t, err, pkgerrors.ErrUnauthorized)
}

func TestRefreshToken(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeMailer{})
	registerTestUser(t, svc)

	login, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "alice@example.com",
		Password: "Sup3rSecret",
	})
	require.NoError(t, err)

	pair, err := svc.RefreshToken(context.Background(), login.Token.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
}

func TestRefreshTokenInvalid(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeMailer{})

	_, err := svc.RefreshToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidToken)
}
