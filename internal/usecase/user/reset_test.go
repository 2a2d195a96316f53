package user

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "submission-portal/internal/domain/user"
	pkgerrors "submission-portal/pkg/errors"
)

func issuedToken(t *testing.T, repo *fakeRepo, resp *UserResponse) string {
	t.Helper()
	u, ok := repo.users[uuid.MustParse(resp.ID)]
	require.True(t, ok)
	require.NotNil(t, u.ResetToken)
	return *u.ResetToken
}

func TestForgotPasswordIssuesToken(t *testing.T) {
	repo := newFakeRepo()
	mailer := &fakeMailer{}
	svc := newTestService(repo, mailer)
	resp := registerTestUser(t, svc)

	err := svc.ForgotPassword(context.Background(), &ForgotPasswordRequest{Email: "alice@example.com"})
	require.NoError(t, err)

	token := issuedToken(t, repo, resp)
	assert.Len(t, token, 64)

	require.Len(t, mailer.sentTo, 1)
	assert.Equal(t, "alice@example.com", mailer.sentTo[0])
	assert.True(t, strings.HasSuffix(mailer.sentURL[0], token))

	u := repo.users[uuid.MustParse(resp.ID)]
	require.NotNil(t, u.ResetTokenExpiresAt)
	assert.WithinDuration(t, time.Now().Add(2*time.Minute), *u.ResetTokenExpiresAt, 5*time.Second)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newTestService(newFakeRepo(), mailer)

	err := svc.ForgotPassword(context.Background(), &ForgotPasswordRequest{Email: "nobody@example.com"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Empty(t, mailer.sentTo)
}

func TestForgotPasswordMailFailure(t *testing.T) {
	repo := newFakeRepo()
	mailer := &fakeMailer{err: pkgerrors.ErrMailDelivery}
	svc := newTestService(repo, mailer)
	resp := registerTestUser(t, svc)

	err := svc.ForgotPassword(context.Background(), &ForgotPasswordRequest{Email: "alice@example.com"})
	assert.ErrorIs(t, err, pkgerrors.ErrMailDelivery)

	// The token survives the failed send; it is not rolled back.
	token := issuedToken(t, repo, resp)
	assert.NoError(t, svc.VerifyResetToken(context.Background(), token))
}

func TestForgotPasswordInvalidEmail(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newTestService(newFakeRepo(), mailer)

	err := svc.ForgotPassword(context.Background(), &ForgotPasswordRequest{Email: "not-an-email"})
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidInput)
	assert.Empty(t, mailer.sentTo)
}

func TestForgotPasswordOverwritesOutstandingToken(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeMailer{})
	resp := registerTestUser(t, svc)

	require.NoError(t, svc.ForgotPassword(context.Background(), &ForgotPasswordRequest{Email: "alice@example.com"}))
	first := issuedToken(t, repo, resp)

	require.NoError(t, svc.ForgotPassword(context.Background(), &ForgotPasswordRequest{Email: "alice@example.com"}))
	second := issuedToken(t, repo, resp)

	assert.NotEqual(t, first, second)
	assert.ErrorIs(t, svc.VerifyResetToken(context.Background(), first), domain.ErrResetTokenInvalid)
	assert.NoError(t, svc.VerifyResetToken(context.Background(), second))
}

func TestVerifyResetTokenUnknown(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeMailer{})

	err := svc.VerifyResetToken(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, domain.ErrResetTokenInvalid)
}

func TestVerifyResetTokenExpired(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeMailer{})
	resp := registerTestUser(t, svc)

	require.NoError(t, svc.ForgotPassword(context.Background(), &ForgotPasswordRequest{Email: "alice@example.com"}))
	token := issuedToken(t, repo, resp)

	// Backdate the expiry so the window has already closed.
	past := time.Now().Add(-time.Second)
	repo.users[uuid.MustParse(resp.ID)].ResetTokenExpiresAt = &past

	err := svc.VerifyResetToken(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrResetTokenExpired)

	// The expired token was invalidated, so retrying now reports invalid.
	err = svc.VerifyResetToken(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrResetTokenInvalid)
}

func TestResetPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeMailer{})
	resp := registerTestUser(t, svc)

	require.NoError(t, svc.ForgotPassword(context.Background(), &ForgotPasswordRequest{Email: "alice@example.com"}))
	token := issuedToken(t, repo, resp)

	err := svc.ResetPassword(context.Background(), token, &ResetPasswordRequest{NewPassword: "Fr3shStart"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "alice@example.com",
		Password: "Fr3shStart",
	})
	assert.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "alice@example.com",
		Password: "Sup3rSecret",
	})
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidCredentials)
}

func TestResetPasswordSingleUse(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeMailer{})
	resp := registerTestUser(t, svc)

	require.NoError(t, svc.ForgotPassword(context.Background(), &ForgotPasswordRequest{Email: "alice@example.com"}))
	token := issuedToken(t, repo, resp)

	require.NoError(t, svc.ResetPassword(context.Background(), token, &ResetPasswordRequest{NewPassword: "Fr3shStart"}))

	err := svc.ResetPassword(context.Background(), token, &ResetPasswordRequest{NewPassword: "An0therOne"})
	assert.ErrorIs(t, err, domain.ErrResetTokenInvalid)
}

func TestResetPasswordWeakPasswordKeepsToken(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeMailer{})
	resp := registerTestUser(t, svc)

	require.NoError(t, svc.ForgotPassword(context.Background(), &ForgotPasswordRequest{Email: "alice@example.com"}))
	token := issuedToken(t, repo, resp)

	err := svc.ResetPassword(context.Background(), token, &ResetPasswordRequest{NewPassword: "weak"})
	assert.ErrorIs(t, err, pkgerrors.ErrWeakPassword)

	// Token stays live after a rejected password.
	assert.NoError(t, svc.VerifyResetToken(context.Background(), token))
}
