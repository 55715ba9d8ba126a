package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petromart/internal/models/request_models"
	mem "petromart/pkg/memcache"
	"petromart/pkg/utils"
)

func newAccountService(f *fixture, resetTokens mem.ResetTokenStore) AccountServiceInterface {
	return NewAccountService(f.accountRepo,
		utils.NewTokenMaker("test-secret", time.Hour),
		resetTokens, nopMail{}, testLogger())
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	svc := newAccountService(f, mem.NewResetTokens())
	ctx := context.Background()

	auth, err := svc.Register(ctx, request_models.RegisterRequest{
		Email:    "new@example.com",
		Password: "correct-horse",
		FullName: "New Seller",
		Role:     "seller",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, auth.Token)
	assert.Equal(t, "seller", auth.Account.Role)

	_, err = svc.Register(ctx, request_models.RegisterRequest{
		Email:    "new@example.com",
		Password: "correct-horse",
		FullName: "Duplicate",
	})
	assert.ErrorIs(t, err, utils.ErrEmailTaken)

	logged, err := svc.Login(ctx, request_models.LoginRequest{Email: "new@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, logged.Token)

	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "new@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestResetPasswordConsumesToken(t *testing.T) {
	f := newFixture(t)
	store := mem.NewResetTokens()
	svc := newAccountService(f, store)
	ctx := context.Background()

	_, err := svc.Register(ctx, request_models.RegisterRequest{
		Email:    "reset@example.com",
		Password: "old-password-1",
		FullName: "Reset User",
	})
	require.NoError(t, err)

	store.Set("reset-token", "reset@example.com", time.Minute)
	require.NoError(t, svc.ResetPassword(ctx, "reset-token", "new-password-1"))

	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "reset@example.com", Password: "new-password-1"})
	require.NoError(t, err)

	// A token is single use.
	err = svc.ResetPassword(ctx, "reset-token", "another-password")
	assert.ErrorIs(t, err, utils.ErrInvalidResetToken)
}

func TestForgotPasswordDoesNotRevealAccounts(t *testing.T) {
	f := newFixture(t)
	svc := newAccountService(f, mem.NewResetTokens())

	assert.NoError(t, svc.ForgotPassword(context.Background(), "nobody@example.com"))
}
