package services

import (
	"context"
	"testing"
	"time"

	"social-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserFixture() (*UserService, *memUserStore, *TokenService) {
	store := &memUserStore{}
	tokens := NewTokenService("test-secret", 5*time.Minute, time.Hour, newFakeClock())
	svc := NewUserService(store, tokens)
	svc.hashCost = bcrypt.MinCost
	return svc, store, tokens
}

func TestSignup(t *testing.T) {
	svc, store, _ := newUserFixture()
	ctx := context.Background()

	user, created, err := svc.Signup(ctx, &models.SignupRequest{Email: "a@example.com", Password: "pw1"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, user.ID)
	assert.Nil(t, user.Name)

	again, created, err := svc.Signup(ctx, &models.SignupRequest{Email: "a@example.com", Password: "pw2"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, user.ID, again.ID)
	require.Len(t, store.users, 1)

	// The first password still works.
	_, err = svc.Login(ctx, &models.LoginRequest{Email: "a@example.com", Password: "pw1"})
	assert.NoError(t, err)

	// A known email is answered without hashing the submitted password.
	svc.hashCost = bcrypt.MaxCost + 1
	again, created, err = svc.Signup(ctx, &models.SignupRequest{Email: "a@example.com", Password: "pw3"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, user.ID, again.ID)

	_, _, err = svc.Signup(ctx, &models.SignupRequest{Email: "b@example.com", Password: "pw"})
	assert.Error(t, err, "new emails are hashed with the configured cost")
	svc.hashCost = bcrypt.MinCost

	_, _, err = svc.Signup(ctx, &models.SignupRequest{Email: " ", Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestLogin(t *testing.T) {
	svc, _, tokens := newUserFixture()
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, &models.SignupRequest{Email: "a@example.com", Password: "secret"})
	require.NoError(t, err)

	pair, err := svc.Login(ctx, &models.LoginRequest{Email: "a@example.com", Password: "secret"})
	require.NoError(t, err)
	claims, err := tokens.Parse(pair.Access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", claims.Email)

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "a@example.com", Password: "nope"})
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "ghost@example.com", Password: "secret"})
	assert.ErrorIs(t, err, ErrUserNotRegistered)
}

func TestRefresh(t *testing.T) {
	svc, _, _ := newUserFixture()
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, &models.SignupRequest{Email: "a@example.com", Password: "secret"})
	require.NoError(t, err)
	pair, err := svc.Login(ctx, &models.LoginRequest{Email: "a@example.com", Password: "secret"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, pair.Refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Access)

	_, err = svc.Refresh(ctx, pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestProfileAndUpdateName(t *testing.T) {
	svc, _, _ := newUserFixture()
	ctx := context.Background()

	user, _, err := svc.Signup(ctx, &models.SignupRequest{Email: "a@example.com", Password: "secret"})
	require.NoError(t, err)

	updated, err := svc.UpdateName(ctx, user.ID, "  Alice  ")
	require.NoError(t, err)
	require.NotNil(t, updated.Name)
	assert.Equal(t, "Alice", *updated.Name)

	profile, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", *profile.Name)

	_, err = svc.UpdateName(ctx, user.ID, "   ")
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.UpdateName(ctx, 99, "Ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.GetProfile(ctx, 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSearchUsers(t *testing.T) {
	svc, _, _ := newUserFixture()
	ctx := context.Background()

	for _, email := range []string{"alice@example.com", "alina@example.com", "bob@example.com"} {
		_, _, err := svc.Signup(ctx, &models.SignupRequest{Email: email, Password: "pw"})
		require.NoError(t, err)
	}
	_, err := svc.UpdateName(ctx, 1, "Alice")
	require.NoError(t, err)
	_, err = svc.UpdateName(ctx, 2, "Alina")
	require.NoError(t, err)

	byEmail, err := svc.SearchUsers(ctx, "BOB@example.com", "", models.PageQuery{})
	require.NoError(t, err)
	require.Len(t, byEmail.Results, 1)
	assert.Equal(t, "bob@example.com", byEmail.Results[0].Email)

	byName, err := svc.SearchUsers(ctx, "", "ali", models.PageQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, byName.Count)

	none, err := svc.SearchUsers(ctx, "", "zed", models.PageQuery{})
	require.NoError(t, err)
	assert.NotNil(t, none.Results)
	assert.Empty(t, none.Results)

	_, err = svc.SearchUsers(ctx, "", "  ", models.PageQuery{})
	assert.ErrorIs(t, err, ErrInvalidSearch)
}
