package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-notes-be/internal/config"
	"ai-notes-be/internal/dto"
	"ai-notes-be/internal/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testJWTConfig = config.JWTConfig{
	Secret: "test-secret",
	Expiry: 24 * time.Hour,
}

func newAuthServiceForTest() (IAuthService, *fakeFactory) {
	factory := newFakeFactory()
	return NewAuthService(factory, testJWTConfig), factory
}

func registerTestUser(t *testing.T, svc IAuthService, email string) *dto.AuthResponse {
	t.Helper()
	res, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Alice",
		Email:    email,
		Password: "secret123",
	})
	require.NoError(t, err)
	return res
}

func TestRegisterIssuesValidToken(t *testing.T) {
	svc, _ := newAuthServiceForTest()

	res := registerTestUser(t, svc, "alice@example.com")

	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "Alice", res.User.Name)
	assert.Equal(t, "alice@example.com", res.User.Email)

	token, err := jwt.Parse(res.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testJWTConfig.Secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, res.User.Id.String(), claims["user_id"])
	assert.Equal(t, "alice@example.com", claims["email"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp.Time, time.Minute)
}

func TestRegisterThenLogin(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	registered := registerTestUser(t, svc, "alice@example.com")

	res, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, registered.User.Id, res.User.Id)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	registerTestUser(t, svc, "alice@example.com")

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Other Alice",
		Email:    "alice@example.com",
		Password: "different1",
	})

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.KindConflict, appErr.Kind)
}

func TestRegisterUniqueIndexViolationIsConflict(t *testing.T) {
	svc, factory := newAuthServiceForTest()

	// A soft-deleted holder of the email, or a concurrent registration, is
	// invisible to the pre-check; the store's unique index rejects the insert.
	factory.store.userCreateErr = gorm.ErrDuplicatedKey

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.KindConflict, appErr.Kind)
	assert.Equal(t, "User already exists", appErr.Message)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	registerTestUser(t, svc, "alice@example.com")

	cases := []struct {
		name string
		req  dto.LoginRequest
	}{
		{"wrong password", dto.LoginRequest{Email: "alice@example.com", Password: "wrongpass"}},
		{"unknown email", dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &tc.req)

			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperror.KindUnauthorized, appErr.Kind)
			assert.Equal(t, "Invalid credentials", appErr.Message)
		})
	}
}

func TestLoginDeactivatedAccount(t *testing.T) {
	svc, factory := newAuthServiceForTest()
	registerTestUser(t, svc, "alice@example.com")
	factory.store.users[0].IsActive = false

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.KindForbidden, appErr.Kind)
}

func TestGetProfile(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	registered := registerTestUser(t, svc, "alice@example.com")

	profile, err := svc.GetProfile(context.Background(), registered.User.Id)
	require.NoError(t, err)
	assert.Equal(t, registered.User.Id, profile.Id)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.True(t, profile.IsActive)
}

func TestVerifyUserStates(t *testing.T) {
	svc, factory := newAuthServiceForTest()
	registered := registerTestUser(t, svc, "alice@example.com")

	t.Run("active user verifies", func(t *testing.T) {
		profile, err := svc.VerifyUser(context.Background(), registered.User.Id)
		require.NoError(t, err)
		assert.Equal(t, registered.User.Id, profile.Id)
	})

	t.Run("deactivated user is forbidden", func(t *testing.T) {
		factory.store.users[0].IsActive = false
		defer func() { factory.store.users[0].IsActive = true }()

		_, err := svc.VerifyUser(context.Background(), registered.User.Id)

		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.KindForbidden, appErr.Kind)
	})

	t.Run("deleted user reads as missing", func(t *testing.T) {
		factory.store.users[0].IsDeleted = true
		defer func() { factory.store.users[0].IsDeleted = false }()

		_, err := svc.VerifyUser(context.Background(), registered.User.Id)

		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.KindNotFound, appErr.Kind)
	})
}

func TestPasswordIsStoredHashed(t *testing.T) {
	svc, factory := newAuthServiceForTest()
	registerTestUser(t, svc, "alice@example.com")

	stored := factory.store.users[0]
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NotContains(t, stored.PasswordHash, "secret123")
}
