package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kerramientas-backend/internal/domain"
	"kerramientas-backend/internal/repository/memory"
	"kerramientas-backend/internal/security"
	"kerramientas-backend/internal/service"
)

func newAuthService(t *testing.T) (service.AuthService, security.TokenManager, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	tokens := security.NewTokenManager("auth-test-secret-with-enough-entropy!", time.Hour, 24*time.Hour)
	return service.NewAuthService(store.Users(), tokens), tokens, store
}

func TestSignup(t *testing.T) {
	svc, tokens, _ := newAuthService(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		user, access, refresh, err := svc.Signup(ctx, "maria", "Maria Flores", "maria@example.com", "hunter2hunter2")
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)

		claims, err := tokens.ValidateToken(access)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, security.TokenTypeAccess, claims.Type)

		claims, err = tokens.ValidateToken(refresh)
		require.NoError(t, err)
		assert.Equal(t, security.TokenTypeRefresh, claims.Type)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, _, _, err := svc.Signup(ctx, "maria2", "Maria F", "maria@example.com", "hunter2hunter2")
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("ShortPassword", func(t *testing.T) {
		_, _, _, err := svc.Signup(ctx, "pepe", "Pepe", "pepe@example.com", "short")
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("BadEmail", func(t *testing.T) {
		_, _, _, err := svc.Signup(ctx, "pepe", "Pepe", "not-an-email", "hunter2hunter2")
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("MissingUsername", func(t *testing.T) {
		_, _, _, err := svc.Signup(ctx, "  ", "Pepe", "pepe@example.com", "hunter2hunter2")
		assert.True(t, domain.IsValidation(err))
	})
}

func TestLogin(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()
	_, _, _, err := svc.Signup(ctx, "maria", "Maria Flores", "maria@example.com", "hunter2hunter2")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		access, refresh, err := svc.Login(ctx, "maria@example.com", "hunter2hunter2")
		require.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "maria@example.com", "wrong-password")
		assert.True(t, domain.IsUnauthorized(err))
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@example.com", "hunter2hunter2")
		assert.True(t, domain.IsUnauthorized(err))
	})
}

func TestRefresh(t *testing.T) {
	svc, tokens, _ := newAuthService(t)
	ctx := context.Background()
	user, access, refresh, err := svc.Signup(ctx, "maria", "Maria Flores", "maria@example.com", "hunter2hunter2")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		newAccess, err := svc.Refresh(ctx, refresh)
		require.NoError(t, err)

		claims, err := tokens.ValidateToken(newAccess)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, security.TokenTypeAccess, claims.Type)
	})

	t.Run("AccessTokenRejected", func(t *testing.T) {
		_, err := svc.Refresh(ctx, access)
		assert.True(t, domain.IsUnauthorized(err))
	})

	t.Run("GarbageRejected", func(t *testing.T) {
		_, err := svc.Refresh(ctx, "nope")
		assert.True(t, domain.IsUnauthorized(err))
	})
}
