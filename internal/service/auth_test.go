package service

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"testing"
	"time"

	"github.com/satsworks/bounties/internal/apperr"
	"github.com/satsworks/bounties/internal/domain"
	"github.com/satsworks/bounties/internal/repository/redis"
	"github.com/satsworks/bounties/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestJWTManager(t *testing.T) *security.JWTManager {
	t.Helper()
	m, err := security.NewJWTManager("test-secret-key-for-auth-service", 15*time.Minute, 168*time.Hour)
	require.NoError(t, err)
	return m
}

func TestAuthService_Challenge(t *testing.T) {
	userRepo := new(MockUserRepository)
	challenges := new(MockChallengeStore)
	svc := NewAuthService(userRepo, challenges, newTestJWTManager(t))

	ctx := context.Background()

	challenges.On("Put", ctx, mock.AnythingOfType("string")).Return(nil)
	challenges.On("TTL").Return(5 * time.Minute)

	challenge, err := svc.Challenge(ctx)
	assert.NoError(t, err)
	assert.Len(t, challenge.Challenge, 64)
	assert.True(t, challenge.ExpiresAt.After(time.Now()))
}

func TestAuthService_Verify(t *testing.T) {
	ctx := context.Background()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	pubkey := hex.EncodeToString(pub)

	challenge := "f00dbabe"
	signature := hex.EncodeToString(ed25519.Sign(priv, []byte(challenge)))

	t.Run("first login creates the user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		challenges := new(MockChallengeStore)
		svc := NewAuthService(userRepo, challenges, newTestJWTManager(t))

		challenges.On("Consume", ctx, challenge).Return(nil)
		userRepo.On("GetByPubkey", ctx, pubkey).Return(nil, nil)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		tokens, err := svc.Verify(ctx, domain.AuthVerify{
			Pubkey:    pubkey,
			Challenge: challenge,
			Signature: signature,
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		userRepo.AssertExpectations(t)
	})

	t.Run("bad signature is unauthorized", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		challenges := new(MockChallengeStore)
		svc := NewAuthService(userRepo, challenges, newTestJWTManager(t))

		challenges.On("Consume", ctx, challenge).Return(nil)

		badSig := hex.EncodeToString(make([]byte, ed25519.SignatureSize))
		_, err := svc.Verify(ctx, domain.AuthVerify{
			Pubkey:    pubkey,
			Challenge: challenge,
			Signature: badSig,
		})
		appErr, ok := apperr.As(err)
		assert.True(t, ok)
		assert.Equal(t, apperr.CodeUnauthorized, appErr.Code)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown challenge is rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		challenges := new(MockChallengeStore)
		svc := NewAuthService(userRepo, challenges, newTestJWTManager(t))

		challenges.On("Consume", ctx, "stale").Return(redis.ErrChallengeNotFound)

		_, err := svc.Verify(ctx, domain.AuthVerify{
			Pubkey:    pubkey,
			Challenge: "stale",
			Signature: signature,
		})
		appErr, ok := apperr.As(err)
		assert.True(t, ok)
		assert.Equal(t, apperr.CodeBadRequest, appErr.Code)
	})

	t.Run("challenge is single use", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		challenges := new(MockChallengeStore)
		svc := NewAuthService(userRepo, challenges, newTestJWTManager(t))

		challenges.On("Consume", ctx, challenge).Return(nil).Once()
		challenges.On("Consume", ctx, challenge).Return(redis.ErrChallengeNotFound)
		userRepo.On("GetByPubkey", ctx, pubkey).Return(&domain.User{Pubkey: pubkey, Username: "alice"}, nil)

		input := domain.AuthVerify{Pubkey: pubkey, Challenge: challenge, Signature: signature}

		_, err := svc.Verify(ctx, input)
		assert.NoError(t, err)

		_, err = svc.Verify(ctx, input)
		appErr, ok := apperr.As(err)
		assert.True(t, ok)
		assert.Equal(t, apperr.CodeBadRequest, appErr.Code)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	jwtManager := newTestJWTManager(t)

	t.Run("valid refresh token issues a new pair", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, new(MockChallengeStore), jwtManager)

		refresh, err := jwtManager.GenerateRefreshToken("abc123")
		require.NoError(t, err)

		userRepo.On("GetByPubkey", ctx, "abc123").
			Return(&domain.User{Pubkey: "abc123", Username: "alice"}, nil)

		tokens, err := svc.Refresh(ctx, refresh)
		assert.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
	})

	t.Run("deleted account cannot refresh", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, new(MockChallengeStore), jwtManager)

		refresh, err := jwtManager.GenerateRefreshToken("gone")
		require.NoError(t, err)

		userRepo.On("GetByPubkey", ctx, "gone").Return(nil, nil)

		_, err = svc.Refresh(ctx, refresh)
		appErr, ok := apperr.As(err)
		assert.True(t, ok)
		assert.Equal(t, apperr.CodeUnauthorized, appErr.Code)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), new(MockChallengeStore), jwtManager)

		_, err := svc.Refresh(ctx, "not-a-token")
		appErr, ok := apperr.As(err)
		assert.True(t, ok)
		assert.Equal(t, apperr.CodeUnauthorized, appErr.Code)
	})
}
