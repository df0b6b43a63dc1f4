package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/satsworks/bounties/internal/apperr"
	"github.com/satsworks/bounties/internal/domain"
	"github.com/satsworks/bounties/internal/repository/redis"
	"github.com/satsworks/bounties/internal/security"
)

// AuthService handles challenge-signature authentication. A user row is
// created on first verified login.
type AuthService struct {
	userRepo   UserRepository
	challenges ChallengeStore
	jwtManager *security.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, challenges ChallengeStore, jwtManager *security.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		challenges: challenges,
		jwtManager: jwtManager,
	}
}

// Challenge issues a fresh single-use login challenge
func (s *AuthService) Challenge(ctx context.Context) (*domain.AuthChallenge, error) {
	challenge, err := security.NewChallenge()
	if err != nil {
		return nil, fmt.Errorf("failed to generate challenge: %w", err)
	}

	if err := s.challenges.Put(ctx, challenge); err != nil {
		return nil, fmt.Errorf("failed to store challenge: %w", err)
	}

	return &domain.AuthChallenge{
		Challenge: challenge,
		ExpiresAt: time.Now().Add(s.challenges.TTL()),
	}, nil
}

// Verify consumes a challenge, checks the signature against the claimed
// pubkey and issues a token pair. The first verified login creates the user.
func (s *AuthService) Verify(ctx context.Context, input domain.AuthVerify) (*domain.TokenPair, error) {
	if err := s.challenges.Consume(ctx, input.Challenge); err != nil {
		if errors.Is(err, redis.ErrChallengeNotFound) {
			return nil, apperr.BadRequest("unknown or expired challenge")
		}
		return nil, fmt.Errorf("failed to consume challenge: %w", err)
	}

	if err := security.VerifySignature(input.Pubkey, input.Challenge, input.Signature); err != nil {
		return nil, apperr.Unauthorized("invalid signature")
	}

	user, err := s.userRepo.GetByPubkey(ctx, input.Pubkey)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		now := time.Now()
		user = &domain.User{
			Pubkey:    input.Pubkey,
			Username:  defaultUsername(input.Pubkey),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	}

	access, refresh, expiresIn, err := s.jwtManager.GenerateTokenPair(user.Pubkey, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expiresIn,
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	pubkey, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("invalid or expired refresh token")
	}

	user, err := s.userRepo.GetByPubkey(ctx, pubkey)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, apperr.Unauthorized("account no longer exists")
	}

	access, refresh, expiresIn, err := s.jwtManager.GenerateTokenPair(user.Pubkey, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expiresIn,
	}, nil
}

// defaultUsername derives a stable placeholder username from the pubkey;
// users rename through the profile endpoint.
func defaultUsername(pubkey string) string {
	if len(pubkey) > 16 {
		return "user_" + pubkey[:16]
	}
	return "user_" + pubkey
}
