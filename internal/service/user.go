package service

import (
	"context"
	"fmt"

	"github.com/satsworks/bounties/internal/apperr"
	"github.com/satsworks/bounties/internal/domain"
)

// UserService handles profile operations
type UserService struct {
	userRepo      UserRepository
	workspaceRepo WorkspaceRepository
	bountyRepo    BountyRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository, workspaceRepo WorkspaceRepository, bountyRepo BountyRepository) *UserService {
	return &UserService{
		userRepo:      userRepo,
		workspaceRepo: workspaceRepo,
		bountyRepo:    bountyRepo,
	}
}

// Get retrieves a user profile by pubkey
func (s *UserService) Get(ctx context.Context, pubkey string) (*domain.User, error) {
	user, err := s.userRepo.GetByPubkey(ctx, pubkey)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user")
	}
	return user, nil
}

// Update applies a profile update for the caller
func (s *UserService) Update(ctx context.Context, pubkey string, input domain.UserUpdate) (*domain.User, error) {
	if input.Username != nil {
		taken, err := s.userRepo.UsernameExists(ctx, *input.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		if taken {
			current, err := s.userRepo.GetByPubkey(ctx, pubkey)
			if err != nil {
				return nil, fmt.Errorf("failed to get user: %w", err)
			}
			if current == nil || current.Username != *input.Username {
				return nil, apperr.Conflict("username already taken")
			}
		}
	}

	if err := s.userRepo.Update(ctx, pubkey, &input); err != nil {
		return nil, err
	}

	return s.Get(ctx, pubkey)
}

// Delete tombstones the caller's account. Deletion is blocked while the
// user owns live workspaces or holds assigned or in-review bounties.
func (s *UserService) Delete(ctx context.Context, pubkey string) error {
	owned, err := s.workspaceRepo.CountOwnedBy(ctx, pubkey)
	if err != nil {
		return fmt.Errorf("failed to count owned workspaces: %w", err)
	}
	if owned > 0 {
		return apperr.Conflict("transfer or delete owned workspaces before closing the account")
	}

	active, err := s.bountyRepo.CountActiveAssignments(ctx, pubkey)
	if err != nil {
		return fmt.Errorf("failed to count active assignments: %w", err)
	}
	if active > 0 {
		return apperr.Conflict("complete or release assigned bounties before closing the account")
	}

	return s.userRepo.SoftDelete(ctx, pubkey)
}
