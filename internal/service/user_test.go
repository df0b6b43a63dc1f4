package service

import (
	"context"
	"testing"

	"github.com/satsworks/bounties/internal/apperr"
	"github.com/satsworks/bounties/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUserService_Update_UsernameConflict(t *testing.T) {
	ctx := context.Background()
	username := "satoshi"

	t.Run("taken by someone else", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo, new(MockWorkspaceRepository), new(MockBountyRepository))

		userRepo.On("UsernameExists", ctx, username).Return(true, nil)
		userRepo.On("GetByPubkey", ctx, "alice").
			Return(&domain.User{Pubkey: "alice", Username: "alice"}, nil)

		_, err := svc.Update(ctx, "alice", domain.UserUpdate{Username: &username})
		appErr, ok := apperr.As(err)
		assert.True(t, ok)
		assert.Equal(t, apperr.CodeConflict, appErr.Code)
	})

	t.Run("keeping your own username is fine", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo, new(MockWorkspaceRepository), new(MockBountyRepository))

		userRepo.On("UsernameExists", ctx, username).Return(true, nil)
		userRepo.On("GetByPubkey", ctx, "alice").
			Return(&domain.User{Pubkey: "alice", Username: username}, nil)
		userRepo.On("Update", ctx, "alice", mock.AnythingOfType("*domain.UserUpdate")).Return(nil)

		_, err := svc.Update(ctx, "alice", domain.UserUpdate{Username: &username})
		assert.NoError(t, err)
	})
}

func TestUserService_Delete_Guards(t *testing.T) {
	ctx := context.Background()

	t.Run("blocked while owning workspaces", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		workspaceRepo := new(MockWorkspaceRepository)
		svc := NewUserService(userRepo, workspaceRepo, new(MockBountyRepository))

		workspaceRepo.On("CountOwnedBy", ctx, "alice").Return(int64(2), nil)

		err := svc.Delete(ctx, "alice")
		appErr, ok := apperr.As(err)
		assert.True(t, ok)
		assert.Equal(t, apperr.CodeConflict, appErr.Code)
		userRepo.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
	})

	t.Run("blocked while holding assigned bounties", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		workspaceRepo := new(MockWorkspaceRepository)
		bountyRepo := new(MockBountyRepository)
		svc := NewUserService(userRepo, workspaceRepo, bountyRepo)

		workspaceRepo.On("CountOwnedBy", ctx, "alice").Return(int64(0), nil)
		bountyRepo.On("CountActiveAssignments", ctx, "alice").Return(int64(1), nil)

		err := svc.Delete(ctx, "alice")
		appErr, ok := apperr.As(err)
		assert.True(t, ok)
		assert.Equal(t, apperr.CodeConflict, appErr.Code)
	})

	t.Run("clean account tombstones", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		workspaceRepo := new(MockWorkspaceRepository)
		bountyRepo := new(MockBountyRepository)
		svc := NewUserService(userRepo, workspaceRepo, bountyRepo)

		workspaceRepo.On("CountOwnedBy", ctx, "alice").Return(int64(0), nil)
		bountyRepo.On("CountActiveAssignments", ctx, "alice").Return(int64(0), nil)
		userRepo.On("SoftDelete", ctx, "alice").Return(nil)

		err := svc.Delete(ctx, "alice")
		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})
}
