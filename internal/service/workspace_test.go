package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/satsworks/bounties/internal/apperr"
	"github.com/satsworks/bounties/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func member(workspaceID uuid.UUID, pubkey string, role domain.Role) *domain.WorkspaceMember {
	return &domain.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserPubkey:  pubkey,
		Role:        role,
	}
}

func TestWorkspaceService_Create(t *testing.T) {
	workspaceRepo := new(MockWorkspaceRepository)
	svc := NewWorkspaceService(workspaceRepo, new(MockUserRepository))

	ctx := context.Background()

	workspaceRepo.On("Create", ctx,
		mock.AnythingOfType("*domain.Workspace"),
		mock.AnythingOfType("*domain.WorkspaceMember"),
		mock.AnythingOfType("*domain.WorkspaceActivity"),
	).Return(nil)

	workspace, err := svc.Create(ctx, "alice-pubkey", domain.WorkspaceCreate{Name: "bug squad"})
	assert.NoError(t, err)
	assert.Equal(t, "bug squad", workspace.Name)
	assert.Equal(t, "alice-pubkey", workspace.OwnerPubkey)

	workspaceRepo.AssertExpectations(t)

	ownerArg := workspaceRepo.Calls[0].Arguments.Get(2).(*domain.WorkspaceMember)
	assert.Equal(t, domain.RoleOwner, ownerArg.Role)
	assert.Equal(t, "alice-pubkey", ownerArg.UserPubkey)
}

func TestWorkspaceService_Get_NonMember(t *testing.T) {
	workspaceRepo := new(MockWorkspaceRepository)
	svc := NewWorkspaceService(workspaceRepo, new(MockUserRepository))

	ctx := context.Background()
	workspaceID := uuid.New()

	workspaceRepo.On("GetMember", ctx, workspaceID, "outsider").Return(nil, nil)

	_, err := svc.Get(ctx, "outsider", workspaceID)
	appErr, ok := apperr.As(err)
	assert.True(t, ok)
	assert.Equal(t, apperr.CodeNotFound, appErr.Code)
}

func TestWorkspaceService_UpdateMemberRole(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()

	t.Run("demoting the last owner is rejected", func(t *testing.T) {
		workspaceRepo := new(MockWorkspaceRepository)
		svc := NewWorkspaceService(workspaceRepo, new(MockUserRepository))

		workspaceRepo.On("GetMember", ctx, workspaceID, "admin").
			Return(member(workspaceID, "admin", domain.RoleAdmin), nil)
		workspaceRepo.On("GetMember", ctx, workspaceID, "owner").
			Return(member(workspaceID, "owner", domain.RoleOwner), nil)
		workspaceRepo.On("CountOwners", ctx, workspaceID).Return(int64(1), nil)

		err := svc.UpdateMemberRole(ctx, "admin", workspaceID, "owner", domain.MemberRoleUpdate{Role: domain.RoleViewer})
		appErr, ok := apperr.As(err)
		assert.True(t, ok)
		assert.Equal(t, apperr.CodeBadRequest, appErr.Code)

		workspaceRepo.AssertNotCalled(t, "UpdateMemberRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("demoting an owner succeeds when another remains", func(t *testing.T) {
		workspaceRepo := new(MockWorkspaceRepository)
		svc := NewWorkspaceService(workspaceRepo, new(MockUserRepository))

		workspaceRepo.On("GetMember", ctx, workspaceID, "admin").
			Return(member(workspaceID, "admin", domain.RoleAdmin), nil)
		workspaceRepo.On("GetMember", ctx, workspaceID, "owner").
			Return(member(workspaceID, "owner", domain.RoleOwner), nil)
		workspaceRepo.On("CountOwners", ctx, workspaceID).Return(int64(2), nil)
		workspaceRepo.On("UpdateMemberRole", ctx, workspaceID, "owner", domain.RoleAdmin,
			mock.AnythingOfType("*domain.WorkspaceActivity")).Return(nil)

		err := svc.UpdateMemberRole(ctx, "admin", workspaceID, "owner", domain.MemberRoleUpdate{Role: domain.RoleAdmin})
		assert.NoError(t, err)
		workspaceRepo.AssertExpectations(t)
	})

	t.Run("contributor cannot change roles", func(t *testing.T) {
		workspaceRepo := new(MockWorkspaceRepository)
		svc := NewWorkspaceService(workspaceRepo, new(MockUserRepository))

		workspaceRepo.On("GetMember", ctx, workspaceID, "worker").
			Return(member(workspaceID, "worker", domain.RoleContributor), nil)

		err := svc.UpdateMemberRole(ctx, "worker", workspaceID, "someone", domain.MemberRoleUpdate{Role: domain.RoleViewer})
		appErr, ok := apperr.As(err)
		assert.True(t, ok)
		assert.Equal(t, apperr.CodeForbidden, appErr.Code)
	})
}

func TestWorkspaceService_RemoveMember_LastOwner(t *testing.T) {
	workspaceRepo := new(MockWorkspaceRepository)
	svc := NewWorkspaceService(workspaceRepo, new(MockUserRepository))

	ctx := context.Background()
	workspaceID := uuid.New()

	workspaceRepo.On("GetMember", ctx, workspaceID, "admin").
		Return(member(workspaceID, "admin", domain.RoleAdmin), nil)
	workspaceRepo.On("GetMember", ctx, workspaceID, "owner").
		Return(member(workspaceID, "owner", domain.RoleOwner), nil)
	workspaceRepo.On("CountOwners", ctx, workspaceID).Return(int64(1), nil)

	err := svc.RemoveMember(ctx, "admin", workspaceID, "owner")
	appErr, ok := apperr.As(err)
	assert.True(t, ok)
	assert.Equal(t, apperr.CodeBadRequest, appErr.Code)
}

func TestWorkspaceService_AddMember_UnknownUser(t *testing.T) {
	workspaceRepo := new(MockWorkspaceRepository)
	userRepo := new(MockUserRepository)
	svc := NewWorkspaceService(workspaceRepo, userRepo)

	ctx := context.Background()
	workspaceID := uuid.New()

	workspaceRepo.On("GetMember", ctx, workspaceID, "admin").
		Return(member(workspaceID, "admin", domain.RoleAdmin), nil)
	userRepo.On("GetByPubkey", ctx, "ghost").Return(nil, nil)

	_, err := svc.AddMember(ctx, "admin", workspaceID, domain.MemberAdd{
		UserPubkey: "ghost",
		Role:       domain.RoleContributor,
	})
	appErr, ok := apperr.As(err)
	assert.True(t, ok)
	assert.Equal(t, apperr.CodeNotFound, appErr.Code)
}

func TestWorkspaceService_Delete_RequiresOwner(t *testing.T) {
	workspaceRepo := new(MockWorkspaceRepository)
	svc := NewWorkspaceService(workspaceRepo, new(MockUserRepository))

	ctx := context.Background()
	workspaceID := uuid.New()

	workspaceRepo.On("GetMember", ctx, workspaceID, "admin").
		Return(member(workspaceID, "admin", domain.RoleAdmin), nil)

	err := svc.Delete(ctx, "admin", workspaceID)
	appErr, ok := apperr.As(err)
	assert.True(t, ok)
	assert.Equal(t, apperr.CodeForbidden, appErr.Code)
}
