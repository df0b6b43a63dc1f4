package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/satsworks/bounties/internal/apperr"
	"github.com/satsworks/bounties/internal/domain"
)

// WorkspaceService handles workspace and membership operations
type WorkspaceService struct {
	workspaceRepo WorkspaceRepository
	userRepo      UserRepository
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(workspaceRepo WorkspaceRepository, userRepo UserRepository) *WorkspaceService {
	return &WorkspaceService{workspaceRepo: workspaceRepo, userRepo: userRepo}
}

// Create creates a workspace with the caller as OWNER
func (s *WorkspaceService) Create(ctx context.Context, actor string, input domain.WorkspaceCreate) (*domain.Workspace, error) {
	now := time.Now()
	workspace := &domain.Workspace{
		ID:          uuid.New(),
		Name:        input.Name,
		OwnerPubkey: actor,
		Description: input.Description,
		Mission:     input.Mission,
		WebsiteURL:  input.WebsiteURL,
		GithubURL:   input.GithubURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	owner := &domain.WorkspaceMember{
		WorkspaceID: workspace.ID,
		UserPubkey:  actor,
		Role:        domain.RoleOwner,
		CreatedAt:   now,
	}

	activity := newWorkspaceActivity(workspace.ID, actor, domain.ActionWorkspaceCreated, map[string]any{
		"name": workspace.Name,
	})

	if err := s.workspaceRepo.Create(ctx, workspace, owner, activity); err != nil {
		return nil, err
	}

	return workspace, nil
}

// Get retrieves a workspace; non-members get NOT_FOUND
func (s *WorkspaceService) Get(ctx context.Context, actor string, workspaceID uuid.UUID) (*domain.Workspace, error) {
	if _, err := requireMember(ctx, s.workspaceRepo, workspaceID, actor); err != nil {
		return nil, err
	}

	workspace, err := s.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	if workspace == nil {
		return nil, apperr.NotFound("workspace")
	}

	return workspace, nil
}

// List retrieves a page of the caller's workspaces
func (s *WorkspaceService) List(ctx context.Context, actor string, page domain.PageParams) ([]domain.Workspace, domain.PageMeta, error) {
	workspaces, total, err := s.workspaceRepo.ListByUser(ctx, actor, page)
	if err != nil {
		return nil, domain.PageMeta{}, fmt.Errorf("failed to list workspaces: %w", err)
	}
	return workspaces, domain.NewPageMeta(page, total), nil
}

// Update applies a partial update; requires ADMIN or above
func (s *WorkspaceService) Update(ctx context.Context, actor string, workspaceID uuid.UUID, input domain.WorkspaceUpdate) (*domain.Workspace, error) {
	member, err := requireMember(ctx, s.workspaceRepo, workspaceID, actor)
	if err != nil {
		return nil, err
	}
	if err := requireRole(member, domain.RoleAdmin); err != nil {
		return nil, err
	}

	activity := newWorkspaceActivity(workspaceID, actor, domain.ActionWorkspaceUpdated, nil)
	if err := s.workspaceRepo.Update(ctx, workspaceID, &input, activity); err != nil {
		return nil, err
	}

	workspace, err := s.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	return workspace, nil
}

// Delete tombstones a workspace; OWNER only
func (s *WorkspaceService) Delete(ctx context.Context, actor string, workspaceID uuid.UUID) error {
	member, err := requireMember(ctx, s.workspaceRepo, workspaceID, actor)
	if err != nil {
		return err
	}
	if err := requireRole(member, domain.RoleOwner); err != nil {
		return err
	}

	activity := newWorkspaceActivity(workspaceID, actor, domain.ActionWorkspaceDeleted, nil)
	return s.workspaceRepo.SoftDelete(ctx, workspaceID, activity)
}

// ListMembers retrieves all members; any member may look
func (s *WorkspaceService) ListMembers(ctx context.Context, actor string, workspaceID uuid.UUID) ([]domain.WorkspaceMember, error) {
	if _, err := requireMember(ctx, s.workspaceRepo, workspaceID, actor); err != nil {
		return nil, err
	}
	return s.workspaceRepo.ListMembers(ctx, workspaceID)
}

// AddMember adds a user to the workspace; requires ADMIN or above. OWNER
// cannot be granted here; ownership moves through role changes.
func (s *WorkspaceService) AddMember(ctx context.Context, actor string, workspaceID uuid.UUID, input domain.MemberAdd) (*domain.WorkspaceMember, error) {
	member, err := requireMember(ctx, s.workspaceRepo, workspaceID, actor)
	if err != nil {
		return nil, err
	}
	if err := requireRole(member, domain.RoleAdmin); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByPubkey(ctx, input.UserPubkey)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user")
	}

	newMember := &domain.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserPubkey:  input.UserPubkey,
		Role:        input.Role,
		CreatedAt:   time.Now(),
	}

	activity := newWorkspaceActivity(workspaceID, actor, domain.ActionMemberAdded, map[string]any{
		"user_pubkey": input.UserPubkey,
		"role":        input.Role,
	})

	if err := s.workspaceRepo.AddMember(ctx, newMember, activity); err != nil {
		return nil, err
	}

	return newMember, nil
}

// UpdateMemberRole changes a member's role; requires ADMIN or above. The
// last OWNER can never be demoted.
func (s *WorkspaceService) UpdateMemberRole(ctx context.Context, actor string, workspaceID uuid.UUID, targetPubkey string, input domain.MemberRoleUpdate) error {
	member, err := requireMember(ctx, s.workspaceRepo, workspaceID, actor)
	if err != nil {
		return err
	}
	if err := requireRole(member, domain.RoleAdmin); err != nil {
		return err
	}

	target, err := s.workspaceRepo.GetMember(ctx, workspaceID, targetPubkey)
	if err != nil {
		return fmt.Errorf("failed to get target member: %w", err)
	}
	if target == nil {
		return apperr.NotFound("membership")
	}

	if target.Role == domain.RoleOwner && input.Role != domain.RoleOwner {
		owners, err := s.workspaceRepo.CountOwners(ctx, workspaceID)
		if err != nil {
			return fmt.Errorf("failed to count owners: %w", err)
		}
		if owners <= 1 {
			return apperr.BadRequest("workspace must retain at least one owner")
		}
	}

	activity := newWorkspaceActivity(workspaceID, actor, domain.ActionMemberRoleChanged, map[string]any{
		"user_pubkey": targetPubkey,
		"old_role":    target.Role,
		"new_role":    input.Role,
	})

	return s.workspaceRepo.UpdateMemberRole(ctx, workspaceID, targetPubkey, input.Role, activity)
}

// RemoveMember removes a member; requires ADMIN or above. Removing an OWNER
// is allowed only while another OWNER remains.
func (s *WorkspaceService) RemoveMember(ctx context.Context, actor string, workspaceID uuid.UUID, targetPubkey string) error {
	member, err := requireMember(ctx, s.workspaceRepo, workspaceID, actor)
	if err != nil {
		return err
	}
	if err := requireRole(member, domain.RoleAdmin); err != nil {
		return err
	}

	target, err := s.workspaceRepo.GetMember(ctx, workspaceID, targetPubkey)
	if err != nil {
		return fmt.Errorf("failed to get target member: %w", err)
	}
	if target == nil {
		return apperr.NotFound("membership")
	}

	if target.Role == domain.RoleOwner {
		owners, err := s.workspaceRepo.CountOwners(ctx, workspaceID)
		if err != nil {
			return fmt.Errorf("failed to count owners: %w", err)
		}
		if owners <= 1 {
			return apperr.BadRequest("workspace must retain at least one owner")
		}
	}

	activity := newWorkspaceActivity(workspaceID, actor, domain.ActionMemberRemoved, map[string]any{
		"user_pubkey": targetPubkey,
	})

	return s.workspaceRepo.RemoveMember(ctx, workspaceID, targetPubkey, activity)
}

// ListActivities retrieves a page of the workspace audit log
func (s *WorkspaceService) ListActivities(ctx context.Context, actor string, workspaceID uuid.UUID, page domain.PageParams) ([]domain.WorkspaceActivity, domain.PageMeta, error) {
	if _, err := requireMember(ctx, s.workspaceRepo, workspaceID, actor); err != nil {
		return nil, domain.PageMeta{}, err
	}

	activities, total, err := s.workspaceRepo.ListActivities(ctx, workspaceID, page)
	if err != nil {
		return nil, domain.PageMeta{}, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, domain.NewPageMeta(page, total), nil
}

func newWorkspaceActivity(workspaceID uuid.UUID, actor string, action domain.ActivityAction, details map[string]any) *domain.WorkspaceActivity {
	return &domain.WorkspaceActivity{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		ActorPubkey: actor,
		Action:      action,
		Details:     details,
		CreatedAt:   time.Now(),
	}
}
