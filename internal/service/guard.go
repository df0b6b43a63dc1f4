package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/satsworks/bounties/internal/apperr"
	"github.com/satsworks/bounties/internal/domain"
)

// requireMember resolves the caller's membership in a workspace. A
// non-member gets NOT_FOUND rather than FORBIDDEN so the workspace's
// existence is never leaked.
func requireMember(ctx context.Context, repo WorkspaceRepository, workspaceID uuid.UUID, pubkey string) (*domain.WorkspaceMember, error) {
	member, err := repo.GetMember(ctx, workspaceID, pubkey)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve membership: %w", err)
	}
	if member == nil {
		return nil, apperr.NotFound("workspace")
	}
	return member, nil
}

// requireRole enforces a role threshold on an already-confirmed member.
// Membership is established at this point, so failures are FORBIDDEN.
func requireRole(member *domain.WorkspaceMember, required domain.Role) error {
	if !member.Role.AtLeast(required) {
		return apperr.Forbidden(fmt.Sprintf("%s role required", required))
	}
	return nil
}
