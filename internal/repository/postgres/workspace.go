package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/satsworks/bounties/internal/apperr"
	"github.com/satsworks/bounties/internal/domain"
)

// WorkspaceRepository handles workspace, membership, budget and activity
// data access
type WorkspaceRepository struct {
	db *DB
}

// NewWorkspaceRepository creates a new workspace repository
func NewWorkspaceRepository(db *DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

// Create inserts the workspace, its zeroed budget row, the owner membership
// and the creation activity atomically.
func (r *WorkspaceRepository) Create(ctx context.Context, workspace *domain.Workspace, owner *domain.WorkspaceMember, activity *domain.WorkspaceActivity) error {
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO workspaces (id, name, owner_pubkey, description, mission, website_url, github_url, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		if _, err := tx.Exec(ctx, query,
			workspace.ID, workspace.Name, workspace.OwnerPubkey,
			workspace.Description, workspace.Mission,
			workspace.WebsiteURL, workspace.GithubURL,
			workspace.CreatedAt, workspace.UpdatedAt,
		); err != nil {
			return err
		}

		budgetQuery := `
			INSERT INTO workspace_budgets (workspace_id, total, available, reserved, paid, updated_at)
			VALUES ($1, 0, 0, 0, 0, $2)
		`
		if _, err := tx.Exec(ctx, budgetQuery, workspace.ID, workspace.CreatedAt); err != nil {
			return err
		}

		memberQuery := `
			INSERT INTO workspace_members (workspace_id, user_pubkey, role, created_at)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := tx.Exec(ctx, memberQuery,
			owner.WorkspaceID, owner.UserPubkey, owner.Role, owner.CreatedAt,
		); err != nil {
			return err
		}

		return insertWorkspaceActivity(ctx, tx, activity)
	})
	if err != nil {
		return apperr.FromPostgres(err, "workspace")
	}
	return nil
}

// GetByID retrieves a workspace by ID, skipping tombstoned rows
func (r *WorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	query := `
		SELECT id, name, owner_pubkey, description, mission, website_url, github_url, created_at, updated_at
		FROM workspaces
		WHERE id = $1 AND deleted_at IS NULL
	`

	var workspace domain.Workspace
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&workspace.ID,
		&workspace.Name,
		&workspace.OwnerPubkey,
		&workspace.Description,
		&workspace.Mission,
		&workspace.WebsiteURL,
		&workspace.GithubURL,
		&workspace.CreatedAt,
		&workspace.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	return &workspace, nil
}

// ListByUser retrieves a page of workspaces the user is a member of
func (r *WorkspaceRepository) ListByUser(ctx context.Context, pubkey string, page domain.PageParams) ([]domain.Workspace, int64, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM workspaces w
		INNER JOIN workspace_members wm ON w.id = wm.workspace_id
		WHERE wm.user_pubkey = $1 AND w.deleted_at IS NULL
	`

	var total int64
	if err := r.db.Pool.QueryRow(ctx, countQuery, pubkey).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count workspaces: %w", err)
	}

	query := `
		SELECT w.id, w.name, w.owner_pubkey, w.description, w.mission, w.website_url, w.github_url, w.created_at, w.updated_at
		FROM workspaces w
		INNER JOIN workspace_members wm ON w.id = wm.workspace_id
		WHERE wm.user_pubkey = $1 AND w.deleted_at IS NULL
		ORDER BY w.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool.Query(ctx, query, pubkey, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list workspaces: %w", err)
	}
	defer rows.Close()

	var workspaces []domain.Workspace
	for rows.Next() {
		var workspace domain.Workspace
		if err := rows.Scan(
			&workspace.ID,
			&workspace.Name,
			&workspace.OwnerPubkey,
			&workspace.Description,
			&workspace.Mission,
			&workspace.WebsiteURL,
			&workspace.GithubURL,
			&workspace.CreatedAt,
			&workspace.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan workspace: %w", err)
		}
		workspaces = append(workspaces, workspace)
	}

	return workspaces, total, nil
}

// Update applies a partial update and the paired activity atomically
func (r *WorkspaceRepository) Update(ctx context.Context, id uuid.UUID, update *domain.WorkspaceUpdate, activity *domain.WorkspaceActivity) error {
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE workspaces
			SET name = COALESCE($2, name),
			    description = COALESCE($3, description),
			    mission = COALESCE($4, mission),
			    website_url = COALESCE($5, website_url),
			    github_url = COALESCE($6, github_url),
			    updated_at = NOW()
			WHERE id = $1 AND deleted_at IS NULL
		`

		tag, err := tx.Exec(ctx, query, id,
			update.Name, update.Description, update.Mission,
			update.WebsiteURL, update.GithubURL)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("workspace")
		}

		return insertWorkspaceActivity(ctx, tx, activity)
	})
	if err != nil {
		return apperr.FromPostgres(err, "workspace")
	}
	return nil
}

// SoftDelete tombstones a workspace and records the deletion
func (r *WorkspaceRepository) SoftDelete(ctx context.Context, id uuid.UUID, activity *domain.WorkspaceActivity) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE workspaces
			SET deleted_at = NOW(), updated_at = NOW()
			WHERE id = $1 AND deleted_at IS NULL
		`

		tag, err := tx.Exec(ctx, query, id)
		if err != nil {
			return fmt.Errorf("failed to delete workspace: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("workspace")
		}

		return insertWorkspaceActivity(ctx, tx, activity)
	})
}

// CountOwnedBy counts live workspaces owned by a user
func (r *WorkspaceRepository) CountOwnedBy(ctx context.Context, pubkey string) (int64, error) {
	query := `
		SELECT COUNT(*) FROM workspaces
		WHERE owner_pubkey = $1 AND deleted_at IS NULL
	`

	var count int64
	if err := r.db.Pool.QueryRow(ctx, query, pubkey).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count owned workspaces: %w", err)
	}
	return count, nil
}

// GetMember retrieves a workspace member. Membership rows survive a
// workspace tombstone, so the join keeps a deleted workspace from resolving
// any members.
func (r *WorkspaceRepository) GetMember(ctx context.Context, workspaceID uuid.UUID, pubkey string) (*domain.WorkspaceMember, error) {
	query := `
		SELECT m.workspace_id, m.user_pubkey, m.role, m.created_at
		FROM workspace_members m
		JOIN workspaces w ON w.id = m.workspace_id AND w.deleted_at IS NULL
		WHERE m.workspace_id = $1 AND m.user_pubkey = $2
	`

	var member domain.WorkspaceMember
	err := r.db.Pool.QueryRow(ctx, query, workspaceID, pubkey).Scan(
		&member.WorkspaceID,
		&member.UserPubkey,
		&member.Role,
		&member.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return &member, nil
}

// ListMembers retrieves all members of a workspace
func (r *WorkspaceRepository) ListMembers(ctx context.Context, workspaceID uuid.UUID) ([]domain.WorkspaceMember, error) {
	query := `
		SELECT workspace_id, user_pubkey, role, created_at
		FROM workspace_members
		WHERE workspace_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []domain.WorkspaceMember
	for rows.Next() {
		var member domain.WorkspaceMember
		if err := rows.Scan(
			&member.WorkspaceID,
			&member.UserPubkey,
			&member.Role,
			&member.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}

	return members, nil
}

// CountOwners counts members holding the OWNER role
func (r *WorkspaceRepository) CountOwners(ctx context.Context, workspaceID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*) FROM workspace_members
		WHERE workspace_id = $1 AND role = $2
	`

	var count int64
	if err := r.db.Pool.QueryRow(ctx, query, workspaceID, domain.RoleOwner).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count owners: %w", err)
	}
	return count, nil
}

// AddMember inserts a membership row and the paired activity atomically
func (r *WorkspaceRepository) AddMember(ctx context.Context, member *domain.WorkspaceMember, activity *domain.WorkspaceActivity) error {
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO workspace_members (workspace_id, user_pubkey, role, created_at)
			VALUES ($1, $2, $3, $4)
		`

		if _, err := tx.Exec(ctx, query,
			member.WorkspaceID, member.UserPubkey, member.Role, member.CreatedAt,
		); err != nil {
			return err
		}

		return insertWorkspaceActivity(ctx, tx, activity)
	})
	if err != nil {
		return apperr.FromPostgres(err, "membership")
	}
	return nil
}

// UpdateMemberRole changes a member's role and records the change atomically
func (r *WorkspaceRepository) UpdateMemberRole(ctx context.Context, workspaceID uuid.UUID, pubkey string, role domain.Role, activity *domain.WorkspaceActivity) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE workspace_members
			SET role = $3
			WHERE workspace_id = $1 AND user_pubkey = $2
		`

		tag, err := tx.Exec(ctx, query, workspaceID, pubkey, role)
		if err != nil {
			return fmt.Errorf("failed to update member role: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("membership")
		}

		return insertWorkspaceActivity(ctx, tx, activity)
	})
}

// RemoveMember deletes a membership row and records the removal atomically
func (r *WorkspaceRepository) RemoveMember(ctx context.Context, workspaceID uuid.UUID, pubkey string, activity *domain.WorkspaceActivity) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `DELETE FROM workspace_members WHERE workspace_id = $1 AND user_pubkey = $2`

		tag, err := tx.Exec(ctx, query, workspaceID, pubkey)
		if err != nil {
			return fmt.Errorf("failed to remove member: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("membership")
		}

		return insertWorkspaceActivity(ctx, tx, activity)
	})
}

// GetBudget retrieves the budget row for a workspace
func (r *WorkspaceRepository) GetBudget(ctx context.Context, workspaceID uuid.UUID) (*domain.WorkspaceBudget, error) {
	query := `
		SELECT workspace_id, total, available, reserved, paid, updated_at
		FROM workspace_budgets
		WHERE workspace_id = $1
	`

	var budget domain.WorkspaceBudget
	err := r.db.Pool.QueryRow(ctx, query, workspaceID).Scan(
		&budget.WorkspaceID,
		&budget.Total,
		&budget.Available,
		&budget.Reserved,
		&budget.Paid,
		&budget.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}

	return &budget, nil
}

// ListActivities retrieves a page of workspace audit rows, newest first
func (r *WorkspaceRepository) ListActivities(ctx context.Context, workspaceID uuid.UUID, page domain.PageParams) ([]domain.WorkspaceActivity, int64, error) {
	countQuery := `SELECT COUNT(*) FROM workspace_activities WHERE workspace_id = $1`

	var total int64
	if err := r.db.Pool.QueryRow(ctx, countQuery, workspaceID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}

	query := `
		SELECT id, workspace_id, actor_pubkey, action, details, created_at
		FROM workspace_activities
		WHERE workspace_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []domain.WorkspaceActivity
	for rows.Next() {
		var a domain.WorkspaceActivity
		var details []byte
		if err := rows.Scan(&a.ID, &a.WorkspaceID, &a.ActorPubkey, &a.Action, &details, &a.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity: %w", err)
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &a.Details); err != nil {
				return nil, 0, fmt.Errorf("failed to unmarshal activity details: %w", err)
			}
		}
		activities = append(activities, a)
	}

	return activities, total, nil
}
