package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/satsworks/bounties/internal/domain"
)

// Activity inserts share a shape; both run inside the transaction of the
// mutation they record.

func insertWorkspaceActivity(ctx context.Context, tx pgx.Tx, a *domain.WorkspaceActivity) error {
	details, err := json.Marshal(a.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal activity details: %w", err)
	}

	query := `
		INSERT INTO workspace_activities (id, workspace_id, actor_pubkey, action, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = tx.Exec(ctx, query, a.ID, a.WorkspaceID, a.ActorPubkey, a.Action, details, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert workspace activity: %w", err)
	}
	return nil
}

func insertBountyActivity(ctx context.Context, tx pgx.Tx, a *domain.BountyActivity) error {
	details, err := json.Marshal(a.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal activity details: %w", err)
	}

	query := `
		INSERT INTO bounty_activities (id, bounty_id, actor_pubkey, action, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = tx.Exec(ctx, query, a.ID, a.BountyID, a.ActorPubkey, a.Action, details, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert bounty activity: %w", err)
	}
	return nil
}
