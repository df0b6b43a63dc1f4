package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityAction identifies the operation an audit row records.
type ActivityAction string

const (
	ActionWorkspaceCreated   ActivityAction = "WORKSPACE_CREATED"
	ActionWorkspaceUpdated   ActivityAction = "WORKSPACE_UPDATED"
	ActionWorkspaceDeleted   ActivityAction = "WORKSPACE_DELETED"
	ActionMemberAdded        ActivityAction = "MEMBER_ADDED"
	ActionMemberRemoved      ActivityAction = "MEMBER_REMOVED"
	ActionMemberRoleChanged  ActivityAction = "MEMBER_ROLE_CHANGED"
	ActionBudgetDeposited    ActivityAction = "BUDGET_DEPOSITED"
	ActionBudgetWithdrawn    ActivityAction = "BUDGET_WITHDRAWN"
	ActionBountyCreated      ActivityAction = "BOUNTY_CREATED"
	ActionBountyUpdated      ActivityAction = "BOUNTY_UPDATED"
	ActionBountyDeleted      ActivityAction = "BOUNTY_DELETED"
	ActionStatusChanged      ActivityAction = "STATUS_CHANGED"
	ActionRequestSubmitted   ActivityAction = "REQUEST_SUBMITTED"
	ActionRequestReviewed    ActivityAction = "REQUEST_REVIEWED"
	ActionProofSubmitted     ActivityAction = "PROOF_SUBMITTED"
	ActionProofReviewed      ActivityAction = "PROOF_REVIEWED"
	ActionProofDeleted       ActivityAction = "PROOF_DELETED"
	ActionCommentAdded       ActivityAction = "COMMENT_ADDED"
	ActionBountyPaid         ActivityAction = "BOUNTY_PAID"
)

// WorkspaceActivity is an append-only audit row for workspace-level actions
type WorkspaceActivity struct {
	ID          uuid.UUID      `json:"id"`
	WorkspaceID uuid.UUID      `json:"workspace_id"`
	ActorPubkey string         `json:"actor_pubkey"`
	Action      ActivityAction `json:"action"`
	Details     map[string]any `json:"details,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// BountyActivity is an append-only audit row for bounty-level actions
type BountyActivity struct {
	ID          uuid.UUID      `json:"id"`
	BountyID    uuid.UUID      `json:"bounty_id"`
	ActorPubkey string         `json:"actor_pubkey"`
	Action      ActivityAction `json:"action"`
	Details     map[string]any `json:"details,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
