package domain

import (
	"time"

	"github.com/google/uuid"
)

// Workspace represents a team container owning bounties, members and a budget
type Workspace struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	OwnerPubkey string     `json:"owner_pubkey"`
	Description string     `json:"description,omitempty"`
	Mission     string     `json:"mission,omitempty"`
	WebsiteURL  string     `json:"website_url,omitempty"`
	GithubURL   string     `json:"github_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`
}

// WorkspaceCreate represents workspace creation data
type WorkspaceCreate struct {
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Mission     string `json:"mission,omitempty" validate:"omitempty,max=1000"`
	WebsiteURL  string `json:"website_url,omitempty" validate:"omitempty,url,max=500"`
	GithubURL   string `json:"github_url,omitempty" validate:"omitempty,url,max=500"`
}

// WorkspaceUpdate represents workspace update data
type WorkspaceUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Mission     *string `json:"mission,omitempty" validate:"omitempty,max=1000"`
	WebsiteURL  *string `json:"website_url,omitempty" validate:"omitempty,url,max=500"`
	GithubURL   *string `json:"github_url,omitempty" validate:"omitempty,url,max=500"`
}

// WorkspaceMember represents workspace membership
type WorkspaceMember struct {
	WorkspaceID uuid.UUID `json:"workspace_id"`
	UserPubkey  string    `json:"user_pubkey"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// MemberAdd represents a request to add a workspace member
type MemberAdd struct {
	UserPubkey string `json:"user_pubkey" validate:"required,hexadecimal,len=64"`
	Role       Role   `json:"role" validate:"required,oneof=ADMIN CONTRIBUTOR VIEWER"`
}

// MemberRoleUpdate represents a role change for an existing member
type MemberRoleUpdate struct {
	Role Role `json:"role" validate:"required,oneof=OWNER ADMIN CONTRIBUTOR VIEWER"`
}

// WorkspaceBudget tracks the satoshi ledger position of a workspace. All
// amounts are integer sats; total = available + reserved + paid.
type WorkspaceBudget struct {
	WorkspaceID uuid.UUID `json:"workspace_id"`
	Total       int64     `json:"total_budget"`
	Available   int64     `json:"available_budget"`
	Reserved    int64     `json:"reserved_budget"`
	Paid        int64     `json:"paid_budget"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BudgetChange represents a deposit or withdrawal request
type BudgetChange struct {
	Amount int64  `json:"amount" validate:"required,gt=0"`
	Memo   string `json:"memo,omitempty" validate:"omitempty,max=500"`
}
