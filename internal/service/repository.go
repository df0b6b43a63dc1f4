package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/satsworks/bounties/internal/domain"
)

// Repository interfaces are declared on the consumer side so services can be
// tested against mocks. The postgres package provides the implementations.

// UserRepository provides user persistence
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByPubkey(ctx context.Context, pubkey string) (*domain.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, pubkey string, update *domain.UserUpdate) error
	SoftDelete(ctx context.Context, pubkey string) error
}

// WorkspaceRepository provides workspace, membership, budget and activity
// persistence
type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *domain.Workspace, owner *domain.WorkspaceMember, activity *domain.WorkspaceActivity) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error)
	ListByUser(ctx context.Context, pubkey string, page domain.PageParams) ([]domain.Workspace, int64, error)
	Update(ctx context.Context, id uuid.UUID, update *domain.WorkspaceUpdate, activity *domain.WorkspaceActivity) error
	SoftDelete(ctx context.Context, id uuid.UUID, activity *domain.WorkspaceActivity) error
	CountOwnedBy(ctx context.Context, pubkey string) (int64, error)

	GetMember(ctx context.Context, workspaceID uuid.UUID, pubkey string) (*domain.WorkspaceMember, error)
	ListMembers(ctx context.Context, workspaceID uuid.UUID) ([]domain.WorkspaceMember, error)
	CountOwners(ctx context.Context, workspaceID uuid.UUID) (int64, error)
	AddMember(ctx context.Context, member *domain.WorkspaceMember, activity *domain.WorkspaceActivity) error
	UpdateMemberRole(ctx context.Context, workspaceID uuid.UUID, pubkey string, role domain.Role, activity *domain.WorkspaceActivity) error
	RemoveMember(ctx context.Context, workspaceID uuid.UUID, pubkey string, activity *domain.WorkspaceActivity) error

	GetBudget(ctx context.Context, workspaceID uuid.UUID) (*domain.WorkspaceBudget, error)
	ListActivities(ctx context.Context, workspaceID uuid.UUID, page domain.PageParams) ([]domain.WorkspaceActivity, int64, error)
}

// BountyRepository provides bounty, request, proof, comment and activity
// persistence
type BountyRepository interface {
	Create(ctx context.Context, bounty *domain.Bounty, activity *domain.BountyActivity) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bounty, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, status *domain.BountyStatus, page domain.PageParams) ([]domain.Bounty, int64, error)
	Update(ctx context.Context, id uuid.UUID, update *domain.BountyUpdate, activity *domain.BountyActivity) error
	SoftDelete(ctx context.Context, id uuid.UUID, activity *domain.BountyActivity) error
	ApplyStatusChange(ctx context.Context, bounty *domain.Bounty, move domain.BudgetMove, ledger *domain.Transaction, activity *domain.BountyActivity) error

	CreateRequest(ctx context.Context, request *domain.BountyRequest, activity *domain.BountyActivity) error
	GetRequest(ctx context.Context, id uuid.UUID) (*domain.BountyRequest, error)
	HasPendingRequest(ctx context.Context, bountyID uuid.UUID, pubkey string) (bool, error)
	ListRequests(ctx context.Context, bountyID uuid.UUID) ([]domain.BountyRequest, error)
	ApproveRequest(ctx context.Context, request *domain.BountyRequest, bounty *domain.Bounty, activity *domain.BountyActivity) error
	UpdateRequestStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus, activity *domain.BountyActivity) error

	CreateProof(ctx context.Context, proof *domain.BountyProof, bounty *domain.Bounty, activity *domain.BountyActivity) error
	GetProof(ctx context.Context, id uuid.UUID) (*domain.BountyProof, error)
	ListProofs(ctx context.Context, bountyID uuid.UUID) ([]domain.BountyProof, error)
	UpdateProofStatus(ctx context.Context, id uuid.UUID, status domain.ProofStatus, activity *domain.BountyActivity) error
	DeleteProof(ctx context.Context, id uuid.UUID, activity *domain.BountyActivity) error

	CreateComment(ctx context.Context, comment *domain.BountyComment, activity *domain.BountyActivity) error
	GetComment(ctx context.Context, id uuid.UUID) (*domain.BountyComment, error)
	ListComments(ctx context.Context, bountyID uuid.UUID, page domain.PageParams) ([]domain.BountyComment, int64, error)
	DeleteComment(ctx context.Context, id uuid.UUID) error

	ListActivities(ctx context.Context, bountyID uuid.UUID, page domain.PageParams) ([]domain.BountyActivity, int64, error)
	CountActiveAssignments(ctx context.Context, pubkey string) (int64, error)
}

// TransactionRepository provides ledger persistence and budget settlement
type TransactionRepository interface {
	Deposit(ctx context.Context, ledger *domain.Transaction, activity *domain.WorkspaceActivity) error
	Withdraw(ctx context.Context, ledger *domain.Transaction, activity *domain.WorkspaceActivity) error
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, page domain.PageParams) ([]domain.Transaction, int64, error)
}

// ChallengeStore keeps single-use login challenges
type ChallengeStore interface {
	Put(ctx context.Context, challenge string) error
	Consume(ctx context.Context, challenge string) error
	TTL() time.Duration
}
