package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/satsworks/bounties/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByPubkey(ctx context.Context, pubkey string) (*domain.User, error) {
	args := m.Called(ctx, pubkey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, pubkey string, update *domain.UserUpdate) error {
	args := m.Called(ctx, pubkey, update)
	return args.Error(0)
}

func (m *MockUserRepository) SoftDelete(ctx context.Context, pubkey string) error {
	args := m.Called(ctx, pubkey)
	return args.Error(0)
}

// MockWorkspaceRepository mocks the WorkspaceRepository interface
type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) Create(ctx context.Context, workspace *domain.Workspace, owner *domain.WorkspaceMember, activity *domain.WorkspaceActivity) error {
	args := m.Called(ctx, workspace, owner, activity)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) ListByUser(ctx context.Context, pubkey string, page domain.PageParams) ([]domain.Workspace, int64, error) {
	args := m.Called(ctx, pubkey, page)
	return args.Get(0).([]domain.Workspace), args.Get(1).(int64), args.Error(2)
}

func (m *MockWorkspaceRepository) Update(ctx context.Context, id uuid.UUID, update *domain.WorkspaceUpdate, activity *domain.WorkspaceActivity) error {
	args := m.Called(ctx, id, update, activity)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) SoftDelete(ctx context.Context, id uuid.UUID, activity *domain.WorkspaceActivity) error {
	args := m.Called(ctx, id, activity)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) CountOwnedBy(ctx context.Context, pubkey string) (int64, error) {
	args := m.Called(ctx, pubkey)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWorkspaceRepository) GetMember(ctx context.Context, workspaceID uuid.UUID, pubkey string) (*domain.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID, pubkey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceMember), args.Error(1)
}

func (m *MockWorkspaceRepository) ListMembers(ctx context.Context, workspaceID uuid.UUID) ([]domain.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]domain.WorkspaceMember), args.Error(1)
}

func (m *MockWorkspaceRepository) CountOwners(ctx context.Context, workspaceID uuid.UUID) (int64, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWorkspaceRepository) AddMember(ctx context.Context, member *domain.WorkspaceMember, activity *domain.WorkspaceActivity) error {
	args := m.Called(ctx, member, activity)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) UpdateMemberRole(ctx context.Context, workspaceID uuid.UUID, pubkey string, role domain.Role, activity *domain.WorkspaceActivity) error {
	args := m.Called(ctx, workspaceID, pubkey, role, activity)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) RemoveMember(ctx context.Context, workspaceID uuid.UUID, pubkey string, activity *domain.WorkspaceActivity) error {
	args := m.Called(ctx, workspaceID, pubkey, activity)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) GetBudget(ctx context.Context, workspaceID uuid.UUID) (*domain.WorkspaceBudget, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceBudget), args.Error(1)
}

func (m *MockWorkspaceRepository) ListActivities(ctx context.Context, workspaceID uuid.UUID, page domain.PageParams) ([]domain.WorkspaceActivity, int64, error) {
	args := m.Called(ctx, workspaceID, page)
	return args.Get(0).([]domain.WorkspaceActivity), args.Get(1).(int64), args.Error(2)
}

// MockBountyRepository mocks the BountyRepository interface
type MockBountyRepository struct {
	mock.Mock
}

func (m *MockBountyRepository) Create(ctx context.Context, bounty *domain.Bounty, activity *domain.BountyActivity) error {
	args := m.Called(ctx, bounty, activity)
	return args.Error(0)
}

func (m *MockBountyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bounty, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bounty), args.Error(1)
}

func (m *MockBountyRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, status *domain.BountyStatus, page domain.PageParams) ([]domain.Bounty, int64, error) {
	args := m.Called(ctx, workspaceID, status, page)
	return args.Get(0).([]domain.Bounty), args.Get(1).(int64), args.Error(2)
}

func (m *MockBountyRepository) Update(ctx context.Context, id uuid.UUID, update *domain.BountyUpdate, activity *domain.BountyActivity) error {
	args := m.Called(ctx, id, update, activity)
	return args.Error(0)
}

func (m *MockBountyRepository) SoftDelete(ctx context.Context, id uuid.UUID, activity *domain.BountyActivity) error {
	args := m.Called(ctx, id, activity)
	return args.Error(0)
}

func (m *MockBountyRepository) ApplyStatusChange(ctx context.Context, bounty *domain.Bounty, move domain.BudgetMove, ledger *domain.Transaction, activity *domain.BountyActivity) error {
	args := m.Called(ctx, bounty, move, ledger, activity)
	return args.Error(0)
}

func (m *MockBountyRepository) CreateRequest(ctx context.Context, request *domain.BountyRequest, activity *domain.BountyActivity) error {
	args := m.Called(ctx, request, activity)
	return args.Error(0)
}

func (m *MockBountyRepository) GetRequest(ctx context.Context, id uuid.UUID) (*domain.BountyRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BountyRequest), args.Error(1)
}

func (m *MockBountyRepository) HasPendingRequest(ctx context.Context, bountyID uuid.UUID, pubkey string) (bool, error) {
	args := m.Called(ctx, bountyID, pubkey)
	return args.Bool(0), args.Error(1)
}

func (m *MockBountyRepository) ListRequests(ctx context.Context, bountyID uuid.UUID) ([]domain.BountyRequest, error) {
	args := m.Called(ctx, bountyID)
	return args.Get(0).([]domain.BountyRequest), args.Error(1)
}

func (m *MockBountyRepository) ApproveRequest(ctx context.Context, request *domain.BountyRequest, bounty *domain.Bounty, activity *domain.BountyActivity) error {
	args := m.Called(ctx, request, bounty, activity)
	return args.Error(0)
}

func (m *MockBountyRepository) UpdateRequestStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus, activity *domain.BountyActivity) error {
	args := m.Called(ctx, id, status, activity)
	return args.Error(0)
}

func (m *MockBountyRepository) CreateProof(ctx context.Context, proof *domain.BountyProof, bounty *domain.Bounty, activity *domain.BountyActivity) error {
	args := m.Called(ctx, proof, bounty, activity)
	return args.Error(0)
}

func (m *MockBountyRepository) GetProof(ctx context.Context, id uuid.UUID) (*domain.BountyProof, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BountyProof), args.Error(1)
}

func (m *MockBountyRepository) ListProofs(ctx context.Context, bountyID uuid.UUID) ([]domain.BountyProof, error) {
	args := m.Called(ctx, bountyID)
	return args.Get(0).([]domain.BountyProof), args.Error(1)
}

func (m *MockBountyRepository) UpdateProofStatus(ctx context.Context, id uuid.UUID, status domain.ProofStatus, activity *domain.BountyActivity) error {
	args := m.Called(ctx, id, status, activity)
	return args.Error(0)
}

func (m *MockBountyRepository) DeleteProof(ctx context.Context, id uuid.UUID, activity *domain.BountyActivity) error {
	args := m.Called(ctx, id, activity)
	return args.Error(0)
}

func (m *MockBountyRepository) CreateComment(ctx context.Context, comment *domain.BountyComment, activity *domain.BountyActivity) error {
	args := m.Called(ctx, comment, activity)
	return args.Error(0)
}

func (m *MockBountyRepository) GetComment(ctx context.Context, id uuid.UUID) (*domain.BountyComment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BountyComment), args.Error(1)
}

func (m *MockBountyRepository) ListComments(ctx context.Context, bountyID uuid.UUID, page domain.PageParams) ([]domain.BountyComment, int64, error) {
	args := m.Called(ctx, bountyID, page)
	return args.Get(0).([]domain.BountyComment), args.Get(1).(int64), args.Error(2)
}

func (m *MockBountyRepository) DeleteComment(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBountyRepository) ListActivities(ctx context.Context, bountyID uuid.UUID, page domain.PageParams) ([]domain.BountyActivity, int64, error) {
	args := m.Called(ctx, bountyID, page)
	return args.Get(0).([]domain.BountyActivity), args.Get(1).(int64), args.Error(2)
}

func (m *MockBountyRepository) CountActiveAssignments(ctx context.Context, pubkey string) (int64, error) {
	args := m.Called(ctx, pubkey)
	return args.Get(0).(int64), args.Error(1)
}

// MockTransactionRepository mocks the TransactionRepository interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Deposit(ctx context.Context, ledger *domain.Transaction, activity *domain.WorkspaceActivity) error {
	args := m.Called(ctx, ledger, activity)
	return args.Error(0)
}

func (m *MockTransactionRepository) Withdraw(ctx context.Context, ledger *domain.Transaction, activity *domain.WorkspaceActivity) error {
	args := m.Called(ctx, ledger, activity)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, page domain.PageParams) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, workspaceID, page)
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

// MockChallengeStore mocks the ChallengeStore interface
type MockChallengeStore struct {
	mock.Mock
}

func (m *MockChallengeStore) Put(ctx context.Context, challenge string) error {
	args := m.Called(ctx, challenge)
	return args.Error(0)
}

func (m *MockChallengeStore) Consume(ctx context.Context, challenge string) error {
	args := m.Called(ctx, challenge)
	return args.Error(0)
}

func (m *MockChallengeStore) TTL() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}
