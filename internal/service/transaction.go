package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/satsworks/bounties/internal/apperr"
	"github.com/satsworks/bounties/internal/domain"
)

// BudgetService handles workspace budget balances and the transaction
// ledger. Payments land in the ledger through the bounty status machinery;
// this service covers deposits, withdrawals and reads.
type BudgetService struct {
	transactionRepo TransactionRepository
	workspaceRepo   WorkspaceRepository
}

// NewBudgetService creates a new budget service
func NewBudgetService(transactionRepo TransactionRepository, workspaceRepo WorkspaceRepository) *BudgetService {
	return &BudgetService{transactionRepo: transactionRepo, workspaceRepo: workspaceRepo}
}

// GetBudget retrieves the workspace budget; any member may look
func (s *BudgetService) GetBudget(ctx context.Context, actor string, workspaceID uuid.UUID) (*domain.WorkspaceBudget, error) {
	if _, err := requireMember(ctx, s.workspaceRepo, workspaceID, actor); err != nil {
		return nil, err
	}

	budget, err := s.workspaceRepo.GetBudget(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	if budget == nil {
		return nil, apperr.NotFound("workspace budget")
	}
	return budget, nil
}

// Deposit credits the workspace budget; requires ADMIN or above
func (s *BudgetService) Deposit(ctx context.Context, actor string, workspaceID uuid.UUID, input domain.BudgetChange) (*domain.Transaction, error) {
	member, err := requireMember(ctx, s.workspaceRepo, workspaceID, actor)
	if err != nil {
		return nil, err
	}
	if err := requireRole(member, domain.RoleAdmin); err != nil {
		return nil, err
	}

	ledger := &domain.Transaction{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Type:        domain.TxDeposit,
		Status:      domain.TxCompleted,
		Amount:      input.Amount,
		Memo:        input.Memo,
		CreatedAt:   time.Now(),
	}

	activity := newWorkspaceActivity(workspaceID, actor, domain.ActionBudgetDeposited, map[string]any{
		"amount": input.Amount,
	})

	if err := s.transactionRepo.Deposit(ctx, ledger, activity); err != nil {
		return nil, err
	}

	return ledger, nil
}

// Withdraw debits the available balance; requires ADMIN or above. Reserved
// funds are never touched, so a withdrawal beyond the available balance is
// a CONFLICT.
func (s *BudgetService) Withdraw(ctx context.Context, actor string, workspaceID uuid.UUID, input domain.BudgetChange) (*domain.Transaction, error) {
	member, err := requireMember(ctx, s.workspaceRepo, workspaceID, actor)
	if err != nil {
		return nil, err
	}
	if err := requireRole(member, domain.RoleAdmin); err != nil {
		return nil, err
	}

	ledger := &domain.Transaction{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Type:        domain.TxWithdrawal,
		Status:      domain.TxCompleted,
		Amount:      input.Amount,
		Memo:        input.Memo,
		CreatedAt:   time.Now(),
	}

	activity := newWorkspaceActivity(workspaceID, actor, domain.ActionBudgetWithdrawn, map[string]any{
		"amount": input.Amount,
	})

	if err := s.transactionRepo.Withdraw(ctx, ledger, activity); err != nil {
		return nil, err
	}

	return ledger, nil
}

// List retrieves a page of the workspace ledger, newest first
func (s *BudgetService) List(ctx context.Context, actor string, workspaceID uuid.UUID, page domain.PageParams) ([]domain.Transaction, domain.PageMeta, error) {
	if _, err := requireMember(ctx, s.workspaceRepo, workspaceID, actor); err != nil {
		return nil, domain.PageMeta{}, err
	}

	transactions, total, err := s.transactionRepo.ListByWorkspace(ctx, workspaceID, page)
	if err != nil {
		return nil, domain.PageMeta{}, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, domain.NewPageMeta(page, total), nil
}
