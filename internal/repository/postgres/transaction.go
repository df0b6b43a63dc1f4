package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/satsworks/bounties/internal/apperr"
	"github.com/satsworks/bounties/internal/domain"
)

// TransactionRepository handles ledger entries and the budget mutations
// they settle
type TransactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func insertTransaction(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, workspace_id, bounty_id, type, status, amount, memo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := tx.Exec(ctx, query,
		t.ID, t.WorkspaceID, t.BountyID, t.Type, t.Status, t.Amount, t.Memo, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// Deposit credits the workspace budget and records the ledger entry and
// audit row atomically
func (r *TransactionRepository) Deposit(ctx context.Context, ledger *domain.Transaction, activity *domain.WorkspaceActivity) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE workspace_budgets
			SET total = total + $2, available = available + $2, updated_at = NOW()
			WHERE workspace_id = $1
		`

		tag, err := tx.Exec(ctx, query, ledger.WorkspaceID, ledger.Amount)
		if err != nil {
			return fmt.Errorf("failed to credit budget: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("workspace budget")
		}

		if err := insertTransaction(ctx, tx, ledger); err != nil {
			return err
		}

		return insertWorkspaceActivity(ctx, tx, activity)
	})
}

// Withdraw debits the available budget, rejecting with CONFLICT when the
// balance cannot cover the amount
func (r *TransactionRepository) Withdraw(ctx context.Context, ledger *domain.Transaction, activity *domain.WorkspaceActivity) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE workspace_budgets
			SET total = total - $2, available = available - $2, updated_at = NOW()
			WHERE workspace_id = $1 AND available >= $2
		`

		tag, err := tx.Exec(ctx, query, ledger.WorkspaceID, ledger.Amount)
		if err != nil {
			return fmt.Errorf("failed to debit budget: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.Conflict("insufficient available budget")
		}

		if err := insertTransaction(ctx, tx, ledger); err != nil {
			return err
		}

		return insertWorkspaceActivity(ctx, tx, activity)
	})
}

// ListByWorkspace retrieves a page of ledger entries, newest first
func (r *TransactionRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, page domain.PageParams) ([]domain.Transaction, int64, error) {
	countQuery := `SELECT COUNT(*) FROM transactions WHERE workspace_id = $1`

	var total int64
	if err := r.db.Pool.QueryRow(ctx, countQuery, workspaceID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	query := `
		SELECT id, workspace_id, bounty_id, type, status, amount, memo, created_at
		FROM transactions
		WHERE workspace_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID, &t.WorkspaceID, &t.BountyID, &t.Type,
			&t.Status, &t.Amount, &t.Memo, &t.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}

	return transactions, total, nil
}
