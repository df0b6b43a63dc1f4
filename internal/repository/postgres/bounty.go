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

// BountyRepository handles bounty, request, proof, comment and bounty
// activity data access. Mutations that span the bounty and its workspace
// budget run in a single transaction here so they commit or fail together.
type BountyRepository struct {
	db *DB
}

// NewBountyRepository creates a new bounty repository
func NewBountyRepository(db *DB) *BountyRepository {
	return &BountyRepository{db: db}
}

const bountyColumns = `
	id, workspace_id, title, description, amount, status,
	creator_pubkey, assignee_pubkey, work_started_at, work_closed_at,
	completed_at, created_at, updated_at
`

func scanBounty(row pgx.Row) (*domain.Bounty, error) {
	var b domain.Bounty
	err := row.Scan(
		&b.ID, &b.WorkspaceID, &b.Title, &b.Description, &b.Amount, &b.Status,
		&b.CreatorPubkey, &b.AssigneePubkey, &b.WorkStartedAt, &b.WorkClosedAt,
		&b.CompletedAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a bounty and the creation activity atomically
func (r *BountyRepository) Create(ctx context.Context, bounty *domain.Bounty, activity *domain.BountyActivity) error {
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO bounties (id, workspace_id, title, description, amount, status, creator_pubkey, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		if _, err := tx.Exec(ctx, query,
			bounty.ID, bounty.WorkspaceID, bounty.Title, bounty.Description,
			bounty.Amount, bounty.Status, bounty.CreatorPubkey,
			bounty.CreatedAt, bounty.UpdatedAt,
		); err != nil {
			return err
		}

		return insertBountyActivity(ctx, tx, activity)
	})
	if err != nil {
		return apperr.FromPostgres(err, "bounty")
	}
	return nil
}

// GetByID retrieves a bounty by ID, skipping tombstoned rows
func (r *BountyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bounty, error) {
	query := `SELECT ` + bountyColumns + ` FROM bounties WHERE id = $1 AND deleted_at IS NULL`

	b, err := scanBounty(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bounty: %w", err)
	}
	return b, nil
}

// ListByWorkspace retrieves a page of bounties, optionally filtered by status
func (r *BountyRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, status *domain.BountyStatus, page domain.PageParams) ([]domain.Bounty, int64, error) {
	countQuery := `
		SELECT COUNT(*) FROM bounties
		WHERE workspace_id = $1 AND deleted_at IS NULL AND ($2::text IS NULL OR status = $2)
	`

	var total int64
	if err := r.db.Pool.QueryRow(ctx, countQuery, workspaceID, status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bounties: %w", err)
	}

	query := `
		SELECT ` + bountyColumns + `
		FROM bounties
		WHERE workspace_id = $1 AND deleted_at IS NULL AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID, status, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bounties: %w", err)
	}
	defer rows.Close()

	var bounties []domain.Bounty
	for rows.Next() {
		b, err := scanBounty(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan bounty: %w", err)
		}
		bounties = append(bounties, *b)
	}

	return bounties, total, nil
}

// Update applies a partial update and the paired activity atomically
func (r *BountyRepository) Update(ctx context.Context, id uuid.UUID, update *domain.BountyUpdate, activity *domain.BountyActivity) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE bounties
			SET title = COALESCE($2, title),
			    description = COALESCE($3, description),
			    amount = COALESCE($4, amount),
			    updated_at = NOW()
			WHERE id = $1 AND deleted_at IS NULL
		`

		tag, err := tx.Exec(ctx, query, id, update.Title, update.Description, update.Amount)
		if err != nil {
			return fmt.Errorf("failed to update bounty: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("bounty")
		}

		return insertBountyActivity(ctx, tx, activity)
	})
}

// SoftDelete tombstones a bounty and records the deletion atomically
func (r *BountyRepository) SoftDelete(ctx context.Context, id uuid.UUID, activity *domain.BountyActivity) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE bounties
			SET deleted_at = NOW(), updated_at = NOW()
			WHERE id = $1 AND deleted_at IS NULL
		`

		tag, err := tx.Exec(ctx, query, id)
		if err != nil {
			return fmt.Errorf("failed to delete bounty: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("bounty")
		}

		return insertBountyActivity(ctx, tx, activity)
	})
}

// applyBudgetMove executes the budget side effect of a transition. Reserve
// fails with CONFLICT when the available balance cannot cover the amount.
func applyBudgetMove(ctx context.Context, tx pgx.Tx, workspaceID uuid.UUID, move domain.BudgetMove, amount int64) error {
	var query string
	switch move {
	case domain.MoveNone:
		return nil
	case domain.MoveReserve:
		query = `
			UPDATE workspace_budgets
			SET available = available - $2, reserved = reserved + $2, updated_at = NOW()
			WHERE workspace_id = $1 AND available >= $2
		`
	case domain.MoveRelease:
		query = `
			UPDATE workspace_budgets
			SET reserved = reserved - $2, available = available + $2, updated_at = NOW()
			WHERE workspace_id = $1 AND reserved >= $2
		`
	case domain.MovePay:
		query = `
			UPDATE workspace_budgets
			SET reserved = reserved - $2, paid = paid + $2, updated_at = NOW()
			WHERE workspace_id = $1 AND reserved >= $2
		`
	default:
		return fmt.Errorf("unknown budget move: %d", move)
	}

	tag, err := tx.Exec(ctx, query, workspaceID, amount)
	if err != nil {
		return fmt.Errorf("failed to apply budget move: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.Conflict("insufficient workspace budget")
	}
	return nil
}

// ApplyStatusChange persists a validated status transition: the bounty row,
// the budget move, the optional ledger entry and the audit row commit
// together. The bounty carries its post-transition field values.
func (r *BountyRepository) ApplyStatusChange(ctx context.Context, bounty *domain.Bounty, move domain.BudgetMove, ledger *domain.Transaction, activity *domain.BountyActivity) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE bounties
			SET status = $2,
			    assignee_pubkey = $3,
			    work_started_at = $4,
			    work_closed_at = $5,
			    completed_at = $6,
			    updated_at = NOW()
			WHERE id = $1 AND deleted_at IS NULL
		`

		tag, err := tx.Exec(ctx, query,
			bounty.ID, bounty.Status, bounty.AssigneePubkey,
			bounty.WorkStartedAt, bounty.WorkClosedAt, bounty.CompletedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to update bounty status: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("bounty")
		}

		if err := applyBudgetMove(ctx, tx, bounty.WorkspaceID, move, bounty.Amount); err != nil {
			return err
		}

		if ledger != nil {
			if err := insertTransaction(ctx, tx, ledger); err != nil {
				return err
			}
		}

		return insertBountyActivity(ctx, tx, activity)
	})
}

// CreateRequest inserts a work request and the paired activity atomically
func (r *BountyRepository) CreateRequest(ctx context.Context, request *domain.BountyRequest, activity *domain.BountyActivity) error {
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO bounty_requests (id, bounty_id, applicant_pubkey, message, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		if _, err := tx.Exec(ctx, query,
			request.ID, request.BountyID, request.ApplicantPubkey,
			request.Message, request.Status, request.CreatedAt, request.UpdatedAt,
		); err != nil {
			return err
		}

		return insertBountyActivity(ctx, tx, activity)
	})
	if err != nil {
		return apperr.FromPostgres(err, "work request")
	}
	return nil
}

// GetRequest retrieves a work request by ID
func (r *BountyRepository) GetRequest(ctx context.Context, id uuid.UUID) (*domain.BountyRequest, error) {
	query := `
		SELECT id, bounty_id, applicant_pubkey, message, status, created_at, updated_at
		FROM bounty_requests
		WHERE id = $1
	`

	var req domain.BountyRequest
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.BountyID, &req.ApplicantPubkey,
		&req.Message, &req.Status, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	return &req, nil
}

// HasPendingRequest checks whether the applicant already has a pending
// request on the bounty
func (r *BountyRepository) HasPendingRequest(ctx context.Context, bountyID uuid.UUID, pubkey string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bounty_requests
			WHERE bounty_id = $1 AND applicant_pubkey = $2 AND status = $3
		)
	`

	var exists bool
	err := r.db.Pool.QueryRow(ctx, query, bountyID, pubkey, domain.RequestPending).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check pending request: %w", err)
	}
	return exists, nil
}

// ListRequests retrieves all work requests on a bounty, newest first
func (r *BountyRepository) ListRequests(ctx context.Context, bountyID uuid.UUID) ([]domain.BountyRequest, error) {
	query := `
		SELECT id, bounty_id, applicant_pubkey, message, status, created_at, updated_at
		FROM bounty_requests
		WHERE bounty_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, bountyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.BountyRequest
	for rows.Next() {
		var req domain.BountyRequest
		if err := rows.Scan(
			&req.ID, &req.BountyID, &req.ApplicantPubkey,
			&req.Message, &req.Status, &req.CreatedAt, &req.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, nil
}

// ApproveRequest approves a work request and assigns the bounty atomically:
// the request flips to APPROVED, pending sibling requests are rejected, the
// bounty takes the OPEN -> ASSIGNED transition with its reservation, and the
// audit row is written.
func (r *BountyRepository) ApproveRequest(ctx context.Context, request *domain.BountyRequest, bounty *domain.Bounty, activity *domain.BountyActivity) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		approve := `
			UPDATE bounty_requests
			SET status = $2, updated_at = NOW()
			WHERE id = $1 AND status = $3
		`
		tag, err := tx.Exec(ctx, approve, request.ID, domain.RequestApproved, domain.RequestPending)
		if err != nil {
			return fmt.Errorf("failed to approve request: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.Conflict("work request is no longer pending")
		}

		rejectSiblings := `
			UPDATE bounty_requests
			SET status = $3, updated_at = NOW()
			WHERE bounty_id = $1 AND id <> $2 AND status = $4
		`
		if _, err := tx.Exec(ctx, rejectSiblings,
			request.BountyID, request.ID, domain.RequestRejected, domain.RequestPending,
		); err != nil {
			return fmt.Errorf("failed to reject sibling requests: %w", err)
		}

		assign := `
			UPDATE bounties
			SET status = $2, assignee_pubkey = $3, work_started_at = $4, updated_at = NOW()
			WHERE id = $1 AND deleted_at IS NULL
		`
		tag, err = tx.Exec(ctx, assign, bounty.ID, bounty.Status, bounty.AssigneePubkey, bounty.WorkStartedAt)
		if err != nil {
			return fmt.Errorf("failed to assign bounty: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("bounty")
		}

		if err := applyBudgetMove(ctx, tx, bounty.WorkspaceID, domain.MoveReserve, bounty.Amount); err != nil {
			return err
		}

		return insertBountyActivity(ctx, tx, activity)
	})
}

// UpdateRequestStatus updates a request's status and records the review
func (r *BountyRepository) UpdateRequestStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus, activity *domain.BountyActivity) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE bounty_requests
			SET status = $2, updated_at = NOW()
			WHERE id = $1 AND status = $3
		`

		tag, err := tx.Exec(ctx, query, id, status, domain.RequestPending)
		if err != nil {
			return fmt.Errorf("failed to update request: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.Conflict("work request is no longer pending")
		}

		return insertBountyActivity(ctx, tx, activity)
	})
}

// CreateProof inserts a proof and moves the bounty to IN_REVIEW atomically.
// The bounty carries the post-transition status.
func (r *BountyRepository) CreateProof(ctx context.Context, proof *domain.BountyProof, bounty *domain.Bounty, activity *domain.BountyActivity) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO bounty_proofs (id, bounty_id, submitter_pubkey, description, proof_url, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		if _, err := tx.Exec(ctx, query,
			proof.ID, proof.BountyID, proof.SubmitterPubkey,
			proof.Description, proof.ProofURL, proof.Status,
			proof.CreatedAt, proof.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert proof: %w", err)
		}

		update := `
			UPDATE bounties
			SET status = $2, work_closed_at = $3, updated_at = NOW()
			WHERE id = $1 AND deleted_at IS NULL
		`
		tag, err := tx.Exec(ctx, update, bounty.ID, bounty.Status, bounty.WorkClosedAt)
		if err != nil {
			return fmt.Errorf("failed to update bounty status: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("bounty")
		}

		return insertBountyActivity(ctx, tx, activity)
	})
}

// GetProof retrieves a proof by ID
func (r *BountyRepository) GetProof(ctx context.Context, id uuid.UUID) (*domain.BountyProof, error) {
	query := `
		SELECT id, bounty_id, submitter_pubkey, description, proof_url, status, created_at, updated_at
		FROM bounty_proofs
		WHERE id = $1
	`

	var proof domain.BountyProof
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&proof.ID, &proof.BountyID, &proof.SubmitterPubkey,
		&proof.Description, &proof.ProofURL, &proof.Status,
		&proof.CreatedAt, &proof.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get proof: %w", err)
	}

	return &proof, nil
}

// ListProofs retrieves all proofs on a bounty, newest first
func (r *BountyRepository) ListProofs(ctx context.Context, bountyID uuid.UUID) ([]domain.BountyProof, error) {
	query := `
		SELECT id, bounty_id, submitter_pubkey, description, proof_url, status, created_at, updated_at
		FROM bounty_proofs
		WHERE bounty_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, bountyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list proofs: %w", err)
	}
	defer rows.Close()

	var proofs []domain.BountyProof
	for rows.Next() {
		var proof domain.BountyProof
		if err := rows.Scan(
			&proof.ID, &proof.BountyID, &proof.SubmitterPubkey,
			&proof.Description, &proof.ProofURL, &proof.Status,
			&proof.CreatedAt, &proof.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan proof: %w", err)
		}
		proofs = append(proofs, proof)
	}

	return proofs, nil
}

// UpdateProofStatus records a review decision and its audit row atomically
func (r *BountyRepository) UpdateProofStatus(ctx context.Context, id uuid.UUID, status domain.ProofStatus, activity *domain.BountyActivity) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE bounty_proofs
			SET status = $2, updated_at = NOW()
			WHERE id = $1
		`

		tag, err := tx.Exec(ctx, query, id, status)
		if err != nil {
			return fmt.Errorf("failed to update proof: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("proof")
		}

		return insertBountyActivity(ctx, tx, activity)
	})
}

// DeleteProof removes a proof and records the deletion atomically
func (r *BountyRepository) DeleteProof(ctx context.Context, id uuid.UUID, activity *domain.BountyActivity) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `DELETE FROM bounty_proofs WHERE id = $1`

		tag, err := tx.Exec(ctx, query, id)
		if err != nil {
			return fmt.Errorf("failed to delete proof: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound("proof")
		}

		return insertBountyActivity(ctx, tx, activity)
	})
}

// CreateComment inserts a comment and the paired activity atomically
func (r *BountyRepository) CreateComment(ctx context.Context, comment *domain.BountyComment, activity *domain.BountyActivity) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO bounty_comments (id, bounty_id, author_pubkey, content, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		if _, err := tx.Exec(ctx, query,
			comment.ID, comment.BountyID, comment.AuthorPubkey,
			comment.Content, comment.CreatedAt, comment.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert comment: %w", err)
		}

		return insertBountyActivity(ctx, tx, activity)
	})
}

// GetComment retrieves a comment by ID
func (r *BountyRepository) GetComment(ctx context.Context, id uuid.UUID) (*domain.BountyComment, error) {
	query := `
		SELECT id, bounty_id, author_pubkey, content, created_at, updated_at
		FROM bounty_comments
		WHERE id = $1
	`

	var comment domain.BountyComment
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&comment.ID, &comment.BountyID, &comment.AuthorPubkey,
		&comment.Content, &comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return &comment, nil
}

// ListComments retrieves a page of comments on a bounty, oldest first
func (r *BountyRepository) ListComments(ctx context.Context, bountyID uuid.UUID, page domain.PageParams) ([]domain.BountyComment, int64, error) {
	countQuery := `SELECT COUNT(*) FROM bounty_comments WHERE bounty_id = $1`

	var total int64
	if err := r.db.Pool.QueryRow(ctx, countQuery, bountyID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	query := `
		SELECT id, bounty_id, author_pubkey, content, created_at, updated_at
		FROM bounty_comments
		WHERE bounty_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool.Query(ctx, query, bountyID, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.BountyComment
	for rows.Next() {
		var comment domain.BountyComment
		if err := rows.Scan(
			&comment.ID, &comment.BountyID, &comment.AuthorPubkey,
			&comment.Content, &comment.CreatedAt, &comment.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}

	return comments, total, nil
}

// DeleteComment removes a comment
func (r *BountyRepository) DeleteComment(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM bounty_comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("comment")
	}
	return nil
}

// ListActivities retrieves a page of bounty audit rows, newest first
func (r *BountyRepository) ListActivities(ctx context.Context, bountyID uuid.UUID, page domain.PageParams) ([]domain.BountyActivity, int64, error) {
	countQuery := `SELECT COUNT(*) FROM bounty_activities WHERE bounty_id = $1`

	var total int64
	if err := r.db.Pool.QueryRow(ctx, countQuery, bountyID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}

	query := `
		SELECT id, bounty_id, actor_pubkey, action, details, created_at
		FROM bounty_activities
		WHERE bounty_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool.Query(ctx, query, bountyID, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []domain.BountyActivity
	for rows.Next() {
		var a domain.BountyActivity
		var details []byte
		if err := rows.Scan(&a.ID, &a.BountyID, &a.ActorPubkey, &a.Action, &details, &a.CreatedAt); err != nil {
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

// CountActiveAssignments counts ASSIGNED or IN_REVIEW bounties held by a
// user, used to block account deletion while work is in flight
func (r *BountyRepository) CountActiveAssignments(ctx context.Context, pubkey string) (int64, error) {
	query := `
		SELECT COUNT(*) FROM bounties
		WHERE assignee_pubkey = $1 AND status IN ($2, $3) AND deleted_at IS NULL
	`

	var count int64
	if err := r.db.Pool.QueryRow(ctx, query, pubkey, domain.StatusAssigned, domain.StatusInReview).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active assignments: %w", err)
	}
	return count, nil
}
