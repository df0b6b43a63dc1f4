package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/satsworks/bounties/internal/apperr"
	"github.com/satsworks/bounties/internal/domain"
)

// BountyService handles the bounty lifecycle: creation, table-driven status
// transitions, work requests, proofs and comments.
type BountyService struct {
	bountyRepo    BountyRepository
	workspaceRepo WorkspaceRepository
}

// NewBountyService creates a new bounty service
func NewBountyService(bountyRepo BountyRepository, workspaceRepo WorkspaceRepository) *BountyService {
	return &BountyService{bountyRepo: bountyRepo, workspaceRepo: workspaceRepo}
}

// Create creates a DRAFT bounty; requires ADMIN or above
func (s *BountyService) Create(ctx context.Context, actor string, workspaceID uuid.UUID, input domain.BountyCreate) (*domain.Bounty, error) {
	member, err := requireMember(ctx, s.workspaceRepo, workspaceID, actor)
	if err != nil {
		return nil, err
	}
	if err := requireRole(member, domain.RoleAdmin); err != nil {
		return nil, err
	}

	now := time.Now()
	bounty := &domain.Bounty{
		ID:            uuid.New(),
		WorkspaceID:   workspaceID,
		Title:         input.Title,
		Description:   input.Description,
		Amount:        input.Amount,
		Status:        domain.StatusDraft,
		CreatorPubkey: actor,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	activity := newBountyActivity(bounty.ID, actor, domain.ActionBountyCreated, map[string]any{
		"title":  bounty.Title,
		"amount": bounty.Amount,
	})

	if err := s.bountyRepo.Create(ctx, bounty, activity); err != nil {
		return nil, err
	}

	return bounty, nil
}

// getForMember loads a bounty and verifies the caller belongs to its
// workspace. Non-members get NOT_FOUND.
func (s *BountyService) getForMember(ctx context.Context, actor string, bountyID uuid.UUID) (*domain.Bounty, *domain.WorkspaceMember, error) {
	bounty, err := s.bountyRepo.GetByID(ctx, bountyID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get bounty: %w", err)
	}
	if bounty == nil {
		return nil, nil, apperr.NotFound("bounty")
	}

	member, err := requireMember(ctx, s.workspaceRepo, bounty.WorkspaceID, actor)
	if err != nil {
		return nil, nil, apperr.NotFound("bounty")
	}

	return bounty, member, nil
}

// Get retrieves a bounty visible to the caller
func (s *BountyService) Get(ctx context.Context, actor string, bountyID uuid.UUID) (*domain.Bounty, error) {
	bounty, _, err := s.getForMember(ctx, actor, bountyID)
	return bounty, err
}

// List retrieves a page of a workspace's bounties
func (s *BountyService) List(ctx context.Context, actor string, workspaceID uuid.UUID, status *domain.BountyStatus, page domain.PageParams) ([]domain.Bounty, domain.PageMeta, error) {
	if _, err := requireMember(ctx, s.workspaceRepo, workspaceID, actor); err != nil {
		return nil, domain.PageMeta{}, err
	}

	bounties, total, err := s.bountyRepo.ListByWorkspace(ctx, workspaceID, status, page)
	if err != nil {
		return nil, domain.PageMeta{}, fmt.Errorf("failed to list bounties: %w", err)
	}
	return bounties, domain.NewPageMeta(page, total), nil
}

// Update applies a partial update; creator or ADMIN and above
func (s *BountyService) Update(ctx context.Context, actor string, bountyID uuid.UUID, input domain.BountyUpdate) (*domain.Bounty, error) {
	bounty, member, err := s.getForMember(ctx, actor, bountyID)
	if err != nil {
		return nil, err
	}
	if bounty.CreatorPubkey != actor && !member.Role.AtLeast(domain.RoleAdmin) {
		return nil, apperr.Forbidden("only the creator or an admin may update this bounty")
	}
	if input.Amount != nil && bounty.Status != domain.StatusDraft && bounty.Status != domain.StatusOpen {
		return nil, apperr.BadRequest("amount can only change before work is assigned")
	}

	activity := newBountyActivity(bountyID, actor, domain.ActionBountyUpdated, nil)
	if err := s.bountyRepo.Update(ctx, bountyID, &input, activity); err != nil {
		return nil, err
	}

	return s.bountyRepo.GetByID(ctx, bountyID)
}

// Delete tombstones a bounty; creator or OWNER, and only while no work is
// in flight
func (s *BountyService) Delete(ctx context.Context, actor string, bountyID uuid.UUID) error {
	bounty, member, err := s.getForMember(ctx, actor, bountyID)
	if err != nil {
		return err
	}
	if bounty.CreatorPubkey != actor && member.Role != domain.RoleOwner {
		return apperr.Forbidden("only the creator or the workspace owner may delete this bounty")
	}
	if !bounty.Status.Deletable() {
		return apperr.Newf(apperr.CodeBadRequest, "bounty in status %s cannot be deleted", bounty.Status)
	}

	activity := newBountyActivity(bountyID, actor, domain.ActionBountyDeleted, map[string]any{
		"status": bounty.Status,
	})
	return s.bountyRepo.SoftDelete(ctx, bountyID, activity)
}

// ChangeStatus moves a bounty through the transition table. The budget side
// effects and, for payment, the ledger entry ride the same transaction as
// the status update and its audit row.
func (s *BountyService) ChangeStatus(ctx context.Context, actor string, bountyID uuid.UUID, input domain.BountyStatusUpdate) (*domain.Bounty, error) {
	bounty, member, err := s.getForMember(ctx, actor, bountyID)
	if err != nil {
		return nil, err
	}
	if bounty.CreatorPubkey != actor && !member.Role.AtLeast(domain.RoleAdmin) {
		return nil, apperr.Forbidden("only the creator or an admin may change bounty status")
	}

	from, to := bounty.Status, input.Status
	if !domain.CanTransition(from, to) {
		return nil, apperr.Newf(apperr.CodeBadRequest, "illegal status transition from %s to %s", from, to).
			WithDetails(map[string]any{"from": from, "to": to})
	}
	if to == domain.StatusAssigned && bounty.AssigneePubkey == nil {
		return nil, apperr.BadRequest("assignment happens through an approved work request")
	}

	now := time.Now()
	updated := *bounty
	updated.Status = to

	switch to {
	case domain.StatusOpen:
		// Returning from ASSIGNED releases the assignee along with the
		// reservation.
		updated.AssigneePubkey = nil
		updated.WorkStartedAt = nil
		updated.WorkClosedAt = nil
	case domain.StatusInReview:
		updated.WorkClosedAt = &now
	case domain.StatusAssigned:
		// IN_REVIEW -> ASSIGNED reopens work for the same assignee.
		updated.WorkClosedAt = nil
	case domain.StatusCompleted:
		updated.CompletedAt = &now
	case domain.StatusCancelled:
		if bounty.WorkClosedAt == nil && bounty.WorkStartedAt != nil {
			updated.WorkClosedAt = &now
		}
	}

	move := domain.TransitionBudgetMove(from, to)

	var ledger *domain.Transaction
	if move == domain.MovePay {
		bountyID := bounty.ID
		ledger = &domain.Transaction{
			ID:          uuid.New(),
			WorkspaceID: bounty.WorkspaceID,
			BountyID:    &bountyID,
			Type:        domain.TxPayment,
			Status:      domain.TxCompleted,
			Amount:      bounty.Amount,
			Memo:        fmt.Sprintf("payment for bounty %q", bounty.Title),
			CreatedAt:   now,
		}
	}

	action := domain.ActionStatusChanged
	details := map[string]any{
		"old_status": from,
		"new_status": to,
	}
	if to == domain.StatusPaid {
		action = domain.ActionBountyPaid
		details["amount"] = bounty.Amount
	}
	activity := newBountyActivity(bountyID, actor, action, details)

	if err := s.bountyRepo.ApplyStatusChange(ctx, &updated, move, ledger, activity); err != nil {
		return nil, err
	}

	return &updated, nil
}

// RequestWork submits a work request against an OPEN bounty; requires
// CONTRIBUTOR or above
func (s *BountyService) RequestWork(ctx context.Context, actor string, bountyID uuid.UUID, input domain.BountyRequestCreate) (*domain.BountyRequest, error) {
	bounty, member, err := s.getForMember(ctx, actor, bountyID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(member, domain.RoleContributor); err != nil {
		return nil, err
	}
	if bounty.Status != domain.StatusOpen {
		return nil, apperr.Newf(apperr.CodeBadRequest, "bounty in status %s does not accept work requests", bounty.Status)
	}

	pending, err := s.bountyRepo.HasPendingRequest(ctx, bountyID, actor)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending request: %w", err)
	}
	if pending {
		return nil, apperr.Conflict("a pending work request already exists")
	}

	now := time.Now()
	request := &domain.BountyRequest{
		ID:              uuid.New(),
		BountyID:        bountyID,
		ApplicantPubkey: actor,
		Message:         input.Message,
		Status:          domain.RequestPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	activity := newBountyActivity(bountyID, actor, domain.ActionRequestSubmitted, nil)
	if err := s.bountyRepo.CreateRequest(ctx, request, activity); err != nil {
		return nil, err
	}

	return request, nil
}

// ListRequests retrieves all work requests on a bounty
func (s *BountyService) ListRequests(ctx context.Context, actor string, bountyID uuid.UUID) ([]domain.BountyRequest, error) {
	if _, _, err := s.getForMember(ctx, actor, bountyID); err != nil {
		return nil, err
	}
	return s.bountyRepo.ListRequests(ctx, bountyID)
}

// ApproveRequest approves a pending work request and assigns the bounty to
// the applicant through the OPEN -> ASSIGNED transition; requires ADMIN or
// above
func (s *BountyService) ApproveRequest(ctx context.Context, actor string, requestID uuid.UUID) (*domain.Bounty, error) {
	request, err := s.bountyRepo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	if request == nil {
		return nil, apperr.NotFound("work request")
	}

	bounty, member, err := s.getForMember(ctx, actor, request.BountyID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(member, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if request.Status != domain.RequestPending {
		return nil, apperr.Conflict("work request has already been reviewed")
	}
	if !domain.CanTransition(bounty.Status, domain.StatusAssigned) {
		return nil, apperr.Newf(apperr.CodeBadRequest, "illegal status transition from %s to %s", bounty.Status, domain.StatusAssigned)
	}

	now := time.Now()
	updated := *bounty
	updated.Status = domain.StatusAssigned
	updated.AssigneePubkey = &request.ApplicantPubkey
	updated.WorkStartedAt = &now

	activity := newBountyActivity(bounty.ID, actor, domain.ActionRequestReviewed, map[string]any{
		"request_id": request.ID,
		"decision":   domain.RequestApproved,
		"old_status": bounty.Status,
		"new_status": domain.StatusAssigned,
	})

	if err := s.bountyRepo.ApproveRequest(ctx, request, &updated, activity); err != nil {
		return nil, err
	}

	return &updated, nil
}

// RejectRequest rejects a pending work request; requires ADMIN or above
func (s *BountyService) RejectRequest(ctx context.Context, actor string, requestID uuid.UUID) error {
	request, err := s.bountyRepo.GetRequest(ctx, requestID)
	if err != nil {
		return fmt.Errorf("failed to get request: %w", err)
	}
	if request == nil {
		return apperr.NotFound("work request")
	}

	_, member, err := s.getForMember(ctx, actor, request.BountyID)
	if err != nil {
		return err
	}
	if err := requireRole(member, domain.RoleAdmin); err != nil {
		return err
	}

	activity := newBountyActivity(request.BountyID, actor, domain.ActionRequestReviewed, map[string]any{
		"request_id": request.ID,
		"decision":   domain.RequestRejected,
	})

	return s.bountyRepo.UpdateRequestStatus(ctx, requestID, domain.RequestRejected, activity)
}

// SubmitProof records proof of work from the assignee and moves the bounty
// to IN_REVIEW through the transition table
func (s *BountyService) SubmitProof(ctx context.Context, actor string, bountyID uuid.UUID, input domain.BountyProofCreate) (*domain.BountyProof, error) {
	bounty, _, err := s.getForMember(ctx, actor, bountyID)
	if err != nil {
		return nil, err
	}
	if bounty.AssigneePubkey == nil || *bounty.AssigneePubkey != actor {
		return nil, apperr.Forbidden("only the assignee may submit proof of work")
	}
	if bounty.Status != domain.StatusAssigned {
		return nil, apperr.Newf(apperr.CodeForbidden, "proof cannot be submitted while the bounty is %s", bounty.Status)
	}
	if !domain.CanTransition(bounty.Status, domain.StatusInReview) {
		return nil, apperr.Newf(apperr.CodeBadRequest, "illegal status transition from %s to %s", bounty.Status, domain.StatusInReview)
	}

	now := time.Now()
	proof := &domain.BountyProof{
		ID:              uuid.New(),
		BountyID:        bountyID,
		SubmitterPubkey: actor,
		Description:     input.Description,
		ProofURL:        input.ProofURL,
		Status:          domain.ProofPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	updated := *bounty
	updated.Status = domain.StatusInReview
	updated.WorkClosedAt = &now

	activity := newBountyActivity(bountyID, actor, domain.ActionProofSubmitted, map[string]any{
		"proof_id":   proof.ID,
		"old_status": bounty.Status,
		"new_status": domain.StatusInReview,
	})

	if err := s.bountyRepo.CreateProof(ctx, proof, &updated, activity); err != nil {
		return nil, err
	}

	return proof, nil
}

// ListProofs retrieves all proofs on a bounty
func (s *BountyService) ListProofs(ctx context.Context, actor string, bountyID uuid.UUID) ([]domain.BountyProof, error) {
	if _, _, err := s.getForMember(ctx, actor, bountyID); err != nil {
		return nil, err
	}
	return s.bountyRepo.ListProofs(ctx, bountyID)
}

// ReviewProof records a review decision; requires ADMIN or above
func (s *BountyService) ReviewProof(ctx context.Context, actor string, proofID uuid.UUID, input domain.BountyProofReview) (*domain.BountyProof, error) {
	proof, err := s.bountyRepo.GetProof(ctx, proofID)
	if err != nil {
		return nil, fmt.Errorf("failed to get proof: %w", err)
	}
	if proof == nil {
		return nil, apperr.NotFound("proof")
	}

	_, member, err := s.getForMember(ctx, actor, proof.BountyID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(member, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if proof.Status == domain.ProofAccepted {
		return nil, apperr.Conflict("proof has already been accepted")
	}

	activity := newBountyActivity(proof.BountyID, actor, domain.ActionProofReviewed, map[string]any{
		"proof_id": proof.ID,
		"decision": input.Status,
	})

	if err := s.bountyRepo.UpdateProofStatus(ctx, proofID, input.Status, activity); err != nil {
		return nil, err
	}

	proof.Status = input.Status
	return proof, nil
}

// DeleteProof removes a proof: the submitter while it is not ACCEPTED, or
// the workspace OWNER at any time
func (s *BountyService) DeleteProof(ctx context.Context, actor string, proofID uuid.UUID) error {
	proof, err := s.bountyRepo.GetProof(ctx, proofID)
	if err != nil {
		return fmt.Errorf("failed to get proof: %w", err)
	}
	if proof == nil {
		return apperr.NotFound("proof")
	}

	_, member, err := s.getForMember(ctx, actor, proof.BountyID)
	if err != nil {
		return err
	}

	isSubmitter := proof.SubmitterPubkey == actor && proof.Status != domain.ProofAccepted
	isOwner := member.Role == domain.RoleOwner
	if !isSubmitter && !isOwner {
		return apperr.Forbidden("only the submitter or the workspace owner may delete this proof")
	}

	activity := newBountyActivity(proof.BountyID, actor, domain.ActionProofDeleted, map[string]any{
		"proof_id": proof.ID,
	})
	return s.bountyRepo.DeleteProof(ctx, proofID, activity)
}

// AddComment adds a comment to a bounty; any member may comment
func (s *BountyService) AddComment(ctx context.Context, actor string, bountyID uuid.UUID, input domain.BountyCommentCreate) (*domain.BountyComment, error) {
	if _, _, err := s.getForMember(ctx, actor, bountyID); err != nil {
		return nil, err
	}

	now := time.Now()
	comment := &domain.BountyComment{
		ID:           uuid.New(),
		BountyID:     bountyID,
		AuthorPubkey: actor,
		Content:      input.Content,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	activity := newBountyActivity(bountyID, actor, domain.ActionCommentAdded, nil)
	if err := s.bountyRepo.CreateComment(ctx, comment, activity); err != nil {
		return nil, err
	}

	return comment, nil
}

// ListComments retrieves a page of comments on a bounty
func (s *BountyService) ListComments(ctx context.Context, actor string, bountyID uuid.UUID, page domain.PageParams) ([]domain.BountyComment, domain.PageMeta, error) {
	if _, _, err := s.getForMember(ctx, actor, bountyID); err != nil {
		return nil, domain.PageMeta{}, err
	}

	comments, total, err := s.bountyRepo.ListComments(ctx, bountyID, page)
	if err != nil {
		return nil, domain.PageMeta{}, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, domain.NewPageMeta(page, total), nil
}

// DeleteComment removes a comment; author or ADMIN and above
func (s *BountyService) DeleteComment(ctx context.Context, actor string, commentID uuid.UUID) error {
	comment, err := s.bountyRepo.GetComment(ctx, commentID)
	if err != nil {
		return fmt.Errorf("failed to get comment: %w", err)
	}
	if comment == nil {
		return apperr.NotFound("comment")
	}

	_, member, err := s.getForMember(ctx, actor, comment.BountyID)
	if err != nil {
		return err
	}
	if comment.AuthorPubkey != actor && !member.Role.AtLeast(domain.RoleAdmin) {
		return apperr.Forbidden("only the author or an admin may delete this comment")
	}

	return s.bountyRepo.DeleteComment(ctx, commentID)
}

// ListActivities retrieves a page of the bounty audit log
func (s *BountyService) ListActivities(ctx context.Context, actor string, bountyID uuid.UUID, page domain.PageParams) ([]domain.BountyActivity, domain.PageMeta, error) {
	if _, _, err := s.getForMember(ctx, actor, bountyID); err != nil {
		return nil, domain.PageMeta{}, err
	}

	activities, total, err := s.bountyRepo.ListActivities(ctx, bountyID, page)
	if err != nil {
		return nil, domain.PageMeta{}, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, domain.NewPageMeta(page, total), nil
}

func newBountyActivity(bountyID uuid.UUID, actor string, action domain.ActivityAction, details map[string]any) *domain.BountyActivity {
	return &domain.BountyActivity{
		ID:          uuid.New(),
		BountyID:    bountyID,
		ActorPubkey: actor,
		Action:      action,
		Details:     details,
		CreatedAt:   time.Now(),
	}
}
