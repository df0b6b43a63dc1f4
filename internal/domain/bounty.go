package domain

import (
	"time"

	"github.com/google/uuid"
)

// BountyStatus is a bounty lifecycle state.
type BountyStatus string

const (
	StatusDraft     BountyStatus = "DRAFT"
	StatusOpen      BountyStatus = "OPEN"
	StatusAssigned  BountyStatus = "ASSIGNED"
	StatusInReview  BountyStatus = "IN_REVIEW"
	StatusPaid      BountyStatus = "PAID"
	StatusCompleted BountyStatus = "COMPLETED"
	StatusCancelled BountyStatus = "CANCELLED"
)

// allowedTransitions is the single authority for bounty status changes.
// COMPLETED and CANCELLED are terminal. Proof submission takes the
// ASSIGNED -> IN_REVIEW edge through the same table as explicit updates.
var allowedTransitions = map[BountyStatus][]BountyStatus{
	StatusDraft:     {StatusOpen, StatusCancelled},
	StatusOpen:      {StatusAssigned, StatusCancelled},
	StatusAssigned:  {StatusOpen, StatusInReview, StatusCancelled},
	StatusInReview:  {StatusAssigned, StatusPaid, StatusCancelled},
	StatusPaid:      {StatusCompleted},
	StatusCompleted: {},
	StatusCancelled: {},
}

// Valid reports whether s is a known bounty status.
func (s BountyStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether a bounty may move from one status to another.
func CanTransition(from, to BountyStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// BudgetMove names the budget-side effect a status transition carries.
type BudgetMove int

const (
	// MoveNone leaves the workspace budget untouched.
	MoveNone BudgetMove = iota
	// MoveReserve moves the bounty amount from available to reserved.
	MoveReserve
	// MoveRelease returns a reservation to available.
	MoveRelease
	// MovePay settles a reservation into paid.
	MovePay
)

// TransitionBudgetMove returns the budget effect of a legal transition.
func TransitionBudgetMove(from, to BountyStatus) BudgetMove {
	switch {
	case from == StatusOpen && to == StatusAssigned:
		return MoveReserve
	case from == StatusAssigned && (to == StatusOpen || to == StatusCancelled):
		return MoveRelease
	case from == StatusInReview && to == StatusCancelled:
		return MoveRelease
	case from == StatusInReview && to == StatusPaid:
		return MovePay
	default:
		return MoveNone
	}
}

// deletableStatuses are the states in which a bounty carries no in-flight
// work and may be removed.
var deletableStatuses = map[BountyStatus]bool{
	StatusDraft:     true,
	StatusOpen:      true,
	StatusCancelled: true,
}

// Deletable reports whether a bounty in this status may be deleted.
func (s BountyStatus) Deletable() bool {
	return deletableStatuses[s]
}

// Bounty represents a unit of paid work inside a workspace
type Bounty struct {
	ID             uuid.UUID    `json:"id"`
	WorkspaceID    uuid.UUID    `json:"workspace_id"`
	Title          string       `json:"title"`
	Description    string       `json:"description,omitempty"`
	Amount         int64        `json:"amount"`
	Status         BountyStatus `json:"status"`
	CreatorPubkey  string       `json:"creator_pubkey"`
	AssigneePubkey *string      `json:"assignee_pubkey,omitempty"`
	WorkStartedAt  *time.Time   `json:"work_started_at,omitempty"`
	WorkClosedAt   *time.Time   `json:"work_closed_at,omitempty"`
	CompletedAt    *time.Time   `json:"completed_at,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	DeletedAt      *time.Time   `json:"-"`
}

// BountyCreate represents bounty creation data
type BountyCreate struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Description string `json:"description,omitempty" validate:"omitempty,max=10000"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
}

// BountyUpdate represents bounty update data
type BountyUpdate struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=10000"`
	Amount      *int64  `json:"amount,omitempty" validate:"omitempty,gt=0"`
}

// BountyStatusUpdate represents an explicit status change request
type BountyStatusUpdate struct {
	Status BountyStatus `json:"status" validate:"required,oneof=DRAFT OPEN ASSIGNED IN_REVIEW PAID COMPLETED CANCELLED"`
}

// RequestStatus is the state of a work request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

// BountyRequest is a member's application to work an open bounty
type BountyRequest struct {
	ID              uuid.UUID     `json:"id"`
	BountyID        uuid.UUID     `json:"bounty_id"`
	ApplicantPubkey string        `json:"applicant_pubkey"`
	Message         string        `json:"message,omitempty"`
	Status          RequestStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// BountyRequestCreate represents work request submission data
type BountyRequestCreate struct {
	Message string `json:"message,omitempty" validate:"omitempty,max=2000"`
}

// ProofStatus is the review state of a proof of work.
type ProofStatus string

const (
	ProofPending          ProofStatus = "PENDING"
	ProofAccepted         ProofStatus = "ACCEPTED"
	ProofRejected         ProofStatus = "REJECTED"
	ProofChangesRequested ProofStatus = "CHANGES_REQUESTED"
)

// BountyProof is evidence of completed work submitted by the assignee
type BountyProof struct {
	ID              uuid.UUID   `json:"id"`
	BountyID        uuid.UUID   `json:"bounty_id"`
	SubmitterPubkey string      `json:"submitter_pubkey"`
	Description     string      `json:"description"`
	ProofURL        string      `json:"proof_url,omitempty"`
	Status          ProofStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// BountyProofCreate represents proof submission data
type BountyProofCreate struct {
	Description string `json:"description" validate:"required,min=3,max=10000"`
	ProofURL    string `json:"proof_url,omitempty" validate:"omitempty,url,max=500"`
}

// BountyProofReview represents a proof review decision
type BountyProofReview struct {
	Status ProofStatus `json:"status" validate:"required,oneof=ACCEPTED REJECTED CHANGES_REQUESTED"`
}

// BountyComment is a discussion entry on a bounty
type BountyComment struct {
	ID           uuid.UUID `json:"id"`
	BountyID     uuid.UUID `json:"bounty_id"`
	AuthorPubkey string    `json:"author_pubkey"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BountyCommentCreate represents comment creation data
type BountyCommentCreate struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}
