package handler

import (
	"net/http"

	"github.com/satsworks/bounties/internal/api/middleware"
	"github.com/satsworks/bounties/internal/api/response"
	"github.com/satsworks/bounties/internal/domain"
	"github.com/satsworks/bounties/internal/service"
)

// BountyHandler handles bounty lifecycle endpoints
type BountyHandler struct {
	bountyService *service.BountyService
}

// NewBountyHandler creates a new bounty handler
func NewBountyHandler(bountyService *service.BountyService) *BountyHandler {
	return &BountyHandler{bountyService: bountyService}
}

// Create handles bounty creation
func (h *BountyHandler) Create(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workspaceID, ok := uuidParam(w, r, "workspaceID")
	if !ok {
		return
	}

	var input domain.BountyCreate
	if !decode(w, r, &input) {
		return
	}

	bounty, err := h.bountyService.Create(r.Context(), pubkey, workspaceID, input)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Created(w, bounty)
}

// List handles listing a workspace's bounties, optionally filtered by status
func (h *BountyHandler) List(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workspaceID, ok := uuidParam(w, r, "workspaceID")
	if !ok {
		return
	}

	var status *domain.BountyStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := domain.BountyStatus(raw)
		if !s.Valid() {
			response.BadRequest(w, "invalid status filter")
			return
		}
		status = &s
	}

	bounties, meta, err := h.bountyService.List(r.Context(), pubkey, workspaceID, status, pageParams(r))
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Page(w, bounties, meta)
}

// Get handles getting a bounty by ID
func (h *BountyHandler) Get(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	bountyID, ok := uuidParam(w, r, "bountyID")
	if !ok {
		return
	}

	bounty, err := h.bountyService.Get(r.Context(), pubkey, bountyID)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.OK(w, bounty)
}

// Update handles updating a bounty
func (h *BountyHandler) Update(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	bountyID, ok := uuidParam(w, r, "bountyID")
	if !ok {
		return
	}

	var input domain.BountyUpdate
	if !decode(w, r, &input) {
		return
	}

	bounty, err := h.bountyService.Update(r.Context(), pubkey, bountyID, input)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.OK(w, bounty)
}

// Delete handles deleting a bounty
func (h *BountyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	bountyID, ok := uuidParam(w, r, "bountyID")
	if !ok {
		return
	}

	if err := h.bountyService.Delete(r.Context(), pubkey, bountyID); err != nil {
		response.Err(w, err)
		return
	}

	response.NoContent(w)
}

// ChangeStatus handles status transitions
func (h *BountyHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	bountyID, ok := uuidParam(w, r, "bountyID")
	if !ok {
		return
	}

	var input domain.BountyStatusUpdate
	if !decode(w, r, &input) {
		return
	}

	bounty, err := h.bountyService.ChangeStatus(r.Context(), pubkey, bountyID, input)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.OK(w, bounty)
}

// RequestWork handles work request submission
func (h *BountyHandler) RequestWork(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	bountyID, ok := uuidParam(w, r, "bountyID")
	if !ok {
		return
	}

	var input domain.BountyRequestCreate
	if !decode(w, r, &input) {
		return
	}

	request, err := h.bountyService.RequestWork(r.Context(), pubkey, bountyID, input)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Created(w, request)
}

// ListRequests handles listing work requests on a bounty
func (h *BountyHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	bountyID, ok := uuidParam(w, r, "bountyID")
	if !ok {
		return
	}

	requests, err := h.bountyService.ListRequests(r.Context(), pubkey, bountyID)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.OK(w, requests)
}

// ApproveRequest handles approving a work request
func (h *BountyHandler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	requestID, ok := uuidParam(w, r, "requestID")
	if !ok {
		return
	}

	bounty, err := h.bountyService.ApproveRequest(r.Context(), pubkey, requestID)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.OK(w, bounty)
}

// RejectRequest handles rejecting a work request
func (h *BountyHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	requestID, ok := uuidParam(w, r, "requestID")
	if !ok {
		return
	}

	if err := h.bountyService.RejectRequest(r.Context(), pubkey, requestID); err != nil {
		response.Err(w, err)
		return
	}

	response.NoContent(w)
}

// SubmitProof handles proof of work submission
func (h *BountyHandler) SubmitProof(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	bountyID, ok := uuidParam(w, r, "bountyID")
	if !ok {
		return
	}

	var input domain.BountyProofCreate
	if !decode(w, r, &input) {
		return
	}

	proof, err := h.bountyService.SubmitProof(r.Context(), pubkey, bountyID, input)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Created(w, proof)
}

// ListProofs handles listing proofs on a bounty
func (h *BountyHandler) ListProofs(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	bountyID, ok := uuidParam(w, r, "bountyID")
	if !ok {
		return
	}

	proofs, err := h.bountyService.ListProofs(r.Context(), pubkey, bountyID)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.OK(w, proofs)
}

// ReviewProof handles a proof review decision
func (h *BountyHandler) ReviewProof(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	proofID, ok := uuidParam(w, r, "proofID")
	if !ok {
		return
	}

	var input domain.BountyProofReview
	if !decode(w, r, &input) {
		return
	}

	proof, err := h.bountyService.ReviewProof(r.Context(), pubkey, proofID, input)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.OK(w, proof)
}

// DeleteProof handles proof deletion
func (h *BountyHandler) DeleteProof(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	proofID, ok := uuidParam(w, r, "proofID")
	if !ok {
		return
	}

	if err := h.bountyService.DeleteProof(r.Context(), pubkey, proofID); err != nil {
		response.Err(w, err)
		return
	}

	response.NoContent(w)
}

// AddComment handles adding a comment to a bounty
func (h *BountyHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	bountyID, ok := uuidParam(w, r, "bountyID")
	if !ok {
		return
	}

	var input domain.BountyCommentCreate
	if !decode(w, r, &input) {
		return
	}

	comment, err := h.bountyService.AddComment(r.Context(), pubkey, bountyID, input)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Created(w, comment)
}

// ListComments handles listing comments on a bounty
func (h *BountyHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	bountyID, ok := uuidParam(w, r, "bountyID")
	if !ok {
		return
	}

	comments, meta, err := h.bountyService.ListComments(r.Context(), pubkey, bountyID, pageParams(r))
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Page(w, comments, meta)
}

// DeleteComment handles comment deletion
func (h *BountyHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	commentID, ok := uuidParam(w, r, "commentID")
	if !ok {
		return
	}

	if err := h.bountyService.DeleteComment(r.Context(), pubkey, commentID); err != nil {
		response.Err(w, err)
		return
	}

	response.NoContent(w)
}

// ListActivities handles listing the bounty audit log
func (h *BountyHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	bountyID, ok := uuidParam(w, r, "bountyID")
	if !ok {
		return
	}

	activities, meta, err := h.bountyService.ListActivities(r.Context(), pubkey, bountyID, pageParams(r))
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Page(w, activities, meta)
}
