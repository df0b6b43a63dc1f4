package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/satsworks/bounties/internal/api/middleware"
	"github.com/satsworks/bounties/internal/api/response"
	"github.com/satsworks/bounties/internal/domain"
	"github.com/satsworks/bounties/internal/service"
)

// WorkspaceHandler handles workspace and membership endpoints
type WorkspaceHandler struct {
	workspaceService *service.WorkspaceService
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(workspaceService *service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

// Create handles workspace creation
func (h *WorkspaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.WorkspaceCreate
	if !decode(w, r, &input) {
		return
	}

	workspace, err := h.workspaceService.Create(r.Context(), pubkey, input)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Created(w, workspace)
}

// List handles listing the caller's workspaces
func (h *WorkspaceHandler) List(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workspaces, meta, err := h.workspaceService.List(r.Context(), pubkey, pageParams(r))
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Page(w, workspaces, meta)
}

// Get handles getting a workspace by ID
func (h *WorkspaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workspaceID, ok := uuidParam(w, r, "workspaceID")
	if !ok {
		return
	}

	workspace, err := h.workspaceService.Get(r.Context(), pubkey, workspaceID)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.OK(w, workspace)
}

// Update handles updating a workspace
func (h *WorkspaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workspaceID, ok := uuidParam(w, r, "workspaceID")
	if !ok {
		return
	}

	var input domain.WorkspaceUpdate
	if !decode(w, r, &input) {
		return
	}

	workspace, err := h.workspaceService.Update(r.Context(), pubkey, workspaceID, input)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.OK(w, workspace)
}

// Delete handles deleting a workspace
func (h *WorkspaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workspaceID, ok := uuidParam(w, r, "workspaceID")
	if !ok {
		return
	}

	if err := h.workspaceService.Delete(r.Context(), pubkey, workspaceID); err != nil {
		response.Err(w, err)
		return
	}

	response.NoContent(w)
}

// ListMembers handles listing workspace members
func (h *WorkspaceHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workspaceID, ok := uuidParam(w, r, "workspaceID")
	if !ok {
		return
	}

	members, err := h.workspaceService.ListMembers(r.Context(), pubkey, workspaceID)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.OK(w, members)
}

// AddMember handles adding a member to a workspace
func (h *WorkspaceHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workspaceID, ok := uuidParam(w, r, "workspaceID")
	if !ok {
		return
	}

	var input domain.MemberAdd
	if !decode(w, r, &input) {
		return
	}

	member, err := h.workspaceService.AddMember(r.Context(), pubkey, workspaceID, input)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Created(w, member)
}

// UpdateMemberRole handles changing a member's role
func (h *WorkspaceHandler) UpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workspaceID, ok := uuidParam(w, r, "workspaceID")
	if !ok {
		return
	}

	targetPubkey := chi.URLParam(r, "memberPubkey")
	if targetPubkey == "" {
		response.BadRequest(w, "missing member pubkey")
		return
	}

	var input domain.MemberRoleUpdate
	if !decode(w, r, &input) {
		return
	}

	if err := h.workspaceService.UpdateMemberRole(r.Context(), pubkey, workspaceID, targetPubkey, input); err != nil {
		response.Err(w, err)
		return
	}

	response.NoContent(w)
}

// RemoveMember handles removing a member from a workspace
func (h *WorkspaceHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workspaceID, ok := uuidParam(w, r, "workspaceID")
	if !ok {
		return
	}

	targetPubkey := chi.URLParam(r, "memberPubkey")
	if targetPubkey == "" {
		response.BadRequest(w, "missing member pubkey")
		return
	}

	if err := h.workspaceService.RemoveMember(r.Context(), pubkey, workspaceID, targetPubkey); err != nil {
		response.Err(w, err)
		return
	}

	response.NoContent(w)
}

// ListActivities handles listing the workspace audit log
func (h *WorkspaceHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workspaceID, ok := uuidParam(w, r, "workspaceID")
	if !ok {
		return
	}

	activities, meta, err := h.workspaceService.ListActivities(r.Context(), pubkey, workspaceID, pageParams(r))
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Page(w, activities, meta)
}
