package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/satsworks/bounties/internal/api/middleware"
	"github.com/satsworks/bounties/internal/api/response"
	"github.com/satsworks/bounties/internal/domain"
	"github.com/satsworks/bounties/internal/service"
)

// UserHandler handles profile endpoints
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me returns the authenticated user's profile
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	user, err := h.userService.Get(r.Context(), pubkey)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.OK(w, user)
}

// Get returns a user profile by pubkey
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	pubkey := chi.URLParam(r, "pubkey")
	if pubkey == "" {
		response.BadRequest(w, "missing pubkey")
		return
	}

	user, err := h.userService.Get(r.Context(), pubkey)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.OK(w, user)
}

// Update applies a partial update to the authenticated user's profile
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.UserUpdate
	if !decode(w, r, &input) {
		return
	}

	user, err := h.userService.Update(r.Context(), pubkey, input)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.OK(w, user)
}

// Delete tombstones the authenticated user's account
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	if err := h.userService.Delete(r.Context(), pubkey); err != nil {
		response.Err(w, err)
		return
	}

	response.NoContent(w)
}
