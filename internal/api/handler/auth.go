package handler

import (
	"net/http"

	"github.com/satsworks/bounties/internal/api/response"
	"github.com/satsworks/bounties/internal/domain"
	"github.com/satsworks/bounties/internal/service"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Challenge issues a single-use login challenge
func (h *AuthHandler) Challenge(w http.ResponseWriter, r *http.Request) {
	challenge, err := h.authService.Challenge(r.Context())
	if err != nil {
		response.Err(w, err)
		return
	}

	response.OK(w, challenge)
}

// Verify checks a signed challenge and issues a token pair
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var input domain.AuthVerify
	if !decode(w, r, &input) {
		return
	}

	tokens, err := h.authService.Verify(r.Context(), input)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.OK(w, tokens)
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var input struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}
	if !decode(w, r, &input) {
		return
	}

	tokens, err := h.authService.Refresh(r.Context(), input.RefreshToken)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.OK(w, tokens)
}
