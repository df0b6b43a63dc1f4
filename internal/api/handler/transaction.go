package handler

import (
	"net/http"

	"github.com/satsworks/bounties/internal/api/middleware"
	"github.com/satsworks/bounties/internal/api/response"
	"github.com/satsworks/bounties/internal/domain"
	"github.com/satsworks/bounties/internal/service"
)

// BudgetHandler handles budget and ledger endpoints
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// GetBudget returns the workspace budget balances
func (h *BudgetHandler) GetBudget(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workspaceID, ok := uuidParam(w, r, "workspaceID")
	if !ok {
		return
	}

	budget, err := h.budgetService.GetBudget(r.Context(), pubkey, workspaceID)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.OK(w, budget)
}

// Deposit credits the workspace budget
func (h *BudgetHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workspaceID, ok := uuidParam(w, r, "workspaceID")
	if !ok {
		return
	}

	var input domain.BudgetChange
	if !decode(w, r, &input) {
		return
	}

	tx, err := h.budgetService.Deposit(r.Context(), pubkey, workspaceID, input)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Created(w, tx)
}

// Withdraw debits the available workspace budget
func (h *BudgetHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workspaceID, ok := uuidParam(w, r, "workspaceID")
	if !ok {
		return
	}

	var input domain.BudgetChange
	if !decode(w, r, &input) {
		return
	}

	tx, err := h.budgetService.Withdraw(r.Context(), pubkey, workspaceID, input)
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Created(w, tx)
}

// ListTransactions returns a page of the workspace ledger
func (h *BudgetHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	pubkey, ok := middleware.GetPubkey(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workspaceID, ok := uuidParam(w, r, "workspaceID")
	if !ok {
		return
	}

	transactions, meta, err := h.budgetService.List(r.Context(), pubkey, workspaceID, pageParams(r))
	if err != nil {
		response.Err(w, err)
		return
	}

	response.Page(w, transactions, meta)
}
