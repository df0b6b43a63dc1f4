package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TxDeposit    TransactionType = "DEPOSIT"
	TxWithdrawal TransactionType = "WITHDRAWAL"
	TxPayment    TransactionType = "PAYMENT"
	TxRefund     TransactionType = "REFUND"
)

// TransactionStatus is the settlement state of a ledger entry.
type TransactionStatus string

const (
	TxPending   TransactionStatus = "PENDING"
	TxCompleted TransactionStatus = "COMPLETED"
	TxFailed    TransactionStatus = "FAILED"
	TxExpired   TransactionStatus = "EXPIRED"
)

// Transaction is a satoshi ledger entry tied to a workspace and optionally
// to a bounty.
type Transaction struct {
	ID          uuid.UUID         `json:"id"`
	WorkspaceID uuid.UUID         `json:"workspace_id"`
	BountyID    *uuid.UUID        `json:"bounty_id,omitempty"`
	Type        TransactionType   `json:"type"`
	Status      TransactionStatus `json:"status"`
	Amount      int64             `json:"amount"`
	Memo        string            `json:"memo,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}
