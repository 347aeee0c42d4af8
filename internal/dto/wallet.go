package dto

import (
	"time"

	"github.com/citycable/cable_collect_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TopUpRequest credits a subscriber's wallet with collected cash.
type TopUpRequest struct {
	UserID      string          `json:"userID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// TransferRequest moves balance between two wallets.
type TransferRequest struct {
	FromUserID string          `json:"fromUserID" binding:"required"`
	ToUserID   string          `json:"toUserID" binding:"required,nefield=FromUserID"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

// WalletBalanceResponse reports the cached balance.
type WalletBalanceResponse struct {
	UserID  string          `json:"userID"`
	Balance decimal.Decimal `json:"balance"`
}

// WalletTransactionResponse defines the data returned for a ledger entry.
type WalletTransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	Amount        decimal.Decimal `json:"amount"`
	Direction     string          `json:"direction"`
	BalanceBefore decimal.Decimal `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	ReferenceID   string          `json:"referenceID"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ListWalletTransactionsParams holds pagination parameters for the statement.
type ListWalletTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListWalletTransactionsResponse is a page of the wallet statement.
type ListWalletTransactionsResponse struct {
	Transactions []WalletTransactionResponse `json:"transactions"`
	NextToken    *string                     `json:"nextToken,omitempty"`
}

// ToWalletTransactionResponse converts a domain WalletTransaction to its DTO.
func ToWalletTransactionResponse(t *domain.WalletTransaction) WalletTransactionResponse {
	return WalletTransactionResponse{
		TransactionID: t.TransactionID,
		Amount:        t.Amount,
		Direction:     string(t.Direction),
		BalanceBefore: t.BalanceBefore,
		BalanceAfter:  t.BalanceAfter,
		ReferenceID:   t.ReferenceID,
		Description:   t.Description,
		CreatedAt:     t.CreatedAt,
	}
}

// ToWalletTransactionResponses converts a slice of ledger entries to DTOs.
func ToWalletTransactionResponses(ts []domain.WalletTransaction) []WalletTransactionResponse {
	responses := make([]WalletTransactionResponse, len(ts))
	for i := range ts {
		responses[i] = ToWalletTransactionResponse(&ts[i])
	}
	return responses
}
