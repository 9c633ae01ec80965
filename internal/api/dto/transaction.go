package dto

import (
	"context"
	"time"

	"github.com/chainvoice/chainvoice/internal/domain/transaction"
	ierr "github.com/chainvoice/chainvoice/internal/errors"
	"github.com/chainvoice/chainvoice/internal/types"
	"github.com/chainvoice/chainvoice/internal/validator"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the payload for recording a payment claim
type CreateTransactionRequest struct {
	Amount      decimal.Decimal         `json:"amount"`
	TokenType   string                  `json:"token_type"`
	FromAddress string                  `json:"from_address" validate:"required"`
	ToAddress   string                  `json:"to_address" validate:"required"`
	Hash        string                  `json:"hash" validate:"required"`
	Status      types.TransactionStatus `json:"status"`
	BlockNumber *int64                  `json:"block_number"`
	InvoiceID   string                  `json:"invoice_id"`
	Description string                  `json:"description"`
	NetworkID   int64                   `json:"network_id" validate:"required,gt=0"`
}

func (r *CreateTransactionRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Amount.IsNegative() {
		return ierr.NewError("invalid transaction amount").
			WithHint("Amount must be at least 0").
			Mark(ierr.ErrValidation)
	}
	if r.Status != "" {
		if err := r.Status.Validate(); err != nil {
			return ierr.WithError(err).
				WithHint("Invalid transaction status").
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// ToTransaction builds the domain transaction with generated id and the
// owner id taken from the request context. Status defaults to confirmed.
func (r *CreateTransactionRequest) ToTransaction(ctx context.Context, now time.Time) *transaction.Transaction {
	status := r.Status
	if status == "" {
		status = types.TransactionStatusConfirmed
	}

	tokenType := r.TokenType
	if tokenType == "" {
		tokenType = types.DefaultTokenType
	}

	return &transaction.Transaction{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TRANSACTION),
		Amount:      r.Amount,
		TokenType:   tokenType,
		FromAddress: r.FromAddress,
		ToAddress:   r.ToAddress,
		Hash:        r.Hash,
		Status:      status,
		BlockNumber: r.BlockNumber,
		InvoiceID:   r.InvoiceID,
		Description: r.Description,
		NetworkID:   r.NetworkID,
		UserID:      types.GetUserID(ctx),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdateTransactionStatusRequest moves a transaction to a new status
type UpdateTransactionStatusRequest struct {
	Status types.TransactionStatus `json:"status" validate:"required"`
}

func (r *UpdateTransactionStatusRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.Status.Validate(); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid transaction status").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TrackWalletTransactionRequest tracks an on-chain transaction by hash
type TrackWalletTransactionRequest struct {
	Hash      string `json:"hash" validate:"required"`
	NetworkID int64  `json:"network_id" validate:"required,gt=0"`
}

func (r *TrackWalletTransactionRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// TransactionResponse is the API representation of a transaction
type TransactionResponse struct {
	*transaction.Transaction
	NetworkName string `json:"network_name"`
}

// NewTransactionResponse wraps a domain transaction for the API
func NewTransactionResponse(txn *transaction.Transaction) *TransactionResponse {
	return &TransactionResponse{
		Transaction: txn,
		NetworkName: types.GetChainName(txn.NetworkID),
	}
}

// ListTransactionsResponse is the listing envelope
type ListTransactionsResponse struct {
	Items []*TransactionResponse `json:"items"`
	Total int                    `json:"total"`
}
