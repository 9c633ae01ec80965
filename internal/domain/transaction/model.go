package transaction

import (
	"time"

	ierr "github.com/chainvoice/chainvoice/internal/errors"
	"github.com/chainvoice/chainvoice/internal/types"
	"github.com/shopspring/decimal"
)

// Transaction represents a recorded blockchain payment claim. The hash is
// trusted as submitted by the caller, nothing is verified against a chain.
type Transaction struct {
	// Unique identifier for this transaction record
	ID string `db:"id" json:"id"`
	// Value transferred, in the token's native unit
	Amount decimal.Decimal `db:"amount" json:"amount"`
	// Token the transfer was denominated in
	TokenType string `db:"token_type" json:"token_type"`
	// Address the payment originated from
	FromAddress string `db:"from_address" json:"from_address"`
	// Address the payment was sent to
	ToAddress string `db:"to_address" json:"to_address"`
	// Blockchain transaction hash, opaque claim string
	Hash string `db:"hash" json:"hash"`
	// Current status, confirmed immediately on creation in the happy path
	Status types.TransactionStatus `db:"status" json:"status"`
	// Block the transaction was mined in (optional)
	BlockNumber *int64 `db:"block_number" json:"block_number,omitempty"`
	// Weak reference to the invoice this payment settles (optional);
	// the invoice may be deleted later, leaving this dangling
	InvoiceID string `db:"invoice_id" json:"invoice_id,omitempty"`
	// Free-form description (optional)
	Description string `db:"description" json:"description,omitempty"`
	// Chain identifier the transaction was submitted on
	NetworkID int64 `db:"network_id" json:"network_id"`
	// Owner of the record
	UserID string `db:"user_id" json:"user_id"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Validate validates the transaction
func (t *Transaction) Validate() error {
	if t.Amount.IsNegative() {
		return ierr.NewError("invalid amount").
			WithHint("Amount must be at least 0").
			Mark(ierr.ErrValidation)
	}
	if t.TokenType == "" {
		return ierr.NewError("token type is required").
			WithHint("Token type is required").
			Mark(ierr.ErrValidation)
	}
	if t.FromAddress == "" {
		return ierr.NewError("from address is required").
			WithHint("From address is required").
			Mark(ierr.ErrValidation)
	}
	if t.ToAddress == "" {
		return ierr.NewError("to address is required").
			WithHint("To address is required").
			Mark(ierr.ErrValidation)
	}
	if t.Hash == "" {
		return ierr.NewError("transaction hash is required").
			WithHint("Transaction hash is required").
			Mark(ierr.ErrValidation)
	}
	if t.NetworkID <= 0 {
		return ierr.NewError("invalid network id").
			WithHint("Network ID must be a positive chain id").
			Mark(ierr.ErrValidation)
	}
	if err := t.Status.Validate(); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid transaction status").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TableName returns the table name for the transaction
func (t *Transaction) TableName() string {
	return "transactions"
}
