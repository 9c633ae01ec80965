package invoice

import (
	"database/sql/driver"
	"encoding/json"
	"net/mail"
	"time"

	ierr "github.com/chainvoice/chainvoice/internal/errors"
	"github.com/chainvoice/chainvoice/internal/types"
	"github.com/shopspring/decimal"
)

// Invoice represents an invoice issued to a client, payable on-chain
type Invoice struct {
	// Unique identifier for this invoice
	ID string `db:"id" json:"id"`
	// Human readable sequential number, e.g. INV-483920-017
	Number string `db:"number" json:"number"`
	// Name of the client being billed
	ClientName string `db:"client_name" json:"client_name"`
	// Email of the client being billed
	ClientEmail string `db:"client_email" json:"client_email"`
	// Postal address of the client (optional)
	ClientAddress string `db:"client_address" json:"client_address,omitempty"`
	// Line items billed on this invoice
	Items Items `db:"items" json:"items"`
	// Free-form notes shown on the invoice (optional)
	Notes string `db:"notes" json:"notes,omitempty"`
	// Payment terms shown on the invoice (optional)
	Terms string `db:"terms" json:"terms,omitempty"`
	// Date by which the invoice should be paid
	DueDate time.Time `db:"due_date" json:"due_date"`
	// Current lifecycle status
	Status types.InvoiceStatus `db:"status" json:"status"`
	// Sum of all item amounts
	TotalAmount decimal.Decimal `db:"total_amount" json:"total_amount"`
	// On-chain address payments should be sent to (optional)
	PaymentAddress string `db:"payment_address" json:"payment_address,omitempty"`
	// Token the invoice is payable in, defaults to ETH
	PaymentTokenType string `db:"payment_token_type" json:"payment_token_type,omitempty"`
	// When the invoice was paid (optional)
	PaidAt *time.Time `db:"paid_at" json:"paid_at,omitempty"`
	// Hash of the blockchain transaction that settled the invoice (optional)
	TransactionHash string `db:"transaction_hash" json:"transaction_hash,omitempty"`
	// Owner of the invoice
	UserID string `db:"user_id" json:"user_id"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Item represents a single line on an invoice, owned exclusively by it
type Item struct {
	// Unique within the parent invoice
	ID string `json:"id"`
	// What was delivered
	Description string `json:"description"`
	// Number of units, at least 1
	Quantity int64 `json:"quantity"`
	// Price per unit
	UnitPrice decimal.Decimal `json:"unit_price"`
	// Line total, quantity * unit price as submitted by the caller
	Amount decimal.Decimal `json:"amount"`
}

// Items is stored as a JSONB column
type Items []Item

func (i Items) Value() (driver.Value, error) {
	return json.Marshal(i)
}

func (i *Items) Scan(value interface{}) error {
	if value == nil {
		*i = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return ierr.NewError("unexpected type for invoice items column").
			Mark(ierr.ErrDatabase)
	}
	return json.Unmarshal(b, i)
}

// TotalOf sums the line amounts as submitted. The caller is trusted to keep
// amount == quantity * unit price, matching the reconciliation flow which
// never recomputes line totals.
func TotalOf(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}

// Validate validates the invoice
func (i *Invoice) Validate() error {
	if i.ClientName == "" {
		return ierr.NewError("client name is required").
			WithHint("Client name is required").
			Mark(ierr.ErrValidation)
	}
	if _, err := mail.ParseAddress(i.ClientEmail); err != nil {
		return ierr.NewError("invalid client email").
			WithHint("Invalid email address").
			Mark(ierr.ErrValidation)
	}
	if len(i.Items) == 0 {
		return ierr.NewError("invoice has no items").
			WithHint("At least one item is required").
			Mark(ierr.ErrValidation)
	}
	for _, item := range i.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	if i.DueDate.IsZero() {
		return ierr.NewError("due date is required").
			WithHint("Due date is required").
			Mark(ierr.ErrValidation)
	}
	if err := i.Status.Validate(); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid invoice status").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Validate validates a single invoice item
func (it *Item) Validate() error {
	if it.Description == "" {
		return ierr.NewError("item description is required").
			WithHint("Description is required").
			Mark(ierr.ErrValidation)
	}
	if it.Quantity < 1 {
		return ierr.NewError("invalid item quantity").
			WithHint("Quantity must be at least 1").
			Mark(ierr.ErrValidation)
	}
	if it.UnitPrice.IsNegative() {
		return ierr.NewError("invalid item unit price").
			WithHint("Unit price must be at least 0").
			Mark(ierr.ErrValidation)
	}
	if it.Amount.IsNegative() {
		return ierr.NewError("invalid item amount").
			WithHint("Amount must be at least 0").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsOverdue reports whether an unpaid invoice is past its due date at now.
// Overdue detection is caller-driven, there is no background job.
func (i *Invoice) IsOverdue(now time.Time) bool {
	return i.Status == types.InvoiceStatusPending && i.DueDate.Before(now)
}

// TableName returns the table name for the invoice
func (i *Invoice) TableName() string {
	return "invoices"
}
