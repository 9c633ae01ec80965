package dto

import (
	"context"
	"time"

	"github.com/chainvoice/chainvoice/internal/ai"
	"github.com/chainvoice/chainvoice/internal/domain/invoice"
	ierr "github.com/chainvoice/chainvoice/internal/errors"
	"github.com/chainvoice/chainvoice/internal/types"
	"github.com/chainvoice/chainvoice/internal/validator"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest is the payload for creating an invoice
type CreateInvoiceRequest struct {
	ClientName       string                     `json:"client_name" validate:"required"`
	ClientEmail      string                     `json:"client_email" validate:"required,email"`
	ClientAddress    string                     `json:"client_address"`
	Items            []CreateInvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes            string                     `json:"notes"`
	Terms            string                     `json:"terms"`
	DueDate          time.Time                  `json:"due_date" validate:"required"`
	Status           types.InvoiceStatus        `json:"status"`
	PaymentAddress   string                     `json:"payment_address"`
	PaymentTokenType string                     `json:"payment_token_type"`
}

// CreateInvoiceItemRequest is a single line item on an invoice request
type CreateInvoiceItemRequest struct {
	Description string          `json:"description" validate:"required"`
	Quantity    int64           `json:"quantity" validate:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

func (r *CreateInvoiceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	for _, item := range r.Items {
		if item.UnitPrice.IsNegative() {
			return ierr.NewError("invalid item unit price").
				WithHint("Unit price must be at least 0").
				Mark(ierr.ErrValidation)
		}
		if item.Amount.IsNegative() {
			return ierr.NewError("invalid item amount").
				WithHint("Amount must be at least 0").
				Mark(ierr.ErrValidation)
		}
	}

	// Status is optional; only draft or pending make sense at creation time
	if r.Status != "" && r.Status != types.InvoiceStatusDraft && r.Status != types.InvoiceStatusPending {
		return ierr.NewError("invalid initial invoice status").
			WithHint("New invoices can only be draft or pending").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToInvoice builds the domain invoice with generated id, number, derived
// total and the owner id taken from the request context.
func (r *CreateInvoiceRequest) ToInvoice(ctx context.Context, now time.Time) *invoice.Invoice {
	items := make(invoice.Items, len(r.Items))
	for i, item := range r.Items {
		items[i] = invoice.Item{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_ITEM),
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}

	status := r.Status
	if status == "" {
		status = types.InvoiceStatusPending
	}

	tokenType := r.PaymentTokenType
	if tokenType == "" {
		tokenType = types.DefaultTokenType
	}

	return &invoice.Invoice{
		ID:               types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		Number:           invoice.GenerateNumber(now),
		ClientName:       r.ClientName,
		ClientEmail:      r.ClientEmail,
		ClientAddress:    r.ClientAddress,
		Items:            items,
		Notes:            r.Notes,
		Terms:            r.Terms,
		DueDate:          r.DueDate,
		Status:           status,
		TotalAmount:      invoice.TotalOf(items),
		PaymentAddress:   r.PaymentAddress,
		PaymentTokenType: tokenType,
		UserID:           types.GetUserID(ctx),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// UpdateInvoiceStatusRequest moves an invoice to a new lifecycle status
type UpdateInvoiceStatusRequest struct {
	Status types.InvoiceStatus `json:"status" validate:"required"`
}

func (r *UpdateInvoiceStatusRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.Status.Validate(); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid invoice status").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// MarkInvoicePaidRequest settles an invoice with the on-chain hash
type MarkInvoicePaidRequest struct {
	TransactionHash string `json:"transaction_hash" validate:"required"`
}

func (r *MarkInvoicePaidRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// GenerateInvoiceRequest asks the AI drafter for an invoice draft
type GenerateInvoiceRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

func (r *GenerateInvoiceRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// InvoiceResponse is the API representation of an invoice
type InvoiceResponse struct {
	*invoice.Invoice
}

// NewInvoiceResponse wraps a domain invoice for the API
func NewInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	return &InvoiceResponse{Invoice: inv}
}

// ListInvoicesResponse is the listing envelope
type ListInvoicesResponse struct {
	Items []*InvoiceResponse `json:"items"`
	Total int                `json:"total"`
}

// DraftInvoiceResponse carries an AI-generated draft back to the caller
type DraftInvoiceResponse struct {
	Draft *ai.DraftInvoice `json:"draft"`
}
