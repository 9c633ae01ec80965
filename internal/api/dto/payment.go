package dto

import (
	"github.com/chainvoice/chainvoice/internal/validator"
)

// InitiatePaymentRequest is a user-submitted payment claim against an invoice
type InitiatePaymentRequest struct {
	InvoiceID   string `json:"invoice_id" validate:"required"`
	FromAddress string `json:"from_address" validate:"required"`
	Hash        string `json:"hash" validate:"required"`
	NetworkID   int64  `json:"network_id" validate:"required,gt=0"`
}

func (r *InitiatePaymentRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// InitiatePaymentResponse reports the recorded payment
type InitiatePaymentResponse struct {
	TransactionID string `json:"transaction_id"`
	InvoiceID     string `json:"invoice_id"`
	Success       bool   `json:"success"`
}

// ValidatePaymentRequest asks for a (simulated) payment verification
type ValidatePaymentRequest struct {
	InvoiceID string `json:"invoice_id" validate:"required"`
	Hash      string `json:"hash" validate:"required"`
}

func (r *ValidatePaymentRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ValidatePaymentResponse reports the verification outcome
type ValidatePaymentResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// ReconcilePaymentsResponse reports how many invoices the sweep repaired
type ReconcilePaymentsResponse struct {
	Repaired int `json:"repaired"`
}
