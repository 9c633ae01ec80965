package service

import (
	"context"
	"fmt"

	"github.com/chainvoice/chainvoice/internal/api/dto"
	ierr "github.com/chainvoice/chainvoice/internal/errors"
	"github.com/chainvoice/chainvoice/internal/types"
)

// PaymentService reconciles user-submitted payment claims with invoices.
// Settling a claim is two writes with no shared transaction: the claim row
// first, then the invoice update. ReconcilePendingInvoices repairs the gap
// when the second write was lost.
type PaymentService interface {
	InitiatePayment(ctx context.Context, req dto.InitiatePaymentRequest) (*dto.InitiatePaymentResponse, error)
	ValidatePayment(ctx context.Context, req dto.ValidatePaymentRequest) (*dto.ValidatePaymentResponse, error)
	ReconcilePendingInvoices(ctx context.Context) (*dto.ReconcilePaymentsResponse, error)
}

type paymentService struct {
	ServiceParams
}

// NewPaymentService creates a new payment service
func NewPaymentService(params ServiceParams) PaymentService {
	return &paymentService{
		ServiceParams: params,
	}
}

// InitiatePayment records a confirmed transaction for the claim and marks
// the invoice paid. Duplicate claims for the same hash are not rejected,
// each submission creates its own transaction row.
func (s *paymentService) InitiatePayment(ctx context.Context, req dto.InitiatePaymentRequest) (*dto.InitiatePaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.Get(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}

	tokenType := inv.PaymentTokenType
	if tokenType == "" {
		tokenType = types.DefaultTokenType
	}

	transactionService := NewTransactionService(s.ServiceParams)
	txn, err := transactionService.CreateTransaction(ctx, dto.CreateTransactionRequest{
		Amount:      inv.TotalAmount,
		TokenType:   tokenType,
		FromAddress: req.FromAddress,
		ToAddress:   inv.PaymentAddress,
		Hash:        req.Hash,
		Status:      types.TransactionStatusConfirmed,
		InvoiceID:   inv.ID,
		Description: fmt.Sprintf("Payment for invoice %s", inv.Number),
		NetworkID:   req.NetworkID,
	})
	if err != nil {
		return nil, err
	}

	// CreateTransaction settles the referenced invoice as part of the same
	// call; verify it landed and surface a partial state when it did not.
	updated, err := s.InvoiceRepo.Get(ctx, inv.ID)
	if err != nil || updated.Status != types.InvoiceStatusPaid {
		s.Logger.Errorw("payment recorded but invoice not settled",
			"transaction_id", txn.ID,
			"invoice_id", inv.ID,
		)
		return nil, ierr.NewError("failed to record payment").
			WithHint("Payment transaction was recorded but the invoice could not be marked paid").
			WithReportableDetails(map[string]any{
				"transaction_id": txn.ID,
				"invoice_id":     inv.ID,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	s.Logger.Infow("payment reconciled",
		"transaction_id", txn.ID,
		"invoice_id", inv.ID,
		"hash", req.Hash,
		"network_id", req.NetworkID,
	)

	return &dto.InitiatePaymentResponse{
		TransactionID: txn.ID,
		InvoiceID:     inv.ID,
		Success:       true,
	}, nil
}

// ValidatePayment is a simulated verification: it only checks that the
// invoice exists. The submitted hash is never verified on chain.
func (s *paymentService) ValidatePayment(ctx context.Context, req dto.ValidatePaymentRequest) (*dto.ValidatePaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.InvoiceRepo.Get(ctx, req.InvoiceID); err != nil {
		if ierr.IsNotFound(err) {
			return &dto.ValidatePaymentResponse{
				Valid:   false,
				Message: "invoice not found",
			}, nil
		}
		return nil, err
	}

	return &dto.ValidatePaymentResponse{
		Valid:   true,
		Message: "payment accepted",
	}, nil
}

// ReconcilePendingInvoices sweeps confirmed transactions that reference an
// invoice and re-applies the settlement when the invoice is not paid yet.
// Returns how many invoices were repaired.
func (s *paymentService) ReconcilePendingInvoices(ctx context.Context) (*dto.ReconcilePaymentsResponse, error) {
	txns, err := s.TransactionRepo.List(ctx, &types.TransactionFilter{
		UserID: types.GetUserID(ctx),
		Status: []types.TransactionStatus{types.TransactionStatusConfirmed},
	})
	if err != nil {
		return nil, err
	}

	invoiceService := NewInvoiceService(s.ServiceParams)
	repaired := 0
	for _, txn := range txns {
		if txn.InvoiceID == "" {
			continue
		}

		inv, err := s.InvoiceRepo.Get(ctx, txn.InvoiceID)
		if err != nil {
			// Orphaned reference, the invoice was deleted after the claim
			if ierr.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		if inv.Status == types.InvoiceStatusPaid {
			continue
		}

		if _, err := invoiceService.MarkInvoiceAsPaid(ctx, inv.ID, txn.Hash); err != nil {
			s.Logger.Errorw("failed to repair invoice during reconciliation",
				"error", err,
				"invoice_id", inv.ID,
				"transaction_id", txn.ID,
			)
			continue
		}

		s.Logger.Infow("repaired unsettled invoice",
			"invoice_id", inv.ID,
			"transaction_id", txn.ID,
		)
		repaired++
	}

	return &dto.ReconcilePaymentsResponse{Repaired: repaired}, nil
}
