package service

import (
	"context"
	"testing"
	"time"

	"github.com/chainvoice/chainvoice/internal/ai"
	"github.com/chainvoice/chainvoice/internal/api/dto"
	"github.com/chainvoice/chainvoice/internal/domain/invoice"
	ierr "github.com/chainvoice/chainvoice/internal/errors"
	"github.com/chainvoice/chainvoice/internal/testutil"
	"github.com/chainvoice/chainvoice/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// lostSettlementInvoiceRepo drops the invoice settlement write, leaving the
// claim row without its paid invoice.
type lostSettlementInvoiceRepo struct {
	invoice.Repository
}

func (r *lostSettlementInvoiceRepo) MarkPaid(ctx context.Context, id string, paidAt time.Time, transactionHash string) error {
	return ierr.NewError("write lost").
		WithHint("Failed to mark invoice as paid").
		Mark(ierr.ErrDatabase)
}

type PaymentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service        PaymentService
	invoiceService InvoiceService
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceSuite))
}

func (s *PaymentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := ServiceParams{
		Logger:          s.GetLogger(),
		Config:          s.GetConfig(),
		Cache:           s.GetCache(),
		InvoiceRepo:     s.GetStores().InvoiceRepo,
		TransactionRepo: s.GetStores().TransactionRepo,
		PDFGenerator:    s.GetPDFGenerator(),
		Telegram:        s.GetTelegram(),
		Email:           s.GetEmail(),
		AI:              ai.NewGenerator(s.GetConfig(), s.GetLogger()),
	}
	s.service = NewPaymentService(params)
	s.invoiceService = NewInvoiceService(params)
}

func (s *PaymentServiceSuite) createInvoice() *dto.InvoiceResponse {
	resp, err := s.invoiceService.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		ClientName:  "Acme Corp",
		ClientEmail: "billing@acme.test",
		Items: []dto.CreateInvoiceItemRequest{
			{
				Description: "Consulting",
				Quantity:    4,
				UnitPrice:   decimal.NewFromInt(125),
				Amount:      decimal.NewFromInt(500),
			},
		},
		DueDate:        s.GetNow().AddDate(0, 0, 30),
		PaymentAddress: "0xaaaa567890abcdef1234567890abcdef12345678",
	})
	s.Require().NoError(err)
	return resp
}

func (s *PaymentServiceSuite) TestInitiatePayment() {
	inv := s.createInvoice()

	resp, err := s.service.InitiatePayment(s.GetContext(), dto.InitiatePaymentRequest{
		InvoiceID:   inv.ID,
		FromAddress: "0xbbbb567890abcdef1234567890abcdef12345678",
		Hash:        "0xhash1",
		NetworkID:   1,
	})
	s.NoError(err)
	s.True(resp.Success)
	s.NotEmpty(resp.TransactionID)

	// Exactly one transaction, derived from the invoice
	txns, err := s.GetStores().TransactionRepo.List(s.GetContext(), &types.TransactionFilter{})
	s.NoError(err)
	s.Require().Len(txns, 1)
	s.True(txns[0].Amount.Equal(inv.TotalAmount))
	s.Equal(types.TransactionStatusConfirmed, txns[0].Status)
	s.Equal(inv.PaymentAddress, txns[0].ToAddress)
	s.Equal("Payment for invoice "+inv.Number, txns[0].Description)
	s.Equal(inv.ID, txns[0].InvoiceID)

	// Invoice settled with the claim hash
	updated, err := s.invoiceService.GetInvoice(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, updated.Status)
	s.NotNil(updated.PaidAt)
	s.Equal("0xhash1", updated.TransactionHash)
}

func (s *PaymentServiceSuite) TestInitiatePaymentValidation() {
	_, err := s.service.InitiatePayment(s.GetContext(), dto.InitiatePaymentRequest{
		InvoiceID:   "inv_1",
		FromAddress: "0xbbbb",
		Hash:        "0xhash",
		NetworkID:   0,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PaymentServiceSuite) TestInitiatePaymentMissingInvoice() {
	_, err := s.service.InitiatePayment(s.GetContext(), dto.InitiatePaymentRequest{
		InvoiceID:   "inv_missing",
		FromAddress: "0xbbbb567890abcdef1234567890abcdef12345678",
		Hash:        "0xhash1",
		NetworkID:   1,
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))

	// Nothing was written
	txns, err := s.GetStores().TransactionRepo.List(s.GetContext(), &types.TransactionFilter{})
	s.NoError(err)
	s.Empty(txns)
}

func (s *PaymentServiceSuite) TestInitiatePaymentSurfacesUnsettledInvoice() {
	inv := s.createInvoice()

	failing := NewPaymentService(ServiceParams{
		Logger:          s.GetLogger(),
		Config:          s.GetConfig(),
		Cache:           s.GetCache(),
		InvoiceRepo:     &lostSettlementInvoiceRepo{Repository: s.GetStores().InvoiceRepo},
		TransactionRepo: s.GetStores().TransactionRepo,
		PDFGenerator:    s.GetPDFGenerator(),
		Telegram:        s.GetTelegram(),
		Email:           s.GetEmail(),
		AI:              ai.NewGenerator(s.GetConfig(), s.GetLogger()),
	})

	_, err := failing.InitiatePayment(s.GetContext(), dto.InitiatePaymentRequest{
		InvoiceID:   inv.ID,
		FromAddress: "0xbbbb567890abcdef1234567890abcdef12345678",
		Hash:        "0xhash1",
		NetworkID:   1,
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
	s.Contains(err.Error(), "failed to record payment")

	// The claim row stands even though the settlement was lost
	txns, listErr := s.GetStores().TransactionRepo.List(s.GetContext(), &types.TransactionFilter{})
	s.NoError(listErr)
	s.Require().Len(txns, 1)
	s.Equal(inv.ID, txns[0].InvoiceID)

	updated, getErr := s.invoiceService.GetInvoice(s.GetContext(), inv.ID)
	s.NoError(getErr)
	s.Equal(types.InvoiceStatusPending, updated.Status)
}

func (s *PaymentServiceSuite) TestDuplicateClaimsCreateTwoRows() {
	inv := s.createInvoice()

	req := dto.InitiatePaymentRequest{
		InvoiceID:   inv.ID,
		FromAddress: "0xbbbb567890abcdef1234567890abcdef12345678",
		Hash:        "0xhash1",
		NetworkID:   1,
	}

	_, err := s.service.InitiatePayment(s.GetContext(), req)
	s.NoError(err)
	_, err = s.service.InitiatePayment(s.GetContext(), req)
	s.NoError(err)

	txns, err := s.GetStores().TransactionRepo.List(s.GetContext(), &types.TransactionFilter{})
	s.NoError(err)
	s.Len(txns, 2)
}

func (s *PaymentServiceSuite) TestValidatePayment() {
	inv := s.createInvoice()

	resp, err := s.service.ValidatePayment(s.GetContext(), dto.ValidatePaymentRequest{
		InvoiceID: inv.ID,
		Hash:      "0xhash1",
	})
	s.NoError(err)
	s.True(resp.Valid)

	resp, err = s.service.ValidatePayment(s.GetContext(), dto.ValidatePaymentRequest{
		InvoiceID: "inv_missing",
		Hash:      "0xhash1",
	})
	s.NoError(err)
	s.False(resp.Valid)
}

func (s *PaymentServiceSuite) TestReconcilePendingInvoices() {
	inv := s.createInvoice()

	// A confirmed claim whose invoice settlement was lost
	err := s.GetStores().TransactionRepo.Create(s.GetContext(), (&dto.CreateTransactionRequest{
		Amount:      inv.TotalAmount,
		FromAddress: "0xbbbb567890abcdef1234567890abcdef12345678",
		ToAddress:   inv.PaymentAddress,
		Hash:        "0xlosthash",
		Status:      types.TransactionStatusConfirmed,
		InvoiceID:   inv.ID,
		NetworkID:   1,
	}).ToTransaction(s.GetContext(), s.GetNow()))
	s.Require().NoError(err)

	resp, err := s.service.ReconcilePendingInvoices(s.GetContext())
	s.NoError(err)
	s.Equal(1, resp.Repaired)

	updated, err := s.invoiceService.GetInvoice(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, updated.Status)
	s.Equal("0xlosthash", updated.TransactionHash)

	// A second sweep finds nothing to repair
	resp, err = s.service.ReconcilePendingInvoices(s.GetContext())
	s.NoError(err)
	s.Equal(0, resp.Repaired)
}

func (s *PaymentServiceSuite) TestReconcileSkipsOrphanedClaims() {
	err := s.GetStores().TransactionRepo.Create(s.GetContext(), (&dto.CreateTransactionRequest{
		Amount:      decimal.NewFromInt(100),
		FromAddress: "0xbbbb567890abcdef1234567890abcdef12345678",
		ToAddress:   "0xaaaa567890abcdef1234567890abcdef12345678",
		Hash:        "0xorphan",
		Status:      types.TransactionStatusConfirmed,
		InvoiceID:   "inv_deleted",
		NetworkID:   1,
	}).ToTransaction(s.GetContext(), s.GetNow()))
	s.Require().NoError(err)

	resp, err := s.service.ReconcilePendingInvoices(s.GetContext())
	s.NoError(err)
	s.Equal(0, resp.Repaired)
}
