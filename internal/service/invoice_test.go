package service

import (
	"testing"
	"time"

	"github.com/chainvoice/chainvoice/internal/ai"
	"github.com/chainvoice/chainvoice/internal/api/dto"
	ierr "github.com/chainvoice/chainvoice/internal/errors"
	"github.com/chainvoice/chainvoice/internal/testutil"
	"github.com/chainvoice/chainvoice/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service InvoiceService
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewInvoiceService(s.serviceParams())
}

func (s *InvoiceServiceSuite) serviceParams() ServiceParams {
	return ServiceParams{
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
}

func (s *InvoiceServiceSuite) newCreateRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		ClientName:  "Acme Corp",
		ClientEmail: "billing@acme.test",
		Items: []dto.CreateInvoiceItemRequest{
			{
				Description: "Design work",
				Quantity:    2,
				UnitPrice:   decimal.NewFromInt(150),
				Amount:      decimal.NewFromInt(300),
			},
			{
				Description: "Hosting",
				Quantity:    1,
				UnitPrice:   decimal.NewFromInt(50),
				Amount:      decimal.NewFromInt(50),
			},
		},
		DueDate:        s.GetNow().AddDate(0, 0, 14),
		PaymentAddress: "0x1234567890abcdef1234567890abcdef12345678",
	}
}

func (s *InvoiceServiceSuite) TestCreateInvoice() {
	resp, err := s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
	s.NoError(err)
	s.NotEmpty(resp.ID)
	s.Contains(resp.ID, "inv_")
	s.Regexp(`^INV-\d{6}-\d{3}$`, resp.Number)
	s.Equal(types.InvoiceStatusPending, resp.Status)
	s.True(resp.TotalAmount.Equal(decimal.NewFromInt(350)))
	s.Equal(types.DefaultTokenType, resp.PaymentTokenType)
	s.Equal(types.DefaultUserID, resp.UserID)
	s.Nil(resp.PaidAt)
	s.Empty(resp.TransactionHash)
	s.Len(resp.Items, 2)
	for _, item := range resp.Items {
		s.NotEmpty(item.ID)
	}
}

func (s *InvoiceServiceSuite) TestCreateInvoiceAsDraft() {
	req := s.newCreateRequest()
	req.Status = types.InvoiceStatusDraft

	resp, err := s.service.CreateInvoice(s.GetContext(), req)
	s.NoError(err)
	s.Equal(types.InvoiceStatusDraft, resp.Status)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceValidation() {
	testCases := []struct {
		name   string
		mutate func(req *dto.CreateInvoiceRequest)
	}{
		{
			name:   "missing client name",
			mutate: func(req *dto.CreateInvoiceRequest) { req.ClientName = "" },
		},
		{
			name:   "invalid client email",
			mutate: func(req *dto.CreateInvoiceRequest) { req.ClientEmail = "not-an-email" },
		},
		{
			name:   "no items",
			mutate: func(req *dto.CreateInvoiceRequest) { req.Items = nil },
		},
		{
			name:   "zero quantity",
			mutate: func(req *dto.CreateInvoiceRequest) { req.Items[0].Quantity = 0 },
		},
		{
			name: "negative unit price",
			mutate: func(req *dto.CreateInvoiceRequest) {
				req.Items[0].UnitPrice = decimal.NewFromInt(-1)
			},
		},
		{
			name:   "missing due date",
			mutate: func(req *dto.CreateInvoiceRequest) { req.DueDate = time.Time{} },
		},
		{
			name:   "paid as initial status",
			mutate: func(req *dto.CreateInvoiceRequest) { req.Status = types.InvoiceStatusPaid },
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			req := s.newCreateRequest()
			tc.mutate(&req)

			_, err := s.service.CreateInvoice(s.GetContext(), req)
			s.Error(err)
			s.True(ierr.IsValidation(err))
		})
	}
}

func (s *InvoiceServiceSuite) TestGetInvoiceNotFound() {
	_, err := s.service.GetInvoice(s.GetContext(), "inv_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestListInvoicesFiltersByStatus() {
	_, err := s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
	s.NoError(err)

	draft := s.newCreateRequest()
	draft.Status = types.InvoiceStatusDraft
	_, err = s.service.CreateInvoice(s.GetContext(), draft)
	s.NoError(err)

	resp, err := s.service.ListInvoices(s.GetContext(), &types.InvoiceFilter{
		Status: []types.InvoiceStatus{types.InvoiceStatusDraft},
	})
	s.NoError(err)
	s.Equal(1, resp.Total)
	s.Equal(types.InvoiceStatusDraft, resp.Items[0].Status)
}

func (s *InvoiceServiceSuite) TestListInvoicesCacheInvalidation() {
	resp, err := s.service.ListInvoices(s.GetContext(), nil)
	s.NoError(err)
	s.Equal(0, resp.Total)

	// A create after a cached empty listing must refresh the listing
	_, err = s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
	s.NoError(err)

	resp, err = s.service.ListInvoices(s.GetContext(), nil)
	s.NoError(err)
	s.Equal(1, resp.Total)
}

func (s *InvoiceServiceSuite) TestUpdateInvoiceStatusPermissiveTransitions() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
	s.NoError(err)

	// No transition is rejected, including leaving a terminal status
	updated, err := s.service.UpdateInvoiceStatus(s.GetContext(), created.ID, types.InvoiceStatusCancelled)
	s.NoError(err)
	s.Equal(types.InvoiceStatusCancelled, updated.Status)

	updated, err = s.service.UpdateInvoiceStatus(s.GetContext(), created.ID, types.InvoiceStatusPaid)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, updated.Status)
	s.NotNil(updated.PaidAt)
	// The generic transition never records a hash
	s.Empty(updated.TransactionHash)
}

func (s *InvoiceServiceSuite) TestUpdateInvoiceStatusRejectsUnknownStatus() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
	s.NoError(err)

	_, err = s.service.UpdateInvoiceStatus(s.GetContext(), created.ID, types.InvoiceStatus("archived"))
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestMarkInvoiceAsPaid() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
	s.NoError(err)

	paid, err := s.service.MarkInvoiceAsPaid(s.GetContext(), created.ID, "0xdeadbeef")
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, paid.Status)
	s.NotNil(paid.PaidAt)
	s.Equal("0xdeadbeef", paid.TransactionHash)
}

func (s *InvoiceServiceSuite) TestMarkInvoiceAsPaidRequiresHash() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
	s.NoError(err)

	_, err = s.service.MarkInvoiceAsPaid(s.GetContext(), created.ID, "")
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestDeleteInvoice() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
	s.NoError(err)

	s.NoError(s.service.DeleteInvoice(s.GetContext(), created.ID))

	_, err = s.service.GetInvoice(s.GetContext(), created.ID)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestListOverdueInvoices() {
	overdue := s.newCreateRequest()
	overdue.DueDate = s.GetNow().AddDate(0, 0, -3)
	created, err := s.service.CreateInvoice(s.GetContext(), overdue)
	s.NoError(err)

	_, err = s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
	s.NoError(err)

	resp, err := s.service.ListOverdueInvoices(s.GetContext())
	s.NoError(err)
	s.Equal(1, resp.Total)
	s.Equal(created.ID, resp.Items[0].ID)
}

func (s *InvoiceServiceSuite) TestGetInvoicePDF() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
	s.NoError(err)

	content, err := s.service.GetInvoicePDF(s.GetContext(), created.ID)
	s.NoError(err)
	s.NotEmpty(content)
}

func (s *InvoiceServiceSuite) TestGenerateAIInvoiceFallback() {
	// AI is not configured in tests, the drafter falls back deterministically
	draft := s.service.GenerateAIInvoice(s.GetContext(), "invoice Bob for 3 hours of consulting")
	s.NotNil(draft)
	s.Len(draft.Items, 1)
	s.Equal(int64(1), draft.Items[0].Quantity)
	s.True(draft.Items[0].UnitPrice.Equal(decimal.NewFromInt(100)))
	s.True(draft.DueDate.After(s.GetNow()))
}
