package service

import (
	"context"
	"time"

	"github.com/chainvoice/chainvoice/internal/ai"
	"github.com/chainvoice/chainvoice/internal/api/dto"
	"github.com/chainvoice/chainvoice/internal/cache"
	"github.com/chainvoice/chainvoice/internal/domain/invoice"
	"github.com/chainvoice/chainvoice/internal/email"
	ierr "github.com/chainvoice/chainvoice/internal/errors"
	"github.com/chainvoice/chainvoice/internal/types"
)

// InvoiceService handles the invoice lifecycle
type InvoiceService interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error)
	UpdateInvoiceStatus(ctx context.Context, id string, status types.InvoiceStatus) (*dto.InvoiceResponse, error)
	MarkInvoiceAsPaid(ctx context.Context, id string, transactionHash string) (*dto.InvoiceResponse, error)
	DeleteInvoice(ctx context.Context, id string) error
	GetInvoicePDF(ctx context.Context, id string) ([]byte, error)
	SendInvoiceEmail(ctx context.Context, id string) (*email.SendEmailResponse, error)
	GenerateAIInvoice(ctx context.Context, prompt string) *ai.DraftInvoice
	ListOverdueInvoices(ctx context.Context) (*dto.ListInvoicesResponse, error)
}

type invoiceService struct {
	ServiceParams
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
	}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv := req.ToInvoice(ctx, time.Now().UTC())
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	if err := s.InvoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	s.Logger.Infow("created invoice",
		"invoice_id", inv.ID,
		"number", inv.Number,
		"total_amount", inv.TotalAmount,
		"status", inv.Status,
	)

	s.Cache.DeleteByPrefix(ctx, cache.PrefixInvoice)
	s.notifyInvoiceCreated(ctx, inv)

	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error) {
	if filter == nil {
		filter = &types.InvoiceFilter{}
	}
	if filter.UserID == "" {
		filter.UserID = types.GetUserID(ctx)
	}

	cacheKey := cache.GenerateKey(cache.PrefixInvoice, filter.UserID, filter.Status)
	if cached, found := s.Cache.Get(ctx, cacheKey); found {
		if resp, ok := cached.(*dto.ListInvoicesResponse); ok {
			return resp, nil
		}
	}

	invoices, err := s.InvoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListInvoicesResponse{
		Items: make([]*dto.InvoiceResponse, len(invoices)),
		Total: len(invoices),
	}
	for i, inv := range invoices {
		resp.Items[i] = dto.NewInvoiceResponse(inv)
	}

	s.Cache.Set(ctx, cacheKey, resp, cache.DefaultExpiration)
	return resp, nil
}

// UpdateInvoiceStatus applies any status transition without restriction.
// Moving to paid stamps PaidAt but leaves TransactionHash empty; recording
// the hash is MarkInvoiceAsPaid's job.
func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, id string, status types.InvoiceStatus) (*dto.InvoiceResponse, error) {
	if err := status.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid invoice status").
			Mark(ierr.ErrValidation)
	}

	var paidAt *time.Time
	if status == types.InvoiceStatusPaid {
		now := time.Now().UTC()
		paidAt = &now
	}

	if err := s.InvoiceRepo.UpdateStatus(ctx, id, status, paidAt); err != nil {
		return nil, err
	}

	s.Logger.Infow("updated invoice status", "invoice_id", id, "status", status)
	s.Cache.DeleteByPrefix(ctx, cache.PrefixInvoice)

	return s.GetInvoice(ctx, id)
}

func (s *invoiceService) MarkInvoiceAsPaid(ctx context.Context, id string, transactionHash string) (*dto.InvoiceResponse, error) {
	if transactionHash == "" {
		return nil, ierr.NewError("transaction hash is required").
			WithHint("Transaction hash is required").
			Mark(ierr.ErrValidation)
	}

	paidAt := time.Now().UTC()
	if err := s.InvoiceRepo.MarkPaid(ctx, id, paidAt, transactionHash); err != nil {
		return nil, err
	}

	s.Logger.Infow("marked invoice as paid",
		"invoice_id", id,
		"transaction_hash", transactionHash,
	)
	s.Cache.DeleteByPrefix(ctx, cache.PrefixInvoice)

	resp, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.Telegram != nil {
		s.Telegram.NotifyInvoicePaid(resp.Invoice)
	}
	return resp, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) error {
	if err := s.InvoiceRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.Logger.Infow("deleted invoice", "invoice_id", id)
	s.Cache.DeleteByPrefix(ctx, cache.PrefixInvoice)
	return nil
}

func (s *invoiceService) GetInvoicePDF(ctx context.Context, id string) ([]byte, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.PDFGenerator.RenderInvoicePDF(ctx, inv)
}

func (s *invoiceService) SendInvoiceEmail(ctx context.Context, id string) (*email.SendEmailResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	pdfContent, err := s.PDFGenerator.RenderInvoicePDF(ctx, inv)
	if err != nil {
		return nil, err
	}

	return s.Email.SendInvoiceEmail(ctx, inv, pdfContent), nil
}

func (s *invoiceService) GenerateAIInvoice(ctx context.Context, prompt string) *ai.DraftInvoice {
	return s.AI.GenerateInvoice(ctx, prompt)
}

// ListOverdueInvoices returns pending invoices past their due date. Overdue
// detection is caller-driven, there is no background scheduler.
func (s *invoiceService) ListOverdueInvoices(ctx context.Context) (*dto.ListInvoicesResponse, error) {
	invoices, err := s.InvoiceRepo.List(ctx, &types.InvoiceFilter{
		UserID: types.GetUserID(ctx),
		Status: []types.InvoiceStatus{types.InvoiceStatusPending},
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	resp := &dto.ListInvoicesResponse{Items: []*dto.InvoiceResponse{}}
	for _, inv := range invoices {
		if inv.IsOverdue(now) {
			resp.Items = append(resp.Items, dto.NewInvoiceResponse(inv))
		}
	}
	resp.Total = len(resp.Items)
	return resp, nil
}

// notifyInvoiceCreated delivers the creation notifications without ever
// failing the write that triggered them.
func (s *invoiceService) notifyInvoiceCreated(ctx context.Context, inv *invoice.Invoice) {
	if s.Telegram != nil {
		s.Telegram.NotifyInvoiceCreated(inv)
	}

	if s.Email != nil && s.PDFGenerator != nil {
		pdfContent, err := s.PDFGenerator.RenderInvoicePDF(ctx, inv)
		if err != nil {
			s.Logger.Errorw("failed to render invoice PDF for email", "error", err, "invoice_id", inv.ID)
			return
		}
		s.Email.SendInvoiceEmail(ctx, inv, pdfContent)
	}
}
