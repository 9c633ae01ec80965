package service

import (
	"context"
	"time"

	"github.com/chainvoice/chainvoice/internal/api/dto"
	"github.com/chainvoice/chainvoice/internal/cache"
	ierr "github.com/chainvoice/chainvoice/internal/errors"
	"github.com/chainvoice/chainvoice/internal/types"
	"github.com/shopspring/decimal"
)

// TransactionService records and queries blockchain payment claims
type TransactionService interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error)
	GetTransaction(ctx context.Context, id string) (*dto.TransactionResponse, error)
	ListTransactions(ctx context.Context, filter *types.TransactionFilter) (*dto.ListTransactionsResponse, error)
	UpdateTransactionStatus(ctx context.Context, id string, status types.TransactionStatus) (*dto.TransactionResponse, error)
	TrackWalletTransaction(ctx context.Context, req dto.TrackWalletTransactionRequest) (*dto.TransactionResponse, error)
}

type transactionService struct {
	ServiceParams
}

// NewTransactionService creates a new transaction service
func NewTransactionService(params ServiceParams) TransactionService {
	return &transactionService{
		ServiceParams: params,
	}
}

// CreateTransaction records a payment claim. The submitted hash is trusted,
// no on-chain verification happens. When the claim references an invoice the
// invoice is settled in the same call.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	txn := req.ToTransaction(ctx, time.Now().UTC())
	if err := txn.Validate(); err != nil {
		return nil, err
	}

	if err := s.TransactionRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	s.Logger.Infow("created transaction",
		"transaction_id", txn.ID,
		"hash", txn.Hash,
		"network_id", txn.NetworkID,
		"invoice_id", txn.InvoiceID,
	)

	s.Cache.DeleteByPrefix(ctx, cache.PrefixTransaction)

	if txn.InvoiceID != "" {
		invoiceService := NewInvoiceService(s.ServiceParams)
		if _, err := invoiceService.MarkInvoiceAsPaid(ctx, txn.InvoiceID, txn.Hash); err != nil {
			// The transaction stands on its own, the invoice update is a
			// separate write that can fail independently.
			s.Logger.Errorw("transaction recorded but invoice not settled",
				"error", err,
				"transaction_id", txn.ID,
				"invoice_id", txn.InvoiceID,
			)
		}
	}

	if s.Telegram != nil {
		s.Telegram.NotifyTransaction(txn)
	}

	return dto.NewTransactionResponse(txn), nil
}

func (s *transactionService) GetTransaction(ctx context.Context, id string) (*dto.TransactionResponse, error) {
	txn, err := s.TransactionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewTransactionResponse(txn), nil
}

func (s *transactionService) ListTransactions(ctx context.Context, filter *types.TransactionFilter) (*dto.ListTransactionsResponse, error) {
	if filter == nil {
		filter = &types.TransactionFilter{}
	}
	if filter.UserID == "" {
		filter.UserID = types.GetUserID(ctx)
	}

	invoiceID := ""
	if filter.InvoiceID != nil {
		invoiceID = *filter.InvoiceID
	}
	cacheKey := cache.GenerateKey(cache.PrefixTransaction, filter.UserID, filter.Status, invoiceID)
	if cached, found := s.Cache.Get(ctx, cacheKey); found {
		if resp, ok := cached.(*dto.ListTransactionsResponse); ok {
			return resp, nil
		}
	}

	txns, err := s.TransactionRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListTransactionsResponse{
		Items: make([]*dto.TransactionResponse, len(txns)),
		Total: len(txns),
	}
	for i, txn := range txns {
		resp.Items[i] = dto.NewTransactionResponse(txn)
	}

	s.Cache.Set(ctx, cacheKey, resp, cache.DefaultExpiration)
	return resp, nil
}

func (s *transactionService) UpdateTransactionStatus(ctx context.Context, id string, status types.TransactionStatus) (*dto.TransactionResponse, error) {
	if err := status.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid transaction status").
			Mark(ierr.ErrValidation)
	}

	if err := s.TransactionRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	s.Logger.Infow("updated transaction status", "transaction_id", id, "status", status)
	s.Cache.DeleteByPrefix(ctx, cache.PrefixTransaction)

	return s.GetTransaction(ctx, id)
}

// TrackWalletTransaction returns the existing record for (hash, network) or
// records a simulated confirmed transaction when none is tracked yet. The
// chain itself is never queried.
func (s *transactionService) TrackWalletTransaction(ctx context.Context, req dto.TrackWalletTransactionRequest) (*dto.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.TransactionRepo.GetByHashAndNetwork(ctx, req.Hash, req.NetworkID)
	if err == nil {
		return dto.NewTransactionResponse(existing), nil
	}
	if !ierr.IsNotFound(err) {
		return nil, err
	}

	return s.CreateTransaction(ctx, dto.CreateTransactionRequest{
		Amount:      decimal.Zero,
		TokenType:   types.DefaultTokenType,
		FromAddress: "unknown",
		ToAddress:   "unknown",
		Hash:        req.Hash,
		Status:      types.TransactionStatusConfirmed,
		Description: "Tracked wallet transaction",
		NetworkID:   req.NetworkID,
	})
}
