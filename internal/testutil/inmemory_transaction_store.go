package testutil

import (
	"context"
	"time"

	"github.com/chainvoice/chainvoice/internal/domain/transaction"
	ierr "github.com/chainvoice/chainvoice/internal/errors"
	"github.com/chainvoice/chainvoice/internal/types"
	"github.com/samber/lo"
)

// InMemoryTransactionStore implements transaction.Repository
type InMemoryTransactionStore struct {
	*InMemoryStore[*transaction.Transaction]
}

// NewInMemoryTransactionStore creates a new in-memory transaction repository
func NewInMemoryTransactionStore() *InMemoryTransactionStore {
	return &InMemoryTransactionStore{
		InMemoryStore: NewInMemoryStore[*transaction.Transaction](),
	}
}

func (s *InMemoryTransactionStore) Create(ctx context.Context, txn *transaction.Transaction) error {
	if txn == nil {
		return ierr.NewError("transaction cannot be nil").
			WithHint("Transaction cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if txn.ID == "" {
		return ierr.NewError("transaction ID cannot be empty").
			WithHint("Transaction ID cannot be empty").
			Mark(ierr.ErrValidation)
	}

	if err := s.InMemoryStore.Create(ctx, txn.ID, txn); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create transaction").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (s *InMemoryTransactionStore) Get(ctx context.Context, id string) (*transaction.Transaction, error) {
	txn, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("transaction not found").
			WithHintf("Transaction with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return txn, nil
}

func (s *InMemoryTransactionStore) List(ctx context.Context, filter *types.TransactionFilter) ([]*transaction.Transaction, error) {
	return s.InMemoryStore.List(ctx, filter, transactionFilterFn, transactionSortFn)
}

func (s *InMemoryTransactionStore) UpdateStatus(ctx context.Context, id string, status types.TransactionStatus) error {
	txn, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	txn.Status = status
	txn.UpdatedAt = time.Now().UTC()
	if err := s.InMemoryStore.Update(ctx, txn.ID, txn); err != nil {
		return ierr.NewError("transaction not found").
			WithHintf("Transaction with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryTransactionStore) GetByHashAndNetwork(ctx context.Context, hash string, networkID int64) (*transaction.Transaction, error) {
	txns, err := s.List(ctx, &types.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	for _, txn := range txns {
		if txn.Hash == hash && txn.NetworkID == networkID {
			return txn, nil
		}
	}
	return nil, ierr.NewError("transaction not found").
		WithHintf("No transaction tracked for hash %s on network %d", hash, networkID).
		Mark(ierr.ErrNotFound)
}

func transactionFilterFn(ctx context.Context, txn *transaction.Transaction, filter interface{}) bool {
	f, ok := filter.(*types.TransactionFilter)
	if !ok || f == nil {
		return true
	}
	if f.UserID != "" && txn.UserID != f.UserID {
		return false
	}
	if len(f.Status) > 0 && !lo.Contains(f.Status, txn.Status) {
		return false
	}
	if f.InvoiceID != nil && txn.InvoiceID != *f.InvoiceID {
		return false
	}
	return true
}

func transactionSortFn(i, j *transaction.Transaction) bool {
	return i.CreatedAt.After(j.CreatedAt)
}
