package transaction

import (
	"context"

	"github.com/chainvoice/chainvoice/internal/types"
)

// Repository defines the interface for transaction persistence
type Repository interface {
	Create(ctx context.Context, txn *Transaction) error
	Get(ctx context.Context, id string) (*Transaction, error)
	// List returns transactions matching the filter ordered by created_at descending
	List(ctx context.Context, filter *types.TransactionFilter) ([]*Transaction, error)
	UpdateStatus(ctx context.Context, id string, status types.TransactionStatus) error
	// GetByHashAndNetwork probes for an already tracked transaction to avoid
	// duplicate creation in the wallet tracking flow
	GetByHashAndNetwork(ctx context.Context, hash string, networkID int64) (*Transaction, error)
}
