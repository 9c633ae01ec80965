package invoice

import (
	"context"
	"time"

	"github.com/chainvoice/chainvoice/internal/types"
)

// Repository defines the interface for invoice persistence
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	Get(ctx context.Context, id string) (*Invoice, error)
	// List returns invoices matching the filter ordered by created_at descending
	List(ctx context.Context, filter *types.InvoiceFilter) ([]*Invoice, error)
	Update(ctx context.Context, inv *Invoice) error
	// UpdateStatus sets the status, and paidAt when the status becomes paid.
	// It does not touch the transaction hash, that is MarkPaid's job.
	UpdateStatus(ctx context.Context, id string, status types.InvoiceStatus, paidAt *time.Time) error
	// MarkPaid flips the invoice to paid with paidAt and the settling hash
	MarkPaid(ctx context.Context, id string, paidAt time.Time, transactionHash string) error
	Delete(ctx context.Context, id string) error
}
