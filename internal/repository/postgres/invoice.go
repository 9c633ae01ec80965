package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/chainvoice/chainvoice/internal/domain/invoice"
	ierr "github.com/chainvoice/chainvoice/internal/errors"
	"github.com/chainvoice/chainvoice/internal/logger"
	"github.com/chainvoice/chainvoice/internal/types"
	"github.com/jmoiron/sqlx"
)

type invoiceRepository struct {
	db  *sqlx.DB
	log *logger.Logger
}

// NewInvoiceRepository creates a postgres backed invoice repository
func NewInvoiceRepository(db *sqlx.DB, log *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, log: log}
}

const invoiceColumns = `id, number, client_name, client_email, client_address, items,
	notes, terms, due_date, status, total_amount, payment_address, payment_token_type,
	paid_at, transaction_hash, user_id, created_at, updated_at`

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	query := `INSERT INTO invoices (` + invoiceColumns + `)
		VALUES (:id, :number, :client_name, :client_email, :client_address, :items,
			:notes, :terms, :due_date, :status, :total_amount, :payment_address,
			:payment_token_type, :paid_at, :transaction_hash, :user_id, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, inv); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create invoice").
			WithReportableDetails(map[string]any{"invoice_id": inv.ID}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`

	if err := r.db.GetContext(ctx, &inv, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("invoice not found").
				WithHintf("Invoice with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get invoice").
			Mark(ierr.ErrDatabase)
	}
	return &inv, nil
}

func (r *invoiceRepository) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE user_id = ?`
	args := []interface{}{filter.UserID}

	if len(filter.Status) > 0 {
		statuses := make([]string, len(filter.Status))
		for i, s := range filter.Status {
			statuses[i] = s.String()
		}
		var err error
		query, args, err = sqlx.In(query+` AND status IN (?)`, filter.UserID, statuses)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to list invoices").
				Mark(ierr.ErrDatabase)
		}
	}
	query = r.db.Rebind(query + ` ORDER BY created_at DESC`)

	invoices := make([]*invoice.Invoice, 0)
	if err := r.db.SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list invoices").
			Mark(ierr.ErrDatabase)
	}
	return invoices, nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()
	query := `UPDATE invoices SET
		client_name = :client_name, client_email = :client_email,
		client_address = :client_address, items = :items, notes = :notes,
		terms = :terms, due_date = :due_date, status = :status,
		total_amount = :total_amount, payment_address = :payment_address,
		payment_token_type = :payment_token_type, paid_at = :paid_at,
		transaction_hash = :transaction_hash, updated_at = :updated_at
		WHERE id = :id`

	res, err := r.db.NamedExecContext(ctx, query, inv)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update invoice").
			Mark(ierr.ErrDatabase)
	}
	return requireRow(res, "invoice", inv.ID)
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id string, status types.InvoiceStatus, paidAt *time.Time) error {
	query := `UPDATE invoices SET status = $1, paid_at = COALESCE($2, paid_at), updated_at = $3 WHERE id = $4`

	res, err := r.db.ExecContext(ctx, query, status, paidAt, time.Now().UTC(), id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update invoice status").
			Mark(ierr.ErrDatabase)
	}
	return requireRow(res, "invoice", id)
}

func (r *invoiceRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time, transactionHash string) error {
	query := `UPDATE invoices SET status = $1, paid_at = $2, transaction_hash = $3, updated_at = $4 WHERE id = $5`

	res, err := r.db.ExecContext(ctx, query, types.InvoiceStatusPaid, paidAt, transactionHash, time.Now().UTC(), id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to mark invoice as paid").
			Mark(ierr.ErrDatabase)
	}
	return requireRow(res, "invoice", id)
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete invoice").
			Mark(ierr.ErrDatabase)
	}
	return requireRow(res, "invoice", id)
}

// requireRow converts a zero rows-affected result into a not found error
func requireRow(res sql.Result, entity, id string) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to read result").
			Mark(ierr.ErrDatabase)
	}
	if rows == 0 {
		return ierr.NewError(entity + " not found").
			WithHintf("%s with ID %s was not found", entity, id).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
