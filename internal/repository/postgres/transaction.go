package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/chainvoice/chainvoice/internal/domain/transaction"
	ierr "github.com/chainvoice/chainvoice/internal/errors"
	"github.com/chainvoice/chainvoice/internal/logger"
	"github.com/chainvoice/chainvoice/internal/types"
	"github.com/jmoiron/sqlx"
)

type transactionRepository struct {
	db  *sqlx.DB
	log *logger.Logger
}

// NewTransactionRepository creates a postgres backed transaction repository
func NewTransactionRepository(db *sqlx.DB, log *logger.Logger) transaction.Repository {
	return &transactionRepository{db: db, log: log}
}

const transactionColumns = `id, amount, token_type, from_address, to_address, hash,
	status, block_number, invoice_id, description, network_id, user_id, created_at, updated_at`

func (r *transactionRepository) Create(ctx context.Context, txn *transaction.Transaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES (:id, :amount, :token_type, :from_address, :to_address, :hash,
			:status, :block_number, :invoice_id, :description, :network_id, :user_id,
			:created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, txn); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create transaction").
			WithReportableDetails(map[string]any{"transaction_id": txn.ID}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *transactionRepository) Get(ctx context.Context, id string) (*transaction.Transaction, error) {
	var txn transaction.Transaction
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	if err := r.db.GetContext(ctx, &txn, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("transaction not found").
				WithHintf("Transaction with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get transaction").
			Mark(ierr.ErrDatabase)
	}
	return &txn, nil
}

func (r *transactionRepository) List(ctx context.Context, filter *types.TransactionFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = ?`
	args := []interface{}{filter.UserID}

	if filter.InvoiceID != nil {
		query += ` AND invoice_id = ?`
		args = append(args, *filter.InvoiceID)
	}

	if len(filter.Status) > 0 {
		statuses := make([]string, len(filter.Status))
		for i, s := range filter.Status {
			statuses[i] = s.String()
		}
		var err error
		query, args, err = sqlx.In(query+` AND status IN (?)`, append(args, statuses)...)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to list transactions").
				Mark(ierr.ErrDatabase)
		}
	}
	query = r.db.Rebind(query + ` ORDER BY created_at DESC`)

	txns := make([]*transaction.Transaction, 0)
	if err := r.db.SelectContext(ctx, &txns, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list transactions").
			Mark(ierr.ErrDatabase)
	}
	return txns, nil
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, id string, status types.TransactionStatus) error {
	query := `UPDATE transactions SET status = $1, updated_at = $2 WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update transaction status").
			Mark(ierr.ErrDatabase)
	}
	return requireRow(res, "transaction", id)
}

func (r *transactionRepository) GetByHashAndNetwork(ctx context.Context, hash string, networkID int64) (*transaction.Transaction, error) {
	var txn transaction.Transaction
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE hash = $1 AND network_id = $2 LIMIT 1`

	if err := r.db.GetContext(ctx, &txn, query, hash, networkID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("transaction not found").
				WithHintf("No transaction tracked for hash %s on network %d", hash, networkID).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to look up transaction by hash").
			Mark(ierr.ErrDatabase)
	}
	return &txn, nil
}
