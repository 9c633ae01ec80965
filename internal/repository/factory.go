package repository

import (
	"github.com/chainvoice/chainvoice/internal/domain/invoice"
	"github.com/chainvoice/chainvoice/internal/domain/transaction"
	"github.com/chainvoice/chainvoice/internal/logger"
	"github.com/chainvoice/chainvoice/internal/repository/postgres"
	"github.com/jmoiron/sqlx"
)

// NewInvoiceRepository creates the configured invoice repository
func NewInvoiceRepository(db *sqlx.DB, log *logger.Logger) invoice.Repository {
	return postgres.NewInvoiceRepository(db, log)
}

// NewTransactionRepository creates the configured transaction repository
func NewTransactionRepository(db *sqlx.DB, log *logger.Logger) transaction.Repository {
	return postgres.NewTransactionRepository(db, log)
}
