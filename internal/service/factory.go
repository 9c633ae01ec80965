package service

import (
	"github.com/chainvoice/chainvoice/internal/ai"
	"github.com/chainvoice/chainvoice/internal/cache"
	"github.com/chainvoice/chainvoice/internal/config"
	"github.com/chainvoice/chainvoice/internal/domain/invoice"
	"github.com/chainvoice/chainvoice/internal/domain/transaction"
	"github.com/chainvoice/chainvoice/internal/email"
	"github.com/chainvoice/chainvoice/internal/logger"
	"github.com/chainvoice/chainvoice/internal/pdf"
	"github.com/chainvoice/chainvoice/internal/telegram"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Cache  cache.Cache

	// Repositories
	InvoiceRepo     invoice.Repository
	TransactionRepo transaction.Repository

	// Collaborators
	PDFGenerator pdf.Generator
	Telegram     *telegram.Service
	Email        *email.Service
	AI           ai.Generator
}

// NewServiceParams assembles the shared service dependencies
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	cacheStore cache.Cache,
	invoiceRepo invoice.Repository,
	transactionRepo transaction.Repository,
	pdfGenerator pdf.Generator,
	telegramService *telegram.Service,
	emailService *email.Service,
	aiGenerator ai.Generator,
) ServiceParams {
	return ServiceParams{
		Logger:          logger,
		Config:          config,
		Cache:           cacheStore,
		InvoiceRepo:     invoiceRepo,
		TransactionRepo: transactionRepo,
		PDFGenerator:    pdfGenerator,
		Telegram:        telegramService,
		Email:           emailService,
		AI:              aiGenerator,
	}
}
