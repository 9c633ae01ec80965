package telegram

import (
	"testing"
	"time"

	"github.com/chainvoice/chainvoice/internal/config"
	"github.com/chainvoice/chainvoice/internal/domain/invoice"
	"github.com/chainvoice/chainvoice/internal/domain/transaction"
	"github.com/chainvoice/chainvoice/internal/logger"
	"github.com/chainvoice/chainvoice/internal/types"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDisabledService(t *testing.T) *Service {
	cfg := config.GetDefaultConfig()
	log, err := logger.NewLogger(cfg)
	require.NoError(t, err)
	return NewService(NewClient(cfg, log), log)
}

func TestNotificationsWithDisabledBot(t *testing.T) {
	svc := newDisabledService(t)

	inv := &invoice.Invoice{
		Number:      "INV-123456-001",
		ClientName:  "Acme Corp",
		TotalAmount: decimal.NewFromInt(300),
		DueDate:     time.Now(),
		Status:      types.InvoiceStatusPending,
	}
	txn := &transaction.Transaction{
		Amount:      decimal.NewFromFloat(0.5),
		TokenType:   "ETH",
		FromAddress: "0x1111567890abcdef1234567890abcdef12345678",
		ToAddress:   "0x2222567890abcdef1234567890abcdef12345678",
		NetworkID:   1,
		Status:      types.TransactionStatusConfirmed,
	}

	// A disabled bot drops everything silently
	assert.False(t, svc.NotifyInvoiceCreated(inv))
	assert.False(t, svc.NotifyInvoicePaid(inv))
	assert.False(t, svc.NotifyInvoiceOverdue(inv, time.Now()))
	assert.False(t, svc.NotifyTransaction(txn))
}

func TestProcessUpdateWithDisabledBot(t *testing.T) {
	svc := newDisabledService(t)

	update := &tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: "/start",
			Chat: &tgbotapi.Chat{ID: 42},
		},
	}

	assert.False(t, svc.ProcessUpdate(update))
	assert.False(t, svc.ProcessUpdate(&tgbotapi.Update{}))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1234.50", formatCurrency(decimal.NewFromFloat(1234.5)))
}

func TestTruncateAddress(t *testing.T) {
	assert.Equal(t, "0x1111...5678", truncateAddress("0x1111567890abcdef1234567890abcdef12345678"))
	assert.Equal(t, "0xshort", truncateAddress("0xshort"))
}
