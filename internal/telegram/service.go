package telegram

import (
	"fmt"
	"strings"
	"time"

	"github.com/chainvoice/chainvoice/internal/domain/invoice"
	"github.com/chainvoice/chainvoice/internal/domain/transaction"
	"github.com/chainvoice/chainvoice/internal/logger"
	"github.com/chainvoice/chainvoice/internal/types"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
)

// Service sends fire-and-forget notifications about invoices and
// transactions. Every method returns whether the message was delivered;
// failures are logged and never propagate to the triggering write.
type Service struct {
	client *Client
	log    *logger.Logger
}

// NewService creates a new telegram notification service
func NewService(client *Client, log *logger.Logger) *Service {
	return &Service{client: client, log: log}
}

// NotifyInvoiceCreated announces a newly created invoice
func (s *Service) NotifyInvoiceCreated(inv *invoice.Invoice) bool {
	message := "🧾 *New Invoice Created*\n\n" +
		fmt.Sprintf("*Invoice:* %s\n", inv.Number) +
		fmt.Sprintf("*Client:* %s\n", inv.ClientName) +
		fmt.Sprintf("*Amount:* %s\n", formatCurrency(inv.TotalAmount)) +
		fmt.Sprintf("*Due Date:* %s\n", inv.DueDate.Format("Jan 2, 2006")) +
		fmt.Sprintf("*Status:* %s", strings.ToUpper(inv.Status.String()))

	return s.deliver(message)
}

// NotifyInvoicePaid announces a settled invoice
func (s *Service) NotifyInvoicePaid(inv *invoice.Invoice) bool {
	paidOn := "Unknown"
	if inv.PaidAt != nil {
		paidOn = inv.PaidAt.Format("Jan 2, 2006")
	}

	message := "💰 *Invoice Paid*\n\n" +
		fmt.Sprintf("*Invoice:* %s\n", inv.Number) +
		fmt.Sprintf("*Client:* %s\n", inv.ClientName) +
		fmt.Sprintf("*Amount:* %s\n", formatCurrency(inv.TotalAmount)) +
		fmt.Sprintf("*Paid on:* %s\n", paidOn)
	if inv.TransactionHash != "" {
		message += fmt.Sprintf("*Transaction:* %s\n", truncateAddress(inv.TransactionHash))
	}

	return s.deliver(message)
}

// NotifyInvoiceOverdue announces an invoice past its due date
func (s *Service) NotifyInvoiceOverdue(inv *invoice.Invoice, now time.Time) bool {
	daysOverdue := int(now.Sub(inv.DueDate).Hours() / 24)

	message := "⚠️ *Invoice Overdue*\n\n" +
		fmt.Sprintf("*Invoice:* %s\n", inv.Number) +
		fmt.Sprintf("*Client:* %s\n", inv.ClientName) +
		fmt.Sprintf("*Amount:* %s\n", formatCurrency(inv.TotalAmount)) +
		fmt.Sprintf("*Due Date:* %s\n", inv.DueDate.Format("Jan 2, 2006")) +
		fmt.Sprintf("*Days Overdue:* %d", daysOverdue)

	return s.deliver(message)
}

// NotifyTransaction announces a newly recorded transaction
func (s *Service) NotifyTransaction(txn *transaction.Transaction) bool {
	message := "💸 *New Transaction*\n\n" +
		fmt.Sprintf("*Amount:* %s %s\n", txn.Amount.String(), txn.TokenType) +
		fmt.Sprintf("*From:* %s\n", truncateAddress(txn.FromAddress)) +
		fmt.Sprintf("*To:* %s\n", truncateAddress(txn.ToAddress)) +
		fmt.Sprintf("*Network:* %s\n", types.GetChainName(txn.NetworkID)) +
		fmt.Sprintf("*Status:* %s\n", strings.ToUpper(txn.Status.String()))
	if txn.Description != "" {
		message += fmt.Sprintf("*Description:* %s\n", txn.Description)
	}

	return s.deliver(message)
}

// ProcessUpdate handles an incoming webhook update and replies in-line.
// Supported commands: /start, /help, /status.
func (s *Service) ProcessUpdate(update *tgbotapi.Update) bool {
	if !s.client.IsEnabled() {
		s.log.Warnw("telegram bot not configured, dropping webhook update")
		return false
	}
	if update.Message == nil {
		return false
	}

	chatID := update.Message.Chat.ID
	text := update.Message.Text

	var reply string
	switch {
	case strings.HasPrefix(text, "/start"):
		reply = fmt.Sprintf(
			"👋 Welcome to Chainvoice!\n\nYour Chat ID is: `%d`\n\nPlease add this Chat ID to your settings to receive notifications.",
			chatID,
		)
	case strings.HasPrefix(text, "/help"):
		reply = "*Available Commands:*\n\n" +
			"/start - Get your Chat ID\n" +
			"/help - Show this help message\n" +
			"/status - Check if notifications are enabled"
	case strings.HasPrefix(text, "/status"):
		if chatID == s.client.ChatID() {
			reply = "✅ Notifications are enabled for this chat"
		} else {
			reply = "❌ Notifications are not enabled for this chat"
		}
	default:
		reply = "Send /help to see the available commands."
	}

	if err := s.client.SendTo(chatID, reply); err != nil {
		s.log.Errorw("failed to reply to telegram update", "error", err, "chat_id", chatID)
		return false
	}
	return true
}

func (s *Service) deliver(message string) bool {
	if !s.client.IsEnabled() {
		return false
	}
	if err := s.client.Send(message); err != nil {
		s.log.Errorw("failed to send telegram notification", "error", err)
		return false
	}
	return true
}

func formatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

func truncateAddress(address string) string {
	if len(address) <= 12 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}
