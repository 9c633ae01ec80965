package telegram

import (
	"github.com/chainvoice/chainvoice/internal/config"
	"github.com/chainvoice/chainvoice/internal/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hashicorp/go-retryablehttp"
)

// Client wraps the Telegram bot API. The zero client (no token configured)
// is valid and silently drops every send.
type Client struct {
	bot     *tgbotapi.BotAPI
	chatID  int64
	enabled bool
}

// NewClient creates a Telegram client from configuration
func NewClient(cfg *config.Configuration, log *logger.Logger) *Client {
	if !cfg.Telegram.Enabled || cfg.Telegram.BotToken == "" || cfg.Telegram.ChatID == 0 {
		log.Warnw("telegram bot token or chat id not configured, notifications disabled")
		return &Client{enabled: false}
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.Logger = nil

	bot, err := tgbotapi.NewBotAPIWithClient(cfg.Telegram.BotToken, tgbotapi.APIEndpoint, retryClient.StandardClient())
	if err != nil {
		log.Errorw("failed to initialize telegram bot", "error", err)
		return &Client{enabled: false}
	}

	return &Client{
		bot:     bot,
		chatID:  cfg.Telegram.ChatID,
		enabled: true,
	}
}

// IsEnabled returns whether the client can send messages
func (c *Client) IsEnabled() bool {
	return c.enabled
}

// Send delivers a Markdown message to the configured notification chat
func (c *Client) Send(text string) error {
	return c.SendTo(c.chatID, text)
}

// SendTo delivers a Markdown message to an arbitrary chat
func (c *Client) SendTo(chatID int64, text string) error {
	if !c.enabled {
		return nil
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := c.bot.Send(msg)
	return err
}

// ChatID returns the configured notification chat id
func (c *Client) ChatID() int64 {
	return c.chatID
}
