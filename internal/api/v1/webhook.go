package v1

import (
	"net/http"

	ierr "github.com/chainvoice/chainvoice/internal/errors"
	"github.com/chainvoice/chainvoice/internal/logger"
	"github.com/chainvoice/chainvoice/internal/telegram"
	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type WebhookHandler struct {
	telegramService *telegram.Service
	logger          *logger.Logger
}

func NewWebhookHandler(telegramService *telegram.Service, logger *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		telegramService: telegramService,
		logger:          logger,
	}
}

// HandleTelegramUpdate processes an incoming Telegram webhook update.
// Telegram retries non-200 responses, so processing failures still return
// 200 with handled=false.
func (h *WebhookHandler) HandleTelegramUpdate(c *gin.Context) {
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.logger.Errorw("failed to parse telegram update", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid telegram update").Mark(ierr.ErrValidation))
		return
	}

	handled := h.telegramService.ProcessUpdate(&update)
	c.JSON(http.StatusOK, gin.H{"handled": handled})
}
