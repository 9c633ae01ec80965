package v1

import (
	"net/http"

	"github.com/chainvoice/chainvoice/internal/api/dto"
	ierr "github.com/chainvoice/chainvoice/internal/errors"
	"github.com/chainvoice/chainvoice/internal/logger"
	"github.com/chainvoice/chainvoice/internal/service"
	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService service.PaymentService
	logger         *logger.Logger
}

func NewPaymentHandler(paymentService service.PaymentService, logger *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// InitiatePayment reconciles a payment claim against its invoice
func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	var req dto.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.paymentService.InitiatePayment(c.Request.Context(), req)
	if err != nil {
		h.logger.Errorw("failed to initiate payment", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ValidatePayment runs the simulated payment verification
func (h *PaymentHandler) ValidatePayment(c *gin.Context) {
	var req dto.ValidatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.paymentService.ValidatePayment(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ReconcilePendingInvoices repairs invoices left unsettled by a partial
// payment write
func (h *PaymentHandler) ReconcilePendingInvoices(c *gin.Context) {
	resp, err := h.paymentService.ReconcilePendingInvoices(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
