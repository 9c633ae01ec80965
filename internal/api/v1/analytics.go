package v1

import (
	"net/http"
	"strconv"

	ierr "github.com/chainvoice/chainvoice/internal/errors"
	"github.com/chainvoice/chainvoice/internal/logger"
	"github.com/chainvoice/chainvoice/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	defaultRevenueMonths = 6
	defaultTopClients    = 5
)

type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
	logger           *logger.Logger
}

func NewAnalyticsHandler(analyticsService service.AnalyticsService, logger *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

func (h *AnalyticsHandler) GetInvoiceStats(c *gin.Context) {
	resp, err := h.analyticsService.GetInvoiceStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AnalyticsHandler) GetTransactionStats(c *gin.Context) {
	resp, err := h.analyticsService.GetTransactionStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AnalyticsHandler) GetPaymentStatusDistribution(c *gin.Context) {
	resp, err := h.analyticsService.GetPaymentStatusDistribution(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AnalyticsHandler) GetNetworkDistribution(c *gin.Context) {
	resp, err := h.analyticsService.GetNetworkDistribution(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetMonthlyRevenue returns the settled revenue series, ?months=N (default 6)
func (h *AnalyticsHandler) GetMonthlyRevenue(c *gin.Context) {
	months := defaultRevenueMonths
	if raw := c.Query("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.Error(ierr.WithError(err).WithHint("months must be a number").Mark(ierr.ErrValidation))
			return
		}
		months = parsed
	}

	resp, err := h.analyticsService.GetMonthlyRevenue(c.Request.Context(), months)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetTopClients returns clients ranked by revenue, ?limit=N (default 5)
func (h *AnalyticsHandler) GetTopClients(c *gin.Context) {
	limit := defaultTopClients
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.Error(ierr.WithError(err).WithHint("limit must be a number").Mark(ierr.ErrValidation))
			return
		}
		limit = parsed
	}

	resp, err := h.analyticsService.GetTopClients(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
