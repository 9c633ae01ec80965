package api

import (
	v1 "github.com/chainvoice/chainvoice/internal/api/v1"
	"github.com/chainvoice/chainvoice/internal/config"
	"github.com/chainvoice/chainvoice/internal/rest/middleware"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health      *v1.HealthHandler
	Invoice     *v1.InvoiceHandler
	Transaction *v1.TransactionHandler
	Payment     *v1.PaymentHandler
	Analytics   *v1.AnalyticsHandler
	Webhook     *v1.WebhookHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	// Webhooks carry their own authentication semantics, no owner context
	webhooks := router.Group("/webhooks")
	{
		webhooks.POST("/telegram", handlers.Webhook.HandleTelegramUpdate)
	}

	v1Group := router.Group("/v1")
	v1Group.Use(middleware.AuthContextMiddleware(cfg))
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	invoices := router.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.CreateInvoice)
		invoices.GET("", handlers.Invoice.ListInvoices)
		invoices.POST("/ai", handlers.Invoice.GenerateAIInvoice)
		invoices.GET("/overdue", handlers.Invoice.ListOverdueInvoices)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.PUT("/:id/status", handlers.Invoice.UpdateInvoiceStatus)
		invoices.POST("/:id/pay", handlers.Invoice.MarkInvoiceAsPaid)
		invoices.DELETE("/:id", handlers.Invoice.DeleteInvoice)
		invoices.GET("/:id/pdf", handlers.Invoice.DownloadInvoicePDF)
		invoices.POST("/:id/send", handlers.Invoice.SendInvoiceEmail)
	}

	transactions := router.Group("/transactions")
	{
		transactions.POST("", handlers.Transaction.CreateTransaction)
		transactions.GET("", handlers.Transaction.ListTransactions)
		transactions.POST("/track", handlers.Transaction.TrackWalletTransaction)
		transactions.GET("/:id", handlers.Transaction.GetTransaction)
		transactions.PUT("/:id/status", handlers.Transaction.UpdateTransactionStatus)
	}

	payments := router.Group("/payments")
	{
		payments.POST("", handlers.Payment.InitiatePayment)
		payments.POST("/validate", handlers.Payment.ValidatePayment)
		payments.POST("/reconcile", handlers.Payment.ReconcilePendingInvoices)
	}

	analytics := router.Group("/analytics")
	{
		analytics.GET("/invoices", handlers.Analytics.GetInvoiceStats)
		analytics.GET("/transactions", handlers.Analytics.GetTransactionStats)
		analytics.GET("/status-distribution", handlers.Analytics.GetPaymentStatusDistribution)
		analytics.GET("/networks", handlers.Analytics.GetNetworkDistribution)
		analytics.GET("/revenue", handlers.Analytics.GetMonthlyRevenue)
		analytics.GET("/top-clients", handlers.Analytics.GetTopClients)
	}
}
