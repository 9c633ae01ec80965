package main

import (
	"context"
	"time"

	"github.com/chainvoice/chainvoice/internal/ai"
	"github.com/chainvoice/chainvoice/internal/api"
	v1 "github.com/chainvoice/chainvoice/internal/api/v1"
	"github.com/chainvoice/chainvoice/internal/cache"
	"github.com/chainvoice/chainvoice/internal/config"
	"github.com/chainvoice/chainvoice/internal/email"
	"github.com/chainvoice/chainvoice/internal/logger"
	"github.com/chainvoice/chainvoice/internal/pdf"
	"github.com/chainvoice/chainvoice/internal/repository"
	"github.com/chainvoice/chainvoice/internal/repository/postgres"
	"github.com/chainvoice/chainvoice/internal/service"
	"github.com/chainvoice/chainvoice/internal/telegram"
	"github.com/chainvoice/chainvoice/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Postgres
			postgres.NewClient,

			// Repositories
			repository.NewInvoiceRepository,
			repository.NewTransactionRepository,

			// Collaborators
			pdf.NewGenerator,
			email.NewEmailClient,
			email.NewService,
			telegram.NewClient,
			telegram.NewService,
			ai.NewGenerator,

			// Services
			service.NewServiceParams,
			service.NewInvoiceService,
			service.NewTransactionService,
			service.NewPaymentService,
			service.NewAnalyticsService,

			// API
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	invoiceService service.InvoiceService,
	transactionService service.TransactionService,
	paymentService service.PaymentService,
	analyticsService service.AnalyticsService,
	telegramService *telegram.Service,
) api.Handlers {
	return api.Handlers{
		Health:      v1.NewHealthHandler(),
		Invoice:     v1.NewInvoiceHandler(invoiceService, logger),
		Transaction: v1.NewTransactionHandler(transactionService, logger),
		Payment:     v1.NewPaymentHandler(paymentService, logger),
		Analytics:   v1.NewAnalyticsHandler(analyticsService, logger),
		Webhook:     v1.NewWebhookHandler(telegramService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration) *gin.Engine {
	return api.NewRouter(handlers, cfg)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
