package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	appai "github.com/smartbiz/backend/internal/application/ai"
	appbilling "github.com/smartbiz/backend/internal/application/billing"
	appcatalog "github.com/smartbiz/backend/internal/application/catalog"
	apppartner "github.com/smartbiz/backend/internal/application/partner"
	apptrade "github.com/smartbiz/backend/internal/application/trade"
	"github.com/smartbiz/backend/internal/infrastructure/ai"
	"github.com/smartbiz/backend/internal/infrastructure/auth"
	"github.com/smartbiz/backend/internal/infrastructure/cache"
	"github.com/smartbiz/backend/internal/infrastructure/config"
	"github.com/smartbiz/backend/internal/infrastructure/logger"
	"github.com/smartbiz/backend/internal/infrastructure/persistence"
	"github.com/smartbiz/backend/internal/interfaces/http/handler"
	"github.com/smartbiz/backend/internal/interfaces/http/router"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	planRepo := persistence.NewGormPlanRepository(db.DB)
	subscriptionRepo := persistence.NewGormSubscriptionRepository(db.DB)
	aiRequestRepo := persistence.NewGormAIRequestRepository(db.DB)
	sequenceRepo := persistence.NewGormDocumentSequenceRepository(db.DB)
	tradeScope := persistence.NewGormTradeTransactionScope(db.DB)
	billingScope := persistence.NewGormBillingTransactionScope(db.DB)

	// Services
	subscriptionService := appbilling.NewSubscriptionService(subscriptionRepo, planRepo, billingScope, log)
	quotaService := appbilling.NewQuotaService(subscriptionService, productRepo, aiRequestRepo, log)
	productService := appcatalog.NewProductService(productRepo, quotaService, log)
	customerService := apppartner.NewCustomerService(customerRepo)
	supplierService := apppartner.NewSupplierService(supplierRepo)
	invoiceService := apptrade.NewInvoiceService(invoiceRepo, customerRepo, sequenceRepo, tradeScope)
	purchaseService := apptrade.NewPurchaseService(purchaseRepo, supplierRepo, sequenceRepo, tradeScope)

	completionClient := ai.NewOpenAIClient(&cfg.AI)
	insightService := appai.NewInsightService(completionClient, quotaService, aiRequestRepo, productRepo, log)

	// The plan cache is optional, quota checks fall back to the database
	// when Redis is not reachable at startup
	if redisClient, err := cache.NewRedisClient(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB); err != nil {
		log.Warn("Redis unavailable, plan cache disabled", zap.Error(err))
	} else {
		subscriptionService.SetPlanCache(cache.NewRedisPlanCache(redisClient))
		defer func() { _ = redisClient.Close() }()
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	engine := router.New(cfg, log, jwtService, router.Handlers{
		System:       handler.NewSystemHandler(db, version),
		Product:      handler.NewProductHandler(productService),
		Customer:     handler.NewCustomerHandler(customerService),
		Supplier:     handler.NewSupplierHandler(supplierService),
		Invoice:      handler.NewInvoiceHandler(invoiceService),
		Purchase:     handler.NewPurchaseHandler(purchaseService),
		Subscription: handler.NewSubscriptionHandler(subscriptionService, quotaService),
		Insight:      handler.NewInsightHandler(insightService),
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
