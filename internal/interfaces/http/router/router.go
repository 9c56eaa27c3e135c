package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smartbiz/backend/internal/infrastructure/auth"
	"github.com/smartbiz/backend/internal/infrastructure/config"
	"github.com/smartbiz/backend/internal/infrastructure/logger"
	"github.com/smartbiz/backend/internal/interfaces/http/handler"
	"github.com/smartbiz/backend/internal/interfaces/http/middleware"
)

// Handlers groups the resource handlers wired into the router
type Handlers struct {
	System       *handler.SystemHandler
	Product      *handler.ProductHandler
	Customer     *handler.CustomerHandler
	Supplier     *handler.SupplierHandler
	Invoice      *handler.InvoiceHandler
	Purchase     *handler.PurchaseHandler
	Subscription *handler.SubscriptionHandler
	Insight      *handler.InsightHandler
}

// New builds the gin engine with middleware and all API routes
func New(cfg *config.Config, log *zap.Logger, jwtService *auth.JWTService, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log, "/health", "/ready"))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.JWTAuth(middleware.JWTAuthConfig{
		JWTService: jwtService,
		SkipPaths:  []string{"/health", "/ready"},
	}))

	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	api := engine.Group("/api/v1")
	{
		products := api.Group("/products")
		{
			products.POST("", h.Product.Create)
			products.GET("", h.Product.List)
			products.GET("/:id", h.Product.Get)
			products.PUT("/:id", h.Product.Update)
			products.POST("/:id/activate", h.Product.Activate)
			products.POST("/:id/deactivate", h.Product.Deactivate)
		}

		customers := api.Group("/customers")
		{
			customers.POST("", h.Customer.Create)
			customers.GET("", h.Customer.List)
			customers.GET("/:id", h.Customer.Get)
			customers.PUT("/:id", h.Customer.Update)
			customers.DELETE("/:id", h.Customer.Delete)
		}

		suppliers := api.Group("/suppliers")
		{
			suppliers.POST("", h.Supplier.Create)
			suppliers.GET("", h.Supplier.List)
			suppliers.GET("/:id", h.Supplier.Get)
			suppliers.PUT("/:id", h.Supplier.Update)
			suppliers.DELETE("/:id", h.Supplier.Delete)
		}

		invoices := api.Group("/invoices")
		{
			invoices.POST("", h.Invoice.Create)
			invoices.GET("", h.Invoice.List)
			invoices.GET("/number/:number", h.Invoice.GetByNumber)
			invoices.GET("/:id", h.Invoice.Get)
			invoices.POST("/:id/confirm", h.Invoice.Confirm)
			invoices.POST("/:id/cancel", h.Invoice.Cancel)
			invoices.POST("/:id/payments", h.Invoice.RecordPayment)
		}

		purchases := api.Group("/purchases")
		{
			purchases.POST("", h.Purchase.Create)
			purchases.GET("", h.Purchase.List)
			purchases.GET("/number/:number", h.Purchase.GetByNumber)
			purchases.GET("/:id", h.Purchase.Get)
			purchases.POST("/:id/confirm", h.Purchase.Confirm)
			purchases.POST("/:id/cancel", h.Purchase.Cancel)
		}

		api.GET("/plans", h.Subscription.ListPlans)

		subscription := api.Group("/subscription")
		{
			subscription.GET("", h.Subscription.GetCurrent)
			subscription.POST("/plan", h.Subscription.AssignPlan)
			subscription.GET("/usage", h.Subscription.GetUsage)
		}

		api.POST("/insights", h.Insight.Ask)
	}

	return engine
}
