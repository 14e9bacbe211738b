// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/zakat-manager/backend/internal/integration/entrypoint/controller"
	"github.com/zakat-manager/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine               *gin.Engine
	healthController     *controller.HealthController
	assetController      *controller.AssetController
	zakatController      *controller.ZakatController
	metalPriceController *controller.MetalPriceController
	currencyController   *controller.CurrencyController
	paymentController    *controller.PaymentController
	dashboardController  *controller.DashboardController
	refreshRateLimiter   *middleware.RateLimiter
	authMiddleware       *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	assetController *controller.AssetController,
	zakatController *controller.ZakatController,
	metalPriceController *controller.MetalPriceController,
	currencyController *controller.CurrencyController,
	paymentController *controller.PaymentController,
	dashboardController *controller.DashboardController,
	refreshRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:     healthController,
		assetController:      assetController,
		zakatController:      zakatController,
		metalPriceController: metalPriceController,
		currencyController:   currencyController,
		paymentController:    paymentController,
		dashboardController:  dashboardController,
		refreshRateLimiter:   refreshRateLimiter,
		authMiddleware:       authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		// Currency reads are public
		if r.currencyController != nil {
			currency := v1.Group("/currency")
			{
				currency.GET("/rates", r.currencyController.Rates)
				currency.GET("/convert", r.currencyController.Convert)
				if r.metalPriceController != nil {
					currency.GET("/purities", r.metalPriceController.Purities)
				}
			}
		}

		if r.authMiddleware == nil {
			return
		}

		// Asset routes (require authentication)
		if r.assetController != nil {
			assets := v1.Group("/assets")
			assets.Use(r.authMiddleware.Authenticate())
			{
				assets.GET("", r.assetController.List)
				assets.POST("", r.assetController.Create)
				assets.GET("/:id", r.assetController.Get)
				assets.PATCH("/:id", r.assetController.Update)
				assets.DELETE("/:id", r.assetController.Delete)
			}
		}

		// Zakat routes (require authentication)
		if r.zakatController != nil {
			zakat := v1.Group("/zakat")
			zakat.Use(r.authMiddleware.Authenticate())
			{
				zakat.POST("/calculate", r.zakatController.Calculate)
				zakat.POST("/preview", r.zakatController.Preview)
				zakat.GET("/nisab", r.zakatController.Nisab)
				zakat.GET("/calculations", r.zakatController.List)
				zakat.GET("/calculations/:id", r.zakatController.Get)
				zakat.DELETE("/calculations/:id", r.zakatController.Delete)
			}
		}

		// Metal price routes (require authentication)
		if r.metalPriceController != nil {
			prices := v1.Group("/metal-prices")
			prices.Use(r.authMiddleware.Authenticate())
			{
				prices.GET("", r.metalPriceController.List)
				prices.POST("", r.metalPriceController.Set)
				prices.GET("/history", r.metalPriceController.History)
				if r.refreshRateLimiter != nil {
					prices.POST("/refresh", r.refreshRateLimiter.Middleware(), r.metalPriceController.Refresh)
				} else {
					prices.POST("/refresh", r.metalPriceController.Refresh)
				}
			}
		}

		// Payment routes (require authentication)
		if r.paymentController != nil {
			payments := v1.Group("/payments")
			payments.Use(r.authMiddleware.Authenticate())
			{
				payments.GET("", r.paymentController.List)
				payments.POST("", r.paymentController.Create)
				payments.PATCH("/:id", r.paymentController.Update)
				payments.DELETE("/:id", r.paymentController.Delete)
			}
		}

		// Dashboard routes (require authentication)
		if r.dashboardController != nil {
			dashboard := v1.Group("/dashboard")
			dashboard.Use(r.authMiddleware.Authenticate())
			{
				dashboard.GET("/summary", r.dashboardController.Summary)
				dashboard.GET("/trends", r.dashboardController.Trends)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
