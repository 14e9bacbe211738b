// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/zakat-manager/backend/config"
	"github.com/zakat-manager/backend/internal/application/adapter"
	"github.com/zakat-manager/backend/internal/application/usecase/asset"
	"github.com/zakat-manager/backend/internal/application/usecase/calculation"
	"github.com/zakat-manager/backend/internal/application/usecase/currency"
	"github.com/zakat-manager/backend/internal/application/usecase/dashboard"
	metalprice "github.com/zakat-manager/backend/internal/application/usecase/metal_price"
	"github.com/zakat-manager/backend/internal/application/usecase/payment"
	"github.com/zakat-manager/backend/internal/domain/valueobject"
	"github.com/zakat-manager/backend/internal/domain/zakat"
	"github.com/zakat-manager/backend/internal/infra/server/router"
	"github.com/zakat-manager/backend/internal/integration/adapters"
	"github.com/zakat-manager/backend/internal/integration/cache"
	"github.com/zakat-manager/backend/internal/integration/entrypoint/controller"
	"github.com/zakat-manager/backend/internal/integration/entrypoint/middleware"
	"github.com/zakat-manager/backend/internal/integration/persistence"
	"github.com/zakat-manager/backend/internal/integration/worker"
)

// refreshRateLimit bounds provider refreshes per user per minute.
const refreshRateLimit = 5

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
	Worker *worker.PriceRefreshWorker
}

// Health reports the state of the external stores. A nil checker is omitted.
type Health struct {
	Database func() bool
	Cache    func() bool
}

// NewInjector creates a new dependency injector with all dependencies wired.
// A nil redisClient keeps the exchange-rate cache in process memory.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, health Health) *Injector {
	// Create repositories
	assetRepo := persistence.NewAssetRepository(db)
	calcRepo := persistence.NewCalculationRepository(db)
	priceRepo := persistence.NewMetalPriceRepository(db)
	paymentRepo := persistence.NewPaymentRepository(db)

	// Create adapters/services
	clientConfig := adapters.ProviderClientConfig{
		Timeout:      cfg.Rates.Timeout,
		MaxRetries:   cfg.Rates.MaxRetries,
		RetryBackoff: cfg.Rates.RetryBackoff,
	}

	var rateCache adapter.RateCache
	if redisClient != nil {
		rateCache = cache.NewRedisRateCache(redisClient, cfg.Redis.RatesKey)
	} else {
		rateCache = cache.NewMemoryRateCache()
	}

	rateProvider := adapters.NewExchangeRateProvider(cfg.Rates.APIURL, clientConfig)

	var priceProvider adapter.MetalPriceProvider
	if cfg.MetalPrices.APIKey != "" {
		priceProvider = adapters.NewGoldAPIProvider(cfg.MetalPrices.APIURL, cfg.MetalPrices.APIKey, cfg.MetalPrices.Currency, clientConfig)
	} else {
		priceProvider = adapters.NewStaticPriceProvider()
	}
	slog.Info("Metal price provider selected", "provider", priceProvider.Name())

	tokenService := adapters.NewTokenService(cfg.JWT.Secret)

	rateService := currency.NewRateService(rateProvider, rateCache, cfg.Rates.TTL).
		WithFallbackTTL(cfg.Rates.FallbackTTL)
	priceService := metalprice.NewPriceService(priceRepo)

	engine := zakat.NewEngine(valueobject.NewCalculationPolicy(
		cfg.Zakat.NisabStandard,
		cfg.Zakat.JewelryPolicy,
		cfg.Zakat.EnforceHawl,
		cfg.Zakat.HawlDays,
		cfg.Zakat.PersonalUseExempt,
	))
	defaultCurrency := cfg.Zakat.DefaultCurrency

	// Create asset use cases
	listAssetsUseCase := asset.NewListAssetsUseCase(assetRepo)
	createAssetUseCase := asset.NewCreateAssetUseCase(assetRepo, defaultCurrency)
	getAssetUseCase := asset.NewGetAssetUseCase(assetRepo)
	updateAssetUseCase := asset.NewUpdateAssetUseCase(assetRepo, defaultCurrency)
	deleteAssetUseCase := asset.NewDeleteAssetUseCase(assetRepo)

	// Create calculation use cases
	calculateUseCase := calculation.NewCalculateZakatUseCase(assetRepo, calcRepo, priceService, rateService, engine, defaultCurrency)
	previewUseCase := calculation.NewPreviewCalculationUseCase(priceService, rateService, engine, defaultCurrency)
	nisabUseCase := calculation.NewGetNisabUseCase(priceService, rateService, engine, defaultCurrency)
	listCalculationsUseCase := calculation.NewListCalculationsUseCase(calcRepo)
	getCalculationUseCase := calculation.NewGetCalculationUseCase(calcRepo)
	deleteCalculationUseCase := calculation.NewDeleteCalculationUseCase(calcRepo)

	// Create metal price use cases
	listPricesUseCase := metalprice.NewListPricesUseCase(priceRepo, priceService)
	setPriceUseCase := metalprice.NewSetPriceUseCase(priceRepo, defaultCurrency)
	refreshPricesUseCase := metalprice.NewRefreshPricesUseCase(priceProvider, priceRepo)
	priceHistoryUseCase := metalprice.NewPriceHistoryUseCase(priceRepo)
	listPuritiesUseCase := metalprice.NewListPuritiesUseCase()

	// Create currency use cases
	listRatesUseCase := currency.NewListRatesUseCase(rateService)
	convertCurrencyUseCase := currency.NewConvertCurrencyUseCase(rateService)

	// Create payment use cases
	listPaymentsUseCase := payment.NewListPaymentsUseCase(paymentRepo)
	createPaymentUseCase := payment.NewCreatePaymentUseCase(paymentRepo, calcRepo, defaultCurrency)
	updatePaymentUseCase := payment.NewUpdatePaymentUseCase(paymentRepo)
	deletePaymentUseCase := payment.NewDeletePaymentUseCase(paymentRepo)

	// Create dashboard use cases
	assetSummaryUseCase := dashboard.NewGetAssetSummaryUseCase(assetRepo, calcRepo, priceService, rateService, engine, defaultCurrency)
	trendsUseCase := dashboard.NewGetTrendsUseCase(calcRepo, paymentRepo, defaultCurrency)

	// Create controllers
	healthController := controller.NewHealthController(health.Database, health.Cache)

	assetController := controller.NewAssetController(
		listAssetsUseCase,
		createAssetUseCase,
		getAssetUseCase,
		updateAssetUseCase,
		deleteAssetUseCase,
	)

	zakatController := controller.NewZakatController(
		calculateUseCase,
		previewUseCase,
		nisabUseCase,
		listCalculationsUseCase,
		getCalculationUseCase,
		deleteCalculationUseCase,
	)

	metalPriceController := controller.NewMetalPriceController(
		listPricesUseCase,
		setPriceUseCase,
		refreshPricesUseCase,
		priceHistoryUseCase,
		listPuritiesUseCase,
	)

	currencyController := controller.NewCurrencyController(
		listRatesUseCase,
		convertCurrencyUseCase,
	)

	paymentController := controller.NewPaymentController(
		listPaymentsUseCase,
		createPaymentUseCase,
		updatePaymentUseCase,
		deletePaymentUseCase,
	)

	dashboardController := controller.NewDashboardController(
		assetSummaryUseCase,
		trendsUseCase,
	)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var refreshRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		refreshRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		refreshRateLimiter = middleware.NewRateLimiterWithConfig(refreshRateLimit, 1*time.Minute)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		assetController,
		zakatController,
		metalPriceController,
		currencyController,
		paymentController,
		dashboardController,
		refreshRateLimiter,
		authMiddleware,
	)

	// Create background worker
	priceWorker := worker.NewPriceRefreshWorker(rateService, refreshPricesUseCase, worker.Config{
		RefreshInterval: cfg.Worker.RefreshInterval,
	})

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
		Worker: priceWorker,
	}
}
