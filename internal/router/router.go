package router

import (
	"context"
	"time"

	"chopengine/internal/config"
	"chopengine/internal/handler"
	"chopengine/internal/infra"
	"chopengine/internal/middleware"
	"chopengine/internal/pricing"
	"chopengine/internal/repository"
	"chopengine/internal/service"
	"chopengine/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine together
// with the dashboard poller, which the caller starts and stops.
// Dependency graph: Handler ← Service ← Repository/Gateway ← DB/Redis/remote store
//
// rdb may be nil (in-memory ledgers and sales counters). orders may be nil,
// in which case checkout, analytics and inventory use the local store.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client, orders *infra.OrdersClient) (*gin.Engine, *worker.DashboardPoller) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Warn().Err(err).Msg("falling back to UTC")
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	go limiter.RunJanitor(ctx.Done(), 5*time.Minute)

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(limiter.Middleware())

	// ── Repositories ─────────────────────────────────────────────────────────
	orderRepo := repository.NewOrderRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)

	var (
		ledgerStore  repository.LedgerStore
		salesCounter repository.SalesCounter
	)
	if rdb != nil {
		ledgerStore = repository.NewRedisLedgerStore(rdb, cfg.LedgerTTL())
		salesCounter = repository.NewRedisSalesCounter(rdb)
	} else {
		ledgerStore = repository.NewMemoryLedgerStore()
		salesCounter = repository.NewMemorySalesCounter()
	}

	// ── Gateways ─────────────────────────────────────────────────────────────
	orderSvc := service.NewOrderService(orderRepo, cfg.BusinessName, loc)

	var (
		orderGW     service.OrderGateway     = service.NewLocalOrderGateway(orderSvc)
		inventoryGW service.InventoryGateway = service.NewStockService(inventoryRepo)
		breaker     func() string
	)
	if orders != nil {
		orderGW, inventoryGW = orders, orders
		breaker = func() string { return orders.BreakerState().String() }
	}

	// ── Services ─────────────────────────────────────────────────────────────
	rules := pricing.Rules{PackPrice: cfg.PackPriceDecimal(), TaxRate: cfg.TaxRateDecimal()}
	ledgerSvc := service.NewLedgerService(ledgerStore, rules, cfg.BulkInitialQty)
	checkoutSvc := service.NewCheckoutService(ledgerSvc, orderGW, salesCounter, rules, time.Now, loc)
	analyticsSvc := service.NewAnalyticsService(orderGW, time.Now, loc, cfg.TopProductsLimit)
	inventorySvc := service.NewInventoryService(inventoryGW, orderGW)

	poller := worker.NewDashboardPoller(analyticsSvc, cfg.DashboardPollInterval())

	// ── Handlers ─────────────────────────────────────────────────────────────
	sessionsH := handler.NewSessionsHandler(ledgerSvc, checkoutSvc)
	analyticsH := handler.NewAnalyticsHandler(analyticsSvc, poller)
	ordersH := handler.NewOrdersHandler(orderSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb, breaker))

	// Store surface
	ord := r.Group("/orders")
	{
		ord.POST("", ordersH.Create)
		ord.GET("", ordersH.List)
		ord.GET("/:id", ordersH.Get)
		ord.PATCH("/:id", ordersH.Update)
		ord.DELETE("/:id", ordersH.Delete)
		ord.GET("/:id/receipt", ordersH.Receipt)
	}

	inv := r.Group("/inventory")
	{
		inv.GET("/items", inventoryH.ListItems)
		inv.POST("/items", inventoryH.CreateItem)
		inv.PATCH("/items/:id", inventoryH.UpdateItem)
		inv.DELETE("/items/:id", inventoryH.DeleteItem)
		inv.GET("/stock", inventoryH.ListStock)
		inv.POST("/stock", inventoryH.Restock)
		inv.PATCH("/stock/:id", inventoryH.UpdateStock)
		inv.DELETE("/stock/:id", inventoryH.DeleteStock)
		inv.GET("/movements", inventoryH.Movements)
		inv.GET("/summary", inventoryH.Summary)
	}

	// Engine surface
	v1 := r.Group("/v1")
	{
		s := v1.Group("/sessions/:session")
		{
			s.GET("/ledger", sessionsH.GetLedger)
			s.DELETE("/ledger", sessionsH.ClearLedger)
			s.POST("/ledger/items", sessionsH.AddItem)
			s.POST("/ledger/items/:category/:id/increment", sessionsH.Increment)
			s.POST("/ledger/items/:category/:id/decrement", sessionsH.Decrement)
			s.DELETE("/ledger/items/:category/:id", sessionsH.RemoveItem)
			s.POST("/checkout", sessionsH.Checkout)
			s.GET("/sales/today", sessionsH.TodaysSales)
		}

		a := v1.Group("/analytics")
		{
			a.GET("/revenue", analyticsH.Revenue)
			a.GET("/payments", analyticsH.Payments)
			a.GET("/top-products", analyticsH.TopProducts)
			a.GET("/series", analyticsH.Series)
			a.GET("/dashboard", analyticsH.Dashboard)
			a.POST("/dashboard/refresh", analyticsH.RefreshDashboard)
		}
	}

	// Swagger UI, outside production only
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, poller
}
