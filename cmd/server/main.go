package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/scm/backend/internal/application/catalog"
	fulfillmentapp "github.com/scm/backend/internal/application/fulfillment"
	inventoryapp "github.com/scm/backend/internal/application/inventory"
	partnerapp "github.com/scm/backend/internal/application/partner"
	tradeapp "github.com/scm/backend/internal/application/trade"
	"github.com/scm/backend/internal/domain/inventory"
	"github.com/scm/backend/internal/domain/shared"
	"github.com/scm/backend/internal/infrastructure/cache"
	"github.com/scm/backend/internal/infrastructure/config"
	"github.com/scm/backend/internal/infrastructure/event"
	"github.com/scm/backend/internal/infrastructure/logger"
	"github.com/scm/backend/internal/infrastructure/persistence"
	"github.com/scm/backend/internal/interfaces/http/handler"
	"github.com/scm/backend/internal/interfaces/http/middleware"
	"github.com/scm/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting SCM Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	inventoryItemRepo := persistence.NewGormInventoryItemRepository(db.DB)
	salesOrderRepo := persistence.NewGormSalesOrderRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)
	returnRepo := persistence.NewGormReturnRepository(db.DB)

	// Transaction scopes per bounded context
	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)
	tradeScope := persistence.NewGormTradeTransactionScope(db.DB)
	fulfillmentScope := persistence.NewGormFulfillmentTransactionScope(db.DB)

	// Initialize application services
	allocator := inventory.NewStockAllocationService()

	productService := catalogapp.NewProductService(productRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo)
	warehouseService := partnerapp.NewWarehouseService(warehouseRepo)
	inventoryService := inventoryapp.NewInventoryService(inventoryItemRepo, productRepo, inventoryScope)
	transferService := inventoryapp.NewTransferService(inventoryScope)
	salesOrderService := tradeapp.NewSalesOrderService(salesOrderRepo, tradeScope, allocator)
	purchaseOrderService := tradeapp.NewPurchaseOrderService(purchaseOrderRepo, tradeScope)
	shipmentService := fulfillmentapp.NewShipmentService(shipmentRepo, fulfillmentScope)
	returnService := fulfillmentapp.NewReturnService(returnRepo, fulfillmentScope)

	// Event bus with idempotent low-stock handler
	storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log))
	idempotencyStore, err := storeFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	lowStockHandler := inventoryapp.NewStockBelowThresholdHandler(log)
	eventBus.Subscribe(event.NewIdempotentHandler(
		lowStockHandler,
		idempotencyStore,
		log,
		event.WithIdempotencyConfig(shared.IdempotencyConfig{
			TTL:     cfg.Event.IdempotencyTTL,
			Enabled: true,
		}),
	))

	productService.SetEventPublisher(eventBus)
	inventoryService.SetEventPublisher(eventBus)
	salesOrderService.SetEventPublisher(eventBus)
	purchaseOrderService.SetEventPublisher(eventBus)
	shipmentService.SetEventPublisher(eventBus)
	returnService.SetEventPublisher(eventBus)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	warehouseHandler := handler.NewWarehouseHandler(warehouseService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService, transferService)
	salesOrderHandler := handler.NewSalesOrderHandler(salesOrderService)
	purchaseOrderHandler := handler.NewPurchaseOrderHandler(purchaseOrderService)
	shipmentHandler := handler.NewShipmentHandler(shipmentService)
	returnHandler := handler.NewReturnHandler(returnService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID, panic recovery, request logging, body limit
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Register API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/products", productHandler.Create)
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)
	catalogRoutes.GET("/products/sku/:sku", productHandler.GetBySKU)
	catalogRoutes.PUT("/products/:id", productHandler.Update)
	catalogRoutes.POST("/products/:id/activate", productHandler.Activate)
	catalogRoutes.POST("/products/:id/deactivate", productHandler.Deactivate)
	catalogRoutes.POST("/products/:id/discontinue", productHandler.Discontinue)

	partnerRoutes := router.NewDomainGroup("partner", "/partner")
	partnerRoutes.POST("/suppliers", supplierHandler.Create)
	partnerRoutes.GET("/suppliers", supplierHandler.List)
	partnerRoutes.GET("/suppliers/:id", supplierHandler.GetByID)
	partnerRoutes.PUT("/suppliers/:id", supplierHandler.Update)
	partnerRoutes.POST("/suppliers/:id/activate", supplierHandler.Activate)
	partnerRoutes.POST("/suppliers/:id/deactivate", supplierHandler.Deactivate)
	partnerRoutes.POST("/warehouses", warehouseHandler.Create)
	partnerRoutes.GET("/warehouses", warehouseHandler.List)
	partnerRoutes.GET("/warehouses/active", warehouseHandler.ListActive)
	partnerRoutes.GET("/warehouses/:id", warehouseHandler.GetByID)
	partnerRoutes.PUT("/warehouses/:id", warehouseHandler.Update)
	partnerRoutes.PUT("/warehouses/:id/status", warehouseHandler.SetStatus)

	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.GET("/items", inventoryHandler.List)
	inventoryRoutes.GET("/products/:product_id/items", inventoryHandler.ListByProduct)
	inventoryRoutes.POST("/increment", inventoryHandler.Increment)
	inventoryRoutes.POST("/decrement", inventoryHandler.Decrement)
	inventoryRoutes.POST("/release", inventoryHandler.Release)
	inventoryRoutes.POST("/transfer", inventoryHandler.Transfer)

	tradeRoutes := router.NewDomainGroup("trade", "/trade")
	tradeRoutes.POST("/sales-orders", salesOrderHandler.Create)
	tradeRoutes.GET("/sales-orders", salesOrderHandler.List)
	tradeRoutes.GET("/sales-orders/:id", salesOrderHandler.Get)
	tradeRoutes.POST("/sales-orders/:id/cancel", salesOrderHandler.Cancel)
	tradeRoutes.POST("/purchase-orders", purchaseOrderHandler.Create)
	tradeRoutes.GET("/purchase-orders", purchaseOrderHandler.List)
	tradeRoutes.GET("/purchase-orders/:id", purchaseOrderHandler.Get)
	tradeRoutes.POST("/purchase-orders/:id/approve", purchaseOrderHandler.Approve)
	tradeRoutes.POST("/purchase-orders/:id/order", purchaseOrderHandler.MarkOrdered)
	tradeRoutes.POST("/purchase-orders/:id/receive", purchaseOrderHandler.Receive)
	tradeRoutes.POST("/purchase-orders/:id/cancel", purchaseOrderHandler.Cancel)
	tradeRoutes.POST("/purchase-orders/auto-generate", purchaseOrderHandler.AutoGenerate)

	fulfillmentRoutes := router.NewDomainGroup("fulfillment", "/fulfillment")
	fulfillmentRoutes.POST("/shipments", shipmentHandler.Create)
	fulfillmentRoutes.GET("/shipments", shipmentHandler.List)
	fulfillmentRoutes.GET("/shipments/:id", shipmentHandler.Get)
	fulfillmentRoutes.PUT("/shipments/:id/status", shipmentHandler.UpdateStatus)
	fulfillmentRoutes.GET("/orders/:order_id/shipments", shipmentHandler.ListByOrder)
	fulfillmentRoutes.POST("/returns", returnHandler.Create)
	fulfillmentRoutes.GET("/returns", returnHandler.List)
	fulfillmentRoutes.GET("/returns/:id", returnHandler.Get)
	fulfillmentRoutes.POST("/returns/:id/approve", returnHandler.Approve)
	fulfillmentRoutes.POST("/returns/:id/reject", returnHandler.Reject)
	fulfillmentRoutes.POST("/returns/:id/process", returnHandler.Process)
	fulfillmentRoutes.GET("/orders/:order_id/returns", returnHandler.ListByOrder)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/health", systemHandler.Health)

	r.Register(catalogRoutes).
		Register(partnerRoutes).
		Register(inventoryRoutes).
		Register(tradeRoutes).
		Register(fulfillmentRoutes).
		Register(systemRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if err := eventBus.Stop(ctx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
