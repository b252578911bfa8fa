package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/davidokon/secretshop/internal/domain/usecase/account"
	"github.com/davidokon/secretshop/internal/domain/usecase/catalog"
	"github.com/davidokon/secretshop/internal/domain/usecase/funding"
	"github.com/davidokon/secretshop/internal/domain/usecase/purchase"

	cacheport "github.com/davidokon/secretshop/internal/domain/port/cache"
	eventport "github.com/davidokon/secretshop/internal/domain/port/event"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/api/handler"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/api/routes"
	rediscache "github.com/davidokon/secretshop/internal/infrastructure/adapter/cache"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/database"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/events"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/gateway/paystack"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/logger"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/metrics"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/reference"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/repository"
	"github.com/davidokon/secretshop/internal/infrastructure/adapter/session"
	timeProvider "github.com/davidokon/secretshop/internal/infrastructure/adapter/time"
	"github.com/davidokon/secretshop/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	appLogger.SetLevel(logger.ParseLevel(cfg.Logger.Level))
	defer func() { _ = appLogger.Flush() }()

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Setup database configuration
	dbConfig := &database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
	}

	// Connect to the database
	conn, err := database.NewConnection(dbConfig, appLogger, tp)
	if err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() { _ = conn.Close() }()

	// Run migrations
	if err := database.Migrate(conn.DB); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(conn.DB, tp, appLogger)
	productRepo := repository.NewProductRepository(conn.DB, tp, appLogger)
	orderRepo := repository.NewOrderRepository(conn.DB, appLogger)
	txRepo := repository.NewTransactionRepository(conn.DB, tp, appLogger)

	// Unit of work
	uow := database.NewUnitOfWork(conn.DB, appLogger, tp)

	// Optional Redis read-through cache
	var shopCache cacheport.Cache
	if cfg.App.CacheEnabled {
		redisCache, err := rediscache.NewRedisCache(cfg.Redis, appLogger)
		if err != nil {
			appLogger.Error("Failed to connect to redis", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		defer func() { _ = redisCache.Close() }()
		shopCache = redisCache
	}

	// Optional Kafka audit event producer
	var publisher eventport.Publisher
	if cfg.KafkaEnabled() {
		kafkaPublisher := events.NewKafkaPublisher(cfg.ToEvents(), appLogger)
		defer func() { _ = kafkaPublisher.Close() }()
		publisher = kafkaPublisher
	}

	// Payment gateway
	gateway := paystack.NewClient(cfg.Paystack, appLogger)

	// Funding reference generator
	refGen, err := reference.NewSnowflakeGenerator(cfg.App.SnowflakeNode)
	if err != nil {
		appLogger.Error("Failed to create reference generator", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Sessions and admin capability tokens
	sessionManager := session.NewManager(cfg.Session)
	adminGuard := session.NewAdminGuard(cfg.Admin, tp)

	// Metrics
	m := metrics.New()

	// Initialize use cases
	purchaseService := purchase.NewService(uow, productRepo, publisher, shopCache, tp, appLogger)
	fundingService := funding.NewService(uow, userRepo, txRepo, gateway, refGen, publisher, shopCache, tp, appLogger)
	accountService := account.NewService(userRepo, orderRepo, publisher, shopCache, tp, appLogger)
	catalogService := catalog.NewService(productRepo, orderRepo, userRepo, shopCache, tp, appLogger)

	// Initialize API handlers
	handlers := routes.Handlers{
		Account:  handler.NewAccountHandler(accountService, sessionManager, appLogger),
		Shop:     handler.NewShopHandler(catalogService, purchaseService, sessionManager, appLogger),
		Purchase: handler.NewPurchaseHandler(purchaseService, sessionManager, m, appLogger),
		Wallet:   handler.NewWalletHandler(fundingService, sessionManager, m, cfg.App.CallbackURL(), appLogger),
		Webhook:  handler.NewWebhookHandler(fundingService, cfg.Paystack.SecretKey, m, appLogger),
		Admin:    handler.NewAdminHandler(catalogService, sessionManager, adminGuard, appLogger),
	}

	// Initialize Gin router
	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, m)
	routes.SetupRoutes(router, handlers, sessionManager, adminGuard, m, conn.Ping)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	// Create a deadline to wait for
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Shutdown the server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	if cfg.Database.Host == "" {
		missingConfigs = append(missingConfigs, "database.host (or SHOP_DB_HOST environment variable)")
	}
	if cfg.Database.Username == "" {
		missingConfigs = append(missingConfigs, "database.username (or SHOP_DB_USERNAME environment variable)")
	}
	if cfg.Database.Password == "" {
		missingConfigs = append(missingConfigs, "database.password (or SHOP_DB_PASSWORD environment variable)")
	}
	if cfg.Database.Database == "" {
		missingConfigs = append(missingConfigs, "database.database (or SHOP_DB_NAME environment variable)")
	}

	if cfg.Session.Secret == "" {
		missingConfigs = append(missingConfigs, "session.secret (or SHOP_SESSION_SECRET environment variable)")
	}
	if cfg.Admin.Passcode == "" {
		missingConfigs = append(missingConfigs, "admin.passcode (or SHOP_ADMIN_PASSCODE environment variable)")
	}
	if cfg.Admin.SigningKey == "" {
		missingConfigs = append(missingConfigs, "admin.signing_key (or SHOP_ADMIN_SIGNING_KEY environment variable)")
	}
	if cfg.Paystack.SecretKey == "" {
		missingConfigs = append(missingConfigs, "paystack.secret_key (or SHOP_PAYSTACK_SECRET_KEY environment variable)")
	}

	if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}
	return nil
}
