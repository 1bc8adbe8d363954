package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	cashdeskapp "github.com/safo-124/high-purchase-sub007/internal/application/cashdesk"
	collectionsapp "github.com/safo-124/high-purchase-sub007/internal/application/collections"
	commissionapp "github.com/safo-124/high-purchase-sub007/internal/application/commission"
	ledgerapp "github.com/safo-124/high-purchase-sub007/internal/application/ledger"
	partnerapp "github.com/safo-124/high-purchase-sub007/internal/application/partner"
	walletapp "github.com/safo-124/high-purchase-sub007/internal/application/wallet"
	"github.com/safo-124/high-purchase-sub007/internal/infrastructure/auth"
	"github.com/safo-124/high-purchase-sub007/internal/infrastructure/cache"
	"github.com/safo-124/high-purchase-sub007/internal/infrastructure/config"
	"github.com/safo-124/high-purchase-sub007/internal/infrastructure/logger"
	"github.com/safo-124/high-purchase-sub007/internal/infrastructure/notify"
	"github.com/safo-124/high-purchase-sub007/internal/infrastructure/persistence"
	"github.com/safo-124/high-purchase-sub007/internal/interfaces/http/handler"
	"github.com/safo-124/high-purchase-sub007/internal/interfaces/http/middleware"
	"github.com/safo-124/high-purchase-sub007/internal/interfaces/http/router"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting hire-purchase ledger",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log, logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Redis backs the token blacklist and the commission-run idempotency
	// store. Both degrade gracefully when Redis is unreachable.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	var blacklist auth.TokenBlacklist
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unreachable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	}
	cancelPing()

	idempotencyStore, err := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}

	// Repositories
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	refundRepo := persistence.NewGormRefundRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	walletTxRepo := persistence.NewGormWalletTransactionRepository(db.DB)
	commissionRepo := persistence.NewGormCommissionRepository(db.DB)
	summaryRepo := persistence.NewGormDailySummaryRepository(db.DB)
	auditSink := persistence.NewGormAuditSink(db.DB, log)
	stockLedger := persistence.NewGormStockLedger(db.DB)
	notifier := notify.NewLogSink(log)

	policies, err := config.NewPolicyProvider(cfg.Ledger)
	if err != nil {
		log.Fatal("Invalid credit policy configuration", zap.Error(err))
	}

	// Application services
	customerService := partnerapp.NewCustomerService(customerRepo, auditSink, log)
	purchaseService := ledgerapp.NewPurchaseService(purchaseRepo, paymentRepo, customerRepo, policies, stockLedger, auditSink, log)
	walletService := walletapp.NewWalletService(customerRepo, walletTxRepo, db, auditSink, log)
	paymentService := ledgerapp.NewPaymentService(purchaseRepo, paymentRepo, db, walletService, auditSink, notifier, log)
	refundService := ledgerapp.NewRefundService(purchaseRepo, refundRepo, customerRepo, walletTxRepo, db, auditSink, log)
	commissionService := commissionapp.NewCommissionService(commissionRepo, paymentRepo, idempotencyStore, auditSink, log)
	cashdeskService := cashdeskapp.NewCashdeskService(summaryRepo, paymentRepo, auditSink, log)
	analyticsService := collectionsapp.NewAnalyticsService(purchaseRepo, paymentRepo, log)

	jwtService := auth.NewJWTService(cfg.JWT)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))

	// Health endpoints stay outside the authenticated API group
	systemHandler := handler.NewSystemHandler(db.DB, version)
	systemHandler.RegisterRoutes(engine.Group(""))

	r := router.New(engine, router.WithMiddleware(middleware.JWTAuth(middleware.JWTConfig{
		JWTService: jwtService,
		Blacklist:  blacklist,
		Logger:     log,
	})))
	r.Register(
		handler.NewCustomerHandler(customerService),
		handler.NewPurchaseHandler(purchaseService, refundService, cfg.Ledger.GraceDays),
		handler.NewPaymentHandler(paymentService),
		handler.NewWalletHandler(walletService),
		handler.NewCommissionHandler(commissionService, decimal.NewFromFloat(cfg.Commission.DefaultRate)),
		handler.NewCashdeskHandler(cashdeskService),
		handler.NewAnalyticsHandler(analyticsService),
	)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis client", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
