package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appbooking "github.com/venuebook/backend/internal/application/booking"
	"github.com/venuebook/backend/internal/domain/booking"
	"github.com/venuebook/backend/internal/infrastructure/cache"
	"github.com/venuebook/backend/internal/infrastructure/config"
	"github.com/venuebook/backend/internal/infrastructure/logger"
	"github.com/venuebook/backend/internal/infrastructure/persistence"
	"github.com/venuebook/backend/internal/infrastructure/receipt"
	"github.com/venuebook/backend/internal/infrastructure/scheduler"
	"github.com/venuebook/backend/internal/infrastructure/telemetry"
	"github.com/venuebook/backend/internal/interfaces/http/handler"
	"github.com/venuebook/backend/internal/interfaces/http/middleware"
	"github.com/venuebook/backend/internal/interfaces/http/router"
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

	log.Info("Starting VenueBook Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing before anything that emits spans
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

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

	// Attach query tracing so DB spans nest under request spans
	if err := telemetry.RegisterOtelGorm(db.DB, telemetry.DBTracingConfig{
		Enabled: cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBName:  cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Initialize repositories
	bookingRepo := persistence.NewGormBookingRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	cancellationRepo := persistence.NewGormCancellationRecordRepository(db.DB)
	ruleRepo := persistence.NewGormCancellationRuleRepository(db.DB)
	referralRepo := persistence.NewGormReferralRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Rule source: serve cancellation tiers from Redis when the cache is
	// enabled, fall back to the database repository otherwise
	var ruleSource booking.RuleSource = ruleRepo
	if cfg.RuleCache.Enabled {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		ruleSource = cache.NewRedisRuleCache(redisClient, ruleSource, cfg.RuleCache.TTL, log)
		log.Info("Rule cache enabled", zap.Duration("ttl", cfg.RuleCache.TTL))
	}

	// Receipt generation renders a PDF per recorded payment via headless Chrome
	var receipts appbooking.ReceiptNotifier = receipt.NoopNotifier{}
	var receiptSvc *receipt.Service
	if cfg.Receipt.Enabled {
		renderer := receipt.NewChromedpRenderer(receipt.RendererConfig{
			Timeout:   cfg.Receipt.Timeout,
			NoSandbox: true,
			Logger:    log,
		})
		receiptSvc, err = receipt.NewService(renderer, cfg.Receipt, log)
		if err != nil {
			log.Fatal("Failed to initialize receipt service", zap.Error(err))
		}
		receipts = receiptSvc
		log.Info("Receipt generation enabled", zap.String("output_dir", cfg.Receipt.OutputDir))
	}

	// Initialize application services
	paymentService := appbooking.NewPaymentService(txScope, bookingRepo, paymentRepo, receipts, log)
	cancellationService := appbooking.NewCancellationService(txScope, ruleSource, cancellationRepo, log)
	referralService := appbooking.NewReferralService(txScope, referralRepo, log)
	expiryService := appbooking.NewExpiryService(bookingRepo, log)

	// Daily expiry sweep cancels ADVANCE bookings past their balance due date
	var expiryScheduler *scheduler.ExpiryCronScheduler
	if cfg.Scheduler.Enabled {
		executor := scheduler.NewExpiryJobExecutor(expiryService, log)
		expiryScheduler = scheduler.NewExpiryCronScheduler(cfg.Scheduler, executor, log)
		if err := expiryScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start expiry scheduler", zap.Error(err))
		}
		log.Info("Expiry scheduler started",
			zap.Int("daily_run_hour", cfg.Scheduler.DailyRunHour),
			zap.Int("daily_run_minute", cfg.Scheduler.DailyRunMinute),
		)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin engine without default middleware
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
	}

	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}

	// Initialize HTTP handlers
	paymentHandler := handler.NewPaymentHandler(paymentService)
	cancellationHandler := handler.NewCancellationHandler(cancellationService)
	referralHandler := handler.NewReferralHandler(referralService)
	var schedulerStatus handler.ExpiryScheduler
	if expiryScheduler != nil {
		schedulerStatus = expiryScheduler
	}
	systemHandler := handler.NewSystemHandler(db, schedulerStatus)

	// Register routes under /api/v1
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	paymentRoutes := router.NewDomainGroup("payment", "/payment")
	paymentRoutes.POST("", paymentHandler.RecordPayment)
	paymentRoutes.POST("/pay-balance/:bookingId", paymentHandler.PayBalance)
	paymentRoutes.GET("/booking/:id", paymentHandler.GetBookingPayment)

	cancellationRoutes := router.NewDomainGroup("cancellation", "/cancellation")
	cancellationRoutes.POST("/cancel/:bookingId", cancellationHandler.Cancel)
	cancellationRoutes.GET("/details/:bookingId", cancellationHandler.Details)

	referralRoutes := router.NewDomainGroup("referral", "/referral")
	referralRoutes.GET("", referralHandler.List)
	referralRoutes.POST("/pay", referralHandler.PayCommission)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/health", systemHandler.Health)
	systemRoutes.GET("/scheduler/status", systemHandler.GetSchedulerStatus)
	systemRoutes.POST("/scheduler/trigger", systemHandler.TriggerExpirySweep)

	r.Register(paymentRoutes).
		Register(cancellationRoutes).
		Register(referralRoutes).
		Register(systemRoutes)

	r.Setup()

	// Simple ping at root API level for load balancer checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

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

	if expiryScheduler != nil {
		if err := expiryScheduler.Stop(ctx); err != nil {
			log.Error("Error stopping expiry scheduler", zap.Error(err))
		}
	}

	if receiptSvc != nil {
		if err := receiptSvc.Close(); err != nil {
			log.Error("Error closing receipt service", zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
}
