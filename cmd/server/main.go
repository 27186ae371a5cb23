package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/bizify/backend/internal/application/billing"
	identityapp "github.com/bizify/backend/internal/application/identity"
	partnerapp "github.com/bizify/backend/internal/application/partner"
	printingapp "github.com/bizify/backend/internal/application/printing"
	transferapp "github.com/bizify/backend/internal/application/transfer"
	"github.com/bizify/backend/internal/infrastructure/auth"
	"github.com/bizify/backend/internal/infrastructure/cache"
	"github.com/bizify/backend/internal/infrastructure/config"
	"github.com/bizify/backend/internal/infrastructure/event"
	"github.com/bizify/backend/internal/infrastructure/logger"
	"github.com/bizify/backend/internal/infrastructure/persistence"
	"github.com/bizify/backend/internal/infrastructure/printing"
	"github.com/bizify/backend/internal/infrastructure/storage"
	"github.com/bizify/backend/internal/infrastructure/telemetry"
	transfer "github.com/bizify/backend/internal/infrastructure/transfer"
	"github.com/bizify/backend/internal/interfaces/http/handler"
	"github.com/bizify/backend/internal/interfaces/http/middleware"
	"github.com/bizify/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	authRateLimit       = 20
	authRateLimitWindow = time.Minute
	shutdownTimeout     = 30 * time.Second
	// maxZipEntrySize caps a single decompressed entry of an uploaded archive
	maxZipEntrySize = 64 << 20
)

//	@title			Bizify API
//	@version		1.0
//	@description	Invoicing backend: customers, invoices, company settings, PDF rendering and data export/import.

//	@host		localhost:8000
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	baseLog, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// Telemetry: traces, metrics, OTLP log bridge and profiles
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log := loggerProvider.Bridge(baseLog, logger.ParseLevel(cfg.Log.Level))
	defer func() {
		_ = log.Sync()
	}()

	profiler, err := telemetry.NewProfiler(cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	log.Info("Starting Bizify backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Database.AutoMigrate || cfg.Database.Driver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate database schema", zap.Error(err))
		}
	}
	if err := telemetry.InstrumentDB(db.DB, cfg.Telemetry, cfg.Database.Driver, log); err != nil {
		log.Fatal("Failed to instrument database", zap.Error(err))
	}
	meter := meterProvider.Meter("bizify")
	if _, err := telemetry.RegisterPoolMetrics(meter, db.DB); err != nil {
		log.Warn("Connection pool metrics unavailable", zap.Error(err))
	}
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	invoicingMetrics, err := telemetry.NewInvoicingMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create invoicing metrics", zap.Error(err))
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Domain events
	eventBus := event.NewInMemoryEventBus(log)
	auditLogger := event.NewInvoiceAuditLogger(log)
	metricsHandler := event.NewInvoiceMetricsHandler(invoicingMetrics)
	eventBus.Subscribe(auditLogger, auditLogger.EventTypes()...)
	eventBus.Subscribe(metricsHandler, metricsHandler.EventTypes()...)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, settingsRepo, jwtService, log)
	customerService := partnerapp.NewCustomerService(customerRepo, invoiceRepo, log)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, customerRepo, txScope, log)
	invoiceService.SetEventPublisher(eventBus)
	statsService := billingapp.NewStatsService(invoiceRepo, customerRepo, log)
	settingsService := billingapp.NewSettingsService(settingsRepo, txScope, log)

	catalog, err := printing.LoadCatalog()
	if err != nil {
		log.Fatal("Failed to load invoice translations", zap.Error(err))
	}
	pdfService := printingapp.NewInvoicePDFService(invoiceRepo, customerRepo, settingsRepo,
		printing.NewGofpdfRenderer(catalog, log), log)

	exportService := transferapp.NewExportService(userRepo, customerRepo, invoiceRepo, settingsRepo, log)
	exportService.RegisterEncoder(transferapp.FormatJSON, transfer.NewJSONEncoder())
	exportService.RegisterEncoder(transferapp.FormatCSV, transfer.NewCSVEncoder())
	exportService.RegisterEncoder(transferapp.FormatExcel, transfer.NewExcelEncoder())
	exportService.RegisterEncoder(transferapp.FormatBackup, transfer.NewBackupEncoder())
	if cfg.Storage.Enabled {
		archiveStore, err := storage.NewS3ArchiveStore(ctx, &cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiration))
		if err != nil {
			log.Fatal("Failed to create archive store", zap.Error(err))
		}
		if err := archiveStore.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to prepare archive bucket", zap.Error(err))
		}
		exportService.SetArchiveStore(archiveStore)
	}

	importService := transferapp.NewImportService(customerRepo, invoiceRepo, settingsRepo, txScope,
		transfer.NewReader(maxZipEntrySize, log), log)
	importService.SetMetrics(invoicingMetrics)

	idempotencyStore, err := cache.NewIdempotencyStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.App.IsProduction()),
	).CreateStore(ctx)
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		_ = idempotencyStore.Close()
	}()

	// HTTP
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	httpMetrics, err := middleware.HTTPMetrics(meterProvider.Meter("bizify.http"))
	if err != nil {
		log.Fatal("Failed to create HTTP metrics", zap.Error(err))
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	tracingCfg := middleware.DefaultTracingConfig()
	tracingCfg.ServiceName = cfg.Telemetry.ServiceName
	tracingCfg.Enabled = tracerProvider.IsEnabled()

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	securityCfg := middleware.DefaultSecurityConfig()
	securityCfg.HSTSEnabled = cfg.App.IsProduction()

	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		logger.GinMiddleware(log),
		middleware.TracingWithConfig(tracingCfg),
		middleware.SpanAttributes(),
		middleware.SpanErrorMarker(),
		httpMetrics,
		middleware.Profiling(profiler.IsEnabled()),
		middleware.SecureWithConfig(securityCfg),
		middleware.CORSWithConfig(corsCfg),
		middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
			MaxBytes:   cfg.HTTP.MaxBodySize,
			PathLimits: map[string]int64{"/api/v1/import": cfg.Import.MaxUploadSize},
		}),
	)

	engine.GET("/health", handler.NewHealthHandler(db).Check)

	authLimiter := middleware.NewRateLimiter(authRateLimit, authRateLimitWindow)
	defer authLimiter.Stop()

	jwtAuth := middleware.JWTAuthWithConfig(middleware.AuthConfig{
		Authenticator: authService,
		Logger:        log,
	})
	router.MountDocs(engine, middleware.SwaggerProtection(middleware.SwaggerConfig{
		Enabled:     cfg.Swagger.Enabled,
		RequireAuth: cfg.Swagger.RequireAuth,
		AllowedIPs:  cfg.Swagger.AllowedIPs,
	}, jwtAuth))

	r := router.NewRouter(engine, router.WithAuth(jwtAuth))
	router.Mount(r, router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Customers: handler.NewCustomerHandler(customerService),
		Invoices:  handler.NewInvoiceHandler(invoiceService, statsService, pdfService).WithPDFRecorder(invoicingMetrics),
		Dashboard: handler.NewDashboardHandler(statsService),
		Settings:  handler.NewSettingsHandler(settingsService),
		Export:    handler.NewExportHandler(exportService).WithRecorder(invoicingMetrics),
		Import:    handler.NewImportHandler(importService),
	}, router.RouteOptions{
		AuthLimit: middleware.RateLimit(authLimiter),
		Idempotency: middleware.Idempotency(middleware.IdempotencyConfig{
			Store: idempotencyStore,
			TTL:   cfg.Import.IdempotencyTTL,
		}),
	})
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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Warn("Event bus did not stop cleanly", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Profiler did not stop cleanly", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Tracer provider shutdown failed", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Meter provider shutdown failed", zap.Error(err))
	}
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Logger provider shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
