package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	attendanceapp "github.com/retail/backend/internal/application/attendance"
	catalogapp "github.com/retail/backend/internal/application/catalog"
	identityapp "github.com/retail/backend/internal/application/identity"
	inventoryapp "github.com/retail/backend/internal/application/inventory"
	reportapp "github.com/retail/backend/internal/application/report"
	salesapp "github.com/retail/backend/internal/application/sales"
	"github.com/retail/backend/internal/domain/shared"
	"github.com/retail/backend/internal/infrastructure/auth"
	"github.com/retail/backend/internal/infrastructure/cache"
	"github.com/retail/backend/internal/infrastructure/config"
	"github.com/retail/backend/internal/infrastructure/logger"
	"github.com/retail/backend/internal/infrastructure/persistence"
	"github.com/retail/backend/internal/infrastructure/scheduler"
	"github.com/retail/backend/internal/infrastructure/telemetry"
	"github.com/retail/backend/internal/interfaces/http/handler"
	"github.com/retail/backend/internal/interfaces/http/middleware"
	"github.com/retail/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting retail backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Database.LogLevel))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Database.Driver == config.DriverSQLite {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to create sqlite schema", zap.Error(err))
		}
	}
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:            cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:         cfg.Telemetry.DBLogFullSQL,
		SlowQueryThreshold: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:           dbSystem(cfg.Database.Driver),
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	clock := shared.SystemClock

	startCtx, cancelStart := context.WithTimeout(context.Background(), 10*time.Second)
	backend, err := cache.Open(startCtx, cfg.Redis, cache.WithLogger(log), cache.WithClock(clock))
	cancelStart()
	if err != nil {
		log.Fatal("Failed to open cache", zap.Error(err))
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Error("Error closing cache", zap.Error(err))
		}
	}()

	var blacklist auth.TokenBlacklist
	if client := backend.Client(); client != nil {
		blacklist = auth.NewRedisTokenBlacklist(client)
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist(clock)
	}

	jwtService, err := auth.NewJWTService(cfg.JWT, clock)
	if err != nil {
		log.Fatal("Failed to create JWT service", zap.Error(err))
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	stockRepo := persistence.NewGormStockRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	attendanceRepo := persistence.NewGormAttendanceRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Services
	productService := catalogapp.NewProductService(productRepo, stockRepo, db, clock, log)
	inventoryService := inventoryapp.NewInventoryService(stockRepo, db, clock, log)
	orderService := salesapp.NewOrderService(orderRepo, productRepo, stockRepo, db, clock, log)
	attendanceService := attendanceapp.NewAttendanceService(attendanceRepo, userRepo, clock, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, clock, log)
	userService := identityapp.NewUserService(userRepo)
	reportService := reportapp.NewReportService(orderRepo, productRepo, stockRepo, attendanceRepo,
		reportapp.WithClock(clock),
		reportapp.WithLogger(log),
	)

	snapshots := backend.SnapshotStore()
	var snapshotScheduler *scheduler.SnapshotScheduler
	if cfg.Report.SnapshotEnabled {
		snapshotScheduler, err = scheduler.NewSnapshotScheduler(scheduler.Config{
			Cron:       cfg.Report.SnapshotCron,
			Threshold:  cfg.Report.LowStockThreshold,
			TTL:        cfg.Report.SnapshotTTL,
			JobTimeout: cfg.Report.JobTimeout,
		}, reportService, snapshots, clock, log)
		if err != nil {
			log.Fatal("Failed to create snapshot scheduler", zap.Error(err))
		}
		snapshotScheduler.Start()
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	})...)
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SecureWithConfig(middleware.DefaultSecurityConfig(cfg.IsProduction())))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfigFrom(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	handlers := router.Handlers{
		Health: handler.NewHealthHandler(map[string]handler.Pinger{
			"database": db,
			"cache":    backend,
		}),
		Auth:       handler.NewAuthHandler(authService),
		User:       handler.NewUserHandler(userService),
		Product:    handler.NewProductHandler(productService),
		Stock:      handler.NewStockHandler(inventoryService),
		Order:      handler.NewOrderHandler(orderService),
		Attendance: handler.NewAttendanceHandler(attendanceService),
		Report:     handler.NewReportHandler(reportService, snapshots),
	}
	mw := router.Middleware{
		Auth: middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService:     jwtService,
			TokenBlacklist: blacklist,
			Logger:         log,
		}),
		Idempotency: middleware.Idempotency(backend.IdempotencyStore(), middleware.DefaultIdempotencyTTL, log),
	}
	router.NewRouter(engine, router.WithLogger(log)).Register(router.DomainGroups(handlers, mw)...).Setup()

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if snapshotScheduler != nil {
		if err := snapshotScheduler.Stop(ctx); err != nil {
			log.Warn("Snapshot job did not finish before shutdown", zap.Error(err))
		}
	}
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

func dbSystem(driver string) string {
	if driver == config.DriverSQLite {
		return "sqlite"
	}
	return "postgresql"
}
