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

	catalogapp "github.com/stitchdesk/backend/internal/application/catalog"
	financeapp "github.com/stitchdesk/backend/internal/application/finance"
	identityapp "github.com/stitchdesk/backend/internal/application/identity"
	ordersapp "github.com/stitchdesk/backend/internal/application/orders"
	partnerapp "github.com/stitchdesk/backend/internal/application/partner"
	"github.com/stitchdesk/backend/internal/infrastructure/auth"
	"github.com/stitchdesk/backend/internal/infrastructure/cache"
	"github.com/stitchdesk/backend/internal/infrastructure/config"
	"github.com/stitchdesk/backend/internal/infrastructure/event"
	"github.com/stitchdesk/backend/internal/infrastructure/logger"
	"github.com/stitchdesk/backend/internal/infrastructure/persistence"
	"github.com/stitchdesk/backend/internal/infrastructure/storage"
	"github.com/stitchdesk/backend/internal/interfaces/http/handler"
	"github.com/stitchdesk/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("starting stitchdesk backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database", zap.Error(err))
		}
	}()
	log.Info("database connected")

	// Repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	jobberRepo := persistence.NewGormJobberRepository(db.DB)
	outfitRepo := persistence.NewGormOutfitRepository(db.DB)
	fieldRepo := persistence.NewGormMeasurementFieldRepository(db.DB)
	recordRepo := persistence.NewGormRecordRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	submissionStore := persistence.NewGormSubmissionStore(db)

	// Draft store keeps in-progress compositions; redis survives
	// restarts, memory is for development
	draftStore, err := cache.NewDraftStore(cfg.Draft, cfg.Redis, log)
	if err != nil {
		log.Fatal("failed to initialize draft store", zap.Error(err))
	}

	objectStorage, err := storage.NewObjectStorage(cfg.Storage, log)
	if err != nil {
		log.Fatal("failed to initialize object storage", zap.Error(err))
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))

	// Application services
	authService := identityapp.NewAuthService(userRepo, tenantRepo, jwtService)
	customerService := partnerapp.NewCustomerService(customerRepo)
	jobberService := partnerapp.NewJobberService(jobberRepo)
	outfitService := catalogapp.NewOutfitService(outfitRepo, fieldRepo)
	attachmentService := catalogapp.NewAttachmentService(objectStorage, cfg.Storage.URLExpiry)
	compositionService := ordersapp.NewCompositionService(
		draftStore, customerRepo, outfitRepo, fieldRepo, recordRepo, orderRepo, submissionStore,
	)
	orderService := ordersapp.NewOrderService(orderRepo, jobberRepo)
	paymentService := financeapp.NewPaymentService(paymentRepo, orderRepo)

	authService.SetEventPublisher(eventBus)
	customerService.SetEventPublisher(eventBus)
	compositionService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)
	paymentService.SetEventPublisher(eventBus)

	engine := router.New(router.Config{
		Logger:     log,
		JWTService: jwtService,
		Handlers: router.Handlers{
			Health:     handler.NewHealthHandler(db),
			Auth:       handler.NewAuthHandler(authService),
			Customer:   handler.NewCustomerHandler(customerService),
			Jobber:     handler.NewJobberHandler(jobberService),
			Outfit:     handler.NewOutfitHandler(outfitService),
			Attachment: handler.NewAttachmentHandler(attachmentService),
			Draft:      handler.NewDraftHandler(compositionService),
			Order:      handler.NewOrderHandler(orderService),
			Payment:    handler.NewPaymentHandler(paymentService),
		},
		CORSOrigins:     cfg.HTTP.CORSAllowOrigins,
		MaxBodyBytes:    cfg.HTTP.MaxBodySize,
		RateLimit:       cfg.HTTP.RateLimit,
		RateLimitWindow: cfg.HTTP.RateLimitWindow,
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("invalid trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
