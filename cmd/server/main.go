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

	ledgerapp "github.com/trimanage/backend/internal/application/ledger"
	"github.com/trimanage/backend/internal/domain/ledger"
	"github.com/trimanage/backend/internal/infrastructure/config"
	"github.com/trimanage/backend/internal/infrastructure/event"
	"github.com/trimanage/backend/internal/infrastructure/logger"
	"github.com/trimanage/backend/internal/infrastructure/persistence"
	"github.com/trimanage/backend/internal/infrastructure/persistence/models"
	"github.com/trimanage/backend/internal/interfaces/http/handler"
	"github.com/trimanage/backend/internal/interfaces/http/middleware"
	"github.com/trimanage/backend/internal/interfaces/http/router"
	"github.com/trimanage/backend/internal/state"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting TriManage backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.GormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// Postgres schemas are managed by cmd/migrate; sqlite is for local
	// development where auto-migration is enough.
	if cfg.Database.Driver == "sqlite" {
		if err := db.DB.AutoMigrate(
			&models.ClientModel{},
			&models.ProductModel{},
			&models.PaymentModel{},
		); err != nil {
			log.Fatal("Failed to auto-migrate sqlite schema", zap.Error(err))
		}
	}

	// Repositories
	clientRepo := persistence.NewGormClientRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)

	// In-memory mirror, hydrated from storage at startup and kept
	// current by the projector consuming settled domain events.
	store := state.NewEntityStore()
	if err := hydrateStore(store, clientRepo, productRepo, paymentRepo); err != nil {
		log.Fatal("Failed to hydrate entity store", zap.Error(err))
	}
	clientCount, productCount, paymentCount := store.Counts()
	log.Info("Entity store hydrated",
		zap.Int("clients", clientCount),
		zap.Int("products", productCount),
		zap.Int("payments", paymentCount),
	)

	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(state.NewProjector(store))

	// Application services
	cascade := ledgerapp.NewCascadeResolver(clientRepo, productRepo, paymentRepo, store, log)
	clientService := ledgerapp.NewClientService(clientRepo, cascade, store, eventBus, log)
	productService := ledgerapp.NewProductService(productRepo, cascade, store, eventBus, log)
	paymentService := ledgerapp.NewPaymentService(productRepo, paymentRepo, store, eventBus, log)
	statisticsService := ledgerapp.NewStatisticsService(store)

	// HTTP engine and middleware
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

	metrics := middleware.NewHTTPMetrics("trimanage")
	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithConfig(corsConfig),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		metrics.Middleware(),
	)

	// Routes
	systemHandler := handler.NewSystemHandler(db, version)
	router.NewRouter(engine).
		Register(handler.NewClientHandler(clientService, productService)).
		Register(handler.NewProductHandler(productService, paymentService)).
		Register(handler.NewPaymentHandler(paymentService)).
		Register(handler.NewStatisticsHandler(statisticsService)).
		Register(systemHandler).
		Setup()

	engine.GET("/healthz", systemHandler.Healthz)
	engine.GET("/readyz", systemHandler.Readyz)
	engine.GET("/metrics", metrics.Handler())

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

	log.Info("Server exited gracefully")
}

// hydrateStore loads the full ledger from storage into the mirror
func hydrateStore(
	store *state.EntityStore,
	clientRepo ledger.ClientRepository,
	productRepo ledger.ProductRepository,
	paymentRepo ledger.PaymentRepository,
) error {
	ctx := context.Background()

	clients, err := clientRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	products, err := productRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	payments, err := paymentRepo.FindAll(ctx)
	if err != nil {
		return err
	}

	store.Load(clients, products, payments)
	return nil
}
