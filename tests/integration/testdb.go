// Package integration contains end-to-end tests that drive the full HTTP
// stack against a real (sqlite) database.
package integration

import (
	"context"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	ledgerapp "github.com/trimanage/backend/internal/application/ledger"
	"github.com/trimanage/backend/internal/domain/ledger"
	"github.com/trimanage/backend/internal/infrastructure/event"
	"github.com/trimanage/backend/internal/infrastructure/persistence"
	"github.com/trimanage/backend/internal/infrastructure/persistence/models"
	"github.com/trimanage/backend/internal/interfaces/http/handler"
	"github.com/trimanage/backend/internal/interfaces/http/middleware"
	"github.com/trimanage/backend/internal/interfaces/http/router"
	"github.com/trimanage/backend/internal/state"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// Stack bundles everything an end-to-end test needs: the HTTP engine,
// the backing database and the in-memory mirror.
type Stack struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Store  *state.EntityStore

	ClientRepo  ledger.ClientRepository
	ProductRepo ledger.ProductRepository
	PaymentRepo ledger.PaymentRepository
}

// NewStack builds the full application stack on an in-memory sqlite
// database, mirroring the wiring in cmd/server.
func NewStack(t *testing.T) *Stack {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	// A pooled second connection would see a different :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.ClientModel{},
		&models.ProductModel{},
		&models.PaymentModel{},
	))

	logger := zap.NewNop()

	clientRepo := persistence.NewGormClientRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	paymentRepo := persistence.NewGormPaymentRepository(db)

	store := state.NewEntityStore()
	eventBus := event.NewInMemoryEventBus(logger)
	eventBus.Subscribe(state.NewProjector(store))

	cascade := ledgerapp.NewCascadeResolver(clientRepo, productRepo, paymentRepo, store, logger)
	clientService := ledgerapp.NewClientService(clientRepo, cascade, store, eventBus, logger)
	productService := ledgerapp.NewProductService(productRepo, cascade, store, eventBus, logger)
	paymentService := ledgerapp.NewPaymentService(productRepo, paymentRepo, store, eventBus, logger)
	statisticsService := ledgerapp.NewStatisticsService(store)

	engine := gin.New()
	router.NewRouter(engine).
		Register(handler.NewClientHandler(clientService, productService)).
		Register(handler.NewProductHandler(productService, paymentService)).
		Register(handler.NewPaymentHandler(paymentService)).
		Register(handler.NewStatisticsHandler(statisticsService)).
		Setup()

	return &Stack{
		Engine:      engine,
		DB:          db,
		Store:       store,
		ClientRepo:  clientRepo,
		ProductRepo: productRepo,
		PaymentRepo: paymentRepo,
	}
}

// Hydrate reloads the mirror from the database, as cmd/server does at
// startup.
func (s *Stack) Hydrate(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	clients, err := s.ClientRepo.FindAll(ctx)
	require.NoError(t, err)
	products, err := s.ProductRepo.FindAll(ctx)
	require.NoError(t, err)
	payments, err := s.PaymentRepo.FindAll(ctx)
	require.NoError(t, err)

	s.Store.Load(clients, products, payments)
}
