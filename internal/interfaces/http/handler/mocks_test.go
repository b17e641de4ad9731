package handler

import (
	"context"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	ledgerapp "github.com/trimanage/backend/internal/application/ledger"
	"github.com/trimanage/backend/internal/domain/ledger"
	"github.com/trimanage/backend/internal/domain/shared"
	"github.com/trimanage/backend/internal/interfaces/http/middleware"
	"github.com/trimanage/backend/internal/interfaces/http/router"
	"github.com/trimanage/backend/internal/state"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

func decimalFromString(t *testing.T, raw string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(raw)
	require.NoError(t, err)
	return d
}

// MockClientRepository implements ledger.ClientRepository for testing
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context) ([]*ledger.Client, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*ledger.Client), args.Error(1)
}

func (m *MockClientRepository) Insert(ctx context.Context, client *ledger.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Update(ctx context.Context, client *ledger.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository implements ledger.ProductRepository for testing
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]*ledger.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*ledger.Product), args.Error(1)
}

func (m *MockProductRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*ledger.Product, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]*ledger.Product), args.Error(1)
}

func (m *MockProductRepository) Insert(ctx context.Context, product *ledger.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *ledger.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

// MockPaymentRepository implements ledger.PaymentRepository for testing
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context) ([]*ledger.Payment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*ledger.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByProductID(ctx context.Context, productID uuid.UUID) ([]*ledger.Payment, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]*ledger.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*ledger.Payment, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]*ledger.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Insert(ctx context.Context, payment *ledger.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, payment *ledger.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPaymentRepository) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

// projectingPublisher mirrors published events into the store so tests
// observe state changes synchronously
type projectingPublisher struct {
	projector *state.Projector
}

func (p *projectingPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, event := range events {
		if err := p.projector.Handle(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// testServer wires mock repositories into the full HTTP stack
type testServer struct {
	engine      *gin.Engine
	clientRepo  *MockClientRepository
	productRepo *MockProductRepository
	paymentRepo *MockPaymentRepository
	store       *state.EntityStore
}

func newTestServer() *testServer {
	store := state.NewEntityStore()
	publisher := &projectingPublisher{projector: state.NewProjector(store)}
	logger := zap.NewNop()

	clientRepo := new(MockClientRepository)
	productRepo := new(MockProductRepository)
	paymentRepo := new(MockPaymentRepository)

	cascade := ledgerapp.NewCascadeResolver(clientRepo, productRepo, paymentRepo, store, logger)
	clientService := ledgerapp.NewClientService(clientRepo, cascade, store, publisher, logger)
	productService := ledgerapp.NewProductService(productRepo, cascade, store, publisher, logger)
	paymentService := ledgerapp.NewPaymentService(productRepo, paymentRepo, store, publisher, logger)
	statisticsService := ledgerapp.NewStatisticsService(store)

	engine := gin.New()
	engine.Use(middleware.RequestID())

	router.NewRouter(engine).
		Register(NewClientHandler(clientService, productService)).
		Register(NewProductHandler(productService, paymentService)).
		Register(NewPaymentHandler(paymentService)).
		Register(NewStatisticsHandler(statisticsService)).
		Register(NewSystemHandler(nil, "test")).
		Setup()

	return &testServer{
		engine:      engine,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		paymentRepo: paymentRepo,
		store:       store,
	}
}
