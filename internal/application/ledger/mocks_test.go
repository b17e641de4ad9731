package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/trimanage/backend/internal/domain/ledger"
	"github.com/trimanage/backend/internal/domain/shared"
	"github.com/trimanage/backend/internal/state"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockClientRepository is a mock implementation of ClientRepository
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

// MockProductRepository is a mock implementation of ProductRepository
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

// MockPaymentRepository is a mock implementation of PaymentRepository
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

// Interface compliance checks
var (
	_ ledger.ClientRepository  = (*MockClientRepository)(nil)
	_ ledger.ProductRepository = (*MockProductRepository)(nil)
	_ ledger.PaymentRepository = (*MockPaymentRepository)(nil)
)

// =============================================================================
// Test wiring
// =============================================================================

// projectingPublisher applies published events straight to the store,
// standing in for the event bus so tests observe mirror updates
// synchronously.
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

type fixture struct {
	clientRepo  *MockClientRepository
	productRepo *MockProductRepository
	paymentRepo *MockPaymentRepository
	store       *state.EntityStore
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

func newFixture() *fixture {
	store := state.NewEntityStore()
	return &fixture{
		clientRepo:  new(MockClientRepository),
		productRepo: new(MockProductRepository),
		paymentRepo: new(MockPaymentRepository),
		store:       store,
		publisher:   &projectingPublisher{projector: state.NewProjector(store)},
		logger:      zap.NewNop(),
	}
}

func (f *fixture) cascadeResolver() *CascadeResolver {
	return NewCascadeResolver(f.clientRepo, f.productRepo, f.paymentRepo, f.store, f.logger)
}

func (f *fixture) clientService() *ClientService {
	return NewClientService(f.clientRepo, f.cascadeResolver(), f.store, f.publisher, f.logger)
}

func (f *fixture) productService() *ProductService {
	return NewProductService(f.productRepo, f.cascadeResolver(), f.store, f.publisher, f.logger)
}

func (f *fixture) paymentService() *PaymentService {
	return NewPaymentService(f.productRepo, f.paymentRepo, f.store, f.publisher, f.logger)
}
