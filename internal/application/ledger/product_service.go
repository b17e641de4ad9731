package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/trimanage/backend/internal/domain/ledger"
	"github.com/trimanage/backend/internal/domain/shared"
	"github.com/trimanage/backend/internal/state"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo ledger.ProductRepository
	cascade     *CascadeResolver
	store       *state.EntityStore
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo ledger.ProductRepository,
	cascade *CascadeResolver,
	store *state.EntityStore,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		cascade:     cascade,
		store:       store,
		publisher:   publisher,
		logger:      logger,
	}
}

// Create creates a new product for an existing client
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if _, ok := s.store.ClientByID(req.ClientID); !ok {
		return nil, shared.ErrNotFound
	}

	price, err := ledger.ParseAmount(req.TotalPrice)
	if err != nil {
		return nil, err
	}

	product, err := ledger.NewProduct(req.ClientID, req.Name, price, req.Note)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Insert(ctx, product); err != nil {
		return nil, err
	}

	publishSettled(ctx, s.publisher, s.logger, drainEvents(product)...)

	return ToProductResponse(product), nil
}

// Update applies a partial update to an existing product. Changing the
// total price does NOT recompute the settlement status here; status only
// moves at payment mutation time.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var price *decimal.Decimal
	if req.TotalPrice != nil {
		parsed, err := ledger.ParseAmount(*req.TotalPrice)
		if err != nil {
			return nil, err
		}
		price = &parsed
	}

	if err := product.Update(req.Name, price, req.Note); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	publishSettled(ctx, s.publisher, s.logger, drainEvents(product)...)

	return ToProductResponse(product), nil
}

// Delete removes a product together with its payments
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) (*DeletedResponse, error) {
	result, err := s.cascade.DeleteProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	publishSettled(ctx, s.publisher, s.logger,
		ledger.NewProductDeletedEvent(id, result.PaymentIDs))

	return &DeletedResponse{ID: id, PaymentIDs: result.PaymentIDs}, nil
}

// Get returns a single product from the in-memory mirror
func (s *ProductService) Get(_ context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, ok := s.store.ProductByID(id)
	if !ok {
		return nil, shared.ErrNotFound
	}
	return ToProductResponse(&product), nil
}

// List returns all products, optionally restricted to one client and a
// settlement status
func (s *ProductService) List(_ context.Context, clientID *uuid.UUID, fullyPaid *bool) ([]*ProductResponse, error) {
	var products []ledger.Product
	switch {
	case clientID != nil && fullyPaid != nil:
		products = s.store.ProductsByClientWithStatus(*clientID, *fullyPaid)
	case clientID != nil:
		products = s.store.ProductsByClient(*clientID)
	default:
		products = s.store.Products()
	}

	out := make([]*ProductResponse, 0, len(products))
	for i := range products {
		if clientID == nil && fullyPaid != nil && products[i].IsFullyPaid != *fullyPaid {
			continue
		}
		out = append(out, ToProductResponse(&products[i]))
	}
	return out, nil
}

// ListForClient returns the client's products, optionally restricted to
// one settlement status. Unlike List, an unknown client is an error.
func (s *ProductService) ListForClient(_ context.Context, clientID uuid.UUID, fullyPaid *bool) ([]*ProductResponse, error) {
	if _, ok := s.store.ClientByID(clientID); !ok {
		return nil, shared.ErrNotFound
	}

	var products []ledger.Product
	if fullyPaid != nil {
		products = s.store.ProductsByClientWithStatus(clientID, *fullyPaid)
	} else {
		products = s.store.ProductsByClient(clientID)
	}

	out := make([]*ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ToProductResponse(&products[i]))
	}
	return out, nil
}
