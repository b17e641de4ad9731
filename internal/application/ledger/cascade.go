package ledger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trimanage/backend/internal/domain/ledger"
	"github.com/trimanage/backend/internal/domain/shared"
	"github.com/trimanage/backend/internal/state"
)

// CascadeResult lists the ids removed by a cascade deletion
type CascadeResult struct {
	ProductIDs []uuid.UUID
	PaymentIDs []uuid.UUID
}

// CascadeResolver computes the transitive closure of dependents to remove
// when a client or product is deleted, and executes the deletions
// child-first: payments, then products, then the client. Each step is one
// batch statement. There are no rollbacks; if a later step fails after an
// earlier one settled, the error reports the cascade as partially applied
// so a caller can retry the remainder.
type CascadeResolver struct {
	clientRepo  ledger.ClientRepository
	productRepo ledger.ProductRepository
	paymentRepo ledger.PaymentRepository
	store       *state.EntityStore
	logger      *zap.Logger
}

// NewCascadeResolver creates a new CascadeResolver
func NewCascadeResolver(
	clientRepo ledger.ClientRepository,
	productRepo ledger.ProductRepository,
	paymentRepo ledger.PaymentRepository,
	store *state.EntityStore,
	logger *zap.Logger,
) *CascadeResolver {
	return &CascadeResolver{
		clientRepo:  clientRepo,
		productRepo: productRepo,
		paymentRepo: paymentRepo,
		store:       store,
		logger:      logger,
	}
}

// DeleteClient removes the client, all its products, and all payments
// recorded against those products
func (r *CascadeResolver) DeleteClient(ctx context.Context, clientID uuid.UUID) (*CascadeResult, error) {
	if _, ok := r.store.ClientByID(clientID); !ok {
		return nil, shared.ErrNotFound
	}

	products := r.store.ProductsByClient(clientID)
	productIDs := make([]uuid.UUID, 0, len(products))
	var paymentIDs []uuid.UUID
	for i := range products {
		productIDs = append(productIDs, products[i].ID)
		for _, payment := range r.store.PaymentsByProduct(products[i].ID) {
			paymentIDs = append(paymentIDs, payment.ID)
		}
	}

	result := &CascadeResult{ProductIDs: productIDs, PaymentIDs: paymentIDs}

	if len(paymentIDs) > 0 {
		if err := r.paymentRepo.DeleteBatch(ctx, paymentIDs); err != nil {
			return nil, err
		}
	}
	if len(productIDs) > 0 {
		if err := r.productRepo.DeleteBatch(ctx, productIDs); err != nil {
			return nil, r.partial(clientID, "products", err)
		}
	}
	if err := r.clientRepo.Delete(ctx, clientID); err != nil {
		return nil, r.partial(clientID, "client", err)
	}

	return result, nil
}

// DeleteProduct removes the product and all payments recorded against it
func (r *CascadeResolver) DeleteProduct(ctx context.Context, productID uuid.UUID) (*CascadeResult, error) {
	if _, ok := r.store.ProductByID(productID); !ok {
		return nil, shared.ErrNotFound
	}

	payments := r.store.PaymentsByProduct(productID)
	paymentIDs := make([]uuid.UUID, 0, len(payments))
	for i := range payments {
		paymentIDs = append(paymentIDs, payments[i].ID)
	}

	result := &CascadeResult{PaymentIDs: paymentIDs}

	if len(paymentIDs) > 0 {
		if err := r.paymentRepo.DeleteBatch(ctx, paymentIDs); err != nil {
			return nil, err
		}
	}
	if err := r.productRepo.Delete(ctx, productID); err != nil {
		return nil, r.partial(productID, "product", err)
	}

	return result, nil
}

// DeletePayment removes a single payment. No cascade; recomputing the
// owning product's settlement status is the coordinator's job.
func (r *CascadeResolver) DeletePayment(ctx context.Context, paymentID uuid.UUID) error {
	if _, ok := r.store.PaymentByID(paymentID); !ok {
		return shared.ErrNotFound
	}
	return r.paymentRepo.Delete(ctx, paymentID)
}

// partial wraps a mid-cascade failure. Earlier steps have settled and
// stay deleted; the error names the step that failed so the caller knows
// the cascade must be re-run.
func (r *CascadeResolver) partial(rootID uuid.UUID, step string, err error) error {
	r.logger.Error("cascade deletion partially applied",
		zap.String("root_id", rootID.String()),
		zap.String("failed_step", step),
		zap.Error(err))
	return shared.NewDomainError("PARTIAL_CASCADE_FAILURE",
		"Cascade deletion partially applied: deleting "+step+" failed after dependents were removed")
}
