package ledger

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trimanage/backend/internal/domain/ledger"
	"github.com/trimanage/backend/internal/domain/shared"
	"github.com/trimanage/backend/internal/state"
)

// productLocks serializes payment mutations per product. Two mutations
// against different products proceed in parallel; two against the same
// product queue, so the read-compute-write sequence of one can never
// interleave with another's and compute status from a stale payment set.
type productLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newProductLocks() *productLocks {
	return &productLocks{locks: make(map[uuid.UUID]*lockEntry)}
}

func (l *productLocks) lock(productID uuid.UUID) {
	l.mu.Lock()
	entry, ok := l.locks[productID]
	if !ok {
		entry = &lockEntry{}
		l.locks[productID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
}

func (l *productLocks) unlock(productID uuid.UUID) {
	l.mu.Lock()
	entry := l.locks[productID]
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, productID)
	}
	l.mu.Unlock()

	entry.mu.Unlock()
}

// PaymentService coordinates payment mutations with the owning product's
// derived settlement status. Every mutation reads the product's current
// payment set, computes the candidate total including the in-flight
// change, and then issues the product-status write and the payment write
// concurrently. The two writes are deliberately not transactional: if one
// settles and the other fails, the operation reports a partial write
// rather than rolling back.
type PaymentService struct {
	productRepo ledger.ProductRepository
	paymentRepo ledger.PaymentRepository
	store       *state.EntityStore
	publisher   shared.EventPublisher
	logger      *zap.Logger
	locks       *productLocks
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	productRepo ledger.ProductRepository,
	paymentRepo ledger.PaymentRepository,
	store *state.EntityStore,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		productRepo: productRepo,
		paymentRepo: paymentRepo,
		store:       store,
		publisher:   publisher,
		logger:      logger,
		locks:       newProductLocks(),
	}
}

// Add records a new payment and recomputes the product's settlement
// status from the candidate total
func (s *PaymentService) Add(ctx context.Context, req CreatePaymentRequest) (*PaymentMutationResponse, error) {
	amount, err := ledger.ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	s.locks.lock(req.ProductID)
	defer s.locks.unlock(req.ProductID)

	product, ok := s.store.ProductByID(req.ProductID)
	if !ok {
		return nil, shared.ErrNotFound
	}

	payment, err := ledger.NewPayment(product.ID, product.ClientID, amount, req.Note)
	if err != nil {
		return nil, err
	}

	existing := s.store.PaymentsByProduct(product.ID)
	candidateTotal := ledger.TotalPaid(paymentPtrs(existing), amount)
	product.SetFullyPaid(ledger.IsFullyPaid(candidateTotal, product.TotalPrice))

	return s.commit(ctx, &product, payment, paymentWriteInsert)
}

// Update replaces a payment's amount and recomputes the product's
// settlement status with the edited amount in place of the old one
func (s *PaymentService) Update(ctx context.Context, id uuid.UUID, req UpdatePaymentRequest) (*PaymentMutationResponse, error) {
	amount, err := ledger.ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	current, ok := s.store.PaymentByID(id)
	if !ok {
		return nil, shared.ErrNotFound
	}

	s.locks.lock(current.ProductID)
	defer s.locks.unlock(current.ProductID)

	// Re-read under the lock; a queued delete may have won.
	payment, ok := s.store.PaymentByID(id)
	if !ok {
		return nil, shared.ErrNotFound
	}
	product, ok := s.store.ProductByID(payment.ProductID)
	if !ok {
		return nil, shared.ErrNotFound
	}

	if err := payment.UpdateAmount(amount, req.Note); err != nil {
		return nil, err
	}

	others := s.store.PaymentsByProduct(product.ID, payment.ID)
	candidateTotal := ledger.TotalPaid(paymentPtrs(others), amount)
	product.SetFullyPaid(ledger.IsFullyPaid(candidateTotal, product.TotalPrice))

	return s.commit(ctx, &product, &payment, paymentWriteUpdate)
}

// Delete removes a payment and recomputes the product's settlement
// status without it
func (s *PaymentService) Delete(ctx context.Context, id uuid.UUID) (*PaymentMutationResponse, error) {
	current, ok := s.store.PaymentByID(id)
	if !ok {
		return nil, shared.ErrNotFound
	}

	s.locks.lock(current.ProductID)
	defer s.locks.unlock(current.ProductID)

	payment, ok := s.store.PaymentByID(id)
	if !ok {
		return nil, shared.ErrNotFound
	}
	product, ok := s.store.ProductByID(payment.ProductID)
	if !ok {
		return nil, shared.ErrNotFound
	}

	remaining := s.store.PaymentsByProduct(product.ID, payment.ID)
	candidateTotal := ledger.TotalPaid(paymentPtrs(remaining))
	product.SetFullyPaid(ledger.IsFullyPaid(candidateTotal, product.TotalPrice))

	return s.commit(ctx, &product, &payment, paymentWriteDelete)
}

// Get returns a single payment from the in-memory mirror
func (s *PaymentService) Get(_ context.Context, id uuid.UUID) (*PaymentResponse, error) {
	payment, ok := s.store.PaymentByID(id)
	if !ok {
		return nil, shared.ErrNotFound
	}
	return ToPaymentResponse(&payment), nil
}

// List returns payments from the in-memory mirror, optionally filtered
// by product or client
func (s *PaymentService) List(_ context.Context, productID, clientID *uuid.UUID) ([]*PaymentResponse, error) {
	var payments []ledger.Payment
	switch {
	case productID != nil:
		payments = s.store.PaymentsByProduct(*productID)
	case clientID != nil:
		payments = s.store.PaymentsByClient(*clientID)
	default:
		payments = s.store.Payments()
	}

	out := make([]*PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, ToPaymentResponse(&payments[i]))
	}
	return out, nil
}

// ListForProduct returns the product's payments, optionally leaving one
// payment out. Unlike List, an unknown product is an error.
func (s *PaymentService) ListForProduct(_ context.Context, productID uuid.UUID, exclude *uuid.UUID) ([]*PaymentResponse, error) {
	if _, ok := s.store.ProductByID(productID); !ok {
		return nil, shared.ErrNotFound
	}

	var payments []ledger.Payment
	if exclude != nil {
		payments = s.store.PaymentsByProduct(productID, *exclude)
	} else {
		payments = s.store.PaymentsByProduct(productID)
	}

	out := make([]*PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, ToPaymentResponse(&payments[i]))
	}
	return out, nil
}

type paymentWriteKind int

const (
	paymentWriteInsert paymentWriteKind = iota
	paymentWriteUpdate
	paymentWriteDelete
)

// commit issues the product-status write and the payment write
// concurrently and waits for both. Neither write is rolled back on the
// other's failure; a single failure surfaces as a partial write so the
// caller knows persisted state is split.
func (s *PaymentService) commit(ctx context.Context, product *ledger.Product, payment *ledger.Payment, kind paymentWriteKind) (*PaymentMutationResponse, error) {
	var (
		wg         sync.WaitGroup
		productErr error
		paymentErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		productErr = s.productRepo.Update(ctx, product)
	}()
	go func() {
		defer wg.Done()
		switch kind {
		case paymentWriteInsert:
			paymentErr = s.paymentRepo.Insert(ctx, payment)
		case paymentWriteUpdate:
			paymentErr = s.paymentRepo.Update(ctx, payment)
		case paymentWriteDelete:
			paymentErr = s.paymentRepo.Delete(ctx, payment.ID)
		}
	}()
	wg.Wait()

	// Mirror only what actually settled.
	if productErr == nil {
		publishSettled(ctx, s.publisher, s.logger, drainEvents(product)...)
	}
	if paymentErr == nil {
		if kind == paymentWriteDelete {
			publishSettled(ctx, s.publisher, s.logger,
				ledger.NewPaymentDeletedEvent(payment.ID, payment.ProductID))
		} else {
			publishSettled(ctx, s.publisher, s.logger, drainEvents(payment)...)
		}
	}

	if productErr != nil && paymentErr != nil {
		s.logger.Error("coordinated payment write failed entirely",
			zap.String("product_id", product.ID.String()),
			zap.Error(productErr),
			zap.Error(paymentErr))
		return nil, shared.ErrPersistenceFailure
	}
	if productErr != nil || paymentErr != nil {
		s.logger.Error("coordinated payment write partially failed",
			zap.String("product_id", product.ID.String()),
			zap.Bool("product_settled", productErr == nil),
			zap.Bool("payment_settled", paymentErr == nil),
			zap.Error(firstErr(productErr, paymentErr)))
		return nil, shared.ErrPartialWriteFailure
	}

	resp := &PaymentMutationResponse{Product: ToProductResponse(product)}
	if kind != paymentWriteDelete {
		resp.Payment = ToPaymentResponse(payment)
	}
	return resp, nil
}

func paymentPtrs(payments []ledger.Payment) []*ledger.Payment {
	out := make([]*ledger.Payment, len(payments))
	for i := range payments {
		out[i] = &payments[i]
	}
	return out
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
