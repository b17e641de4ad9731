// Package state holds the in-memory mirror of the ledger collections.
// The mirror is hydrated from persistence at startup and then kept
// current by applying the results of settled write operations, so reads
// never touch the database and never observe a half-applied mutation.
package state

import (
	"sync"

	"github.com/google/uuid"

	"github.com/trimanage/backend/internal/domain/ledger"
	"github.com/trimanage/backend/internal/domain/shared"
)

// EntityStore is the single owner of the in-memory entity collections.
// All access goes through its methods; readers get copies, never
// references into the maps. Construct one per process and inject it
// wherever synchronous reads are needed.
type EntityStore struct {
	mu       sync.RWMutex
	clients  map[uuid.UUID]ledger.Client
	products map[uuid.UUID]ledger.Product
	payments map[uuid.UUID]ledger.Payment
}

// NewEntityStore creates an empty entity store
func NewEntityStore() *EntityStore {
	return &EntityStore{
		clients:  make(map[uuid.UUID]ledger.Client),
		products: make(map[uuid.UUID]ledger.Product),
		payments: make(map[uuid.UUID]ledger.Payment),
	}
}

// Load replaces the mirror's contents with a fresh snapshot from
// persistence. Called once at startup, before any writes are accepted.
func (s *EntityStore) Load(clients []*ledger.Client, products []*ledger.Product, payments []*ledger.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients = make(map[uuid.UUID]ledger.Client, len(clients))
	for _, c := range clients {
		s.clients[c.ID] = *c
	}
	s.products = make(map[uuid.UUID]ledger.Product, len(products))
	for _, p := range products {
		s.products[p.ID] = *p
	}
	s.payments = make(map[uuid.UUID]ledger.Payment, len(payments))
	for _, p := range payments {
		s.payments[p.ID] = *p
	}
}

// UpsertClient inserts or replaces a client in the mirror
func (s *EntityStore) UpsertClient(client *ledger.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[client.ID] = *client
}

// UpsertProduct inserts or replaces a product in the mirror
func (s *EntityStore) UpsertProduct(product *ledger.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ID] = *product
}

// UpsertPayment inserts or replaces a payment in the mirror
func (s *EntityStore) UpsertPayment(payment *ledger.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments[payment.ID] = *payment
}

// Remove deletes one entity of the given kind from the mirror. It fails
// with NotFound when the entity is absent.
func (s *EntityStore) Remove(kind ledger.EntityKind, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case ledger.KindClient:
		if _, ok := s.clients[id]; !ok {
			return shared.ErrNotFound
		}
		delete(s.clients, id)
	case ledger.KindProduct:
		if _, ok := s.products[id]; !ok {
			return shared.ErrNotFound
		}
		delete(s.products, id)
	case ledger.KindPayment:
		if _, ok := s.payments[id]; !ok {
			return shared.ErrNotFound
		}
		delete(s.payments, id)
	default:
		return shared.NewDomainError("INVALID_INPUT", "Unknown entity kind")
	}
	return nil
}

// RemoveBatch deletes many entities of one kind, ignoring absent ids.
// Used when applying settled cascade deletions, where parts of the batch
// may already have been mirrored out by a concurrent apply.
func (s *EntityStore) RemoveBatch(kind ledger.EntityKind, ids []uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		switch kind {
		case ledger.KindClient:
			delete(s.clients, id)
		case ledger.KindProduct:
			delete(s.products, id)
		case ledger.KindPayment:
			delete(s.payments, id)
		}
	}
}

// ClientByID returns a copy of the client, if present
func (s *EntityStore) ClientByID(id uuid.UUID) (ledger.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[id]
	return c, ok
}

// ProductByID returns a copy of the product, if present
func (s *EntityStore) ProductByID(id uuid.UUID) (ledger.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	return p, ok
}

// PaymentByID returns a copy of the payment, if present
func (s *EntityStore) PaymentByID(id uuid.UUID) (ledger.Payment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payments[id]
	return p, ok
}

// Clients returns copies of all clients
func (s *EntityStore) Clients() []ledger.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ledger.Client, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, c)
	}
	return out
}

// Products returns copies of all products
func (s *EntityStore) Products() []ledger.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ledger.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out
}

// Payments returns copies of all payments
func (s *EntityStore) Payments() []ledger.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ledger.Payment, 0, len(s.payments))
	for _, p := range s.payments {
		out = append(out, p)
	}
	return out
}

// ProductsByClient returns copies of all products owned by the client
func (s *EntityStore) ProductsByClient(clientID uuid.UUID) []ledger.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []ledger.Product
	for _, p := range s.products {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out
}

// ProductsByClientWithStatus returns the client's products filtered by
// settlement status
func (s *EntityStore) ProductsByClientWithStatus(clientID uuid.UUID, fullyPaid bool) []ledger.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []ledger.Product
	for _, p := range s.products {
		if p.ClientID == clientID && p.IsFullyPaid == fullyPaid {
			out = append(out, p)
		}
	}
	return out
}

// PaymentsByProduct returns copies of the product's payments, excluding
// any of the given payment ids. The exclusion supports previewing an
// edit or removal before it commits.
func (s *EntityStore) PaymentsByProduct(productID uuid.UUID, exclude ...uuid.UUID) []ledger.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []ledger.Payment
	for _, p := range s.payments {
		if p.ProductID != productID {
			continue
		}
		if containsID(exclude, p.ID) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// PaymentsByClient returns copies of all payments for the client across
// its products
func (s *EntityStore) PaymentsByClient(clientID uuid.UUID) []ledger.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []ledger.Payment
	for _, p := range s.payments {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out
}

// Counts returns the size of each collection
func (s *EntityStore) Counts() (clients, products, payments int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients), len(s.products), len(s.payments)
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
