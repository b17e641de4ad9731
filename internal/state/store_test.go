package state

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trimanage/backend/internal/domain/ledger"
	"github.com/trimanage/backend/internal/domain/shared"
)

func newTestClient(t *testing.T, name string) *ledger.Client {
	t.Helper()
	client, err := ledger.NewClient(name, "", "")
	require.NoError(t, err)
	return client
}

func newTestProduct(t *testing.T, clientID uuid.UUID, price string) *ledger.Product {
	t.Helper()
	product, err := ledger.NewProduct(clientID, "Item", decimal.RequireFromString(price), "")
	require.NoError(t, err)
	return product
}

func newTestPayment(t *testing.T, productID, clientID uuid.UUID, amount string) *ledger.Payment {
	t.Helper()
	payment, err := ledger.NewPayment(productID, clientID, decimal.RequireFromString(amount), "")
	require.NoError(t, err)
	return payment
}

func TestEntityStoreLoad(t *testing.T) {
	store := NewEntityStore()

	client := newTestClient(t, "Alice")
	product := newTestProduct(t, client.ID, "100.00")
	payment := newTestPayment(t, product.ID, client.ID, "40.00")

	store.Load([]*ledger.Client{client}, []*ledger.Product{product}, []*ledger.Payment{payment})

	clients, products, payments := store.Counts()
	assert.Equal(t, 1, clients)
	assert.Equal(t, 1, products)
	assert.Equal(t, 1, payments)

	got, ok := store.ClientByID(client.ID)
	require.True(t, ok)
	assert.Equal(t, "Alice", got.Name)
}

func TestEntityStoreReadsReturnCopies(t *testing.T) {
	store := NewEntityStore()
	client := newTestClient(t, "Alice")
	store.UpsertClient(client)

	got, ok := store.ClientByID(client.ID)
	require.True(t, ok)

	// Mutating the returned copy must not leak into the mirror.
	got.Name = "Mallory"

	again, ok := store.ClientByID(client.ID)
	require.True(t, ok)
	assert.Equal(t, "Alice", again.Name)
}

func TestEntityStoreRemove(t *testing.T) {
	t.Run("removes existing entity", func(t *testing.T) {
		store := NewEntityStore()
		client := newTestClient(t, "Alice")
		store.UpsertClient(client)

		require.NoError(t, store.Remove(ledger.KindClient, client.ID))

		_, ok := store.ClientByID(client.ID)
		assert.False(t, ok)
	})

	t.Run("fails with NotFound for absent entity", func(t *testing.T) {
		store := NewEntityStore()

		err := store.Remove(ledger.KindPayment, uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestEntityStoreSelectors(t *testing.T) {
	store := NewEntityStore()

	client := newTestClient(t, "Alice")
	other := newTestClient(t, "Bob")
	paid := newTestProduct(t, client.ID, "100.00")
	paid.IsFullyPaid = true
	open := newTestProduct(t, client.ID, "200.00")
	unrelated := newTestProduct(t, other.ID, "50.00")

	p1 := newTestPayment(t, open.ID, client.ID, "60.00")
	p2 := newTestPayment(t, open.ID, client.ID, "40.00")
	p3 := newTestPayment(t, unrelated.ID, other.ID, "10.00")

	store.Load(
		[]*ledger.Client{client, other},
		[]*ledger.Product{paid, open, unrelated},
		[]*ledger.Payment{p1, p2, p3},
	)

	t.Run("products by client", func(t *testing.T) {
		assert.Len(t, store.ProductsByClient(client.ID), 2)
		assert.Len(t, store.ProductsByClient(other.ID), 1)
	})

	t.Run("products by client filtered by status", func(t *testing.T) {
		complete := store.ProductsByClientWithStatus(client.ID, true)
		require.Len(t, complete, 1)
		assert.Equal(t, paid.ID, complete[0].ID)

		incomplete := store.ProductsByClientWithStatus(client.ID, false)
		require.Len(t, incomplete, 1)
		assert.Equal(t, open.ID, incomplete[0].ID)
	})

	t.Run("payments by product", func(t *testing.T) {
		assert.Len(t, store.PaymentsByProduct(open.ID), 2)
		assert.Empty(t, store.PaymentsByProduct(paid.ID))
	})

	t.Run("payments by product with exclusion", func(t *testing.T) {
		remaining := store.PaymentsByProduct(open.ID, p2.ID)
		require.Len(t, remaining, 1)
		assert.Equal(t, p1.ID, remaining[0].ID)
	})

	t.Run("payments by client", func(t *testing.T) {
		assert.Len(t, store.PaymentsByClient(client.ID), 2)
		assert.Len(t, store.PaymentsByClient(other.ID), 1)
	})
}

func TestProjector(t *testing.T) {
	ctx := context.Background()

	t.Run("applies creations and updates", func(t *testing.T) {
		store := NewEntityStore()
		projector := NewProjector(store)

		client := newTestClient(t, "Alice")
		require.NoError(t, projector.Handle(ctx, ledger.NewClientCreatedEvent(client)))

		got, ok := store.ClientByID(client.ID)
		require.True(t, ok)
		assert.Equal(t, "Alice", got.Name)

		client.Name = "Alicia"
		require.NoError(t, projector.Handle(ctx, ledger.NewClientUpdatedEvent(client)))

		got, _ = store.ClientByID(client.ID)
		assert.Equal(t, "Alicia", got.Name)
	})

	t.Run("applies cascade deletion child-first", func(t *testing.T) {
		store := NewEntityStore()
		projector := NewProjector(store)

		client := newTestClient(t, "Alice")
		product := newTestProduct(t, client.ID, "100.00")
		payment := newTestPayment(t, product.ID, client.ID, "40.00")
		store.Load([]*ledger.Client{client}, []*ledger.Product{product}, []*ledger.Payment{payment})

		event := ledger.NewClientDeletedEvent(client.ID, []uuid.UUID{product.ID}, []uuid.UUID{payment.ID})
		require.NoError(t, projector.Handle(ctx, event))

		clients, products, payments := store.Counts()
		assert.Zero(t, clients)
		assert.Zero(t, products)
		assert.Zero(t, payments)
	})

	t.Run("rejects unknown event types", func(t *testing.T) {
		projector := NewProjector(NewEntityStore())

		err := projector.Handle(ctx, &unknownEvent{})

		assert.Error(t, err)
	})
}

type unknownEvent struct{ shared.BaseDomainEvent }
