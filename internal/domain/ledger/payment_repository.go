package ledger

import (
	"context"

	"github.com/google/uuid"
)

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// FindByID finds a payment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindAll returns every payment in the collection
	FindAll(ctx context.Context) ([]*Payment, error)

	// FindByProductID finds all payments recorded against a product
	FindByProductID(ctx context.Context, productID uuid.UUID) ([]*Payment, error)

	// FindByClientID finds all payments for a client across its products
	FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*Payment, error)

	// Insert creates a new payment
	Insert(ctx context.Context, payment *Payment) error

	// Update persists changes to an existing payment
	Update(ctx context.Context, payment *Payment) error

	// Delete removes a payment by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteBatch removes multiple payments in one statement
	DeleteBatch(ctx context.Context, ids []uuid.UUID) error
}
