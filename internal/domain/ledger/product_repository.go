package ledger

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll returns every product in the collection
	FindAll(ctx context.Context) ([]*Product, error)

	// FindByClientID finds all products owned by a client
	FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*Product, error)

	// Insert creates a new product
	Insert(ctx context.Context, product *Product) error

	// Update persists changes to an existing product
	Update(ctx context.Context, product *Product) error

	// Delete removes a product by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteBatch removes multiple products in one statement
	DeleteBatch(ctx context.Context, ids []uuid.UUID) error
}
