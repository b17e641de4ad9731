package ledger

import (
	"context"

	"github.com/google/uuid"
)

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	// FindByID finds a client by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindAll returns every client in the collection
	FindAll(ctx context.Context) ([]*Client, error)

	// Insert creates a new client
	Insert(ctx context.Context, client *Client) error

	// Update persists changes to an existing client
	Update(ctx context.Context, client *Client) error

	// Delete removes a client by ID
	Delete(ctx context.Context, id uuid.UUID) error
}
