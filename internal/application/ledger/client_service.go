package ledger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trimanage/backend/internal/domain/ledger"
	"github.com/trimanage/backend/internal/domain/shared"
	"github.com/trimanage/backend/internal/state"
)

// ClientService handles client-related business operations. Deletions
// cascade through the resolver to the client's products and payments.
type ClientService struct {
	clientRepo ledger.ClientRepository
	cascade    *CascadeResolver
	store      *state.EntityStore
	publisher  shared.EventPublisher
	logger     *zap.Logger
}

// NewClientService creates a new ClientService
func NewClientService(
	clientRepo ledger.ClientRepository,
	cascade *CascadeResolver,
	store *state.EntityStore,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		cascade:    cascade,
		store:      store,
		publisher:  publisher,
		logger:     logger,
	}
}

// Create creates a new client
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	client, err := ledger.NewClient(req.Name, req.PhoneNumber, req.Note)
	if err != nil {
		return nil, err
	}

	if err := s.clientRepo.Insert(ctx, client); err != nil {
		return nil, err
	}

	publishSettled(ctx, s.publisher, s.logger, drainEvents(client)...)

	return ToClientResponse(client), nil
}

// Update applies a partial update to an existing client
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := client.Update(req.Name, req.PhoneNumber, req.Note); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}

	publishSettled(ctx, s.publisher, s.logger, drainEvents(client)...)

	return ToClientResponse(client), nil
}

// Delete removes a client together with its products and their payments
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) (*DeletedResponse, error) {
	result, err := s.cascade.DeleteClient(ctx, id)
	if err != nil {
		return nil, err
	}

	publishSettled(ctx, s.publisher, s.logger,
		ledger.NewClientDeletedEvent(id, result.ProductIDs, result.PaymentIDs))

	return &DeletedResponse{
		ID:         id,
		ProductIDs: result.ProductIDs,
		PaymentIDs: result.PaymentIDs,
	}, nil
}

// Get returns a single client from the in-memory mirror
func (s *ClientService) Get(_ context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, ok := s.store.ClientByID(id)
	if !ok {
		return nil, shared.ErrNotFound
	}
	return ToClientResponse(&client), nil
}

// List returns all clients from the in-memory mirror
func (s *ClientService) List(_ context.Context) ([]*ClientResponse, error) {
	clients := s.store.Clients()
	out := make([]*ClientResponse, 0, len(clients))
	for i := range clients {
		out = append(out, ToClientResponse(&clients[i]))
	}
	return out, nil
}
