package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/trimanage/backend/internal/domain/ledger"
)

// =============================================================================
// Client DTOs
// =============================================================================

// CreateClientRequest represents a request to create a new client
type CreateClientRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	PhoneNumber string `json:"phone_number" binding:"max=50"`
	Note        string `json:"note" binding:"max=1000"`
}

// UpdateClientRequest represents a partial update to a client
type UpdateClientRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=50"`
	Note        *string `json:"note" binding:"omitempty,max=1000"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number"`
	Note        string    `json:"note"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToClientResponse converts a domain client to a response DTO
func ToClientResponse(client *ledger.Client) *ClientResponse {
	return &ClientResponse{
		ID:          client.ID,
		Name:        client.Name,
		PhoneNumber: client.PhoneNumber,
		Note:        client.Note,
		CreatedAt:   client.CreatedAt,
		UpdatedAt:   client.UpdatedAt,
	}
}

// =============================================================================
// Product DTOs
// =============================================================================

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	ClientID   uuid.UUID `json:"client_id" binding:"required"`
	Name       string    `json:"name" binding:"required,min=1,max=200"`
	TotalPrice string    `json:"total_price" binding:"required,money"`
	Note       string    `json:"note" binding:"max=1000"`
}

// UpdateProductRequest represents a partial update to a product. The
// owning client cannot be changed.
type UpdateProductRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=200"`
	TotalPrice *string `json:"total_price" binding:"omitempty,money"`
	Note       *string `json:"note" binding:"omitempty,max=1000"`
}

// ProductResponse represents a product in API responses. Money fields are
// decimal strings; the exact internal representation never goes through
// float64.
type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	ClientID    uuid.UUID `json:"client_id"`
	Name        string    `json:"name"`
	TotalPrice  string    `json:"total_price"`
	IsFullyPaid bool      `json:"is_fully_paid"`
	Note        string    `json:"note"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(product *ledger.Product) *ProductResponse {
	return &ProductResponse{
		ID:          product.ID,
		ClientID:    product.ClientID,
		Name:        product.Name,
		TotalPrice:  product.TotalPrice.String(),
		IsFullyPaid: product.IsFullyPaid,
		Note:        product.Note,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// =============================================================================
// Payment DTOs
// =============================================================================

// CreatePaymentRequest represents a request to record a payment against a
// product
type CreatePaymentRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Amount    string    `json:"amount" binding:"required,money"`
	Note      string    `json:"note" binding:"max=1000"`
}

// UpdatePaymentRequest represents a request to edit a payment's amount
type UpdatePaymentRequest struct {
	Amount string  `json:"amount" binding:"required,money"`
	Note   *string `json:"note" binding:"omitempty,max=1000"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	ClientID  uuid.UUID `json:"client_id"`
	Amount    string    `json:"amount"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToPaymentResponse converts a domain payment to a response DTO
func ToPaymentResponse(payment *ledger.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:        payment.ID,
		ProductID: payment.ProductID,
		ClientID:  payment.ClientID,
		Amount:    payment.Amount.String(),
		Note:      payment.Note,
		CreatedAt: payment.CreatedAt,
		UpdatedAt: payment.UpdatedAt,
	}
}

// PaymentMutationResponse is returned by coordinated payment mutations.
// It carries both the payment and the product's recomputed settlement
// status so callers see the joint outcome of the dual write.
type PaymentMutationResponse struct {
	Payment *PaymentResponse `json:"payment,omitempty"`
	Product *ProductResponse `json:"product"`
}

// DeletedResponse acknowledges a deletion with the removed ids
type DeletedResponse struct {
	ID         uuid.UUID   `json:"id"`
	ProductIDs []uuid.UUID `json:"product_ids,omitempty"`
	PaymentIDs []uuid.UUID `json:"payment_ids,omitempty"`
}

// =============================================================================
// Statistics DTOs
// =============================================================================

// StatisticsResponse summarizes the ledger for dashboard display
type StatisticsResponse struct {
	ClientCount    int    `json:"client_count"`
	ProductCount   int    `json:"product_count"`
	PaymentCount   int    `json:"payment_count"`
	TotalRevenue   string `json:"total_revenue"`
	AveragePayment string `json:"average_payment"`
}
