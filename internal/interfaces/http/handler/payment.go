package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ledgerapp "github.com/trimanage/backend/internal/application/ledger"
)

// PaymentHandler handles payment API endpoints. Every mutation goes
// through the payment service's coordinated dual write, so responses
// carry the product's recomputed settlement status alongside the payment.
type PaymentHandler struct {
	BaseHandler
	paymentService *ledgerapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *ledgerapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RegisterRoutes registers payment routes on the given group
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.POST("", h.Add)
		payments.GET("", h.List)
		payments.GET("/:id", h.Get)
		payments.PUT("/:id", h.Update)
		payments.DELETE("/:id", h.Delete)
	}
}

// Add records a payment against a product
func (h *PaymentHandler) Add(c *gin.Context) {
	var req ledgerapp.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.paymentService.Add(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// Get retrieves a payment by ID
func (h *PaymentHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	payment, err := h.paymentService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payment)
}

// List retrieves payments, optionally filtered by product or client via
// the product_id and client_id query parameters
func (h *PaymentHandler) List(c *gin.Context) {
	var productID *uuid.UUID
	if raw := c.Query("product_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid product_id filter")
			return
		}
		productID = &id
	}

	var clientID *uuid.UUID
	if raw := c.Query("client_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid client_id filter")
			return
		}
		clientID = &id
	}

	payments, err := h.paymentService.List(c.Request.Context(), productID, clientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payments)
}

// Update edits a payment's amount and recomputes the product's status
func (h *PaymentHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	var req ledgerapp.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.paymentService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes a payment and recomputes the product's status
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	result, err := h.paymentService.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
