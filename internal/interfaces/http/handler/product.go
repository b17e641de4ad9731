package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ledgerapp "github.com/trimanage/backend/internal/application/ledger"
)

// ProductHandler handles product API endpoints
type ProductHandler struct {
	BaseHandler
	productService *ledgerapp.ProductService
	paymentService *ledgerapp.PaymentService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *ledgerapp.ProductService, paymentService *ledgerapp.PaymentService) *ProductHandler {
	return &ProductHandler{productService: productService, paymentService: paymentService}
}

// RegisterRoutes registers product routes on the given group
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.POST("", h.Create)
		products.GET("", h.List)
		products.GET("/:id", h.Get)
		products.PUT("/:id", h.Update)
		products.DELETE("/:id", h.Delete)
		products.GET("/:id/payments", h.Payments)
	}
}

// Create creates a new product for a client
func (h *ProductHandler) Create(c *gin.Context) {
	var req ledgerapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, product)
}

// Get retrieves a product by ID
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// List retrieves products, optionally filtered by client or settlement
// status via the client_id and fully_paid query parameters
func (h *ProductHandler) List(c *gin.Context) {
	var clientID *uuid.UUID
	if raw := c.Query("client_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid client_id filter")
			return
		}
		clientID = &id
	}

	var fullyPaid *bool
	if raw := c.Query("fully_paid"); raw != "" {
		paid, err := strconv.ParseBool(raw)
		if err != nil {
			h.BadRequest(c, "Invalid fully_paid filter")
			return
		}
		fullyPaid = &paid
	}

	products, err := h.productService.List(c.Request.Context(), clientID, fullyPaid)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, products)
}

// Update applies a partial update to a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req ledgerapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete removes a product along with its payments
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	deleted, err := h.productService.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, deleted)
}

// Payments lists the product's payments, optionally leaving one payment
// out via the exclude query parameter
func (h *ProductHandler) Payments(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var exclude *uuid.UUID
	if raw := c.Query("exclude"); raw != "" {
		excludeID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid exclude filter")
			return
		}
		exclude = &excludeID
	}

	payments, err := h.paymentService.ListForProduct(c.Request.Context(), id, exclude)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payments)
}
