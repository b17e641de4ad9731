package handler

import (
	"github.com/gin-gonic/gin"

	ledgerapp "github.com/trimanage/backend/internal/application/ledger"
)

// ClientHandler handles client API endpoints
type ClientHandler struct {
	BaseHandler
	clientService  *ledgerapp.ClientService
	productService *ledgerapp.ProductService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *ledgerapp.ClientService, productService *ledgerapp.ProductService) *ClientHandler {
	return &ClientHandler{clientService: clientService, productService: productService}
}

// RegisterRoutes registers client routes on the given group
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/clients")
	{
		clients.POST("", h.Create)
		clients.GET("", h.List)
		clients.GET("/:id", h.Get)
		clients.PUT("/:id", h.Update)
		clients.DELETE("/:id", h.Delete)
		clients.GET("/:id/products", h.Products)
	}
}

// Create creates a new client
func (h *ClientHandler) Create(c *gin.Context) {
	var req ledgerapp.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, client)
}

// Get retrieves a client by ID
func (h *ClientHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	client, err := h.clientService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, client)
}

// List retrieves all clients
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clientService.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, clients)
}

// Update applies a partial update to a client
func (h *ClientHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	var req ledgerapp.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, client)
}

// Delete removes a client along with its products and payments
func (h *ClientHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	deleted, err := h.clientService.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, deleted)
}

// Products lists the client's products, optionally narrowed by the paid
// query parameter (all, paid or unpaid)
func (h *ClientHandler) Products(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	var fullyPaid *bool
	switch c.DefaultQuery("paid", "all") {
	case "all":
	case "paid":
		paid := true
		fullyPaid = &paid
	case "unpaid":
		paid := false
		fullyPaid = &paid
	default:
		h.BadRequest(c, "Invalid paid filter, expected all, paid or unpaid")
		return
	}

	products, err := h.productService.ListForClient(c.Request.Context(), id, fullyPaid)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, products)
}
