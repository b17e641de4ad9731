package handler

import (
	"github.com/gin-gonic/gin"

	ledgerapp "github.com/trimanage/backend/internal/application/ledger"
)

// StatisticsHandler exposes the ledger summary endpoint
type StatisticsHandler struct {
	BaseHandler
	statisticsService *ledgerapp.StatisticsService
}

// NewStatisticsHandler creates a new StatisticsHandler
func NewStatisticsHandler(statisticsService *ledgerapp.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

// RegisterRoutes registers statistics routes on the given group
func (h *StatisticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/statistics", h.Summary)
}

// Summary returns entity counts, total revenue and average payment
func (h *StatisticsHandler) Summary(c *gin.Context) {
	stats, err := h.statisticsService.Summary(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stats)
}
