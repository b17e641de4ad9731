package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/trimanage/backend/internal/state"
)

// StatisticsService derives dashboard figures from the in-memory mirror.
// All reads are pure; nothing here mutates state.
type StatisticsService struct {
	store *state.EntityStore
}

// NewStatisticsService creates a new StatisticsService
func NewStatisticsService(store *state.EntityStore) *StatisticsService {
	return &StatisticsService{store: store}
}

// Summary returns entity counts plus revenue aggregates
func (s *StatisticsService) Summary(_ context.Context) (*StatisticsResponse, error) {
	clients, products, _ := s.store.Counts()
	payments := s.store.Payments()

	totalRevenue := decimal.Zero
	for i := range payments {
		totalRevenue = totalRevenue.Add(payments[i].Amount)
	}

	averagePayment := decimal.Zero
	if len(payments) > 0 {
		averagePayment = totalRevenue.Div(decimal.NewFromInt(int64(len(payments))))
	}

	return &StatisticsResponse{
		ClientCount:    clients,
		ProductCount:   products,
		PaymentCount:   len(payments),
		TotalRevenue:   totalRevenue.String(),
		AveragePayment: averagePayment.String(),
	}, nil
}
