package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("returns zeros for empty ledger", func(t *testing.T) {
		f := newFixture()

		resp, err := NewStatisticsService(f.store).Summary(ctx)

		require.NoError(t, err)
		assert.Zero(t, resp.ClientCount)
		assert.Zero(t, resp.PaymentCount)
		assert.Equal(t, "0", resp.TotalRevenue)
		// Division-by-zero guard: no payments means a zero average.
		assert.Equal(t, "0", resp.AveragePayment)
	})

	t.Run("aggregates revenue and average", func(t *testing.T) {
		f := newFixture()
		_, product := seedProduct(t, f, "100.00")
		seedPayment(t, f, product, "60.00")
		seedPayment(t, f, product, "40.00")

		resp, err := NewStatisticsService(f.store).Summary(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, resp.ClientCount)
		assert.Equal(t, 1, resp.ProductCount)
		assert.Equal(t, 2, resp.PaymentCount)
		assert.Equal(t, "100", resp.TotalRevenue)
		assert.Equal(t, "50", resp.AveragePayment)
	})
}
