package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trimanage/backend/tests/testutil"
)

// TestLedgerBusinessFlow drives the full client/product/payment lifecycle
// through the HTTP API: create entities, pay a product off, edit and
// remove payments, and finally cascade-delete the client.
func TestLedgerBusinessFlow(t *testing.T) {
	stack := NewStack(t)
	ctx := context.Background()

	// Create a client.
	w := testutil.PerformRequest(t, stack.Engine, http.MethodPost, "/api/v1/clients", map[string]string{
		"name":         "Northwind Traders",
		"phone_number": "555-0199",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	clientID := testutil.DecodeData(t, w)["id"].(string)

	// Create a product priced at 250.00.
	w = testutil.PerformRequest(t, stack.Engine, http.MethodPost, "/api/v1/products", map[string]string{
		"client_id":   clientID,
		"name":        "Office Refit",
		"total_price": "250.00",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	productData := testutil.DecodeData(t, w)
	productID := productData["id"].(string)
	assert.Equal(t, false, productData["is_fully_paid"])

	// First payment leaves the product open.
	w = testutil.PerformRequest(t, stack.Engine, http.MethodPost, "/api/v1/payments", map[string]string{
		"product_id": productID,
		"amount":     "100.00",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	mutation := testutil.DecodeData(t, w)
	product := mutation["product"].(map[string]interface{})
	assert.Equal(t, false, product["is_fully_paid"])

	// Second payment settles it exactly.
	w = testutil.PerformRequest(t, stack.Engine, http.MethodPost, "/api/v1/payments", map[string]string{
		"product_id": productID,
		"amount":     "150.00",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	mutation = testutil.DecodeData(t, w)
	product = mutation["product"].(map[string]interface{})
	assert.Equal(t, true, product["is_fully_paid"])
	paymentID := mutation["payment"].(map[string]interface{})["id"].(string)

	// The settled status survives a round trip through storage.
	stored, err := stack.ProductRepo.FindByID(ctx, uuid.MustParse(productID))
	require.NoError(t, err)
	assert.True(t, stored.IsFullyPaid)

	// Shrinking the second payment reopens the product.
	w = testutil.PerformRequest(t, stack.Engine, http.MethodPut, "/api/v1/payments/"+paymentID, map[string]string{
		"amount": "149.99",
	})
	require.Equal(t, http.StatusOK, w.Code)
	mutation = testutil.DecodeData(t, w)
	product = mutation["product"].(map[string]interface{})
	assert.Equal(t, false, product["is_fully_paid"])

	stored, err = stack.ProductRepo.FindByID(ctx, uuid.MustParse(productID))
	require.NoError(t, err)
	assert.False(t, stored.IsFullyPaid)

	// Statistics reflect the recorded payments.
	w = testutil.PerformRequest(t, stack.Engine, http.MethodGet, "/api/v1/statistics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := testutil.DecodeData(t, w)
	assert.Equal(t, float64(1), stats["client_count"])
	assert.Equal(t, float64(1), stats["product_count"])
	assert.Equal(t, float64(2), stats["payment_count"])
	assert.Equal(t, "249.99", stats["total_revenue"])

	// Cascade-delete the client; products and payments go with it.
	w = testutil.PerformRequest(t, stack.Engine, http.MethodDelete, "/api/v1/clients/"+clientID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	deleted := testutil.DecodeData(t, w)
	assert.Len(t, deleted["product_ids"], 1)
	assert.Len(t, deleted["payment_ids"], 2)

	clients, err := stack.ClientRepo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, clients)
	payments, err := stack.PaymentRepo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, payments)

	clientCount, productCount, paymentCount := stack.Store.Counts()
	assert.Zero(t, clientCount)
	assert.Zero(t, productCount)
	assert.Zero(t, paymentCount)
}

// TestHydrateRebuildsMirror verifies the startup path: entities written
// through the API are reconstructed into a fresh mirror from storage.
func TestHydrateRebuildsMirror(t *testing.T) {
	stack := NewStack(t)

	w := testutil.PerformRequest(t, stack.Engine, http.MethodPost, "/api/v1/clients", map[string]string{
		"name": "Acme Ltd",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	clientID := testutil.DecodeData(t, w)["id"].(string)

	w = testutil.PerformRequest(t, stack.Engine, http.MethodPost, "/api/v1/products", map[string]string{
		"client_id":   clientID,
		"name":        "Annual Contract",
		"total_price": "1200.00",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Wipe the mirror, then hydrate it back from the database.
	stack.Store.Load(nil, nil, nil)
	clientCount, _, _ := stack.Store.Counts()
	require.Zero(t, clientCount)

	stack.Hydrate(t)

	clientCount, productCount, _ := stack.Store.Counts()
	assert.Equal(t, 1, clientCount)
	assert.Equal(t, 1, productCount)

	w = testutil.PerformRequest(t, stack.Engine, http.MethodGet, "/api/v1/clients/"+clientID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

// TestProductFilters exercises the list filters end to end.
func TestProductFilters(t *testing.T) {
	stack := NewStack(t)

	w := testutil.PerformRequest(t, stack.Engine, http.MethodPost, "/api/v1/clients", map[string]string{
		"name": "Filter Client",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	clientID := testutil.DecodeData(t, w)["id"].(string)

	for _, p := range []struct{ name, price string }{
		{"Paid Product", "10.00"},
		{"Open Product", "999.00"},
	} {
		w = testutil.PerformRequest(t, stack.Engine, http.MethodPost, "/api/v1/products", map[string]string{
			"client_id":   clientID,
			"name":        p.name,
			"total_price": p.price,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	// Settle the first product.
	w = testutil.PerformRequest(t, stack.Engine, http.MethodGet, "/api/v1/products?client_id="+clientID+"&fully_paid=false", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 2)

	var paidID string
	for _, p := range list.Data {
		if p["name"] == "Paid Product" {
			paidID = p["id"].(string)
		}
	}
	require.NotEmpty(t, paidID)

	w = testutil.PerformRequest(t, stack.Engine, http.MethodPost, "/api/v1/payments", map[string]string{
		"product_id": paidID,
		"amount":     "10.00",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = testutil.PerformRequest(t, stack.Engine, http.MethodGet, "/api/v1/products?fully_paid=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Paid Product", list.Data[0]["name"])
}
