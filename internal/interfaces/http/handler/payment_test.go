package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/trimanage/backend/internal/domain/ledger"
	"github.com/trimanage/backend/internal/interfaces/http/dto"
)

func seedClientAndProduct(t *testing.T, srv *testServer, price string) (*ledger.Client, *ledger.Product) {
	t.Helper()

	client, err := ledger.NewClient("Test Client", "", "")
	require.NoError(t, err)
	client.ClearDomainEvents()
	srv.store.UpsertClient(client)

	product, err := ledger.NewProduct(client.ID, "Test Product", decimalFromString(t, price), "")
	require.NoError(t, err)
	product.ClearDomainEvents()
	srv.store.UpsertProduct(product)

	return client, product
}

func TestPaymentHandlerAdd(t *testing.T) {
	t.Run("payment covering the price marks product fully paid", func(t *testing.T) {
		srv := newTestServer()
		_, product := seedClientAndProduct(t, srv, "100.00")

		srv.productRepo.On("Update", mock.Anything, mock.AnythingOfType("*ledger.Product")).Return(nil)
		srv.paymentRepo.On("Insert", mock.Anything, mock.AnythingOfType("*ledger.Payment")).Return(nil)

		w := postJSON(srv, "/api/v1/payments", map[string]string{
			"product_id": product.ID.String(),
			"amount":     "100.00",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})

		paymentData := data["payment"].(map[string]interface{})
		assert.Equal(t, "100", paymentData["amount"])

		productData := data["product"].(map[string]interface{})
		assert.Equal(t, true, productData["is_fully_paid"])

		stored, ok := srv.store.ProductByID(product.ID)
		require.True(t, ok)
		assert.True(t, stored.IsFullyPaid)
	})

	t.Run("malformed amount returns 400 without touching storage", func(t *testing.T) {
		srv := newTestServer()
		_, product := seedClientAndProduct(t, srv, "100.00")

		w := postJSON(srv, "/api/v1/payments", map[string]string{
			"product_id": product.ID.String(),
			"amount":     "ten dollars",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		srv.paymentRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		srv.productRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown product returns 404", func(t *testing.T) {
		srv := newTestServer()

		w := postJSON(srv, "/api/v1/payments", map[string]string{
			"product_id": "3b241101-e2bb-4255-8caf-4136c566a962",
			"amount":     "10.00",
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("partial write surfaces PARTIAL_WRITE_FAILURE", func(t *testing.T) {
		srv := newTestServer()
		_, product := seedClientAndProduct(t, srv, "100.00")

		srv.productRepo.On("Update", mock.Anything, mock.AnythingOfType("*ledger.Product")).Return(nil)
		srv.paymentRepo.On("Insert", mock.Anything, mock.AnythingOfType("*ledger.Payment")).
			Return(assert.AnError)

		w := postJSON(srv, "/api/v1/payments", map[string]string{
			"product_id": product.ID.String(),
			"amount":     "100.00",
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodePartialWriteFailure, resp.Error.Code)
	})
}

func TestPaymentHandlerDelete(t *testing.T) {
	t.Run("deleting a payment reopens the product", func(t *testing.T) {
		srv := newTestServer()
		_, product := seedClientAndProduct(t, srv, "50.00")

		payment, err := ledger.NewPayment(product.ID, product.ClientID, decimalFromString(t, "50.00"), "")
		require.NoError(t, err)
		payment.ClearDomainEvents()
		srv.store.UpsertPayment(payment)
		product.SetFullyPaid(true)
		product.ClearDomainEvents()
		srv.store.UpsertProduct(product)

		srv.productRepo.On("Update", mock.Anything, mock.AnythingOfType("*ledger.Product")).Return(nil)
		srv.paymentRepo.On("Delete", mock.Anything, payment.ID).Return(nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/payments/"+payment.ID.String(), nil)
		srv.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		productData := data["product"].(map[string]interface{})
		assert.Equal(t, false, productData["is_fully_paid"])

		_, ok := srv.store.PaymentByID(payment.ID)
		assert.False(t, ok)
	})
}

func TestStatisticsHandler(t *testing.T) {
	srv := newTestServer()
	_, product := seedClientAndProduct(t, srv, "100.00")

	payment, err := ledger.NewPayment(product.ID, product.ClientID, decimalFromString(t, "40.00"), "")
	require.NoError(t, err)
	payment.ClearDomainEvents()
	srv.store.UpsertPayment(payment)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/statistics", nil)
	srv.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(1), data["client_count"])
	assert.Equal(t, float64(1), data["payment_count"])
	assert.Equal(t, "40", data["total_revenue"])
	assert.Equal(t, "40", data["average_payment"])
}
