package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHTTPMetrics(t *testing.T) {
	metrics := NewHTTPMetrics("trimanage")

	router := gin.New()
	router.Use(metrics.Middleware())
	router.GET("/clients/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/metrics", metrics.Handler())

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/clients/abc", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	// The route template, not the concrete ID, is the path label.
	assert.Contains(t, body, `trimanage_http_requests_total{method="GET",path="/clients/:id",status="200"} 3`)
	assert.Contains(t, body, "trimanage_http_request_duration_seconds_bucket")
}
