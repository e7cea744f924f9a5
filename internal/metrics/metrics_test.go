package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPetEvent(t *testing.T) {
	m := New()

	m.PetEvent("deposit", "on_time")
	m.PetEvent("deposit", "on_time")
	m.PetEvent("withdrawal", "withdrawal")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.petEvents.WithLabelValues("deposit", "on_time")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.petEvents.WithLabelValues("withdrawal", "withdrawal")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/pet/state", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pet/state?wallet=G", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/pet/state", "404")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "stellar_pets_http_requests_total")
}
