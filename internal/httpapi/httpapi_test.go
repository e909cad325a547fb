package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etfarb/arbscan/internal/domain"
	"github.com/etfarb/arbscan/internal/repository"
)

func newTestRouter(t *testing.T, repo repository.SignalRepository, registry *prometheus.Registry) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	srv := New("arbscan", "test", repo, registry, nil)
	srv.RegisterRoutes(router)
	return router
}

func TestHealthzReturnsHealthy(t *testing.T) {
	router := newTestRouter(t, repository.NewInMemoryRepository(), nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyAndLiveEndpoints(t *testing.T) {
	router := newTestRouter(t, repository.NewInMemoryRepository(), nil)

	for _, path := range []string{"/healthz/ready", "/healthz/live"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "path %s", path)
	}
}

func TestStatusReportsRepositoryCounts(t *testing.T) {
	repo := repository.NewInMemoryRepository()
	repo.Save(domain.TradingSignal{SignalID: "s1"})
	repo.Save(domain.TradingSignal{SignalID: "s2"})

	router := newTestRouter(t, repo, nil)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(2), body["signals_total"])
}

func TestMetricsEndpointOmittedWithoutRegistry(t *testing.T) {
	router := newTestRouter(t, repository.NewInMemoryRepository(), nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsEndpointServesRegisteredCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "arbscan_test_total", Help: "test"})
	counter.Inc()
	registry.MustRegister(counter)

	router := newTestRouter(t, repository.NewInMemoryRepository(), registry)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "arbscan_test_total")
}
