package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/food-catalog/backend/internal/config"
	"github.com/zhouzirui/food-catalog/backend/internal/middleware"
	"github.com/zhouzirui/food-catalog/backend/internal/model/food"
	"github.com/zhouzirui/food-catalog/backend/internal/service/catalog"
)

func testConfig(prefix string, metrics bool) *config.Config {
	return &config.Config{
		Catalog: config.CatalogConfig{
			APIPrefix:       prefix,
			DefaultPageSize: 10,
			MaxPageSize:     100,
		},
		CORS:          config.CORSConfig{Origins: []string{"http://localhost:3000"}},
		Observability: config.ObservabilityConfig{MetricsEnabled: metrics},
	}
}

func setupRouter(cfg *config.Config) http.Handler {
	svc := catalog.NewService(food.NewMemoryStore(food.Seed()), nil)
	return NewRouter(svc, nil, cfg)
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	r := setupRouter(testConfig("/api", true))

	rec := get(r, "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"status":"ok"},"error":null}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestFoodRoutesUnderPrefix(t *testing.T) {
	r := setupRouter(testConfig("/v1", false))

	assert.Equal(t, http.StatusOK, get(r, "/v1/food").Code)
	assert.Equal(t, http.StatusOK, get(r, "/v1/food/1").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/api/food").Code)
}

func TestEmptyPrefixMountsAtRoot(t *testing.T) {
	r := setupRouter(testConfig("", false))

	assert.Equal(t, http.StatusOK, get(r, "/food").Code)
	assert.Equal(t, http.StatusOK, get(r, "/health").Code)
}

func TestMetricsEndpointToggle(t *testing.T) {
	enabled := setupRouter(testConfig("/api", true))
	get(enabled, "/api/food")

	rec := get(enabled, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "food_catalog_items"))
	assert.True(t, strings.Contains(rec.Body.String(), "http_requests_total"))

	disabled := setupRouter(testConfig("/api", false))
	assert.Equal(t, http.StatusNotFound, get(disabled, "/metrics").Code)
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	r := setupRouter(testConfig("/api", false))

	rec := get(r, "/api/drinks")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"data":null,"error":"route not found"}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodPut, "/api/food/1", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORSPreflightOnAPI(t *testing.T) {
	r := setupRouter(testConfig("/api", false))

	req := httptest.NewRequest(http.MethodOptions, "/api/food", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
