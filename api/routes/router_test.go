package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/omarvaldez/shopstock-backend/internal/analytics"
	"github.com/omarvaldez/shopstock-backend/internal/inventory"
	"github.com/omarvaldez/shopstock-backend/pkg/config"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	inv, err := inventory.NewService(inventory.NewRepository(gdb), config.FeatureFlagsConfig{AutoCreateOnSet: true})
	require.NoError(t, err)

	stats, err := analytics.NewService(inv)
	require.NoError(t, err)

	cfg := &config.Config{App: config.AppConfig{Env: config.AppEnvDev}}
	return NewRouter(cfg, nil, nil, nil, nil, inv, stats)
}

func TestRouterHealthLive(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, config.AppEnvDev, rec.Header().Get("X-ShopStock-Env"))
}

func TestRouterInventoryLifecycle(t *testing.T) {
	router := setupRouter(t)

	body := []byte(`{"id":"item-1","item_name":"Air Filter","category":"Spare Parts","quantity":15,"reorder_level":5,"supplier":"AutoParts Direct","unit_price":12.5}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Duplicate id conflicts.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/inventory/", bytes.NewReader(body))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusConflict, rec.Code)

	// Full replace through the keyed route.
	update := []byte(`{"id":"item-1","item_name":"Air Filter","quantity":30,"unit_price":12.5}`)
	req = httptest.NewRequest(http.MethodPut, "/api/v1/inventory/item-1", bytes.NewReader(update))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/v1/inventory/", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var listEnvelope struct {
		Data []inventory.ItemDTO `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listEnvelope))
	require.Len(t, listEnvelope.Data, 1)
	assert.Equal(t, 30, listEnvelope.Data[0].Quantity)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/inventory/item-1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/inventory/item-1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterAnalyticsEndpoints(t *testing.T) {
	router := setupRouter(t)

	body := []byte(`{"id":"item-1","item_name":"Brake Pads","quantity":8,"reorder_level":10,"supplier":"AutoParts Direct","unit_price":34.99}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/analytics/count", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var countEnvelope struct {
		Data map[string]int `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&countEnvelope))
	assert.Equal(t, 1, countEnvelope.Data["count"])

	req = httptest.NewRequest(http.MethodGet, "/api/v1/analytics/reorder", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var reorderEnvelope struct {
		Data []analytics.ReorderAlert `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&reorderEnvelope))
	require.Len(t, reorderEnvelope.Data, 1)
	assert.Equal(t, 2, reorderEnvelope.Data[0].Shortage)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/analytics/stock?q=brake", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterRequestIDHeader(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestRouterSuppliers(t *testing.T) {
	router := setupRouter(t)

	body := []byte(`{"name":"LubriMax","contact_person":"Dana Velez"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/suppliers/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/v1/suppliers/", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data []inventory.SupplierDTO `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	require.Len(t, envelope.Data, 1)
}
