package app

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mad-madhu-001/ecommerce/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func memoryConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("CART_STORE", config.StoreMemory)
	t.Setenv("KAFKA_ENABLED", "false")
	t.Setenv("TRACING_ENABLED", "false")
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func TestNewApp_MemoryStoreServesAPI(t *testing.T) {
	a, err := NewApp(memoryConfig(t), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, a.Shutdown()) })

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products?category=kids", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_count":3`)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items/quick", bytes.NewBufferString(`{"product_id":"11"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", "app-test")
	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewApp_CatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := "products:\n  - {id: a, name: Tee, price: 300, category: kids, images: [x]}\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg := memoryConfig(t)
	cfg.CatalogPath = path

	a, err := NewApp(cfg, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, a.Shutdown()) })

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/a", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewApp_BadCatalogFails(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.CatalogPath = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := NewApp(cfg, testLogger())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "open catalog")
}
