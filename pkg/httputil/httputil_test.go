package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mad-madhu-001/ecommerce/pkg/errors"
	"github.com/mad-madhu-001/ecommerce/pkg/logger"
	"github.com/mad-madhu-001/ecommerce/pkg/validator"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// --- WriteJSON ---

func TestWriteJSON_SetsContentTypeAndStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusTeapot, Response{Data: "hello"})

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestWriteData_WrapsInEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteData(rec, http.StatusOK, map[string]int{"total_items": 3})

	assert.JSONEq(t, `{"data":{"total_items":3}}`, rec.Body.String())
}

// --- WriteError ---

func TestWriteError_Mapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"app not found", apperrors.NotFound("product", "99"), http.StatusNotFound, "NOT_FOUND", "product with id 99 not found"},
		{"wrapped app error", fmt.Errorf("add: %w", apperrors.InvalidInput("quantity must be at least 1")), http.StatusBadRequest, "INVALID_INPUT", "quantity must be at least 1"},
		{"sentinel not found", apperrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND", "resource not found"},
		{"sentinel invalid", fmt.Errorf("bad: %w", apperrors.ErrInvalidInput), http.StatusBadRequest, "INVALID_INPUT", "bad: invalid input"},
		{"unavailable", apperrors.Unavailable("redis", errors.New("x")), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "redis is unavailable"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/products/99", nil)

			WriteError(rec, req, tt.err, slog.Default())

			assert.Equal(t, tt.status, rec.Code)
			resp := decode(t, rec)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.message, resp.Error.Message)
			assert.Nil(t, resp.Data)
		})
	}
}

func TestWriteError_ValidationFields(t *testing.T) {
	type body struct {
		ProductID string `json:"product_id" validate:"required"`
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", nil)

	WriteError(rec, req, validator.Validate(body{}), slog.Default())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "is required", resp.Error.Fields["product_id"])
}

func TestWriteError_IncludesRequestID(t *testing.T) {
	rec := httptest.NewRecorder()
	ctx := logger.WithCorrelationID(context.Background(), "corr-123")
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)

	WriteError(rec, req, apperrors.ErrNotFound, slog.Default())

	assert.Equal(t, "corr-123", decode(t, rec).Error.RequestID)
}

func TestWriteError_LogsServerErrorsWithRequestLogger(t *testing.T) {
	var scoped, fallback bytes.Buffer
	ctx := logger.NewContext(context.Background(), logger.NewWithWriter("storefront", "info", &scoped))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil).WithContext(ctx)

	WriteError(httptest.NewRecorder(), req, errors.New("redis down"), logger.NewWithWriter("storefront", "info", &fallback))
	WriteError(httptest.NewRecorder(), req, apperrors.InvalidInput("nope"), logger.NewWithWriter("storefront", "info", &fallback))

	assert.Contains(t, scoped.String(), "redis down")
	assert.NotContains(t, scoped.String(), "nope")
	assert.Zero(t, fallback.Len())
}

func TestWriteErrorDetails_AttachesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", nil)

	WriteErrorDetails(rec, req, apperrors.InvalidInput("size is required"), map[string]string{"hint": "pick a size"}, slog.Default())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "size is required", resp.Error.Message)
	assert.Equal(t, map[string]any{"hint": "pick a size"}, resp.Error.Details)
}
