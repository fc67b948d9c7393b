package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mad-madhu-001/ecommerce/pkg/errors"
	"github.com/mad-madhu-001/ecommerce/pkg/httpclient"
)

func testClient() *httpclient.Client {
	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 1
	cfg.RetryWaitMin = time.Millisecond
	cfg.RetryWaitMax = time.Millisecond
	return httpclient.New(cfg, nil)
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://cdn.example/catalog.yaml"))
	assert.True(t, IsRemote("http://localhost:9000/catalog.yaml"))
	assert.False(t, IsRemote("/etc/storefront/catalog.yaml"))
	assert.False(t, IsRemote(""))
}

func TestFetch(t *testing.T) {
	doc := "products:\n  - {id: a, name: A, price: 10, category: men, images: [x]}\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(doc))
	}))
	defer server.Close()

	c, err := Load(context.Background(), server.URL+"/catalog.yaml", testClient())
	require.NoError(t, err)

	require.Len(t, c.Products, 1)
	assert.Equal(t, "a", c.Products[0].ID)
}

func TestFetch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
		is      error
	}{
		{name: "not found", status: http.StatusNotFound, wantErr: "not found", is: apperrors.ErrNotFound},
		{name: "server error", status: http.StatusInternalServerError, wantErr: "unavailable", is: apperrors.ErrServiceUnavail},
		{name: "invalid document", status: http.StatusOK, body: "products:\n  - {id: a, price: 0, category: men, images: [x]}\n", wantErr: "price must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := Fetch(context.Background(), testClient(), server.URL)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is))
			}
		})
	}
}

func TestFetch_TooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("#", MaxDocumentBytes+1)))
	}))
	defer server.Close()

	_, err := Fetch(context.Background(), testClient(), server.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestLoad_LocalPathIgnoresGetter(t *testing.T) {
	c, err := Load(context.Background(), "", nil)

	require.NoError(t, err)
	assert.NotEmpty(t, c.Products)
}
