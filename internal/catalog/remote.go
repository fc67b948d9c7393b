package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mad-madhu-001/ecommerce/internal/domain"
	"github.com/mad-madhu-001/ecommerce/pkg/httpclient"
)

// MaxDocumentBytes bounds a fetched catalog document.
const MaxDocumentBytes = 8 << 20

// Getter fetches a URL. *httpclient.Client satisfies it.
type Getter interface {
	Get(ctx context.Context, url string) (*http.Response, error)
}

// IsRemote reports whether source names an HTTP(S) document.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load reads the catalog from source: an http(s) URL fetched through g, a
// file path, or the empty string for the bundled catalog.
func Load(ctx context.Context, source string, g Getter) (*domain.Catalog, error) {
	if !IsRemote(source) {
		return LoadFile(source)
	}
	return Fetch(ctx, g, source)
}

// Fetch downloads and parses the catalog document at url.
func Fetch(ctx context.Context, g Getter, url string) (*domain.Catalog, error) {
	resp, err := g.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	if err := httpclient.CheckStatus(resp, "catalog"); err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body := io.LimitReader(resp.Body, MaxDocumentBytes+1)
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", url, err)
	}
	if len(raw) > MaxDocumentBytes {
		return nil, fmt.Errorf("catalog %s exceeds %d bytes", url, MaxDocumentBytes)
	}

	c, err := Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", url, err)
	}
	return c, nil
}
