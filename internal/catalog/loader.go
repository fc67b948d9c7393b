// Package catalog loads the read-only product catalog from a YAML document.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mad-madhu-001/ecommerce/internal/domain"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

// Default returns the catalog bundled with the binary.
func Default() (*domain.Catalog, error) {
	c, err := Parse(bytes.NewReader(defaultCatalog))
	if err != nil {
		return nil, fmt.Errorf("load default catalog: %w", err)
	}
	return c, nil
}

// LoadFile reads a catalog from path. An empty path selects the bundled
// catalog.
func LoadFile(path string) (*domain.Catalog, error) {
	if path == "" {
		return Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a catalog document.
func Parse(r io.Reader) (*domain.Catalog, error) {
	var c domain.Catalog

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("catalog document is empty")
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if err := Validate(&c); err != nil {
		return nil, err
	}
	if c.Subcategories == nil {
		c.Subcategories = make(map[domain.Category][]string)
	}
	return &c, nil
}

// Validate checks the catalog invariants the query engine and cart rely on:
// unique product IDs, positive prices, known categories, and at least one
// image per product.
func Validate(c *domain.Catalog) error {
	var errs []error

	seen := make(map[string]struct{}, len(c.Products))
	for i, p := range c.Products {
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("product #%d: id is required", i))
			continue
		}
		if _, dup := seen[p.ID]; dup {
			errs = append(errs, fmt.Errorf("product %s: duplicate id", p.ID))
		}
		seen[p.ID] = struct{}{}

		if p.Price <= 0 {
			errs = append(errs, fmt.Errorf("product %s: price must be positive", p.ID))
		}
		if !domain.IsValidCategory(string(p.Category)) {
			errs = append(errs, fmt.Errorf("product %s: unknown category %q", p.ID, p.Category))
		}
		if len(p.Images) == 0 {
			errs = append(errs, fmt.Errorf("product %s: at least one image is required", p.ID))
		}
	}

	for _, info := range c.Categories {
		if !domain.IsValidCategory(string(info.ID)) {
			errs = append(errs, fmt.Errorf("category %q is not a storefront category", info.ID))
		}
	}
	for cat := range c.Subcategories {
		if !domain.IsValidCategory(string(cat)) {
			errs = append(errs, fmt.Errorf("subcategories for unknown category %q", cat))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
	}
	return nil
}
