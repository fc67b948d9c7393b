package service

import (
	"context"
	"log/slog"

	"github.com/mad-madhu-001/ecommerce/internal/domain"
	"github.com/mad-madhu-001/ecommerce/internal/engine"
	apperrors "github.com/mad-madhu-001/ecommerce/pkg/errors"
	"github.com/mad-madhu-001/ecommerce/pkg/logger"
	"github.com/mad-madhu-001/ecommerce/pkg/pagination"
	"github.com/mad-madhu-001/ecommerce/pkg/slug"
)

// CategoryListing pairs a category with its subcategories.
type CategoryListing struct {
	domain.CategoryInfo
	Subcategories []string `json:"subcategories"`
	ProductCount  int      `json:"product_count"`
}

// CategoryPage is the result of browsing one category.
type CategoryPage struct {
	Category      domain.CategoryInfo               `json:"category"`
	Subcategories []string                          `json:"subcategories"`
	Products      pagination.Result[domain.Product] `json:"products"`
}

// CatalogService answers read-only queries over an immutable catalog.
type CatalogService struct {
	catalog     *domain.Catalog
	collections engine.Collections
	slugs       *slug.Index
	logger      *slog.Logger
}

// NewCatalogService creates a catalog service. Collections and product slugs
// are computed once since the catalog never changes.
func NewCatalogService(catalog *domain.Catalog, logger *slog.Logger) *CatalogService {
	slugs := slug.NewIndex()
	for _, p := range catalog.Products {
		slugs.Add(p.ID, p.Name)
	}
	return &CatalogService{
		catalog:     catalog,
		collections: engine.BuildCollections(catalog.Products),
		slugs:       slugs,
		logger:      logger,
	}
}

// Search evaluates q against the catalog and returns the requested page.
func (s *CatalogService) Search(ctx context.Context, q domain.Query, page pagination.Params) pagination.Result[domain.Product] {
	matched := engine.Evaluate(s.catalog.Products, q)

	logger.WithContext(ctx, s.logger).DebugContext(ctx, "catalog search",
		slog.String("search", q.SearchText),
		slog.String("category", string(q.Category)),
		slog.String("subcategory", q.Subcategory),
		slog.String("price", q.PriceRange),
		slog.String("sort", string(q.SortKey)),
		slog.Int("matched", len(matched)),
	)
	return pagination.Paginate(matched, page)
}

// Product returns the product with the given ID or slug. IDs win when a
// slug happens to equal another product's ID.
func (s *CatalogService) Product(_ context.Context, idOrSlug string) (domain.Product, error) {
	if p, ok := s.catalog.FindProduct(idOrSlug); ok {
		return p, nil
	}
	if id, ok := s.slugs.Key(idOrSlug); ok {
		if p, ok := s.catalog.FindProduct(id); ok {
			return p, nil
		}
	}
	return domain.Product{}, apperrors.NotFound("product", idOrSlug)
}

// Slug returns the URL slug of the product with id, or "" if there is none.
func (s *CatalogService) Slug(id string) string {
	sl, _ := s.slugs.Slug(id)
	return sl
}

// Categories lists every category with its subcategories and product count.
func (s *CatalogService) Categories(_ context.Context) []CategoryListing {
	out := make([]CategoryListing, 0, len(s.catalog.Categories))
	for _, c := range s.catalog.Categories {
		out = append(out, CategoryListing{
			CategoryInfo:  c,
			Subcategories: s.subcategories(c.ID),
			ProductCount:  s.collections.CategoryCounts[c.ID],
		})
	}
	return out
}

// Subcategories returns the subcategories of categoryID.
func (s *CatalogService) Subcategories(_ context.Context, categoryID string) ([]string, error) {
	info, ok := s.findCategory(categoryID)
	if !ok {
		return nil, apperrors.NotFound("category", categoryID)
	}
	return s.subcategories(info.ID), nil
}

// CategoryPage evaluates q restricted to categoryID. Any category in q is
// overridden.
func (s *CatalogService) CategoryPage(ctx context.Context, categoryID string, q domain.Query, page pagination.Params) (CategoryPage, error) {
	info, ok := s.findCategory(categoryID)
	if !ok {
		return CategoryPage{}, apperrors.NotFound("category", categoryID)
	}

	q.Category = info.ID
	return CategoryPage{
		Category:      info,
		Subcategories: s.subcategories(info.ID),
		Products:      s.Search(ctx, q, page),
	}, nil
}

// Collections returns the curated shelves.
func (s *CatalogService) Collections(_ context.Context) engine.Collections {
	return s.collections
}

// findCategory resolves a category descriptor. A known category missing from
// the catalog's descriptor list still resolves, named by its ID.
func (s *CatalogService) findCategory(id string) (domain.CategoryInfo, bool) {
	if info, ok := s.catalog.FindCategory(id); ok {
		return info, true
	}
	if domain.IsValidCategory(id) {
		return domain.CategoryInfo{ID: domain.Category(id), Name: id}, true
	}
	return domain.CategoryInfo{}, false
}

func (s *CatalogService) subcategories(c domain.Category) []string {
	subs := s.catalog.Subcategories[c]
	out := make([]string, len(subs))
	copy(out, subs)
	return out
}
