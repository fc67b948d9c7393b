package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mad-madhu-001/ecommerce/internal/domain"
	"github.com/mad-madhu-001/ecommerce/internal/engine"
	"github.com/mad-madhu-001/ecommerce/internal/service"
)

// ============================================================================
// Products
// ============================================================================

func TestListProducts_Default(t *testing.T) {
	s := setupRouter(t, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/products", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=300", rec.Header().Get("Cache-Control"))

	resp := decodeData[ProductListResponse](t, rec)
	assert.Equal(t, 12, resp.Products.TotalCount)
	assert.Equal(t, []string{"1", "3", "5", "9"}, ids(resp.Products.Data[:4]))
	assert.Equal(t, domain.SortFeatured, resp.Query.SortKey)
}

func TestListProducts_CategoryAndSort(t *testing.T) {
	s := setupRouter(t, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/products?category=women&sort=price-low", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeData[ProductListResponse](t, rec)
	assert.Equal(t, []string{"12", "4", "2", "1", "3"}, ids(resp.Products.Data))
	assert.Equal(t, domain.CategoryWomen, resp.Query.Category)
}

func TestListProducts_SearchPriceAndPaging(t *testing.T) {
	s := setupRouter(t, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/products?search=kurta&price=0-1000", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"10"}, ids(decodeData[ProductListResponse](t, rec).Products.Data))

	rec = s.do(t, http.MethodGet, "/api/v1/products?sort=price-low&page=3&per_page=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decodeData[ProductListResponse](t, rec).Products
	assert.Equal(t, []string{"7", "3"}, ids(page.Data))
	assert.Equal(t, 3, page.TotalPages)
}

func TestListProducts_UnknownTokensFallBack(t *testing.T) {
	s := setupRouter(t, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/products?sort=cheapest&price=free", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeData[ProductListResponse](t, rec)
	assert.Equal(t, domain.SortFeatured, resp.Query.SortKey)
	assert.Equal(t, domain.PriceAll, resp.Query.PriceRange)
	assert.Equal(t, 12, resp.Products.TotalCount)
}

func TestListProducts_UnknownCategory(t *testing.T) {
	s := setupRouter(t, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/products?category=pets", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", decodeResponse(t, rec).Error.Code)
}

func TestListProducts_NoMatchIsEmptyList(t *testing.T) {
	s := setupRouter(t, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/products?search=denim", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestGetProduct(t *testing.T) {
	s := setupRouter(t, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/products/5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	p := decodeData[ProductResponse](t, rec)
	assert.Equal(t, "Linen Casual Shirt", p.Name)
	assert.Equal(t, "linen-casual-shirt", p.Slug)
	assert.Equal(t, 25, p.DiscountPercent)
	assert.True(t, p.CanQuickAdd)

	rec = s.do(t, http.MethodGet, "/api/v1/products/linen-casual-shirt", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "5", decodeData[ProductResponse](t, rec).ID)

	rec = s.do(t, http.MethodGet, "/api/v1/products/8", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decodeData[ProductResponse](t, rec).CanQuickAdd)

	rec = s.do(t, http.MethodGet, "/api/v1/products/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeResponse(t, rec).Error.Code)
}

// ============================================================================
// Categories and collections
// ============================================================================

func TestListCategories(t *testing.T) {
	s := setupRouter(t, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/categories", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	cats := decodeData[[]service.CategoryListing](t, rec)
	require.Len(t, cats, 3)
	assert.Equal(t, domain.CategoryMen, cats[0].ID)
	assert.Equal(t, 4, cats[0].ProductCount)
	assert.Equal(t, []string{"shirts", "kurtas", "blazers", "trousers"}, cats[0].Subcategories)
}

func TestCategoryProducts(t *testing.T) {
	s := setupRouter(t, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/categories/women/products?subcategory=kurtas&sort=price-high&category=men", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	page := decodeData[service.CategoryPage](t, rec)
	assert.Equal(t, domain.CategoryWomen, page.Category.ID)
	assert.Equal(t, []string{"2", "12"}, ids(page.Products.Data))
	assert.NotEmpty(t, page.Subcategories)
}

func TestCategoryProducts_UnknownCategory(t *testing.T) {
	s := setupRouter(t, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/categories/pets/products", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCollections(t *testing.T) {
	s := setupRouter(t, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/collections", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	c := decodeData[engine.Collections](t, rec)
	assert.Equal(t, []string{"1", "3", "5", "9"}, ids(c.Featured))
	assert.Equal(t, []string{"2", "3", "6", "9", "12"}, ids(c.NewArrivals))
	assert.Equal(t, 3, c.CategoryCounts[domain.CategoryKids])
}
