package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mad-madhu-001/ecommerce/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func product(id string, cat domain.Category, price int64) domain.Product {
	return domain.Product{
		ID:          id,
		Name:        "Item " + id,
		Price:       price,
		Category:    cat,
		Subcategory: "misc",
		Images:      []string{"/img/" + id + ".png"},
		InStock:     true,
	}
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func sampleCatalog() []domain.Product {
	silk := product("w1", domain.CategoryWomen, 2499)
	silk.Name = "Silk Saree"
	silk.Subcategory = "sarees"
	silk.Tags = []string{"Festive", "silk"}
	silk.IsFeatured = true
	silk.Rating = 4.8
	silk.Discount = 20

	kurta := product("w2", domain.CategoryWomen, 899)
	kurta.Name = "Cotton Kurta"
	kurta.Subcategory = "kurtas"
	kurta.Description = "Breathable everyday wear"
	kurta.IsNew = true
	kurta.Rating = 4.2

	shirt := product("m1", domain.CategoryMen, 1299)
	shirt.Name = "Linen Shirt"
	shirt.Subcategory = "shirts"
	shirt.IsNew = true
	shirt.IsFeatured = true
	shirt.Rating = 4.5
	shirt.Discount = 10

	blazer := product("m2", domain.CategoryMen, 5999)
	blazer.Name = "Wool Blazer"
	blazer.Subcategory = "blazers"
	blazer.Rating = 4.5

	frock := product("k1", domain.CategoryKids, 1000)
	frock.Name = "Party Frock"
	frock.Subcategory = "dresses"
	frock.Tags = []string{"party"}
	frock.Rating = 3.9
	frock.Discount = 30

	return []domain.Product{silk, kurta, shirt, blazer, frock}
}

// ---------------------------------------------------------------------------
// Filter stage
// ---------------------------------------------------------------------------

func TestEvaluate_ScenarioCategoryPriceHigh(t *testing.T) {
	catalog := []domain.Product{
		product("A", domain.CategoryWomen, 1000),
		product("B", domain.CategoryWomen, 2000),
		product("C", domain.CategoryMen, 500),
	}

	got := Evaluate(catalog, domain.Query{Category: domain.CategoryWomen, SortKey: domain.SortPriceHigh})

	assert.Equal(t, []string{"B", "A"}, ids(got))
}

func TestEvaluate_EmptyQueryReturnsAllFeaturedFirst(t *testing.T) {
	got := Evaluate(sampleCatalog(), domain.Query{})

	if diff := cmp.Diff([]string{"w1", "m1", "w2", "m2", "k1"}, ids(got)); diff != "" {
		t.Errorf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestEvaluate_SearchMatchesNameDescriptionAndTags(t *testing.T) {
	catalog := sampleCatalog()

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{name: "name, case-insensitive", search: "LINEN", want: []string{"m1"}},
		{name: "description", search: "breathable", want: []string{"w2"}},
		{name: "tag", search: "festive", want: []string{"w1"}},
		{name: "tag substring", search: "part", want: []string{"k1"}},
		{name: "no match", search: "denim", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(catalog, domain.Query{SearchText: tt.search})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestEvaluate_SubcategoryAllDisablesFilter(t *testing.T) {
	catalog := sampleCatalog()

	all := Evaluate(catalog, domain.Query{Category: domain.CategoryMen, Subcategory: domain.SubcategoryAll})
	shirts := Evaluate(catalog, domain.Query{Category: domain.CategoryMen, Subcategory: "shirts"})

	assert.Len(t, all, 2)
	assert.Equal(t, []string{"m1"}, ids(shirts))
}

func TestEvaluate_PriceRangeBoundsInclusive(t *testing.T) {
	catalog := sampleCatalog()

	under := Evaluate(catalog, domain.Query{PriceRange: domain.PriceUnder1000, SortKey: domain.SortPriceLow})
	mid := Evaluate(catalog, domain.Query{PriceRange: domain.Price1000To2500, SortKey: domain.SortPriceLow})
	above := Evaluate(catalog, domain.Query{PriceRange: domain.PriceAbove5000})

	assert.Equal(t, []string{"w2", "k1"}, ids(under))
	assert.Equal(t, []string{"k1", "m1", "w1"}, ids(mid))
	assert.Equal(t, []string{"m2"}, ids(above))
}

func TestEvaluate_UnknownPriceTokenAppliesNoFilter(t *testing.T) {
	catalog := sampleCatalog()

	got := Evaluate(catalog, domain.Query{PriceRange: "cheap"})

	assert.Len(t, got, len(catalog))
}

func TestEvaluate_FiltersAreConjunctive(t *testing.T) {
	catalog := sampleCatalog()

	got := Evaluate(catalog, domain.Query{
		Category:   domain.CategoryWomen,
		SearchText: "silk",
		PriceRange: domain.PriceUnder1000,
	})

	assert.Empty(t, got)
}

func TestEvaluate_FilterCorrectness(t *testing.T) {
	catalog := sampleCatalog()

	for _, cat := range domain.ValidCategories() {
		for _, token := range domain.ValidPriceRanges() {
			q := domain.Query{Category: cat, PriceRange: token}
			got := Evaluate(catalog, q)
			bucket, hasBucket := domain.ParsePriceRange(token)

			for _, p := range got {
				assert.Equal(t, cat, p.Category)
				if hasBucket {
					assert.True(t, bucket.Contains(p.Price), "price %d outside %s", p.Price, token)
				}
			}

			var expected int
			for _, p := range catalog {
				if p.Category == cat && (!hasBucket || bucket.Contains(p.Price)) {
					expected++
				}
			}
			assert.Len(t, got, expected, "category %s price %s", cat, token)
		}
	}
}

func TestEvaluate_DoesNotModifyInput(t *testing.T) {
	catalog := sampleCatalog()
	before := ids(catalog)

	_ = Evaluate(catalog, domain.Query{SortKey: domain.SortPriceLow})

	assert.Equal(t, before, ids(catalog))
}

// ---------------------------------------------------------------------------
// Sort stage
// ---------------------------------------------------------------------------

func TestEvaluate_SortKeys(t *testing.T) {
	catalog := sampleCatalog()

	tests := []struct {
		sort domain.SortKey
		want []string
	}{
		{sort: domain.SortPriceLow, want: []string{"w2", "k1", "m1", "w1", "m2"}},
		{sort: domain.SortPriceHigh, want: []string{"m2", "w1", "m1", "k1", "w2"}},
		{sort: domain.SortRating, want: []string{"w1", "m1", "m2", "w2", "k1"}},
		{sort: domain.SortNewest, want: []string{"w2", "m1", "w1", "m2", "k1"}},
		{sort: domain.SortDiscount, want: []string{"k1", "w1", "m1", "w2", "m2"}},
		{sort: domain.SortFeatured, want: []string{"w1", "m1", "w2", "m2", "k1"}},
		{sort: "bogus", want: []string{"w1", "m1", "w2", "m2", "k1"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			got := Evaluate(catalog, domain.Query{SortKey: tt.sort})
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("sort %s (-want +got):\n%s", tt.sort, diff)
			}
		})
	}
}

func TestEvaluate_PriceSortMonotonicWithStableTies(t *testing.T) {
	catalog := []domain.Product{
		product("a", domain.CategoryMen, 500),
		product("b", domain.CategoryMen, 300),
		product("c", domain.CategoryMen, 500),
		product("d", domain.CategoryMen, 300),
		product("e", domain.CategoryMen, 700),
	}

	low := Evaluate(catalog, domain.Query{SortKey: domain.SortPriceLow})
	high := Evaluate(catalog, domain.Query{SortKey: domain.SortPriceHigh})

	for i := 1; i < len(low); i++ {
		require.LessOrEqual(t, low[i-1].Price, low[i].Price)
		require.GreaterOrEqual(t, high[i-1].Price, high[i].Price)
	}
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, ids(low))
	assert.Equal(t, []string{"e", "a", "c", "b", "d"}, ids(high))
}

// ---------------------------------------------------------------------------
// Collections
// ---------------------------------------------------------------------------

func TestBuildCollections(t *testing.T) {
	c := BuildCollections(sampleCatalog())

	assert.Equal(t, []string{"w1", "m1"}, ids(c.Featured))
	assert.Equal(t, []string{"w2", "m1"}, ids(c.NewArrivals))
	assert.Equal(t, []string{"w1", "m1", "m2"}, ids(c.TopRated))
	assert.Equal(t, 2, c.CategoryCounts[domain.CategoryWomen])
	assert.Equal(t, 2, c.CategoryCounts[domain.CategoryMen])
	assert.Equal(t, 1, c.CategoryCounts[domain.CategoryKids])
}

func TestBuildCollections_TopRatedCapped(t *testing.T) {
	var catalog []domain.Product
	for i := 0; i < TopRatedLimit+3; i++ {
		p := product(string(rune('a'+i)), domain.CategoryKids, 100)
		p.Rating = 4.5 + float64(i)/100
		catalog = append(catalog, p)
	}

	c := BuildCollections(catalog)

	require.Len(t, c.TopRated, TopRatedLimit)
	assert.Equal(t, string(rune('a'+TopRatedLimit+2)), c.TopRated[0].ID)
}

func TestBuildCollections_EmptyCatalog(t *testing.T) {
	c := BuildCollections(nil)

	assert.Empty(t, c.Featured)
	assert.Empty(t, c.TopRated)
	assert.Equal(t, 0, c.CategoryCounts[domain.CategoryMen])
}
