package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscountPercent(t *testing.T) {
	orig := int64(2999)
	zero := int64(0)

	tests := []struct {
		name     string
		price    int64
		original *int64
		want     int
	}{
		{name: "no original price", price: 1000, original: nil, want: 0},
		{name: "zero original price", price: 1000, original: &zero, want: 0},
		{name: "rounded markdown", price: 1999, original: &orig, want: 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Price: tt.price, OriginalPrice: tt.original}
			assert.Equal(t, tt.want, p.DiscountPercent())
		})
	}
}

func TestCanQuickAdd(t *testing.T) {
	base := testProduct("p1", 100)

	assert.True(t, base.CanQuickAdd())

	outOfStock := base
	outOfStock.InStock = false
	assert.False(t, outOfStock.CanQuickAdd())

	noSizes := base
	noSizes.Sizes = nil
	assert.False(t, noSizes.CanQuickAdd())

	noColors := base
	noColors.Colors = []string{}
	assert.False(t, noColors.CanQuickAdd())
}

func TestHasSizeAndColor(t *testing.T) {
	p := testProduct("p1", 100)

	assert.True(t, p.HasSize("M"))
	assert.False(t, p.HasSize("XXL"))
	assert.True(t, p.HasColor("Blue"))
	assert.False(t, p.HasColor("blue"))
}

func TestIsValidCategory(t *testing.T) {
	assert.True(t, IsValidCategory("men"))
	assert.True(t, IsValidCategory("women"))
	assert.True(t, IsValidCategory("kids"))
	assert.False(t, IsValidCategory("pets"))
	assert.False(t, IsValidCategory(""))
}

func TestCatalog_FindProductAndCategory(t *testing.T) {
	c := &Catalog{
		Products:   []Product{testProduct("p1", 100), testProduct("p2", 200)},
		Categories: []CategoryInfo{{ID: CategoryMen, Name: "Men", Icon: "👔"}},
	}

	p, ok := c.FindProduct("p2")
	assert.True(t, ok)
	assert.Equal(t, int64(200), p.Price)

	_, ok = c.FindProduct("missing")
	assert.False(t, ok)

	info, ok := c.FindCategory("men")
	assert.True(t, ok)
	assert.Equal(t, "Men", info.Name)

	_, ok = c.FindCategory("kids")
	assert.False(t, ok)
}
