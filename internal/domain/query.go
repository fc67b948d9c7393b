package domain

import (
	"strconv"
	"strings"
)

// SortKey selects the catalog ordering.
type SortKey string

// Sort options for catalog queries.
const (
	SortFeatured  SortKey = "featured"
	SortNewest    SortKey = "newest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortDiscount  SortKey = "discount"
)

// ValidSortKeys returns the list of valid sort options.
func ValidSortKeys() []SortKey {
	return []SortKey{SortFeatured, SortNewest, SortPriceLow, SortPriceHigh, SortRating, SortDiscount}
}

// ParseSortKey maps a raw token to a sort key. Unknown or empty tokens fall
// back to SortFeatured.
func ParseSortKey(s string) SortKey {
	for _, k := range ValidSortKeys() {
		if string(k) == s {
			return k
		}
	}
	return SortFeatured
}

// SubcategoryAll disables the subcategory filter.
const SubcategoryAll = "all"

// Price range tokens.
const (
	PriceAll        = "all"
	PriceUnder1000  = "0-1000"
	Price1000To2500 = "1000-2500"
	Price2500To5000 = "2500-5000"
	PriceAbove5000  = "5000+"
)

// ValidPriceRanges returns the enumerated price range tokens.
func ValidPriceRanges() []string {
	return []string{PriceAll, PriceUnder1000, Price1000To2500, Price2500To5000, PriceAbove5000}
}

// PriceBucket is a decoded price range. HasMax is false for open-ended
// ranges ("min and above").
type PriceBucket struct {
	Min    int64 `json:"min"`
	Max    int64 `json:"max,omitempty"`
	HasMax bool  `json:"-"`
}

// Contains reports whether price falls inside the bucket, bounds inclusive.
func (b PriceBucket) Contains(price int64) bool {
	if price < b.Min {
		return false
	}
	return !b.HasMax || price <= b.Max
}

// ParsePriceRange decodes a price range token. It returns false for "all",
// the empty string, and anything outside the enumerated set, meaning no
// price filter applies. The bare "5000" token produced by older clients is
// accepted as an alias of "5000+".
func ParsePriceRange(token string) (PriceBucket, bool) {
	switch token {
	case PriceUnder1000, Price1000To2500, Price2500To5000:
		lo, hi, _ := strings.Cut(token, "-")
		minPrice, err := strconv.ParseInt(lo, 10, 64)
		if err != nil {
			return PriceBucket{}, false
		}
		maxPrice, err := strconv.ParseInt(hi, 10, 64)
		if err != nil {
			return PriceBucket{}, false
		}
		return PriceBucket{Min: minPrice, Max: maxPrice, HasMax: true}, true
	case PriceAbove5000, "5000":
		return PriceBucket{Min: 5000}, true
	default:
		return PriceBucket{}, false
	}
}

// Query holds the filter and sort parameters of one catalog view.
type Query struct {
	SearchText  string   `json:"search,omitempty"`
	Category    Category `json:"category,omitempty"`
	Subcategory string   `json:"subcategory,omitempty"`
	PriceRange  string   `json:"price,omitempty"`
	SortKey     SortKey  `json:"sort,omitempty"`
}

// IsFiltered reports whether any filter beyond the category is active.
func (q Query) IsFiltered() bool {
	if q.SearchText != "" {
		return true
	}
	if q.Subcategory != "" && q.Subcategory != SubcategoryAll {
		return true
	}
	_, ok := ParsePriceRange(q.PriceRange)
	return ok
}
