// Package engine evaluates catalog queries: a conjunctive filter stage
// followed by a single stable sort.
package engine

import (
	"sort"
	"strings"

	"github.com/mad-madhu-001/ecommerce/internal/domain"
)

// Evaluate returns the products matching every active criterion of q, in the
// order selected by q.SortKey. The input slice is never modified. Products
// that compare equal under the active sort key keep their catalog order.
func Evaluate(products []domain.Product, q domain.Query) []domain.Product {
	f := newFilter(q)

	matched := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if f.matches(p) {
			matched = append(matched, p)
		}
	}

	sortProducts(matched, domain.ParseSortKey(string(q.SortKey)))
	return matched
}

// filter is a query with its derived values precomputed once per evaluation.
type filter struct {
	category    domain.Category
	searchLower string
	subcategory string
	bucket      domain.PriceBucket
	hasBucket   bool
}

func newFilter(q domain.Query) filter {
	f := filter{
		category:    q.Category,
		searchLower: strings.ToLower(q.SearchText),
	}
	if q.Subcategory != domain.SubcategoryAll {
		f.subcategory = q.Subcategory
	}
	f.bucket, f.hasBucket = domain.ParsePriceRange(q.PriceRange)
	return f
}

// matches checks whether a product satisfies all filter criteria.
func (f filter) matches(p domain.Product) bool {
	if f.category != "" && p.Category != f.category {
		return false
	}

	if f.searchLower != "" && !matchesText(p, f.searchLower) {
		return false
	}

	if f.subcategory != "" && p.Subcategory != f.subcategory {
		return false
	}

	if f.hasBucket && !f.bucket.Contains(p.Price) {
		return false
	}

	return true
}

// matchesText does a case-insensitive substring match on name, description,
// and tags. Any one field matching is enough.
func matchesText(p domain.Product, needle string) bool {
	if strings.Contains(strings.ToLower(p.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), needle) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// sortProducts orders products in place for the given key.
func sortProducts(products []domain.Product, key domain.SortKey) {
	var less func(a, b domain.Product) bool

	switch key {
	case domain.SortPriceLow:
		less = func(a, b domain.Product) bool { return a.Price < b.Price }
	case domain.SortPriceHigh:
		less = func(a, b domain.Product) bool { return a.Price > b.Price }
	case domain.SortRating:
		less = func(a, b domain.Product) bool { return a.Rating > b.Rating }
	case domain.SortNewest:
		less = func(a, b domain.Product) bool { return a.IsNew && !b.IsNew }
	case domain.SortDiscount:
		less = func(a, b domain.Product) bool { return a.Discount > b.Discount }
	default:
		less = func(a, b domain.Product) bool { return a.IsFeatured && !b.IsFeatured }
	}

	sort.SliceStable(products, func(i, j int) bool {
		return less(products[i], products[j])
	})
}
