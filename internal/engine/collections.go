package engine

import (
	"sort"

	"github.com/mad-madhu-001/ecommerce/internal/domain"
)

// Top-rated collection bounds.
const (
	TopRatedMinRating = 4.5
	TopRatedLimit     = 8
)

// Collections groups the curated product shelves.
type Collections struct {
	Featured       []domain.Product        `json:"featured"`
	NewArrivals    []domain.Product        `json:"new_arrivals"`
	TopRated       []domain.Product        `json:"top_rated"`
	CategoryCounts map[domain.Category]int `json:"category_counts"`
}

// BuildCollections derives the curated shelves from the catalog. Featured and
// new arrivals keep catalog order; top rated is sorted by rating, highest
// first, and capped at TopRatedLimit.
func BuildCollections(products []domain.Product) Collections {
	c := Collections{
		Featured:       []domain.Product{},
		NewArrivals:    []domain.Product{},
		TopRated:       []domain.Product{},
		CategoryCounts: make(map[domain.Category]int),
	}

	for _, cat := range domain.ValidCategories() {
		c.CategoryCounts[cat] = 0
	}

	for _, p := range products {
		if p.IsFeatured {
			c.Featured = append(c.Featured, p)
		}
		if p.IsNew {
			c.NewArrivals = append(c.NewArrivals, p)
		}
		if p.Rating >= TopRatedMinRating {
			c.TopRated = append(c.TopRated, p)
		}
		c.CategoryCounts[p.Category]++
	}

	sort.SliceStable(c.TopRated, func(i, j int) bool {
		return c.TopRated[i].Rating > c.TopRated[j].Rating
	})
	if len(c.TopRated) > TopRatedLimit {
		c.TopRated = c.TopRated[:TopRatedLimit]
	}

	return c
}
