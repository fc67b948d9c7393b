package domain

import "math"

// Category identifies one of the fixed storefront departments.
type Category string

// Storefront categories.
const (
	CategoryMen   Category = "men"
	CategoryWomen Category = "women"
	CategoryKids  Category = "kids"
)

// ValidCategories returns the fixed set of categories in display order.
func ValidCategories() []Category {
	return []Category{CategoryMen, CategoryWomen, CategoryKids}
}

// IsValidCategory checks whether the given string names a known category.
func IsValidCategory(c string) bool {
	for _, v := range ValidCategories() {
		if string(v) == c {
			return true
		}
	}
	return false
}

// Product is an immutable catalog entry. Prices are whole rupees.
type Product struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Price         int64    `json:"price" yaml:"price"`
	OriginalPrice *int64   `json:"originalPrice,omitempty" yaml:"original_price,omitempty"`
	Description   string   `json:"description" yaml:"description"`
	Category      Category `json:"category" yaml:"category"`
	Subcategory   string   `json:"subcategory" yaml:"subcategory"`
	Images        []string `json:"images" yaml:"images"`
	Sizes         []string `json:"sizes" yaml:"sizes"`
	Colors        []string `json:"colors" yaml:"colors"`
	InStock       bool     `json:"inStock" yaml:"in_stock"`
	StockCount    int      `json:"stockCount" yaml:"stock_count"`
	Rating        float64  `json:"rating" yaml:"rating"`
	ReviewCount   int      `json:"reviewCount" yaml:"review_count"`
	Tags          []string `json:"tags" yaml:"tags"`
	IsNew         bool     `json:"isNew,omitempty" yaml:"is_new,omitempty"`
	IsFeatured    bool     `json:"isFeatured,omitempty" yaml:"is_featured,omitempty"`
	Discount      int      `json:"discount,omitempty" yaml:"discount,omitempty"`
}

// DiscountPercent returns the markdown from OriginalPrice as a rounded
// percentage, or 0 when the product has no original price.
func (p Product) DiscountPercent() int {
	if p.OriginalPrice == nil || *p.OriginalPrice <= 0 {
		return 0
	}
	orig := float64(*p.OriginalPrice)
	return int(math.Round((orig - float64(p.Price)) / orig * 100))
}

// HasSize reports whether size is one of the product's declared sizes.
func (p Product) HasSize(size string) bool {
	return contains(p.Sizes, size)
}

// HasColor reports whether color is one of the product's declared colors.
func (p Product) HasColor(color string) bool {
	return contains(p.Colors, color)
}

// CanQuickAdd reports whether the product can be added without the shopper
// choosing a variant: it must be in stock and declare at least one size and
// one color.
func (p Product) CanQuickAdd() bool {
	return p.InStock && len(p.Sizes) > 0 && len(p.Colors) > 0
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// CategoryInfo describes a category for navigation.
type CategoryInfo struct {
	ID   Category `json:"id" yaml:"id"`
	Name string   `json:"name" yaml:"name"`
	Icon string   `json:"icon" yaml:"icon"`
}

// Catalog is the read-only product universe supplied at startup.
type Catalog struct {
	Products      []Product             `json:"products" yaml:"products"`
	Categories    []CategoryInfo        `json:"categories" yaml:"categories"`
	Subcategories map[Category][]string `json:"subcategories" yaml:"subcategories"`
}

// FindProduct returns the product with the given ID.
func (c *Catalog) FindProduct(id string) (Product, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// FindCategory returns the descriptor for the given category ID.
func (c *Catalog) FindCategory(id string) (CategoryInfo, bool) {
	for _, info := range c.Categories {
		if string(info.ID) == id {
			return info, true
		}
	}
	return CategoryInfo{}, false
}
