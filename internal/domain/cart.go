package domain

// ItemKey identifies a cart line. Two selections with the same key are the
// same line and merge on add.
type ItemKey struct {
	ProductID string
	Size      string
	Color     string
}

// CartItem is a single line of the cart. The full product is embedded so a
// restored snapshot can render without the catalog.
type CartItem struct {
	Product       Product `json:"product"`
	Quantity      int     `json:"quantity"`
	SelectedSize  string  `json:"selectedSize"`
	SelectedColor string  `json:"selectedColor"`
}

// Key returns the identity key of the item.
func (i CartItem) Key() ItemKey {
	return ItemKey{ProductID: i.Product.ID, Size: i.SelectedSize, Color: i.SelectedColor}
}

// Subtotal returns price times quantity for the line.
func (i CartItem) Subtotal() int64 {
	return i.Product.Price * int64(i.Quantity)
}

// Cart is the ordered list of lines for one browsing session.
//
// Mutating methods never modify the receiver; they return a new Cart backed
// by a fresh slice.
type Cart struct {
	Items []CartItem `json:"items"`
}

// TotalPrice returns the sum of price * quantity over all lines, using the
// current selling price rather than the original price.
func (c Cart) TotalPrice() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// TotalItems returns the total number of units in the cart.
func (c Cart) TotalItems() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// FindItemIndex returns the index of the line matching key, or -1.
func (c Cart) FindItemIndex(key ItemKey) int {
	for i := range c.Items {
		if c.Items[i].Key() == key {
			return i
		}
	}
	return -1
}

// Add merges quantity into the line matching the selection, or appends a new
// line at the end when none exists.
func (c Cart) Add(product Product, size, color string, quantity int) Cart {
	items := c.clone()
	key := ItemKey{ProductID: product.ID, Size: size, Color: color}

	for i := range items {
		if items[i].Key() == key {
			items[i].Quantity += quantity
			return Cart{Items: items}
		}
	}

	items = append(items, CartItem{
		Product:       product,
		Quantity:      quantity,
		SelectedSize:  size,
		SelectedColor: color,
	})
	return Cart{Items: items}
}

// Remove drops the line matching key. A missing key returns an equal cart.
func (c Cart) Remove(key ItemKey) Cart {
	items := make([]CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.Key() != key {
			items = append(items, item)
		}
	}
	return Cart{Items: items}
}

// SetQuantity replaces the quantity of the line matching key in place.
// Callers route quantity <= 0 to Remove.
func (c Cart) SetQuantity(key ItemKey, quantity int) Cart {
	items := c.clone()
	if i := (Cart{Items: items}).FindItemIndex(key); i >= 0 {
		items[i].Quantity = quantity
	}
	return Cart{Items: items}
}

// Clear returns an empty cart.
func (c Cart) Clear() Cart {
	return Cart{Items: []CartItem{}}
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) clone() []CartItem {
	items := make([]CartItem, len(c.Items), len(c.Items)+1)
	copy(items, c.Items)
	return items
}
