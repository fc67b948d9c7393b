package domain

// Delivery pricing for the order summary.
const (
	// FreeDeliveryThreshold is the subtotal at or above which delivery is free.
	FreeDeliveryThreshold int64 = 999
	// StandardDeliveryCharge applies below the free-delivery threshold.
	StandardDeliveryCharge int64 = 99
)

// OrderSummary is the derived pricing shown next to the cart.
type OrderSummary struct {
	ItemCount           int   `json:"item_count"`
	Subtotal            int64 `json:"subtotal"`
	DeliveryCharge      int64 `json:"delivery_charge"`
	Total               int64 `json:"total"`
	FreeDeliveryPending int64 `json:"free_delivery_pending"`
}

// Summarize computes the order summary for the cart. An empty cart has
// nothing to deliver and carries no charge.
func (c Cart) Summarize() OrderSummary {
	subtotal := c.TotalPrice()

	s := OrderSummary{
		ItemCount: c.TotalItems(),
		Subtotal:  subtotal,
	}
	if c.IsEmpty() {
		return s
	}
	if subtotal < FreeDeliveryThreshold {
		s.DeliveryCharge = StandardDeliveryCharge
		s.FreeDeliveryPending = FreeDeliveryThreshold - subtotal
	}
	s.Total = subtotal + s.DeliveryCharge
	return s
}
