package request

// AddItemRequest adds a product to the cart (or bumps its quantity by one).
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// UpdateItemRequest edits a cart line. Exactly one of Quantity or UnitPrice
// must be set; sending both or neither is rejected.
type UpdateItemRequest struct {
	Quantity  *int     `json:"quantity"`
	UnitPrice *float64 `json:"unit_price"`
}

// DiscountRequest applies a quick discount to a cart line. Exactly one of
// Percent or Amount must be set.
type DiscountRequest struct {
	Percent *float64 `json:"percent"`
	Amount  *float64 `json:"amount"`
}

// PaymentMethodRequest selects the tender for the sale.
type PaymentMethodRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}
