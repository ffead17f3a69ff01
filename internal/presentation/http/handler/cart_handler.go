package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eltech/pos-terminal/internal/application/service"
	"github.com/eltech/pos-terminal/internal/domain/enum"
	"github.com/eltech/pos-terminal/internal/presentation/http/dto/request"
	"github.com/eltech/pos-terminal/internal/presentation/http/dto/response"
)

// CartHandler handles cart HTTP requests.
type CartHandler struct {
	cartService     *service.CartService
	checkoutService *service.CheckoutService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cartService *service.CartService, checkoutService *service.CheckoutService) *CartHandler {
	return &CartHandler{cartService: cartService, checkoutService: checkoutService}
}

// cartView is the full cart payload returned after every mutation so the UI
// never has to derive totals itself.
func (h *CartHandler) cartView() gin.H {
	return gin.H{
		"lines":          h.cartService.Lines(),
		"totals":         h.cartService.Totals(),
		"payment_method": h.cartService.PaymentMethod(),
		"checkout_state": h.checkoutService.State(),
	}
}

// Get returns the current cart contents and totals.
func (h *CartHandler) Get(c *gin.Context) {
	response.OK(c, "Cart retrieved", h.cartView())
}

// AddItem adds a product to the cart or bumps its quantity by one.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.BadRequest(c, "Invalid product ID format")
		return
	}

	if err := h.cartService.AddItem(productID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added", h.cartView())
}

// UpdateItem edits a cart line's quantity or unit price, exactly one per
// request so an edit either fully applies or fully fails. A quantity below
// one is clamped to one, matching the on-blur normalization in the UI.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	var req request.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	if (req.Quantity == nil) == (req.UnitPrice == nil) {
		response.BadRequest(c, "Provide exactly one of quantity or unit_price")
		return
	}

	var err error
	switch {
	case req.Quantity != nil && *req.Quantity < 1:
		err = h.cartService.NormalizeQuantity(productID)
	case req.Quantity != nil:
		err = h.cartService.SetQuantity(productID, *req.Quantity)
	default:
		err = h.cartService.SetOverridePrice(productID, *req.UnitPrice)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated", h.cartView())
}

// Discount applies a percent or fixed-amount quick discount to a line.
func (h *CartHandler) Discount(c *gin.Context) {
	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	var req request.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	switch {
	case req.Percent != nil && req.Amount == nil:
		if err := h.cartService.ApplyPercentDiscount(productID, *req.Percent); err != nil {
			response.Error(c, err)
			return
		}
	case req.Amount != nil && req.Percent == nil:
		if err := h.cartService.ApplyFixedDiscount(productID, *req.Amount); err != nil {
			response.Error(c, err)
			return
		}
	default:
		response.BadRequest(c, "Provide exactly one of percent or amount")
		return
	}

	response.OK(c, "Discount applied", h.cartView())
}

// ResetPrice clears a line's override so the catalog price applies again.
func (h *CartHandler) ResetPrice(c *gin.Context) {
	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	if err := h.cartService.ResetPrice(productID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Price reset", h.cartView())
}

// RemoveItem removes a line from the cart. The line can be restored with Undo
// for a short window.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	if err := h.cartService.RemoveItem(productID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item removed", h.cartView())
}

// Undo restores the most recently removed line if the undo window is open.
func (h *CartHandler) Undo(c *gin.Context) {
	if err := h.cartService.UndoRemove(); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item restored", h.cartView())
}

// Clear empties the cart.
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cartService.Clear(); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart cleared", h.cartView())
}

// SetPayment selects the payment method for the sale.
func (h *CartHandler) SetPayment(c *gin.Context) {
	var req request.PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	method, ok := enum.ParsePaymentMethod(req.PaymentMethod)
	if !ok {
		response.BadRequest(c, "Unknown payment method: "+req.PaymentMethod)
		return
	}

	if err := h.cartService.SetPaymentMethod(method); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment method updated", h.cartView())
}

// parseProductID extracts the :id path parameter as a UUID.
func parseProductID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID format")
		return uuid.Nil, false
	}
	return id, true
}
