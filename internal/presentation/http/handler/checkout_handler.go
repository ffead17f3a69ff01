package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/eltech/pos-terminal/internal/application/service"
	"github.com/eltech/pos-terminal/internal/presentation/http/dto/response"
)

// CheckoutHandler handles checkout workflow HTTP requests.
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Get returns the workflow state and, when one exists, the pending sale.
func (h *CheckoutHandler) Get(c *gin.Context) {
	data := gin.H{"state": h.checkoutService.State()}
	if pending, ok := h.checkoutService.Pending(); ok {
		data["pending_sale"] = pending
	}
	if last, ok := h.checkoutService.LastSale(); ok {
		data["last_sale"] = last
	}
	response.OK(c, "Checkout state retrieved", data)
}

// Initiate snapshots the cart into a pending sale awaiting confirmation.
func (h *CheckoutHandler) Initiate(c *gin.Context) {
	pending, err := h.checkoutService.InitiateCheckout()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Checkout initiated", pending)
}

// Confirm submits the pending sale. A confirm that lands while a submission
// is already in flight is a harmless no-op and answers 202.
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	sale, err := h.checkoutService.Confirm(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if sale == nil {
		response.Accepted(c, "Submission already in progress", nil)
		return
	}
	response.OK(c, "Sale completed", sale)
}

// Cancel abandons the pending sale and unlocks the cart.
func (h *CheckoutHandler) Cancel(c *gin.Context) {
	if err := h.checkoutService.Cancel(); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Checkout cancelled", nil)
}
