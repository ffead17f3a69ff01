package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eltech/pos-terminal/internal/application/service"
	"github.com/eltech/pos-terminal/internal/presentation/http/dto/response"
)

// ReceiptHandler serves the last completed sale's receipt in its three
// renderings: JSON, print HTML, and downloadable PDF.
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler.
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Last returns the last receipt as JSON.
func (h *ReceiptHandler) Last(c *gin.Context) {
	r, ok := h.receiptService.Last()
	if !ok {
		response.NotFound(c, "No receipt available")
		return
	}
	response.OK(c, "Receipt retrieved", r)
}

// HTML returns the last receipt as a standalone print document.
func (h *ReceiptHandler) HTML(c *gin.Context) {
	r, ok := h.receiptService.Last()
	if !ok {
		response.NotFound(c, "No receipt available")
		return
	}

	doc, err := h.receiptService.RenderHTML(r)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", doc)
}

// PDF returns the last receipt as a PDF download.
func (h *ReceiptHandler) PDF(c *gin.Context) {
	r, ok := h.receiptService.Last()
	if !ok {
		response.NotFound(c, "No receipt available")
		return
	}

	doc, err := h.receiptService.RenderPDF(r)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", r.ReceiptNo))
	c.Data(http.StatusOK, "application/pdf", doc)
}

// Print reprints the last receipt on the thermal printer.
func (h *ReceiptHandler) Print(c *gin.Context) {
	if err := h.receiptService.PrintLast(); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt sent to printer", nil)
}
