package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/eltech/pos-terminal/internal/application/service"
	"github.com/eltech/pos-terminal/internal/presentation/http/dto/response"
)

// CatalogHandler handles catalog snapshot HTTP requests.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// List returns the current catalog snapshot.
func (h *CatalogHandler) List(c *gin.Context) {
	snap := h.catalogService.Snapshot()
	response.OK(c, "Catalog retrieved", snap)
}

// Refresh forces a re-fetch from the backend and returns the new snapshot.
// On failure the previous snapshot stays in place and the error is reported.
func (h *CatalogHandler) Refresh(c *gin.Context) {
	if err := h.catalogService.Refresh(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Catalog refreshed", h.catalogService.Snapshot())
}
