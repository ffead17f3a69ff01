package entity

import (
	"time"

	"github.com/google/uuid"
)

// CatalogItem is one sellable product in the locally held catalog snapshot.
// Items are refreshed wholesale from the backend and are immutable from the
// cart's point of view; the terminal never patches them locally.
type CatalogItem struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	Category  string    `json:"category_name,omitempty"`
	Supplier  string    `json:"supplier_name,omitempty"`
}

// InStock reports whether at least one unit is available.
func (c *CatalogItem) InStock() bool {
	return c.Quantity > 0
}

// CatalogSnapshot is the whole-set view handed to consumers of the catalog.
type CatalogSnapshot struct {
	Items       []CatalogItem `json:"items"`
	RefreshedAt time.Time     `json:"refreshed_at"`
}
