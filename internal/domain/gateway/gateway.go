// Package gateway declares the ports the terminal core needs from the remote
// inventory backend. The REST implementation lives in
// internal/infrastructure/backend.
package gateway

import (
	"context"

	"github.com/eltech/pos-terminal/internal/domain/entity"
)

// ProductLister fetches the sellable catalog. The terminal always consumes the
// whole set; there is no partial patching.
type ProductLister interface {
	ListProducts(ctx context.Context) ([]entity.CatalogItem, error)
}

// SaleCreator submits a completed checkout. Stock is decremented by the
// backend only; the terminal never adjusts quantities locally.
type SaleCreator interface {
	CreateSale(ctx context.Context, sub *entity.SaleSubmission) (*entity.SaleRecord, error)
}

// InventoryGateway is the full backend surface the terminal consumes.
type InventoryGateway interface {
	ProductLister
	SaleCreator
}
