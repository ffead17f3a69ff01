package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/eltech/pos-terminal/internal/domain/enum"
)

// CartLine is one product's presence in the in-progress sale. It holds a copy
// of the catalog display data so the cart renders without re-resolving the
// snapshot; ProductID is the only authoritative reference.
type CartLine struct {
	ProductID     uuid.UUID `json:"product_id"`
	Name          string    `json:"name"`
	SKU           string    `json:"sku"`
	CatalogPrice  float64   `json:"catalog_price"`
	OverridePrice *float64  `json:"override_price,omitempty"`
	Quantity      int       `json:"quantity"`
	// Available is the catalog stock observed at the last mutation of this line.
	Available int `json:"available"`
}

// EffectiveUnitPrice is the override price when set, else the catalog price.
func (l *CartLine) EffectiveUnitPrice() float64 {
	if l.OverridePrice != nil {
		return *l.OverridePrice
	}
	return l.CatalogPrice
}

// Total is the line total at the effective unit price.
func (l *CartLine) Total() float64 {
	return l.EffectiveUnitPrice() * float64(l.Quantity)
}

// Totals is the tax-inclusive breakdown of a cart or sale. Gross is the
// tax-inclusive grand total; Net + Tax always reconstructs it.
type Totals struct {
	Net   float64 `json:"net_amount"`
	Tax   float64 `json:"tax_amount"`
	Gross float64 `json:"total_amount"`
}

// PendingSale is the immutable snapshot taken when checkout is initiated. It
// is what the user confirms and exactly what gets submitted, regardless of any
// later cart state.
type PendingSale struct {
	ReceiptNo     string             `json:"receipt_no"`
	Lines         []CartLine         `json:"lines"`
	Totals        Totals             `json:"totals"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	CreatedAt     time.Time          `json:"created_at"`
}

// SaleSubmission is the wire payload for the backend create-sale call, built
// from a PendingSale.
type SaleSubmission struct {
	Items         []SaleSubmissionItem `json:"items"`
	TotalAmount   float64              `json:"total_amount"`
	PaymentMethod enum.PaymentMethod   `json:"payment_method"`
}

// SaleSubmissionItem is one submitted line: the effective unit price, not the
// catalog price.
type SaleSubmissionItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
}

// Submission maps the snapshot into the backend payload.
func (p *PendingSale) Submission() *SaleSubmission {
	items := make([]SaleSubmissionItem, len(p.Lines))
	for i := range p.Lines {
		l := &p.Lines[i]
		items[i] = SaleSubmissionItem{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.EffectiveUnitPrice(),
		}
	}
	return &SaleSubmission{
		Items:         items,
		TotalAmount:   p.Totals.Gross,
		PaymentMethod: p.PaymentMethod,
	}
}

// SaleRecord is the backend's authoritative response to a create-sale call.
type SaleRecord struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// CompletedSale joins the submitted snapshot with the backend's record. The
// amounts are the snapshot's: what was shown at confirmation is what was
// submitted, and what the receipt prints.
type CompletedSale struct {
	PendingSale
	SaleID      uuid.UUID `json:"sale_id"`
	CompletedAt time.Time `json:"completed_at"`
}
