package service

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/eltech/pos-terminal/internal/domain/entity"
	"github.com/eltech/pos-terminal/internal/domain/enum"
	"github.com/eltech/pos-terminal/pkg/apperror"
)

// DefaultUndoWindow bounds how long a removed line can be restored.
const DefaultUndoWindow = 5 * time.Second

// CartService maintains the working set of lines for the in-progress sale and
// enforces stock-aware mutation rules. There is exactly one cart per terminal
// session; it lives in memory only and is discarded on restart.
//
// Every mutation is atomic: it fully applies or is fully rejected. Stock
// limits are checked against the catalog quantity observed at mutation time;
// a later stock change does not retroactively invalidate a line.
type CartService struct {
	catalog *CatalogService
	feed    *NotificationFeed
	log     *logrus.Entry

	mu         sync.Mutex
	lines      []entity.CartLine
	payment    enum.PaymentMethod
	frozen     bool
	removed    *entity.CartLine
	removedAt  time.Time
	undoWindow time.Duration
}

// NewCartService creates an empty cart bound to the catalog snapshot.
func NewCartService(catalog *CatalogService, feed *NotificationFeed, log *logrus.Logger) *CartService {
	return &CartService{
		catalog:    catalog,
		feed:       feed,
		log:        log.WithField("component", "cart"),
		payment:    enum.DefaultPaymentMethod,
		undoWindow: DefaultUndoWindow,
	}
}

// AddItem puts one unit of a catalog item into the cart. An out-of-stock item
// is not an error: the add is skipped and a warning is pushed to the feed. An
// item already in the cart has its quantity incremented unless that would
// exceed available stock, in which case the line is left unchanged.
func (s *CartService) AddItem(productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return apperror.ErrCartFrozen
	}

	item, ok := s.catalog.Get(productID)
	if !ok {
		return apperror.NewNotFoundError("Product")
	}

	if !item.InStock() {
		s.feed.Push(NotifyWarning, "%s is out of stock", item.Name)
		return nil
	}

	if idx := s.lineIndex(productID); idx >= 0 {
		line := &s.lines[idx]
		if line.Quantity+1 > item.Quantity {
			s.feed.Push(NotifyWarning, "Only %d units of %s available in stock", item.Quantity, item.Name)
			return apperror.NewStockLimitError(item.Name, item.Quantity)
		}
		line.Quantity++
		line.Available = item.Quantity
		s.feed.Push(NotifyInfo, "%s x%d", item.Name, line.Quantity)
		return nil
	}

	s.lines = append(s.lines, entity.CartLine{
		ProductID:    item.ID,
		Name:         item.Name,
		SKU:          item.SKU,
		CatalogPrice: item.UnitPrice,
		Quantity:     1,
		Available:    item.Quantity,
	})
	s.feed.Push(NotifyInfo, "%s added to cart", item.Name)
	return nil
}

// SetQuantity sets a line's quantity. Quantities above available stock are
// rejected with the line unchanged. Quantities below 1 are ignored rather than
// rejected, tolerating transient empty-input states; NormalizeQuantity handles
// the blur-time clamp.
func (s *CartService) SetQuantity(productID uuid.UUID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return apperror.ErrCartFrozen
	}

	idx := s.lineIndex(productID)
	if idx < 0 {
		return apperror.NewNotFoundError("Cart item")
	}
	line := &s.lines[idx]

	if quantity < 1 {
		return nil
	}

	item, ok := s.catalog.Get(productID)
	if !ok {
		return apperror.NewNotFoundError("Product")
	}
	if quantity > item.Quantity {
		s.feed.Push(NotifyWarning, "Only %d units of %s available in stock", item.Quantity, item.Name)
		return apperror.NewStockLimitError(item.Name, item.Quantity)
	}

	line.Quantity = quantity
	line.Available = item.Quantity
	return nil
}

// NormalizeQuantity clamps a line to quantity 1. The UI calls it on field blur
// after an emptied or zeroed quantity input.
func (s *CartService) NormalizeQuantity(productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return apperror.ErrCartFrozen
	}

	idx := s.lineIndex(productID)
	if idx < 0 {
		return apperror.NewNotFoundError("Cart item")
	}
	if s.lines[idx].Quantity < 1 {
		s.lines[idx].Quantity = 1
	}
	return nil
}

// SetOverridePrice overrides a line's unit price. Any price >= 0 is accepted,
// including prices above the catalog price (markup as well as discount).
// Negative or non-finite input is rejected and the previous price retained.
func (s *CartService) SetOverridePrice(productID uuid.UUID, price float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return apperror.ErrCartFrozen
	}

	idx := s.lineIndex(productID)
	if idx < 0 {
		return apperror.NewNotFoundError("Cart item")
	}

	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		s.feed.Push(NotifyWarning, "Invalid price ignored")
		return apperror.NewInvalidInputError("Price must be a non-negative number")
	}

	p := price
	s.lines[idx].OverridePrice = &p
	return nil
}

// ApplyPercentDiscount overrides a line's price to the catalog price reduced
// by the given percentage (0 < percent <= 100), rounded to two decimals.
func (s *CartService) ApplyPercentDiscount(productID uuid.UUID, percent float64) error {
	if percent <= 0 || percent > 100 || math.IsNaN(percent) {
		return apperror.NewInvalidInputError("Discount percent must be between 0 and 100")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return apperror.ErrCartFrozen
	}

	idx := s.lineIndex(productID)
	if idx < 0 {
		return apperror.NewNotFoundError("Cart item")
	}
	line := &s.lines[idx]

	p := round2(line.CatalogPrice * (1 - percent/100))
	line.OverridePrice = &p
	s.feed.Push(NotifySuccess, "Applied %.0f%% discount to %s", percent, line.Name)
	return nil
}

// ApplyFixedDiscount overrides a line's price to the catalog price minus a
// fixed amount, floored at 0.01.
func (s *CartService) ApplyFixedDiscount(productID uuid.UUID, amount float64) error {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return apperror.NewInvalidInputError("Discount amount must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return apperror.ErrCartFrozen
	}

	idx := s.lineIndex(productID)
	if idx < 0 {
		return apperror.NewNotFoundError("Cart item")
	}
	line := &s.lines[idx]

	p := round2(math.Max(0.01, line.CatalogPrice-amount))
	line.OverridePrice = &p
	s.feed.Push(NotifySuccess, "Discount applied to %s", line.Name)
	return nil
}

// ResetPrice clears a line's override so the catalog price applies again.
func (s *CartService) ResetPrice(productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return apperror.ErrCartFrozen
	}

	idx := s.lineIndex(productID)
	if idx < 0 {
		return apperror.NewNotFoundError("Cart item")
	}
	s.lines[idx].OverridePrice = nil
	return nil
}

// RemoveItem removes a line unconditionally. The removed line is kept for a
// short window so UndoRemove can restore it.
func (s *CartService) RemoveItem(productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return apperror.ErrCartFrozen
	}

	idx := s.lineIndex(productID)
	if idx < 0 {
		return apperror.NewNotFoundError("Cart item")
	}

	removed := s.lines[idx]
	s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	s.removed = &removed
	s.removedAt = time.Now()
	s.feed.Push(NotifyInfo, "%s removed from cart", removed.Name)
	return nil
}

// UndoRemove restores the most recently removed line, re-validated against
// current stock (quantity clamps down if stock shrank in the meantime). If the
// product was re-added while the undo was pending, the quantities merge into
// the one existing line, clamped to available stock, so a product never holds
// more than one line.
func (s *CartService) UndoRemove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return apperror.ErrCartFrozen
	}
	if s.removed == nil || time.Since(s.removedAt) > s.undoWindow {
		s.removed = nil
		return apperror.ErrNothingToUndo
	}

	line := *s.removed
	item, ok := s.catalog.Get(line.ProductID)
	if !ok || !item.InStock() {
		s.removed = nil
		s.feed.Push(NotifyWarning, "%s is no longer available", line.Name)
		return apperror.NewStockLimitError(line.Name, 0)
	}
	if line.Quantity > item.Quantity {
		line.Quantity = item.Quantity
	}
	line.Available = item.Quantity

	if idx := s.lineIndex(line.ProductID); idx >= 0 {
		existing := &s.lines[idx]
		merged := existing.Quantity + line.Quantity
		if merged > item.Quantity {
			merged = item.Quantity
		}
		existing.Quantity = merged
		existing.Available = item.Quantity
	} else {
		s.lines = append(s.lines, line)
	}
	s.removed = nil
	s.feed.Push(NotifySuccess, "%s restored", line.Name)
	return nil
}

// SetPaymentMethod selects the tender type for the sale.
func (s *CartService) SetPaymentMethod(method enum.PaymentMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return apperror.ErrCartFrozen
	}
	if !method.IsValid() {
		return apperror.NewInvalidInputError("Unknown payment method: " + method.String())
	}
	s.payment = method
	return nil
}

// Clear empties the cart and resets the payment method to the default.
func (s *CartService) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return apperror.ErrCartFrozen
	}
	s.reset()
	return nil
}

// Lines returns a copy of the cart lines in insertion order.
func (s *CartService) Lines() []entity.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// PaymentMethod returns the currently selected tender type.
func (s *CartService) PaymentMethod() enum.PaymentMethod {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payment
}

// Totals computes the current tax-inclusive breakdown. It is recomputed from
// the live lines on every call; nothing is cached across mutations.
func (s *CartService) Totals() entity.Totals {
	return TotalsFor(s.Lines())
}

// IsEmpty reports whether the cart has no lines.
func (s *CartService) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

// freeze blocks all mutations while a checkout is awaiting confirmation or
// submitting, so the confirmed snapshot and the live cart cannot diverge.
func (s *CartService) freeze() {
	s.mu.Lock()
	s.frozen = true
	s.mu.Unlock()
}

func (s *CartService) unfreeze() {
	s.mu.Lock()
	s.frozen = false
	s.mu.Unlock()
}

// resetAfterSale empties the cart regardless of the freeze flag; the
// orchestrator calls it once a sale has been accepted.
func (s *CartService) resetAfterSale() {
	s.mu.Lock()
	s.frozen = false
	s.reset()
	s.mu.Unlock()
}

// reset must be called with the lock held.
func (s *CartService) reset() {
	s.lines = nil
	s.payment = enum.DefaultPaymentMethod
	s.removed = nil
}

// lineIndex must be called with the lock held.
func (s *CartService) lineIndex(productID uuid.UUID) int {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
