package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eltech/pos-terminal/internal/domain/entity"
	"github.com/eltech/pos-terminal/internal/domain/enum"
	"github.com/eltech/pos-terminal/pkg/apperror"
)

func newTestCart(t *testing.T, items ...entity.CatalogItem) (*CartService, *NotificationFeed) {
	t.Helper()
	backend := &fakeBackend{items: items}
	catalog := newTestCatalog(t, backend)
	feed := NewNotificationFeed(0)
	return NewCartService(catalog, feed, testLogger()), feed
}

func TestAddItemNewLine(t *testing.T) {
	item := catalogItem("Soda", 58.0, 10)
	cart, _ := newTestCart(t, item)

	require.NoError(t, cart.AddItem(item.ID))

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, item.UnitPrice, lines[0].CatalogPrice)
	assert.Nil(t, lines[0].OverridePrice)
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	item := catalogItem("Soda", 58.0, 10)
	cart, _ := newTestCart(t, item)

	require.NoError(t, cart.AddItem(item.ID))
	require.NoError(t, cart.AddItem(item.ID))

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestAddItemStockCap(t *testing.T) {
	item := catalogItem("Soda", 58.0, 2)
	cart, _ := newTestCart(t, item)

	require.NoError(t, cart.AddItem(item.ID))
	require.NoError(t, cart.AddItem(item.ID))

	err := cart.AddItem(item.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindStockLimit))
	assert.Equal(t, 2, cart.Lines()[0].Quantity)
}

func TestAddItemOutOfStockIsSilent(t *testing.T) {
	item := catalogItem("Soda", 58.0, 0)
	cart, feed := newTestCart(t, item)

	// Not an error: the add is skipped and the operator gets a warning.
	require.NoError(t, cart.AddItem(item.ID))
	assert.Empty(t, cart.Lines())

	notes := feed.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, NotifyWarning, notes[0].Level)
}

func TestAddItemUnknownProduct(t *testing.T) {
	cart, _ := newTestCart(t, catalogItem("Soda", 58.0, 5))

	err := cart.AddItem(uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestSetQuantity(t *testing.T) {
	item := catalogItem("Soda", 58.0, 5)
	cart, _ := newTestCart(t, item)
	require.NoError(t, cart.AddItem(item.ID))

	require.NoError(t, cart.SetQuantity(item.ID, 5))
	assert.Equal(t, 5, cart.Lines()[0].Quantity)

	err := cart.SetQuantity(item.ID, 6)
	assert.True(t, apperror.IsKind(err, apperror.KindStockLimit))
	assert.Equal(t, 5, cart.Lines()[0].Quantity)

	// Below 1 is a transient input state, ignored rather than rejected.
	require.NoError(t, cart.SetQuantity(item.ID, 0))
	assert.Equal(t, 5, cart.Lines()[0].Quantity)
}

func TestNormalizeQuantityClampsToOne(t *testing.T) {
	item := catalogItem("Soda", 58.0, 5)
	cart, _ := newTestCart(t, item)
	require.NoError(t, cart.AddItem(item.ID))

	require.NoError(t, cart.NormalizeQuantity(item.ID))
	assert.Equal(t, 1, cart.Lines()[0].Quantity)
}

func TestSetOverridePrice(t *testing.T) {
	item := catalogItem("Soda", 58.0, 5)
	cart, _ := newTestCart(t, item)
	require.NoError(t, cart.AddItem(item.ID))

	require.NoError(t, cart.SetOverridePrice(item.ID, 50.0))
	line := cart.Lines()[0]
	require.NotNil(t, line.OverridePrice)
	assert.Equal(t, 50.0, *line.OverridePrice)
	assert.Equal(t, 50.0, line.EffectiveUnitPrice())

	// Markup above the catalog price is allowed.
	require.NoError(t, cart.SetOverridePrice(item.ID, 70.0))
	assert.Equal(t, 70.0, *cart.Lines()[0].OverridePrice)

	// A negative price is rejected with the previous override retained.
	err := cart.SetOverridePrice(item.ID, -1.0)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidInput))
	assert.Equal(t, 70.0, *cart.Lines()[0].OverridePrice)

	require.NoError(t, cart.ResetPrice(item.ID))
	assert.Nil(t, cart.Lines()[0].OverridePrice)
}

func TestApplyPercentDiscount(t *testing.T) {
	item := catalogItem("Soda", 100.0, 5)
	cart, _ := newTestCart(t, item)
	require.NoError(t, cart.AddItem(item.ID))

	require.NoError(t, cart.ApplyPercentDiscount(item.ID, 10))
	assert.Equal(t, 90.0, *cart.Lines()[0].OverridePrice)

	err := cart.ApplyPercentDiscount(item.ID, 0)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidInput))
	err = cart.ApplyPercentDiscount(item.ID, 101)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidInput))
}

func TestApplyFixedDiscountFloorsAtOneCent(t *testing.T) {
	item := catalogItem("Soda", 10.0, 5)
	cart, _ := newTestCart(t, item)
	require.NoError(t, cart.AddItem(item.ID))

	require.NoError(t, cart.ApplyFixedDiscount(item.ID, 3.0))
	assert.Equal(t, 7.0, *cart.Lines()[0].OverridePrice)

	require.NoError(t, cart.ApplyFixedDiscount(item.ID, 50.0))
	assert.Equal(t, 0.01, *cart.Lines()[0].OverridePrice)
}

func TestRemoveAndUndo(t *testing.T) {
	item := catalogItem("Soda", 58.0, 5)
	cart, _ := newTestCart(t, item)
	require.NoError(t, cart.AddItem(item.ID))
	require.NoError(t, cart.SetQuantity(item.ID, 3))

	require.NoError(t, cart.RemoveItem(item.ID))
	assert.Empty(t, cart.Lines())

	require.NoError(t, cart.UndoRemove())
	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)

	// Nothing left to undo.
	err := cart.UndoRemove()
	assert.ErrorIs(t, err, apperror.ErrNothingToUndo)
}

func TestUndoAfterWindowExpires(t *testing.T) {
	item := catalogItem("Soda", 58.0, 5)
	cart, _ := newTestCart(t, item)
	cart.undoWindow = 10 * time.Millisecond
	require.NoError(t, cart.AddItem(item.ID))

	require.NoError(t, cart.RemoveItem(item.ID))
	time.Sleep(25 * time.Millisecond)

	err := cart.UndoRemove()
	assert.ErrorIs(t, err, apperror.ErrNothingToUndo)
	assert.Empty(t, cart.Lines())
}

func TestUndoClampsToShrunkenStock(t *testing.T) {
	item := catalogItem("Soda", 58.0, 5)
	backend := &fakeBackend{items: []entity.CatalogItem{item}}
	catalog := newTestCatalog(t, backend)
	feed := NewNotificationFeed(0)
	cart := NewCartService(catalog, feed, testLogger())

	require.NoError(t, cart.AddItem(item.ID))
	require.NoError(t, cart.SetQuantity(item.ID, 5))
	require.NoError(t, cart.RemoveItem(item.ID))

	// Stock shrinks between remove and undo.
	backend.mu.Lock()
	backend.items[0].Quantity = 2
	backend.mu.Unlock()
	require.NoError(t, catalog.Refresh(t.Context()))

	require.NoError(t, cart.UndoRemove())
	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestUndoMergesIntoReaddedLine(t *testing.T) {
	item := catalogItem("Soda", 58.0, 10)
	cart, _ := newTestCart(t, item)
	require.NoError(t, cart.AddItem(item.ID))
	require.NoError(t, cart.SetQuantity(item.ID, 2))
	require.NoError(t, cart.RemoveItem(item.ID))

	// The product is re-added before the undo fires.
	require.NoError(t, cart.AddItem(item.ID))
	require.NoError(t, cart.UndoRemove())

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestUndoMergeClampsToStock(t *testing.T) {
	item := catalogItem("Soda", 58.0, 3)
	cart, _ := newTestCart(t, item)
	require.NoError(t, cart.AddItem(item.ID))
	require.NoError(t, cart.SetQuantity(item.ID, 3))
	require.NoError(t, cart.RemoveItem(item.ID))

	// Re-add up to the stock limit, then restore the removed line. The merge
	// must not push the one line for this product past available stock.
	require.NoError(t, cart.AddItem(item.ID))
	require.NoError(t, cart.SetQuantity(item.ID, 3))
	require.NoError(t, cart.UndoRemove())

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestUndoMergeKeepsExistingOverride(t *testing.T) {
	item := catalogItem("Soda", 58.0, 10)
	cart, _ := newTestCart(t, item)
	require.NoError(t, cart.AddItem(item.ID))
	require.NoError(t, cart.RemoveItem(item.ID))

	require.NoError(t, cart.AddItem(item.ID))
	require.NoError(t, cart.SetOverridePrice(item.ID, 50.0))
	require.NoError(t, cart.UndoRemove())

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	require.NotNil(t, lines[0].OverridePrice)
	assert.Equal(t, 50.0, *lines[0].OverridePrice)
}

func TestFrozenCartRejectsMutations(t *testing.T) {
	item := catalogItem("Soda", 58.0, 5)
	cart, _ := newTestCart(t, item)
	require.NoError(t, cart.AddItem(item.ID))

	cart.freeze()

	assert.ErrorIs(t, cart.AddItem(item.ID), apperror.ErrCartFrozen)
	assert.ErrorIs(t, cart.SetQuantity(item.ID, 2), apperror.ErrCartFrozen)
	assert.ErrorIs(t, cart.SetOverridePrice(item.ID, 10), apperror.ErrCartFrozen)
	assert.ErrorIs(t, cart.RemoveItem(item.ID), apperror.ErrCartFrozen)
	assert.ErrorIs(t, cart.Clear(), apperror.ErrCartFrozen)
	assert.ErrorIs(t, cart.SetPaymentMethod(enum.PaymentCard), apperror.ErrCartFrozen)

	cart.unfreeze()
	assert.NoError(t, cart.SetQuantity(item.ID, 2))
}

func TestClearResetsPaymentMethod(t *testing.T) {
	item := catalogItem("Soda", 58.0, 5)
	cart, _ := newTestCart(t, item)
	require.NoError(t, cart.AddItem(item.ID))
	require.NoError(t, cart.SetPaymentMethod(enum.PaymentCard))

	require.NoError(t, cart.Clear())
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, enum.DefaultPaymentMethod, cart.PaymentMethod())
}

func TestTotalsTrackLiveLines(t *testing.T) {
	a := catalogItem("Soda", 58.0, 10)
	b := catalogItem("Bread", 116.0, 10)
	cart, _ := newTestCart(t, a, b)
	require.NoError(t, cart.AddItem(a.ID))
	require.NoError(t, cart.AddItem(b.ID))
	require.NoError(t, cart.SetQuantity(a.ID, 2))

	totals := cart.Totals()
	assert.InDelta(t, 232.0, totals.Gross, 1e-9)
	assert.InDelta(t, 32.0, totals.Tax, 1e-9)
	assert.InDelta(t, 200.0, totals.Net, 1e-9)
}
