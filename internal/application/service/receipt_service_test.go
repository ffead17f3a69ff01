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
	"github.com/eltech/pos-terminal/pkg/printer"
)

func completedSale() *entity.CompletedSale {
	override := 90.0
	lines := []entity.CartLine{
		{ProductID: uuid.New(), Name: "Soda", CatalogPrice: 58.0, Quantity: 2},
		{ProductID: uuid.New(), Name: "Bread", CatalogPrice: 100.0, OverridePrice: &override, Quantity: 1},
	}
	return &entity.CompletedSale{
		PendingSale: entity.PendingSale{
			ReceiptNo:     "INV-ab12cd34",
			Lines:         lines,
			Totals:        TotalsFor(lines),
			PaymentMethod: enum.PaymentCash,
			CreatedAt:     time.Now(),
		},
		SaleID:      uuid.New(),
		CompletedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
	}
}

func newTestReceipts(p printer.Printer) *ReceiptService {
	return NewReceiptService(p, ReceiptProfile{
		StoreName: "Duka Mbili",
		Address:   "Moi Avenue, Nairobi",
		Phone:     "+254 700 000000",
		Cashier:   "Jackline",
		Currency:  "KES",
	}, NewNotificationFeed(0), testLogger())
}

func TestBuildReceipt(t *testing.T) {
	svc := newTestReceipts(printer.NewNullPrinter())
	sale := completedSale()

	r := svc.Build(sale)

	assert.Equal(t, "Duka Mbili", r.Header.StoreName)
	assert.Equal(t, "INV-ab12cd34", r.ReceiptNo)
	assert.Equal(t, "2026-03-14 10:30", r.Date)
	assert.Equal(t, "Jackline", r.Cashier)
	assert.Equal(t, "CASH", r.PaymentMethod)
	assert.Equal(t, "VAT (16%)", r.VATLabel)

	require.Len(t, r.Items, 2)
	assert.Equal(t, "Soda", r.Items[0].Name)
	assert.InDelta(t, 116.0, r.Items[0].Total, 1e-9)
	// The overridden price is what the receipt shows, not the catalog price.
	assert.InDelta(t, 90.0, r.Items[1].UnitPrice, 1e-9)

	assert.InDelta(t, sale.Totals.Gross, r.Total, 1e-9)
	assert.InDelta(t, r.Total, r.Net+r.VAT, 1e-9)
}

func TestLastTracksMostRecentBuild(t *testing.T) {
	svc := newTestReceipts(printer.NewNullPrinter())

	_, ok := svc.Last()
	assert.False(t, ok)

	svc.Build(completedSale())
	r, ok := svc.Last()
	require.True(t, ok)
	assert.Equal(t, "INV-ab12cd34", r.ReceiptNo)
}

func TestPrintFailure(t *testing.T) {
	svc := newTestReceipts(failingPrinter{})
	r := svc.Build(completedSale())

	err := svc.Print(r)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindPrintFailure))
}

func TestPrintLastWithoutSale(t *testing.T) {
	svc := newTestReceipts(printer.NewNullPrinter())
	err := svc.PrintLast()
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestFormatESCPOSContainsTotals(t *testing.T) {
	svc := newTestReceipts(printer.NewNullPrinter())
	r := svc.Build(completedSale())

	data := svc.formatESCPOS(r)
	out := string(data)

	assert.Contains(t, out, "Duka Mbili")
	assert.Contains(t, out, "INV-ab12cd34")
	assert.Contains(t, out, "2x Soda")
	assert.Contains(t, out, "VAT (16%)")
	assert.Contains(t, out, "TOTAL KES:")
	assert.Contains(t, out, "Thank you for your business!")
}
