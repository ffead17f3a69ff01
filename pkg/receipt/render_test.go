package receipt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eltech/pos-terminal/internal/domain/entity"
)

func sampleReceipt() *entity.Receipt {
	return &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: "Duka Mbili",
			Address:   "Moi Avenue, Nairobi",
			Phone:     "+254 700 000000",
		},
		ReceiptNo:     "INV-ab12cd34",
		Date:          "2026-03-14 10:30",
		Cashier:       "Jackline",
		PaymentMethod: "CASH",
		Currency:      "KES",
		Items: []entity.ReceiptItem{
			{Name: "Soda", Quantity: 2, UnitPrice: 58.0, Total: 116.0},
			{Name: "Bread", Quantity: 1, UnitPrice: 90.0, Total: 90.0},
		},
		Net:      177.586206896551,
		VAT:      28.413793103448,
		VATLabel: "VAT (16%)",
		Total:    206.0,
	}
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "206.00", Money(206))
	assert.Equal(t, "0.01", Money(0.01))
	assert.Equal(t, "28.41", Money(28.413793103448))
}

func TestRenderHTML(t *testing.T) {
	doc, err := RenderHTML(sampleReceipt())
	require.NoError(t, err)

	out := string(doc)
	assert.Contains(t, out, "Duka Mbili")
	assert.Contains(t, out, "Receipt #: INV-ab12cd34")
	assert.Contains(t, out, "Payment: CASH")
	assert.Contains(t, out, "Soda")
	assert.Contains(t, out, "116.00")
	assert.Contains(t, out, "VAT (16%)")
	assert.Contains(t, out, "28.41")
	assert.Contains(t, out, "TOTAL (KES)")
	assert.Contains(t, out, "206.00")
	assert.Contains(t, out, "Served by: Jackline")
	assert.Contains(t, out, "Thank you for your business!")
}

func TestRenderHTMLOmitsBlankHeaderFields(t *testing.T) {
	r := sampleReceipt()
	r.Header.Address = ""
	r.Header.Phone = ""
	r.Header.TaxID = ""
	r.Cashier = ""

	doc, err := RenderHTML(r)
	require.NoError(t, err)

	out := string(doc)
	assert.NotContains(t, out, "Tel:")
	assert.NotContains(t, out, "Tax ID:")
	assert.NotContains(t, out, "Served by:")
}

func TestRenderHTMLEscapesMarkup(t *testing.T) {
	r := sampleReceipt()
	r.Items[0].Name = "<script>alert(1)</script>"

	doc, err := RenderHTML(r)
	require.NoError(t, err)
	assert.NotContains(t, string(doc), "<script>alert(1)</script>")
}

func TestRenderPDF(t *testing.T) {
	doc, err := RenderPDF(sampleReceipt())
	require.NoError(t, err)
	require.NotEmpty(t, doc)
	assert.True(t, strings.HasPrefix(string(doc), "%PDF"))
}
