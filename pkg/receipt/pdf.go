package receipt

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/eltech/pos-terminal/internal/domain/entity"
)

// 80mm thermal roll dimensions; gofpdf paginates automatically when a long
// item list overflows the page height.
const (
	pdfPageWidth  = 80.0
	pdfPageHeight = 297.0
	pdfMargin     = 6.0
)

// RenderPDF produces the downloadable PDF variant of a receipt.
func RenderPDF(r *entity.Receipt) ([]byte, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: pdfPageWidth, Ht: pdfPageHeight},
	})
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	usable := pdfPageWidth - 2*pdfMargin

	pdf.SetFont("Courier", "B", 12)
	pdf.CellFormat(usable, 6, r.Header.StoreName, "", 1, "C", false, 0, "")

	pdf.SetFont("Courier", "", 7)
	if r.Header.Address != "" {
		pdf.CellFormat(usable, 3.5, r.Header.Address, "", 1, "C", false, 0, "")
	}
	if r.Header.Phone != "" {
		pdf.CellFormat(usable, 3.5, "Tel: "+r.Header.Phone, "", 1, "C", false, 0, "")
	}
	if r.Header.TaxID != "" {
		pdf.CellFormat(usable, 3.5, "Tax ID: "+r.Header.TaxID, "", 1, "C", false, 0, "")
	}

	dashLine(pdf, usable)

	pdf.SetFont("Courier", "", 8)
	pdf.CellFormat(usable, 4, "Receipt #: "+r.ReceiptNo, "", 1, "L", false, 0, "")
	pdf.CellFormat(usable, 4, "Date: "+r.Date, "", 1, "L", false, 0, "")
	if r.PaymentMethod != "" {
		pdf.CellFormat(usable, 4, "Payment: "+r.PaymentMethod, "", 1, "L", false, 0, "")
	}

	dashLine(pdf, usable)

	// Item table: name | qty | price | total
	nameW := usable * 0.42
	qtyW := usable * 0.12
	priceW := usable * 0.22
	totalW := usable - nameW - qtyW - priceW

	pdf.SetFont("Courier", "B", 7)
	pdf.CellFormat(nameW, 4, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(qtyW, 4, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(priceW, 4, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(totalW, 4, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Courier", "", 7)
	for _, item := range r.Items {
		pdf.CellFormat(nameW, 4, item.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(qtyW, 4, strconv.Itoa(item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(priceW, 4, Money(item.UnitPrice), "", 0, "R", false, 0, "")
		pdf.CellFormat(totalW, 4, Money(item.Total), "", 1, "R", false, 0, "")
	}

	dashLine(pdf, usable)

	half := usable / 2
	pdf.SetFont("Courier", "", 8)
	pdf.CellFormat(half, 4, "Net Amount", "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 4, Money(r.Net), "", 1, "R", false, 0, "")
	pdf.CellFormat(half, 4, r.VATLabel, "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 4, Money(r.VAT), "", 1, "R", false, 0, "")

	pdf.SetFont("Courier", "B", 9)
	pdf.CellFormat(half, 5, "TOTAL ("+r.Currency+")", "T", 0, "L", false, 0, "")
	pdf.CellFormat(half, 5, Money(r.Total), "T", 1, "R", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Courier", "", 7)
	if r.Cashier != "" {
		pdf.CellFormat(usable, 3.5, "Served by: "+r.Cashier, "", 1, "C", false, 0, "")
	}
	pdf.CellFormat(usable, 3.5, "Thank you for your business!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("receipt: render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func dashLine(pdf *gofpdf.Fpdf, width float64) {
	pdf.Ln(1)
	x, y := pdf.GetX(), pdf.GetY()
	pdf.SetDashPattern([]float64{0.8, 0.8}, 0)
	pdf.Line(x, y, x+width, y)
	pdf.SetDashPattern([]float64{}, 0)
	pdf.Ln(2)
}
