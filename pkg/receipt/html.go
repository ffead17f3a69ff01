// Package receipt renders a composed receipt value into printable documents:
// an HTML page for browser/iframe print targets and a paginated PDF for
// download or email copies. Both read the same Receipt value, so the two
// outputs cannot disagree on amounts.
package receipt

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/eltech/pos-terminal/internal/domain/entity"
)

// Money formats an amount to exactly two decimal places for display.
func Money(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

var htmlTmpl = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"money": Money,
}).Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Sales Receipt</title>
    <style>
      @page { size: 80mm 297mm; margin: 0; }
      body { font-family: 'Courier New', monospace; margin: 0; padding: 10mm; color: #000; line-height: 1.5; }
      .receipt { width: 75mm; margin: 0 auto; }
      .header { text-align: center; margin-bottom: 5mm; border-bottom: 1px dashed #000; padding-bottom: 3mm; }
      .header h2 { margin: 0; font-size: 14pt; }
      .header p { margin: 1mm 0; font-size: 8pt; }
      .items { width: 100%; border-collapse: collapse; margin: 3mm 0; font-size: 9pt; }
      .items th { border-bottom: 1px solid #000; padding: 2mm 1mm; text-align: left; }
      .items td { padding: 2mm 1mm; border-bottom: 1px dotted #ccc; }
      .items .qty { text-align: center; width: 15mm; }
      .items .price { text-align: right; width: 20mm; }
      .items .total { text-align: right; width: 25mm; }
      .totals { margin-top: 3mm; text-align: right; font-size: 9pt; border-top: 1px solid #000; padding-top: 3mm; }
      .totals p { margin: 1mm 0; display: flex; justify-content: space-between; }
      .grand-total { font-weight: bold; font-size: 11pt; border-top: 1px dashed #000; padding-top: 2mm; margin-top: 2mm; }
      .footer { margin-top: 5mm; text-align: center; font-size: 8pt; border-top: 1px dashed #000; padding-top: 3mm; }
      @media print { body { width: 80mm; margin: 0; padding: 5mm; } }
    </style>
  </head>
  <body>
    <div class="receipt">
      <div class="header">
        <h2>{{.Header.StoreName}}</h2>
        {{- if .Header.Address}}
        <p>{{.Header.Address}}</p>
        {{- end}}
        {{- if .Header.Phone}}
        <p>Tel: {{.Header.Phone}}</p>
        {{- end}}
        {{- if .Header.TaxID}}
        <p>Tax ID: {{.Header.TaxID}}</p>
        {{- end}}
        <div style="margin-top: 3mm; padding-top: 3mm; border-top: 1px dotted #000;">
          <p>Receipt #: {{.ReceiptNo}}</p>
          <p>Date: {{.Date}}</p>
          {{- if .PaymentMethod}}
          <p>Payment: {{.PaymentMethod}}</p>
          {{- end}}
        </div>
      </div>
      <table class="items">
        <thead>
          <tr>
            <th>Item</th>
            <th class="qty">Qty</th>
            <th class="price">Price</th>
            <th class="total">Total</th>
          </tr>
        </thead>
        <tbody>
          {{- range .Items}}
          <tr>
            <td>{{.Name}}</td>
            <td class="qty">{{.Quantity}}</td>
            <td class="price">{{money .UnitPrice}}</td>
            <td class="total">{{money .Total}}</td>
          </tr>
          {{- end}}
        </tbody>
      </table>
      <div class="totals">
        <p><span>Net Amount</span><span>{{money .Net}}</span></p>
        <p><span>{{.VATLabel}}</span><span>{{money .VAT}}</span></p>
        <p class="grand-total"><span>TOTAL ({{.Currency}})</span><span>{{money .Total}}</span></p>
      </div>
      <div class="footer">
        {{- if .Cashier}}
        <p>Served by: {{.Cashier}}</p>
        {{- end}}
        <p>Thank you for your business!</p>
        <p style="margin-top: 3mm; font-weight: bold;">POS designed by EL-Technologies</p>
      </div>
    </div>
  </body>
</html>
`))

// RenderHTML produces the print-target HTML document for a receipt.
func RenderHTML(r *entity.Receipt) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, r); err != nil {
		return nil, fmt.Errorf("receipt: render html: %w", err)
	}
	return buf.Bytes(), nil
}
