package service

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/eltech/pos-terminal/internal/domain/entity"
	"github.com/eltech/pos-terminal/pkg/apperror"
	"github.com/eltech/pos-terminal/pkg/printer"
	"github.com/eltech/pos-terminal/pkg/receipt"
)

// ReceiptProfile is the business identity printed on every receipt. Blank
// optional fields are simply omitted from the rendered documents.
type ReceiptProfile struct {
	StoreName  string
	Address    string
	Phone      string
	TaxID      string
	Cashier    string
	Currency   string
	PaperWidth int
}

// ReceiptService composes a completed sale into a Receipt value and delivers
// it: ESC/POS to the configured printer, HTML for print targets, PDF for
// downloads. All three renderings read the same composed value.
type ReceiptService struct {
	printer printer.Printer
	profile ReceiptProfile
	feed    *NotificationFeed
	log     *logrus.Entry

	mu   sync.Mutex
	last *entity.Receipt
}

// NewReceiptService creates a receipt service for the given printer and
// business profile.
func NewReceiptService(p printer.Printer, profile ReceiptProfile, feed *NotificationFeed, log *logrus.Logger) *ReceiptService {
	if profile.StoreName == "" {
		profile.StoreName = "SALES RECEIPT"
	}
	if profile.Currency == "" {
		profile.Currency = "KES"
	}
	if profile.PaperWidth <= 0 {
		profile.PaperWidth = printer.Width58mm
	}
	return &ReceiptService{
		printer: p,
		profile: profile,
		feed:    feed,
		log:     log.WithField("component", "receipts"),
	}
}

// Build composes the receipt for a completed sale and records it as the last
// receipt for reprints. Rendering is pure; no network is involved.
func (s *ReceiptService) Build(sale *entity.CompletedSale) *entity.Receipt {
	r := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: s.profile.StoreName,
			Address:   s.profile.Address,
			Phone:     s.profile.Phone,
			TaxID:     s.profile.TaxID,
		},
		ReceiptNo:     sale.ReceiptNo,
		Date:          sale.CompletedAt.Format("2006-01-02 15:04"),
		Cashier:       s.profile.Cashier,
		PaymentMethod: sale.PaymentMethod.Label(),
		Currency:      s.profile.Currency,
		Net:           sale.Totals.Net,
		VAT:           sale.Totals.Tax,
		VATLabel:      fmt.Sprintf("VAT (%.0f%%)", VATRate*100),
		Total:         sale.Totals.Gross,
	}
	for i := range sale.Lines {
		l := &sale.Lines[i]
		r.Items = append(r.Items, entity.ReceiptItem{
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.EffectiveUnitPrice(),
			Total:     l.Total(),
		})
	}

	s.mu.Lock()
	s.last = r
	s.mu.Unlock()
	return r
}

// Last returns the most recently built receipt, if any. It backs the manual
// reprint and download actions after a sale has completed.
func (s *ReceiptService) Last() (*entity.Receipt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil, false
	}
	return s.last, true
}

// Print sends the ESC/POS rendering to the configured printer. A failure here
// never affects the sale; callers treat it as recoverable and offer a manual
// reprint.
func (s *ReceiptService) Print(r *entity.Receipt) error {
	data := s.formatESCPOS(r)
	if err := s.printer.Print(data); err != nil {
		s.log.WithError(err).WithField("receipt_no", r.ReceiptNo).Warn("receipt print failed")
		return apperror.NewPrintError(fmt.Sprintf("Failed to print receipt %s", r.ReceiptNo))
	}
	return nil
}

// PrintLast reprints the last completed sale's receipt.
func (s *ReceiptService) PrintLast() error {
	r, ok := s.Last()
	if !ok {
		return apperror.NewNotFoundError("Receipt")
	}
	return s.Print(r)
}

// RenderHTML produces the HTML print document for a receipt.
func (s *ReceiptService) RenderHTML(r *entity.Receipt) ([]byte, error) {
	return receipt.RenderHTML(r)
}

// RenderPDF produces the downloadable PDF variant for a receipt.
func (s *ReceiptService) RenderPDF(r *entity.Receipt) ([]byte, error) {
	return receipt.RenderPDF(r)
}

// formatESCPOS converts a Receipt into ESC/POS bytes for thermal printing.
func (s *ReceiptService) formatESCPOS(r *entity.Receipt) []byte {
	doc := printer.NewDocument(s.profile.PaperWidth)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.TextF("Tax ID: %s", r.Header.TaxID)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Receipt:", r.ReceiptNo).
		KeyValue("Date:", r.Date)

	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}
	if r.PaymentMethod != "" {
		doc.KeyValue("Payment:", r.PaymentMethod)
	}

	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, receipt.Money(item.Total))
		if item.Quantity > 1 {
			doc.TextF("  @ %s each", receipt.Money(item.UnitPrice))
		}
	}

	doc.Separator('-')

	doc.KeyValue("Net:", receipt.Money(r.Net)).
		KeyValue(r.VATLabel+":", receipt.Money(r.VAT))
	doc.SetBold(true).
		KeyValue("TOTAL "+r.Currency+":", receipt.Money(r.Total)).
		SetBold(false)

	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you for your business!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
