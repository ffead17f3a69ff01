package entity

// ReceiptHeader holds the business header printed at the top of a receipt.
// Optional fields are omitted from the rendered document when blank.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// Receipt is a value object representing a printable receipt. It is composed
// once from a completed sale; every rendering (ESC/POS, HTML, PDF) reads the
// same value so the outputs can never disagree on amounts.
type Receipt struct {
	Header        ReceiptHeader `json:"header"`
	ReceiptNo     string        `json:"receipt_no"`
	Date          string        `json:"date"`
	Cashier       string        `json:"cashier,omitempty"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	Currency      string        `json:"currency"`
	Items         []ReceiptItem `json:"items"`
	Net           float64       `json:"net_amount"`
	VAT           float64       `json:"vat_amount"`
	VATLabel      string        `json:"vat_label"`
	Total         float64       `json:"total_amount"`
}
