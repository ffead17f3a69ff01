package enum

import "strings"

// PaymentMethod is the tender type selected for a sale.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentMobile PaymentMethod = "mobile"
)

// DefaultPaymentMethod is the method a fresh cart starts with.
const DefaultPaymentMethod = PaymentCash

// ParsePaymentMethod converts user input into a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	return m, m.IsValid()
}

// IsValid reports whether the method is one of the supported tender types.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentMobile:
		return true
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}

// Label returns the uppercased form used on printed receipts.
func (m PaymentMethod) Label() string {
	return strings.ToUpper(string(m))
}
