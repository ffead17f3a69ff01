package enum

// CheckoutState tracks the checkout workflow for the single in-progress sale.
type CheckoutState string

const (
	// CheckoutIdle means no checkout has been initiated.
	CheckoutIdle CheckoutState = "idle"
	// CheckoutAwaitingConfirmation means a pending sale snapshot exists and the
	// confirmation dialog is up; the cart is frozen.
	CheckoutAwaitingConfirmation CheckoutState = "awaiting_confirmation"
	// CheckoutSubmitting means the sale is in flight to the backend.
	CheckoutSubmitting CheckoutState = "submitting"
	// CheckoutCompleted means the last sale was accepted; behaves like idle for
	// starting the next checkout.
	CheckoutCompleted CheckoutState = "completed"
)

// InProgress reports whether a checkout is underway and cart mutations must be
// rejected.
func (s CheckoutState) InProgress() bool {
	return s == CheckoutAwaitingConfirmation || s == CheckoutSubmitting
}

// CanInitiate reports whether a new checkout may be started from this state.
func (s CheckoutState) CanInitiate() bool {
	return s == CheckoutIdle || s == CheckoutCompleted
}

func (s CheckoutState) String() string {
	return string(s)
}
