package service

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/eltech/pos-terminal/internal/domain/entity"
	"github.com/eltech/pos-terminal/internal/domain/enum"
	"github.com/eltech/pos-terminal/internal/domain/gateway"
	"github.com/eltech/pos-terminal/pkg/apperror"
)

// DefaultSubmitTimeout bounds the backend create-sale call so a stalled
// network cannot leave the terminal stuck in the submitting state.
const DefaultSubmitTimeout = 15 * time.Second

// CompletionFunc is invoked after a sale completes, with the authoritative
// sale and its composed receipt.
type CompletionFunc func(sale *entity.CompletedSale, receipt *entity.Receipt)

// CheckoutService drives the single-sale checkout workflow: snapshot the cart,
// await confirmation, submit exactly once, then settle. It owns the workflow
// state; the cart stays frozen from initiation until cancel or completion.
type CheckoutService struct {
	cart       *CartService
	catalog    *CatalogService
	backend    gateway.SaleCreator
	receipts   *ReceiptService
	feed       *NotificationFeed
	log        *logrus.Entry
	timeout    time.Duration
	onComplete CompletionFunc

	mu      sync.Mutex
	state   enum.CheckoutState
	pending *entity.PendingSale
	last    *entity.CompletedSale
}

// NewCheckoutService wires the orchestrator to its collaborators. A
// non-positive timeout falls back to DefaultSubmitTimeout.
func NewCheckoutService(
	cart *CartService,
	catalog *CatalogService,
	backend gateway.SaleCreator,
	receipts *ReceiptService,
	feed *NotificationFeed,
	log *logrus.Logger,
	timeout time.Duration,
) *CheckoutService {
	if timeout <= 0 {
		timeout = DefaultSubmitTimeout
	}
	return &CheckoutService{
		cart:     cart,
		catalog:  catalog,
		backend:  backend,
		receipts: receipts,
		feed:     feed,
		log:      log.WithField("component", "checkout"),
		timeout:  timeout,
		state:    enum.CheckoutIdle,
	}
}

// OnComplete registers a callback fired after each completed sale. It must be
// set before the service starts handling requests.
func (s *CheckoutService) OnComplete(fn CompletionFunc) {
	s.onComplete = fn
}

// State returns the current workflow state.
func (s *CheckoutService) State() enum.CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Pending returns the snapshot awaiting confirmation, if any.
func (s *CheckoutService) Pending() (*entity.PendingSale, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return nil, false
	}
	p := *s.pending
	return &p, true
}

// LastSale returns the most recently completed sale, if any.
func (s *CheckoutService) LastSale() (*entity.CompletedSale, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil, false
	}
	c := *s.last
	return &c, true
}

// InitiateCheckout snapshots the cart into an immutable PendingSale and
// freezes the cart. The snapshot, not the live cart, is what Confirm submits.
func (s *CheckoutService) InitiateCheckout() (*entity.PendingSale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.CanInitiate() {
		return nil, apperror.NewConflictError("A checkout is already in progress")
	}

	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, apperror.ErrCartEmpty
	}

	pending := &entity.PendingSale{
		ReceiptNo:     newReceiptNo(),
		Lines:         lines,
		Totals:        TotalsFor(lines),
		PaymentMethod: s.cart.PaymentMethod(),
		CreatedAt:     time.Now(),
	}

	s.pending = pending
	s.state = enum.CheckoutAwaitingConfirmation
	s.cart.freeze()

	s.log.WithFields(logrus.Fields{
		"receipt_no": pending.ReceiptNo,
		"lines":      len(pending.Lines),
		"total":      pending.Totals.Gross,
	}).Info("checkout initiated")

	p := *pending
	return &p, nil
}

// Cancel abandons the pending sale and unfreezes the cart with its contents
// intact. It is rejected once submission has started.
func (s *CheckoutService) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case enum.CheckoutAwaitingConfirmation:
	case enum.CheckoutSubmitting:
		return apperror.NewConflictError("Sale is being submitted and can no longer be cancelled")
	default:
		return apperror.NewConflictError("No checkout in progress")
	}

	s.log.WithField("receipt_no", s.pending.ReceiptNo).Info("checkout cancelled")
	s.pending = nil
	s.state = enum.CheckoutIdle
	s.cart.unfreeze()
	return nil
}

// Confirm submits the pending snapshot to the backend. At most one submission
// is ever in flight: a Confirm arriving while another is submitting returns
// (nil, nil) and does nothing. On failure the workflow returns to awaiting
// confirmation with the snapshot and cart intact, so the operator can retry
// or cancel.
func (s *CheckoutService) Confirm(ctx context.Context) (*entity.CompletedSale, error) {
	s.mu.Lock()
	if s.state == enum.CheckoutSubmitting {
		s.mu.Unlock()
		return nil, nil
	}
	if s.state != enum.CheckoutAwaitingConfirmation {
		s.mu.Unlock()
		return nil, apperror.NewConflictError("No sale awaiting confirmation")
	}
	snapshot := s.pending
	s.state = enum.CheckoutSubmitting
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	record, err := s.backend.CreateSale(ctx, snapshot.Submission())
	if err != nil {
		s.mu.Lock()
		s.state = enum.CheckoutAwaitingConfirmation
		s.mu.Unlock()

		appErr := s.classifySubmitError(err)
		s.log.WithError(err).WithField("receipt_no", snapshot.ReceiptNo).Error("sale submission failed")
		s.feed.Push(NotifyError, "%s", appErr.Message)
		return nil, appErr
	}

	completedAt := record.CreatedAt
	if completedAt.IsZero() {
		completedAt = time.Now()
	}
	completed := &entity.CompletedSale{
		PendingSale: *snapshot,
		SaleID:      record.ID,
		CompletedAt: completedAt,
	}

	s.mu.Lock()
	s.state = enum.CheckoutCompleted
	s.pending = nil
	s.last = completed
	s.mu.Unlock()

	s.cart.resetAfterSale()

	s.log.WithFields(logrus.Fields{
		"receipt_no": completed.ReceiptNo,
		"sale_id":    completed.SaleID,
		"total":      completed.Totals.Gross,
	}).Info("sale completed")
	s.feed.Push(NotifySuccess, "Sale %s completed", completed.ReceiptNo)

	receipt := s.receipts.Build(completed)
	if err := s.receipts.Print(receipt); err != nil {
		// The sale stands; the operator can reprint once the printer recovers.
		s.feed.Push(NotifyWarning, "Receipt failed to print; use reprint when the printer is back")
	}

	if err := s.catalog.Refresh(ctx); err != nil {
		s.log.WithError(err).Warn("post-sale catalog refresh failed")
	}

	if s.onComplete != nil {
		s.onComplete(completed, receipt)
	}

	c := *completed
	return &c, nil
}

// classifySubmitError maps a backend failure to its user-facing kind. A
// structured rejection keeps the backend's message; everything else reads as
// a network failure with the snapshot preserved for retry.
func (s *CheckoutService) classifySubmitError(err error) *apperror.AppError {
	appErr := apperror.GetAppError(err)
	switch appErr.Kind {
	case apperror.KindSubmissionRejected, apperror.KindNetworkFailure:
		return appErr
	default:
		return &apperror.AppError{
			Code:    http.StatusBadGateway,
			Kind:    apperror.KindNetworkFailure,
			Message: apperror.ErrNetworkFailure.Message,
		}
	}
}

// newReceiptNo generates a short human-readable receipt number.
func newReceiptNo() string {
	return "INV-" + uuid.New().String()[:8]
}
