package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/eltech/pos-terminal/internal/domain/entity"
)

// fakeBackend is an in-memory stand-in for the inventory backend.
type fakeBackend struct {
	mu        sync.Mutex
	items     []entity.CatalogItem
	listErr   error
	createErr error
	created   []*entity.SaleSubmission
	record    *entity.SaleRecord
	listed    int

	// When non-nil, CreateSale blocks until the channel is closed or the
	// context expires. Used to hold a submission in flight.
	block chan struct{}
}

func (f *fakeBackend) ListProducts(context.Context) ([]entity.CatalogItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listed++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]entity.CatalogItem, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeBackend) CreateSale(ctx context.Context, sub *entity.SaleSubmission) (*entity.SaleRecord, error) {
	f.mu.Lock()
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, sub)
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.record != nil {
		return f.record, nil
	}
	return &entity.SaleRecord{ID: uuid.New(), CreatedAt: time.Now()}, nil
}

func (f *fakeBackend) createCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

func (f *fakeBackend) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listed
}

// failingPrinter always errors, simulating disconnected hardware.
type failingPrinter struct{}

func (failingPrinter) Print([]byte) error { return io.ErrClosedPipe }
func (failingPrinter) Close() error       { return nil }
func (failingPrinter) IsConnected() bool  { return false }

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func catalogItem(name string, price float64, qty int) entity.CatalogItem {
	return entity.CatalogItem{
		ID:        uuid.New(),
		Name:      name,
		SKU:       "SKU-" + name,
		UnitPrice: price,
		Quantity:  qty,
	}
}

// newTestCatalog builds a catalog service seeded with the given items.
func newTestCatalog(t *testing.T, backend *fakeBackend) *CatalogService {
	t.Helper()
	catalog := NewCatalogService(backend, testLogger())
	require.NoError(t, catalog.Refresh(context.Background()))
	return catalog
}
