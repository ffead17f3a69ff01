package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/eltech/pos-terminal/internal/domain/entity"
	"github.com/eltech/pos-terminal/internal/domain/gateway"
)

// CatalogService holds the read-only snapshot of sellable items. The snapshot
// is replaced wholesale on refresh; the cart only ever reads from it.
type CatalogService struct {
	backend gateway.ProductLister
	log     *logrus.Entry

	mu          sync.RWMutex
	items       []entity.CatalogItem
	byID        map[uuid.UUID]int
	refreshedAt time.Time
}

// NewCatalogService creates a catalog service backed by the inventory backend.
func NewCatalogService(backend gateway.ProductLister, log *logrus.Logger) *CatalogService {
	return &CatalogService{
		backend: backend,
		log:     log.WithField("component", "catalog"),
		byID:    make(map[uuid.UUID]int),
	}
}

// Refresh replaces the snapshot with the backend's current product list. On
// failure the previous snapshot stays in place.
func (s *CatalogService) Refresh(ctx context.Context) error {
	items, err := s.backend.ListProducts(ctx)
	if err != nil {
		s.log.WithError(err).Warn("catalog refresh failed; keeping previous snapshot")
		return err
	}

	byID := make(map[uuid.UUID]int, len(items))
	for i := range items {
		byID[items[i].ID] = i
	}

	s.mu.Lock()
	s.items = items
	s.byID = byID
	s.refreshedAt = time.Now()
	s.mu.Unlock()

	s.log.WithField("items", len(items)).Debug("catalog snapshot refreshed")
	return nil
}

// Get returns the snapshot item with the given id.
func (s *CatalogService) Get(id uuid.UUID) (entity.CatalogItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[id]
	if !ok {
		return entity.CatalogItem{}, false
	}
	return s.items[idx], true
}

// Snapshot returns the full item list (copied) with its refresh timestamp.
func (s *CatalogService) Snapshot() entity.CatalogSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entity.CatalogItem, len(s.items))
	copy(items, s.items)
	return entity.CatalogSnapshot{Items: items, RefreshedAt: s.refreshedAt}
}

// StartAutoRefresh refreshes the snapshot on the given interval until ctx is
// cancelled. Failures are logged and retried on the next tick.
func (s *CatalogService) StartAutoRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = s.Refresh(ctx)
			}
		}
	}()
}
