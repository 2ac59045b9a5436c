package recent

import (
	"context"
	"errors"
	"sync"

	"github.com/gamevault/storefront-backend/internal/catalog"
	"github.com/gamevault/storefront-backend/internal/storage"
	"github.com/gamevault/storefront-backend/pkg/logger"
)

// Capacity bounds the recently viewed history.
const Capacity = 10

// Store tracks recently viewed product ids, most recent first.
type Store struct {
	mu       sync.Mutex
	products catalog.Lookup
	store    storage.Store
	logg     *logger.Logger
	ids      []int64
}

func New(ctx context.Context, products catalog.Lookup, store storage.Store, logg *logger.Logger) *Store {
	if logg == nil {
		logg = logger.Nop()
	}
	s := &Store{products: products, store: store, logg: logg, ids: []int64{}}

	var persisted []int64
	err := storage.ReadJSON(ctx, store, storage.KeyRecentlyViewed, &persisted)
	switch {
	case err == nil:
		if len(persisted) > Capacity {
			persisted = persisted[:Capacity]
		}
		s.ids = persisted
	case errors.Is(err, storage.ErrMalformed):
		logg.Warn(ctx, "discarding malformed recently viewed list")
		s.persist(ctx)
	case !errors.Is(err, storage.ErrNotFound):
		logg.Error(ctx, "failed to load recently viewed list", err)
	}
	return s
}

// Record moves productID to the front of the history. Unknown products are ignored.
func (s *Store) Record(ctx context.Context, productID int64) bool {
	if _, ok := s.products.Lookup(productID); !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]int64, 0, Capacity)
	next = append(next, productID)
	for _, id := range s.ids {
		if id == productID {
			continue
		}
		if len(next) == Capacity {
			break
		}
		next = append(next, id)
	}
	s.ids = next
	s.persist(ctx)
	return true
}

// IDs returns the history, most recent first.
func (s *Store) IDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int64, len(s.ids))
	copy(out, s.ids)
	return out
}

// Products resolves up to limit entries through the catalog, skipping ids it
// no longer knows. A non-positive limit returns the whole history.
func (s *Store) Products(limit int) []catalog.Product {
	ids := s.IDs()
	if limit <= 0 || limit > len(ids) {
		limit = len(ids)
	}
	out := make([]catalog.Product, 0, limit)
	for _, id := range ids {
		if len(out) == limit {
			break
		}
		if p, ok := s.products.Lookup(id); ok {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) persist(ctx context.Context) {
	if err := storage.WriteJSON(ctx, s.store, storage.KeyRecentlyViewed, s.ids); err != nil {
		s.logg.Error(ctx, "failed to persist recently viewed list", err)
	}
}
