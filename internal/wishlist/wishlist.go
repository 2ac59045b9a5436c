package wishlist

import (
	"context"
	"errors"
	"sync"

	"github.com/gamevault/storefront-backend/internal/catalog"
	"github.com/gamevault/storefront-backend/internal/storage"
	"github.com/gamevault/storefront-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// Item is the product summary kept under the wishlist key.
type Item struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

func itemFor(p catalog.Product) Item {
	return Item{ID: p.ID, Name: p.Name, Price: p.Price, Image: p.Image}
}

// Store manages the liked products of one session.
type Store struct {
	mu       sync.Mutex
	products catalog.Lookup
	store    storage.Store
	logg     *logger.Logger
	items    []Item
}

// New restores the wishlist from store, resetting it when the document does not parse.
func New(ctx context.Context, products catalog.Lookup, store storage.Store, logg *logger.Logger) *Store {
	if logg == nil {
		logg = logger.Nop()
	}
	s := &Store{products: products, store: store, logg: logg, items: []Item{}}

	var persisted []Item
	err := storage.ReadJSON(ctx, store, storage.KeyWishlist, &persisted)
	switch {
	case err == nil:
		s.items = persisted
	case errors.Is(err, storage.ErrMalformed):
		logg.Warn(ctx, "discarding malformed wishlist")
		s.persist(ctx)
	case !errors.Is(err, storage.ErrNotFound):
		logg.Error(ctx, "failed to load wishlist", err)
	}
	return s
}

// Toggle adds the product when absent and removes it when present. ok is
// false for unknown products.
func (s *Store) Toggle(ctx context.Context, productID int64) (added bool, ok bool) {
	product, known := s.products.Lookup(productID)
	if !known {
		return false, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(productID); idx >= 0 {
		s.items = append(s.items[:idx], s.items[idx+1:]...)
		s.persist(ctx)
		return false, true
	}
	s.items = append(s.items, itemFor(product))
	s.persist(ctx)
	return true, true
}

// Add puts the product on the wishlist if it is not there yet.
func (s *Store) Add(ctx context.Context, productID int64) bool {
	product, known := s.products.Lookup(productID)
	if !known {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(productID) >= 0 {
		return true
	}
	s.items = append(s.items, itemFor(product))
	s.persist(ctx)
	return true
}

// Remove drops the product and reports whether it was present.
func (s *Store) Remove(ctx context.Context, productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(productID)
	if idx < 0 {
		return false
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.persist(ctx)
	return true
}

func (s *Store) Contains(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(productID) >= 0
}

func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) indexOf(productID int64) int {
	for i, item := range s.items {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) persist(ctx context.Context) {
	if err := storage.WriteJSON(ctx, s.store, storage.KeyWishlist, s.items); err != nil {
		s.logg.Error(ctx, "failed to persist wishlist", err)
	}
}
