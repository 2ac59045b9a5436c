package compare

import (
	"context"
	"errors"
	"sync"

	"github.com/gamevault/storefront-backend/internal/catalog"
	"github.com/gamevault/storefront-backend/internal/storage"
	pkgerrors "github.com/gamevault/storefront-backend/pkg/errors"
	"github.com/gamevault/storefront-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// Capacity is the number of products that can be compared side by side.
const Capacity = 3

var (
	ErrCompareFull     = pkgerrors.New(pkgerrors.CodeLimit, "you can compare up to 3 products")
	ErrAlreadyCompared = pkgerrors.New(pkgerrors.CodeConflict, "product is already in the compare list")
	ErrUnknownProduct  = pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
)

// Item is the summary kept under the compare list key.
type Item struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Rating   float64         `json:"rating"`
	Category string          `json:"category"`
}

// Store holds one session's compare list.
type Store struct {
	mu       sync.Mutex
	products catalog.Lookup
	store    storage.Store
	logg     *logger.Logger
	items    []Item
}

func New(ctx context.Context, products catalog.Lookup, store storage.Store, logg *logger.Logger) *Store {
	if logg == nil {
		logg = logger.Nop()
	}
	s := &Store{products: products, store: store, logg: logg, items: []Item{}}

	var persisted []Item
	err := storage.ReadJSON(ctx, store, storage.KeyCompareList, &persisted)
	switch {
	case err == nil:
		if len(persisted) > Capacity {
			persisted = persisted[:Capacity]
		}
		s.items = persisted
	case errors.Is(err, storage.ErrMalformed):
		logg.Warn(ctx, "discarding malformed compare list")
		s.persist(ctx)
	case !errors.Is(err, storage.ErrNotFound):
		logg.Error(ctx, "failed to load compare list", err)
	}
	return s
}

// Add appends the product to the compare list.
func (s *Store) Add(ctx context.Context, productID int64) error {
	p, ok := s.products.Lookup(productID)
	if !ok {
		return ErrUnknownProduct
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(productID) >= 0 {
		return ErrAlreadyCompared
	}
	if len(s.items) >= Capacity {
		return ErrCompareFull
	}
	s.items = append(s.items, Item{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Rating:   p.Rating,
		Category: p.Category,
	})
	s.persist(ctx)
	return nil
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

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = []Item{}
	s.persist(ctx)
}

func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
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
	if err := storage.WriteJSON(ctx, s.store, storage.KeyCompareList, s.items); err != nil {
		s.logg.Error(ctx, "failed to persist compare list", err)
	}
}
