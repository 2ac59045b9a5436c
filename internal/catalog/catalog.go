package catalog

import (
	"sort"
)

// Lookup resolves products by id. Cart, wishlist and compare depend on this
// rather than on Catalog so tests can supply their own product sets.
type Lookup interface {
	Lookup(id int64) (Product, bool)
}

// Catalog is an immutable, ordered product set.
type Catalog struct {
	products []Product
	byID     map[int64]int
}

// New builds a catalog from the supplied products. Later duplicates of an id are ignored.
func New(products []Product) *Catalog {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[int64]int, len(products)),
	}
	for _, p := range products {
		if _, dup := c.byID[p.ID]; dup {
			continue
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c
}

// Default returns the catalog seeded with the storefront products.
func Default() *Catalog {
	return New(SeedProducts())
}

// Lookup returns the product for id.
func (c *Catalog) Lookup(id int64) (Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[idx], true
}

// All returns a copy of every product in seed order.
func (c *Catalog) All() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len reports the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Related returns up to limit products sharing id's category, best rated first.
func (c *Catalog) Related(id int64, limit int) []Product {
	base, ok := c.Lookup(id)
	if !ok || limit <= 0 {
		return []Product{}
	}
	related := make([]Product, 0, limit)
	for _, p := range c.products {
		if p.ID != base.ID && p.Category == base.Category {
			related = append(related, p)
		}
	}
	sort.SliceStable(related, func(i, j int) bool {
		return related[i].Rating > related[j].Rating
	})
	if len(related) > limit {
		related = related[:limit]
	}
	return related
}
