package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 48
	MaxSearchLength = 128
)

// Sort orders accepted by Query.
const (
	SortFeatured  = "featured"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortName      = "name"
	SortRating    = "rating"
	SortNewest    = "newest"
)

// Price range buckets accepted by Query.
const (
	PriceUnder25  = "0-25"
	Price25To50   = "25-50"
	Price50To100  = "50-100"
	Price100To200 = "100-200"
	PriceOver200  = "200+"
)

// Query narrows and orders the product listing.
type Query struct {
	Category   string `json:"category" validate:"omitempty,max=64"`
	Brand      string `json:"brand" validate:"omitempty,max=64"`
	PriceRange string `json:"price_range" validate:"omitempty,oneof=0-25 25-50 50-100 100-200 200+"`
	Search     string `json:"search" validate:"omitempty,max=128"`
	Sort       string `json:"sort" validate:"omitempty,oneof=featured price-low price-high name rating newest"`
	Page       int    `json:"page" validate:"omitempty,min=1"`
	PageSize   int    `json:"page_size" validate:"omitempty,min=1,max=48"`
}

// Page is one slice of a filtered listing.
type Page struct {
	Products   []Product `json:"products"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}

// Filter applies q and returns the requested page.
func (c *Catalog) Filter(q Query) Page {
	matched := make([]Product, 0, len(c.products))
	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, p := range c.products {
		if q.Category != "" && !strings.EqualFold(p.Category, q.Category) {
			continue
		}
		if q.Brand != "" && !strings.EqualFold(p.Brand, q.Brand) {
			continue
		}
		if !inPriceRange(p.Price, q.PriceRange) {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		matched = append(matched, p)
	}

	sortProducts(matched, q.Sort)

	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}

	total := len(matched)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return Page{
		Products:   matched[start:end],
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: (total + size - 1) / size,
	}
}

// Categories returns the distinct categories in seed order.
func (c *Catalog) Categories() []string {
	return c.distinct(func(p Product) string { return p.Category })
}

// Brands returns the distinct brands in seed order.
func (c *Catalog) Brands() []string {
	return c.distinct(func(p Product) string { return p.Brand })
}

func (c *Catalog) distinct(field func(Product) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range c.products {
		v := field(p)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

var (
	d25  = decimal.NewFromInt(25)
	d50  = decimal.NewFromInt(50)
	d100 = decimal.NewFromInt(100)
	d200 = decimal.NewFromInt(200)
)

func inPriceRange(price decimal.Decimal, bucket string) bool {
	switch bucket {
	case "":
		return true
	case PriceUnder25:
		return !price.IsNegative() && price.LessThanOrEqual(d25)
	case Price25To50:
		return price.GreaterThan(d25) && price.LessThanOrEqual(d50)
	case Price50To100:
		return price.GreaterThan(d50) && price.LessThanOrEqual(d100)
	case Price100To200:
		return price.GreaterThan(d100) && price.LessThanOrEqual(d200)
	case PriceOver200:
		return price.GreaterThan(d200)
	default:
		// unknown buckets do not filter
		return true
	}
}

func matchesSearch(p Product, needle string) bool {
	for _, field := range []string{p.Name, p.Description, p.Category, p.Brand} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func sortProducts(products []Product, order string) {
	var less func(a, b Product) bool
	switch order {
	case SortPriceLow:
		less = func(a, b Product) bool { return a.Price.LessThan(b.Price) }
	case SortPriceHigh:
		less = func(a, b Product) bool { return a.Price.GreaterThan(b.Price) }
	case SortName:
		less = func(a, b Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case SortRating:
		less = func(a, b Product) bool { return a.Rating > b.Rating }
	case SortNewest:
		less = func(a, b Product) bool { return a.ID > b.ID }
	default:
		less = func(a, b Product) bool {
			if a.Featured != b.Featured {
				return a.Featured
			}
			return a.Rating > b.Rating
		}
	}
	sort.SliceStable(products, func(i, j int) bool {
		return less(products[i], products[j])
	})
}
