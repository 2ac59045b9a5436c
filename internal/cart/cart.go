package cart

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/gamevault/storefront-backend/internal/catalog"
	"github.com/gamevault/storefront-backend/internal/storage"
	"github.com/gamevault/storefront-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

const (
	MinQuantity = 1
	MaxQuantity = 10
)

// Mutation names carried by Event.
const (
	OpAdd            = "add"
	OpRemove         = "remove"
	OpUpdate         = "update"
	OpClear          = "clear"
	OpApplyDiscount  = "apply_discount"
	OpRemoveDiscount = "remove_discount"
	OpSaveForLater   = "save_for_later"
)

// LineItem is one product/variant entry in the cart.
type LineItem struct {
	ProductID int64     `json:"productId"`
	Quantity  int       `json:"quantity"`
	Options   Options   `json:"options"`
	AddedAt   time.Time `json:"addedAt"`
}

func (li LineItem) key() string {
	return lineKey(li.ProductID, li.Options)
}

func lineKey(productID int64, opts Options) string {
	return strconv.FormatInt(productID, 10) + "|" + opts.Key()
}

// Event describes a completed cart mutation.
type Event struct {
	Op        string
	ItemCount int
	Subtotal  decimal.Decimal
}

// Summary is the full priced view of the cart.
type Summary struct {
	Items     []LineItem      `json:"items"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Tax       decimal.Decimal `json:"tax"`
	Discount  *Discount       `json:"discount"`
	Total     decimal.Decimal `json:"total"`
}

// WishlistAdder receives products moved out of the cart.
type WishlistAdder interface {
	Add(ctx context.Context, productID int64) bool
}

// Option customizes a Store.
type Option func(*Store)

// WithLogger routes persistence failures to logg.
func WithLogger(logg *logger.Logger) Option {
	return func(s *Store) {
		if logg != nil {
			s.logg = logg
		}
	}
}

// WithClock overrides the time source used for AddedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Store owns the cart line items of one session and keeps them in sync with
// the persisted key-value store. Not-found products and out-of-range
// quantities never surface as errors; persistence failures are logged and
// not retried.
type Store struct {
	mu        sync.Mutex
	products  catalog.Lookup
	store     storage.Store
	logg      *logger.Logger
	now       func() time.Time
	items     []LineItem
	discount  *Discount
	observers []func(Event)
}

// New restores the cart persisted in store. Entries referencing unknown
// products or carrying non-positive quantities are dropped, quantities above
// the maximum are clamped, and the pruned list is written back. A document
// that does not parse is reset to an empty list.
func New(ctx context.Context, products catalog.Lookup, store storage.Store, opts ...Option) *Store {
	s := &Store{
		products: products,
		store:    store,
		logg:     logger.Nop(),
		now:      time.Now,
		items:    []LineItem{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.restoreItems(ctx)
	s.restoreDiscount(ctx)
	return s
}

func (s *Store) restoreItems(ctx context.Context) {
	var persisted []LineItem
	err := storage.ReadJSON(ctx, s.store, storage.KeyCart, &persisted)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return
	case errors.Is(err, storage.ErrMalformed):
		s.logg.Warn(ctx, "discarding malformed cart")
		s.persistItems(ctx)
		return
	case err != nil:
		s.logg.Error(ctx, "failed to load cart", err)
		return
	}

	changed := false
	index := make(map[string]int, len(persisted))
	for _, item := range persisted {
		if _, ok := s.products.Lookup(item.ProductID); !ok || item.Quantity < MinQuantity {
			changed = true
			continue
		}
		if item.Quantity > MaxQuantity {
			item.Quantity = MaxQuantity
			changed = true
		}
		if item.Options == nil {
			item.Options = Options{}
		}
		if idx, dup := index[item.key()]; dup {
			s.items[idx].Quantity = clampQuantity(s.items[idx].Quantity + item.Quantity)
			changed = true
			continue
		}
		index[item.key()] = len(s.items)
		s.items = append(s.items, item)
	}
	if changed {
		s.persistItems(ctx)
	}
}

func (s *Store) restoreDiscount(ctx context.Context) {
	var d Discount
	err := storage.ReadJSON(ctx, s.store, storage.KeyAppliedDiscount, &d)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return
	case err != nil && !errors.Is(err, storage.ErrMalformed):
		s.logg.Error(ctx, "failed to load applied discount", err)
		return
	}
	if err == nil {
		if restored, ok := d.restore(); ok {
			s.discount = &restored
			return
		}
	}
	s.logg.Warn(ctx, "discarding invalid applied discount")
	if err := s.store.Delete(ctx, storage.KeyAppliedDiscount); err != nil {
		s.logg.Error(ctx, "failed to delete applied discount", err)
	}
}

// Subscribe registers fn to be called after every successful mutation.
func (s *Store) Subscribe(fn func(Event)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// AddItem adds quantity units of productID. It declines unknown products.
// An existing line for the same variant accumulates up to MaxQuantity and
// the excess is discarded.
func (s *Store) AddItem(ctx context.Context, productID int64, quantity int, opts Options) bool {
	if _, ok := s.products.Lookup(productID); !ok {
		return false
	}
	quantity = clampQuantity(quantity)

	s.mu.Lock()
	if idx := s.indexOf(productID, opts); idx >= 0 {
		s.items[idx].Quantity = clampQuantity(s.items[idx].Quantity + quantity)
	} else {
		s.items = append(s.items, LineItem{
			ProductID: productID,
			Quantity:  quantity,
			Options:   opts.clone(),
			AddedAt:   s.now().UTC(),
		})
	}
	s.persistItems(ctx)
	event, observers := s.eventLocked(OpAdd)
	s.mu.Unlock()

	notify(observers, event)
	return true
}

// RemoveItem deletes the matching line. Missing lines are a no-op.
func (s *Store) RemoveItem(ctx context.Context, productID int64, opts Options) {
	s.mu.Lock()
	idx := s.indexOf(productID, opts)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.persistItems(ctx)
	event, observers := s.eventLocked(OpRemove)
	s.mu.Unlock()

	notify(observers, event)
}

// UpdateQuantity sets the line quantity, clamped to the allowed range.
// Quantities of zero or less remove the line.
func (s *Store) UpdateQuantity(ctx context.Context, productID int64, quantity int, opts Options) {
	if quantity < MinQuantity {
		s.RemoveItem(ctx, productID, opts)
		return
	}

	s.mu.Lock()
	idx := s.indexOf(productID, opts)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.items[idx].Quantity = clampQuantity(quantity)
	s.persistItems(ctx)
	event, observers := s.eventLocked(OpUpdate)
	s.mu.Unlock()

	notify(observers, event)
}

// Clear empties the cart and persists the empty list.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = []LineItem{}
	s.persistItems(ctx)
	event, observers := s.eventLocked(OpClear)
	s.mu.Unlock()

	notify(observers, event)
}

// SaveForLater moves the line into the wishlist. It reports false when the
// line does not exist.
func (s *Store) SaveForLater(ctx context.Context, productID int64, opts Options, wishlist WishlistAdder) bool {
	s.mu.Lock()
	idx := s.indexOf(productID, opts)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.persistItems(ctx)
	event, observers := s.eventLocked(OpSaveForLater)
	s.mu.Unlock()

	if wishlist != nil {
		wishlist.Add(ctx, productID)
	}
	notify(observers, event)
	return true
}

// Items returns a snapshot of the line items in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// ItemCount sums all line quantities.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemCountLocked()
}

// Subtotal prices every line against the catalog. Lines whose product no
// longer resolves contribute nothing.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotalLocked()
}

// Total is subtotal plus shipping and tax minus the active discount, never negative.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked(s.subtotalLocked())
}

// ApplyDiscount resolves code and replaces the active discount. The amount is
// evaluated against the current subtotal and kept as-is afterwards.
func (s *Store) ApplyDiscount(ctx context.Context, code string) (Discount, bool) {
	d, ok := LookupCode(code)
	if !ok {
		return Discount{}, false
	}

	s.mu.Lock()
	d.Amount = d.amountFor(s.subtotalLocked())
	s.discount = &d
	if err := storage.WriteJSON(ctx, s.store, storage.KeyAppliedDiscount, d); err != nil {
		s.logg.Error(ctx, "failed to persist applied discount", err)
	}
	event, observers := s.eventLocked(OpApplyDiscount)
	s.mu.Unlock()

	notify(observers, event)
	return d, true
}

// RemoveDiscount clears the active discount.
func (s *Store) RemoveDiscount(ctx context.Context) {
	s.mu.Lock()
	s.discount = nil
	if err := s.store.Delete(ctx, storage.KeyAppliedDiscount); err != nil {
		s.logg.Error(ctx, "failed to delete applied discount", err)
	}
	event, observers := s.eventLocked(OpRemoveDiscount)
	s.mu.Unlock()

	notify(observers, event)
}

// ActiveDiscount returns the applied discount, if any.
func (s *Store) ActiveDiscount() (Discount, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.discount == nil {
		return Discount{}, false
	}
	return *s.discount, true
}

// Summary prices the cart in one consistent snapshot.
func (s *Store) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	subtotal := s.subtotalLocked()
	summary := Summary{
		Items:     s.snapshotLocked(),
		ItemCount: s.itemCountLocked(),
		Subtotal:  subtotal,
		Shipping:  Shipping(subtotal),
		Tax:       Tax(subtotal),
		Total:     s.totalLocked(subtotal),
	}
	if s.discount != nil {
		d := *s.discount
		summary.Discount = &d
	}
	return summary
}

func (s *Store) indexOf(productID int64, opts Options) int {
	for i, item := range s.items {
		if item.ProductID == productID && item.Options.Equal(opts) {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() []LineItem {
	out := make([]LineItem, len(s.items))
	for i, item := range s.items {
		item.Options = item.Options.clone()
		out[i] = item
	}
	return out
}

func (s *Store) itemCountLocked() int {
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *Store) subtotalLocked() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range s.items {
		product, ok := s.products.Lookup(item.ProductID)
		if !ok {
			continue
		}
		subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal
}

func (s *Store) totalLocked(subtotal decimal.Decimal) decimal.Decimal {
	total := subtotal.Add(Shipping(subtotal)).Add(Tax(subtotal))
	if s.discount != nil {
		total = total.Sub(s.discount.Amount)
	}
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

func (s *Store) persistItems(ctx context.Context) {
	if err := storage.WriteJSON(ctx, s.store, storage.KeyCart, s.items); err != nil {
		s.logg.Error(ctx, "failed to persist cart", err)
	}
}

func (s *Store) eventLocked(op string) (Event, []func(Event)) {
	observers := make([]func(Event), len(s.observers))
	copy(observers, s.observers)
	return Event{
		Op:        op,
		ItemCount: s.itemCountLocked(),
		Subtotal:  s.subtotalLocked(),
	}, observers
}

func notify(observers []func(Event), event Event) {
	for _, fn := range observers {
		fn(event)
	}
}

func clampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}
