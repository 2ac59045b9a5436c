package storefront

import (
	"context"
	"strings"

	"github.com/gamevault/storefront-backend/internal/cart"
	"github.com/gamevault/storefront-backend/internal/catalog"
	"github.com/gamevault/storefront-backend/internal/compare"
	"github.com/gamevault/storefront-backend/internal/recent"
	"github.com/gamevault/storefront-backend/internal/storage"
	"github.com/gamevault/storefront-backend/internal/theme"
	"github.com/gamevault/storefront-backend/internal/wishlist"
	pkgerrors "github.com/gamevault/storefront-backend/pkg/errors"
	"github.com/gamevault/storefront-backend/pkg/logger"
	"github.com/gamevault/storefront-backend/pkg/metrics"
	"golang.org/x/sync/singleflight"
)

// MaxSessionIDLength bounds accepted session identifiers.
const MaxSessionIDLength = 64

// ManagerParams groups dependencies for the session manager.
type ManagerParams struct {
	Backend storage.Backend
	Catalog *catalog.Catalog
	Logger  *logger.Logger
	Metrics *metrics.StorefrontMetrics
}

// Manager loads sessions from the storage backend.
type Manager struct {
	backend storage.Backend
	catalog *catalog.Catalog
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
	group   singleflight.Group
}

// NewManager builds a manager with the required dependencies.
func NewManager(params ManagerParams) (*Manager, error) {
	if params.Backend == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storage backend is required")
	}
	if params.Catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Manager{
		backend: params.Backend,
		catalog: params.Catalog,
		logg:    logg.Component("storefront"),
		metrics: params.Metrics,
	}, nil
}

// Catalog returns the product catalog sessions resolve against.
func (m *Manager) Catalog() *catalog.Catalog {
	return m.catalog
}

// Ping checks the storage backend.
func (m *Manager) Ping(ctx context.Context) error {
	if err := m.backend.Ping(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storage backend unavailable")
	}
	return nil
}

// Open restores the session's state. Concurrent opens of the same id share
// one load.
func (m *Manager) Open(ctx context.Context, sessionID string) (*Session, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if len(sessionID) > MaxSessionIDLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is too long")
	}

	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := m.group.Do(sessionID, func() (any, error) {
		return m.load(loadCtx, sessionID), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}

func (m *Manager) load(ctx context.Context, sessionID string) *Session {
	ctx = m.logg.WithSessionID(ctx, sessionID)
	store := m.backend.Open(sessionID)

	session := &Session{
		ID:       sessionID,
		Cart:     cart.New(ctx, m.catalog, store, cart.WithLogger(m.logg)),
		Wishlist: wishlist.New(ctx, m.catalog, store, m.logg),
		Recent:   recent.New(ctx, m.catalog, store, m.logg),
		Compare:  compare.New(ctx, m.catalog, store, m.logg),
		Theme:    theme.New(ctx, store, m.logg),
		metrics:  m.metrics,
	}
	session.Cart.Subscribe(m.cartObserver(sessionID))
	m.metrics.IncSessionsOpened()
	return session
}

// cartObserver logs against the session only. The loading request's ctx is
// shared by every caller of the singleflight result, so its fields are not
// reused here.
func (m *Manager) cartObserver(sessionID string) func(cart.Event) {
	ctx := m.logg.WithSessionID(context.Background(), sessionID)
	return func(e cart.Event) {
		subtotal, _ := e.Subtotal.Float64()
		m.metrics.ObserveCartMutation(e.Op, subtotal)
		m.logg.Debug(m.logg.WithFields(ctx, map[string]any{
			"op":         e.Op,
			"item_count": e.ItemCount,
			"subtotal":   e.Subtotal.StringFixed(2),
		}), "cart updated")
	}
}
