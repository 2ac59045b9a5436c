package storefront

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/gamevault/storefront-backend/internal/catalog"
	"github.com/gamevault/storefront-backend/internal/storage"
	"github.com/gamevault/storefront-backend/internal/theme"
	pkgerrors "github.com/gamevault/storefront-backend/pkg/errors"
	"github.com/gamevault/storefront-backend/pkg/logger"
	"github.com/gamevault/storefront-backend/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := NewManager(ManagerParams{
		Backend: storage.NewMemoryBackend(),
		Catalog: catalog.Default(),
		Metrics: metrics.NewStorefrontMetrics(reg),
	})
	require.NoError(t, err)
	return m, reg
}

func TestNewManagerValidatesParams(t *testing.T) {
	_, err := NewManager(ManagerParams{Catalog: catalog.Default()})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	_, err = NewManager(ManagerParams{Backend: storage.NewMemoryBackend()})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestOpenRejectsBadSessionIDs(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.Open(ctx, "   ")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	long := make([]byte, MaxSessionIDLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err = m.Open(ctx, string(long))
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestSessionStatePersistsAcrossOpens(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	s, err := m.Open(ctx, "visitor-1")
	require.NoError(t, err)
	require.True(t, s.Cart.AddItem(ctx, 1, 2, nil))
	s.Wishlist.Add(ctx, 3)
	s.Recent.Record(ctx, 4)
	require.NoError(t, s.Compare.Add(ctx, 5))
	_, err = s.Theme.Set(ctx, "dark")
	require.NoError(t, err)

	again, err := m.Open(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Cart.ItemCount())
	assert.True(t, again.Wishlist.Contains(3))
	assert.Equal(t, []int64{4}, again.Recent.IDs())
	assert.Len(t, again.Compare.Items(), 1)
	pref, ok := again.Theme.Preference()
	assert.True(t, ok)
	assert.Equal(t, theme.Dark, pref)

	other, err := m.Open(ctx, "visitor-2")
	require.NoError(t, err)
	assert.Zero(t, other.Cart.ItemCount(), "sessions must not share state")
}

func TestConcurrentOpensSucceed(t *testing.T) {
	m, reg := newTestManager(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	sessions := make([]*Session, 16)
	for i := range sessions {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := m.Open(ctx, "shared")
			assert.NoError(t, err)
			sessions[i] = s
		}(i)
	}
	wg.Wait()

	for _, s := range sessions {
		require.NotNil(t, s)
		assert.Equal(t, "shared", s.ID)
	}
	opened := counterValue(t, reg, "storefront_sessions_opened_total")
	assert.GreaterOrEqual(t, opened, 1.0)
	assert.LessOrEqual(t, opened, 16.0)
}

func TestCartEventsFeedMetrics(t *testing.T) {
	m, reg := newTestManager(t)
	ctx := context.Background()
	s, err := m.Open(ctx, "metrics")
	require.NoError(t, err)

	s.Cart.AddItem(ctx, 1, 1, nil)
	s.Cart.AddItem(ctx, 2, 1, nil)
	_, ok := s.ApplyDiscount(ctx, "SAVE10")
	require.True(t, ok)
	_, ok = s.ApplyDiscount(ctx, "NOPE")
	require.False(t, ok)
	s.RemoveDiscount(ctx)

	families, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				values[mf.GetName()+"/"+label.GetValue()] = metric.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 2.0, values["storefront_cart_mutations_total/add"])
	assert.Equal(t, 1.0, values["storefront_cart_mutations_total/apply_discount"])
	assert.Equal(t, 1.0, values["storefront_discount_codes_total/applied"])
	assert.Equal(t, 1.0, values["storefront_discount_codes_total/rejected"])
	assert.Equal(t, 1.0, values["storefront_discount_codes_total/removed"])
}

func TestCheckout(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()
	s, err := m.Open(ctx, "checkout")
	require.NoError(t, err)

	result := Checkout(s)
	assert.False(t, result.Ready)
	assert.Equal(t, MessageCartEmpty, result.Message)

	s.Cart.AddItem(ctx, 1, 1, nil)
	s.Cart.AddItem(ctx, 4, 2, nil)
	result = Checkout(s)
	assert.True(t, result.Ready)
	assert.Equal(t, MessageCheckoutPending, result.Message)
	assert.Equal(t, 3, result.ItemCount)
	assert.Equal(t, "227.82", result.Total.StringFixed(2))
}

func TestSaveForLaterMovesToWishlist(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()
	s, err := m.Open(ctx, "later")
	require.NoError(t, err)

	s.Cart.AddItem(ctx, 8, 1, nil)
	assert.True(t, s.SaveForLater(ctx, 8, nil))
	assert.Zero(t, s.Cart.ItemCount())
	assert.True(t, s.Wishlist.Contains(8))
}

func TestPing(t *testing.T) {
	m, _ := newTestManager(t)
	assert.NoError(t, m.Ping(context.Background()))
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestCartEventLogsCarrySessionNotLoadingRequest(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: buf})
	m, err := NewManager(ManagerParams{
		Backend: storage.NewMemoryBackend(),
		Catalog: catalog.Default(),
		Logger:  logg,
	})
	require.NoError(t, err)

	loadCtx := logg.WithRequestID(context.Background(), "req-first")
	sess, err := m.Open(loadCtx, "sess-log")
	require.NoError(t, err)
	buf.Reset()

	laterCtx := logg.WithRequestID(context.Background(), "req-second")
	require.True(t, sess.Cart.AddItem(laterCtx, 1, 1, nil))

	var line string
	for _, l := range strings.Split(buf.String(), "\n") {
		if strings.Contains(l, "cart updated") {
			line = l
		}
	}
	require.NotEmpty(t, line, "expected a cart updated entry in %s", buf.String())
	assert.Contains(t, line, `"session_id":"sess-log"`)
	assert.NotContains(t, line, "req-first")
}
