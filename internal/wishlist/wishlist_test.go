package wishlist

import (
	"context"
	"testing"

	"github.com/gamevault/storefront-backend/internal/catalog"
	"github.com/gamevault/storefront-backend/internal/storage"
)

func TestToggle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	wl := New(ctx, catalog.Default(), storage.NewMemoryStore(), nil)

	added, ok := wl.Toggle(ctx, 2)
	if !ok || !added {
		t.Fatalf("expected product 2 added, added=%v ok=%v", added, ok)
	}
	if !wl.Contains(2) || wl.Count() != 1 {
		t.Fatal("expected wishlist to contain product 2")
	}
	if item := wl.Items()[0]; item.Name != "Corsair K95 RGB Platinum Gaming Keyboard" || item.Price.String() != "199.99" {
		t.Fatalf("unexpected summary %+v", item)
	}

	added, ok = wl.Toggle(ctx, 2)
	if !ok || added {
		t.Fatalf("expected product 2 removed, added=%v ok=%v", added, ok)
	}
	if wl.Count() != 0 {
		t.Fatal("expected empty wishlist")
	}

	if _, ok := wl.Toggle(ctx, 404); ok {
		t.Fatal("unknown product should be declined")
	}
}

func TestAddIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	wl := New(ctx, catalog.Default(), storage.NewMemoryStore(), nil)

	if !wl.Add(ctx, 6) || !wl.Add(ctx, 6) {
		t.Fatal("expected add to succeed")
	}
	if wl.Count() != 1 {
		t.Fatalf("expected one entry, got %d", wl.Count())
	}
	if !wl.Remove(ctx, 6) || wl.Remove(ctx, 6) {
		t.Fatal("expected remove to report presence")
	}
}

func TestPersistenceAndMalformedReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := storage.NewMemoryStore()

	wl := New(ctx, catalog.Default(), store, nil)
	wl.Add(ctx, 1)
	wl.Add(ctx, 11)

	reloaded := New(ctx, catalog.Default(), store, nil)
	if reloaded.Count() != 2 || !reloaded.Contains(11) {
		t.Fatalf("expected wishlist restored, got %+v", reloaded.Items())
	}

	_ = store.Set(ctx, storage.KeyWishlist, "not-json")
	reset := New(ctx, catalog.Default(), store, nil)
	if reset.Count() != 0 {
		t.Fatal("malformed wishlist should restore empty")
	}
	if raw, _ := store.Get(ctx, storage.KeyWishlist); raw != "[]" {
		t.Fatalf("expected reset to [], got %q", raw)
	}
}
