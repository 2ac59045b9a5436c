package recent

import (
	"context"
	"reflect"
	"testing"

	"github.com/gamevault/storefront-backend/internal/catalog"
	"github.com/gamevault/storefront-backend/internal/storage"
)

func TestRecordDedupesAndCaps(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := New(ctx, catalog.Default(), storage.NewMemoryStore(), nil)

	for id := int64(1); id <= 12; id++ {
		r.Record(ctx, id)
	}
	r.Record(ctx, 5)

	want := []int64{5, 12, 11, 10, 9, 8, 7, 6, 4, 3}
	if got := r.IDs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if r.Record(ctx, 99) {
		t.Fatal("unknown product should not be recorded")
	}
}

func TestProductsLimitAndPersistence(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := storage.NewMemoryStore()
	r := New(ctx, catalog.Default(), store, nil)
	r.Record(ctx, 3)
	r.Record(ctx, 8)

	reloaded := New(ctx, catalog.Default(), store, nil)
	products := reloaded.Products(1)
	if len(products) != 1 || products[0].ID != 8 {
		t.Fatalf("expected most recent product 8, got %+v", products)
	}
	if got := len(reloaded.Products(0)); got != 2 {
		t.Fatalf("expected full history, got %d", got)
	}
}

func TestProductsSkipsUnknownAndMalformedResets(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := storage.NewMemoryStore()
	_ = store.Set(ctx, storage.KeyRecentlyViewed, "[404, 2]")

	r := New(ctx, catalog.Default(), store, nil)
	products := r.Products(5)
	if len(products) != 1 || products[0].ID != 2 {
		t.Fatalf("expected unknown ids skipped, got %+v", products)
	}

	_ = store.Set(ctx, storage.KeyRecentlyViewed, `{"bad":true}`)
	r = New(ctx, catalog.Default(), store, nil)
	if len(r.IDs()) != 0 {
		t.Fatal("malformed history should restore empty")
	}
}
