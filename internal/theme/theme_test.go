package theme

import (
	"context"
	"errors"
	"testing"

	"github.com/gamevault/storefront-backend/internal/storage"
	pkgerrors "github.com/gamevault/storefront-backend/pkg/errors"
)

func TestSystemPreferenceWhenUnset(t *testing.T) {
	t.Parallel()
	s := New(context.Background(), storage.NewMemoryStore(), nil)

	if _, ok := s.Preference(); ok {
		t.Fatal("expected no explicit preference")
	}
	if s.Resolve(Dark) != Dark || s.Resolve(Light) != Light || s.Resolve("") != Light {
		t.Fatal("unset theme should follow the system preference")
	}
}

func TestSetToggleReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := storage.NewMemoryStore()
	s := New(ctx, store, nil)

	if _, err := s.Set(ctx, "sepia"); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if got, err := s.Set(ctx, " DARK "); err != nil || got != Dark {
		t.Fatalf("expected dark, got %q (%v)", got, err)
	}
	if raw, _ := store.Get(ctx, storage.KeyTheme); raw != `"dark"` {
		t.Fatalf("expected persisted dark, got %q", raw)
	}
	if s.Resolve(Light) != Dark {
		t.Fatal("explicit choice should win over system preference")
	}

	if got := s.Toggle(ctx, Light); got != Light {
		t.Fatalf("expected toggle to light, got %q", got)
	}

	s.Reset(ctx)
	if _, ok := s.Preference(); ok {
		t.Fatal("expected preference cleared")
	}
	if _, err := store.Get(ctx, storage.KeyTheme); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected theme key removed, got %v", err)
	}

	if got := s.Toggle(ctx, Dark); got != Light {
		t.Fatalf("toggle from system dark should choose light, got %q", got)
	}
}

func TestRestore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := storage.NewMemoryStore()
	_ = store.Set(ctx, storage.KeyTheme, `"light"`)

	if got, ok := New(ctx, store, nil).Preference(); !ok || got != Light {
		t.Fatalf("expected light restored, got %q", got)
	}

	_ = store.Set(ctx, storage.KeyTheme, `"neon"`)
	if _, ok := New(ctx, store, nil).Preference(); ok {
		t.Fatal("invalid theme should be discarded")
	}
	if _, err := store.Get(ctx, storage.KeyTheme); !errors.Is(err, storage.ErrNotFound) {
		t.Fatal("invalid theme should be deleted")
	}
}

func TestRestoreAcceptsBareValue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := storage.NewMemoryStore()
	_ = store.Set(ctx, storage.KeyTheme, "dark")

	if got, ok := New(ctx, store, nil).Preference(); !ok || got != Dark {
		t.Fatalf("expected bare dark accepted, got %q", got)
	}
}
