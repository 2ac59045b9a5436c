package theme

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/gamevault/storefront-backend/internal/storage"
	pkgerrors "github.com/gamevault/storefront-backend/pkg/errors"
	"github.com/gamevault/storefront-backend/pkg/logger"
)

type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// Parse accepts "dark" or "light" in any case.
func Parse(value string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(value))) {
	case Dark:
		return Dark, true
	case Light:
		return Light, true
	default:
		return "", false
	}
}

func (t Theme) opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Store holds an explicit theme choice. No stored choice means the client
// follows its system preference.
type Store struct {
	mu     sync.Mutex
	store  storage.Store
	logg   *logger.Logger
	choice Theme
}

func New(ctx context.Context, store storage.Store, logg *logger.Logger) *Store {
	if logg == nil {
		logg = logger.Nop()
	}
	s := &Store{store: store, logg: logg}

	raw, err := store.Get(ctx, storage.KeyTheme)
	if errors.Is(err, storage.ErrNotFound) {
		return s
	}
	if err != nil {
		logg.Error(ctx, "failed to load theme", err)
		return s
	}
	// bare values written by older clients are accepted alongside JSON strings
	value := raw
	var decoded string
	if json.Unmarshal([]byte(raw), &decoded) == nil {
		value = decoded
	}
	if t, ok := Parse(value); ok {
		s.choice = t
		return s
	}
	logg.Warn(ctx, "discarding invalid theme")
	if err := store.Delete(ctx, storage.KeyTheme); err != nil {
		logg.Error(ctx, "failed to delete theme", err)
	}
	return s
}

// Preference returns the explicit choice, if one was made.
func (s *Store) Preference() (Theme, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.choice, s.choice != ""
}

// Set stores an explicit choice.
func (s *Store) Set(ctx context.Context, value string) (Theme, error) {
	t, ok := Parse(value)
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "theme must be dark or light")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(ctx, t)
	return t, nil
}

// Toggle flips the effective theme and stores the result as an explicit choice.
func (s *Store) Toggle(ctx context.Context, system Theme) Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.resolveLocked(system).opposite()
	s.setLocked(ctx, next)
	return next
}

// Reset forgets the explicit choice.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.choice = ""
	if err := s.store.Delete(ctx, storage.KeyTheme); err != nil {
		s.logg.Error(ctx, "failed to delete theme", err)
	}
}

// Resolve returns the theme to render given the client's system preference.
// An unrecognised system preference resolves to light.
func (s *Store) Resolve(system Theme) Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolveLocked(system)
}

func (s *Store) resolveLocked(system Theme) Theme {
	if s.choice != "" {
		return s.choice
	}
	if system == Dark {
		return Dark
	}
	return Light
}

func (s *Store) setLocked(ctx context.Context, t Theme) {
	s.choice = t
	if err := storage.WriteJSON(ctx, s.store, storage.KeyTheme, t); err != nil {
		s.logg.Error(ctx, "failed to persist theme", err)
	}
}
