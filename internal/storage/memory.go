package storage

import (
	"context"
	"sync"
)

// MemoryBackend keeps every session in process memory.
type MemoryBackend struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{sessions: make(map[string]map[string]string)}
}

func (b *MemoryBackend) Name() string { return "memory" }

func (b *MemoryBackend) Ping(context.Context) error { return nil }

// Open returns a view of sessionID's entries.
func (b *MemoryBackend) Open(sessionID string) Store {
	return &MemoryStore{backend: b, sessionID: sessionID}
}

// MemoryStore is a session view over a MemoryBackend.
type MemoryStore struct {
	backend   *MemoryBackend
	sessionID string
}

// NewMemoryStore returns a standalone in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{backend: NewMemoryBackend(), sessionID: "local"}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.backend.mu.RLock()
	defer s.backend.mu.RUnlock()
	value, ok := s.backend.sessions[s.sessionID][key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	entries, ok := s.backend.sessions[s.sessionID]
	if !ok {
		entries = make(map[string]string)
		s.backend.sessions[s.sessionID] = entries
	}
	entries[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	entries, ok := s.backend.sessions[s.sessionID]
	if !ok {
		return nil
	}
	delete(entries, key)
	if len(entries) == 0 {
		delete(s.backend.sessions, s.sessionID)
	}
	return nil
}
