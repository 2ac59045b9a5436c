package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed marks a persisted value that could not be decoded.
var ErrMalformed = errors.New("storage: malformed value")

// ReadJSON decodes key into dst. It returns ErrNotFound for absent keys and
// an error wrapping ErrMalformed when the stored document does not parse.
func ReadJSON(ctx context.Context, s Store, key string, dst any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
	}
	return nil
}

// WriteJSON encodes v and stores it under key.
func WriteJSON(ctx context.Context, s Store, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return s.Set(ctx, key, string(payload))
}
