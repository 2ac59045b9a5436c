package storage

import (
	"context"
	"errors"
)

// Session keys persisted per storefront session.
const (
	KeyCart            = "cart"
	KeyWishlist        = "wishlist"
	KeyRecentlyViewed  = "recentlyViewed"
	KeyAppliedDiscount = "appliedDiscount"
	KeyTheme           = "theme"
	KeyCompareList     = "compareList"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("storage: key not found")

// Store is a string-keyed store of JSON documents scoped to a single session.
// Writes replace the whole value; concurrent writers race with last-writer-wins.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Backend hands out session-scoped stores.
type Backend interface {
	Open(sessionID string) Store
	Ping(ctx context.Context) error
	Name() string
}
