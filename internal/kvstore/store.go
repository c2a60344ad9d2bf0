// Package kvstore provides the key-value text store abstraction the
// application persists through. Values are opaque strings; encryption,
// serialization and record semantics live in the layers above.
package kvstore

import "context"

// Store is a minimal key-value text store.
//
// Implementations must be safe for concurrent use. Get returns
// errors.ErrNotFound (from internal/errors) when the key is absent.
// Delete of an absent key is not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Well-known store drivers.
const (
	DriverBadger     = "badger"
	DriverPostgreSQL = "postgres"
	DriverMySQL      = "mysql"
)
