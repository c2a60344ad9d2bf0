package kvstore

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	apperrors "github.com/allisson/contacts/internal/errors"
)

// BadgerStore implements Store over an embedded badger database. This is
// the default backend: no external services, a single data directory.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens a badger database at the given directory.
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open badger database")
	}

	return &BadgerStore{db: db}, nil
}

// NewInMemoryBadgerStore opens a badger database that lives entirely in
// memory. Used by tests and throwaway sessions.
func NewInMemoryBadgerStore() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open in-memory badger database")
	}

	return &BadgerStore{db: db}, nil
}

// Get retrieves the value stored under key.
func (s *BadgerStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.Wrap(err, "failed to read key")
	}

	return string(value), nil
}

// Set stores value under key, replacing any previous value.
func (s *BadgerStore) Set(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to write key")
	}

	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *BadgerStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to delete key")
	}

	return nil
}

// Ping reports whether the database is usable.
func (s *BadgerStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return apperrors.New("badger database is closed")
	}
	return nil
}

// Close flushes and closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
