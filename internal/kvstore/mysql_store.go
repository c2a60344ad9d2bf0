package kvstore

import (
	"context"
	"database/sql"

	"github.com/allisson/contacts/internal/database"
	apperrors "github.com/allisson/contacts/internal/errors"
)

// MySQLStore implements Store over a MySQL kv_entries table.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore creates a new MySQL-backed store.
func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

// Get retrieves the value stored under key.
func (s *MySQLStore) Get(ctx context.Context, key string) (string, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT value FROM kv_entries WHERE ` + "`key`" + ` = ?`

	var value string
	err := querier.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.Wrap(err, "failed to read key")
	}

	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *MySQLStore) Set(ctx context.Context, key string, value string) error {
	querier := database.GetTx(ctx, s.db)

	query := `INSERT INTO kv_entries (` + "`key`" + `, value)
			  VALUES (?, ?)
			  ON DUPLICATE KEY UPDATE value = VALUES(value), updated_at = NOW()`

	_, err := querier.ExecContext(ctx, query, key, value)
	if err != nil {
		return apperrors.Wrap(err, "failed to write key")
	}

	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *MySQLStore) Delete(ctx context.Context, key string) error {
	querier := database.GetTx(ctx, s.db)

	query := `DELETE FROM kv_entries WHERE ` + "`key`" + ` = ?`

	_, err := querier.ExecContext(ctx, query, key)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete key")
	}

	return nil
}

// Ping reports whether the database is reachable.
func (s *MySQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
