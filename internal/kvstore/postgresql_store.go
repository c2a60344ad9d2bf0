package kvstore

import (
	"context"
	"database/sql"

	"github.com/allisson/contacts/internal/database"
	apperrors "github.com/allisson/contacts/internal/errors"
)

// PostgreSQLStore implements Store over a PostgreSQL kv_entries table.
type PostgreSQLStore struct {
	db *sql.DB
}

// NewPostgreSQLStore creates a new PostgreSQL-backed store.
func NewPostgreSQLStore(db *sql.DB) *PostgreSQLStore {
	return &PostgreSQLStore{db: db}
}

// Get retrieves the value stored under key.
func (s *PostgreSQLStore) Get(ctx context.Context, key string) (string, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT value FROM kv_entries WHERE key = $1`

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
func (s *PostgreSQLStore) Set(ctx context.Context, key string, value string) error {
	querier := database.GetTx(ctx, s.db)

	query := `INSERT INTO kv_entries (key, value)
			  VALUES ($1, $2)
			  ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

	_, err := querier.ExecContext(ctx, query, key, value)
	if err != nil {
		return apperrors.Wrap(err, "failed to write key")
	}

	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *PostgreSQLStore) Delete(ctx context.Context, key string) error {
	querier := database.GetTx(ctx, s.db)

	query := `DELETE FROM kv_entries WHERE key = $1`

	_, err := querier.ExecContext(ctx, query, key)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete key")
	}

	return nil
}

// Ping reports whether the database is reachable.
func (s *PostgreSQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (s *PostgreSQLStore) Close() error {
	return s.db.Close()
}
