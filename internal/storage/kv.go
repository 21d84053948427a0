package storage

import (
	"context"
	"database/sql"
	"errors"
)

// Storage keys. Every mutation rewrites the whole value under its key.
const (
	userKey    = "context_lens_user"
	historyKey = "context_lens_history"
)

func (s *SQLiteStorage) getValue(ctx context.Context, q queryable, key string) ([]byte, bool, error) {
	var value []byte
	err := q.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storageErr("read "+key, err)
	}
	return value, true, nil
}

func (s *SQLiteStorage) putValue(ctx context.Context, q queryable, key string, value []byte) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, s.now())
	if err != nil {
		return storageErr("write "+key, err)
	}
	return nil
}

func (s *SQLiteStorage) deleteValue(ctx context.Context, q queryable, key string) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return storageErr("delete "+key, err)
	}
	return nil
}
