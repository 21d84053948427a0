package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/context-lens/internal/common"
	"github.com/Veraticus/context-lens/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Ensure SQLiteStorage satisfies the store contract the controller consumes.
var _ service.Store = (*SQLiteStorage)(nil)

// SQLiteStorage implements service.Store on a two-key SQLite table.
type SQLiteStorage struct {
	db     *sql.DB
	codec  *codec
	now    func() time.Time
	newID  func() string
	dbPath string
}

// Option customizes a SQLiteStorage.
type Option func(*SQLiteStorage)

// WithClock replaces the time source used for history timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStorage) {
		s.now = now
	}
}

// WithIDGenerator replaces the history id generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *SQLiteStorage) {
		s.newID = newID
	}
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string, opts ...Option) (*SQLiteStorage, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("%w: empty database path", common.ErrStorageUnavailable)
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, storageErr("create database directory", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, storageErr("open database", err)
	}

	// A single connection keeps :memory: databases alive across calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, storageErr("ping database", err)
	}

	c, err := newCodec()
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
		codec:  c,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Path returns the database location.
func (s *SQLiteStorage) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	s.codec.close()
	return s.db.Close()
}

// queryable is satisfied by both *sql.DB and *sql.Tx.
type queryable interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// withTx runs fn inside a transaction and commits when it returns nil.
func (s *SQLiteStorage) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit transaction", err)
	}
	return nil
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", common.ErrStorageUnavailable, op, err)
}
