package storage

import (
	"context"
	"database/sql"

	"github.com/Veraticus/context-lens/internal/model"
)

// GetUser returns the stored profile, or nil when none exists.
func (s *SQLiteStorage) GetUser(ctx context.Context) (*model.UserProfile, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	data, ok, err := s.getValue(ctx, s.db, userKey)
	if err != nil || !ok {
		return nil, err
	}
	return s.codec.decodeProfile(data)
}

// SaveUser overwrites any existing profile.
func (s *SQLiteStorage) SaveUser(ctx context.Context, profile *model.UserProfile) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	data, err := s.codec.encodeProfile(profile)
	if err != nil {
		return err
	}
	return s.putValue(ctx, s.db, userKey, data)
}

// ClearUser removes the profile and the history together.
func (s *SQLiteStorage) ClearUser(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.deleteValue(ctx, tx, userKey); err != nil {
			return err
		}
		return s.deleteValue(ctx, tx, historyKey)
	})
}

// ClearProfile removes only the profile and leaves the history alone.
func (s *SQLiteStorage) ClearProfile(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return s.deleteValue(ctx, s.db, userKey)
}
