// Package testutil provides shared test helpers: an isolated, migrated store
// and ways to seed it with a profile and history.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/context-lens/internal/model"
	"github.com/Veraticus/context-lens/internal/storage"
)

// TestDB is a migrated in-memory store scoped to one test.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// Entry is one history item to seed.
type Entry struct {
	Note    string
	Preview string
	Result  model.FullAnalysisResponse
}

// TestDBOptions configures SetupTestDBWithOptions.
type TestDBOptions struct {
	User           *model.UserProfile
	StorageOptions []storage.Option
	// History is seeded oldest first, so the last entry ends up on top.
	History        []Entry
	SkipMigrations bool
}

// SetupTestDB creates an empty migrated store that is closed when the test ends.
//
// Example:
//
//	db := testutil.SetupTestDB(t)
//	ctrl := app.NewController(db.Storage, analyzer)
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{})
}

// SetupTestDBWithOptions creates a store and seeds it.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:", opts.StorageOptions...)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	db := &TestDB{Storage: store, t: t}
	ctx := context.Background()

	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	if opts.User != nil {
		if err := store.SaveUser(ctx, opts.User); err != nil {
			t.Fatalf("failed to seed user %q: %v", opts.User.Username, err)
		}
	}

	for _, entry := range opts.History {
		db.MustAddHistory(entry)
	}

	return db
}

// MustLogin saves a profile or fails the test.
func (db *TestDB) MustLogin(username, currency string) *model.UserProfile {
	db.t.Helper()

	profile, err := model.NewUserProfile(username, currency, time.Now())
	if err != nil {
		db.t.Fatalf("invalid test profile: %v", err)
	}
	if err := db.Storage.SaveUser(context.Background(), profile); err != nil {
		db.t.Fatalf("failed to save user: %v", err)
	}
	return profile
}

// MustAddHistory appends one analysis to history or fails the test.
func (db *TestDB) MustAddHistory(entry Entry) model.HistoryItem {
	db.t.Helper()

	preview := entry.Preview
	if preview == "" {
		preview = "data:image/png;base64,iVBORw0KGgo="
	}
	item, err := db.Storage.AddToHistory(context.Background(), preview, entry.Note, entry.Result)
	if err != nil {
		db.t.Fatalf("failed to seed history: %v", err)
	}
	return item
}

// MustHistory reads the stored history or fails the test.
func (db *TestDB) MustHistory() []model.HistoryItem {
	db.t.Helper()

	items, err := db.Storage.GetHistory(context.Background())
	if err != nil {
		db.t.Fatalf("failed to read history: %v", err)
	}
	return items
}
