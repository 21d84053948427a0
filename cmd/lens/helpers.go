package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/Veraticus/context-lens/internal/app"
	"github.com/Veraticus/context-lens/internal/config"
	"github.com/Veraticus/context-lens/internal/llm"
	"github.com/Veraticus/context-lens/internal/service"
	"github.com/Veraticus/context-lens/internal/storage"
)

// session bundles what a command needs: the loaded controller and its store.
type session struct {
	ctrl  *app.Controller
	store *storage.SQLiteStorage
	cfg   config.Config
}

// openSession loads configuration, opens the store and restores the saved state.
// Options adjust the configuration before anything is built.
func openSession(ctx context.Context, opts ...func(*config.Config)) (*session, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	analyzer, err := createAnalyzer(ctx, cfg)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	ctrl := app.NewController(store, analyzer)
	if err := ctrl.Load(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	return &session{ctrl: ctrl, store: store, cfg: cfg}, nil
}

// Close releases the store.
func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		slog.Warn("Failed to close storage", "error", err)
	}
}

// initStorage opens the database and runs migrations.
func initStorage(ctx context.Context, cfg config.Config) (*storage.SQLiteStorage, error) {
	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath = config.ExpandPath(config.DefaultDatabasePath)
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// createAnalyzer builds the analysis client from the LLM settings.
func createAnalyzer(ctx context.Context, cfg config.Config) (service.Analyzer, error) {
	if cfg.LLM.APIKey == "" {
		slog.Debug("No API key configured; analyses will fail until one is set")
	}

	return llm.NewClient(ctx, llm.Config{
		Provider:  cfg.LLM.Provider,
		APIKey:    cfg.LLM.APIKey,
		Model:     cfg.LLM.Model,
		Endpoint:  cfg.LLM.Endpoint,
		Grounding: cfg.LLM.Grounding,
	})
}

// printLine writes one line of command output.
func printLine(w io.Writer, s string) error {
	if _, err := fmt.Fprintln(w, s); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
