package storage

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/Veraticus/context-lens/internal/model"
)

// GetHistory returns the stored history, most recent first.
// A missing key yields an empty slice.
func (s *SQLiteStorage) GetHistory(ctx context.Context) ([]model.HistoryItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.getHistoryTx(ctx, s.db)
}

func (s *SQLiteStorage) getHistoryTx(ctx context.Context, q queryable) ([]model.HistoryItem, error) {
	data, ok, err := s.getValue(ctx, q, historyKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.HistoryItem{}, nil
	}
	return s.codec.decodeHistory(data)
}

func (s *SQLiteStorage) putHistoryTx(ctx context.Context, q queryable, items []model.HistoryItem) error {
	data, err := s.codec.encodeHistory(items)
	if err != nil {
		return err
	}
	return s.putValue(ctx, q, historyKey, data)
}

// AddToHistory records a finished analysis. The new item is prepended and the
// history is truncated to model.MaxHistoryItems before being written back.
func (s *SQLiteStorage) AddToHistory(ctx context.Context, imagePreview, note string, result model.FullAnalysisResponse) (model.HistoryItem, error) {
	if err := validateContext(ctx); err != nil {
		return model.HistoryItem{}, err
	}

	item := model.HistoryItem{
		ID:           s.newID(),
		Timestamp:    s.now(),
		ImagePreview: imagePreview,
		Note:         note,
		Result:       result,
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		existing, err := s.getHistoryTx(ctx, tx)
		if err != nil {
			return err
		}

		updated := make([]model.HistoryItem, 0, len(existing)+1)
		updated = append(updated, item)
		updated = append(updated, existing...)
		if len(updated) > model.MaxHistoryItems {
			slog.Debug("Evicting oldest history items",
				"evicted", len(updated)-model.MaxHistoryItems)
			updated = updated[:model.MaxHistoryItems]
		}

		return s.putHistoryTx(ctx, tx, updated)
	})
	if err != nil {
		return model.HistoryItem{}, err
	}

	return item, nil
}

// DeleteHistoryItem removes the item with the given id and returns the
// remaining history. Unknown ids leave the history unchanged.
func (s *SQLiteStorage) DeleteHistoryItem(ctx context.Context, id string) ([]model.HistoryItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var remaining []model.HistoryItem
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		existing, err := s.getHistoryTx(ctx, tx)
		if err != nil {
			return err
		}

		remaining = make([]model.HistoryItem, 0, len(existing))
		for _, item := range existing {
			if item.ID != id {
				remaining = append(remaining, item)
			}
		}

		return s.putHistoryTx(ctx, tx, remaining)
	})
	if err != nil {
		return nil, err
	}

	return remaining, nil
}

// ClearHistory removes every history item and leaves the profile alone.
func (s *SQLiteStorage) ClearHistory(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return s.deleteValue(ctx, s.db, historyKey)
}
