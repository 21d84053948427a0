package model

import "time"

// MaxHistoryItems caps the persisted history; the oldest entry is evicted first.
const MaxHistoryItems = 10

// HistoryItem is one persisted past analysis. Items are never mutated after creation.
type HistoryItem struct {
	Timestamp    time.Time            `json:"timestamp"`
	ID           string               `json:"id"`
	ImagePreview string               `json:"imagePreview"`
	Note         string               `json:"note"`
	Result       FullAnalysisResponse `json:"result"`
}

// Title is the short label used in history listings.
func (h HistoryItem) Title() string {
	if h.Result.Data != nil && h.Result.Data.ObjectName != "" {
		return h.Result.Data.ObjectName
	}
	return "Unknown Object"
}

// FindHistoryItem returns the item with the given id.
func FindHistoryItem(items []HistoryItem, id string) (HistoryItem, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return HistoryItem{}, false
}
