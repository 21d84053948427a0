// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/context-lens/internal/model"
)

// Store defines the contract for on-device persistence of the profile and
// the capped analysis history.
type Store interface {
	// Profile operations
	GetUser(ctx context.Context) (*model.UserProfile, error)
	SaveUser(ctx context.Context, profile *model.UserProfile) error
	ClearUser(ctx context.Context) error
	ClearProfile(ctx context.Context) error

	// History operations
	GetHistory(ctx context.Context) ([]model.HistoryItem, error)
	AddToHistory(ctx context.Context, imagePreview, note string, result model.FullAnalysisResponse) (model.HistoryItem, error)
	DeleteHistoryItem(ctx context.Context, id string) ([]model.HistoryItem, error)
	ClearHistory(ctx context.Context) error

	Close() error
}

// AnalysisRequest is one image to diagnose.
type AnalysisRequest struct {
	// Data is the base64-encoded image without any data-URI prefix.
	Data     string
	MIMEType string
	// Note is an optional free-text hint from the user.
	Note     string
	Currency string
}

// Analyzer sends one multimodal request to the hosted model.
// Undecodable model output is not an error: it comes back with Data unset.
type Analyzer interface {
	AnalyzeImage(ctx context.Context, req AnalysisRequest) (model.FullAnalysisResponse, error)
}
