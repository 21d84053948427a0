// Package app owns the application state and the transitions the presentation
// layer triggers: login, image selection, analysis and history navigation.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/context-lens/internal/common"
	"github.com/Veraticus/context-lens/internal/model"
	"github.com/Veraticus/context-lens/internal/service"
)

// FailureMessage is shown for every failed analysis, whatever the cause.
const FailureMessage = "Failed to analyze the image. Please ensure you have a valid API key and try again."

// Controller serializes all state changes. At most one analysis is in flight.
type Controller struct {
	store    service.Store
	analyzer service.Analyzer
	now      func() time.Time
	cancel   context.CancelFunc
	state    State
	// generation identifies the outstanding submission; a settlement whose
	// generation no longer matches was canceled and is dropped.
	generation uint64
	mu         sync.Mutex
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// NewController creates a controller over the given store and analyzer.
func NewController(store service.Store, analyzer service.Analyzer, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		analyzer: analyzer,
		now:      time.Now,
		state:    State{History: []model.HistoryItem{}},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Load reads the persisted profile and, when one exists, its history. An
// unavailable store degrades to an empty, logged-out state.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := c.store.GetUser(ctx)
	if err != nil {
		if !errors.Is(err, common.ErrStorageUnavailable) {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		common.LogWarn("Profile unavailable, starting logged out", common.Fields{"error": err.Error()})
		user = nil
	}

	c.state.User = user
	c.state.History = []model.HistoryItem{}
	if user != nil {
		c.state.History = c.loadHistory(ctx)
	}

	slog.Debug("Loaded application state",
		"logged_in", user != nil,
		"history_items", len(c.state.History))
	return nil
}

// loadHistory reads history, degrading to empty on storage failure.
func (c *Controller) loadHistory(ctx context.Context) []model.HistoryItem {
	items, err := c.store.GetHistory(ctx)
	if err != nil {
		common.LogWarn("History unavailable, showing none", common.Fields{"error": err.Error()})
		return []model.HistoryItem{}
	}
	return items
}

// guard refuses a transition while an analysis is outstanding. Callers hold mu.
func (c *Controller) guard() error {
	if c.state.Status == StatusRequesting {
		return common.ErrAnalysisInFlight
	}
	return nil
}

// Login creates and persists the profile, then loads its history.
func (c *Controller) Login(ctx context.Context, username, currency string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guard(); err != nil {
		return err
	}

	profile, err := model.NewUserProfile(username, currency, c.now())
	if err != nil {
		return err
	}
	if err := c.store.SaveUser(ctx, profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	c.state.User = profile
	c.state.History = c.loadHistory(ctx)

	slog.Info("Logged in", "username", profile.Username, "currency", profile.Currency)
	return nil
}

// Logout removes the profile together with its history and resets the screen.
func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guard(); err != nil {
		return err
	}

	err := c.store.ClearUser(ctx)

	c.state = State{History: []model.HistoryItem{}}

	if err != nil {
		return fmt.Errorf("failed to clear profile: %w", err)
	}
	slog.Info("Logged out")
	return nil
}

// SelectFile loads an image from disk as the current selection.
func (c *Controller) SelectFile(path string) error {
	image, err := LoadImageFile(path)
	if err != nil {
		return err
	}
	return c.selectImage(image)
}

// SelectImage uses in-memory image bytes as the current selection.
func (c *Controller) SelectImage(name string, data []byte) error {
	image, err := NewImageSelection(name, data)
	if err != nil {
		return err
	}
	return c.selectImage(image)
}

func (c *Controller) selectImage(image *ImageSelection) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guard(); err != nil {
		return err
	}

	c.state.Image = image
	c.state.Result = nil
	c.state.Error = ""
	c.state.Status = StatusIdle
	c.state.ActiveHistoryID = ""
	return nil
}

// ClearSelection drops the image, note and result.
func (c *Controller) ClearSelection() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guard(); err != nil {
		return err
	}

	c.state.Image = nil
	c.state.Note = ""
	c.state.Result = nil
	c.state.Error = ""
	c.state.Status = StatusIdle
	c.state.ActiveHistoryID = ""
	return nil
}

// SetNote sets the free-text hint sent with the next analysis.
func (c *Controller) SetNote(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guard(); err != nil {
		return err
	}
	c.state.Note = text
	return nil
}

// Submit analyzes the selected image and records the outcome in history.
// It blocks until the request settles or is canceled.
func (c *Controller) Submit(ctx context.Context) (model.FullAnalysisResponse, error) {
	c.mu.Lock()
	if err := c.guard(); err != nil {
		c.mu.Unlock()
		return model.FullAnalysisResponse{}, err
	}
	if c.state.User == nil {
		c.mu.Unlock()
		return model.FullAnalysisResponse{}, common.ErrNotLoggedIn
	}
	if c.state.Image == nil {
		c.mu.Unlock()
		return model.FullAnalysisResponse{}, common.ErrNoImageSelected
	}

	image := *c.state.Image
	note := strings.TrimSpace(c.state.Note)
	req := service.AnalysisRequest{
		Data:     image.Base64(),
		MIMEType: image.MIMEType,
		Note:     note,
		Currency: c.state.User.Currency,
	}

	reqCtx, cancel := context.WithCancel(ctx)
	c.generation++
	generation := c.generation
	c.cancel = cancel
	c.state.Status = StatusRequesting
	c.state.RequestStarted = c.now()
	c.state.Result = nil
	c.state.Error = ""
	c.state.ActiveHistoryID = ""
	c.mu.Unlock()

	slog.Info("Submitting analysis", "file", image.FileName, "mime_type", image.MIMEType, "has_note", note != "")

	resp, err := c.analyzer.AnalyzeImage(reqCtx, req)
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		slog.Debug("Discarding settlement of canceled analysis", "generation", generation)
		return model.FullAnalysisResponse{}, common.ErrAnalysisCanceled
	}
	c.cancel = nil

	if err != nil {
		common.LogError(err, "Analysis failed", common.Fields{"file": image.FileName})
		c.state.Status = StatusFailed
		c.state.Error = FailureMessage
		return model.FullAnalysisResponse{}, common.NewUserError(FailureMessage, err)
	}

	c.state.Result = &resp
	c.state.Status = statusFor(resp)
	c.recordHistory(context.WithoutCancel(ctx), image.DataURI, note, resp)

	slog.Info("Analysis complete", "status", c.state.Status, "sources", len(resp.GroundingSources))
	return resp, nil
}

// recordHistory persists a settled analysis. Callers hold mu.
func (c *Controller) recordHistory(ctx context.Context, preview, note string, resp model.FullAnalysisResponse) {
	item, err := c.store.AddToHistory(ctx, preview, note, resp)
	if err != nil {
		common.LogWarn("Failed to save analysis to history", common.Fields{"error": err.Error()})
		return
	}
	c.state.ActiveHistoryID = item.ID

	items, err := c.store.GetHistory(ctx)
	if err != nil {
		common.LogWarn("Failed to reload history", common.Fields{"error": err.Error()})
		items = append([]model.HistoryItem{item}, c.state.History...)
		if len(items) > model.MaxHistoryItems {
			items = items[:model.MaxHistoryItems]
		}
	}
	c.state.History = items
}

// Cancel abandons the outstanding analysis. It reports whether one was running.
func (c *Controller) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Status != StatusRequesting {
		return false
	}

	c.generation++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.state.Status = StatusIdle
	c.state.Error = ""
	slog.Info("Analysis canceled")
	return true
}

// SelectHistoryItem restores a past analysis: its preview, note and result.
func (c *Controller) SelectHistoryItem(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guard(); err != nil {
		return err
	}

	item, ok := model.FindHistoryItem(c.state.History, id)
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrHistoryNotFound, id)
	}

	result := item.Result
	c.state.Image = &ImageSelection{
		FileName: item.Title(),
		MIMEType: MIMETypeFromDataURI(item.ImagePreview),
		DataURI:  item.ImagePreview,
		Restored: true,
	}
	c.state.Note = item.Note
	c.state.Result = &result
	c.state.Status = statusFor(result)
	c.state.Error = ""
	c.state.ActiveHistoryID = item.ID
	return nil
}

// DeleteHistoryItem removes one history entry.
func (c *Controller) DeleteHistoryItem(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guard(); err != nil {
		return err
	}

	_, known := model.FindHistoryItem(c.state.History, id)

	items, err := c.store.DeleteHistoryItem(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete history item: %w", err)
	}
	c.state.History = items

	if c.state.ActiveHistoryID == id {
		c.state.ActiveHistoryID = ""
	}
	if !known {
		return fmt.Errorf("%w: %s", common.ErrHistoryNotFound, id)
	}
	return nil
}

// ClearHistory removes every history entry and keeps the profile.
func (c *Controller) ClearHistory(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guard(); err != nil {
		return err
	}

	if err := c.store.ClearHistory(ctx); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	c.state.History = []model.HistoryItem{}
	c.state.ActiveHistoryID = ""
	return nil
}
