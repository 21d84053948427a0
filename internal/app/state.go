package app

import (
	"time"

	"github.com/Veraticus/context-lens/internal/model"
)

// Status is the phase of the current analysis.
type Status int

// Analysis phases. Decoded, DecodedEmpty and Failed are terminal for one submission.
const (
	StatusIdle Status = iota
	StatusRequesting
	StatusDecoded
	StatusDecodedEmpty
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRequesting:
		return "requesting"
	case StatusDecoded:
		return "decoded"
	case StatusDecodedEmpty:
		return "decoded_empty"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// statusFor maps a settled response to its terminal status.
func statusFor(resp model.FullAnalysisResponse) Status {
	if resp.Decoded() {
		return StatusDecoded
	}
	return StatusDecodedEmpty
}

// ImageSelection is the image currently shown and submitted.
type ImageSelection struct {
	FileName string
	MIMEType string
	// DataURI is the full data URI; it is what gets stored as the history preview.
	DataURI string
	// Restored marks a preview loaded from a history item rather than a file.
	Restored bool
}

// Base64 returns the raw base64 payload for the analysis request.
func (i ImageSelection) Base64() string {
	return StripDataURIPrefix(i.DataURI)
}

// State is everything the presentation layer renders.
type State struct {
	RequestStarted  time.Time
	User            *model.UserProfile
	Image           *ImageSelection
	Result          *model.FullAnalysisResponse
	Note            string
	Error           string
	ActiveHistoryID string
	History         []model.HistoryItem
	Status          Status
}

// LoggedIn reports whether a profile is present.
func (s State) LoggedIn() bool {
	return s.User != nil
}

// Busy reports whether an analysis is outstanding.
func (s State) Busy() bool {
	return s.Status == StatusRequesting
}

// clone copies the pointer fields so callers cannot mutate controller state.
func (s State) clone() State {
	out := s
	if s.User != nil {
		user := *s.User
		out.User = &user
	}
	if s.Image != nil {
		image := *s.Image
		out.Image = &image
	}
	if s.Result != nil {
		result := *s.Result
		out.Result = &result
	}
	out.History = make([]model.HistoryItem, len(s.History))
	copy(out.History, s.History)
	return out
}
