// Package model defines the core data types for context-lens.
package model

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Estimation is the model's cost and time guess, already localized to a currency.
// The values are passed through as text; nothing is converted or checked.
type Estimation struct {
	PriceRange   string `json:"price_range"`
	TimeEstimate string `json:"time_estimate"`
	Currency     string `json:"currency"`
}

// AnalysisResult is the structured diagnostic report produced by the remote model.
// The client only deserializes it and never corrects fields.
type AnalysisResult struct {
	SafetyWarning      *string    `json:"safety_warning"`
	ProductSearchQuery *string    `json:"product_search_query"`
	Estimation         Estimation `json:"estimation"`
	ObjectName         string     `json:"object_name"`
	IssueDetected      string     `json:"issue_detected"`
	Importance         string     `json:"importance"`
	LikelyCauses       []string   `json:"likely_causes"`
	Steps              []string   `json:"steps"`
	ConfidenceScore    Score      `json:"confidence_score"`
}

// Score is a confidence percentage, nominally 0 to 100. The range is not
// enforced. Decoding accepts a JSON number, rounded to the nearest integer,
// or a string holding one, optionally followed by a percent sign.
type Score int

// UnmarshalJSON implements json.Unmarshaler.
func (s *Score) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(unquoted), "%"))
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid confidence score %s", data)
	}
	*s = Score(math.Round(f))
	return nil
}

// GroundingSource is a web citation attached to a grounded response.
type GroundingSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// FullAnalysisResponse is what one analysis returns. Data is nil when the
// model output could not be decoded; RawText is then the only thing to show.
type FullAnalysisResponse struct {
	Data             *AnalysisResult   `json:"data"`
	RawText          string            `json:"rawText,omitempty"`
	GroundingSources []GroundingSource `json:"groundingSources"`
}

// Decoded reports whether structured data is present.
func (r FullAnalysisResponse) Decoded() bool {
	return r.Data != nil
}

// HasSafetyWarning reports whether the model attached a non-empty warning.
func (r *AnalysisResult) HasSafetyWarning() bool {
	return r.SafetyWarning != nil && strings.TrimSpace(*r.SafetyWarning) != ""
}

// ShoppingURL returns a Google Shopping search for the suggested product,
// or an empty string when the model did not suggest one.
func (r *AnalysisResult) ShoppingURL() string {
	if r.ProductSearchQuery == nil || strings.TrimSpace(*r.ProductSearchQuery) == "" {
		return ""
	}
	return "https://www.google.com/search?tbm=shop&q=" + url.QueryEscape(*r.ProductSearchQuery)
}

// FixSearchURL returns a general web search for fixing the identified object.
func (r *AnalysisResult) FixSearchURL() string {
	return "https://www.google.com/search?q=" + url.QueryEscape(r.ObjectName+" fix")
}
