package llm

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-json"

	"github.com/Veraticus/context-lens/internal/model"
)

var (
	errEmptyResponse = errors.New("empty model response")
	errNoJSONObject  = errors.New("no JSON object found in response")

	fencePattern = regexp.MustCompile("```(?:json|JSON)?[ \t]*\\r?\\n?")
)

// decodeAnalysis turns model text into an AnalysisResult. Text that is a JSON
// object is decoded directly; anything else goes through extractJSONObject.
func decodeAnalysis(text string) (*model.AnalysisResult, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, errEmptyResponse
	}

	if strings.HasPrefix(trimmed, "{") {
		var result model.AnalysisResult
		if err := json.Unmarshal([]byte(trimmed), &result); err == nil {
			return &result, nil
		}
	}

	candidate, ok := extractJSONObject(trimmed)
	if !ok {
		return nil, errNoJSONObject
	}

	var result model.AnalysisResult
	if err := json.Unmarshal([]byte(candidate), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	return &result, nil
}

// extractJSONObject strips code fences and returns the text between the first
// '{' and the last '}'.
func extractJSONObject(text string) (string, bool) {
	cleaned := strings.TrimSpace(cleanMarkdownWrapper(text))

	start := strings.IndexByte(cleaned, '{')
	end := strings.LastIndexByte(cleaned, '}')
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return cleaned[start : end+1], true
}

// cleanMarkdownWrapper removes ```json and ``` fence markers.
func cleanMarkdownWrapper(text string) string {
	return fencePattern.ReplaceAllString(text, "")
}
