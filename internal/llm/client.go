package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/context-lens/internal/service"
)

// DefaultModel is the hosted model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Config holds the settings for the analysis client.
type Config struct {
	Provider string
	APIKey   string
	Model    string
	// Endpoint overrides the API base URL, e.g. for a proxy or a test server.
	Endpoint string
	// Grounding enables the web search tool; responses then carry citations.
	Grounding bool
}

// NewClient creates an Analyzer for the configured provider. A missing API key
// is not an error here: every analysis call fails fast with
// common.ErrMissingCredential instead, so commands that never analyze still work.
func NewClient(ctx context.Context, cfg Config) (service.Analyzer, error) {
	switch strings.ToLower(cfg.Provider) {
	case "gemini", "":
		return newGeminiClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
