package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/Veraticus/context-lens/internal/common"
	"github.com/Veraticus/context-lens/internal/model"
	"github.com/Veraticus/context-lens/internal/service"
)

// geminiClient implements service.Analyzer against the Gemini generateContent API.
type geminiClient struct {
	api       *genai.Client
	apiKey    string
	model     string
	grounding bool
}

// newGeminiClient creates a new Gemini API client.
func newGeminiClient(ctx context.Context, cfg Config) (*geminiClient, error) {
	modelName := strings.TrimSpace(cfg.Model)
	if modelName == "" {
		modelName = DefaultModel
	}
	if !strings.HasPrefix(modelName, "models/") {
		modelName = "models/" + modelName
	}

	client := &geminiClient{
		apiKey:    strings.TrimSpace(cfg.APIKey),
		model:     modelName,
		grounding: cfg.Grounding,
	}

	// Without a key there is nothing to authenticate with; AnalyzeImage
	// reports the missing credential before touching the network.
	if client.apiKey == "" {
		return client, nil
	}

	api, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      client.apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.Endpoint},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	client.api = api

	return client, nil
}

// AnalyzeImage sends one image plus prompt and decodes the structured reply.
func (c *geminiClient) AnalyzeImage(ctx context.Context, req service.AnalysisRequest) (model.FullAnalysisResponse, error) {
	if c.apiKey == "" || c.api == nil {
		return model.FullAnalysisResponse{}, common.ErrMissingCredential
	}
	image, err := validateRequest(&req)
	if err != nil {
		return model.FullAnalysisResponse{}, err
	}

	slog.Debug("Sending analysis request",
		"model", c.model,
		"mime_type", req.MIMEType,
		"image_bytes", len(image),
		"currency", req.Currency,
		"grounding", c.grounding,
		"has_note", req.Note != "")

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, req.MIMEType),
			genai.NewPartFromText(promptText(req.Note)),
		}, genai.RoleUser),
	}

	resp, err := c.api.Models.GenerateContent(ctx, c.model, contents, c.generateConfig(req.Currency))
	if err != nil {
		return model.FullAnalysisResponse{}, transportError(ctx, err)
	}

	text := responseText(resp)
	data, decodeErr := decodeAnalysis(text)
	if decodeErr != nil {
		attrs := []any{"error", decodeErr, "raw_length", len(text)}
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			attrs = append(attrs, "block_reason", string(resp.PromptFeedback.BlockReason))
		}
		slog.Warn("Failed to parse JSON response, falling back to raw text", attrs...)
	}

	return model.FullAnalysisResponse{
		Data:             data,
		GroundingSources: groundingSources(resp),
		RawText:          text,
	}, nil
}

func (c *geminiClient) generateConfig(currency string) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction(currency, c.grounding), genai.RoleUser),
	}

	// The API rejects a response schema combined with the search tool, so a
	// grounded request relies on the described schema and lenient decoding.
	if c.grounding {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	} else {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = analysisSchema(currency)
	}

	return config
}

// validateRequest normalizes req in place and returns the decoded image bytes.
func validateRequest(req *service.AnalysisRequest) ([]byte, error) {
	req.Data = strings.TrimSpace(req.Data)
	if req.Data == "" {
		return nil, fmt.Errorf("%w: empty image data", common.ErrNoImageSelected)
	}
	if strings.HasPrefix(req.Data, "data:") {
		return nil, fmt.Errorf("%w: image data must be raw base64 without a data URI prefix", common.ErrUnsupportedImage)
	}
	if !strings.HasPrefix(req.MIMEType, "image/") {
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedImage, req.MIMEType)
	}

	image, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: image data is not valid base64: %w", common.ErrUnsupportedImage, err)
	}

	req.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if req.Currency == "" {
		req.Currency = model.DefaultCurrency
	}
	return image, nil
}

// responseText joins the non-thought text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil && !part.Thought {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

// groundingSources collects web citations from the first candidate.
func groundingSources(resp *genai.GenerateContentResponse) []model.GroundingSource {
	sources := []model.GroundingSource{}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return sources
	}

	metadata := resp.Candidates[0].GroundingMetadata
	if metadata == nil {
		return sources
	}

	for _, chunk := range metadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		sources = append(sources, model.GroundingSource{
			URI:   chunk.Web.URI,
			Title: chunk.Web.Title,
		})
	}
	return sources
}

// transportError classifies a failed call as common.ErrTransport, keeping the
// HTTP status when the API returned one.
func transportError(ctx context.Context, err error) error {
	if code, ok := apiErrorCode(err); ok {
		return fmt.Errorf("%w: Gemini API error (status %d): %w", common.ErrTransport, code, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		return fmt.Errorf("%w: %w: %w", common.ErrTransport, ctxErr, err)
	}
	return fmt.Errorf("%w: %w", common.ErrTransport, err)
}

func apiErrorCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}
	return 0, false
}
