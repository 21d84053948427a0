package analyses

import (
	"github.com/goccy/go-json"

	"github.com/Veraticus/context-lens/internal/model"
)

// Builder constructs an analysis response field by field.
type Builder interface {
	WithIssue(issue string) Builder
	WithImportance(importance string) Builder
	WithCauses(causes ...string) Builder
	WithSteps(steps ...string) Builder
	WithEstimate(priceRange, timeEstimate, currency string) Builder
	WithConfidence(score int) Builder
	WithSafetyWarning(warning string) Builder
	WithProductQuery(query string) Builder
	WithSource(uri, title string) Builder

	// Build returns the response. RawText holds the JSON the model would have sent.
	Build() model.FullAnalysisResponse
}

type analysisBuilder struct {
	result  model.AnalysisResult
	sources []model.GroundingSource
}

// NewBuilder starts a decoded analysis of objectName with plausible defaults.
func NewBuilder(objectName string) Builder {
	return &analysisBuilder{
		result: model.AnalysisResult{
			ObjectName:      objectName,
			IssueDetected:   "Visible damage",
			Importance:      "The object may stop working",
			LikelyCauses:    []string{"Wear and tear"},
			Steps:           []string{"Inspect the damaged part", "Replace it"},
			Estimation:      model.Estimation{PriceRange: "20-50 USD", TimeEstimate: "30 minutes", Currency: "USD"},
			ConfidenceScore: 80,
		},
		sources: []model.GroundingSource{},
	}
}

func (b *analysisBuilder) WithIssue(issue string) Builder {
	b.result.IssueDetected = issue
	return b
}

func (b *analysisBuilder) WithImportance(importance string) Builder {
	b.result.Importance = importance
	return b
}

func (b *analysisBuilder) WithCauses(causes ...string) Builder {
	b.result.LikelyCauses = causes
	return b
}

func (b *analysisBuilder) WithSteps(steps ...string) Builder {
	b.result.Steps = steps
	return b
}

func (b *analysisBuilder) WithEstimate(priceRange, timeEstimate, currency string) Builder {
	b.result.Estimation = model.Estimation{PriceRange: priceRange, TimeEstimate: timeEstimate, Currency: currency}
	return b
}

func (b *analysisBuilder) WithConfidence(score int) Builder {
	b.result.ConfidenceScore = model.Score(score)
	return b
}

func (b *analysisBuilder) WithSafetyWarning(warning string) Builder {
	b.result.SafetyWarning = &warning
	return b
}

func (b *analysisBuilder) WithProductQuery(query string) Builder {
	b.result.ProductSearchQuery = &query
	return b
}

func (b *analysisBuilder) WithSource(uri, title string) Builder {
	b.sources = append(b.sources, model.GroundingSource{URI: uri, Title: title})
	return b
}

func (b *analysisBuilder) Build() model.FullAnalysisResponse {
	result := b.result
	result.LikelyCauses = append([]string(nil), b.result.LikelyCauses...)
	result.Steps = append([]string(nil), b.result.Steps...)

	raw, err := json.Marshal(result)
	if err != nil {
		panic("analyses: encode fixture: " + err.Error())
	}

	return model.FullAnalysisResponse{
		Data:             &result,
		RawText:          string(raw),
		GroundingSources: append([]model.GroundingSource{}, b.sources...),
	}
}
