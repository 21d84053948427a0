package llm

import (
	"fmt"

	"google.golang.org/genai"
)

// analysisSchema mirrors model.AnalysisResult for schema-constrained output.
// estimation.currency is pinned to the requested currency code.
func analysisSchema(currency string) *genai.Schema {
	text := func(description string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: description}
	}
	list := func(description string) *genai.Schema {
		return &genai.Schema{
			Type:        genai.TypeArray,
			Description: description,
			Items:       &genai.Schema{Type: genai.TypeString},
		}
	}
	nullable := func(description string) *genai.Schema {
		s := text(description)
		isNullable := true
		s.Nullable = &isNullable
		return s
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"object_name":    text("Brief name of the object"),
			"issue_detected": text("Concise description of the issue"),
			"importance":     text("Why this matters"),
			"likely_causes":  list("Likely causes, most likely first"),
			"steps":          list("Ordered steps to fix or next actions"),
			"estimation": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"price_range":   text(fmt.Sprintf("Price range in %s, e.g. 50-100 %s", currency, currency)),
					"time_estimate": text("Time needed, e.g. 1-2 hours"),
					"currency": {
						Type:        genai.TypeString,
						Format:      "enum",
						Description: fmt.Sprintf("Always %q, the user's preferred currency code", currency),
						Enum:        []string{currency},
					},
				},
				Required: []string{"price_range", "time_estimate", "currency"},
			},
			"confidence_score": {
				Type:        genai.TypeInteger,
				Description: "Confidence from 0 to 100",
			},
			"safety_warning":       nullable("Warning text if dangerous, otherwise null"),
			"product_search_query": nullable("Shopping search term for a needed part or tool, otherwise null"),
		},
		Required: []string{
			"object_name",
			"issue_detected",
			"importance",
			"likely_causes",
			"steps",
			"estimation",
			"confidence_score",
		},
	}
}
