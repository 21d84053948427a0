package analyses

import "github.com/Veraticus/context-lens/internal/model"

// Phone is a decoded diagnosis in EUR without a safety warning.
func Phone() model.FullAnalysisResponse {
	return NewBuilder("Phone").
		WithIssue("Cracked display glass").
		WithImportance("Glass shards can cut fingers").
		WithCauses("Drop onto a hard surface").
		WithSteps("Apply tape over the crack", "Replace the screen").
		WithEstimate("80-150 EUR", "1 hour", "EUR").
		WithConfidence(85).
		Build()
}

// WashingMachine carries a safety warning and a product suggestion.
func WashingMachine() model.FullAnalysisResponse {
	return NewBuilder("Washing Machine").
		WithIssue("Door seal is torn").
		WithImportance("Water will leak onto the floor").
		WithCauses("Worn rubber", "Sharp object in the drum").
		WithSteps("Unplug the machine", "Replace the door gasket").
		WithEstimate("40-90 EUR", "2 hours", "EUR").
		WithConfidence(78).
		WithSafetyWarning("Unplug before opening the drum").
		WithProductQuery("washing machine door gasket").
		Build()
}

// Grounded is a diagnosis that cites web sources, one of them untitled.
func Grounded() model.FullAnalysisResponse {
	return NewBuilder("Bicycle").
		WithIssue("Chain is rusted").
		WithEstimate("10-25 USD", "20 minutes", "USD").
		WithConfidence(92).
		WithSource("https://example.com/chain-care", "Chain care guide").
		WithSource("https://example.com/rust", "").
		Build()
}

// Undecoded is a response whose text could not be read as a report.
func Undecoded(text string) model.FullAnalysisResponse {
	return model.FullAnalysisResponse{
		RawText:          text,
		GroundingSources: []model.GroundingSource{},
	}
}
