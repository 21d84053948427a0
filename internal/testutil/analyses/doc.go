// Package analyses provides test data for diagnostic results: a fluent builder
// for model.FullAnalysisResponse values and a few named fixtures.
//
// # Basic Usage
//
//	resp := analyses.NewBuilder("Phone").
//		WithIssue("Cracked display glass").
//		WithConfidence(85).
//		Build()
//
// # Fixtures
//
// Fixtures cover the shapes the renderers and the controller care about:
//
//	analyses.Phone()          // decoded, no safety warning
//	analyses.WashingMachine() // decoded, safety warning, product query
//	analyses.Grounded()       // decoded, with web sources
//	analyses.Undecoded("...") // model text that was not valid JSON
//
// Seed them into a store with testutil.SetupTestDBWithOptions.
package analyses
