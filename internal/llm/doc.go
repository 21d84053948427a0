// Package llm provides the client for the hosted multimodal model that turns a
// photo of a physical object into a structured diagnostic report. Requests are
// either schema-constrained or, when web grounding is enabled, free-form with
// the schema described in the system instruction and enforced on decode.
package llm
