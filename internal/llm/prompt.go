package llm

import (
	"fmt"
	"strings"
)

const schemaDescription = `{
  "object_name": "Brief Name of Object",
  "issue_detected": "Concise description of the issue",
  "importance": "Why this matters",
  "likely_causes": ["Cause 1", "Cause 2"],
  "steps": ["Step 1", "Step 2", "Step 3"],
  "estimation": {
    "price_range": "50-100 %[1]s",
    "time_estimate": "1-2 hours",
    "currency": "%[1]s"
  },
  "confidence_score": 90,
  "safety_warning": "Warning text if dangerous, or null",
  "product_search_query": "search term or null"
}`

// systemInstruction builds the persona and output rules, localized to currency.
// When the schema is not enforced by the API, it is spelled out in the text.
func systemInstruction(currency string, describeSchema bool) string {
	var b strings.Builder

	b.WriteString(`You are Context Lens, a concise, reliable, multimodal assistant.
Your job is to analyze a photo of a physical object/scene and return clear, actionable context.
Provide: what the object/issue is, why it matters, likely causes, step-by-step fixes or next actions, estimated price or time to fix, and confidence level.

IMPORTANT:
`)
	fmt.Fprintf(&b, "1. The user's preferred currency is %q. Specify price estimates in this currency (e.g. %s 50-100).\n", currency, currency)
	b.WriteString(`2. If the issue requires a replacement part, tool, or specific product, generate a short, optimized "product_search_query" string that can be used on Google Shopping (e.g., "replacement hinge for IKEA PAX" or "multimeter 600v"). If no product is relevant, this can be null.

Be pragmatic: assume audience is a non-expert but curious user.
Prioritize safety and do not provide instructions that require professional certification (e.g., electrical rewiring, surgery). When uncertain, say so and give safe alternatives.
`)

	if describeSchema {
		b.WriteString(`
Format your response strictly as a valid JSON object.
Do not include markdown formatting like ` + "```json ... ```" + `.
Do not include comments (// or /* */) in the JSON.
Follow this schema exactly:
`)
		fmt.Fprintf(&b, schemaDescription, currency)
		b.WriteString("\n")
	}

	return b.String()
}

// promptText is the user turn that accompanies the image.
func promptText(note string) string {
	note = strings.TrimSpace(note)
	if note == "" {
		return "Analyze this image. Return JSON only."
	}
	return fmt.Sprintf("Analyze this image. Context note: %q. Return JSON only.", note)
}
