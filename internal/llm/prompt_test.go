package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestSystemInstruction(t *testing.T) {
	withSchema := systemInstruction("EUR", true)
	assert.Contains(t, withSchema, `preferred currency is "EUR"`)
	assert.Contains(t, withSchema, `"price_range": "50-100 EUR"`)
	assert.Contains(t, withSchema, `"currency": "EUR"`)
	assert.Contains(t, withSchema, "Follow this schema exactly")
	assert.NotContains(t, withSchema, "%!")

	withoutSchema := systemInstruction("JPY", false)
	assert.Contains(t, withoutSchema, `preferred currency is "JPY"`)
	assert.NotContains(t, withoutSchema, "Follow this schema exactly")
	assert.True(t, strings.HasPrefix(withoutSchema, "You are Context Lens"))
}

func TestPromptText(t *testing.T) {
	assert.Equal(t, "Analyze this image. Return JSON only.", promptText(""))
	assert.Equal(t, "Analyze this image. Return JSON only.", promptText("   "))
	assert.Equal(t, `Analyze this image. Context note: "cracked screen". Return JSON only.`, promptText(" cracked screen "))
}

func TestAnalysisSchema(t *testing.T) {
	schema := analysisSchema("EUR")
	assert.Equal(t, genai.TypeObject, schema.Type)

	for _, field := range []string{
		"object_name", "issue_detected", "importance", "likely_causes", "steps",
		"estimation", "confidence_score", "safety_warning", "product_search_query",
	} {
		assert.Contains(t, schema.Properties, field)
	}

	assert.Equal(t, genai.TypeArray, schema.Properties["steps"].Type)
	assert.Equal(t, genai.TypeString, schema.Properties["steps"].Items.Type)
	assert.Equal(t, genai.TypeInteger, schema.Properties["confidence_score"].Type)
	require.NotNil(t, schema.Properties["safety_warning"].Nullable)
	assert.True(t, *schema.Properties["safety_warning"].Nullable)
	assert.NotContains(t, schema.Required, "safety_warning")

	currency := schema.Properties["estimation"].Properties["currency"]
	require.NotNil(t, currency)
	assert.Equal(t, []string{"EUR"}, currency.Enum)
	assert.Contains(t, currency.Description, `"EUR"`)
	assert.Contains(t, schema.Properties["estimation"].Required, "currency")
}

func TestAnalysisSchema_EchoesEachCurrency(t *testing.T) {
	for _, code := range []string{"USD", "JPY", "GBP"} {
		t.Run(code, func(t *testing.T) {
			currency := analysisSchema(code).Properties["estimation"].Properties["currency"]
			assert.Equal(t, []string{code}, currency.Enum)
			assert.Contains(t, currency.Description, code)
		})
	}
}
