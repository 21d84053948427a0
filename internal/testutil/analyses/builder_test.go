package analyses

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/context-lens/internal/model"
)

func TestBuilder_RawTextMatchesData(t *testing.T) {
	resp := NewBuilder("Kettle").
		WithIssue("Limescale on the element").
		WithConfidence(64).
		WithSafetyWarning("Let it cool first").
		Build()

	require.True(t, resp.Decoded())

	var decoded model.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(resp.RawText), &decoded))
	assert.Equal(t, *resp.Data, decoded)
	assert.True(t, resp.Data.HasSafetyWarning())
	assert.NotNil(t, resp.GroundingSources)
}

func TestBuilder_BuildsIndependentValues(t *testing.T) {
	b := NewBuilder("Lamp").WithSteps("Replace the bulb")

	first := b.Build()
	first.Data.Steps[0] = "changed"

	second := b.Build()
	assert.Equal(t, "Replace the bulb", second.Data.Steps[0])
}

func TestFixtures(t *testing.T) {
	tests := []struct {
		name    string
		resp    model.FullAnalysisResponse
		decoded bool
		sources int
		warning bool
	}{
		{name: "phone", resp: Phone(), decoded: true},
		{name: "washing machine", resp: WashingMachine(), decoded: true, warning: true},
		{name: "grounded", resp: Grounded(), decoded: true, sources: 2},
		{name: "undecoded", resp: Undecoded("not json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.decoded, tt.resp.Decoded())
			assert.Len(t, tt.resp.GroundingSources, tt.sources)
			if tt.decoded {
				assert.Equal(t, tt.warning, tt.resp.Data.HasSafetyWarning())
			}
		})
	}
}
