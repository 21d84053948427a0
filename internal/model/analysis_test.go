package model

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestAnalysisResult_ShoppingURL(t *testing.T) {
	tests := []struct {
		query *string
		name  string
		want  string
	}{
		{name: "no query", query: nil, want: ""},
		{name: "blank query", query: strPtr("  "), want: ""},
		{
			name:  "query is escaped",
			query: strPtr("replacement hinge for IKEA PAX"),
			want:  "https://www.google.com/search?tbm=shop&q=replacement+hinge+for+IKEA+PAX",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &AnalysisResult{ProductSearchQuery: tt.query}
			assert.Equal(t, tt.want, r.ShoppingURL())
		})
	}
}

func TestAnalysisResult_FixSearchURL(t *testing.T) {
	r := &AnalysisResult{ObjectName: "Kitchen Faucet"}
	assert.Equal(t, "https://www.google.com/search?q=Kitchen+Faucet+fix", r.FixSearchURL())
}

func TestAnalysisResult_HasSafetyWarning(t *testing.T) {
	assert.False(t, (&AnalysisResult{}).HasSafetyWarning())
	assert.False(t, (&AnalysisResult{SafetyWarning: strPtr("")}).HasSafetyWarning())
	assert.True(t, (&AnalysisResult{SafetyWarning: strPtr("Unplug first")}).HasSafetyWarning())
}

func TestHistoryItem_Title(t *testing.T) {
	decoded := HistoryItem{Result: FullAnalysisResponse{Data: &AnalysisResult{ObjectName: "Phone"}}}
	assert.Equal(t, "Phone", decoded.Title())

	raw := HistoryItem{Result: FullAnalysisResponse{RawText: "not json"}}
	assert.Equal(t, "Unknown Object", raw.Title())
}

func TestFindHistoryItem(t *testing.T) {
	items := []HistoryItem{{ID: "a"}, {ID: "b", Note: "second"}}

	item, ok := FindHistoryItem(items, "b")
	assert.True(t, ok)
	assert.Equal(t, "second", item.Note)

	_, ok = FindHistoryItem(items, "missing")
	assert.False(t, ok)
}

func TestScore_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Score
		wantErr bool
	}{
		{name: "integer", input: `85`, want: 85},
		{name: "fraction rounds up", input: `85.5`, want: 86},
		{name: "fraction rounds down", input: `72.4`, want: 72},
		{name: "exponent", input: `9e1`, want: 90},
		{name: "numeric string", input: `"85"`, want: 85},
		{name: "string with percent", input: `" 64% "`, want: 64},
		{name: "out of range is kept", input: `140`, want: 140},
		{name: "null leaves zero", input: `null`, want: 0},
		{name: "word", input: `"high"`, wantErr: true},
		{name: "boolean", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Score
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalysisResult_ScoreRoundTrip(t *testing.T) {
	var r AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(`{"object_name":"Kettle","confidence_score":"91.6"}`), &r))
	assert.Equal(t, Score(92), r.ConfidenceScore)

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"confidence_score":92`)
}
