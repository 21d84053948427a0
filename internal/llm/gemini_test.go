package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/context-lens/internal/common"
	"github.com/Veraticus/context-lens/internal/service"
)

// fakeGemini records requests and answers with a canned generateContent reply.
type fakeGemini struct {
	lastBody map[string]any
	lastPath string
	lastKey  string
	reply    string
	hits     atomic.Int32
	status   int
}

func (f *fakeGemini) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		f.lastPath = r.URL.Path
		f.lastKey = r.URL.Query().Get("key")
		if f.lastKey == "" {
			f.lastKey = r.Header.Get("X-Goog-Api-Key")
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		f.lastBody = map[string]any{}
		if err := json.Unmarshal(body, &f.lastBody); err != nil {
			t.Errorf("decode body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		status := f.status
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, f.reply)
	}
}

func candidateReply(t *testing.T, text string, sources ...[2]string) string {
	t.Helper()

	chunks := make([]map[string]any, 0, len(sources))
	for _, s := range sources {
		chunks = append(chunks, map[string]any{"web": map[string]string{"uri": s[0], "title": s[1]}})
	}

	candidate := map[string]any{
		"content":      map[string]any{"role": "model", "parts": []map[string]string{{"text": text}}},
		"finishReason": "STOP",
	}
	if len(chunks) > 0 {
		candidate["groundingMetadata"] = map[string]any{"groundingChunks": chunks}
	}

	out, err := json.Marshal(map[string]any{"candidates": []any{candidate}})
	require.NoError(t, err)
	return string(out)
}

func newTestClient(t *testing.T, fake *fakeGemini, grounding bool) service.Analyzer {
	t.Helper()

	server := httptest.NewServer(fake.handler(t))
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(), Config{
		Provider:  "gemini",
		APIKey:    "test-key",
		Endpoint:  server.URL + "/",
		Grounding: grounding,
	})
	require.NoError(t, err)
	return client
}

func phoneRequest() service.AnalysisRequest {
	return service.AnalysisRequest{
		Data:     "iVBORw0KGgo=",
		MIMEType: "image/png",
		Note:     "cracked screen",
		Currency: "EUR",
	}
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient(context.Background(), Config{Provider: "openai", APIKey: "k"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LLM provider")
}

func TestGeminiClient_MissingCredential(t *testing.T) {
	fake := &fakeGemini{reply: candidateReply(t, phoneJSON)}
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	client, err := NewClient(context.Background(), Config{Endpoint: server.URL + "/"})
	require.NoError(t, err)

	_, err = client.AnalyzeImage(context.Background(), phoneRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrMissingCredential))
	assert.Equal(t, int32(0), fake.hits.Load(), "no request may be sent without a credential")
}

func TestGeminiClient_DecodesStructuredResponse(t *testing.T) {
	fake := &fakeGemini{reply: candidateReply(t, phoneJSON)}
	client := newTestClient(t, fake, false)

	resp, err := client.AnalyzeImage(context.Background(), phoneRequest())
	require.NoError(t, err)

	require.NotNil(t, resp.Data)
	assert.Equal(t, phoneResult(), *resp.Data)
	assert.Equal(t, phoneJSON, resp.RawText)
	assert.Empty(t, resp.GroundingSources)
	assert.NotNil(t, resp.GroundingSources)

	assert.Equal(t, int32(1), fake.hits.Load())
	assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", fake.lastPath)
	assert.Equal(t, "test-key", fake.lastKey)
}

func TestGeminiClient_RequestShape(t *testing.T) {
	fake := &fakeGemini{reply: candidateReply(t, phoneJSON)}
	client := newTestClient(t, fake, false)

	_, err := client.AnalyzeImage(context.Background(), phoneRequest())
	require.NoError(t, err)

	body := fake.lastBody

	system := body["systemInstruction"].(map[string]any)["parts"].([]any)[0].(map[string]any)["text"].(string)
	assert.Contains(t, system, `preferred currency is "EUR"`)
	assert.NotContains(t, system, "Follow this schema exactly")

	parts := body["contents"].([]any)[0].(map[string]any)["parts"].([]any)
	require.Len(t, parts, 2)
	inline := parts[0].(map[string]any)["inlineData"].(map[string]any)
	assert.Equal(t, "image/png", inline["mimeType"])
	assert.Equal(t, "iVBORw0KGgo=", inline["data"])
	assert.Contains(t, parts[1].(map[string]any)["text"], `Context note: "cracked screen"`)

	genConfig := body["generationConfig"].(map[string]any)
	assert.Equal(t, "application/json", genConfig["responseMimeType"])
	schema := genConfig["responseSchema"].(map[string]any)
	assert.Equal(t, "OBJECT", strings.ToUpper(schema["type"].(string)))
	estimation := schema["properties"].(map[string]any)["estimation"].(map[string]any)
	currency := estimation["properties"].(map[string]any)["currency"].(map[string]any)
	assert.Equal(t, []any{"EUR"}, currency["enum"])
	assert.Contains(t, currency["description"], `"EUR"`)

	assert.NotContains(t, body, "tools")
}

func TestGeminiClient_GroundedRequest(t *testing.T) {
	reply := candidateReply(t, "```json\n"+phoneJSON+"\n```",
		[2]string{"https://example.com/screen-repair", "Screen repair guide"},
		[2]string{"https://example.com/parts", "Parts shop"},
	)
	fake := &fakeGemini{reply: reply}
	client := newTestClient(t, fake, true)

	resp, err := client.AnalyzeImage(context.Background(), phoneRequest())
	require.NoError(t, err)

	require.NotNil(t, resp.Data)
	assert.Equal(t, phoneResult(), *resp.Data)
	assert.True(t, strings.HasPrefix(resp.RawText, "```json"))
	require.Len(t, resp.GroundingSources, 2)
	assert.Equal(t, "https://example.com/screen-repair", resp.GroundingSources[0].URI)
	assert.Equal(t, "Screen repair guide", resp.GroundingSources[0].Title)

	body := fake.lastBody
	tools := body["tools"].([]any)
	require.Len(t, tools, 1)
	assert.Contains(t, tools[0], "googleSearch")
	if genConfig, ok := body["generationConfig"].(map[string]any); ok {
		assert.NotContains(t, genConfig, "responseSchema")
		assert.NotContains(t, genConfig, "responseMimeType")
	}

	system := body["systemInstruction"].(map[string]any)["parts"].([]any)[0].(map[string]any)["text"].(string)
	assert.Contains(t, system, "Follow this schema exactly")
}

func TestGeminiClient_UndecodableResponse(t *testing.T) {
	text := "I am not sure what this object is."
	fake := &fakeGemini{reply: candidateReply(t, text)}
	client := newTestClient(t, fake, false)

	resp, err := client.AnalyzeImage(context.Background(), phoneRequest())
	require.NoError(t, err)
	assert.Nil(t, resp.Data)
	assert.Equal(t, text, resp.RawText)
}

func TestGeminiClient_NoCandidates(t *testing.T) {
	fake := &fakeGemini{reply: `{"promptFeedback":{"blockReason":"SAFETY"}}`}
	client := newTestClient(t, fake, false)

	resp, err := client.AnalyzeImage(context.Background(), phoneRequest())
	require.NoError(t, err)
	assert.Nil(t, resp.Data)
	assert.Empty(t, resp.RawText)
}

func TestGeminiClient_TransportErrors(t *testing.T) {
	tests := []struct {
		name   string
		reply  string
		status int
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			reply:  `{"error":{"code":401,"message":"API key not valid","status":"UNAUTHENTICATED"}}`,
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			reply:  `{"error":{"code":500,"message":"internal","status":"INTERNAL"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeGemini{status: tt.status, reply: tt.reply}
			client := newTestClient(t, fake, false)

			_, err := client.AnalyzeImage(context.Background(), phoneRequest())
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrTransport)
			assert.Contains(t, err.Error(), fmt.Sprintf("status %d", tt.status))
			assert.Equal(t, int32(1), fake.hits.Load(), "failed requests are not retried")
		})
	}
}

func TestGeminiClient_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL + "/"
	server.Close()

	client, err := NewClient(context.Background(), Config{APIKey: "test-key", Endpoint: endpoint})
	require.NoError(t, err)

	_, err = client.AnalyzeImage(context.Background(), phoneRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrTransport)
}

func TestGeminiClient_CanceledContext(t *testing.T) {
	fake := &fakeGemini{reply: candidateReply(t, phoneJSON)}
	client := newTestClient(t, fake, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.AnalyzeImage(ctx, phoneRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrTransport)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGeminiClient_InvalidRequests(t *testing.T) {
	fake := &fakeGemini{reply: candidateReply(t, phoneJSON)}
	client := newTestClient(t, fake, false)

	tests := []struct {
		wantErr error
		req     service.AnalysisRequest
		name    string
	}{
		{
			name:    "empty data",
			req:     service.AnalysisRequest{MIMEType: "image/png"},
			wantErr: common.ErrNoImageSelected,
		},
		{
			name:    "data URI prefix",
			req:     service.AnalysisRequest{Data: "data:image/png;base64,AAAA", MIMEType: "image/png"},
			wantErr: common.ErrUnsupportedImage,
		},
		{
			name:    "not base64",
			req:     service.AnalysisRequest{Data: "not base64!", MIMEType: "image/png"},
			wantErr: common.ErrUnsupportedImage,
		},
		{
			name:    "not an image",
			req:     service.AnalysisRequest{Data: "AAAA", MIMEType: "application/pdf"},
			wantErr: common.ErrUnsupportedImage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.AnalyzeImage(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Equal(t, int32(0), fake.hits.Load())
}

func TestGeminiClient_DefaultCurrency(t *testing.T) {
	fake := &fakeGemini{reply: candidateReply(t, phoneJSON)}
	client := newTestClient(t, fake, true)

	req := phoneRequest()
	req.Currency = ""
	_, err := client.AnalyzeImage(context.Background(), req)
	require.NoError(t, err)

	system := fake.lastBody["systemInstruction"].(map[string]any)["parts"].([]any)[0].(map[string]any)["text"].(string)
	assert.Contains(t, system, `preferred currency is "USD"`)
	assert.Contains(t, system, `"currency": "USD"`)
}
