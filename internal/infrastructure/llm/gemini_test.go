package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storycraftor-api/internal/config"
	"storycraftor-api/pkg/errors"
)

func newTestClient(baseURL string) *GeminiClient {
	return NewGeminiClient(&config.AIConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Model:   "gemini-pro",
	})
}

func TestGenerateTextSuccess(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [
				{"content": {"parts": [{"text": "a detailed outline"}]}}
			]
		}`))
	}))
	defer srv.Close()

	text, err := newTestClient(srv.URL).GenerateText(context.Background(), "write an outline")
	require.NoError(t, err)
	assert.Equal(t, "a detailed outline", text)

	assert.Equal(t, "/models/gemini-pro:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)

	contents, ok := gotBody["contents"].([]any)
	require.True(t, ok)
	require.Len(t, contents, 1)
	parts := contents[0].(map[string]any)["parts"].([]any)
	require.Len(t, parts, 1)
	assert.Equal(t, "write an outline", parts[0].(map[string]any)["text"])
}

func TestGenerateTextNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"code": 429, "message": "quota exceeded", "status": "RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GenerateText(context.Background(), "p")
	require.Error(t, err)
	appErr := errors.AsAppError(err)
	assert.Equal(t, errors.CodeAIUpstream, appErr.Code)
	assert.Equal(t, "quota exceeded", appErr.Detail)
}

func TestGenerateTextEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GenerateText(context.Background(), "p")
	require.Error(t, err)
	assert.Equal(t, errors.CodeAIUpstream, errors.AsAppError(err).Code)
}

func TestGenerateTextMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GenerateText(context.Background(), "p")
	require.Error(t, err)
	assert.Equal(t, errors.CodeAIUpstream, errors.AsAppError(err).Code)
}

func TestGenerateTextConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	_, err := newTestClient(srv.URL).GenerateText(context.Background(), "p")
	require.Error(t, err)
	assert.Equal(t, errors.CodeAIUpstream, errors.AsAppError(err).Code)
}
