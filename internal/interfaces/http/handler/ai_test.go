package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storycraftor-api/pkg/errors"
)

func TestGenerateContent(t *testing.T) {
	env := newTestEnv(t)
	env.gen.text = "a gripping chapter"
	token := env.tokenFor(t, newTestUUID(1))

	w := env.do(t, http.MethodPost, "/api/ai/generate", token, map[string]any{
		"prompt": "write chapter one",
		"type":   "chapter",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a gripping chapter", decodeData(t, w)["content"])
	assert.Equal(t, "write chapter one", env.gen.prompt)
}

func TestGenerateRequiresPrompt(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, newTestUUID(1))

	w := env.do(t, http.MethodPost, "/api/ai/generate", token, map[string]any{"type": "title"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateWithoutAPIKey(t *testing.T) {
	env := newTestEnv(t)
	env.aiCfg.APIKey = ""
	token := env.tokenFor(t, newTestUUID(1))

	w := env.do(t, http.MethodPost, "/api/ai/generate", token, map[string]any{"prompt": "p"})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "AI API key not configured")
}

func TestGenerateUpstreamFailure(t *testing.T) {
	env := newTestEnv(t)
	env.gen.err = errors.ErrAIUpstream
	token := env.tokenFor(t, newTestUUID(1))

	w := env.do(t, http.MethodPost, "/api/ai/generate", token, map[string]any{"prompt": "p"})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed to generate content")
}

func TestGenerateOutline(t *testing.T) {
	env := newTestEnv(t)
	env.gen.text = "1. The Spice\n2. The Worm"
	token := env.tokenFor(t, newTestUUID(1))

	w := env.do(t, http.MethodPost, "/api/ai/outline", token, map[string]any{
		"title":            "Dune Retold",
		"genre":            "Sci-Fi",
		"numberOfChapters": 2,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1. The Spice\n2. The Worm", decodeData(t, w)["outline"])
	assert.Contains(t, env.gen.prompt, `2-chapter outline for an eBook titled "Dune Retold" in the Sci-Fi genre`)
}

func TestOutlineValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, newTestUUID(1))

	// 缺少章节数
	w := env.do(t, http.MethodPost, "/api/ai/outline", token, map[string]any{
		"title": "Dune Retold",
		"genre": "Sci-Fi",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
