package ai

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storycraftor-api/internal/config"
	"storycraftor-api/pkg/errors"
)

// fakeGenerator 记录收到的提示词并返回预置结果
type fakeGenerator struct {
	calls  int
	prompt string
	text   string
	err    error
}

func (g *fakeGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	g.calls++
	g.prompt = prompt
	return g.text, g.err
}

func TestGenerateContentWithoutKey(t *testing.T) {
	gen := &fakeGenerator{text: "should never appear"}
	svc := NewService(&config.AIConfig{APIKey: ""}, gen)

	_, err := svc.GenerateContent(context.Background(), "write something", "chapter")
	require.Error(t, err)
	assert.Equal(t, errors.CodeAIKeyMissing, errors.AsAppError(err).Code)
	// 密钥缺失必须在触发上游调用之前拦截
	assert.Zero(t, gen.calls)
}

func TestGenerateOutlineWithoutKey(t *testing.T) {
	gen := &fakeGenerator{}
	svc := NewService(&config.AIConfig{APIKey: ""}, gen)

	_, err := svc.GenerateOutline(context.Background(), "Dune Retold", "Sci-Fi", 10)
	require.Error(t, err)
	assert.Equal(t, errors.CodeAIKeyMissing, errors.AsAppError(err).Code)
	assert.Zero(t, gen.calls)
}

func TestGenerateContentPassesPromptVerbatim(t *testing.T) {
	gen := &fakeGenerator{text: "generated prose"}
	svc := NewService(&config.AIConfig{APIKey: "k"}, gen)

	out, err := svc.GenerateContent(context.Background(), "describe a desert planet", "description")
	require.NoError(t, err)
	assert.Equal(t, "generated prose", out)
	assert.Equal(t, "describe a desert planet", gen.prompt)
	assert.Equal(t, 1, gen.calls)
}

func TestGenerateOutlinePromptTemplate(t *testing.T) {
	gen := &fakeGenerator{text: "1. Chapter One"}
	svc := NewService(&config.AIConfig{APIKey: "k"}, gen)

	out, err := svc.GenerateOutline(context.Background(), "Dune Retold", "Sci-Fi", 12)
	require.NoError(t, err)
	assert.Equal(t, "1. Chapter One", out)

	assert.True(t, strings.HasPrefix(gen.prompt, `Create a detailed 12-chapter outline for an eBook titled "Dune Retold" in the Sci-Fi genre.`))
	assert.Contains(t, gen.prompt, "Chapter number and title")
	assert.Contains(t, gen.prompt, "Brief summary (2-3 sentences)")
	assert.Contains(t, gen.prompt, "Format as a numbered list.")
}

func TestGenerateContentPropagatesUpstreamError(t *testing.T) {
	gen := &fakeGenerator{err: errors.ErrAIUpstream}
	svc := NewService(&config.AIConfig{APIKey: "k"}, gen)

	_, err := svc.GenerateContent(context.Background(), "p", "title")
	assert.Equal(t, errors.ErrAIUpstream, err)
}
