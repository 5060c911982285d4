// Package ai 实现 AI 文本生成代理的应用服务
package ai

import (
	"context"
	"fmt"

	"storycraftor-api/internal/config"
	"storycraftor-api/pkg/errors"
	"storycraftor-api/pkg/logger"
)

// outlinePromptTemplate 大纲提示词模板，占位依次为章节数、书名、分类
const outlinePromptTemplate = `Create a detailed %d-chapter outline for an eBook titled "%s" in the %s genre.
    For each chapter, provide:
    1. Chapter number and title
    2. Brief summary (2-3 sentences)

    Format as a numbered list.`

// TextGenerator 文本生成器接口，由上游 LLM 客户端实现
type TextGenerator interface {
	// GenerateText 将提示词发给上游模型并返回生成文本
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Service AI 生成应用服务
// 密钥在启动时注入，每次请求先做密钥闸门再触发上游调用
type Service struct {
	cfg *config.AIConfig
	gen TextGenerator
}

// NewService 创建 AI 应用服务
func NewService(cfg *config.AIConfig, gen TextGenerator) *Service {
	return &Service{
		cfg: cfg,
		gen: gen,
	}
}

// GenerateContent 按自由提示词生成文本
// genType 只用于记录，不影响提示词内容
func (s *Service) GenerateContent(ctx context.Context, prompt, genType string) (string, error) {
	if s.cfg.APIKey == "" {
		return "", errors.ErrAIKeyMissing
	}

	logger.Info(ctx, "generating content", "type", genType, "prompt_len", len(prompt))
	return s.gen.GenerateText(ctx, prompt)
}

// GenerateOutline 按模板拼装大纲提示词后生成章节大纲
func (s *Service) GenerateOutline(ctx context.Context, title, genre string, numberOfChapters int) (string, error) {
	if s.cfg.APIKey == "" {
		return "", errors.ErrAIKeyMissing
	}

	prompt := fmt.Sprintf(outlinePromptTemplate, numberOfChapters, title, genre)
	logger.Info(ctx, "generating outline", "title", title, "chapters", numberOfChapters)
	return s.gen.GenerateText(ctx, prompt)
}
