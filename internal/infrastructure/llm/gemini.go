// Package llm 提供上游大模型 HTTP 客户端
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"storycraftor-api/internal/config"
	"storycraftor-api/pkg/errors"
	"storycraftor-api/pkg/logger"
	"storycraftor-api/pkg/metrics"
	"storycraftor-api/pkg/tracer"
)

// GeminiClient Google Gemini generateContent 接口客户端
// 单次非流式调用，不做重试和编排
type GeminiClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewGeminiClient 根据配置创建 Gemini 客户端
func NewGeminiClient(cfg *config.AIConfig) *GeminiClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GeminiClient{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// 请求与响应结构，只保留本服务用到的字段
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// GenerateText 调用 generateContent 并返回首个候选文本
// 上游任何形式的失败（网络、非 2xx、空候选）统一映射为 ErrAIUpstream
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "llm.gemini.generate_content")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", c.model),
		attribute.Int("llm.prompt_length", len(prompt)),
	)

	start := time.Now()
	text, err := c.generate(ctx, prompt)
	metrics.AIRequestDuration.WithLabelValues("generate_content").Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.AIRequestsTotal.WithLabelValues("generate_content", "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "upstream generation failed")
		return "", err
	}

	metrics.AIRequestsTotal.WithLabelValues("generate_content", "ok").Inc()
	return text, nil
}

func (c *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	})
	if err != nil {
		return "", errors.ErrAIUpstream.WithError(err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errors.ErrAIUpstream.WithError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error(ctx, "gemini request failed", err, "model", c.model)
		return "", errors.ErrAIUpstream.WithError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.ErrAIUpstream.WithError(err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		logger.Error(ctx, "gemini response is not valid json", err, "status", resp.StatusCode)
		return "", errors.ErrAIUpstream.WithError(err)
	}

	if resp.StatusCode != http.StatusOK {
		detail := resp.Status
		if parsed.Error != nil && parsed.Error.Message != "" {
			detail = parsed.Error.Message
		}
		logger.Error(ctx, "gemini returned non-200", nil, "status", resp.StatusCode, "detail", detail)
		return "", errors.ErrAIUpstream.WithDetail(detail)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.ErrAIUpstream.WithDetail("no candidates in response")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
