// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"storycraftor-api/internal/application/ai"
	"storycraftor-api/internal/interfaces/http/dto"
)

// AIHandler AI 生成处理器
type AIHandler struct {
	svc *ai.Service
}

// NewAIHandler 创建 AI 处理器
func NewAIHandler(svc *ai.Service) *AIHandler {
	return &AIHandler{svc: svc}
}

// Generate 自由提示词生成
// @Summary 生成文本
// @Tags AI
// @Accept json
// @Produce json
// @Param body body dto.GenerateRequest true "生成请求"
// @Success 200 {object} dto.Response[dto.GenerateResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/ai/generate [post]
func (h *AIHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	content, err := h.svc.GenerateContent(c.Request.Context(), req.Prompt, req.Type)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.GenerateResponse{Content: content})
}

// Outline 生成章节大纲
// @Summary 生成大纲
// @Tags AI
// @Accept json
// @Produce json
// @Param body body dto.OutlineRequest true "大纲请求"
// @Success 200 {object} dto.Response[dto.OutlineResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/ai/outline [post]
func (h *AIHandler) Outline(c *gin.Context) {
	var req dto.OutlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	outline, err := h.svc.GenerateOutline(c.Request.Context(), req.Title, req.Genre, req.NumberOfChapters)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.OutlineResponse{Outline: outline})
}
