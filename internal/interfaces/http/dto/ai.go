// Package dto 提供 HTTP 层数据传输对象
package dto

// GenerateRequest 自由文本生成请求
// Type 仅用于记录用途（title/chapter/description），不改变提示词
type GenerateRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	Type   string `json:"type" binding:"omitempty,oneof=title chapter description"`
}

// GenerateResponse 自由文本生成响应
type GenerateResponse struct {
	Content string `json:"content"`
}

// OutlineRequest 大纲生成请求
type OutlineRequest struct {
	Title            string `json:"title" binding:"required,max=255"`
	Genre            string `json:"genre" binding:"required,max=100"`
	NumberOfChapters int    `json:"numberOfChapters" binding:"required,min=1,max=100"`
}

// OutlineResponse 大纲生成响应
type OutlineResponse struct {
	Outline string `json:"outline"`
}
