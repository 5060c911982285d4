// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"storycraftor-api/internal/application/ebook"
	"storycraftor-api/internal/domain/entity"
)

// CreateEbookRequest 创建电子书请求
type CreateEbookRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"max=5000"`
	Genre       string `json:"genre" binding:"max=100"`
}

// UpdateEbookRequest 更新电子书请求
// 字段为普通字符串，空串等同于未提供，不会清空已有值
type UpdateEbookRequest struct {
	Title       string `json:"title" binding:"max=255"`
	Description string `json:"description" binding:"max=5000"`
	Genre       string `json:"genre" binding:"max=100"`
	Status      string `json:"status" binding:"omitempty,oneof=draft published"`
}

// ToPatch 转换为应用层补丁
func (r *UpdateEbookRequest) ToPatch() ebook.Patch {
	return ebook.Patch{
		Title:       r.Title,
		Description: r.Description,
		Genre:       r.Genre,
		Status:      r.Status,
	}
}

// AddChapterRequest 追加章节请求，序号由服务端分配
type AddChapterRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Content string `json:"content"`
}

// UpdateChapterRequest 更新章节请求
type UpdateChapterRequest struct {
	Title   string `json:"title" binding:"max=255"`
	Content string `json:"content"`
}

// ToPatch 转换为应用层补丁
func (r *UpdateChapterRequest) ToPatch() ebook.ChapterPatch {
	return ebook.ChapterPatch{
		Title:   r.Title,
		Content: r.Content,
	}
}

// ChapterDTO 章节响应
type ChapterDTO struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

// EbookDTO 电子书响应
type EbookDTO struct {
	ID          string       `json:"id"`
	Author      string       `json:"author"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Genre       string       `json:"genre,omitempty"`
	CoverImage  string       `json:"cover_image,omitempty"`
	Status      string       `json:"status"`
	Chapters    []ChapterDTO `json:"chapters"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// ToEbookDTO 将领域实体转换为 DTO
func ToEbookDTO(e *entity.Ebook) *EbookDTO {
	if e == nil {
		return nil
	}
	chapters := make([]ChapterDTO, 0, len(e.Chapters))
	for _, c := range e.Chapters {
		chapters = append(chapters, ChapterDTO{
			ID:      c.ID,
			Title:   c.Title,
			Content: c.Content,
			Order:   c.Order,
		})
	}
	return &EbookDTO{
		ID:          e.ID,
		Author:      e.AuthorID,
		Title:       e.Title,
		Description: e.Description,
		Genre:       e.Genre,
		CoverImage:  e.CoverImage,
		Status:      string(e.Status),
		Chapters:    chapters,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ToEbookDTOs 批量转换
func ToEbookDTOs(ebooks []*entity.Ebook) []*EbookDTO {
	out := make([]*EbookDTO, 0, len(ebooks))
	for _, e := range ebooks {
		out = append(out, ToEbookDTO(e))
	}
	return out
}
