// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/google/uuid"
)

// EbookStatus 电子书状态
type EbookStatus string

const (
	EbookStatusDraft     EbookStatus = "draft"
	EbookStatusPublished EbookStatus = "published"
)

// DefaultGenre 未指定时的默认分类
const DefaultGenre = "General"

// Chapter 章节，作为子文档内嵌在电子书聚合中，没有独立生命周期
type Chapter struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	// Order 为 1 起始的连续阅读序号，只在服务端重算，客户端给出的值一律忽略
	Order int `json:"order"`
}

// Ebook 电子书聚合根，章节列表以 JSONB 整体内嵌存储
type Ebook struct {
	ID          string      `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AuthorID    string      `json:"author" gorm:"type:uuid;index;not null"`
	Title       string      `json:"title" gorm:"type:varchar(255);not null"`
	Description string      `json:"description,omitempty" gorm:"type:text"`
	Genre       string      `json:"genre,omitempty" gorm:"type:varchar(100);default:'General'"`
	CoverImage  string      `json:"cover_image,omitempty" gorm:"type:text"`
	Status      EbookStatus `json:"status" gorm:"type:varchar(50);default:'draft'"`
	Chapters    []Chapter   `json:"chapters" gorm:"type:jsonb;serializer:json"`
	CreatedAt   time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Ebook) TableName() string {
	return "ebooks"
}

// NewEbook 创建新的电子书聚合
func NewEbook(authorID, title, description, genre string) *Ebook {
	if genre == "" {
		genre = DefaultGenre
	}
	now := time.Now()
	return &Ebook{
		AuthorID:    authorID,
		Title:       title,
		Description: description,
		Genre:       genre,
		Status:      EbookStatusDraft,
		Chapters:    []Chapter{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsOwnedBy 检查聚合是否属于指定用户
func (e *Ebook) IsOwnedBy(userID string) bool {
	return userID != "" && e.AuthorID == userID
}

// AppendChapter 在末尾追加章节，序号为当前长度加一
func (e *Ebook) AppendChapter(title, content string) *Chapter {
	chapter := Chapter{
		ID:      uuid.NewString(),
		Title:   title,
		Content: content,
		Order:   len(e.Chapters) + 1,
	}
	e.Chapters = append(e.Chapters, chapter)
	e.UpdatedAt = time.Now()
	return &e.Chapters[len(e.Chapters)-1]
}

// Chapter 按 ID 查找章节，未找到返回 nil
func (e *Ebook) Chapter(chapterID string) *Chapter {
	for i := range e.Chapters {
		if e.Chapters[i].ID == chapterID {
			return &e.Chapters[i]
		}
	}
	return nil
}

// RemoveChapter 按 ID 过滤删除章节并重排剩余序号
// 目标章节不存在时列表保持不变，与基于过滤的删除语义一致
func (e *Ebook) RemoveChapter(chapterID string) {
	filtered := e.Chapters[:0]
	for _, c := range e.Chapters {
		if c.ID != chapterID {
			filtered = append(filtered, c)
		}
	}
	e.Chapters = filtered
	e.Resequence()
	e.UpdatedAt = time.Now()
}

// Resequence 重新派生章节序号，保证 chapters[i].Order == i+1
// 任何结构性变更之后都必须重算，存量序号不可信
func (e *Ebook) Resequence() {
	for i := range e.Chapters {
		e.Chapters[i].Order = i + 1
	}
}
