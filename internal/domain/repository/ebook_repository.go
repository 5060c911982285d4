// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"storycraftor-api/internal/domain/entity"
)

// EbookRepository 电子书聚合仓储接口
// 聚合整体读整体写，章节不单独落库
type EbookRepository interface {
	// Create 创建聚合
	Create(ctx context.Context, ebook *entity.Ebook) error

	// GetByID 根据 ID 获取聚合，不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id string) (*entity.Ebook, error)

	// Save 整体保存聚合（全字段覆盖写，updated_at 由存储刷新）
	Save(ctx context.Context, ebook *entity.Ebook) error

	// Delete 删除聚合
	Delete(ctx context.Context, id string) error

	// ListByAuthor 获取作者名下全部聚合，创建时间倒序
	ListByAuthor(ctx context.Context, authorID string) ([]*entity.Ebook, error)
}
