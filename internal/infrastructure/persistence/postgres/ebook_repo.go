// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storycraftor-api/internal/domain/entity"
)

// EbookRepository 电子书聚合仓储实现
// 章节以 JSONB 整列读写，一行即一个聚合
type EbookRepository struct {
	client *Client
}

// NewEbookRepository 创建电子书仓储
func NewEbookRepository(client *Client) *EbookRepository {
	return &EbookRepository{client: client}
}

// Create 创建聚合
func (r *EbookRepository) Create(ctx context.Context, ebook *entity.Ebook) error {
	ctx, span := tracer.Start(ctx, "postgres.EbookRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(ebook).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create ebook: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取聚合
// 格式非法的 ID 等同于不存在，避免 uuid 列上的类型错误穿透为 500
func (r *EbookRepository) GetByID(ctx context.Context, id string) (*entity.Ebook, error) {
	ctx, span := tracer.Start(ctx, "postgres.EbookRepository.GetByID")
	defer span.End()

	if uuid.Validate(id) != nil {
		return nil, nil
	}

	db := getDB(ctx, r.client.db)
	var ebook entity.Ebook
	if err := db.First(&ebook, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get ebook: %w", err)
	}
	return &ebook, nil
}

// Save 整体保存聚合
func (r *EbookRepository) Save(ctx context.Context, ebook *entity.Ebook) error {
	ctx, span := tracer.Start(ctx, "postgres.EbookRepository.Save")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(ebook).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to save ebook: %w", err)
	}
	return nil
}

// Delete 删除聚合
func (r *EbookRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.EbookRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Ebook{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete ebook: %w", err)
	}
	return nil
}

// ListByAuthor 获取作者名下全部聚合，创建时间倒序
func (r *EbookRepository) ListByAuthor(ctx context.Context, authorID string) ([]*entity.Ebook, error) {
	ctx, span := tracer.Start(ctx, "postgres.EbookRepository.ListByAuthor")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var ebooks []*entity.Ebook
	if err := db.Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&ebooks).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list ebooks: %w", err)
	}
	return ebooks, nil
}
