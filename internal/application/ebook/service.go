// Package ebook 实现电子书聚合的应用服务
package ebook

import (
	"context"
	"strings"

	"storycraftor-api/internal/domain/entity"
	"storycraftor-api/internal/domain/repository"
	"storycraftor-api/pkg/errors"
	"storycraftor-api/pkg/metrics"
)

// CreateInput 创建电子书的输入
type CreateInput struct {
	Title       string
	Description string
	Genre       string
}

// Patch 电子书合并更新
// 空字符串视为"未提供"，不会覆盖已有值，沿用原系统的真值判断语义：
// 标题因此无法通过更新清空
type Patch struct {
	Title       string
	Description string
	Genre       string
	Status      string
}

// ChapterPatch 章节合并更新，语义同 Patch
// 不携带序号字段，序号只能由服务端重算
type ChapterPatch struct {
	Title   string
	Content string
}

// Service 电子书聚合管理器
// 所有操作以 JWT 解析出的用户 ID 为准做所有权校验：
// 记录不存在与非本人所有统一返回 ErrEbookNotFound
type Service struct {
	ebooks repository.EbookRepository
	tx     repository.Transactor
}

// NewService 创建电子书应用服务
func NewService(ebooks repository.EbookRepository, tx repository.Transactor) *Service {
	return &Service{
		ebooks: ebooks,
		tx:     tx,
	}
}

// Create 创建电子书
func (s *Service) Create(ctx context.Context, authorID string, in CreateInput) (*entity.Ebook, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, errors.ErrValidationFailed.WithDetail("title is required")
	}

	ebook := entity.NewEbook(authorID, in.Title, in.Description, in.Genre)
	if err := s.ebooks.Create(ctx, ebook); err != nil {
		metrics.EbookMutationsTotal.WithLabelValues("create", "error").Inc()
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to create ebook")
	}

	metrics.EbookMutationsTotal.WithLabelValues("create", "ok").Inc()
	return ebook, nil
}

// ListByOwner 列出用户名下全部电子书，创建时间倒序，无数据时返回空列表
func (s *Service) ListByOwner(ctx context.Context, authorID string) ([]*entity.Ebook, error) {
	ebooks, err := s.ebooks.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to list ebooks")
	}
	if ebooks == nil {
		ebooks = []*entity.Ebook{}
	}
	return ebooks, nil
}

// Get 获取单本电子书，应用所有权规则
func (s *Service) Get(ctx context.Context, id, authorID string) (*entity.Ebook, error) {
	return s.owned(ctx, id, authorID)
}

// Update 合并更新电子书属性
func (s *Service) Update(ctx context.Context, id, authorID string, patch Patch) (*entity.Ebook, error) {
	var updated *entity.Ebook
	err := s.mutate(ctx, "update", id, authorID, func(e *entity.Ebook) error {
		if patch.Title != "" {
			e.Title = patch.Title
		}
		if patch.Description != "" {
			e.Description = patch.Description
		}
		if patch.Genre != "" {
			e.Genre = patch.Genre
		}
		if patch.Status != "" {
			e.Status = entity.EbookStatus(patch.Status)
		}
		updated = e
		return nil
	})
	return updated, err
}

// Delete 删除电子书
func (s *Service) Delete(ctx context.Context, id, authorID string) error {
	return s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.owned(txCtx, id, authorID); err != nil {
			return err
		}
		if err := s.ebooks.Delete(txCtx, id); err != nil {
			metrics.EbookMutationsTotal.WithLabelValues("delete", "error").Inc()
			return errors.Wrap(err, errors.CodeDatabaseError, "failed to delete ebook")
		}
		metrics.EbookMutationsTotal.WithLabelValues("delete", "ok").Inc()
		return nil
	})
}

// AppendChapter 末尾追加章节，序号为当前章节数加一
func (s *Service) AppendChapter(ctx context.Context, id, authorID, title, content string) (*entity.Ebook, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errors.ErrValidationFailed.WithDetail("chapter title is required")
	}

	var updated *entity.Ebook
	err := s.mutate(ctx, "append_chapter", id, authorID, func(e *entity.Ebook) error {
		e.AppendChapter(title, content)
		updated = e
		return nil
	})
	return updated, err
}

// UpdateChapter 按 ID 合并更新章节，章节不存在时返回 ErrChapterNotFound
func (s *Service) UpdateChapter(ctx context.Context, id, authorID, chapterID string, patch ChapterPatch) (*entity.Ebook, error) {
	var updated *entity.Ebook
	err := s.mutate(ctx, "update_chapter", id, authorID, func(e *entity.Ebook) error {
		chapter := e.Chapter(chapterID)
		if chapter == nil {
			return errors.ErrChapterNotFound
		}
		if patch.Title != "" {
			chapter.Title = patch.Title
		}
		if patch.Content != "" {
			chapter.Content = patch.Content
		}
		updated = e
		return nil
	})
	return updated, err
}

// DeleteChapter 按 ID 过滤删除章节并重排序号
// 章节不存在时不报错，聚合原样保存
func (s *Service) DeleteChapter(ctx context.Context, id, authorID, chapterID string) (*entity.Ebook, error) {
	var updated *entity.Ebook
	err := s.mutate(ctx, "delete_chapter", id, authorID, func(e *entity.Ebook) error {
		e.RemoveChapter(chapterID)
		updated = e
		return nil
	})
	return updated, err
}

// owned 加载聚合并校验所有权
func (s *Service) owned(ctx context.Context, id, authorID string) (*entity.Ebook, error) {
	ebook, err := s.ebooks.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to get ebook")
	}
	if ebook == nil || !ebook.IsOwnedBy(authorID) {
		return nil, errors.ErrEbookNotFound
	}
	return ebook, nil
}

// mutate 在事务内执行一次完整的读取-修改-整体保存
// 无乐观并发控制，同一聚合的并发编辑按后写覆盖处理
func (s *Service) mutate(ctx context.Context, operation, id, authorID string, fn func(*entity.Ebook) error) error {
	return s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		ebook, err := s.owned(txCtx, id, authorID)
		if err != nil {
			return err
		}

		if err := fn(ebook); err != nil {
			return err
		}

		if err := s.ebooks.Save(txCtx, ebook); err != nil {
			metrics.EbookMutationsTotal.WithLabelValues(operation, "error").Inc()
			return errors.Wrap(err, errors.CodeDatabaseError, "failed to save ebook")
		}

		metrics.EbookMutationsTotal.WithLabelValues(operation, "ok").Inc()
		metrics.EbookChapterCount.WithLabelValues(operation).Observe(float64(len(ebook.Chapters)))
		return nil
	})
}
