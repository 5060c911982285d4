// Package postgres 提供 PostgreSQL 数据库访问层实现
package postgres

import (
	"context"
	"fmt"
)

// schemaStatements 建表语句，幂等，可重复执行
var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email         VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		name          VARCHAR(255) NOT NULL,
		last_login_at TIMESTAMPTZ,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS ebooks (
		id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		author_id   UUID NOT NULL,
		title       VARCHAR(255) NOT NULL,
		description TEXT,
		genre       VARCHAR(100) DEFAULT 'General',
		cover_image TEXT,
		status      VARCHAR(50) DEFAULT 'draft',
		chapters    JSONB NOT NULL DEFAULT '[]'::jsonb,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_ebooks_author_created
		ON ebooks (author_id, created_at DESC)`,
}

// EnsureSchema 创建缺失的表和索引
func (c *Client) EnsureSchema(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "postgres.EnsureSchema")
	defer span.End()

	for _, stmt := range schemaStatements {
		if err := c.db.WithContext(ctx).Exec(stmt).Error; err != nil {
			span.RecordError(err)
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
