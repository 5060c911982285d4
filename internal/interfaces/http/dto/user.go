// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"storycraftor-api/internal/domain/entity"
)

// UpdateProfileRequest 更新个人资料请求
type UpdateProfileRequest struct {
	Name string `json:"name" binding:"max=128"`
}

// UserDTO 用户资料响应
type UserDTO struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToUserDTO 将领域实体转换为 DTO
func ToUserDTO(u *entity.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
