// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"storycraftor-api/internal/domain/repository"
	"storycraftor-api/internal/interfaces/http/dto"
	"storycraftor-api/pkg/errors"
	"storycraftor-api/pkg/logger"
)

// UserHandler 用户资料处理器
type UserHandler struct {
	userRepo repository.UserRepository
}

// NewUserHandler 创建用户处理器
func NewUserHandler(userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// GetMe 获取当前用户资料
// @Summary 当前用户
// @Tags User
// @Produce json
// @Success 200 {object} dto.Response[dto.UserDTO]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := h.userRepo.GetByID(ctx, currentUserID(c))
	if err != nil {
		logger.Error(ctx, "failed to get user", err)
		dto.InternalError(c, "failed to get profile")
		return
	}
	if user == nil {
		respondError(c, errors.ErrUserNotFound)
		return
	}

	dto.Success(c, dto.ToUserDTO(user))
}

// UpdateMe 更新当前用户资料
// @Summary 更新资料
// @Tags User
// @Accept json
// @Produce json
// @Param body body dto.UpdateProfileRequest true "资料"
// @Success 200 {object} dto.Response[dto.UserDTO]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	user, err := h.userRepo.GetByID(ctx, currentUserID(c))
	if err != nil {
		logger.Error(ctx, "failed to get user", err)
		dto.InternalError(c, "failed to update profile")
		return
	}
	if user == nil {
		respondError(c, errors.ErrUserNotFound)
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}

	if err := h.userRepo.Update(ctx, user); err != nil {
		logger.Error(ctx, "failed to update user", err)
		dto.InternalError(c, "failed to update profile")
		return
	}

	dto.Success(c, dto.ToUserDTO(user))
}
