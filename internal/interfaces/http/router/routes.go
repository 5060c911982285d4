// Package router 提供 HTTP 路由配置
package router

import (
	"storycraftor-api/internal/config"
	"storycraftor-api/internal/interfaces/http/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes 注册 /api 路由
// 认证路由公开，其余全部要求 Bearer AccessToken
func RegisterAPIRoutes(api *gin.RouterGroup, cfg *config.Config, h Handlers, rateLimit gin.HandlerFunc) {
	// 认证管理
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/logout", h.Auth.Logout)
	}

	protected := api.Group("")
	protected.Use(middleware.Auth(middleware.AuthConfig{
		Secret: cfg.Security.JWT.Secret,
		Issuer: cfg.Security.JWT.Issuer,
	}))
	if rateLimit != nil {
		protected.Use(rateLimit)
	}

	// 个人资料
	users := protected.Group("/users")
	{
		users.GET("/me", h.User.GetMe)
		users.PUT("/me", h.User.UpdateMe)
	}

	// 电子书聚合
	ebooks := protected.Group("/ebooks")
	{
		ebooks.GET("", h.Ebook.List)
		ebooks.POST("", h.Ebook.Create)
		ebooks.GET("/:id", h.Ebook.Get)
		ebooks.PUT("/:id", h.Ebook.Update)
		ebooks.DELETE("/:id", h.Ebook.Delete)

		// 内嵌章节
		ebooks.POST("/:id/chapters", h.Ebook.AddChapter)
		ebooks.PUT("/:id/chapters/:cid", h.Ebook.UpdateChapter)
		ebooks.DELETE("/:id/chapters/:cid", h.Ebook.DeleteChapter)
	}

	// AI 生成代理
	ai := protected.Group("/ai")
	{
		ai.POST("/generate", h.AI.Generate)
		ai.POST("/outline", h.AI.Outline)
	}
}
