// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"storycraftor-api/internal/application/ebook"
	"storycraftor-api/internal/interfaces/http/dto"
)

// EbookHandler 电子书聚合处理器
type EbookHandler struct {
	svc *ebook.Service
}

// NewEbookHandler 创建电子书处理器
func NewEbookHandler(svc *ebook.Service) *EbookHandler {
	return &EbookHandler{svc: svc}
}

// Create 创建电子书
// @Summary 创建电子书
// @Tags Ebook
// @Accept json
// @Produce json
// @Param body body dto.CreateEbookRequest true "创建信息"
// @Success 201 {object} dto.Response[dto.EbookDTO]
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/ebooks [post]
func (h *EbookHandler) Create(c *gin.Context) {
	var req dto.CreateEbookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	created, err := h.svc.Create(c.Request.Context(), currentUserID(c), ebook.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Genre:       req.Genre,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Created(c, dto.ToEbookDTO(created))
}

// List 列出当前用户的全部电子书
// @Summary 电子书列表
// @Tags Ebook
// @Produce json
// @Success 200 {object} dto.Response[[]dto.EbookDTO]
// @Router /api/ebooks [get]
func (h *EbookHandler) List(c *gin.Context) {
	ebooks, err := h.svc.ListByOwner(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToEbookDTOs(ebooks))
}

// Get 获取单本电子书
// @Summary 电子书详情
// @Tags Ebook
// @Produce json
// @Param id path string true "电子书 ID"
// @Success 200 {object} dto.Response[dto.EbookDTO]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/ebooks/{id} [get]
func (h *EbookHandler) Get(c *gin.Context) {
	found, err := h.svc.Get(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToEbookDTO(found))
}

// Update 合并更新电子书属性
// @Summary 更新电子书
// @Tags Ebook
// @Accept json
// @Produce json
// @Param id path string true "电子书 ID"
// @Param body body dto.UpdateEbookRequest true "更新信息"
// @Success 200 {object} dto.Response[dto.EbookDTO]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/ebooks/{id} [put]
func (h *EbookHandler) Update(c *gin.Context) {
	var req dto.UpdateEbookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), currentUserID(c), req.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToEbookDTO(updated))
}

// Delete 删除电子书
// @Summary 删除电子书
// @Tags Ebook
// @Produce json
// @Param id path string true "电子书 ID"
// @Success 200 {object} dto.Response[gin.H]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/ebooks/{id} [delete]
func (h *EbookHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, gin.H{"message": "ebook removed"})
}

// AddChapter 末尾追加章节
// @Summary 追加章节
// @Tags Chapter
// @Accept json
// @Produce json
// @Param id path string true "电子书 ID"
// @Param body body dto.AddChapterRequest true "章节信息"
// @Success 201 {object} dto.Response[dto.EbookDTO]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/ebooks/{id}/chapters [post]
func (h *EbookHandler) AddChapter(c *gin.Context) {
	var req dto.AddChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	updated, err := h.svc.AppendChapter(c.Request.Context(), c.Param("id"), currentUserID(c), req.Title, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Created(c, dto.ToEbookDTO(updated))
}

// UpdateChapter 按 ID 更新章节
// @Summary 更新章节
// @Tags Chapter
// @Accept json
// @Produce json
// @Param id path string true "电子书 ID"
// @Param cid path string true "章节 ID"
// @Param body body dto.UpdateChapterRequest true "更新信息"
// @Success 200 {object} dto.Response[dto.EbookDTO]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/ebooks/{id}/chapters/{cid} [put]
func (h *EbookHandler) UpdateChapter(c *gin.Context) {
	var req dto.UpdateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	updated, err := h.svc.UpdateChapter(c.Request.Context(), c.Param("id"), currentUserID(c), c.Param("cid"), req.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToEbookDTO(updated))
}

// DeleteChapter 按 ID 删除章节并重排序号
// @Summary 删除章节
// @Tags Chapter
// @Produce json
// @Param id path string true "电子书 ID"
// @Param cid path string true "章节 ID"
// @Success 200 {object} dto.Response[dto.EbookDTO]
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/ebooks/{id}/chapters/{cid} [delete]
func (h *EbookHandler) DeleteChapter(c *gin.Context) {
	updated, err := h.svc.DeleteChapter(c.Request.Context(), c.Param("id"), currentUserID(c), c.Param("cid"))
	if err != nil {
		respondError(c, err)
		return
	}

	dto.Success(c, dto.ToEbookDTO(updated))
}
