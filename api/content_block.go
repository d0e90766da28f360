package api

import (
	"strconv"

	"campus/database"
	"campus/models"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// ContentBlockHandler 内容块管理
type ContentBlockHandler struct{}

func NewContentBlockHandler() *ContentBlockHandler {
	return &ContentBlockHandler{}
}

type BlockCreateRequest struct {
	BlockType string         `json:"block_type" binding:"required"`
	Content   datatypes.JSON `json:"content" binding:"required"`
	Position  int            `json:"position"`
	IsVisible *bool          `json:"is_visible"`
}

type BlockUpdateRequest struct {
	BlockType *string        `json:"block_type"`
	Content   datatypes.JSON `json:"content"`
	Position  *int           `json:"position"`
	IsVisible *bool          `json:"is_visible"`
}

// ListBySection 章节下的内容块列表
// @Summary 获取章节内容块列表
// @Description 获取指定章节的全部内容块（含隐藏的），按 position ASC, id ASC 排序
// @Tags 后台管理-内容块
// @Produce json
// @Security BearerAuth
// @Param id path int true "章节ID"
// @Success 200 {object} Response "获取成功"
// @Failure 404 {object} Response "章节不存在"
// @Router /api/v1/admin/sections/{id}/blocks [get]
func (h *ContentBlockHandler) ListBySection(c *gin.Context) {
	sectionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var section models.PageSection
	if err := database.DB.First(&section, sectionID).Error; err != nil {
		NotFound(c, "章节不存在")
		return
	}

	var blocks []models.ContentBlock
	if err := database.DB.Where("section_id = ?", section.ID).Order("position ASC, id ASC").Find(&blocks).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, blocks)
}

// Create 在章节下创建内容块
// @Summary 创建内容块
// @Description 创建内容块，类型限 text/image/list/html，内容为任意 JSON
// @Tags 后台管理-内容块
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "章节ID"
// @Param request body BlockCreateRequest true "内容块信息"
// @Success 201 {object} Response "创建成功"
// @Failure 400 {object} Response "类型不支持"
// @Failure 404 {object} Response "章节不存在"
// @Router /api/v1/admin/sections/{id}/blocks [post]
func (h *ContentBlockHandler) Create(c *gin.Context) {
	sectionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var section models.PageSection
	if err := database.DB.First(&section, sectionID).Error; err != nil {
		NotFound(c, "章节不存在")
		return
	}

	var req BlockCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if !models.ValidBlockTypes[req.BlockType] {
		BadRequest(c, "不支持的内容块类型: "+req.BlockType)
		return
	}
	if req.Position < 0 {
		BadRequest(c, "position 不能为负数")
		return
	}

	isVisible := true
	if req.IsVisible != nil {
		isVisible = *req.IsVisible
	}
	block := models.ContentBlock{
		SectionID: section.ID,
		BlockType: req.BlockType,
		Content:   req.Content,
		Position:  req.Position,
		IsVisible: isVisible,
	}
	if err := database.DB.Create(&block).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建失败"))
		return
	}
	Created(c, "创建成功", block)
}

// Update 更新内容块
// @Summary 更新内容块
// @Tags 后台管理-内容块
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "内容块ID"
// @Param request body BlockUpdateRequest true "更新的内容块信息"
// @Success 200 {object} Response "更新成功"
// @Failure 404 {object} Response "内容块不存在"
// @Router /api/v1/admin/blocks/{id} [put]
func (h *ContentBlockHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var block models.ContentBlock
	if err := database.DB.First(&block, id).Error; err != nil {
		NotFound(c, "内容块不存在")
		return
	}

	var req BlockUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.BlockType != nil {
		if !models.ValidBlockTypes[*req.BlockType] {
			BadRequest(c, "不支持的内容块类型: "+*req.BlockType)
			return
		}
		updates["block_type"] = *req.BlockType
	}
	if req.Content != nil {
		updates["content"] = req.Content
	}
	if req.Position != nil {
		if *req.Position < 0 {
			BadRequest(c, "position 不能为负数")
			return
		}
		updates["position"] = *req.Position
	}
	if req.IsVisible != nil {
		updates["is_visible"] = *req.IsVisible
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&block).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "更新失败"))
			return
		}
	}
	database.DB.First(&block, block.ID)
	SuccessWithMessage(c, "更新成功", block)
}

// Delete 删除内容块
// @Summary 删除内容块
// @Tags 后台管理-内容块
// @Produce json
// @Security BearerAuth
// @Param id path int true "内容块ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "内容块不存在"
// @Router /api/v1/admin/blocks/{id} [delete]
func (h *ContentBlockHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var block models.ContentBlock
	if err := database.DB.First(&block, id).Error; err != nil {
		NotFound(c, "内容块不存在")
		return
	}
	if err := database.DB.Delete(&block).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// Reorder 批量调整内容块顺序
// @Summary 批量调整内容块顺序
// @Description 请求体为 {id, position} 数组，整批在一个事务内生效
// @Tags 后台管理-内容块
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body []ReorderItem true "排序列表"
// @Success 200 {object} Response "排序更新成功"
// @Failure 500 {object} Response "一个或多个ID无效"
// @Router /api/v1/admin/blocks/reorder [patch]
func (h *ContentBlockHandler) Reorder(c *gin.Context) {
	handleReorder(c, &models.ContentBlock{})
}
