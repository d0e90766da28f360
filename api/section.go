package api

import (
	"strconv"

	"campus/database"
	"campus/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SectionHandler 页面章节管理
type SectionHandler struct{}

func NewSectionHandler() *SectionHandler {
	return &SectionHandler{}
}

type SectionCreateRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=200"`
	Position int    `json:"position"`
}

type SectionUpdateRequest struct {
	Title    *string `json:"title" binding:"omitempty,min=1,max=200"`
	Position *int    `json:"position"`
}

// ListByPage 页面下的章节列表
// @Summary 获取页面章节列表
// @Description 获取指定页面的全部章节（含内容块），按 position ASC, id ASC 排序
// @Tags 后台管理-章节
// @Produce json
// @Security BearerAuth
// @Param id path int true "页面ID"
// @Success 200 {object} Response "获取成功"
// @Failure 404 {object} Response "页面不存在"
// @Router /api/v1/admin/pages/{id}/sections [get]
func (h *SectionHandler) ListByPage(c *gin.Context) {
	pageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var page models.Page
	if err := database.DB.First(&page, pageID).Error; err != nil {
		NotFound(c, "页面不存在")
		return
	}

	var sections []models.PageSection
	err = database.DB.
		Preload("Blocks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Where("page_id = ?", page.ID).
		Order("position ASC, id ASC").
		Find(&sections).Error
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, sections)
}

// Create 在页面下创建章节
// @Summary 创建页面章节
// @Tags 后台管理-章节
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "页面ID"
// @Param request body SectionCreateRequest true "章节信息"
// @Success 201 {object} Response "创建成功"
// @Failure 404 {object} Response "页面不存在"
// @Router /api/v1/admin/pages/{id}/sections [post]
func (h *SectionHandler) Create(c *gin.Context) {
	pageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var page models.Page
	if err := database.DB.First(&page, pageID).Error; err != nil {
		NotFound(c, "页面不存在")
		return
	}

	var req SectionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if req.Position < 0 {
		BadRequest(c, "position 不能为负数")
		return
	}

	section := models.PageSection{
		PageID:   page.ID,
		Title:    req.Title,
		Position: req.Position,
	}
	if err := database.DB.Create(&section).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建失败"))
		return
	}
	Created(c, "创建成功", section)
}

// Update 更新章节
// @Summary 更新页面章节
// @Tags 后台管理-章节
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "章节ID"
// @Param request body SectionUpdateRequest true "更新的章节信息"
// @Success 200 {object} Response "更新成功"
// @Failure 404 {object} Response "章节不存在"
// @Router /api/v1/admin/sections/{id} [put]
func (h *SectionHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var section models.PageSection
	if err := database.DB.First(&section, id).Error; err != nil {
		NotFound(c, "章节不存在")
		return
	}

	var req SectionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Position != nil {
		if *req.Position < 0 {
			BadRequest(c, "position 不能为负数")
			return
		}
		updates["position"] = *req.Position
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&section).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "更新失败"))
			return
		}
	}
	database.DB.First(&section, section.ID)
	SuccessWithMessage(c, "更新成功", section)
}

// Delete 删除章节（其内容块一并删除）
// @Summary 删除页面章节
// @Tags 后台管理-章节
// @Produce json
// @Security BearerAuth
// @Param id path int true "章节ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "章节不存在"
// @Router /api/v1/admin/sections/{id} [delete]
func (h *SectionHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var section models.PageSection
	if err := database.DB.First(&section, id).Error; err != nil {
		NotFound(c, "章节不存在")
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("section_id = ?", section.ID).Delete(&models.ContentBlock{}).Error; err != nil {
			return err
		}
		return tx.Delete(&section).Error
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// Reorder 批量调整章节顺序
// @Summary 批量调整章节顺序
// @Description 请求体为 {id, position} 数组，整批在一个事务内生效
// @Tags 后台管理-章节
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body []ReorderItem true "排序列表"
// @Success 200 {object} Response "排序更新成功"
// @Failure 500 {object} Response "一个或多个ID无效"
// @Router /api/v1/admin/sections/reorder [patch]
func (h *SectionHandler) Reorder(c *gin.Context) {
	handleReorder(c, &models.PageSection{})
}
