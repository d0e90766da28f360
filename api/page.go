package api

import (
	"strconv"

	"campus/database"
	"campus/models"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PageHandler 栏目页面管理
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

type PageCreateRequest struct {
	Title    string         `json:"title" binding:"required,min=1,max=200"`
	Slug     string         `json:"slug" binding:"omitempty,max=200"`
	Status   string         `json:"status" binding:"omitempty,oneof=draft published archived"`
	MenuID   *uint          `json:"menu_id"`
	ParentID *uint          `json:"parent_id"`
	Position int            `json:"position"`
	SeoMeta  datatypes.JSON `json:"seo_meta"`
}

// PageUpdateRequest 更新页面内容。父子关系和挂载位置由移动接口负责，这里不接受
type PageUpdateRequest struct {
	Title   *string        `json:"title" binding:"omitempty,min=1,max=200"`
	Slug    *string        `json:"slug" binding:"omitempty,max=200"`
	Status  *string        `json:"status" binding:"omitempty,oneof=draft published archived"`
	SeoMeta datatypes.JSON `json:"seo_meta"`
}

type PageMoveRequest struct {
	ParentID *uint `json:"parent_id"`
	MenuID   *uint `json:"menu_id"`
	Position int   `json:"position"`
}

// List 页面列表
// @Summary 获取页面列表
// @Description 获取全部页面（平铺），可按状态和菜单过滤
// @Tags 后台管理-页面
// @Produce json
// @Security BearerAuth
// @Param status query string false "页面状态 draft/published/archived"
// @Param menu_id query int false "菜单ID"
// @Success 200 {object} Response "获取成功"
// @Router /api/v1/admin/pages [get]
func (h *PageHandler) List(c *gin.Context) {
	query := database.DB.Model(&models.Page{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if menuID := c.Query("menu_id"); menuID != "" {
		query = query.Where("menu_id = ?", menuID)
	}

	var pages []models.Page
	if err := query.Order("position ASC, id ASC").Find(&pages).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, pages)
}

// Tree 页面树
// @Summary 获取页面树
// @Description 全部页面组装成树，每层按 position ASC, id ASC 排序
// @Tags 后台管理-页面
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "获取成功"
// @Router /api/v1/admin/pages/tree [get]
func (h *PageHandler) Tree(c *gin.Context) {
	var pages []models.Page
	if err := database.DB.Find(&pages).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, buildPageTree(pages))
}

// Get 页面详情（含排好序的章节和内容块）
// @Summary 获取页面详情
// @Tags 后台管理-页面
// @Produce json
// @Security BearerAuth
// @Param id path int true "页面ID"
// @Success 200 {object} Response "获取成功"
// @Failure 404 {object} Response "页面不存在"
// @Router /api/v1/admin/pages/{id} [get]
func (h *PageHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var page models.Page
	err = database.DB.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Preload("Sections.Blocks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		First(&page, id).Error
	if err != nil {
		NotFound(c, "页面不存在")
		return
	}
	Success(c, page)
}

// Create 创建页面
// @Summary 创建页面
// @Description 创建页面，未提供 slug 时根据标题自动生成；未提供状态时默认 draft
// @Tags 后台管理-页面
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PageCreateRequest true "页面信息"
// @Success 201 {object} Response "创建成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 404 {object} Response "父页面或菜单不存在"
// @Failure 409 {object} Response "slug 已存在"
// @Router /api/v1/admin/pages [post]
func (h *PageHandler) Create(c *gin.Context) {
	var req PageCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if req.Position < 0 {
		BadRequest(c, "position 不能为负数")
		return
	}

	if req.ParentID != nil {
		var parent models.Page
		if err := database.DB.First(&parent, *req.ParentID).Error; err != nil {
			NotFound(c, "父页面不存在")
			return
		}
	}
	if req.MenuID != nil {
		var menu models.Menu
		if err := database.DB.First(&menu, *req.MenuID).Error; err != nil {
			NotFound(c, "菜单不存在")
			return
		}
	}

	pageSlug := resolveSlug(req.Slug, req.Title)
	var existing models.Page
	if err := database.DB.Where("slug = ?", pageSlug).First(&existing).Error; err == nil {
		Conflict(c, "slug 已存在: "+pageSlug)
		return
	}

	status := req.Status
	if status == "" {
		status = models.PageStatusDraft
	}
	page := models.Page{
		Title:    req.Title,
		Slug:     pageSlug,
		Status:   status,
		MenuID:   req.MenuID,
		ParentID: req.ParentID,
		Position: req.Position,
		SeoMeta:  req.SeoMeta,
	}
	if err := database.DB.Create(&page).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建失败"))
		return
	}
	Created(c, "创建成功", page)
}

// Update 更新页面内容
// @Summary 更新页面
// @Description 更新标题、slug、状态、SEO 信息。提供新标题而未显式提供 slug 时，slug 按新标题重新生成。移动页面请使用 move 接口
// @Tags 后台管理-页面
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "页面ID"
// @Param request body PageUpdateRequest true "更新的页面信息"
// @Success 200 {object} Response "更新成功"
// @Failure 404 {object} Response "页面不存在"
// @Failure 409 {object} Response "slug 已存在"
// @Router /api/v1/admin/pages/{id} [put]
func (h *PageHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var page models.Page
	if err := database.DB.First(&page, id).Error; err != nil {
		NotFound(c, "页面不存在")
		return
	}

	var req PageUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}

	// slug 处理：显式提供则固定使用；显式 slug 为空白时退回按标题生成，
	// 标题同时更新的情况下以新标题为准
	var newSlug string
	if req.Slug != nil {
		title := page.Title
		if req.Title != nil {
			title = *req.Title
		}
		newSlug = resolveSlug(*req.Slug, title)
	} else if req.Title != nil {
		newSlug = deriveSlug(*req.Title)
	}
	if newSlug != "" && newSlug != page.Slug {
		var existing models.Page
		if err := database.DB.Where("slug = ? AND id != ?", newSlug, page.ID).First(&existing).Error; err == nil {
			Conflict(c, "slug 已存在: "+newSlug)
			return
		}
		updates["slug"] = newSlug
	}

	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.SeoMeta != nil {
		updates["seo_meta"] = req.SeoMeta
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&page).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "更新失败"))
			return
		}
	}
	var updated models.Page
	database.DB.First(&updated, page.ID)
	SuccessWithMessage(c, "更新成功", updated)
}

// Move 移动页面
// @Summary 移动页面
// @Description 调整页面的父页面、所属菜单和位置。parent_id 为 null 表示移到根层。禁止移动到自身或自身的子孙页面下
// @Tags 后台管理-页面
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "页面ID"
// @Param request body PageMoveRequest true "移动目标"
// @Success 200 {object} Response "移动成功"
// @Failure 400 {object} Response "目标会形成环"
// @Failure 404 {object} Response "页面不存在"
// @Router /api/v1/admin/pages/{id}/move [patch]
func (h *PageHandler) Move(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var page models.Page
	if err := database.DB.First(&page, id).Error; err != nil {
		NotFound(c, "页面不存在")
		return
	}

	var req PageMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if req.Position < 0 {
		BadRequest(c, "position 不能为负数")
		return
	}

	if req.ParentID != nil {
		if *req.ParentID == page.ID {
			BadRequest(c, "不能把页面移动到自身下")
			return
		}
		var parent models.Page
		if err := database.DB.First(&parent, *req.ParentID).Error; err != nil {
			NotFound(c, "父页面不存在")
			return
		}

		// 环检测：目标父页面不能是本页面的子孙
		var all []models.Page
		if err := database.DB.Find(&all).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "查询失败"))
			return
		}
		if collectPageDescendantIDs(all, page.ID)[*req.ParentID] {
			BadRequest(c, "不能把页面移动到自身的子页面下")
			return
		}
	}
	if req.MenuID != nil {
		var menu models.Menu
		if err := database.DB.First(&menu, *req.MenuID).Error; err != nil {
			NotFound(c, "菜单不存在")
			return
		}
	}

	updates := map[string]interface{}{
		"parent_id": req.ParentID,
		"menu_id":   req.MenuID,
		"position":  req.Position,
	}
	if err := database.DB.Model(&page).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "移动失败"))
		return
	}
	var moved models.Page
	database.DB.First(&moved, page.ID)
	SuccessWithMessage(c, "移动成功", moved)
}

// Delete 删除页面
// @Summary 删除页面
// @Description 删除页面。存在子页面时拒绝删除
// @Tags 后台管理-页面
// @Produce json
// @Security BearerAuth
// @Param id path int true "页面ID"
// @Success 200 {object} Response "删除成功"
// @Failure 400 {object} Response "存在子页面"
// @Failure 404 {object} Response "页面不存在"
// @Router /api/v1/admin/pages/{id} [delete]
func (h *PageHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var page models.Page
	if err := database.DB.First(&page, id).Error; err != nil {
		NotFound(c, "页面不存在")
		return
	}

	var childCount int64
	if err := database.DB.Model(&models.Page{}).Where("parent_id = ?", page.ID).Count(&childCount).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	if childCount > 0 {
		BadRequest(c, "请先删除或移走子页面")
		return
	}

	if err := database.DB.Delete(&page).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// Reorder 批量调整页面顺序
// @Summary 批量调整页面顺序
// @Description 请求体为 {id, position} 数组，整批在一个事务内生效
// @Tags 后台管理-页面
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body []ReorderItem true "排序列表"
// @Success 200 {object} Response "排序更新成功"
// @Failure 500 {object} Response "一个或多个ID无效"
// @Router /api/v1/admin/pages/reorder [patch]
func (h *PageHandler) Reorder(c *gin.Context) {
	handleReorder(c, &models.Page{})
}

// PublicTree 前台页面树（仅已发布页面）
// @Summary 前台获取页面树
// @Tags 前台
// @Produce json
// @Success 200 {object} Response "获取成功"
// @Router /api/v1/pages/tree [get]
func (h *PageHandler) PublicTree(c *gin.Context) {
	var pages []models.Page
	if err := database.DB.Where("status = ?", models.PageStatusPublished).Find(&pages).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, buildPageTree(pages))
}

// PublicGetBySlug 前台按 slug 获取已发布页面
// @Summary 前台获取页面内容
// @Description 按 slug 获取已发布页面，章节按 position 排序，只返回可见的内容块
// @Tags 前台
// @Produce json
// @Param slug path string true "页面 slug"
// @Success 200 {object} Response "获取成功"
// @Failure 404 {object} Response "页面不存在"
// @Router /api/v1/pages/slug/{slug} [get]
func (h *PageHandler) PublicGetBySlug(c *gin.Context) {
	pageSlug := c.Param("slug")
	var page models.Page
	err := database.DB.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Preload("Sections.Blocks", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_visible = ?", true).Order("position ASC, id ASC")
		}).
		Where("slug = ? AND status = ?", pageSlug, models.PageStatusPublished).
		First(&page).Error
	if err != nil {
		NotFound(c, "页面不存在")
		return
	}
	Success(c, page)
}
