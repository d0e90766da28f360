package api

import (
	"strconv"
	"time"

	"campus/database"
	"campus/models"

	"github.com/gin-gonic/gin"
)

// EventHandler 活动与活动分类管理
type EventHandler struct{}

func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

type EventCategoryRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Slug     string `json:"slug" binding:"omitempty,max=120"`
	Position int    `json:"position"`
}

type EventCreateRequest struct {
	CategoryID  *uint      `json:"category_id"`
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Description string     `json:"description"`
	Location    string     `json:"location" binding:"omitempty,max=200"`
	StartAt     time.Time  `json:"start_at" binding:"required"`
	EndAt       *time.Time `json:"end_at"`
	Position    int        `json:"position"`
	IsActive    *bool      `json:"is_active"`
}

type EventUpdateRequest struct {
	CategoryID  *uint      `json:"category_id"`
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description"`
	Location    *string    `json:"location" binding:"omitempty,max=200"`
	StartAt     *time.Time `json:"start_at"`
	EndAt       *time.Time `json:"end_at"`
	Position    *int       `json:"position"`
	IsActive    *bool      `json:"is_active"`
}

// ListCategories 活动分类列表
// @Summary 获取活动分类列表
// @Tags 后台管理-活动
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "获取成功"
// @Router /api/v1/admin/event-categories [get]
func (h *EventHandler) ListCategories(c *gin.Context) {
	var categories []models.EventCategory
	if err := database.DB.Order("position ASC, id ASC").Find(&categories).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, categories)
}

// CreateCategory 创建活动分类
// @Summary 创建活动分类
// @Tags 后台管理-活动
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EventCategoryRequest true "分类信息"
// @Success 201 {object} Response "创建成功"
// @Failure 409 {object} Response "slug 已存在"
// @Router /api/v1/admin/event-categories [post]
func (h *EventHandler) CreateCategory(c *gin.Context) {
	var req EventCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if req.Position < 0 {
		BadRequest(c, "position 不能为负数")
		return
	}

	catSlug := resolveSlug(req.Slug, req.Name)
	var existing models.EventCategory
	if err := database.DB.Where("slug = ?", catSlug).First(&existing).Error; err == nil {
		Conflict(c, "slug 已存在: "+catSlug)
		return
	}

	category := models.EventCategory{
		Name:     req.Name,
		Slug:     catSlug,
		Position: req.Position,
	}
	if err := database.DB.Create(&category).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建失败"))
		return
	}
	Created(c, "创建成功", category)
}

// UpdateCategory 更新活动分类
// @Summary 更新活动分类
// @Tags 后台管理-活动
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "分类ID"
// @Param request body EventCategoryRequest true "分类信息"
// @Success 200 {object} Response "更新成功"
// @Failure 404 {object} Response "分类不存在"
// @Failure 409 {object} Response "slug 已存在"
// @Router /api/v1/admin/event-categories/{id} [put]
func (h *EventHandler) UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var category models.EventCategory
	if err := database.DB.First(&category, id).Error; err != nil {
		NotFound(c, "分类不存在")
		return
	}

	var req EventCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if req.Position < 0 {
		BadRequest(c, "position 不能为负数")
		return
	}

	catSlug := resolveSlug(req.Slug, req.Name)
	if catSlug != category.Slug {
		var existing models.EventCategory
		if err := database.DB.Where("slug = ? AND id != ?", catSlug, category.ID).First(&existing).Error; err == nil {
			Conflict(c, "slug 已存在: "+catSlug)
			return
		}
	}

	updates := map[string]interface{}{
		"name":     req.Name,
		"slug":     catSlug,
		"position": req.Position,
	}
	if err := database.DB.Model(&category).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	database.DB.First(&category, category.ID)
	SuccessWithMessage(c, "更新成功", category)
}

// DeleteCategory 删除活动分类（分类下的活动转为未分类）
// @Summary 删除活动分类
// @Tags 后台管理-活动
// @Produce json
// @Security BearerAuth
// @Param id path int true "分类ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "分类不存在"
// @Router /api/v1/admin/event-categories/{id} [delete]
func (h *EventHandler) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var category models.EventCategory
	if err := database.DB.First(&category, id).Error; err != nil {
		NotFound(c, "分类不存在")
		return
	}

	if err := database.DB.Model(&models.Event{}).Where("category_id = ?", category.ID).
		Update("category_id", nil).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	if err := database.DB.Delete(&category).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// ReorderCategories 批量调整活动分类顺序
// @Summary 批量调整活动分类顺序
// @Tags 后台管理-活动
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body []ReorderItem true "排序列表"
// @Success 200 {object} Response "排序更新成功"
// @Router /api/v1/admin/event-categories/reorder [patch]
func (h *EventHandler) ReorderCategories(c *gin.Context) {
	handleReorder(c, &models.EventCategory{})
}

// List 活动列表（分页，可按分类过滤）
// @Summary 获取活动列表
// @Tags 后台管理-活动
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码，默认1"
// @Param page_size query int false "每页数量，默认20"
// @Param category_id query int false "分类ID"
// @Success 200 {object} Response "获取成功"
// @Router /api/v1/admin/events [get]
func (h *EventHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := database.DB.Model(&models.Event{})
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	var events []models.Event
	err := query.Preload("Category").
		Order("position ASC, start_at DESC, id ASC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&events).Error
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, PageResponse{Total: total, Page: page, PageSize: pageSize, List: events})
}

// Create 创建活动
// @Summary 创建活动
// @Tags 后台管理-活动
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EventCreateRequest true "活动信息"
// @Success 201 {object} Response "创建成功"
// @Failure 400 {object} Response "时间范围无效"
// @Failure 404 {object} Response "分类不存在"
// @Router /api/v1/admin/events [post]
func (h *EventHandler) Create(c *gin.Context) {
	var req EventCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if req.Position < 0 {
		BadRequest(c, "position 不能为负数")
		return
	}
	if req.EndAt != nil && req.EndAt.Before(req.StartAt) {
		BadRequest(c, "结束时间不能早于开始时间")
		return
	}
	if req.CategoryID != nil {
		var category models.EventCategory
		if err := database.DB.First(&category, *req.CategoryID).Error; err != nil {
			NotFound(c, "分类不存在")
			return
		}
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	event := models.Event{
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		Position:    req.Position,
		IsActive:    isActive,
	}
	if err := database.DB.Create(&event).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建失败"))
		return
	}
	Created(c, "创建成功", event)
}

// Update 更新活动
// @Summary 更新活动
// @Tags 后台管理-活动
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "活动ID"
// @Param request body EventUpdateRequest true "更新的活动信息"
// @Success 200 {object} Response "更新成功"
// @Failure 404 {object} Response "活动不存在"
// @Router /api/v1/admin/events/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var event models.Event
	if err := database.DB.First(&event, id).Error; err != nil {
		NotFound(c, "活动不存在")
		return
	}

	var req EventUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.CategoryID != nil {
		var category models.EventCategory
		if err := database.DB.First(&category, *req.CategoryID).Error; err != nil {
			NotFound(c, "分类不存在")
			return
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.StartAt != nil {
		updates["start_at"] = *req.StartAt
	}
	if req.EndAt != nil {
		updates["end_at"] = *req.EndAt
	}
	if req.Position != nil {
		if *req.Position < 0 {
			BadRequest(c, "position 不能为负数")
			return
		}
		updates["position"] = *req.Position
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&event).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "更新失败"))
			return
		}
	}
	database.DB.Preload("Category").First(&event, event.ID)
	SuccessWithMessage(c, "更新成功", event)
}

// Delete 删除活动
// @Summary 删除活动
// @Tags 后台管理-活动
// @Produce json
// @Security BearerAuth
// @Param id path int true "活动ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "活动不存在"
// @Router /api/v1/admin/events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var event models.Event
	if err := database.DB.First(&event, id).Error; err != nil {
		NotFound(c, "活动不存在")
		return
	}
	if err := database.DB.Delete(&event).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// PublicListCategories 前台活动分类
// @Summary 前台获取活动分类
// @Tags 前台
// @Produce json
// @Success 200 {object} Response "获取成功"
// @Router /api/v1/event-categories [get]
func (h *EventHandler) PublicListCategories(c *gin.Context) {
	var categories []models.EventCategory
	if err := database.DB.Order("position ASC, id ASC").Find(&categories).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, categories)
}

// PublicList 前台活动列表（仅启用的活动，分页，可按分类过滤）
// @Summary 前台获取活动列表
// @Tags 前台
// @Produce json
// @Param page query int false "页码，默认1"
// @Param page_size query int false "每页数量，默认20"
// @Param category_id query int false "分类ID"
// @Success 200 {object} Response "获取成功"
// @Router /api/v1/events [get]
func (h *EventHandler) PublicList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := database.DB.Model(&models.Event{}).Where("is_active = ?", true)
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	var events []models.Event
	err := query.Preload("Category").
		Order("position ASC, start_at DESC, id ASC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&events).Error
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, PageResponse{Total: total, Page: page, PageSize: pageSize, List: events})
}
