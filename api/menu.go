package api

import (
	"strconv"

	"campus/database"
	"campus/models"

	"github.com/gin-gonic/gin"
)

// MenuHandler 导航菜单管理
type MenuHandler struct{}

func NewMenuHandler() *MenuHandler {
	return &MenuHandler{}
}

type MenuCreateRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Slug     string `json:"slug" binding:"omitempty,max=120"`
	Position int    `json:"position"`
	IsActive *bool  `json:"is_active"`
}

type MenuUpdateRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	Slug     *string `json:"slug" binding:"omitempty,max=120"`
	Position *int    `json:"position"`
	IsActive *bool   `json:"is_active"`
}

// List 菜单列表（按 position 排序）
// @Summary 获取菜单列表
// @Description 获取全部导航菜单，按 position ASC, id ASC 排序
// @Tags 后台管理-菜单
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "获取成功"
// @Router /api/v1/admin/menus [get]
func (h *MenuHandler) List(c *gin.Context) {
	var menus []models.Menu
	if err := database.DB.Order("position ASC, id ASC").Find(&menus).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, menus)
}

// Get 菜单详情
// @Summary 获取菜单详情
// @Tags 后台管理-菜单
// @Produce json
// @Security BearerAuth
// @Param id path int true "菜单ID"
// @Success 200 {object} Response "获取成功"
// @Failure 404 {object} Response "菜单不存在"
// @Router /api/v1/admin/menus/{id} [get]
func (h *MenuHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var menu models.Menu
	if err := database.DB.First(&menu, id).Error; err != nil {
		NotFound(c, "菜单不存在")
		return
	}
	Success(c, menu)
}

// Create 创建菜单
// @Summary 创建菜单
// @Description 创建导航菜单，未提供 slug 时根据名称自动生成
// @Tags 后台管理-菜单
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MenuCreateRequest true "菜单信息"
// @Success 201 {object} Response "创建成功"
// @Failure 400 {object} Response "参数错误"
// @Failure 409 {object} Response "slug 已存在"
// @Router /api/v1/admin/menus [post]
func (h *MenuHandler) Create(c *gin.Context) {
	var req MenuCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if req.Position < 0 {
		BadRequest(c, "position 不能为负数")
		return
	}

	menuSlug := resolveSlug(req.Slug, req.Name)
	var existing models.Menu
	if err := database.DB.Where("slug = ?", menuSlug).First(&existing).Error; err == nil {
		Conflict(c, "slug 已存在: "+menuSlug)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	menu := models.Menu{
		Name:     req.Name,
		Slug:     menuSlug,
		Position: req.Position,
		IsActive: isActive,
	}
	if err := database.DB.Create(&menu).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建失败"))
		return
	}
	Created(c, "创建成功", menu)
}

// Update 更新菜单
// @Summary 更新菜单
// @Description 更新菜单。提供新名称而未显式提供 slug 时，slug 按新名称重新生成
// @Tags 后台管理-菜单
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "菜单ID"
// @Param request body MenuUpdateRequest true "更新的菜单信息"
// @Success 200 {object} Response "更新成功"
// @Failure 404 {object} Response "菜单不存在"
// @Failure 409 {object} Response "slug 已存在"
// @Router /api/v1/admin/menus/{id} [put]
func (h *MenuHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var menu models.Menu
	if err := database.DB.First(&menu, id).Error; err != nil {
		NotFound(c, "菜单不存在")
		return
	}

	var req MenuUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}

	// slug 处理：显式提供则固定使用；显式 slug 为空白时退回按名称生成，
	// 名称同时更新的情况下以新名称为准
	var newSlug string
	if req.Slug != nil {
		name := menu.Name
		if req.Name != nil {
			name = *req.Name
		}
		newSlug = resolveSlug(*req.Slug, name)
	} else if req.Name != nil {
		newSlug = deriveSlug(*req.Name)
	}
	if newSlug != "" && newSlug != menu.Slug {
		var existing models.Menu
		if err := database.DB.Where("slug = ? AND id != ?", newSlug, menu.ID).First(&existing).Error; err == nil {
			Conflict(c, "slug 已存在: "+newSlug)
			return
		}
		updates["slug"] = newSlug
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
		if err := database.DB.Model(&menu).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "更新失败"))
			return
		}
	}
	var updated models.Menu
	database.DB.First(&updated, menu.ID)
	SuccessWithMessage(c, "更新成功", updated)
}

// Delete 删除菜单
// @Summary 删除菜单
// @Tags 后台管理-菜单
// @Produce json
// @Security BearerAuth
// @Param id path int true "菜单ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "菜单不存在"
// @Router /api/v1/admin/menus/{id} [delete]
func (h *MenuHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var menu models.Menu
	if err := database.DB.First(&menu, id).Error; err != nil {
		NotFound(c, "菜单不存在")
		return
	}
	if err := database.DB.Delete(&menu).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// Reorder 批量调整菜单顺序
// @Summary 批量调整菜单顺序
// @Description 请求体为 {id, position} 数组，整批在一个事务内生效
// @Tags 后台管理-菜单
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body []ReorderItem true "排序列表"
// @Success 200 {object} Response "排序更新成功"
// @Failure 500 {object} Response "一个或多个ID无效"
// @Router /api/v1/admin/menus/reorder [patch]
func (h *MenuHandler) Reorder(c *gin.Context) {
	handleReorder(c, &models.Menu{})
}

// MenuWithPages 前台菜单及其挂载的页面树
type MenuWithPages struct {
	models.Menu
	Pages []*PageTreeNode `json:"pages"`
}

// PublicList 前台菜单（仅启用的菜单，附已发布页面树）
// @Summary 前台获取导航菜单
// @Description 返回启用中的菜单，每个菜单附挂载其下的已发布页面树
// @Tags 前台
// @Produce json
// @Success 200 {object} Response "获取成功"
// @Router /api/v1/menus [get]
func (h *MenuHandler) PublicList(c *gin.Context) {
	var menus []models.Menu
	if err := database.DB.Where("is_active = ?", true).Order("position ASC, id ASC").Find(&menus).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	var pages []models.Page
	if err := database.DB.Where("status = ?", models.PageStatusPublished).Find(&pages).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	result := make([]MenuWithPages, 0, len(menus))
	for _, m := range menus {
		var menuPages []models.Page
		for _, p := range pages {
			if p.MenuID != nil && *p.MenuID == m.ID {
				menuPages = append(menuPages, p)
			}
		}
		result = append(result, MenuWithPages{Menu: m, Pages: buildPageTree(menuPages)})
	}
	Success(c, result)
}
