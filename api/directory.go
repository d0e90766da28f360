package api

import (
	"strconv"

	"campus/database"
	"campus/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DirectoryHandler 机构目录管理：部门、职务、机构条目及页面挂载
type DirectoryHandler struct{}

func NewDirectoryHandler() *DirectoryHandler {
	return &DirectoryHandler{}
}

type NameRequest struct {
	Name string `json:"name" binding:"required,min=1,max=150"`
}

type DirectorateRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=150"`
	DepartmentID  *uint  `json:"department_id"`
	DesignationID *uint  `json:"designation_id"`
	Email         string `json:"email" binding:"omitempty,email,max=150"`
	Phone         string `json:"phone" binding:"omitempty,max=50"`
	PhotoURL      string `json:"photo_url" binding:"omitempty,max=500"`
}

type PageDirectorateItem struct {
	DirectorateID uint `json:"directorate_id" binding:"required"`
	Position      int  `json:"position"`
}

// ListDepartments 部门列表
// @Summary 获取部门列表
// @Tags 后台管理-机构目录
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "获取成功"
// @Router /api/v1/admin/departments [get]
func (h *DirectoryHandler) ListDepartments(c *gin.Context) {
	var departments []models.Department
	if err := database.DB.Order("name ASC").Find(&departments).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, departments)
}

// CreateDepartment 创建部门
// @Summary 创建部门
// @Tags 后台管理-机构目录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body NameRequest true "部门信息"
// @Success 201 {object} Response "创建成功"
// @Failure 409 {object} Response "名称已存在"
// @Router /api/v1/admin/departments [post]
func (h *DirectoryHandler) CreateDepartment(c *gin.Context) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	var existing models.Department
	if err := database.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		Conflict(c, "部门名称已存在: "+req.Name)
		return
	}
	department := models.Department{Name: req.Name}
	if err := database.DB.Create(&department).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建失败"))
		return
	}
	Created(c, "创建成功", department)
}

// UpdateDepartment 更新部门
// @Summary 更新部门
// @Tags 后台管理-机构目录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "部门ID"
// @Param request body NameRequest true "部门信息"
// @Success 200 {object} Response "更新成功"
// @Failure 404 {object} Response "部门不存在"
// @Router /api/v1/admin/departments/{id} [put]
func (h *DirectoryHandler) UpdateDepartment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var department models.Department
	if err := database.DB.First(&department, id).Error; err != nil {
		NotFound(c, "部门不存在")
		return
	}
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if req.Name != department.Name {
		var existing models.Department
		if err := database.DB.Where("name = ? AND id != ?", req.Name, department.ID).First(&existing).Error; err == nil {
			Conflict(c, "部门名称已存在: "+req.Name)
			return
		}
	}
	if err := database.DB.Model(&department).Update("name", req.Name).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	database.DB.First(&department, department.ID)
	SuccessWithMessage(c, "更新成功", department)
}

// DeleteDepartment 删除部门（关联的机构条目转为无部门）
// @Summary 删除部门
// @Tags 后台管理-机构目录
// @Produce json
// @Security BearerAuth
// @Param id path int true "部门ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "部门不存在"
// @Router /api/v1/admin/departments/{id} [delete]
func (h *DirectoryHandler) DeleteDepartment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var department models.Department
	if err := database.DB.First(&department, id).Error; err != nil {
		NotFound(c, "部门不存在")
		return
	}
	if err := database.DB.Model(&models.Directorate{}).Where("department_id = ?", department.ID).
		Update("department_id", nil).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	if err := database.DB.Delete(&department).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// ListDesignations 职务列表
// @Summary 获取职务列表
// @Tags 后台管理-机构目录
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "获取成功"
// @Router /api/v1/admin/designations [get]
func (h *DirectoryHandler) ListDesignations(c *gin.Context) {
	var designations []models.Designation
	if err := database.DB.Order("name ASC").Find(&designations).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, designations)
}

// CreateDesignation 创建职务
// @Summary 创建职务
// @Tags 后台管理-机构目录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body NameRequest true "职务信息"
// @Success 201 {object} Response "创建成功"
// @Failure 409 {object} Response "名称已存在"
// @Router /api/v1/admin/designations [post]
func (h *DirectoryHandler) CreateDesignation(c *gin.Context) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	var existing models.Designation
	if err := database.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		Conflict(c, "职务名称已存在: "+req.Name)
		return
	}
	designation := models.Designation{Name: req.Name}
	if err := database.DB.Create(&designation).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建失败"))
		return
	}
	Created(c, "创建成功", designation)
}

// UpdateDesignation 更新职务
// @Summary 更新职务
// @Tags 后台管理-机构目录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "职务ID"
// @Param request body NameRequest true "职务信息"
// @Success 200 {object} Response "更新成功"
// @Failure 404 {object} Response "职务不存在"
// @Router /api/v1/admin/designations/{id} [put]
func (h *DirectoryHandler) UpdateDesignation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var designation models.Designation
	if err := database.DB.First(&designation, id).Error; err != nil {
		NotFound(c, "职务不存在")
		return
	}
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if req.Name != designation.Name {
		var existing models.Designation
		if err := database.DB.Where("name = ? AND id != ?", req.Name, designation.ID).First(&existing).Error; err == nil {
			Conflict(c, "职务名称已存在: "+req.Name)
			return
		}
	}
	if err := database.DB.Model(&designation).Update("name", req.Name).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	database.DB.First(&designation, designation.ID)
	SuccessWithMessage(c, "更新成功", designation)
}

// DeleteDesignation 删除职务（关联的机构条目转为无职务）
// @Summary 删除职务
// @Tags 后台管理-机构目录
// @Produce json
// @Security BearerAuth
// @Param id path int true "职务ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "职务不存在"
// @Router /api/v1/admin/designations/{id} [delete]
func (h *DirectoryHandler) DeleteDesignation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var designation models.Designation
	if err := database.DB.First(&designation, id).Error; err != nil {
		NotFound(c, "职务不存在")
		return
	}
	if err := database.DB.Model(&models.Directorate{}).Where("designation_id = ?", designation.ID).
		Update("designation_id", nil).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	if err := database.DB.Delete(&designation).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// ListDirectorates 机构条目列表
// @Summary 获取机构条目列表
// @Tags 后台管理-机构目录
// @Produce json
// @Security BearerAuth
// @Param department_id query int false "部门ID"
// @Success 200 {object} Response "获取成功"
// @Router /api/v1/admin/directorates [get]
func (h *DirectoryHandler) ListDirectorates(c *gin.Context) {
	query := database.DB.Preload("Department").Preload("Designation")
	if departmentID := c.Query("department_id"); departmentID != "" {
		query = query.Where("department_id = ?", departmentID)
	}
	var directorates []models.Directorate
	if err := query.Order("name ASC").Find(&directorates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, directorates)
}

// CreateDirectorate 创建机构条目
// @Summary 创建机构条目
// @Tags 后台管理-机构目录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DirectorateRequest true "机构条目信息"
// @Success 201 {object} Response "创建成功"
// @Failure 404 {object} Response "部门或职务不存在"
// @Router /api/v1/admin/directorates [post]
func (h *DirectoryHandler) CreateDirectorate(c *gin.Context) {
	var req DirectorateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if req.DepartmentID != nil {
		var department models.Department
		if err := database.DB.First(&department, *req.DepartmentID).Error; err != nil {
			NotFound(c, "部门不存在")
			return
		}
	}
	if req.DesignationID != nil {
		var designation models.Designation
		if err := database.DB.First(&designation, *req.DesignationID).Error; err != nil {
			NotFound(c, "职务不存在")
			return
		}
	}

	directorate := models.Directorate{
		Name:          req.Name,
		DepartmentID:  req.DepartmentID,
		DesignationID: req.DesignationID,
		Email:         req.Email,
		Phone:         req.Phone,
		PhotoURL:      req.PhotoURL,
	}
	if err := database.DB.Create(&directorate).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建失败"))
		return
	}
	Created(c, "创建成功", directorate)
}

// UpdateDirectorate 更新机构条目
// @Summary 更新机构条目
// @Tags 后台管理-机构目录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "条目ID"
// @Param request body DirectorateRequest true "机构条目信息"
// @Success 200 {object} Response "更新成功"
// @Failure 404 {object} Response "条目不存在"
// @Router /api/v1/admin/directorates/{id} [put]
func (h *DirectoryHandler) UpdateDirectorate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var directorate models.Directorate
	if err := database.DB.First(&directorate, id).Error; err != nil {
		NotFound(c, "条目不存在")
		return
	}
	var req DirectorateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if req.DepartmentID != nil {
		var department models.Department
		if err := database.DB.First(&department, *req.DepartmentID).Error; err != nil {
			NotFound(c, "部门不存在")
			return
		}
	}
	if req.DesignationID != nil {
		var designation models.Designation
		if err := database.DB.First(&designation, *req.DesignationID).Error; err != nil {
			NotFound(c, "职务不存在")
			return
		}
	}

	updates := map[string]interface{}{
		"name":           req.Name,
		"department_id":  req.DepartmentID,
		"designation_id": req.DesignationID,
		"email":          req.Email,
		"phone":          req.Phone,
		"photo_url":      req.PhotoURL,
	}
	if err := database.DB.Model(&directorate).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	database.DB.Preload("Department").Preload("Designation").First(&directorate, directorate.ID)
	SuccessWithMessage(c, "更新成功", directorate)
}

// DeleteDirectorate 删除机构条目（页面挂载一并清除）
// @Summary 删除机构条目
// @Tags 后台管理-机构目录
// @Produce json
// @Security BearerAuth
// @Param id path int true "条目ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "条目不存在"
// @Router /api/v1/admin/directorates/{id} [delete]
func (h *DirectoryHandler) DeleteDirectorate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var directorate models.Directorate
	if err := database.DB.First(&directorate, id).Error; err != nil {
		NotFound(c, "条目不存在")
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("directorate_id = ?", directorate.ID).Delete(&models.PageDirectorate{}).Error; err != nil {
			return err
		}
		return tx.Delete(&directorate).Error
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// ListPageDirectorates 页面挂载的机构条目
// @Summary 获取页面挂载的机构条目
// @Tags 后台管理-机构目录
// @Produce json
// @Security BearerAuth
// @Param id path int true "页面ID"
// @Success 200 {object} Response "获取成功"
// @Failure 404 {object} Response "页面不存在"
// @Router /api/v1/admin/pages/{id}/directorates [get]
func (h *DirectoryHandler) ListPageDirectorates(c *gin.Context) {
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

	var links []models.PageDirectorate
	err = database.DB.
		Preload("Directorate").
		Preload("Directorate.Department").
		Preload("Directorate.Designation").
		Where("page_id = ?", page.ID).
		Order("position ASC, id ASC").
		Find(&links).Error
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, links)
}

// ReplacePageDirectorates 整体替换页面挂载的机构条目
// @Summary 替换页面挂载的机构条目
// @Description 用请求体中的 {directorate_id, position} 列表整体替换页面的机构挂载，在一个事务内完成
// @Tags 后台管理-机构目录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "页面ID"
// @Param request body []PageDirectorateItem true "挂载列表"
// @Success 200 {object} Response "更新成功"
// @Failure 404 {object} Response "页面或条目不存在"
// @Router /api/v1/admin/pages/{id}/directorates [put]
func (h *DirectoryHandler) ReplacePageDirectorates(c *gin.Context) {
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

	var items []PageDirectorateItem
	if err := c.ShouldBindJSON(&items); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	seen := make(map[uint]bool, len(items))
	for _, item := range items {
		if item.Position < 0 {
			BadRequest(c, "position 不能为负数")
			return
		}
		if seen[item.DirectorateID] {
			BadRequest(c, "机构条目重复")
			return
		}
		seen[item.DirectorateID] = true
	}

	if len(items) > 0 {
		ids := make([]uint, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.DirectorateID)
		}
		var count int64
		if err := database.DB.Model(&models.Directorate{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "查询失败"))
			return
		}
		if count != int64(len(ids)) {
			NotFound(c, "一个或多个机构条目不存在")
			return
		}
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("page_id = ?", page.ID).Delete(&models.PageDirectorate{}).Error; err != nil {
			return err
		}
		for _, item := range items {
			link := models.PageDirectorate{
				PageID:        page.ID,
				DirectorateID: item.DirectorateID,
				Position:      item.Position,
			}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	SuccessWithMessage(c, "更新成功", items)
}

// PublicListDepartments 前台部门列表
// @Summary 前台获取部门列表
// @Tags 前台
// @Produce json
// @Success 200 {object} Response "获取成功"
// @Router /api/v1/departments [get]
func (h *DirectoryHandler) PublicListDepartments(c *gin.Context) {
	h.ListDepartments(c)
}

// PublicListDirectorates 前台机构条目列表
// @Summary 前台获取机构条目列表
// @Tags 前台
// @Produce json
// @Param department_id query int false "部门ID"
// @Success 200 {object} Response "获取成功"
// @Router /api/v1/directorates [get]
func (h *DirectoryHandler) PublicListDirectorates(c *gin.Context) {
	h.ListDirectorates(c)
}

// PublicPageDirectorates 前台获取页面挂载的机构条目（仅已发布页面）
// @Summary 前台获取页面机构条目
// @Tags 前台
// @Produce json
// @Param slug path string true "页面 slug"
// @Success 200 {object} Response "获取成功"
// @Failure 404 {object} Response "页面不存在"
// @Router /api/v1/pages/slug/{slug}/directorates [get]
func (h *DirectoryHandler) PublicPageDirectorates(c *gin.Context) {
	pageSlug := c.Param("slug")
	var page models.Page
	if err := database.DB.Where("slug = ? AND status = ?", pageSlug, models.PageStatusPublished).First(&page).Error; err != nil {
		NotFound(c, "页面不存在")
		return
	}

	var links []models.PageDirectorate
	err := database.DB.
		Preload("Directorate").
		Preload("Directorate.Department").
		Preload("Directorate.Designation").
		Where("page_id = ?", page.ID).
		Order("position ASC, id ASC").
		Find(&links).Error
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, links)
}
