package api

import (
	"log"
	"strconv"
	"time"

	"campus/config"
	"campus/database"
	"campus/models"
	"campus/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NotificationHandler 通知公告管理
type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

type NotificationCreateRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Body        string     `json:"body"`
	PublishedAt *time.Time `json:"published_at"`
	Position    int        `json:"position"`
	IsActive    *bool      `json:"is_active"`
}

type NotificationUpdateRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Body        *string    `json:"body"`
	PublishedAt *time.Time `json:"published_at"`
	Position    *int       `json:"position"`
	IsActive    *bool      `json:"is_active"`
}

type AttachmentItem struct {
	Title    string `json:"title" binding:"omitempty,max=200"`
	FileURL  string `json:"file_url" binding:"required,max=500"`
	Position int    `json:"position"`
}

// List 通知列表（分页）
// @Summary 获取通知列表
// @Tags 后台管理-通知
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码，默认1"
// @Param page_size query int false "每页数量，默认20"
// @Success 200 {object} Response "获取成功"
// @Router /api/v1/admin/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	if err := database.DB.Model(&models.Notification{}).Count(&total).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	var notifications []models.Notification
	err := database.DB.
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Order("position ASC, published_at DESC, id DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&notifications).Error
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, PageResponse{Total: total, Page: page, PageSize: pageSize, List: notifications})
}

// Get 通知详情
// @Summary 获取通知详情
// @Tags 后台管理-通知
// @Produce json
// @Security BearerAuth
// @Param id path int true "通知ID"
// @Success 200 {object} Response "获取成功"
// @Failure 404 {object} Response "通知不存在"
// @Router /api/v1/admin/notifications/{id} [get]
func (h *NotificationHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var notification models.Notification
	err = database.DB.
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		First(&notification, id).Error
	if err != nil {
		NotFound(c, "通知不存在")
		return
	}
	Success(c, notification)
}

// Create 创建通知
// @Summary 创建通知
// @Description 创建通知公告。published_at 缺省为当前时间
// @Tags 后台管理-通知
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body NotificationCreateRequest true "通知信息"
// @Success 201 {object} Response "创建成功"
// @Router /api/v1/admin/notifications [post]
func (h *NotificationHandler) Create(c *gin.Context) {
	var req NotificationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if req.Position < 0 {
		BadRequest(c, "position 不能为负数")
		return
	}

	publishedAt := time.Now()
	if req.PublishedAt != nil {
		publishedAt = *req.PublishedAt
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	notification := models.Notification{
		Title:       req.Title,
		Body:        req.Body,
		PublishedAt: publishedAt,
		Position:    req.Position,
		IsActive:    isActive,
	}
	if err := database.DB.Create(&notification).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建失败"))
		return
	}
	Created(c, "创建成功", notification)
}

// Update 更新通知
// @Summary 更新通知
// @Tags 后台管理-通知
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "通知ID"
// @Param request body NotificationUpdateRequest true "更新的通知信息"
// @Success 200 {object} Response "更新成功"
// @Failure 404 {object} Response "通知不存在"
// @Router /api/v1/admin/notifications/{id} [put]
func (h *NotificationHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var notification models.Notification
	if err := database.DB.First(&notification, id).Error; err != nil {
		NotFound(c, "通知不存在")
		return
	}

	var req NotificationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Body != nil {
		updates["body"] = *req.Body
	}
	if req.PublishedAt != nil {
		updates["published_at"] = *req.PublishedAt
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
		if err := database.DB.Model(&notification).Updates(updates).Error; err != nil {
			InternalError(c, SafeErrorMessage(err, "更新失败"))
			return
		}
	}
	database.DB.First(&notification, notification.ID)
	SuccessWithMessage(c, "更新成功", notification)
}

// ReplaceAttachments 整体替换通知附件
// @Summary 替换通知附件
// @Description 用请求体中的附件列表整体替换该通知的附件，在一个事务内完成
// @Tags 后台管理-通知
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "通知ID"
// @Param request body []AttachmentItem true "附件列表"
// @Success 200 {object} Response "更新成功"
// @Failure 404 {object} Response "通知不存在"
// @Router /api/v1/admin/notifications/{id}/attachments [put]
func (h *NotificationHandler) ReplaceAttachments(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var notification models.Notification
	if err := database.DB.First(&notification, id).Error; err != nil {
		NotFound(c, "通知不存在")
		return
	}

	var items []AttachmentItem
	if err := c.ShouldBindJSON(&items); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	for _, item := range items {
		if item.Position < 0 {
			BadRequest(c, "position 不能为负数")
			return
		}
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("notification_id = ?", notification.ID).Delete(&models.NotificationAttachment{}).Error; err != nil {
			return err
		}
		for _, item := range items {
			attachment := models.NotificationAttachment{
				NotificationID: notification.ID,
				Title:          item.Title,
				FileURL:        item.FileURL,
				Position:       item.Position,
			}
			if err := tx.Create(&attachment).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "附件更新失败"))
		return
	}

	database.DB.Preload("Attachments", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC, id ASC")
	}).First(&notification, notification.ID)
	SuccessWithMessage(c, "附件更新成功", notification)
}

// Delete 删除通知（附件记录一并删除）
// @Summary 删除通知
// @Tags 后台管理-通知
// @Produce json
// @Security BearerAuth
// @Param id path int true "通知ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "通知不存在"
// @Router /api/v1/admin/notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var notification models.Notification
	if err := database.DB.First(&notification, id).Error; err != nil {
		NotFound(c, "通知不存在")
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("notification_id = ?", notification.ID).Delete(&models.NotificationAttachment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&notification).Error
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// Notify 向配置的收件人发送通知邮件
// @Summary 发送通知邮件
// @Description 把通知内容通过邮件发给配置的收件人。邮件未启用或发送失败不影响通知本身
// @Tags 后台管理-通知
// @Produce json
// @Security BearerAuth
// @Param id path int true "通知ID"
// @Success 200 {object} Response "已发送"
// @Failure 404 {object} Response "通知不存在"
// @Router /api/v1/admin/notifications/{id}/notify [post]
func (h *NotificationHandler) Notify(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var notification models.Notification
	if err := database.DB.First(&notification, id).Error; err != nil {
		NotFound(c, "通知不存在")
		return
	}

	cfg := config.GlobalConfig
	if cfg == nil || !cfg.Email.Enabled {
		SuccessWithMessage(c, "邮件通知未启用", nil)
		return
	}

	// 邮件发送失败只记录日志，不影响接口结果
	go func(title, body string) {
		if err := service.SendNotificationEmail(title, body); err != nil {
			log.Printf("通知邮件发送失败: %v", err)
		}
	}(notification.Title, notification.Body)

	SuccessWithMessage(c, "通知邮件已发送", nil)
}

// PublicList 前台通知列表（仅启用的通知，分页）
// @Summary 前台获取通知列表
// @Tags 前台
// @Produce json
// @Param page query int false "页码，默认1"
// @Param page_size query int false "每页数量，默认20"
// @Success 200 {object} Response "获取成功"
// @Router /api/v1/notifications [get]
func (h *NotificationHandler) PublicList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := database.DB.Model(&models.Notification{}).Where("is_active = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	var notifications []models.Notification
	err := query.
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Order("position ASC, published_at DESC, id DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&notifications).Error
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, PageResponse{Total: total, Page: page, PageSize: pageSize, List: notifications})
}

// PublicGet 前台通知详情
// @Summary 前台获取通知详情
// @Tags 前台
// @Produce json
// @Param id path int true "通知ID"
// @Success 200 {object} Response "获取成功"
// @Failure 404 {object} Response "通知不存在"
// @Router /api/v1/notifications/{id} [get]
func (h *NotificationHandler) PublicGet(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var notification models.Notification
	err = database.DB.
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Where("is_active = ?", true).
		First(&notification, id).Error
	if err != nil {
		NotFound(c, "通知不存在")
		return
	}
	Success(c, notification)
}
