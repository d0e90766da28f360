package api

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"campus/config"
	"campus/database"
	"campus/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MediaHandler 媒体文件上传管理
type MediaHandler struct{}

func NewMediaHandler() *MediaHandler {
	return &MediaHandler{}
}

// Upload 上传媒体文件
// @Summary 上传媒体文件
// @Description 表单上传文件，folder 限定为 general/pages/events/notifications/directory，默认 general。文件名用 UUID 重命名以避免冲突
// @Tags 后台管理-媒体
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "文件"
// @Param folder formData string false "目录，默认 general"
// @Success 201 {object} Response "上传成功"
// @Failure 400 {object} Response "文件缺失、目录不合法或超出大小限制"
// @Router /api/v1/admin/media [post]
func (h *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "请选择要上传的文件")
		return
	}

	folder := c.DefaultPostForm("folder", models.MediaFolderGeneral)
	if !models.ValidMediaFolders[folder] {
		BadRequest(c, "不支持的目录: "+folder)
		return
	}

	cfg := config.GetConfig()
	maxSize := cfg.Upload.MaxSizeMB * 1024 * 1024
	if file.Size > maxSize {
		BadRequest(c, fmt.Sprintf("文件大小超过限制（最大 %dMB）", cfg.Upload.MaxSizeMB))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	fileName := uuid.New().String() + ext
	dir := filepath.Join(cfg.Upload.Dir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		InternalError(c, SafeErrorMessage(err, "上传失败"))
		return
	}
	dst := filepath.Join(dir, fileName)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		InternalError(c, SafeErrorMessage(err, "上传失败"))
		return
	}

	media := models.Media{
		FileName:     fileName,
		OriginalName: file.Filename,
		MimeType:     file.Header.Get("Content-Type"),
		SizeBytes:    file.Size,
		Folder:       folder,
		URL:          "/uploads/" + folder + "/" + fileName,
	}
	if err := database.DB.Create(&media).Error; err != nil {
		os.Remove(dst)
		InternalError(c, SafeErrorMessage(err, "上传失败"))
		return
	}
	Created(c, "上传成功", media)
}

// List 媒体文件列表（分页，可按目录过滤）
// @Summary 获取媒体文件列表
// @Tags 后台管理-媒体
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码，默认1"
// @Param page_size query int false "每页数量，默认20"
// @Param folder query string false "目录"
// @Success 200 {object} Response "获取成功"
// @Router /api/v1/admin/media [get]
func (h *MediaHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := database.DB.Model(&models.Media{})
	if folder := c.Query("folder"); folder != "" {
		query = query.Where("folder = ?", folder)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	var files []models.Media
	if err := query.Order("id DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&files).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, PageResponse{Total: total, Page: page, PageSize: pageSize, List: files})
}

// Delete 删除媒体文件（磁盘文件与记录一并删除）
// @Summary 删除媒体文件
// @Tags 后台管理-媒体
// @Produce json
// @Security BearerAuth
// @Param id path int true "媒体ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "文件不存在"
// @Router /api/v1/admin/media/{id} [delete]
func (h *MediaHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var media models.Media
	if err := database.DB.First(&media, id).Error; err != nil {
		NotFound(c, "文件不存在")
		return
	}

	if err := database.DB.Delete(&media).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}

	// 磁盘文件删除失败不回滚记录
	cfg := config.GetConfig()
	path := filepath.Join(cfg.Upload.Dir, media.Folder, media.FileName)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("删除磁盘文件失败: %v", err)
	}
	SuccessWithMessage(c, "删除成功", nil)
}
