package api

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"campus/database"
	"campus/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 数据导出
type ExportHandler struct{}

func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// ExportEvents 导出活动为 Excel
// @Summary 导出活动
// @Description 导出全部活动为 xlsx 文件，可按分类过滤
// @Tags 后台管理-导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param category_id query int false "分类ID"
// @Success 200 {file} binary "xlsx 文件"
// @Router /api/v1/admin/export/events [get]
func (h *ExportHandler) ExportEvents(c *gin.Context) {
	query := database.DB.Preload("Category")
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	var events []models.Event
	if err := query.Order("start_at DESC, id ASC").Find(&events).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "活动"
	f.SetSheetName("Sheet1", sheet)
	headers := []string{"ID", "标题", "分类", "地点", "开始时间", "结束时间", "状态"}
	for i, title := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, title)
	}

	for row, event := range events {
		category := ""
		if event.Category != nil {
			category = event.Category.Name
		}
		endAt := ""
		if event.EndAt != nil {
			endAt = event.EndAt.Format("2006-01-02 15:04")
		}
		status := "停用"
		if event.IsActive {
			status = "启用"
		}
		values := []interface{}{
			event.ID,
			event.Title,
			category,
			event.Location,
			event.StartAt.Format("2006-01-02 15:04"),
			endAt,
			status,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	fileName := fmt.Sprintf("events_%s.xlsx", time.Now().Format("20060102150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		InternalError(c, SafeErrorMessage(err, "导出失败"))
	}
}

// ExportDirectorates 导出机构目录为 Excel
// @Summary 导出机构目录
// @Description 导出全部机构条目为 xlsx 文件
// @Tags 后台管理-导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary "xlsx 文件"
// @Router /api/v1/admin/export/directorates [get]
func (h *ExportHandler) ExportDirectorates(c *gin.Context) {
	var directorates []models.Directorate
	err := database.DB.Preload("Department").Preload("Designation").
		Order("name ASC").Find(&directorates).Error
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "机构目录"
	f.SetSheetName("Sheet1", sheet)
	headers := []string{"ID", "姓名", "部门", "职务", "邮箱", "电话"}
	for i, title := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, title)
	}

	for row, d := range directorates {
		department := ""
		if d.Department != nil {
			department = d.Department.Name
		}
		designation := ""
		if d.Designation != nil {
			designation = d.Designation.Name
		}
		values := []interface{}{d.ID, d.Name, department, designation, d.Email, d.Phone}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	fileName := fmt.Sprintf("directorates_%s.xlsx", time.Now().Format("20060102150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		InternalError(c, SafeErrorMessage(err, "导出失败"))
	}
}

// ExportNotificationsCSV 导出通知为 CSV
// @Summary 导出通知
// @Description 导出全部通知为 CSV 文件，带 UTF-8 BOM 便于 Excel 打开
// @Tags 后台管理-导出
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} binary "CSV 文件"
// @Router /api/v1/admin/export/notifications [get]
func (h *ExportHandler) ExportNotificationsCSV(c *gin.Context) {
	var notifications []models.Notification
	err := database.DB.Order("published_at DESC, id DESC").Find(&notifications).Error
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	fileName := fmt.Sprintf("notifications_%s.csv", time.Now().Format("20060102150405"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Status(http.StatusOK)

	// UTF-8 BOM，避免 Excel 打开乱码
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})
	writer := csv.NewWriter(c.Writer)
	writer.Write([]string{"ID", "标题", "发布时间", "状态"})
	for _, n := range notifications {
		status := "停用"
		if n.IsActive {
			status = "启用"
		}
		writer.Write([]string{
			strconv.FormatUint(uint64(n.ID), 10),
			n.Title,
			n.PublishedAt.Format("2006-01-02 15:04"),
			status,
		})
	}
	writer.Flush()
}
