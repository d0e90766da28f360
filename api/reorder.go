package api

import (
	"errors"

	"campus/database"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReorderItem 单条排序项，请求体为 ReorderItem 数组
type ReorderItem struct {
	ID       uint `json:"id"`
	Position int  `json:"position"`
}

// errReorderIDInvalid 批量排序中存在不属于目标集合的 ID
var errReorderIDInvalid = errors.New("部分ID不存在")

// applyReorder 在单个事务内逐行更新 position，整批要么全部生效要么全部回滚。
// 提交的 position 允许重复，列表查询按 position ASC, id ASC 打破平局
func applyReorder(db *gorm.DB, model interface{}, items []ReorderItem) error {
	ids := make([]uint, 0, len(items))
	seen := make(map[uint]bool, len(items))
	for _, it := range items {
		if !seen[it.ID] {
			seen[it.ID] = true
			ids = append(ids, it.ID)
		}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(model).Where("id IN ?", ids).Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(ids)) {
			return errReorderIDInvalid
		}
		for _, it := range items {
			if err := tx.Model(model).Where("id = ?", it.ID).Update("position", it.Position).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// handleReorder 五个可排序集合（菜单/页面/区块分组/内容块/活动分类）共用的排序入口，
// 响应按原样回显应用的 {id, position} 对
func handleReorder(c *gin.Context, model interface{}) {
	var items []ReorderItem
	if err := c.ShouldBindJSON(&items); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if len(items) == 0 {
		BadRequest(c, "排序列表不能为空")
		return
	}
	for _, it := range items {
		if it.ID == 0 {
			BadRequest(c, "排序项缺少有效的 id")
			return
		}
		if it.Position < 0 {
			BadRequest(c, "position 不能为负数")
			return
		}
	}

	if err := applyReorder(database.DB, model, items); err != nil {
		if errors.Is(err, errReorderIDInvalid) {
			// 与原有行为保持一致：不定位具体是哪个 ID 无效，整批失败
			InternalError(c, "排序更新失败：一个或多个ID无效")
			return
		}
		InternalError(c, SafeErrorMessage(err, "排序更新失败"))
		return
	}

	SuccessWithMessage(c, "排序更新成功", items)
}
