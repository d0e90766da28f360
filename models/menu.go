package models

import (
	"time"

	"gorm.io/gorm"
)

// Menu 站点导航菜单，页面通过 menu_id 挂到某个菜单下
type Menu struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"size:100;not null"`
	Slug      string         `json:"slug" gorm:"size:120;not null;uniqueIndex"`
	Position  int            `json:"position" gorm:"default:0;index"`
	IsActive  bool           `json:"is_active" gorm:"default:true;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Menu) TableName() string {
	return "menus"
}
