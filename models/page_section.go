package models

import (
	"time"

	"gorm.io/gorm"
)

// PageSection 页面内的区块分组，每个页面下按 position 排序
type PageSection struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	PageID    uint           `json:"page_id" gorm:"not null;index"`
	Title     string         `json:"title" gorm:"size:200;not null"`
	Position  int            `json:"position" gorm:"default:0;index"`
	Blocks    []ContentBlock `json:"blocks,omitempty" gorm:"foreignKey:SectionID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (PageSection) TableName() string {
	return "page_sections"
}
