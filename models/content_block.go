package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	// BlockTypeText 富文本段落
	BlockTypeText = "text"
	// BlockTypeImage 图片
	BlockTypeImage = "image"
	// BlockTypeList 列表
	BlockTypeList = "list"
	// BlockTypeHTML 原始 HTML
	BlockTypeHTML = "html"
)

// ValidBlockTypes 允许的内容块类型
var ValidBlockTypes = map[string]bool{
	BlockTypeText:  true,
	BlockTypeImage: true,
	BlockTypeList:  true,
	BlockTypeHTML:  true,
}

// ContentBlock 区块内的内容单元，content 的结构由 block_type 决定
type ContentBlock struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	SectionID uint           `json:"section_id" gorm:"not null;index"`
	BlockType string         `json:"block_type" gorm:"size:20;not null"` // text/image/list/html
	Content   datatypes.JSON `json:"content" gorm:"type:json"`
	Position  int            `json:"position" gorm:"default:0;index"`
	IsVisible bool           `json:"is_visible" gorm:"default:true;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (ContentBlock) TableName() string {
	return "content_blocks"
}
