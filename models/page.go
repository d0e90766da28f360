package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	// PageStatusDraft 草稿：仅后台可见
	PageStatusDraft = "draft"
	// PageStatusPublished 已发布：前台可见
	PageStatusPublished = "published"
	// PageStatusArchived 已归档：前台不可见，保留数据
	PageStatusArchived = "archived"
)

// Page 站点页面，parent_id 自引用构成页面树，menu_id 决定挂在哪个菜单下
type Page struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Title     string         `json:"title" gorm:"size:200;not null"`
	Slug      string         `json:"slug" gorm:"size:220;not null;uniqueIndex"`
	Position  int            `json:"position" gorm:"default:0;index"`
	Status    string         `json:"status" gorm:"size:20;default:draft;index"` // draft/published/archived
	MenuID    *uint          `json:"menu_id" gorm:"index"`
	ParentID  *uint          `json:"parent_id" gorm:"index"`
	SeoMeta   datatypes.JSON `json:"seo_meta,omitempty" gorm:"type:json"`
	Sections  []PageSection  `json:"sections,omitempty" gorm:"foreignKey:PageID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Page) TableName() string {
	return "pages"
}

// IsPublished 页面是否已发布
func (p *Page) IsPublished() bool {
	return p.Status == PageStatusPublished
}
