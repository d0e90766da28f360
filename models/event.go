package models

import (
	"time"

	"gorm.io/gorm"
)

// EventCategory 活动分类
type EventCategory struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"size:100;not null"`
	Slug      string         `json:"slug" gorm:"size:120;not null;uniqueIndex"`
	Position  int            `json:"position" gorm:"default:0;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (EventCategory) TableName() string {
	return "event_categories"
}

// Event 校园活动/日程
type Event struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	CategoryID  *uint          `json:"category_id" gorm:"index"`
	Title       string         `json:"title" gorm:"size:200;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Location    string         `json:"location" gorm:"size:200"`
	StartAt     time.Time      `json:"start_at" gorm:"not null;index"`
	EndAt       *time.Time     `json:"end_at"`
	Position    int            `json:"position" gorm:"default:0;index"`
	IsActive    bool           `json:"is_active" gorm:"default:true;index"`
	Category    *EventCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Event) TableName() string {
	return "events"
}
