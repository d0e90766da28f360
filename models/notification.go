package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification 通知公告
type Notification struct {
	ID          uint                     `json:"id" gorm:"primaryKey"`
	Title       string                   `json:"title" gorm:"size:200;not null"`
	Body        string                   `json:"body" gorm:"type:text"`
	PublishedAt time.Time                `json:"published_at" gorm:"index"`
	Position    int                      `json:"position" gorm:"default:0;index"`
	IsActive    bool                     `json:"is_active" gorm:"default:true;index"`
	Attachments []NotificationAttachment `json:"attachments,omitempty" gorm:"foreignKey:NotificationID"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
	DeletedAt   gorm.DeletedAt           `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Notification) TableName() string {
	return "notifications"
}

// NotificationAttachment 通知附件，file_url 指向已上传的媒体文件
type NotificationAttachment struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	NotificationID uint           `json:"notification_id" gorm:"not null;index"`
	Title          string         `json:"title" gorm:"size:200"`
	FileURL        string         `json:"file_url" gorm:"size:500;not null"`
	Position       int            `json:"position" gorm:"default:0;index"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (NotificationAttachment) TableName() string {
	return "notification_attachments"
}
