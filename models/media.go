package models

import (
	"time"

	"gorm.io/gorm"
)

// 上传目录枚举
const (
	MediaFolderGeneral       = "general"
	MediaFolderPages         = "pages"
	MediaFolderEvents        = "events"
	MediaFolderNotifications = "notifications"
	MediaFolderDirectory     = "directory"
)

// ValidMediaFolders 允许的上传目录
var ValidMediaFolders = map[string]bool{
	MediaFolderGeneral:       true,
	MediaFolderPages:         true,
	MediaFolderEvents:        true,
	MediaFolderNotifications: true,
	MediaFolderDirectory:     true,
}

// Media 上传的媒体文件记录，文件本体存磁盘，经 /uploads 静态服务访问
type Media struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	FileName     string         `json:"file_name" gorm:"size:255;not null;uniqueIndex"` // 生成的磁盘文件名
	OriginalName string         `json:"original_name" gorm:"size:255;not null"`
	MimeType     string         `json:"mime_type" gorm:"size:100"`
	SizeBytes    int64          `json:"size_bytes"`
	Folder       string         `json:"folder" gorm:"size:50;default:general;index"`
	URL          string         `json:"url" gorm:"size:500;not null"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Media) TableName() string {
	return "media"
}
