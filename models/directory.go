package models

import (
	"time"

	"gorm.io/gorm"
)

// Department 部门/院系
type Department struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"size:150;not null;uniqueIndex"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Department) TableName() string {
	return "departments"
}

// Designation 职务/头衔
type Designation struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"size:150;not null;uniqueIndex"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Designation) TableName() string {
	return "designations"
}

// Directorate 机构/负责人条目（staff directory）
type Directorate struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Name          string         `json:"name" gorm:"size:150;not null"`
	DepartmentID  *uint          `json:"department_id" gorm:"index"`
	DesignationID *uint          `json:"designation_id" gorm:"index"`
	Email         string         `json:"email" gorm:"size:150"`
	Phone         string         `json:"phone" gorm:"size:50"`
	PhotoURL      string         `json:"photo_url" gorm:"size:500"`
	Department    *Department    `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	Designation   *Designation   `json:"designation,omitempty" gorm:"foreignKey:DesignationID"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Directorate) TableName() string {
	return "directorates"
}

// PageDirectorate 页面与机构条目的关联表，(page_id, directorate_id) 唯一，
// position 决定该页面上机构条目的展示顺序
type PageDirectorate struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	PageID        uint         `json:"page_id" gorm:"not null;uniqueIndex:uk_page_directorate"`
	DirectorateID uint         `json:"directorate_id" gorm:"not null;uniqueIndex:uk_page_directorate"`
	Position      int          `json:"position" gorm:"default:0;index"`
	Directorate   *Directorate `json:"directorate,omitempty" gorm:"foreignKey:DirectorateID"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// TableName 设置表名
func (PageDirectorate) TableName() string {
	return "page_directorates"
}
