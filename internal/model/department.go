package model

import "time"

// Department 对应 departments 表，表示一个组织单位（部门/科室）。
// ID 允许调用方显式指定，留空（0）则由数据库自动分配。
type Department struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定 GORM 使用的表名
func (Department) TableName() string {
	return "departments"
}
