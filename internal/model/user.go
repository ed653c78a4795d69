package model

import "time"

const (
	RoleAdmin  = "ADMIN"
	RoleViewer = "VIEWER"
)

// User 对应数据库中 users 表，表示系统操作员。
// ADMIN 可增删改，VIEWER 只读。
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"username"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"` // Hide password in json output
	Role      string    `gorm:"type:varchar(16);not null;default:'VIEWER'" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定 GORM 使用的表名
func (User) TableName() string {
	return "users"
}

// IsAdmin 判断操作员是否具备写权限。
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
