package model

import "time"

// Member 对应 members 表，表示隶属于某个部门的人员。
// STT 是部门内的序号，删除或调岗后保持 1..N 连续。
type Member struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	DepartmentID uint        `gorm:"not null;index" json:"departmentId"`
	Department   *Department `gorm:"foreignKey:DepartmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	STT          *int        `gorm:"column:stt" json:"stt"`
	FullName     string      `gorm:"type:varchar(255);not null" json:"fullName"`
	DOB          string      `gorm:"column:dob;type:varchar(32)" json:"dob"`
	Position     string      `gorm:"type:varchar(255)" json:"position"`
	Email        string      `gorm:"type:varchar(255)" json:"email"`
	Phone        string      `gorm:"type:varchar(64)" json:"phone"`
	Notes        string      `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定 GORM 使用的表名
func (Member) TableName() string {
	return "members"
}

// MemberRow 是带部门名称的人员查询结果，用于列表与导出。
type MemberRow struct {
	Member
	DepartmentName string `json:"departmentName"`
}

// MemberFilter 描述人员检索条件。
// HasDocuments 为 nil 表示不限；true/false 分别表示有/无文档。
type MemberFilter struct {
	NameContains     string
	PositionContains string
	DepartmentID     uint
	HasDocuments     *bool
}
