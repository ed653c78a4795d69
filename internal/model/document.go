package model

import "time"

// Document 对应 documents 表，表示人员档案中的一份文件记录。
// FilePath 指向 uploads 目录中的副本，该文件只属于这一行记录。
type Document struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	MemberID    uint      `gorm:"not null;index" json:"memberId"`
	Member      *Member   `gorm:"foreignKey:MemberID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	TT          *int      `gorm:"column:tt" json:"tt"`
	DocType     string    `gorm:"type:varchar(255)" json:"docType"`
	ReferenceNo string    `gorm:"type:varchar(255)" json:"referenceNo"`
	IssuedOn    string    `gorm:"type:varchar(64)" json:"issuedOn"`
	Subject     string    `gorm:"type:text" json:"subject"`
	Author      string    `gorm:"type:varchar(255)" json:"author"`
	PageCount   string    `gorm:"type:varchar(32)" json:"pageCount"`
	Remarks     string    `gorm:"type:text" json:"remarks"`
	FilePath    *string   `gorm:"type:varchar(1024)" json:"filePath"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定 GORM 使用的表名
func (Document) TableName() string {
	return "documents"
}

// DocumentRow 是带人员姓名的文档查询结果。
type DocumentRow struct {
	Document
	MemberName string `json:"memberName"`
}
