package model

import "time"

// WorkHistory 对应 work_histories 表，记录人员的任职/调动决定。
type WorkHistory struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	MemberID          uint      `gorm:"not null;index" json:"memberId"`
	Member            *Member   `gorm:"foreignKey:MemberID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	DecisionNo        string    `gorm:"type:varchar(255)" json:"decisionNo"`
	DecisionDate      string    `gorm:"type:varchar(32)" json:"decisionDate"`
	Positions         string    `gorm:"type:text" json:"positions"`
	PositionHeldSince string    `gorm:"type:varchar(32)" json:"positionHeldSince"`
	JoinedAgencyOn    string    `gorm:"type:varchar(32)" json:"joinedAgencyOn"`
	Note              string    `gorm:"type:text" json:"note"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (WorkHistory) TableName() string {
	return "work_histories"
}

// WorkHistoryRow 是带人员姓名的任职记录。
type WorkHistoryRow struct {
	WorkHistory
	MemberName string `json:"memberName"`
}
