package model

// AwardYear 表示一个表彰年度，year 唯一。
type AwardYear struct {
	ID   uint `gorm:"primaryKey" json:"id"`
	Year int  `gorm:"not null;uniqueIndex" json:"year"`
}

func (AwardYear) TableName() string { return "award_years" }

// AwardTitle 表示一个荣誉称号，Scope 为适用范围，Level 为级别（用于统计）。
type AwardTitle struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"type:varchar(255);not null" json:"name"`
	Scope string `gorm:"type:varchar(255)" json:"scope"`
	Level string `gorm:"type:varchar(64)" json:"level"`
}

func (AwardTitle) TableName() string { return "award_titles" }

// AwardAuthority 表示作出表彰决定的机关。
type AwardAuthority struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Level string `gorm:"type:varchar(64)" json:"level"`
}

func (AwardAuthority) TableName() string { return "award_authorities" }

// AwardBatch 聚合一次表彰决定：年度 + 称号 + 机关 + 决定文号。
type AwardBatch struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	AwardYearID      uint            `gorm:"not null;index" json:"awardYearId"`
	AwardYear        *AwardYear      `gorm:"foreignKey:AwardYearID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	AwardTitleID     uint            `gorm:"not null;index" json:"awardTitleId"`
	AwardTitle       *AwardTitle     `gorm:"foreignKey:AwardTitleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	AwardAuthorityID *uint           `gorm:"index" json:"awardAuthorityId"`
	AwardAuthority   *AwardAuthority `gorm:"foreignKey:AwardAuthorityID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	DecisionNo       string          `gorm:"type:varchar(255)" json:"decisionNo"`
	DecisionDate     string          `gorm:"type:varchar(32)" json:"decisionDate"`
	Note             string          `gorm:"type:text" json:"note"`
}

func (AwardBatch) TableName() string { return "award_batches" }

// AwardBatchRow 是带年度、称号、机关名称的表彰批次。
type AwardBatchRow struct {
	AwardBatch
	Year          int    `json:"year"`
	TitleName     string `json:"titleName"`
	AuthorityName string `json:"authorityName"`
}

// StaffAward 把一次表彰批次授予某个人员。
type StaffAward struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	MemberID     uint        `gorm:"not null;index" json:"memberId"`
	Member       *Member     `gorm:"foreignKey:MemberID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	AwardBatchID uint        `gorm:"not null;index" json:"awardBatchId"`
	AwardBatch   *AwardBatch `gorm:"foreignKey:AwardBatchID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Note         string      `gorm:"type:text" json:"note"`
}

func (StaffAward) TableName() string { return "staff_awards" }

// DepartmentAward 把一次表彰批次授予某个部门（集体）。
type DepartmentAward struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	DepartmentID uint        `gorm:"not null;index" json:"departmentId"`
	Department   *Department `gorm:"foreignKey:DepartmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	AwardBatchID uint        `gorm:"not null;index" json:"awardBatchId"`
	AwardBatch   *AwardBatch `gorm:"foreignKey:AwardBatchID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Note         string      `gorm:"type:text" json:"note"`
}

func (DepartmentAward) TableName() string { return "department_awards" }
