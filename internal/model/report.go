package model

// CleanupReport 是删除操作的“软失败”通道：
// 数据行已删除成功，Warnings 中记录清理附件文件时遇到的问题。
type CleanupReport struct {
	RemovedFiles int      `json:"removedFiles"`
	Warnings     []string `json:"warnings"`
}

// ImportResult 汇总一次 Excel 导入的结果：各实体新建行数 + 警告列表。
type ImportResult struct {
	Departments      int      `json:"departments"`
	Members          int      `json:"members"`
	Documents        int      `json:"documents"`
	WorkHistories    int      `json:"workHistories"`
	AwardYears       int      `json:"awardYears"`
	AwardTitles      int      `json:"awardTitles"`
	AwardAuthorities int      `json:"awardAuthorities"`
	AwardBatches     int      `json:"awardBatches"`
	StaffAwards      int      `json:"staffAwards"`
	DepartmentAwards int      `json:"departmentAwards"`
	Warnings         []string `json:"warnings"`
}

// Statistics 是总览页的计数。Awards 只计个人表彰，集体表彰单独计入 DepartmentAwards。
type Statistics struct {
	Departments      int64 `json:"departments"`
	Members          int64 `json:"members"`
	Awards           int64 `json:"awards"`
	DepartmentAwards int64 `json:"departmentAwards"`
	Documents        int64 `json:"documents"`
}

// YearAwardCount 是按年度统计的表彰数量。
type YearAwardCount struct {
	Year       int   `json:"year"`
	Staff      int64 `json:"staff"`
	Department int64 `json:"department"`
	Total      int64 `json:"total"`
}

// LevelAwardCount 是按称号级别统计的表彰数量。
type LevelAwardCount struct {
	Level string `json:"level"`
	Total int64  `json:"total"`
}
