package repository

import (
	"hrm_records_go/internal/model"

	"gorm.io/gorm"
)

// StatsRepository 提供总览页所需的聚合查询。
type StatsRepository interface {
	Counts() (*model.Statistics, error)
	AwardsByYear() ([]model.YearAwardCount, error)
	AwardsByLevel() ([]model.LevelAwardCount, error)
}

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Counts() (*model.Statistics, error) {
	var s model.Statistics

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&model.Department{}, &s.Departments},
		{&model.Member{}, &s.Members},
		{&model.Document{}, &s.Documents},
		{&model.StaffAward{}, &s.Awards},
		{&model.DepartmentAward{}, &s.DepartmentAwards},
	}
	for _, c := range counts {
		if err := r.db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// AwardsByYear 按年度统计个人与集体表彰数量，年度倒序；没有任何表彰的年度也会列出。
func (r *statsRepository) AwardsByYear() ([]model.YearAwardCount, error) {
	rows := make([]model.YearAwardCount, 0)
	err := r.db.Raw(`
SELECT y.year AS year,
       (SELECT COUNT(*) FROM staff_awards sa
          JOIN award_batches b ON b.id = sa.award_batch_id
         WHERE b.award_year_id = y.id) AS staff,
       (SELECT COUNT(*) FROM department_awards da
          JOIN award_batches b ON b.id = da.award_batch_id
         WHERE b.award_year_id = y.id) AS department
  FROM award_years y
 ORDER BY y.year DESC`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Total = rows[i].Staff + rows[i].Department
	}
	return rows, nil
}

// AwardsByLevel 按称号级别统计授予次数（个人 + 集体），未填写级别的归入空字符串。
func (r *statsRepository) AwardsByLevel() ([]model.LevelAwardCount, error) {
	rows := make([]model.LevelAwardCount, 0)
	err := r.db.Raw(`
SELECT COALESCE(t.level, '') AS level, COUNT(*) AS total
  FROM (SELECT award_batch_id FROM staff_awards
        UNION ALL
        SELECT award_batch_id FROM department_awards) g
  JOIN award_batches b ON b.id = g.award_batch_id
  JOIN award_titles t ON t.id = b.award_title_id
 GROUP BY COALESCE(t.level, '')
 ORDER BY total DESC, level ASC`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
