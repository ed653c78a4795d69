package repository

import (
	"fmt"

	"hrm_records_go/internal/model"

	"gorm.io/gorm"
)

// AwardRepository 管理表彰相关的字典（年度、称号、机关）、批次以及授予记录。
// 删除字典项时，引用它的批次与授予记录在同一事务中一并删除。
type AwardRepository interface {
	CreateYear(y *model.AwardYear) error
	FindYears() ([]model.AwardYear, error)
	FindYearByValue(year int) (*model.AwardYear, error)
	DeleteYear(id uint) error

	CreateTitle(t *model.AwardTitle) error
	FindTitles() ([]model.AwardTitle, error)
	UpdateTitle(t *model.AwardTitle) error
	DeleteTitle(id uint) error

	CreateAuthority(a *model.AwardAuthority) error
	FindAuthorities() ([]model.AwardAuthority, error)
	DeleteAuthority(id uint) error

	CreateBatch(b *model.AwardBatch) error
	FindBatchByID(id uint) (*model.AwardBatch, error)
	FindBatchRows() ([]model.AwardBatchRow, error)
	DeleteBatch(id uint) error

	CreateStaffAward(a *model.StaffAward) error
	// FindStaffAwards 返回个人表彰；memberID 为 0 时返回全部。
	FindStaffAwards(memberID uint) ([]model.StaffAward, error)
	DeleteStaffAward(id uint) error

	CreateDepartmentAward(a *model.DepartmentAward) error
	// FindDepartmentAwards 返回集体表彰；departmentID 为 0 时返回全部。
	FindDepartmentAwards(departmentID uint) ([]model.DepartmentAward, error)
	DeleteDepartmentAward(id uint) error
}

type awardRepository struct {
	db *gorm.DB
}

func NewAwardRepository(db *gorm.DB) AwardRepository {
	return &awardRepository{db: db}
}

func (r *awardRepository) CreateYear(y *model.AwardYear) error {
	if y == nil {
		return fmt.Errorf("award year is nil")
	}
	return r.db.Create(y).Error
}

func (r *awardRepository) FindYears() ([]model.AwardYear, error) {
	list := make([]model.AwardYear, 0)
	if err := r.db.Order("year DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *awardRepository) FindYearByValue(year int) (*model.AwardYear, error) {
	var y model.AwardYear
	if err := r.db.Where("year = ?", year).First(&y).Error; err != nil {
		return nil, err
	}
	return &y, nil
}

func (r *awardRepository) DeleteYear(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteBatchesWhere(tx, "award_year_id = ?", id); err != nil {
			return err
		}
		return deleteByID(tx, &model.AwardYear{}, id)
	})
}

func (r *awardRepository) CreateTitle(t *model.AwardTitle) error {
	if t == nil {
		return fmt.Errorf("award title is nil")
	}
	return r.db.Create(t).Error
}

func (r *awardRepository) FindTitles() ([]model.AwardTitle, error) {
	list := make([]model.AwardTitle, 0)
	if err := r.db.Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *awardRepository) UpdateTitle(t *model.AwardTitle) error {
	if t == nil {
		return fmt.Errorf("award title is nil")
	}
	if t.ID == 0 {
		return fmt.Errorf("award title id is required")
	}
	tx := r.db.Model(&model.AwardTitle{}).
		Where("id = ?", t.ID).
		Select("name", "scope", "level").
		Updates(t)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *awardRepository) DeleteTitle(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteBatchesWhere(tx, "award_title_id = ?", id); err != nil {
			return err
		}
		return deleteByID(tx, &model.AwardTitle{}, id)
	})
}

func (r *awardRepository) CreateAuthority(a *model.AwardAuthority) error {
	if a == nil {
		return fmt.Errorf("award authority is nil")
	}
	return r.db.Create(a).Error
}

func (r *awardRepository) FindAuthorities() ([]model.AwardAuthority, error) {
	list := make([]model.AwardAuthority, 0)
	if err := r.db.Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// DeleteAuthority 删除机关，引用它的批次保留并把 award_authority_id 置空。
func (r *awardRepository) DeleteAuthority(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.AwardBatch{}).
			Where("award_authority_id = ?", id).
			Update("award_authority_id", nil).Error
		if err != nil {
			return err
		}
		return deleteByID(tx, &model.AwardAuthority{}, id)
	})
}

func (r *awardRepository) CreateBatch(b *model.AwardBatch) error {
	if b == nil {
		return fmt.Errorf("award batch is nil")
	}
	return r.db.Create(b).Error
}

func (r *awardRepository) FindBatchByID(id uint) (*model.AwardBatch, error) {
	var b model.AwardBatch
	if err := r.db.Where("id = ?", id).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *awardRepository) FindBatchRows() ([]model.AwardBatchRow, error) {
	rows := make([]model.AwardBatchRow, 0)
	err := r.db.Model(&model.AwardBatch{}).
		Select("award_batches.*, award_years.year AS year, award_titles.name AS title_name, " +
			"COALESCE(award_authorities.name, '') AS authority_name").
		Joins("JOIN award_years ON award_years.id = award_batches.award_year_id").
		Joins("JOIN award_titles ON award_titles.id = award_batches.award_title_id").
		Joins("LEFT JOIN award_authorities ON award_authorities.id = award_batches.award_authority_id").
		Order("award_years.year DESC, award_batches.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *awardRepository) DeleteBatch(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteGrants(tx, []uint{id}); err != nil {
			return err
		}
		return deleteByID(tx, &model.AwardBatch{}, id)
	})
}

func (r *awardRepository) CreateStaffAward(a *model.StaffAward) error {
	if a == nil {
		return fmt.Errorf("staff award is nil")
	}
	return r.db.Create(a).Error
}

func (r *awardRepository) FindStaffAwards(memberID uint) ([]model.StaffAward, error) {
	q := r.db.Order("id ASC")
	if memberID != 0 {
		q = q.Where("member_id = ?", memberID)
	}
	list := make([]model.StaffAward, 0)
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *awardRepository) DeleteStaffAward(id uint) error {
	return deleteByID(r.db, &model.StaffAward{}, id)
}

func (r *awardRepository) CreateDepartmentAward(a *model.DepartmentAward) error {
	if a == nil {
		return fmt.Errorf("department award is nil")
	}
	return r.db.Create(a).Error
}

func (r *awardRepository) FindDepartmentAwards(departmentID uint) ([]model.DepartmentAward, error) {
	q := r.db.Order("id ASC")
	if departmentID != 0 {
		q = q.Where("department_id = ?", departmentID)
	}
	list := make([]model.DepartmentAward, 0)
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *awardRepository) DeleteDepartmentAward(id uint) error {
	return deleteByID(r.db, &model.DepartmentAward{}, id)
}

// deleteBatchesWhere 删除满足条件的批次及其授予记录。
func deleteBatchesWhere(tx *gorm.DB, cond string, arg interface{}) error {
	var ids []uint
	if err := tx.Model(&model.AwardBatch{}).Where(cond, arg).Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	if err := deleteGrants(tx, ids); err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&model.AwardBatch{}).Error
}

func deleteGrants(tx *gorm.DB, batchIDs []uint) error {
	if err := tx.Where("award_batch_id IN ?", batchIDs).Delete(&model.StaffAward{}).Error; err != nil {
		return err
	}
	return tx.Where("award_batch_id IN ?", batchIDs).Delete(&model.DepartmentAward{}).Error
}

// deleteByID 按主键删除一行，未命中时返回 gorm.ErrRecordNotFound。
func deleteByID(db *gorm.DB, value interface{}, id uint) error {
	res := db.Where("id = ?", id).Delete(value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
