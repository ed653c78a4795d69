package repository

import (
	"fmt"

	"hrm_records_go/internal/model"

	"gorm.io/gorm"
)

// WorkHistoryRepository 定义任职记录的持久化操作。
type WorkHistoryRepository interface {
	Create(wh *model.WorkHistory) error
	FindByID(id uint) (*model.WorkHistory, error)
	FindByMember(memberID uint) ([]model.WorkHistory, error)
	FindAllRows() ([]model.WorkHistoryRow, error)
	Update(wh *model.WorkHistory) error
	Delete(id uint) error
}

type workHistoryRepository struct {
	db *gorm.DB
}

func NewWorkHistoryRepository(db *gorm.DB) WorkHistoryRepository {
	return &workHistoryRepository{db: db}
}

func (r *workHistoryRepository) Create(wh *model.WorkHistory) error {
	if wh == nil {
		return fmt.Errorf("work history is nil")
	}
	return r.db.Create(wh).Error
}

func (r *workHistoryRepository) FindByID(id uint) (*model.WorkHistory, error) {
	var wh model.WorkHistory
	if err := r.db.Where("id = ?", id).First(&wh).Error; err != nil {
		return nil, err
	}
	return &wh, nil
}

func (r *workHistoryRepository) FindByMember(memberID uint) ([]model.WorkHistory, error) {
	list := make([]model.WorkHistory, 0)
	if err := r.db.Where("member_id = ?", memberID).Order("created_at ASC, id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *workHistoryRepository) FindAllRows() ([]model.WorkHistoryRow, error) {
	rows := make([]model.WorkHistoryRow, 0)
	err := r.db.Model(&model.WorkHistory{}).
		Select("work_histories.*, members.full_name AS member_name").
		Joins("JOIN members ON members.id = work_histories.member_id").
		Order("work_histories.member_id ASC, work_histories.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *workHistoryRepository) Update(wh *model.WorkHistory) error {
	if wh == nil {
		return fmt.Errorf("work history is nil")
	}
	if wh.ID == 0 {
		return fmt.Errorf("work history id is required")
	}

	tx := r.db.Model(&model.WorkHistory{}).
		Where("id = ?", wh.ID).
		Select("decision_no", "decision_date", "positions", "position_held_since", "joined_agency_on", "note").
		Updates(wh)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *workHistoryRepository) Delete(id uint) error {
	tx := r.db.Where("id = ?", id).Delete(&model.WorkHistory{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
