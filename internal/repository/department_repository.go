package repository

import (
	"fmt"

	"hrm_records_go/internal/model"

	"gorm.io/gorm"
)

// DepartmentRepository 定义部门的持久化操作。
type DepartmentRepository interface {
	Create(dept *model.Department) error
	FindAll() ([]model.Department, error)
	FindByID(id uint) (*model.Department, error)
	FindByName(name string) (*model.Department, error)
	// Update 重写 name、description 两个可变字段。
	Update(dept *model.Department) error

	// DeleteCascade 在事务中删除部门，返回被级联删除的文档所引用的文件路径，
	// 供调用方在提交成功后清理磁盘文件。
	DeleteCascade(id uint) (filePaths []string, err error)
}

type departmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(dept *model.Department) error {
	if dept == nil {
		return fmt.Errorf("department is nil")
	}
	return r.db.Create(dept).Error
}

func (r *departmentRepository) FindAll() ([]model.Department, error) {
	var depts []model.Department
	if err := r.db.Order("created_at DESC, id DESC").Find(&depts).Error; err != nil {
		return nil, err
	}
	return depts, nil
}

func (r *departmentRepository) FindByID(id uint) (*model.Department, error) {
	var dept model.Department
	if err := r.db.Where("id = ?", id).First(&dept).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) FindByName(name string) (*model.Department, error) {
	var dept model.Department
	if err := r.db.Where("name = ?", name).First(&dept).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) Update(dept *model.Department) error {
	if dept == nil {
		return fmt.Errorf("department is nil")
	}
	if dept.ID == 0 {
		return fmt.Errorf("department id is required")
	}

	tx := r.db.Model(&model.Department{}).
		Where("id = ?", dept.ID).
		Select("name", "description").
		Updates(dept)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteCascade 先收集部门 → 人员 → 文档的附件路径，再自底向上删除。
// 显式删除子表而不是只依赖外键级联，保证 MySQL/SQLite 在外键被关闭时行为一致。
func (r *departmentRepository) DeleteCascade(id uint) ([]string, error) {
	var paths []string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var current model.Department
		if err := tx.Where("id = ?", id).First(&current).Error; err != nil {
			return err
		}

		var memberIDs []uint
		if err := tx.Model(&model.Member{}).Where("department_id = ?", id).Pluck("id", &memberIDs).Error; err != nil {
			return err
		}

		if len(memberIDs) > 0 {
			var err error
			paths, err = documentFilePaths(tx, memberIDs)
			if err != nil {
				return err
			}
			if err := deleteMemberDependents(tx, memberIDs); err != nil {
				return err
			}
		}
		if err := tx.Where("department_id = ?", id).Delete(&model.DepartmentAward{}).Error; err != nil {
			return err
		}
		if err := tx.Where("department_id = ?", id).Delete(&model.Member{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&model.Department{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// documentFilePaths 查询一组人员名下文档中非空的附件路径。
func documentFilePaths(tx *gorm.DB, memberIDs []uint) ([]string, error) {
	var paths []string
	err := tx.Model(&model.Document{}).
		Where("member_id IN ?", memberIDs).
		Where("file_path IS NOT NULL AND file_path <> ''").
		Pluck("file_path", &paths).Error
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// deleteMemberDependents 删除一组人员名下的全部子记录（文档、任职、个人表彰）。
func deleteMemberDependents(tx *gorm.DB, memberIDs []uint) error {
	for _, m := range []interface{}{&model.Document{}, &model.WorkHistory{}, &model.StaffAward{}} {
		if err := tx.Where("member_id IN ?", memberIDs).Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}
