package repository

import (
	"fmt"
	"strings"

	"hrm_records_go/internal/model"

	"gorm.io/gorm"
)

// clearOrder 是清库时的删除顺序：先子表后父表，外键开启时也不会冲突。
var clearOrder = []interface{}{
	&model.StaffAward{},
	&model.DepartmentAward{},
	&model.AwardBatch{},
	&model.AwardAuthority{},
	&model.AwardTitle{},
	&model.AwardYear{},
	&model.Document{},
	&model.WorkHistory{},
	&model.Member{},
	&model.Department{},
}

// MaintenanceRepository 提供整库级别的维护操作（清空业务数据、快照）。
// 操作员账号（users 表）不在清空范围内。
type MaintenanceRepository interface {
	// ClearAll 在一个事务中清空全部业务表，返回清空前文档引用的附件路径。
	ClearAll() (filePaths []string, err error)
	// SnapshotTo 把当前 SQLite 数据库一致地复制到 dest（VACUUM INTO）。
	SnapshotTo(dest string) error
	Dialect() string
}

type maintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

func (r *maintenanceRepository) ClearAll() ([]string, error) {
	var paths []string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Document{}).
			Where("file_path IS NOT NULL AND file_path <> ''").
			Pluck("file_path", &paths).Error; err != nil {
			return err
		}
		for _, m := range clearOrder {
			// 无条件删除需要显式允许
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func (r *maintenanceRepository) SnapshotTo(dest string) error {
	if r.Dialect() != "sqlite" {
		return fmt.Errorf("snapshot requires sqlite, got %s", r.Dialect())
	}
	quoted := "'" + strings.ReplaceAll(dest, "'", "''") + "'"
	return r.db.Exec("VACUUM INTO " + quoted).Error
}

func (r *maintenanceRepository) Dialect() string {
	return r.db.Dialector.Name()
}
