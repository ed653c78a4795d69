package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hrm_records_go/internal/model"

	"gorm.io/gorm"
)

var (
	// ErrMemberIDTaken 表示目标 ID 已被其他人员占用，无法改号。
	ErrMemberIDTaken = errors.New("member id already in use")
)

// resequenceOrder 决定部门内序号重排时的先后：保持现有 STT 的相对顺序，
// 未设置 STT 的排在最后，再以创建时间和 ID 作为稳定的兜底。
// 这里不单纯按创建时间或 ID 排序，手工调整过的先后在删除、调动后依然保留。
const resequenceOrder = "stt IS NULL, stt ASC, created_at ASC, id ASC"

// MemberRepository 定义人员的持久化操作。
// 涉及部门内序号（STT）的写操作都在一个事务中完成，保证序号 1..N 连续。
type MemberRepository interface {
	// Create 创建人员；STT 为空时追加到所在部门末尾（当前最大值 + 1）。
	Create(member *model.Member) error
	FindByID(id uint) (*model.Member, error)
	FindRowByID(id uint) (*model.MemberRow, error)
	FindByDepartment(departmentID uint, sort MemberSort) ([]model.MemberRow, error)
	Search(filter model.MemberFilter, sort MemberSort) ([]model.MemberRow, error)
	Exists(id uint) (bool, error)

	// Update 重写全部可变字段。部门变化时：原部门重排序号；
	// explicitSTT 为 false 则在新部门末尾追加。
	Update(member *model.Member, explicitSTT bool) error

	// Delete 删除人员及其子记录并重排所在部门的序号，返回需要清理的附件路径。
	Delete(id uint) (filePaths []string, err error)

	// ReassignID 把人员主键从 oldID 改为 newID，并迁移所有引用它的子记录。
	ReassignID(oldID, newID uint) error

	// Resequence 把部门内人员序号重排为 1..N。
	Resequence(departmentID uint) error
}

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(member *model.Member) error {
	if member == nil {
		return fmt.Errorf("member is nil")
	}
	if member.DepartmentID == 0 {
		return fmt.Errorf("department id is required")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if member.STT == nil {
			next, err := nextSTT(tx, member.DepartmentID, 0)
			if err != nil {
				return err
			}
			member.STT = &next
		}
		return tx.Create(member).Error
	})
}

func (r *memberRepository) FindByID(id uint) (*model.Member, error) {
	var member model.Member
	if err := r.db.Where("id = ?", id).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) FindRowByID(id uint) (*model.MemberRow, error) {
	var rows []model.MemberRow
	if err := r.rowQuery().Where("members.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *memberRepository) FindByDepartment(departmentID uint, sort MemberSort) ([]model.MemberRow, error) {
	return r.Search(model.MemberFilter{DepartmentID: departmentID}, sort)
}

// Search 按姓名、职务（模糊）、部门、是否有文档组合过滤。
func (r *memberRepository) Search(filter model.MemberFilter, sort MemberSort) ([]model.MemberRow, error) {
	q := r.rowQuery()

	if filter.HasDocuments != nil {
		exists := "EXISTS (SELECT 1 FROM documents WHERE documents.member_id = members.id)"
		if !*filter.HasDocuments {
			exists = "NOT " + exists
		}
		q = q.Where(exists)
	}
	if name := strings.TrimSpace(filter.NameContains); name != "" {
		q = q.Where("members.full_name LIKE ?", "%"+name+"%")
	}
	if pos := strings.TrimSpace(filter.PositionContains); pos != "" {
		q = q.Where("members.position LIKE ?", "%"+pos+"%")
	}
	if filter.DepartmentID != 0 {
		q = q.Where("members.department_id = ?", filter.DepartmentID)
	}

	rows := make([]model.MemberRow, 0)
	if err := q.Order(sort.clause()).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *memberRepository) Exists(id uint) (bool, error) {
	var n int64
	if err := r.db.Model(&model.Member{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *memberRepository) Update(member *model.Member, explicitSTT bool) error {
	if member == nil {
		return fmt.Errorf("member is nil")
	}
	if member.ID == 0 {
		return fmt.Errorf("member id is required")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var current model.Member
		if err := tx.Where("id = ?", member.ID).First(&current).Error; err != nil {
			return err
		}

		moved := current.DepartmentID != member.DepartmentID
		switch {
		case explicitSTT:
		case moved:
			next, err := nextSTT(tx, member.DepartmentID, member.ID)
			if err != nil {
				return err
			}
			member.STT = &next
		default:
			member.STT = current.STT
		}

		res := tx.Model(&model.Member{}).
			Where("id = ?", member.ID).
			Select("department_id", "stt", "full_name", "dob", "position", "email", "phone", "notes").
			Updates(member)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if moved {
			// 调出部门需要补齐序号空位
			return resequence(tx, current.DepartmentID)
		}
		return nil
	})
}

func (r *memberRepository) Delete(id uint) ([]string, error) {
	var paths []string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var current model.Member
		if err := tx.Where("id = ?", id).First(&current).Error; err != nil {
			return err
		}

		ids := []uint{id}
		var err error
		if paths, err = documentFilePaths(tx, ids); err != nil {
			return err
		}
		if err := deleteMemberDependents(tx, ids); err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&model.Member{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return resequence(tx, current.DepartmentID)
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// ReassignID 在单个事务内完成改号：
//  1. 读取 oldID 的完整记录
//  2. 以 newID 插入一份相同的记录（保留原 created_at）
//  3. 把文档、任职记录、个人表彰中指向 oldID 的引用改为 newID
//  4. 删除 oldID 记录
//
// 任一步失败整体回滚。oldID == newID 时直接返回，不访问数据库。
func (r *memberRepository) ReassignID(oldID, newID uint) error {
	if oldID == newID {
		return nil
	}
	if newID == 0 {
		return fmt.Errorf("new member id is required")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var old model.Member
		if err := tx.Where("id = ?", oldID).First(&old).Error; err != nil {
			return err
		}

		var taken int64
		if err := tx.Model(&model.Member{}).Where("id = ?", newID).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return ErrMemberIDTaken
		}

		clone := old
		clone.ID = newID
		if err := tx.Create(&clone).Error; err != nil {
			return err
		}

		for _, dep := range []interface{}{&model.Document{}, &model.WorkHistory{}, &model.StaffAward{}} {
			if err := tx.Model(dep).Where("member_id = ?", oldID).Update("member_id", newID).Error; err != nil {
				return err
			}
		}

		res := tx.Where("id = ?", oldID).Delete(&model.Member{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *memberRepository) Resequence(departmentID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return resequence(tx, departmentID)
	})
}

func (r *memberRepository) rowQuery() *gorm.DB {
	return r.db.Model(&model.Member{}).
		Select("members.*, departments.name AS department_name").
		Joins("JOIN departments ON departments.id = members.department_id")
}

// nextSTT 返回部门内下一个序号（最大值 + 1，空部门为 1）。exclude 用于调岗时排除自身。
func nextSTT(tx *gorm.DB, departmentID, exclude uint) (int, error) {
	var top sql.NullInt64
	q := tx.Model(&model.Member{}).Where("department_id = ?", departmentID)
	if exclude != 0 {
		q = q.Where("id <> ?", exclude)
	}
	if err := q.Select("MAX(stt)").Scan(&top).Error; err != nil {
		return 0, err
	}
	if !top.Valid {
		return 1, nil
	}
	return int(top.Int64) + 1, nil
}

// resequence 逐条写回部门内人员的序号，使其成为 1..N。
// 序号已正确的行不重复写入。
func resequence(tx *gorm.DB, departmentID uint) error {
	var members []model.Member
	if err := tx.Select("id", "stt").
		Where("department_id = ?", departmentID).
		Order(resequenceOrder).
		Find(&members).Error; err != nil {
		return err
	}

	for i, m := range members {
		want := i + 1
		if m.STT != nil && *m.STT == want {
			continue
		}
		if err := tx.Model(&model.Member{}).Where("id = ?", m.ID).Update("stt", want).Error; err != nil {
			return err
		}
	}
	return nil
}
