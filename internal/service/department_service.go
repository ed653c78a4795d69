package service

import (
	"errors"
	"strings"

	"hrm_records_go/internal/model"
	"hrm_records_go/internal/repository"
	"hrm_records_go/pkg/log"

	"gorm.io/gorm"
)

// DepartmentService 封装部门的业务规则：名称必填且唯一、级联删除与附件清理。
type DepartmentService interface {
	Create(id *uint, name, description string) (*model.Department, error)
	Update(id uint, name, description string) (*model.Department, error)
	Get(id uint) (*model.Department, error)
	List() ([]model.Department, error)
	// Delete 删除部门及其下所有人员、文档、任职记录和表彰记录。
	// removeFiles 为 true 时在提交后尽力删除附件，失败记入 CleanupReport。
	Delete(id uint, removeFiles bool) (*model.CleanupReport, error)
}

type departmentService struct {
	deptRepo repository.DepartmentRepository
	files    FileStore
}

func NewDepartmentService(deptRepo repository.DepartmentRepository, files FileStore) DepartmentService {
	return &departmentService{deptRepo: deptRepo, files: files}
}

func (s *departmentService) Create(id *uint, name, description string) (*model.Department, error) {
	if s.deptRepo == nil {
		return nil, ErrInternal
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	if id != nil && *id == 0 {
		return nil, ErrInvalidInput
	}

	// 先做存在性检查，冲突时返回明确的业务错误；并发下仍以唯一约束为准。
	if err := s.ensureNameFree(name, 0); err != nil {
		return nil, err
	}
	if id != nil {
		if _, err := s.deptRepo.FindByID(*id); err == nil {
			return nil, ErrDepartmentAlreadyExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	dept := &model.Department{Name: name, Description: strings.TrimSpace(description)}
	if id != nil {
		dept.ID = *id
	}
	if err := s.deptRepo.Create(dept); err != nil {
		return nil, translate(err, nil, ErrDepartmentAlreadyExists)
	}
	return dept, nil
}

func (s *departmentService) Update(id uint, name, description string) (*model.Department, error) {
	if s.deptRepo == nil {
		return nil, ErrInternal
	}
	name = strings.TrimSpace(name)
	if id == 0 || name == "" {
		return nil, ErrInvalidInput
	}

	dept, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(name, id); err != nil {
		return nil, err
	}

	dept.Name = name
	dept.Description = strings.TrimSpace(description)
	if err := s.deptRepo.Update(dept); err != nil {
		return nil, translate(err, ErrDepartmentNotFound, ErrDepartmentAlreadyExists)
	}
	return dept, nil
}

func (s *departmentService) Get(id uint) (*model.Department, error) {
	if s.deptRepo == nil {
		return nil, ErrInternal
	}
	if id == 0 {
		return nil, ErrInvalidInput
	}
	dept, err := s.deptRepo.FindByID(id)
	if err != nil {
		return nil, translate(err, ErrDepartmentNotFound, nil)
	}
	return dept, nil
}

func (s *departmentService) List() ([]model.Department, error) {
	if s.deptRepo == nil {
		return nil, ErrInternal
	}
	return s.deptRepo.FindAll()
}

func (s *departmentService) Delete(id uint, removeFiles bool) (*model.CleanupReport, error) {
	if s.deptRepo == nil {
		return nil, ErrInternal
	}
	if id == 0 {
		return nil, ErrInvalidInput
	}

	paths, err := s.deptRepo.DeleteCascade(id)
	if err != nil {
		return nil, translate(err, ErrDepartmentNotFound, nil)
	}
	log.Infow("department deleted", "id", id, "files", len(paths), "removeFiles", removeFiles)

	if !removeFiles {
		return &model.CleanupReport{Warnings: []string{}}, nil
	}
	return cleanupFiles(s.files, paths, "delete department"), nil
}

// ensureNameFree 检查名称未被 exceptID 以外的部门占用。
func (s *departmentService) ensureNameFree(name string, exceptID uint) error {
	existing, err := s.deptRepo.FindByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing != nil && existing.ID != exceptID {
		return ErrDepartmentAlreadyExists
	}
	return nil
}
