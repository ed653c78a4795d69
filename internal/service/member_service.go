package service

import (
	"errors"
	"strings"

	"hrm_records_go/internal/model"
	"hrm_records_go/internal/repository"
	"hrm_records_go/pkg/log"
)

// MemberInput 是创建/更新人员时的全部可变字段。STT 为空表示由系统分配。
type MemberInput struct {
	DepartmentID uint
	STT          *int
	FullName     string
	DOB          string
	Position     string
	Email        string
	Phone        string
	Notes        string
}

// MemberService 封装人员的业务规则：部门内序号维护、改号、删除时清理附件。
type MemberService interface {
	Create(id *uint, in MemberInput) (*model.Member, error)
	Update(id uint, in MemberInput) (*model.Member, error)
	Get(id uint) (*model.MemberRow, error)
	// Delete 删除人员及其文档、任职、个人表彰，重排部门序号，并尽力删除附件。
	Delete(id uint) (*model.CleanupReport, error)
	ReassignID(oldID, newID uint) error
	Resequence(departmentID uint) error
	Search(filter model.MemberFilter, sort repository.MemberSort) ([]model.MemberRow, error)
	ListByDepartment(departmentID uint, sort repository.MemberSort) ([]model.MemberRow, error)
}

type memberService struct {
	memberRepo repository.MemberRepository
	deptRepo   repository.DepartmentRepository
	files      FileStore
}

func NewMemberService(memberRepo repository.MemberRepository, deptRepo repository.DepartmentRepository, files FileStore) MemberService {
	return &memberService{memberRepo: memberRepo, deptRepo: deptRepo, files: files}
}

func (s *memberService) Create(id *uint, in MemberInput) (*model.Member, error) {
	if s.memberRepo == nil || s.deptRepo == nil {
		return nil, ErrInternal
	}
	in = normalizeMemberInput(in)
	if err := validateMemberInput(in); err != nil {
		return nil, err
	}
	if id != nil && *id == 0 {
		return nil, ErrInvalidInput
	}
	if err := s.ensureDepartment(in.DepartmentID); err != nil {
		return nil, err
	}
	if id != nil {
		exists, err := s.memberRepo.Exists(*id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrMemberAlreadyExists
		}
	}

	m := in.toModel()
	if id != nil {
		m.ID = *id
	}
	if err := s.memberRepo.Create(m); err != nil {
		return nil, translate(err, nil, ErrMemberAlreadyExists)
	}
	return m, nil
}

// Update 重写全部字段。调岗且未指定 STT 时，由仓储层在同一事务中
// 追加到新部门末尾并重排原部门。
func (s *memberService) Update(id uint, in MemberInput) (*model.Member, error) {
	if s.memberRepo == nil || s.deptRepo == nil {
		return nil, ErrInternal
	}
	in = normalizeMemberInput(in)
	if id == 0 {
		return nil, ErrInvalidInput
	}
	if err := validateMemberInput(in); err != nil {
		return nil, err
	}
	if err := s.ensureDepartment(in.DepartmentID); err != nil {
		return nil, err
	}

	m := in.toModel()
	m.ID = id
	if err := s.memberRepo.Update(m, in.STT != nil); err != nil {
		return nil, translate(err, ErrMemberNotFound, nil)
	}

	updated, err := s.memberRepo.FindByID(id)
	if err != nil {
		return nil, translate(err, ErrMemberNotFound, nil)
	}
	return updated, nil
}

func (s *memberService) Get(id uint) (*model.MemberRow, error) {
	if s.memberRepo == nil {
		return nil, ErrInternal
	}
	if id == 0 {
		return nil, ErrInvalidInput
	}
	row, err := s.memberRepo.FindRowByID(id)
	if err != nil {
		return nil, translate(err, ErrMemberNotFound, nil)
	}
	return row, nil
}

func (s *memberService) Delete(id uint) (*model.CleanupReport, error) {
	if s.memberRepo == nil {
		return nil, ErrInternal
	}
	if id == 0 {
		return nil, ErrInvalidInput
	}
	paths, err := s.memberRepo.Delete(id)
	if err != nil {
		return nil, translate(err, ErrMemberNotFound, nil)
	}
	return cleanupFiles(s.files, paths, "delete member"), nil
}

// ReassignID 把人员 ID 从 oldID 改为 newID，文档、任职记录、个人表彰随之迁移。
// oldID 不存在返回 ErrMemberNotFound，newID 已被占用返回 ErrMemberAlreadyExists，
// 两种情况下数据库都不会发生任何变化。
func (s *memberService) ReassignID(oldID, newID uint) error {
	if s.memberRepo == nil {
		return ErrInternal
	}
	if oldID == 0 || newID == 0 {
		return ErrInvalidInput
	}
	if oldID == newID {
		return nil
	}

	err := s.memberRepo.ReassignID(oldID, newID)
	switch {
	case err == nil:
		log.Infow("member id reassigned", "from", oldID, "to", newID)
		return nil
	case errors.Is(err, repository.ErrMemberIDTaken):
		return ErrMemberAlreadyExists
	default:
		return translate(err, ErrMemberNotFound, ErrMemberAlreadyExists)
	}
}

func (s *memberService) Resequence(departmentID uint) error {
	if s.memberRepo == nil || s.deptRepo == nil {
		return ErrInternal
	}
	if err := s.ensureDepartment(departmentID); err != nil {
		return err
	}
	return s.memberRepo.Resequence(departmentID)
}

func (s *memberService) Search(filter model.MemberFilter, sort repository.MemberSort) ([]model.MemberRow, error) {
	if s.memberRepo == nil {
		return nil, ErrInternal
	}
	filter.NameContains = strings.TrimSpace(filter.NameContains)
	filter.PositionContains = strings.TrimSpace(filter.PositionContains)
	return s.memberRepo.Search(filter, sort)
}

func (s *memberService) ListByDepartment(departmentID uint, sort repository.MemberSort) ([]model.MemberRow, error) {
	if s.memberRepo == nil || s.deptRepo == nil {
		return nil, ErrInternal
	}
	if err := s.ensureDepartment(departmentID); err != nil {
		return nil, err
	}
	return s.memberRepo.FindByDepartment(departmentID, sort)
}

func (s *memberService) ensureDepartment(id uint) error {
	if id == 0 {
		return ErrInvalidInput
	}
	if _, err := s.deptRepo.FindByID(id); err != nil {
		return translate(err, ErrDepartmentNotFound, nil)
	}
	return nil
}

func normalizeMemberInput(in MemberInput) MemberInput {
	in.FullName = strings.TrimSpace(in.FullName)
	in.DOB = strings.TrimSpace(in.DOB)
	in.Position = strings.TrimSpace(in.Position)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	return in
}

func validateMemberInput(in MemberInput) error {
	if in.FullName == "" || in.DepartmentID == 0 {
		return ErrInvalidInput
	}
	if in.STT != nil && *in.STT <= 0 {
		return ErrInvalidInput
	}
	return nil
}

func (in MemberInput) toModel() *model.Member {
	return &model.Member{
		DepartmentID: in.DepartmentID,
		STT:          in.STT,
		FullName:     in.FullName,
		DOB:          in.DOB,
		Position:     in.Position,
		Email:        in.Email,
		Phone:        in.Phone,
		Notes:        in.Notes,
	}
}
