package service

import (
	"strings"

	"hrm_records_go/internal/model"
	"hrm_records_go/internal/repository"
)

// BatchInput 描述一次表彰决定。
type BatchInput struct {
	AwardYearID      uint
	AwardTitleID     uint
	AwardAuthorityID *uint
	DecisionNo       string
	DecisionDate     string
	Note             string
}

// AwardService 管理表彰字典、批次与授予记录。
type AwardService interface {
	ListYears() ([]model.AwardYear, error)
	CreateYear(year int) (*model.AwardYear, error)
	DeleteYear(id uint) error

	ListTitles() ([]model.AwardTitle, error)
	CreateTitle(name, scope, level string) (*model.AwardTitle, error)
	UpdateTitle(id uint, name, scope, level string) (*model.AwardTitle, error)
	DeleteTitle(id uint) error

	ListAuthorities() ([]model.AwardAuthority, error)
	CreateAuthority(name, level string) (*model.AwardAuthority, error)
	DeleteAuthority(id uint) error

	ListBatches() ([]model.AwardBatchRow, error)
	CreateBatch(in BatchInput) (*model.AwardBatch, error)
	DeleteBatch(id uint) error

	ListStaffAwards(memberID uint) ([]model.StaffAward, error)
	GrantStaff(memberID, batchID uint, note string) (*model.StaffAward, error)
	RevokeStaff(id uint) error

	ListDepartmentAwards(departmentID uint) ([]model.DepartmentAward, error)
	GrantDepartment(departmentID, batchID uint, note string) (*model.DepartmentAward, error)
	RevokeDepartment(id uint) error
}

type awardService struct {
	awardRepo  repository.AwardRepository
	memberRepo repository.MemberRepository
	deptRepo   repository.DepartmentRepository
}

func NewAwardService(awardRepo repository.AwardRepository, memberRepo repository.MemberRepository, deptRepo repository.DepartmentRepository) AwardService {
	return &awardService{awardRepo: awardRepo, memberRepo: memberRepo, deptRepo: deptRepo}
}

func (s *awardService) ListYears() ([]model.AwardYear, error) {
	if s.awardRepo == nil {
		return nil, ErrInternal
	}
	return s.awardRepo.FindYears()
}

// CreateYear 年度必须是四位数，且不能重复。
func (s *awardService) CreateYear(year int) (*model.AwardYear, error) {
	if s.awardRepo == nil {
		return nil, ErrInternal
	}
	if year < 1000 || year > 9999 {
		return nil, ErrInvalidInput
	}
	if _, err := s.awardRepo.FindYearByValue(year); err == nil {
		return nil, ErrAwardAlreadyExists
	} else if !isNotFound(err) {
		return nil, err
	}

	y := &model.AwardYear{Year: year}
	if err := s.awardRepo.CreateYear(y); err != nil {
		return nil, translate(err, nil, ErrAwardAlreadyExists)
	}
	return y, nil
}

func (s *awardService) DeleteYear(id uint) error {
	if s.awardRepo == nil {
		return ErrInternal
	}
	return s.deleteWith(id, s.awardRepo.DeleteYear)
}

func (s *awardService) ListTitles() ([]model.AwardTitle, error) {
	if s.awardRepo == nil {
		return nil, ErrInternal
	}
	return s.awardRepo.FindTitles()
}

func (s *awardService) CreateTitle(name, scope, level string) (*model.AwardTitle, error) {
	if s.awardRepo == nil {
		return nil, ErrInternal
	}
	t := &model.AwardTitle{
		Name:  strings.TrimSpace(name),
		Scope: strings.TrimSpace(scope),
		Level: strings.TrimSpace(level),
	}
	if t.Name == "" {
		return nil, ErrInvalidInput
	}
	if err := s.awardRepo.CreateTitle(t); err != nil {
		return nil, translate(err, nil, ErrAwardAlreadyExists)
	}
	return t, nil
}

func (s *awardService) UpdateTitle(id uint, name, scope, level string) (*model.AwardTitle, error) {
	if s.awardRepo == nil {
		return nil, ErrInternal
	}
	t := &model.AwardTitle{
		ID:    id,
		Name:  strings.TrimSpace(name),
		Scope: strings.TrimSpace(scope),
		Level: strings.TrimSpace(level),
	}
	if id == 0 || t.Name == "" {
		return nil, ErrInvalidInput
	}
	if err := s.awardRepo.UpdateTitle(t); err != nil {
		return nil, translate(err, ErrAwardNotFound, ErrAwardAlreadyExists)
	}
	return t, nil
}

func (s *awardService) DeleteTitle(id uint) error {
	if s.awardRepo == nil {
		return ErrInternal
	}
	return s.deleteWith(id, s.awardRepo.DeleteTitle)
}

func (s *awardService) ListAuthorities() ([]model.AwardAuthority, error) {
	if s.awardRepo == nil {
		return nil, ErrInternal
	}
	return s.awardRepo.FindAuthorities()
}

func (s *awardService) CreateAuthority(name, level string) (*model.AwardAuthority, error) {
	if s.awardRepo == nil {
		return nil, ErrInternal
	}
	a := &model.AwardAuthority{Name: strings.TrimSpace(name), Level: strings.TrimSpace(level)}
	if a.Name == "" {
		return nil, ErrInvalidInput
	}
	if err := s.awardRepo.CreateAuthority(a); err != nil {
		return nil, translate(err, nil, ErrAwardAlreadyExists)
	}
	return a, nil
}

func (s *awardService) DeleteAuthority(id uint) error {
	if s.awardRepo == nil {
		return ErrInternal
	}
	return s.deleteWith(id, s.awardRepo.DeleteAuthority)
}

func (s *awardService) ListBatches() ([]model.AwardBatchRow, error) {
	if s.awardRepo == nil {
		return nil, ErrInternal
	}
	return s.awardRepo.FindBatchRows()
}

// CreateBatch 年度与称号必填；引用不存在的年度/称号/机关时外键失败，返回 ErrInvalidInput。
func (s *awardService) CreateBatch(in BatchInput) (*model.AwardBatch, error) {
	if s.awardRepo == nil {
		return nil, ErrInternal
	}
	if in.AwardYearID == 0 || in.AwardTitleID == 0 {
		return nil, ErrInvalidInput
	}
	if in.AwardAuthorityID != nil && *in.AwardAuthorityID == 0 {
		in.AwardAuthorityID = nil
	}
	b := &model.AwardBatch{
		AwardYearID:      in.AwardYearID,
		AwardTitleID:     in.AwardTitleID,
		AwardAuthorityID: in.AwardAuthorityID,
		DecisionNo:       strings.TrimSpace(in.DecisionNo),
		DecisionDate:     strings.TrimSpace(in.DecisionDate),
		Note:             in.Note,
	}
	if err := s.awardRepo.CreateBatch(b); err != nil {
		return nil, translate(err, nil, ErrAwardAlreadyExists)
	}
	return b, nil
}

func (s *awardService) DeleteBatch(id uint) error {
	if s.awardRepo == nil {
		return ErrInternal
	}
	return s.deleteWith(id, s.awardRepo.DeleteBatch)
}

func (s *awardService) ListStaffAwards(memberID uint) ([]model.StaffAward, error) {
	if s.awardRepo == nil {
		return nil, ErrInternal
	}
	return s.awardRepo.FindStaffAwards(memberID)
}

func (s *awardService) GrantStaff(memberID, batchID uint, note string) (*model.StaffAward, error) {
	if s.awardRepo == nil || s.memberRepo == nil {
		return nil, ErrInternal
	}
	if memberID == 0 || batchID == 0 {
		return nil, ErrInvalidInput
	}
	exists, err := s.memberRepo.Exists(memberID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrMemberNotFound
	}
	if err := s.ensureBatch(batchID); err != nil {
		return nil, err
	}

	a := &model.StaffAward{MemberID: memberID, AwardBatchID: batchID, Note: note}
	if err := s.awardRepo.CreateStaffAward(a); err != nil {
		return nil, translate(err, nil, ErrAwardAlreadyExists)
	}
	return a, nil
}

func (s *awardService) RevokeStaff(id uint) error {
	if s.awardRepo == nil {
		return ErrInternal
	}
	return s.deleteWith(id, s.awardRepo.DeleteStaffAward)
}

func (s *awardService) ListDepartmentAwards(departmentID uint) ([]model.DepartmentAward, error) {
	if s.awardRepo == nil {
		return nil, ErrInternal
	}
	return s.awardRepo.FindDepartmentAwards(departmentID)
}

func (s *awardService) GrantDepartment(departmentID, batchID uint, note string) (*model.DepartmentAward, error) {
	if s.awardRepo == nil || s.deptRepo == nil {
		return nil, ErrInternal
	}
	if departmentID == 0 || batchID == 0 {
		return nil, ErrInvalidInput
	}
	if _, err := s.deptRepo.FindByID(departmentID); err != nil {
		return nil, translate(err, ErrDepartmentNotFound, nil)
	}
	if err := s.ensureBatch(batchID); err != nil {
		return nil, err
	}

	a := &model.DepartmentAward{DepartmentID: departmentID, AwardBatchID: batchID, Note: note}
	if err := s.awardRepo.CreateDepartmentAward(a); err != nil {
		return nil, translate(err, nil, ErrAwardAlreadyExists)
	}
	return a, nil
}

func (s *awardService) RevokeDepartment(id uint) error {
	if s.awardRepo == nil {
		return ErrInternal
	}
	return s.deleteWith(id, s.awardRepo.DeleteDepartmentAward)
}

func (s *awardService) ensureBatch(id uint) error {
	if _, err := s.awardRepo.FindBatchByID(id); err != nil {
		return translate(err, ErrAwardNotFound, nil)
	}
	return nil
}

func (s *awardService) deleteWith(id uint, del func(uint) error) error {
	if id == 0 {
		return ErrInvalidInput
	}
	return translate(del(id), ErrAwardNotFound, nil)
}
