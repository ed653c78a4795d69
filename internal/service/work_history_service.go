package service

import (
	"strings"

	"hrm_records_go/internal/model"
	"hrm_records_go/internal/repository"
)

// WorkHistoryInput 是任职记录的可变字段。
type WorkHistoryInput struct {
	DecisionNo        string
	DecisionDate      string
	Positions         string
	PositionHeldSince string
	JoinedAgencyOn    string
	Note              string
}

type WorkHistoryService interface {
	Create(memberID uint, in WorkHistoryInput) (*model.WorkHistory, error)
	Update(id uint, in WorkHistoryInput) (*model.WorkHistory, error)
	Get(id uint) (*model.WorkHistory, error)
	ListByMember(memberID uint) ([]model.WorkHistory, error)
	ListAll() ([]model.WorkHistoryRow, error)
	Delete(id uint) error
}

type workHistoryService struct {
	whRepo     repository.WorkHistoryRepository
	memberRepo repository.MemberRepository
}

func NewWorkHistoryService(whRepo repository.WorkHistoryRepository, memberRepo repository.MemberRepository) WorkHistoryService {
	return &workHistoryService{whRepo: whRepo, memberRepo: memberRepo}
}

func (s *workHistoryService) Create(memberID uint, in WorkHistoryInput) (*model.WorkHistory, error) {
	if s.whRepo == nil || s.memberRepo == nil {
		return nil, ErrInternal
	}
	if err := s.ensureMember(memberID); err != nil {
		return nil, err
	}
	wh := in.toModel()
	wh.MemberID = memberID
	if err := s.whRepo.Create(wh); err != nil {
		return nil, translate(err, nil, nil)
	}
	return wh, nil
}

func (s *workHistoryService) Update(id uint, in WorkHistoryInput) (*model.WorkHistory, error) {
	if s.whRepo == nil {
		return nil, ErrInternal
	}
	current, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	wh := in.toModel()
	wh.ID = id
	wh.MemberID = current.MemberID
	wh.CreatedAt = current.CreatedAt
	if err := s.whRepo.Update(wh); err != nil {
		return nil, translate(err, ErrWorkHistoryNotFound, nil)
	}
	return wh, nil
}

func (s *workHistoryService) Get(id uint) (*model.WorkHistory, error) {
	if s.whRepo == nil {
		return nil, ErrInternal
	}
	if id == 0 {
		return nil, ErrInvalidInput
	}
	wh, err := s.whRepo.FindByID(id)
	if err != nil {
		return nil, translate(err, ErrWorkHistoryNotFound, nil)
	}
	return wh, nil
}

func (s *workHistoryService) ListByMember(memberID uint) ([]model.WorkHistory, error) {
	if s.whRepo == nil || s.memberRepo == nil {
		return nil, ErrInternal
	}
	if err := s.ensureMember(memberID); err != nil {
		return nil, err
	}
	return s.whRepo.FindByMember(memberID)
}

func (s *workHistoryService) ListAll() ([]model.WorkHistoryRow, error) {
	if s.whRepo == nil {
		return nil, ErrInternal
	}
	return s.whRepo.FindAllRows()
}

func (s *workHistoryService) Delete(id uint) error {
	if s.whRepo == nil {
		return ErrInternal
	}
	if id == 0 {
		return ErrInvalidInput
	}
	return translate(s.whRepo.Delete(id), ErrWorkHistoryNotFound, nil)
}

func (s *workHistoryService) ensureMember(id uint) error {
	if id == 0 {
		return ErrInvalidInput
	}
	exists, err := s.memberRepo.Exists(id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrMemberNotFound
	}
	return nil
}

func (in WorkHistoryInput) toModel() *model.WorkHistory {
	return &model.WorkHistory{
		DecisionNo:        strings.TrimSpace(in.DecisionNo),
		DecisionDate:      strings.TrimSpace(in.DecisionDate),
		Positions:         strings.TrimSpace(in.Positions),
		PositionHeldSince: strings.TrimSpace(in.PositionHeldSince),
		JoinedAgencyOn:    strings.TrimSpace(in.JoinedAgencyOn),
		Note:              in.Note,
	}
}
