package service

import (
	"hrm_records_go/internal/model"
	"hrm_records_go/internal/repository"
	"hrm_records_go/pkg/log"
)

// Dashboard 是总览页的全部数据。
type Dashboard struct {
	Counts  *model.Statistics       `json:"counts"`
	ByYear  []model.YearAwardCount  `json:"byYear"`
	ByLevel []model.LevelAwardCount `json:"byLevel"`
}

type StatsService interface {
	Dashboard() (*Dashboard, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) Dashboard() (*Dashboard, error) {
	if s.statsRepo == nil {
		return nil, ErrInternal
	}
	counts, err := s.statsRepo.Counts()
	if err != nil {
		log.Errorf("Dashboard: count failed: %v", err)
		return nil, ErrInternal
	}
	byYear, err := s.statsRepo.AwardsByYear()
	if err != nil {
		log.Errorf("Dashboard: awards by year failed: %v", err)
		return nil, ErrInternal
	}
	byLevel, err := s.statsRepo.AwardsByLevel()
	if err != nil {
		log.Errorf("Dashboard: awards by level failed: %v", err)
		return nil, ErrInternal
	}
	return &Dashboard{Counts: counts, ByYear: byYear, ByLevel: byLevel}, nil
}
