package stats

import (
	"context"

	"github.com/medicore/hms-api/internal/model"
	"github.com/medicore/hms-api/internal/repository"
)

type Service struct {
	repo repository.StatsRepository
}

func NewService(repo repository.StatsRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (*model.Stats, error) {
	return s.repo.Get(ctx)
}
