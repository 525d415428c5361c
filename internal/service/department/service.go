package department

import (
	"context"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/medicore/hms-api/internal/model"
	"github.com/medicore/hms-api/internal/repository"
	apperrors "github.com/medicore/hms-api/pkg/errors"
)

const listCacheKey = "departments"

// DefaultDepartments are seeded on startup so a fresh install has a
// usable catalog.
var DefaultDepartments = []model.CreateDepartmentRequest{
	{Name: "Cardiology", Description: "Heart and vascular care"},
	{Name: "Neurology", Description: "Brain and nervous system"},
	{Name: "Orthopedics", Description: "Bones, joints and muscles"},
}

type Service struct {
	repo      repository.DepartmentRepository
	listCache *gocache.Cache
}

func NewService(repo repository.DepartmentRepository) *Service {
	return &Service{
		repo:      repo,
		listCache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreateDepartmentRequest) (*model.Department, error) {
	dept := &model.Department{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, dept); err != nil {
		return nil, err
	}
	s.listCache.Delete(listCacheKey)
	return dept, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Department, error) {
	return s.repo.Get(ctx, id)
}

// List returns every department with its doctor headcount. The catalog
// changes rarely, so the result is held in process for a few minutes.
func (s *Service) List(ctx context.Context) ([]*model.DepartmentSummary, error) {
	if cached, ok := s.listCache.Get(listCacheKey); ok {
		return cached.([]*model.DepartmentSummary), nil
	}

	departments, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.listCache.Set(listCacheKey, departments, gocache.DefaultExpiration)
	return departments, nil
}

// EnsureDefaults seeds the default catalog, ignoring entries that already
// exist.
func (s *Service) EnsureDefaults(ctx context.Context) error {
	for i := range DefaultDepartments {
		if _, err := s.Create(ctx, &DefaultDepartments[i]); err != nil {
			if apperrors.Is(err, apperrors.ErrConflict) {
				continue
			}
			return err
		}
		log.Info().Str("department", DefaultDepartments[i].Name).Msg("department seeded")
	}
	return nil
}
