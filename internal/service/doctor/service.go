package doctor

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/medicore/hms-api/internal/model"
	"github.com/medicore/hms-api/internal/repository"
	apperrors "github.com/medicore/hms-api/pkg/errors"
	"github.com/medicore/hms-api/pkg/security"
)

type Service struct {
	repo            repository.DoctorRepository
	departmentRepo  repository.DepartmentRepository
	appointmentRepo repository.AppointmentRepository
	availRepo       repository.AvailabilityRepository
	hasher          security.PasswordHasher
}

func NewService(
	repo repository.DoctorRepository,
	departmentRepo repository.DepartmentRepository,
	appointmentRepo repository.AppointmentRepository,
	availRepo repository.AvailabilityRepository,
	hasher security.PasswordHasher,
) *Service {
	return &Service{
		repo:            repo,
		departmentRepo:  departmentRepo,
		appointmentRepo: appointmentRepo,
		availRepo:       availRepo,
		hasher:          hasher,
	}
}

// Create provisions a doctor account and its profile atomically. The
// specialization must name an existing department.
func (s *Service) Create(ctx context.Context, req *model.CreateDoctorRequest) (*model.User, error) {
	if _, err := s.departmentRepo.Get(ctx, req.SpecializationID); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.BadRequest("unknown specialization", err)
		}
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooShort) {
			return nil, apperrors.BadRequest(err.Error(), err)
		}
		return nil, apperrors.Internal("failed to hash password", err)
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         model.RoleDoctor,
		Name:         req.Name,
		ContactInfo:  req.ContactInfo,
		IsActive:     true,
	}
	profile := &model.DoctorProfile{SpecializationID: req.SpecializationID}
	if err := s.repo.CreateWithUser(ctx, user, profile); err != nil {
		return nil, err
	}
	return user, nil
}

// Search lists doctors filtered by specialization and name.
func (s *Service) Search(ctx context.Context, filters *model.DoctorFilters) ([]*model.Doctor, int, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 0 {
		filters.PageSize = 0
	}
	return s.repo.Search(ctx, filters)
}

// Dashboard aggregates the doctor's upcoming appointments, patient roster
// and declared availability for the next seven days.
func (s *Service) Dashboard(ctx context.Context, doctorID uuid.UUID) (*model.DoctorDashboard, error) {
	now := time.Now()
	today := now.Format(model.DateLayout)

	upcoming, err := s.appointmentRepo.ListUpcomingForDoctor(ctx, doctorID, today)
	if err != nil {
		return nil, err
	}
	patients, err := s.appointmentRepo.ListDoctorPatients(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	weekEnd := now.AddDate(0, 0, 6).Format(model.DateLayout)
	availability, err := s.availRepo.ListForDoctor(ctx, doctorID, today, weekEnd)
	if err != nil {
		return nil, err
	}

	return &model.DoctorDashboard{
		UpcomingAppointments: upcoming,
		Patients:             patients,
		Availability:         availability,
	}, nil
}
