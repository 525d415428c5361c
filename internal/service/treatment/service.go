package treatment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/medicore/hms-api/internal/model"
	"github.com/medicore/hms-api/internal/repository"
	apperrors "github.com/medicore/hms-api/pkg/errors"
)

type Service struct {
	repo            repository.TreatmentRepository
	appointmentRepo repository.AppointmentRepository
}

func NewService(repo repository.TreatmentRepository, appointmentRepo repository.AppointmentRepository) *Service {
	return &Service{repo: repo, appointmentRepo: appointmentRepo}
}

// Record stores a clinical outcome against an appointment. Only the
// assigned doctor may write one, and never against a cancelled visit.
func (s *Service) Record(ctx context.Context, doctorID, appointmentID uuid.UUID, req *model.RecordTreatmentRequest) (*model.Treatment, error) {
	apt, err := s.appointmentRepo.Get(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if apt.DoctorID != doctorID {
		return nil, apperrors.Forbidden("appointment belongs to another doctor", nil)
	}
	if apt.Status == model.AppointmentStatusCancelled {
		return nil, apperrors.Conflict("cannot record treatment for a cancelled appointment", nil)
	}

	treatment := &model.Treatment{
		AppointmentID: appointmentID,
		Diagnosis:     req.Diagnosis,
		Prescription:  req.Prescription,
		Notes:         req.Notes,
		DateRecorded:  time.Now().Format(model.DateLayout),
	}
	if err := s.repo.Create(ctx, treatment); err != nil {
		return nil, err
	}
	return treatment, nil
}

// ListForAppointment returns the treatments of one appointment,
// restricted to its participants. Admins can read any.
func (s *Service) ListForAppointment(ctx context.Context, appointmentID, actorID uuid.UUID, role string) ([]*model.Treatment, error) {
	apt, err := s.appointmentRepo.Get(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if role != model.RoleAdmin && apt.PatientID != actorID && apt.DoctorID != actorID {
		return nil, apperrors.Forbidden("not a participant of this appointment", nil)
	}
	return s.repo.ListForAppointment(ctx, appointmentID)
}
