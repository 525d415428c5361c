package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/medicore/hms-api/internal/model"
)

// All repository interfaces in one file
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByUsername(ctx context.Context, username string) (*model.User, error)
	}

	DepartmentRepository interface {
		Create(ctx context.Context, dept *model.Department) error
		Get(ctx context.Context, id uuid.UUID) (*model.Department, error)
		List(ctx context.Context) ([]*model.DepartmentSummary, error)
	}

	DoctorRepository interface {
		// CreateWithUser inserts the user account and the doctor profile in
		// one transaction.
		CreateWithUser(ctx context.Context, user *model.User, profile *model.DoctorProfile) error
		GetProfile(ctx context.Context, userID uuid.UUID) (*model.DoctorProfile, error)
		Search(ctx context.Context, filters *model.DoctorFilters) ([]*model.Doctor, int, error)
	}

	AvailabilityRepository interface {
		Create(ctx context.Context, slot *model.AvailabilitySlot) error
		ListForDoctor(ctx context.Context, doctorID uuid.UUID, startDate, endDate string) ([]*model.AvailabilitySlot, error)
		ListStartTimes(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error
		ListBookedTimes(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error)
		ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.PatientAppointment, error)
		ListUpcomingForDoctor(ctx context.Context, doctorID uuid.UUID, fromDate string) ([]*model.DoctorAppointment, error)
		ListDoctorPatients(ctx context.Context, doctorID uuid.UUID) ([]*model.PatientContact, error)
	}

	TreatmentRepository interface {
		Create(ctx context.Context, treatment *model.Treatment) error
		ListForAppointment(ctx context.Context, appointmentID uuid.UUID) ([]*model.Treatment, error)
	}

	StatsRepository interface {
		Get(ctx context.Context) (*model.Stats, error)
	}
)
