package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/medicore/hms-api/internal/repository"
)

type userRepository struct {
	BaseRepository
}

type departmentRepository struct {
	BaseRepository
}

type doctorRepository struct {
	BaseRepository
}

type availabilityRepository struct {
	BaseRepository
}

type appointmentRepository struct {
	BaseRepository
}

type treatmentRepository struct {
	BaseRepository
}

type statsRepository struct {
	BaseRepository
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{NewBaseRepository(db)}
}

func NewDepartmentRepository(db *sqlx.DB) repository.DepartmentRepository {
	return &departmentRepository{NewBaseRepository(db)}
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{NewBaseRepository(db)}
}

func NewAvailabilityRepository(db *sqlx.DB) repository.AvailabilityRepository {
	return &availabilityRepository{NewBaseRepository(db)}
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{NewBaseRepository(db)}
}

func NewTreatmentRepository(db *sqlx.DB) repository.TreatmentRepository {
	return &treatmentRepository{NewBaseRepository(db)}
}

func NewStatsRepository(db *sqlx.DB) repository.StatsRepository {
	return &statsRepository{NewBaseRepository(db)}
}
