package doctor

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medicore/hms-api/internal/model"
	apperrors "github.com/medicore/hms-api/pkg/errors"
	"github.com/medicore/hms-api/pkg/security"
)

type fakeDoctorRepo struct {
	users    map[uuid.UUID]*model.User
	profiles map[uuid.UUID]*model.DoctorProfile
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{
		users:    make(map[uuid.UUID]*model.User),
		profiles: make(map[uuid.UUID]*model.DoctorProfile),
	}
}

func (r *fakeDoctorRepo) CreateWithUser(ctx context.Context, user *model.User, profile *model.DoctorProfile) error {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return apperrors.Conflict("username already taken", nil)
		}
	}
	user.ID = uuid.New()
	profile.UserID = user.ID
	r.users[user.ID] = user
	r.profiles[user.ID] = profile
	return nil
}

func (r *fakeDoctorRepo) GetProfile(ctx context.Context, userID uuid.UUID) (*model.DoctorProfile, error) {
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, apperrors.NotFound("doctor", nil)
	}
	return profile, nil
}

func (r *fakeDoctorRepo) Search(ctx context.Context, filters *model.DoctorFilters) ([]*model.Doctor, int, error) {
	var out []*model.Doctor
	for id, user := range r.users {
		if filters.SpecializationID != uuid.Nil && r.profiles[id].SpecializationID != filters.SpecializationID {
			continue
		}
		out = append(out, &model.Doctor{ID: id, Username: user.Username, Name: user.Name})
	}
	return out, len(out), nil
}

type fakeDepartmentRepo struct {
	departments map[uuid.UUID]*model.Department
}

func (r *fakeDepartmentRepo) Create(ctx context.Context, dept *model.Department) error {
	dept.ID = uuid.New()
	r.departments[dept.ID] = dept
	return nil
}

func (r *fakeDepartmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Department, error) {
	dept, ok := r.departments[id]
	if !ok {
		return nil, apperrors.NotFound("department", nil)
	}
	return dept, nil
}

func (r *fakeDepartmentRepo) List(ctx context.Context) ([]*model.DepartmentSummary, error) {
	return nil, nil
}

type fakeAppointmentRepo struct {
	upcoming []*model.DoctorAppointment
	patients []*model.PatientContact
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, apt *model.Appointment) error { return nil }

func (r *fakeAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return nil, apperrors.NotFound("appointment", nil)
}

func (r *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error {
	return nil
}

func (r *fakeAppointmentRepo) ListBookedTimes(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.PatientAppointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) ListUpcomingForDoctor(ctx context.Context, doctorID uuid.UUID, fromDate string) ([]*model.DoctorAppointment, error) {
	return r.upcoming, nil
}

func (r *fakeAppointmentRepo) ListDoctorPatients(ctx context.Context, doctorID uuid.UUID) ([]*model.PatientContact, error) {
	return r.patients, nil
}

type fakeAvailabilityRepo struct {
	slots []*model.AvailabilitySlot
}

func (r *fakeAvailabilityRepo) Create(ctx context.Context, slot *model.AvailabilitySlot) error {
	r.slots = append(r.slots, slot)
	return nil
}

func (r *fakeAvailabilityRepo) ListForDoctor(ctx context.Context, doctorID uuid.UUID, startDate, endDate string) ([]*model.AvailabilitySlot, error) {
	var out []*model.AvailabilitySlot
	for _, slot := range r.slots {
		if slot.DoctorID == doctorID && slot.Date >= startDate && slot.Date <= endDate {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (r *fakeAvailabilityRepo) ListStartTimes(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error) {
	return nil, nil
}

func newTestService() (*Service, *fakeDoctorRepo, *fakeDepartmentRepo, *fakeAppointmentRepo, *fakeAvailabilityRepo) {
	doctors := newFakeDoctorRepo()
	departments := &fakeDepartmentRepo{departments: make(map[uuid.UUID]*model.Department)}
	appointments := &fakeAppointmentRepo{}
	availability := &fakeAvailabilityRepo{}
	svc := NewService(doctors, departments, appointments, availability, security.NewBcryptHasher(4))
	return svc, doctors, departments, appointments, availability
}

func TestCreateDoctor(t *testing.T) {
	svc, doctors, departments, _, _ := newTestService()

	dept := &model.Department{Name: "Cardiology"}
	require.NoError(t, departments.Create(context.Background(), dept))

	user, err := svc.Create(context.Background(), &model.CreateDoctorRequest{
		Username:         "drwho",
		Password:         "password123",
		Name:             "Dr. Who",
		SpecializationID: dept.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleDoctor, user.Role)
	assert.True(t, user.IsActive)

	profile, err := doctors.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, dept.ID, profile.SpecializationID)
}

func TestCreateDoctorUnknownSpecialization(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), &model.CreateDoctorRequest{
		Username:         "drwho",
		Password:         "password123",
		Name:             "Dr. Who",
		SpecializationID: uuid.New(),
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
}

func TestCreateDoctorShortPassword(t *testing.T) {
	svc, doctors, departments, _, _ := newTestService()

	dept := &model.Department{Name: "Cardiology"}
	require.NoError(t, departments.Create(context.Background(), dept))

	_, err := svc.Create(context.Background(), &model.CreateDoctorRequest{
		Username:         "drwho",
		Password:         "short",
		Name:             "Dr. Who",
		SpecializationID: dept.ID,
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
	assert.ErrorIs(t, err, security.ErrPasswordTooShort)
	assert.Empty(t, doctors.users)
}

func TestCreateDoctorDuplicateUsername(t *testing.T) {
	svc, _, departments, _, _ := newTestService()

	dept := &model.Department{Name: "Cardiology"}
	require.NoError(t, departments.Create(context.Background(), dept))

	req := &model.CreateDoctorRequest{
		Username:         "drwho",
		Password:         "password123",
		Name:             "Dr. Who",
		SpecializationID: dept.ID,
	}
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestDashboardAggregates(t *testing.T) {
	svc, _, _, appointments, availability := newTestService()
	doctorID := uuid.New()

	appointments.upcoming = []*model.DoctorAppointment{{ID: uuid.New(), PatientName: "Amy Pond"}}
	appointments.patients = []*model.PatientContact{{ID: uuid.New(), Name: "Amy Pond"}}
	availability.slots = []*model.AvailabilitySlot{
		{DoctorID: doctorID, Date: time.Now().AddDate(0, 0, 2).Format(model.DateLayout), StartTime: "09:00", EndTime: "09:30"},
		{DoctorID: doctorID, Date: time.Now().AddDate(0, 0, 30).Format(model.DateLayout), StartTime: "09:00", EndTime: "09:30"},
	}

	dashboard, err := svc.Dashboard(context.Background(), doctorID)
	require.NoError(t, err)
	assert.Len(t, dashboard.UpcomingAppointments, 1)
	assert.Len(t, dashboard.Patients, 1)
	// Only the next seven days of availability appear.
	assert.Len(t, dashboard.Availability, 1)
}
