package treatment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medicore/hms-api/internal/model"
	apperrors "github.com/medicore/hms-api/pkg/errors"
)

type fakeTreatmentRepo struct {
	treatments []*model.Treatment
}

func (r *fakeTreatmentRepo) Create(ctx context.Context, treatment *model.Treatment) error {
	treatment.ID = uuid.New()
	r.treatments = append(r.treatments, treatment)
	return nil
}

func (r *fakeTreatmentRepo) ListForAppointment(ctx context.Context, appointmentID uuid.UUID) ([]*model.Treatment, error) {
	var out []*model.Treatment
	for _, t := range r.treatments {
		if t.AppointmentID == appointmentID {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, apt *model.Appointment) error {
	apt.ID = uuid.New()
	r.appointments[apt.ID] = apt
	return nil
}

func (r *fakeAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, ok := r.appointments[id]
	if !ok {
		return nil, apperrors.NotFound("appointment", nil)
	}
	return apt, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error {
	apt, ok := r.appointments[id]
	if !ok {
		return apperrors.NotFound("appointment", nil)
	}
	apt.Status = status
	return nil
}

func (r *fakeAppointmentRepo) ListBookedTimes(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.PatientAppointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) ListUpcomingForDoctor(ctx context.Context, doctorID uuid.UUID, fromDate string) ([]*model.DoctorAppointment, error) {
	return nil, nil
}

func (r *fakeAppointmentRepo) ListDoctorPatients(ctx context.Context, doctorID uuid.UUID) ([]*model.PatientContact, error) {
	return nil, nil
}

func setup(status model.AppointmentStatus) (*Service, *model.Appointment) {
	appointments := &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
	apt := &model.Appointment{
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		Date:      "2026-09-01",
		Time:      "09:00",
		Status:    status,
	}
	appointments.Create(context.Background(), apt)
	return NewService(&fakeTreatmentRepo{}, appointments), apt
}

func TestRecordByAssignedDoctor(t *testing.T) {
	svc, apt := setup(model.AppointmentStatusCompleted)

	treatment, err := svc.Record(context.Background(), apt.DoctorID, apt.ID, &model.RecordTreatmentRequest{
		Diagnosis:    "Seasonal flu",
		Prescription: "Rest and fluids",
	})
	require.NoError(t, err)
	assert.Equal(t, apt.ID, treatment.AppointmentID)
	assert.NotEmpty(t, treatment.DateRecorded)
}

func TestRecordByOtherDoctorForbidden(t *testing.T) {
	svc, apt := setup(model.AppointmentStatusCompleted)

	_, err := svc.Record(context.Background(), uuid.New(), apt.ID, &model.RecordTreatmentRequest{
		Diagnosis: "Seasonal flu",
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
}

func TestRecordAgainstCancelledConflicts(t *testing.T) {
	svc, apt := setup(model.AppointmentStatusCancelled)

	_, err := svc.Record(context.Background(), apt.DoctorID, apt.ID, &model.RecordTreatmentRequest{
		Diagnosis: "Seasonal flu",
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestListRestrictedToParticipants(t *testing.T) {
	svc, apt := setup(model.AppointmentStatusCompleted)

	_, err := svc.Record(context.Background(), apt.DoctorID, apt.ID, &model.RecordTreatmentRequest{
		Diagnosis: "Seasonal flu",
	})
	require.NoError(t, err)

	treatments, err := svc.ListForAppointment(context.Background(), apt.ID, apt.PatientID, model.RolePatient)
	require.NoError(t, err)
	assert.Len(t, treatments, 1)

	_, err = svc.ListForAppointment(context.Background(), apt.ID, uuid.New(), model.RolePatient)
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))

	_, err = svc.ListForAppointment(context.Background(), apt.ID, uuid.New(), model.RoleAdmin)
	assert.NoError(t, err)
}
