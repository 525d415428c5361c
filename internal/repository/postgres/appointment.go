package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medicore/hms-api/internal/model"
	apperrors "github.com/medicore/hms-api/pkg/errors"
)

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, patient_id, doctor_id, date, time, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	appointment.ID = uuid.New()
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.Date,
		appointment.Time,
		appointment.Status,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("slot already booked", err)
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT id, patient_id, doctor_id, date, time, status,
		       created_at, updated_at
		FROM appointments
		WHERE id = $1
	`
	var appointment model.Appointment
	if err := r.db.GetContext(ctx, &appointment, query, id); err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error {
	query := `
		UPDATE appointments
		SET status = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}
	return nil
}

func (r *appointmentRepository) ListBookedTimes(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error) {
	query := `
		SELECT time
		FROM appointments
		WHERE doctor_id = $1 AND date = $2 AND status = 'Booked'
	`
	var times []string
	if err := r.db.SelectContext(ctx, &times, query, doctorID, date); err != nil {
		return nil, fmt.Errorf("failed to list booked times: %w", err)
	}
	return times, nil
}

func (r *appointmentRepository) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.PatientAppointment, error) {
	query := `
		SELECT a.id, a.date, a.time, a.status,
		       u_doc.name AS doctor_name,
		       d.name AS specialization,
		       t.diagnosis, t.prescription
		FROM appointments a
		JOIN users u_doc ON a.doctor_id = u_doc.id
		JOIN doctors doc ON u_doc.id = doc.user_id
		JOIN departments d ON doc.specialization_id = d.id
		LEFT JOIN treatments t ON a.id = t.appointment_id
		WHERE a.patient_id = $1
		ORDER BY a.date DESC, a.time DESC
	`
	var appointments []*model.PatientAppointment
	if err := r.db.SelectContext(ctx, &appointments, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list patient appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListUpcomingForDoctor(ctx context.Context, doctorID uuid.UUID, fromDate string) ([]*model.DoctorAppointment, error) {
	query := `
		SELECT a.id, a.date, a.time, a.status,
		       u.name AS patient_name,
		       u.contact_info AS patient_contact_info
		FROM appointments a
		JOIN users u ON a.patient_id = u.id
		WHERE a.doctor_id = $1 AND a.status = 'Booked' AND a.date >= $2
		ORDER BY a.date, a.time
	`
	var appointments []*model.DoctorAppointment
	if err := r.db.SelectContext(ctx, &appointments, query, doctorID, fromDate); err != nil {
		return nil, fmt.Errorf("failed to list upcoming appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListDoctorPatients(ctx context.Context, doctorID uuid.UUID) ([]*model.PatientContact, error) {
	query := `
		SELECT DISTINCT u.id, u.name, u.contact_info
		FROM appointments a
		JOIN users u ON a.patient_id = u.id
		WHERE a.doctor_id = $1
		ORDER BY u.name
	`
	var patients []*model.PatientContact
	if err := r.db.SelectContext(ctx, &patients, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list doctor patients: %w", err)
	}
	return patients, nil
}
