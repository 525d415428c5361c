package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/medicore/hms-api/internal/model"
)

func (r *treatmentRepository) Create(ctx context.Context, treatment *model.Treatment) error {
	query := `
		INSERT INTO treatments (
			id, appointment_id, diagnosis, prescription, notes, date_recorded
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	treatment.ID = uuid.New()

	_, err := r.db.ExecContext(ctx, query,
		treatment.ID,
		treatment.AppointmentID,
		treatment.Diagnosis,
		treatment.Prescription,
		treatment.Notes,
		treatment.DateRecorded,
	)
	if err != nil {
		return fmt.Errorf("failed to create treatment: %w", err)
	}
	return nil
}

func (r *treatmentRepository) ListForAppointment(ctx context.Context, appointmentID uuid.UUID) ([]*model.Treatment, error) {
	query := `
		SELECT id, appointment_id, diagnosis, prescription, notes, date_recorded
		FROM treatments
		WHERE appointment_id = $1
		ORDER BY date_recorded
	`
	var treatments []*model.Treatment
	if err := r.db.SelectContext(ctx, &treatments, query, appointmentID); err != nil {
		return nil, fmt.Errorf("failed to list treatments: %w", err)
	}
	return treatments, nil
}
