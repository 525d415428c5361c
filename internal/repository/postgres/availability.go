package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/medicore/hms-api/internal/model"
	apperrors "github.com/medicore/hms-api/pkg/errors"
)

func (r *availabilityRepository) Create(ctx context.Context, slot *model.AvailabilitySlot) error {
	query := `
		INSERT INTO doctor_availability (id, doctor_id, date, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
	`
	slot.ID = uuid.New()

	_, err := r.db.ExecContext(ctx, query,
		slot.ID,
		slot.DoctorID,
		slot.Date,
		slot.StartTime,
		slot.EndTime,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("slot already declared", err)
		}
		return fmt.Errorf("failed to create availability slot: %w", err)
	}
	return nil
}

func (r *availabilityRepository) ListForDoctor(ctx context.Context, doctorID uuid.UUID, startDate, endDate string) ([]*model.AvailabilitySlot, error) {
	query := `
		SELECT id, doctor_id, date, start_time, end_time
		FROM doctor_availability
		WHERE doctor_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date, start_time
	`
	var slots []*model.AvailabilitySlot
	if err := r.db.SelectContext(ctx, &slots, query, doctorID, startDate, endDate); err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}
	return slots, nil
}

func (r *availabilityRepository) ListStartTimes(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error) {
	query := `
		SELECT start_time
		FROM doctor_availability
		WHERE doctor_id = $1 AND date = $2
		ORDER BY start_time
	`
	var times []string
	if err := r.db.SelectContext(ctx, &times, query, doctorID, date); err != nil {
		return nil, fmt.Errorf("failed to list slot start times: %w", err)
	}
	return times, nil
}
