package postgres

import (
	"context"
	"fmt"

	"github.com/medicore/hms-api/internal/model"
)

func (r *statsRepository) Get(ctx context.Context) (*model.Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(id) FROM users WHERE role = 'Doctor') AS doctor_count,
			(SELECT COUNT(id) FROM users WHERE role = 'Patient') AS patient_count,
			(SELECT COUNT(id) FROM appointments) AS appointment_count
	`
	var stats model.Stats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return &stats, nil
}
