package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/medicore/hms-api/internal/model"
	apperrors "github.com/medicore/hms-api/pkg/errors"
)

func (r *departmentRepository) Create(ctx context.Context, dept *model.Department) error {
	query := `
		INSERT INTO departments (id, name, description)
		VALUES ($1, $2, $3)
	`
	dept.ID = uuid.New()

	_, err := r.db.ExecContext(ctx, query, dept.ID, dept.Name, dept.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("department already exists", err)
		}
		return fmt.Errorf("failed to create department: %w", err)
	}
	return nil
}

func (r *departmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Department, error) {
	query := `
		SELECT id, name, description
		FROM departments
		WHERE id = $1
	`
	var dept model.Department
	if err := r.db.GetContext(ctx, &dept, query, id); err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("department", err)
		}
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]*model.DepartmentSummary, error) {
	query := `
		SELECT d.id, d.name, COUNT(doc.user_id) AS doctor_count
		FROM departments d
		LEFT JOIN doctors doc ON d.id = doc.specialization_id
		GROUP BY d.id, d.name
		ORDER BY d.name
	`
	var departments []*model.DepartmentSummary
	if err := r.db.SelectContext(ctx, &departments, query); err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, nil
}
