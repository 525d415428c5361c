package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medicore/hms-api/internal/model"
	apperrors "github.com/medicore/hms-api/pkg/errors"
)

func (r *doctorRepository) CreateWithUser(ctx context.Context, user *model.User, profile *model.DoctorProfile) error {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	profile.UserID = user.ID

	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		userQuery := `
			INSERT INTO users (
				id, username, password_hash, role, name,
				contact_info, is_active, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		if _, err := tx.ExecContext(ctx, userQuery,
			user.ID,
			user.Username,
			user.PasswordHash,
			user.Role,
			user.Name,
			user.ContactInfo,
			user.IsActive,
			user.CreatedAt,
			user.UpdatedAt,
		); err != nil {
			return err
		}

		profileQuery := `
			INSERT INTO doctors (user_id, specialization_id)
			VALUES ($1, $2)
		`
		_, err := tx.ExecContext(ctx, profileQuery, profile.UserID, profile.SpecializationID)
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("username already taken", err)
		}
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*model.DoctorProfile, error) {
	query := `
		SELECT user_id, specialization_id
		FROM doctors
		WHERE user_id = $1
	`
	var profile model.DoctorProfile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound("doctor profile", err)
		}
		return nil, fmt.Errorf("failed to get doctor profile: %w", err)
	}
	return &profile, nil
}

func (r *doctorRepository) Search(ctx context.Context, filters *model.DoctorFilters) ([]*model.Doctor, int, error) {
	base := `
		FROM users u
		JOIN doctors doc ON u.id = doc.user_id
		JOIN departments d ON doc.specialization_id = d.id
		WHERE u.role = 'Doctor' AND u.is_active = TRUE
	`
	args := []interface{}{}
	argCount := 1

	if filters.SpecializationID != uuid.Nil {
		base += fmt.Sprintf(" AND d.id = $%d", argCount)
		args = append(args, filters.SpecializationID)
		argCount++
	}

	if filters.NameQuery != "" {
		base += fmt.Sprintf(" AND u.name ILIKE $%d", argCount)
		args = append(args, "%"+filters.NameQuery+"%")
		argCount++
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count doctors: %w", err)
	}

	query := `
		SELECT u.id, u.username, u.name, u.contact_info, d.name AS specialization
	` + base + " ORDER BY u.name"

	if filters.PageSize > 0 {
		offset := 0
		if filters.Page > 1 {
			offset = (filters.Page - 1) * filters.PageSize
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)
		args = append(args, filters.PageSize, offset)
	}

	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to search doctors: %w", err)
	}
	return doctors, total, nil
}
