package model

import "github.com/google/uuid"

// Department doubles as a doctor specialization.
type Department struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
}

// DepartmentSummary is the catalog listing row, with the number of doctors
// assigned to the department.
type DepartmentSummary struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	DoctorCount int       `json:"doctor_count" db:"doctor_count"`
}

type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}
