package model

import "github.com/google/uuid"

// Treatment is the clinical outcome recorded against a completed visit.
type Treatment struct {
	ID            uuid.UUID `json:"id" db:"id"`
	AppointmentID uuid.UUID `json:"appointment_id" db:"appointment_id"`
	Diagnosis     string    `json:"diagnosis" db:"diagnosis"`
	Prescription  string    `json:"prescription" db:"prescription"`
	Notes         string    `json:"notes" db:"notes"`
	DateRecorded  string    `json:"date_recorded" db:"date_recorded"`
}

type RecordTreatmentRequest struct {
	Diagnosis    string `json:"diagnosis" binding:"required"`
	Prescription string `json:"prescription"`
	Notes        string `json:"notes"`
}
