package model

import "github.com/google/uuid"

// AvailabilitySlot is a doctor-declared open interval. The start time is
// what appointments claim; (doctor_id, date, start_time) is unique.
type AvailabilitySlot struct {
	ID        uuid.UUID `json:"id" db:"id"`
	DoctorID  uuid.UUID `json:"doctor_id" db:"doctor_id"`
	Date      string    `json:"date" db:"date"`
	StartTime string    `json:"start_time" db:"start_time"`
	EndTime   string    `json:"end_time" db:"end_time"`
}

type CreateAvailabilityRequest struct {
	Date      string `json:"date" binding:"required,dateformat"`
	StartTime string `json:"start_time" binding:"required,timeformat"`
	EndTime   string `json:"end_time" binding:"required,timeformat"`
}
