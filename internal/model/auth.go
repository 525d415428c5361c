package model

import "github.com/google/uuid"

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

// Stats backs the admin dashboard counters.
type Stats struct {
	DoctorCount      int `json:"doctor_count" db:"doctor_count"`
	PatientCount     int `json:"patient_count" db:"patient_count"`
	AppointmentCount int `json:"appointment_count" db:"appointment_count"`
}
