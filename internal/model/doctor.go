package model

import "github.com/google/uuid"

// DoctorProfile is the 1:1 extension of a Doctor user carrying the
// specialization link.
type DoctorProfile struct {
	UserID           uuid.UUID `json:"user_id" db:"user_id"`
	SpecializationID uuid.UUID `json:"specialization_id" db:"specialization_id"`
}

// Doctor is the joined view used by search and admin listings.
type Doctor struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Username       string    `json:"username" db:"username"`
	Name           string    `json:"name" db:"name"`
	ContactInfo    string    `json:"contact_info" db:"contact_info"`
	Specialization string    `json:"specialization" db:"specialization"`
}

// CreateDoctorRequest is the admin flow that creates the user account and
// the doctor profile together.
type CreateDoctorRequest struct {
	Username         string    `json:"username" binding:"required"`
	Password         string    `json:"password" binding:"required"`
	Name             string    `json:"name" binding:"required"`
	ContactInfo      string    `json:"contact_info"`
	SpecializationID uuid.UUID `json:"specialization_id" binding:"required"`
}

// DoctorFilters represents doctor search parameters
type DoctorFilters struct {
	SpecializationID uuid.UUID
	NameQuery        string
	Page             int
	PageSize         int
}

// DoctorDashboard aggregates the doctor landing view.
type DoctorDashboard struct {
	UpcomingAppointments []*DoctorAppointment `json:"upcoming_appointments"`
	Patients             []*PatientContact    `json:"patients"`
	Availability         []*AvailabilitySlot  `json:"availability"`
}

// DoctorAppointment is an appointment row enriched with patient contact
// details for the doctor dashboard.
type DoctorAppointment struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	Date               string    `json:"date" db:"date"`
	Time               string    `json:"time" db:"time"`
	Status             string    `json:"status" db:"status"`
	PatientName        string    `json:"patient_name" db:"patient_name"`
	PatientContactInfo string    `json:"patient_contact_info" db:"patient_contact_info"`
}

// PatientContact is a distinct patient seen by a doctor.
type PatientContact struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	ContactInfo string    `json:"contact_info" db:"contact_info"`
}
