package model

import "github.com/google/uuid"

type AppointmentStatus string

const (
	AppointmentStatusBooked    AppointmentStatus = "Booked"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

// Appointment is a patient's claim on one availability slot's start time.
// (doctor_id, date, time) is unique.
type Appointment struct {
	Base
	PatientID uuid.UUID         `json:"patient_id" db:"patient_id"`
	DoctorID  uuid.UUID         `json:"doctor_id" db:"doctor_id"`
	Date      string            `json:"date" db:"date"`
	Time      string            `json:"time" db:"time"`
	Status    AppointmentStatus `json:"status" db:"status"`
}

type BookAppointmentRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" binding:"required"`
	Date     string    `json:"date" binding:"required,dateformat"`
	Time     string    `json:"time" binding:"required,timeformat"`
}

// PatientAppointment is the history row joined with doctor, specialization
// and any recorded treatment.
type PatientAppointment struct {
	ID             uuid.UUID         `json:"id" db:"id"`
	Date           string            `json:"date" db:"date"`
	Time           string            `json:"time" db:"time"`
	Status         AppointmentStatus `json:"status" db:"status"`
	DoctorName     string            `json:"doctor_name" db:"doctor_name"`
	Specialization string            `json:"specialization" db:"specialization"`
	Diagnosis      *string           `json:"diagnosis,omitempty" db:"diagnosis"`
	Prescription   *string           `json:"prescription,omitempty" db:"prescription"`
}

// PatientDashboard splits a patient's appointments into upcoming bookings
// and history.
type PatientDashboard struct {
	Upcoming []*PatientAppointment `json:"upcoming_appointments"`
	History  []*PatientAppointment `json:"appointment_history"`
}

// OpenSlots is the availability endpoint payload: declared start times not
// yet claimed by a Booked appointment.
type OpenSlots struct {
	DoctorID uuid.UUID `json:"doctor_id"`
	Date     string    `json:"date"`
	Slots    []string  `json:"slots"`
}
