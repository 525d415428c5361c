package model

import (
	"time"

	"github.com/google/uuid"
)

// Wire formats for calendar dates and slot times, as stored and exchanged.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Base contains common fields for all models
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
