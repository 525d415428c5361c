package model

// User roles
const (
	RoleAdmin   = "Admin"
	RoleDoctor  = "Doctor"
	RolePatient = "Patient"
)

// User represents a system account: admins, doctors and patients share the
// same table, distinguished by role.
type User struct {
	Base
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         string `json:"role" db:"role"`
	Name         string `json:"name" db:"name"`
	ContactInfo  string `json:"contact_info" db:"contact_info"`
	IsActive     bool   `json:"is_active" db:"is_active"`
}

// RegisterRequest represents public patient self-registration
type RegisterRequest struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Name            string `json:"name" binding:"required"`
	ContactInfo     string `json:"contact_info" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
