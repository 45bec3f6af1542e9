package model

import (
	"time"

	"github.com/google/uuid"
)

// Rol is the closed set of roles a user can hold.
type Rol string

const (
	RolAdmin  Rol = "admin"
	RolUser   Rol = "user"
	RolViewer Rol = "viewer"
)

// ParseRol normalizes an arbitrary string into a known Rol.
// Unknown or empty values default to RolUser.
func ParseRol(s string) Rol {
	switch Rol(s) {
	case RolAdmin, RolUser, RolViewer:
		return Rol(s)
	default:
		return RolUser
	}
}

// PuedeEscribir reports whether the role may create or mutate business data.
// Viewers are read-only.
func (r Rol) PuedeEscribir() bool {
	return r == RolAdmin || r == RolUser
}

// EsAdmin reports whether the role may administer users and the allow-list.
func (r Rol) EsAdmin() bool { return r == RolAdmin }

// Usuario stores system users with role-based access.
// Email is stored lowercase and matched case-insensitively.
type Usuario struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre          string    `gorm:"not null"`
	Email           string    `gorm:"uniqueIndex;not null"`
	PasswordHash    string    `gorm:"not null"`
	Rol             Rol       `gorm:"type:varchar(20);not null;default:'user'"`
	EmailVerificado bool      `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EmailPermitido is the admin-curated allow-list. An email must appear here
// (case-insensitive) before a Usuario with that email can self-register; the
// pre-assigned Rol is copied onto the new user.
type EmailPermitido struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email     string    `gorm:"uniqueIndex;not null"`
	Rol       Rol       `gorm:"type:varchar(20);not null;default:'user'"`
	CreatedAt time.Time
}
