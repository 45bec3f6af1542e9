package model

import (
	"time"

	"github.com/google/uuid"
)

// Sesion is a persisted login session. The token is an opaque random value
// handed to the browser as an http-only cookie; all state lives in this row.
// A session is valid iff ExpiresAt is in the future. Expiry is never refreshed.
type Sesion struct {
	Token     string    `gorm:"primaryKey"`
	UsuarioID uuid.UUID `gorm:"type:uuid;not null;index"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}

// TokenVerificacion is a single-use email verification token (24h TTL).
// Once consumed, Usado flips permanently true and the token is rejected on reuse.
type TokenVerificacion struct {
	Token     string    `gorm:"primaryKey"`
	UsuarioID uuid.UUID `gorm:"type:uuid;not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	Usado     bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
}

// TokenReset is a single-use password reset token (1h TTL). Issuing a new
// reset token marks all prior unused tokens for that user as used.
type TokenReset struct {
	Token     string    `gorm:"primaryKey"`
	UsuarioID uuid.UUID `gorm:"type:uuid;not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	Usado     bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
}
