package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Presupuesto is a quotation sent to a client.
// Estado: "borrador" | "enviado" | "aprobado" | "rechazado"
//
// CostoTotal is always the sum of item subtotals. Total equals that same sum
// unless the caller supplied an explicit override (margin, if any, is baked
// into the override by the caller).
type Presupuesto struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProyectoID  *uuid.UUID      `gorm:"type:uuid;index"`
	Titulo      string          `gorm:"not null"`
	Estado      string          `gorm:"type:varchar(20);not null;default:'borrador'"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostoTotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Observacion *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Cliente *Cliente          `gorm:"foreignKey:ClienteID"`
	Items   []PresupuestoItem `gorm:"foreignKey:PresupuestoID;constraint:OnDelete:CASCADE"`
}

// PresupuestoItem is a quotation line. Updating a quotation replaces the whole
// item set, so ids regenerate on every update.
type PresupuestoItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PresupuestoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Descripcion   string          `gorm:"not null"`
	Cantidad      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:1"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt     time.Time
}

// Documento is an uploaded attachment stored in the external blob store.
type Documento struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre     string     `gorm:"not null"`
	URL        string     `gorm:"not null"`
	Pathname   string     `gorm:"not null"`
	ClienteID  *uuid.UUID `gorm:"type:uuid;index"`
	ProyectoID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt  time.Time
}
