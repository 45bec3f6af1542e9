package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovimientoCaja is an immutable entry in the general cash ledger.
// Tipo: "ingreso" | "egreso"
// MetodoPago: "efectivo" | "transferencia" | "cheque" | "otro"
// The balance per payment method is always computed on read as
// SUM(ingreso) - SUM(egreso); it is never stored as a running counter.
type MovimientoCaja struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Tipo       string          `gorm:"type:varchar(10);not null"`
	Monto      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MetodoPago string          `gorm:"type:varchar(20);not null"`
	Concepto   string          `gorm:"not null"`
	Categoria  *string         `gorm:"type:varchar(50)"`
	// Structured references — display formatting is left to the caller.
	ClienteID  *uuid.UUID `gorm:"type:uuid;index"`
	ProyectoID *uuid.UUID `gorm:"type:uuid;index"`
	Fecha      time.Time  `gorm:"not null;index"`
	CreatedAt  time.Time
}

// MovimientoCajaProyecto is an entry in a project's own cash ledger.
// Tipo: "ingreso" | "egreso" | "transferencia_in"
// A transferencia_in row is always paired with a MovimientoCaja egreso created
// in the same transaction; MovimientoCajaOrigenID links the pair and both rows
// carry the same amount.
type MovimientoCajaProyecto struct {
	ID                     uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProyectoID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tipo                   string          `gorm:"type:varchar(20);not null"`
	Monto                  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Concepto               string          `gorm:"not null"`
	MovimientoCajaOrigenID *uuid.UUID      `gorm:"type:uuid;index"`
	Fecha                  time.Time       `gorm:"not null;index"`
	CreatedAt              time.Time
}

// MovimientoCuenta is an entry in a client's running account.
// Tipo: "cobro" | "cargo"
// Saldo = SUM(cobro) - SUM(cargo), computed on read. Every cobro is mirrored
// into the general cash ledger in the same transaction.
type MovimientoCuenta struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tipo       string          `gorm:"type:varchar(10);not null"`
	Monto      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Concepto   string          `gorm:"not null"`
	ProyectoID *uuid.UUID      `gorm:"type:uuid;index"`
	Fecha      time.Time       `gorm:"not null;index"`
	CreatedAt  time.Time
}
