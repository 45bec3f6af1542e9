package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cliente is a client of the construction company.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null"`
	Email     *string
	Telefono  *string
	Direccion *string
	Notas     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Proyecto is a construction project, always tied to a client.
// Estado: "presupuestado" | "en_curso" | "pausado" | "finalizado"
type Proyecto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"not null"`
	ClienteID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Estado      string    `gorm:"type:varchar(20);not null;default:'en_curso'"`
	Direccion   *string
	Descripcion *string
	FechaInicio *time.Time
	FechaFin    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
	Rubros  []Rubro  `gorm:"foreignKey:ProyectoID;constraint:OnDelete:CASCADE"`
}

// Rubro is a budget line item within a project, with its own material and
// labor cost breakdown.
type Rubro struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProyectoID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Nombre          string          `gorm:"not null"`
	CostoMateriales decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CostoManoObra   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt       time.Time
}
