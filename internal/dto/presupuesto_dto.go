package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type PresupuestoItemRequest struct {
	Descripcion string          `json:"descripcion" validate:"required,min=1"`
	Cantidad    decimal.Decimal `json:"cantidad"    validate:"omitempty,gt=0"`
	Subtotal    decimal.Decimal `json:"subtotal"    validate:"required,gte=0"`
}

type CrearPresupuestoRequest struct {
	ClienteID  string                   `json:"cliente_id"  validate:"required,uuid"`
	ProyectoID *string                  `json:"proyecto_id" validate:"omitempty,uuid"`
	Titulo     string                   `json:"titulo"      validate:"required,min=2"`
	Items      []PresupuestoItemRequest `json:"items"       validate:"required,min=1,dive"`
	// TotalOverride, when present, replaces the computed total; the cost total
	// always remains the sum of item subtotals.
	TotalOverride *decimal.Decimal `json:"total_override" validate:"omitempty,gte=0"`
	Observacion   *string          `json:"observacion"`
}

type ActualizarPresupuestoRequest struct {
	Titulo        string                   `json:"titulo"         validate:"omitempty,min=2"`
	Items         []PresupuestoItemRequest `json:"items"          validate:"omitempty,min=1,dive"`
	TotalOverride *decimal.Decimal         `json:"total_override" validate:"omitempty,gte=0"`
	Observacion   *string                  `json:"observacion"`
}

type EstadoPresupuestoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=borrador enviado aprobado rechazado"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PresupuestoItemResponse struct {
	ID          string          `json:"id"`
	Descripcion string          `json:"descripcion"`
	Cantidad    decimal.Decimal `json:"cantidad"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type PresupuestoResponse struct {
	ID          string                    `json:"id"`
	ClienteID   string                    `json:"cliente_id"`
	ProyectoID  *string                   `json:"proyecto_id"`
	Titulo      string                    `json:"titulo"`
	Estado      string                    `json:"estado"`
	Total       decimal.Decimal           `json:"total"`
	CostoTotal  decimal.Decimal           `json:"costo_total"`
	Items       []PresupuestoItemResponse `json:"items"`
	Observacion *string                   `json:"observacion"`
	CreatedAt   string                    `json:"created_at"`
}
