package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type MovimientoCajaRequest struct {
	Tipo       string          `json:"tipo"        validate:"required,oneof=ingreso egreso"`
	Monto      decimal.Decimal `json:"monto"       validate:"required,gt=0"`
	MetodoPago string          `json:"metodo_pago" validate:"required,oneof=efectivo transferencia cheque otro"`
	Concepto   string          `json:"concepto"    validate:"required,min=3"`
	Categoria  *string         `json:"categoria"`
	ClienteID  *string         `json:"cliente_id"  validate:"omitempty,uuid"`
	ProyectoID *string         `json:"proyecto_id" validate:"omitempty,uuid"`
	Fecha      string          `json:"fecha"       validate:"omitempty,datetime=2006-01-02"`
}

type TransferenciaRequest struct {
	ProyectoID string          `json:"proyecto_id" validate:"required,uuid"`
	Monto      decimal.Decimal `json:"monto"       validate:"required,gt=0"`
	MetodoPago string          `json:"metodo_pago" validate:"required,oneof=efectivo transferencia cheque otro"`
	Concepto   string          `json:"concepto"    validate:"omitempty,min=3"`
}

type MovimientoFilter struct {
	Tipo       string
	MetodoPago string
	Desde      string
	Hasta      string
	Page       int
	Limit      int
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimientoCajaResponse struct {
	ID         string          `json:"id"`
	Tipo       string          `json:"tipo"`
	Monto      decimal.Decimal `json:"monto"`
	MetodoPago string          `json:"metodo_pago"`
	Concepto   string          `json:"concepto"`
	Categoria  *string         `json:"categoria"`
	ClienteID  *string         `json:"cliente_id"`
	ProyectoID *string         `json:"proyecto_id"`
	Fecha      string          `json:"fecha"`
}

type SaldoCajaResponse struct {
	PorMetodo map[string]decimal.Decimal `json:"por_metodo"`
	Total     decimal.Decimal            `json:"total"`
}

type MovimientoProyectoResponse struct {
	ID                     string          `json:"id"`
	ProyectoID             string          `json:"proyecto_id"`
	Tipo                   string          `json:"tipo"`
	Monto                  decimal.Decimal `json:"monto"`
	Concepto               string          `json:"concepto"`
	MovimientoCajaOrigenID *string         `json:"movimiento_caja_origen_id"`
	Fecha                  string          `json:"fecha"`
}

type CajaProyectoResponse struct {
	Movimientos []MovimientoProyectoResponse `json:"movimientos"`
	Saldo       decimal.Decimal              `json:"saldo"`
}

type TransferenciaResponse struct {
	Egreso          MovimientoCajaResponse     `json:"egreso"`
	TransferenciaIn MovimientoProyectoResponse `json:"transferencia_in"`
}
