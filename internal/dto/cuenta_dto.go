package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type MovimientoCuentaRequest struct {
	Monto      decimal.Decimal `json:"monto"       validate:"required,gt=0"`
	Concepto   string          `json:"concepto"    validate:"omitempty,min=3"`
	MetodoPago string          `json:"metodo_pago" validate:"omitempty,oneof=efectivo transferencia cheque otro"`
	ProyectoID *string         `json:"proyecto_id" validate:"omitempty,uuid"`
}

type CobrarCuotaRequest struct {
	ClienteID  string          `json:"cliente_id"  validate:"required,uuid"`
	Monto      decimal.Decimal `json:"monto"       validate:"required,gt=0"`
	MetodoPago string          `json:"metodo_pago" validate:"required,oneof=efectivo transferencia cheque otro"`
	Concepto   string          `json:"concepto"    validate:"omitempty,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimientoCuentaResponse struct {
	ID         string          `json:"id"`
	ClienteID  string          `json:"cliente_id"`
	Tipo       string          `json:"tipo"`
	Monto      decimal.Decimal `json:"monto"`
	Concepto   string          `json:"concepto"`
	ProyectoID *string         `json:"proyecto_id"`
	Fecha      string          `json:"fecha"`
}

type CuentaCorrienteResponse struct {
	Movimientos []MovimientoCuentaResponse `json:"movimientos"`
	Saldo       decimal.Decimal            `json:"saldo"`
}

// CobroResponse returns both halves of the mirrored write.
type CobroResponse struct {
	Cobro   MovimientoCuentaResponse `json:"cobro"`
	Ingreso MovimientoCajaResponse   `json:"ingreso"`
}
