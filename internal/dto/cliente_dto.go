package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ClienteRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=2,max=150"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
	Notas     *string `json:"notas"`
}

type RubroRequest struct {
	Nombre          string          `json:"nombre"           validate:"required,min=1"`
	CostoMateriales decimal.Decimal `json:"costo_materiales" validate:"gte=0"`
	CostoManoObra   decimal.Decimal `json:"costo_mano_obra"  validate:"gte=0"`
}

type ProyectoRequest struct {
	Nombre      string         `json:"nombre"       validate:"required,min=2,max=150"`
	ClienteID   string         `json:"cliente_id"   validate:"required,uuid"`
	Estado      string         `json:"estado"       validate:"omitempty,oneof=presupuestado en_curso pausado finalizado"`
	Direccion   *string        `json:"direccion"`
	Descripcion *string        `json:"descripcion"`
	Rubros      []RubroRequest `json:"rubros"       validate:"omitempty,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Email     *string `json:"email"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
	Notas     *string `json:"notas"`
}

type RubroResponse struct {
	ID              string          `json:"id"`
	Nombre          string          `json:"nombre"`
	CostoMateriales decimal.Decimal `json:"costo_materiales"`
	CostoManoObra   decimal.Decimal `json:"costo_mano_obra"`
}

type ProyectoResponse struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	ClienteID   string          `json:"cliente_id"`
	Cliente     *string         `json:"cliente"`
	Estado      string          `json:"estado"`
	Direccion   *string         `json:"direccion"`
	Descripcion *string         `json:"descripcion"`
	Rubros      []RubroResponse `json:"rubros"`
}

type DocumentoResponse struct {
	ID       string `json:"id"`
	Nombre   string `json:"nombre"`
	URL      string `json:"url"`
	Pathname string `json:"pathname"`
}
