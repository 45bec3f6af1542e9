package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistroRequest struct {
	Nombre   string `json:"nombre"   validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SolicitarResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ConfirmarResetRequest struct {
	Token    string `json:"token"    validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type AgregarEmailPermitidoRequest struct {
	Email string `json:"email" validate:"required,email"`
	Rol   string `json:"rol"   validate:"omitempty,oneof=admin user viewer"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID              string `json:"id"`
	Nombre          string `json:"nombre"`
	Email           string `json:"email"`
	Rol             string `json:"rol"`
	EmailVerificado bool   `json:"email_verificado"`
}

type LoginResponse struct {
	User UsuarioResponse `json:"user"`
}

type RegistroResponse struct {
	User    UsuarioResponse `json:"user"`
	Mensaje string          `json:"mensaje"`
}

type MensajeResponse struct {
	Mensaje string `json:"mensaje"`
}

type EmailPermitidoResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Rol   string `json:"rol"`
}
