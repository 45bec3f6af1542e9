package service

import (
	"context"
	"strings"
	"time"

	"obranza/internal/apierror"
	"obranza/internal/dto"
	"obranza/internal/model"
	"obranza/internal/password"
	"obranza/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	// SesionTTL is the fixed session lifetime. Expiry is never refreshed.
	SesionTTL = 30 * 24 * time.Hour

	ttlVerificacion = 24 * time.Hour
	ttlReset        = time.Hour
)

// EmailEnqueuer abstracts the async email queue. Enqueue failures are logged
// by the caller and never abort the surrounding flow.
type EmailEnqueuer interface {
	EnqueueVerificacion(ctx context.Context, to, nombre, token string) error
	EnqueueReset(ctx context.Context, to, nombre, token string) error
}

type AuthService interface {
	Registro(ctx context.Context, req dto.RegistroRequest) (*dto.RegistroResponse, error)
	// Login returns the user and the new session token on success.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.UsuarioResponse, string, error)
	Logout(ctx context.Context, token string) error
	// Verificar consumes a verification token and auto-creates a session.
	Verificar(ctx context.Context, token string) (*dto.UsuarioResponse, string, error)
	SolicitarReset(ctx context.Context, email string) error
	ConfirmarReset(ctx context.Context, token, nuevaPassword string) error
	// ResolverSesion returns (nil, nil) for an absent or expired token.
	ResolverSesion(ctx context.Context, token string) (*model.Sesion, error)
}

type authService struct {
	usuarios   repository.UsuarioRepository
	sesiones   repository.SesionRepository
	tokens     repository.TokenRepository
	permitidos repository.EmailPermitidoRepository
	emails     EmailEnqueuer
}

func NewAuthService(
	usuarios repository.UsuarioRepository,
	sesiones repository.SesionRepository,
	tokens repository.TokenRepository,
	permitidos repository.EmailPermitidoRepository,
	emails EmailEnqueuer,
) AuthService {
	return &authService{
		usuarios:   usuarios,
		sesiones:   sesiones,
		tokens:     tokens,
		permitidos: permitidos,
		emails:     emails,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Registro ──────────────────────────────────────────────────────────────────
// Gated by the allow-list: the email must have been pre-authorized by an admin.
// The pre-assigned role is copied onto the new user.

func (s *authService) Registro(ctx context.Context, req dto.RegistroRequest) (*dto.RegistroResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	permitido, err := s.permitidos.FindByEmail(ctx, email)
	if err != nil {
		return nil, apierror.Unauthorized("El email no está autorizado para registrarse")
	}

	if _, err := s.usuarios.FindByEmail(ctx, email); err == nil {
		return nil, apierror.Conflict("Ya existe un usuario con ese email")
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.Usuario{
		Nombre:          req.Nombre,
		Email:           email,
		PasswordHash:    hash,
		Rol:             permitido.Rol,
		EmailVerificado: false,
	}
	if user.Rol == "" {
		user.Rol = model.RolUser
	}
	if err := s.usuarios.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.emitirVerificacion(ctx, user); err != nil {
		// Degraded outcome: the account exists but the email could not be
		// issued. Never roll back user creation over this.
		log.Error().Err(err).Str("email", email).Msg("registro: no se pudo emitir verificacion")
	}

	return &dto.RegistroResponse{
		User:    usuarioToResponse(user),
		Mensaje: "Cuenta creada. Revisá tu correo para verificarla.",
	}, nil
}

// ── Login ─────────────────────────────────────────────────────────────────────
// Anti-enumeration: unknown email and wrong password produce the same error.

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.UsuarioResponse, string, error) {
	user, err := s.usuarios.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", apierror.Unauthorized("Credenciales incorrectas")
	}
	if !password.Verify(req.Password, user.PasswordHash) {
		return nil, "", apierror.Unauthorized("Credenciales incorrectas")
	}

	if !user.EmailVerificado {
		// Side effect of the refused login: re-issue a fresh verification email.
		if err := s.emitirVerificacion(ctx, user); err != nil {
			log.Error().Err(err).Str("email", user.Email).Msg("login: reenvio de verificacion fallido")
		}
		return nil, "", apierror.Forbidden("Tu email no está verificado. Te reenviamos el correo de verificación.")
	}

	token, err := s.crearSesion(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	resp := usuarioToResponse(user)
	return &resp, token, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sesiones.Delete(ctx, token)
}

// ── Verificación de email ─────────────────────────────────────────────────────

func (s *authService) Verificar(ctx context.Context, token string) (*dto.UsuarioResponse, string, error) {
	t, err := s.tokens.FindVerificacion(ctx, token)
	if err != nil {
		return nil, "", apierror.BadRequest("Token de verificación inválido")
	}
	if t.Usado || time.Now().After(t.ExpiresAt) {
		return nil, "", apierror.BadRequest("El token de verificación expiró o ya fue usado")
	}

	user, err := s.usuarios.FindByID(ctx, t.UsuarioID)
	if err != nil {
		return nil, "", apierror.NotFound("Usuario no encontrado")
	}

	err = runTx(ctx, s.usuarios.DB(), func(tx *gorm.DB) error {
		if err := s.tokens.MarcarVerificacionUsado(ctx, tx, token); err != nil {
			return err
		}
		return s.usuarios.MarcarVerificado(ctx, tx, user.ID)
	})
	if err != nil {
		return nil, "", err
	}
	user.EmailVerificado = true

	// Auto-login: exchanging a valid token opens a session in the same flow.
	sesionToken, err := s.crearSesion(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	resp := usuarioToResponse(user)
	return &resp, sesionToken, nil
}

// ── Reset de contraseña ───────────────────────────────────────────────────────

// SolicitarReset never reveals whether the email exists; the handler returns
// the same generic message either way.
func (s *authService) SolicitarReset(ctx context.Context, email string) error {
	user, err := s.usuarios.FindByEmail(ctx, email)
	if err != nil {
		return nil
	}

	token, err := password.NewToken()
	if err != nil {
		return err
	}

	err = runTx(ctx, s.usuarios.DB(), func(tx *gorm.DB) error {
		// A new reset token invalidates every prior unused one for this user.
		if err := s.tokens.InvalidarResetsPendientes(ctx, tx, user.ID); err != nil {
			return err
		}
		return s.tokens.CreateReset(ctx, tx, &model.TokenReset{
			Token:     token,
			UsuarioID: user.ID,
			ExpiresAt: time.Now().Add(ttlReset),
		})
	})
	if err != nil {
		return err
	}

	if err := s.emails.EnqueueReset(ctx, user.Email, user.Nombre, token); err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("reset: no se pudo encolar el correo")
	}
	return nil
}

func (s *authService) ConfirmarReset(ctx context.Context, token, nuevaPassword string) error {
	t, err := s.tokens.FindReset(ctx, token)
	if err != nil {
		return apierror.BadRequest("Token de restablecimiento inválido")
	}
	if t.Usado || time.Now().After(t.ExpiresAt) {
		return apierror.BadRequest("El token de restablecimiento expiró o ya fue usado")
	}

	hash, err := password.Hash(nuevaPassword)
	if err != nil {
		return err
	}

	// Both writes land or neither: a consumed token with the old password (or
	// the inverse) would strand the user.
	return runTx(ctx, s.usuarios.DB(), func(tx *gorm.DB) error {
		if err := s.usuarios.UpdatePasswordHash(ctx, tx, t.UsuarioID, hash); err != nil {
			return err
		}
		return s.tokens.MarcarResetUsado(ctx, tx, token)
	})
}

// ── Sesiones ──────────────────────────────────────────────────────────────────

func (s *authService) ResolverSesion(ctx context.Context, token string) (*model.Sesion, error) {
	if token == "" {
		return nil, nil
	}
	sesion, err := s.sesiones.FindByToken(ctx, token)
	if err != nil {
		return nil, nil
	}
	if !sesion.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	return sesion, nil
}

func (s *authService) crearSesion(ctx context.Context, usuarioID uuid.UUID) (string, error) {
	token, err := password.NewToken()
	if err != nil {
		return "", err
	}
	sesion := &model.Sesion{
		Token:     token,
		UsuarioID: usuarioID,
		ExpiresAt: time.Now().Add(SesionTTL),
	}
	if err := s.sesiones.Create(ctx, sesion); err != nil {
		return "", err
	}
	return token, nil
}

func (s *authService) emitirVerificacion(ctx context.Context, user *model.Usuario) error {
	token, err := password.NewToken()
	if err != nil {
		return err
	}
	t := &model.TokenVerificacion{
		Token:     token,
		UsuarioID: user.ID,
		ExpiresAt: time.Now().Add(ttlVerificacion),
	}
	if err := s.tokens.CreateVerificacion(ctx, t); err != nil {
		return err
	}
	return s.emails.EnqueueVerificacion(ctx, user.Email, user.Nombre, token)
}

func usuarioToResponse(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:              u.ID.String(),
		Nombre:          u.Nombre,
		Email:           u.Email,
		Rol:             string(u.Rol),
		EmailVerificado: u.EmailVerificado,
	}
}
