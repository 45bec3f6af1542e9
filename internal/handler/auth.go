package handler

import (
	"net/http"

	"obranza/internal/apierror"
	"obranza/internal/config"
	"obranza/internal/dto"
	"obranza/internal/middleware"
	"obranza/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc service.AuthService
	cfg *config.Config
}

func NewAuthHandler(svc service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{svc: svc, cfg: cfg}
}

// Registro godoc
// @Summary Registro de usuario (email en lista de permitidos)
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegistroRequest true "Datos de registro"
// @Success 201 {object} dto.RegistroResponse
// @Failure 401 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/auth/registro [post]
func (h *AuthHandler) Registro(c *gin.Context) {
	var req dto.RegistroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registro(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Login con email y contraseña
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Failure 403 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	user, token, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	middleware.SetSessionCookie(c, token, h.cfg.CookieSecure())
	c.JSON(http.StatusOK, dto.LoginResponse{User: *user})
}

// Logout destroys the session row and clears the cookie together.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
		if err := h.svc.Logout(c.Request.Context(), token); err != nil {
			respondErr(c, err)
			return
		}
	}
	middleware.ClearSessionCookie(c, h.cfg.CookieSecure())
	c.JSON(http.StatusOK, dto.MensajeResponse{Mensaje: "Sesión cerrada"})
}

// Verificar consumes the emailed token and auto-logs the user in.
func (h *AuthHandler) Verificar(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Falta el token de verificación"))
		return
	}
	user, sesionToken, err := h.svc.Verificar(c.Request.Context(), token)
	if err != nil {
		respondErr(c, err)
		return
	}
	middleware.SetSessionCookie(c, sesionToken, h.cfg.CookieSecure())
	c.JSON(http.StatusOK, dto.LoginResponse{User: *user})
}

// SolicitarReset always answers with the same generic message, whether or not
// the email exists.
func (h *AuthHandler) SolicitarReset(c *gin.Context) {
	var req dto.SolicitarResetRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SolicitarReset(c.Request.Context(), req.Email); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MensajeResponse{
		Mensaje: "Si el email existe, te enviamos un enlace para restablecer la contraseña.",
	})
}

func (h *AuthHandler) ConfirmarReset(c *gin.Context) {
	var req dto.ConfirmarResetRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ConfirmarReset(c.Request.Context(), req.Token, req.Password); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MensajeResponse{Mensaje: "Contraseña actualizada"})
}

// Me returns the authenticated identity.
func (h *AuthHandler) Me(c *gin.Context) {
	ident := middleware.GetIdentity(c)
	u := ident.Usuario
	c.JSON(http.StatusOK, gin.H{"user": dto.UsuarioResponse{
		ID:              u.ID.String(),
		Nombre:          u.Nombre,
		Email:           u.Email,
		Rol:             string(u.Rol),
		EmailVerificado: u.EmailVerificado,
	}})
}
