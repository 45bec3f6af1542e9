package middleware

import (
	"net/http"

	"obranza/internal/apierror"
	"obranza/internal/model"
	"obranza/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie is the identity cookie holding the opaque session token.
	SessionCookie = "session_token"

	identityKey = "identity"
)

// Identity is the resolved user attached to the gin context for the request.
type Identity struct {
	Usuario *model.Usuario
	Token   string
}

// SetSessionCookie writes the identity cookie with the session's own TTL.
// Session row and cookie are always applied together; one without the other
// is an inconsistent state.
func SetSessionCookie(c *gin.Context, token string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(service.SesionTTL.Seconds()), "/", "", secure, true)
}

// ClearSessionCookie expires the identity cookie immediately.
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
}

// SessionAuth resolves the session cookie on every protected route.
// An absent or expired token aborts with 401.
func SessionAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticación requerida"))
			return
		}

		sesion, err := auth.ResolverSesion(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
			return
		}
		if sesion == nil || sesion.Usuario == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Sesión inválida o expirada"))
			return
		}

		c.Set(identityKey, &Identity{Usuario: sesion.Usuario, Token: token})
		c.Next()
	}
}

// RequireRole rejects requests whose role is not in the allowed list.
func RequireRole(roles ...model.Rol) gin.HandlerFunc {
	allowed := make(map[model.Rol]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		ident := GetIdentity(c)
		if ident == nil || !allowed[ident.Usuario.Rol] {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
			return
		}
		c.Next()
	}
}

// RequireWrite rejects read-only roles on mutating routes.
func RequireWrite() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := GetIdentity(c)
		if ident == nil || !ident.Usuario.Rol.PuedeEscribir() {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
			return
		}
		c.Next()
	}
}

// GetIdentity retrieves the typed identity from the gin context.
func GetIdentity(c *gin.Context) *Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	ident, _ := v.(*Identity)
	return ident
}
