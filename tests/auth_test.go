package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"obranza/internal/config"
	"obranza/internal/dto"
	"obranza/internal/handler"
	"obranza/internal/middleware"
	"obranza/internal/model"
	"obranza/internal/password"
	"obranza/internal/repository"
	"obranza/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory repository stubs ────────────────────────────────────────────────

type stubUsuarioRepo struct {
	users map[string]*model.Usuario // key: lowercase email
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{users: make(map[string]*model.Usuario)}
}

func (r *stubUsuarioRepo) DB() *gorm.DB { return nil }

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[strings.ToLower(u.Email)] = u
	return nil
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	u, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	out := make([]model.Usuario, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) MarcarVerificado(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	for _, u := range r.users {
		if u.ID == id {
			u.EmailVerificado = true
			return nil
		}
	}
	return errors.New("not found")
}

func (r *stubUsuarioRepo) UpdatePasswordHash(_ context.Context, _ *gorm.DB, id uuid.UUID, hash string) error {
	for _, u := range r.users {
		if u.ID == id {
			u.PasswordHash = hash
			return nil
		}
	}
	return errors.New("not found")
}

type stubSesionRepo struct {
	usuarios *stubUsuarioRepo
	sesiones map[string]*model.Sesion
}

func newStubSesionRepo(usuarios *stubUsuarioRepo) *stubSesionRepo {
	return &stubSesionRepo{usuarios: usuarios, sesiones: make(map[string]*model.Sesion)}
}

func (r *stubSesionRepo) Create(_ context.Context, s *model.Sesion) error {
	r.sesiones[s.Token] = s
	return nil
}

func (r *stubSesionRepo) FindByToken(ctx context.Context, token string) (*model.Sesion, error) {
	s, ok := r.sesiones[token]
	if !ok {
		return nil, errors.New("not found")
	}
	u, err := r.usuarios.FindByID(ctx, s.UsuarioID)
	if err == nil {
		s.Usuario = u
	}
	return s, nil
}

func (r *stubSesionRepo) Delete(_ context.Context, token string) error {
	delete(r.sesiones, token)
	return nil
}

func (r *stubSesionRepo) DeleteExpiradas(_ context.Context) (int64, error) {
	var n int64
	for tok, s := range r.sesiones {
		if !s.ExpiresAt.After(time.Now()) {
			delete(r.sesiones, tok)
			n++
		}
	}
	return n, nil
}

type stubTokenRepo struct {
	verificaciones map[string]*model.TokenVerificacion
	resets         map[string]*model.TokenReset
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{
		verificaciones: make(map[string]*model.TokenVerificacion),
		resets:         make(map[string]*model.TokenReset),
	}
}

func (r *stubTokenRepo) CreateVerificacion(_ context.Context, t *model.TokenVerificacion) error {
	r.verificaciones[t.Token] = t
	return nil
}

func (r *stubTokenRepo) FindVerificacion(_ context.Context, token string) (*model.TokenVerificacion, error) {
	t, ok := r.verificaciones[token]
	if !ok {
		return nil, errors.New("not found")
	}
	return t, nil
}

func (r *stubTokenRepo) MarcarVerificacionUsado(_ context.Context, _ *gorm.DB, token string) error {
	t, ok := r.verificaciones[token]
	if !ok {
		return errors.New("not found")
	}
	t.Usado = true
	return nil
}

func (r *stubTokenRepo) CreateReset(_ context.Context, _ *gorm.DB, t *model.TokenReset) error {
	r.resets[t.Token] = t
	return nil
}

func (r *stubTokenRepo) FindReset(_ context.Context, token string) (*model.TokenReset, error) {
	t, ok := r.resets[token]
	if !ok {
		return nil, errors.New("not found")
	}
	return t, nil
}

func (r *stubTokenRepo) MarcarResetUsado(_ context.Context, _ *gorm.DB, token string) error {
	t, ok := r.resets[token]
	if !ok {
		return errors.New("not found")
	}
	t.Usado = true
	return nil
}

func (r *stubTokenRepo) InvalidarResetsPendientes(_ context.Context, _ *gorm.DB, usuarioID uuid.UUID) error {
	for _, t := range r.resets {
		if t.UsuarioID == usuarioID && !t.Usado {
			t.Usado = true
		}
	}
	return nil
}

type stubPermitidoRepo struct {
	entradas map[string]*model.EmailPermitido // key: lowercase email
}

func newStubPermitidoRepo() *stubPermitidoRepo {
	return &stubPermitidoRepo{entradas: make(map[string]*model.EmailPermitido)}
}

func (r *stubPermitidoRepo) Create(_ context.Context, e *model.EmailPermitido) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.entradas[strings.ToLower(e.Email)] = e
	return nil
}

func (r *stubPermitidoRepo) FindByEmail(_ context.Context, email string) (*model.EmailPermitido, error) {
	e, ok := r.entradas[strings.ToLower(email)]
	if !ok {
		return nil, errors.New("not found")
	}
	return e, nil
}

func (r *stubPermitidoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.EmailPermitido, error) {
	for _, e := range r.entradas {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubPermitidoRepo) List(_ context.Context) ([]model.EmailPermitido, error) {
	out := make([]model.EmailPermitido, 0, len(r.entradas))
	for _, e := range r.entradas {
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubPermitidoRepo) Delete(_ context.Context, id uuid.UUID) error {
	for k, e := range r.entradas {
		if e.ID == id {
			delete(r.entradas, k)
			return nil
		}
	}
	return errors.New("not found")
}

// stubEnqueuer records enqueued emails instead of touching Redis.
type stubEnqueuer struct {
	verificaciones []string // tokens
	resets         []string
}

func (e *stubEnqueuer) EnqueueVerificacion(_ context.Context, _, _, token string) error {
	e.verificaciones = append(e.verificaciones, token)
	return nil
}

func (e *stubEnqueuer) EnqueueReset(_ context.Context, _, _, token string) error {
	e.resets = append(e.resets, token)
	return nil
}

var (
	_ repository.UsuarioRepository        = (*stubUsuarioRepo)(nil)
	_ repository.SesionRepository         = (*stubSesionRepo)(nil)
	_ repository.TokenRepository          = (*stubTokenRepo)(nil)
	_ repository.EmailPermitidoRepository = (*stubPermitidoRepo)(nil)
	_ service.EmailEnqueuer               = (*stubEnqueuer)(nil)
)

// ── Fixture ───────────────────────────────────────────────────────────────────

type authFixture struct {
	usuarios   *stubUsuarioRepo
	sesiones   *stubSesionRepo
	tokens     *stubTokenRepo
	permitidos *stubPermitidoRepo
	emails     *stubEnqueuer
	svc        service.AuthService
}

func newAuthFixture() *authFixture {
	usuarios := newStubUsuarioRepo()
	f := &authFixture{
		usuarios:   usuarios,
		sesiones:   newStubSesionRepo(usuarios),
		tokens:     newStubTokenRepo(),
		permitidos: newStubPermitidoRepo(),
		emails:     &stubEnqueuer{},
	}
	f.svc = service.NewAuthService(f.usuarios, f.sesiones, f.tokens, f.permitidos, f.emails)
	return f
}

func (f *authFixture) permitir(email string, rol model.Rol) {
	_ = f.permitidos.Create(context.Background(), &model.EmailPermitido{Email: email, Rol: rol})
}

func (f *authFixture) registrar(t *testing.T, email, pw string) *model.Usuario {
	t.Helper()
	_, err := f.svc.Registro(context.Background(), dto.RegistroRequest{
		Nombre: "Test", Email: email, Password: pw,
	})
	require.NoError(t, err)
	u, err := f.usuarios.FindByEmail(context.Background(), email)
	require.NoError(t, err)
	return u
}

func (f *authFixture) verificarUltimo(t *testing.T) {
	t.Helper()
	require.NotEmpty(t, f.emails.verificaciones)
	tok := f.emails.verificaciones[len(f.emails.verificaciones)-1]
	_, _, err := f.svc.Verificar(context.Background(), tok)
	require.NoError(t, err)
}

// ── Registro ──────────────────────────────────────────────────────────────────

func TestRegistroEmailNoPermitido(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.Registro(context.Background(), dto.RegistroRequest{
		Nombre: "Intruso", Email: "intruso@test.com", Password: "secreta1",
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "no está autorizado")
	assert.Empty(t, f.usuarios.users)
}

func TestRegistroCopiaRolDePermitido(t *testing.T) {
	f := newAuthFixture()
	f.permitir("obra@test.com", model.RolViewer)

	u := f.registrar(t, "obra@test.com", "secreta1")

	assert.Equal(t, model.RolViewer, u.Rol)
	assert.False(t, u.EmailVerificado)
	// Verification email was issued on registration
	assert.Len(t, f.emails.verificaciones, 1)
	// Password never stored in the clear
	assert.NotContains(t, u.PasswordHash, "secreta1")
	assert.True(t, password.Verify("secreta1", u.PasswordHash))
}

func TestRegistroDuplicado(t *testing.T) {
	f := newAuthFixture()
	f.permitir("dup@test.com", model.RolUser)
	f.registrar(t, "dup@test.com", "secreta1")

	_, err := f.svc.Registro(context.Background(), dto.RegistroRequest{
		Nombre: "Otra", Email: "DUP@test.com", Password: "otra1234",
	})
	assert.ErrorContains(t, err, "Ya existe un usuario")
}

// ── Login ─────────────────────────────────────────────────────────────────────

func TestLoginMismoErrorParaEmailYPassword(t *testing.T) {
	f := newAuthFixture()
	f.permitir("real@test.com", model.RolUser)
	f.registrar(t, "real@test.com", "secreta1")
	f.verificarUltimo(t)

	// Unknown email and wrong password must be indistinguishable
	_, _, errEmail := f.svc.Login(context.Background(), dto.LoginRequest{
		Email: "nadie@test.com", Password: "loquesea",
	})
	_, _, errPass := f.svc.Login(context.Background(), dto.LoginRequest{
		Email: "real@test.com", Password: "equivocada",
	})
	require.Error(t, errEmail)
	require.Error(t, errPass)
	assert.Equal(t, errEmail.Error(), errPass.Error())
}

func TestLoginNoVerificadoReenviaCorreo(t *testing.T) {
	f := newAuthFixture()
	f.permitir("lento@test.com", model.RolUser)
	f.registrar(t, "lento@test.com", "secreta1")

	antes := len(f.emails.verificaciones)
	_, _, err := f.svc.Login(context.Background(), dto.LoginRequest{
		Email: "lento@test.com", Password: "secreta1",
	})
	assert.ErrorContains(t, err, "no está verificado")
	// The refused login re-issued a fresh verification email
	assert.Len(t, f.emails.verificaciones, antes+1)
	assert.Empty(t, f.sesiones.sesiones)
}

func TestLoginCreaSesionConTTL(t *testing.T) {
	f := newAuthFixture()
	f.permitir("ok@test.com", model.RolUser)
	u := f.registrar(t, "ok@test.com", "secreta1")
	f.verificarUltimo(t)
	f.sesiones.sesiones = map[string]*model.Sesion{} // drop the auto-login session

	user, token, err := f.svc.Login(context.Background(), dto.LoginRequest{
		Email: "ok@test.com", Password: "secreta1",
	})
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), user.ID)
	assert.Len(t, token, 64) // 256 bits hex

	s := f.sesiones.sesiones[token]
	require.NotNil(t, s)
	assert.WithinDuration(t, time.Now().Add(service.SesionTTL), s.ExpiresAt, time.Minute)
}

// ── Verificación ──────────────────────────────────────────────────────────────

func TestVerificarAutoLoginYUnSoloUso(t *testing.T) {
	f := newAuthFixture()
	f.permitir("nueva@test.com", model.RolUser)
	f.registrar(t, "nueva@test.com", "secreta1")
	tok := f.emails.verificaciones[0]

	user, sesionToken, err := f.svc.Verificar(context.Background(), tok)
	require.NoError(t, err)
	assert.True(t, user.EmailVerificado)
	assert.NotEmpty(t, sesionToken)
	assert.Contains(t, f.sesiones.sesiones, sesionToken)

	// Second exchange of the same token is rejected
	_, _, err = f.svc.Verificar(context.Background(), tok)
	assert.ErrorContains(t, err, "expiró o ya fue usado")
}

func TestVerificarTokenExpirado(t *testing.T) {
	f := newAuthFixture()
	f.permitir("tarde@test.com", model.RolUser)
	u := f.registrar(t, "tarde@test.com", "secreta1")

	tok := "a1b2c3"
	_ = f.tokens.CreateVerificacion(context.Background(), &model.TokenVerificacion{
		Token: tok, UsuarioID: u.ID, ExpiresAt: time.Now().Add(-time.Minute),
	})
	_, _, err := f.svc.Verificar(context.Background(), tok)
	assert.ErrorContains(t, err, "expiró o ya fue usado")
}

// ── Sesiones ──────────────────────────────────────────────────────────────────

func TestResolverSesionExpirada(t *testing.T) {
	f := newAuthFixture()
	f.permitir("exp@test.com", model.RolUser)
	u := f.registrar(t, "exp@test.com", "secreta1")

	_ = f.sesiones.Create(context.Background(), &model.Sesion{
		Token: "vencida", UsuarioID: u.ID, ExpiresAt: time.Now().Add(-time.Second),
	})

	s, err := f.svc.ResolverSesion(context.Background(), "vencida")
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = f.svc.ResolverSesion(context.Background(), "inexistente")
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestLogoutIdempotente(t *testing.T) {
	f := newAuthFixture()
	require.NoError(t, f.svc.Logout(context.Background(), "no-existe"))
}

// ── Reset de contraseña ───────────────────────────────────────────────────────

func TestSolicitarResetInvalidaTokensAnteriores(t *testing.T) {
	f := newAuthFixture()
	f.permitir("reset@test.com", model.RolUser)
	f.registrar(t, "reset@test.com", "original1")
	f.verificarUltimo(t)

	require.NoError(t, f.svc.SolicitarReset(context.Background(), "reset@test.com"))
	require.NoError(t, f.svc.SolicitarReset(context.Background(), "reset@test.com"))
	require.Len(t, f.emails.resets, 2)

	primero, segundo := f.emails.resets[0], f.emails.resets[1]

	// The older token was invalidated by the newer request
	err := f.svc.ConfirmarReset(context.Background(), primero, "nueva1234")
	assert.ErrorContains(t, err, "expiró o ya fue usado")

	require.NoError(t, f.svc.ConfirmarReset(context.Background(), segundo, "nueva1234"))

	u, _ := f.usuarios.FindByEmail(context.Background(), "reset@test.com")
	assert.True(t, password.Verify("nueva1234", u.PasswordHash))
	assert.False(t, password.Verify("original1", u.PasswordHash))

	// A consumed token cannot be replayed
	err = f.svc.ConfirmarReset(context.Background(), segundo, "otra12345")
	assert.ErrorContains(t, err, "expiró o ya fue usado")
}

func TestSolicitarResetEmailInexistenteNoFalla(t *testing.T) {
	f := newAuthFixture()
	// Anti-enumeration: the service succeeds silently for unknown emails
	require.NoError(t, f.svc.SolicitarReset(context.Background(), "fantasma@test.com"))
	assert.Empty(t, f.emails.resets)
}

// ── HTTP: cookie de sesión ────────────────────────────────────────────────────

func newAuthRouter(f *authFixture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Env: "development"}
	authH := handler.NewAuthHandler(f.svc, cfg)

	r := gin.New()
	r.POST("/api/auth/login", authH.Login)
	v1 := r.Group("/v1", middleware.SessionAuth(f.svc))
	v1.GET("/auth/me", authH.Me)
	v1.POST("/auth/logout", authH.Logout)
	return r
}

func TestLoginEmiteCookieYMeLaAcepta(t *testing.T) {
	f := newAuthFixture()
	f.permitir("http@test.com", model.RolAdmin)
	f.registrar(t, "http@test.com", "secreta1")
	f.verificarUltimo(t)
	r := newAuthRouter(f)

	body, _ := json.Marshal(dto.LoginRequest{Email: "http@test.com", Password: "secreta1"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "login must set the session cookie")
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.False(t, cookie.Secure) // development

	// The cookie authenticates /v1/auth/me
	meReq := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	meReq.AddCookie(cookie)
	meW := httptest.NewRecorder()
	r.ServeHTTP(meW, meReq)

	require.Equal(t, http.StatusOK, meW.Code)
	assert.Contains(t, meW.Body.String(), "http@test.com")
}

func TestMeSinCookieRechazado(t *testing.T) {
	f := newAuthFixture()
	r := newAuthRouter(f)

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "token-falso"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutBorraSesionYCookie(t *testing.T) {
	f := newAuthFixture()
	f.permitir("chau@test.com", model.RolUser)
	u := f.registrar(t, "chau@test.com", "secreta1")
	f.verificarUltimo(t)
	r := newAuthRouter(f)

	_ = f.sesiones.Create(context.Background(), &model.Sesion{
		Token: "sesion-viva", UsuarioID: u.ID, ExpiresAt: time.Now().Add(time.Hour),
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "sesion-viva"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, f.sesiones.sesiones, "sesion-viva")

	var cleared *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}
