package router

import (
	"time"

	"obranza/internal/config"
	"obranza/internal/handler"
	"obranza/internal/infra"
	"obranza/internal/middleware"
	"obranza/internal/model"
	"obranza/internal/repository"
	"obranza/internal/service"
	"obranza/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, storage infra.Storage) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	sesionRepo := repository.NewSesionRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	permitidoRepo := repository.NewEmailPermitidoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	proyectoRepo := repository.NewProyectoRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	cuentaRepo := repository.NewCuentaRepository(db)
	presupuestoRepo := repository.NewPresupuestoRepository(db)
	documentoRepo := repository.NewDocumentoRepository(db)

	// Worker dispatcher — injected into services that enqueue async emails
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, sesionRepo, tokenRepo, permitidoRepo, dispatcher)
	permitidoSvc := service.NewPermitidoService(permitidoRepo)
	cajaSvc := service.NewCajaService(cajaRepo, proyectoRepo)
	cuentaSvc := service.NewCuentaService(cuentaRepo, cajaRepo, clienteRepo)
	presupuestoSvc := service.NewPresupuestoService(presupuestoRepo, clienteRepo)
	documentoSvc := service.NewDocumentoService(documentoRepo, storage)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc, cfg)
	permitidosH := handler.NewPermitidosHandler(permitidoSvc)
	clientesH := handler.NewClientesHandler(clienteRepo, cuentaSvc)
	proyectosH := handler.NewProyectosHandler(proyectoRepo, cajaSvc, cuentaSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	presupuestosH := handler.NewPresupuestosHandler(presupuestoSvc, presupuestoRepo, cfg)
	documentosH := handler.NewDocumentosHandler(documentoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authH.Registro)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.GET("/verify", authH.Verificar)
		auth.POST("/reset-password/request", authH.SolicitarReset)
		auth.POST("/reset-password/confirm", authH.ConfirmarReset)
	}

	// Protected routes — every role can read, viewer cannot write
	sessionMW := middleware.SessionAuth(authSvc)
	v1 := r.Group("/v1", sessionMW)
	{
		v1.POST("/auth/logout", authH.Logout)
		v1.GET("/auth/me", authH.Me)

		// Allow-list management — admin only
		permitidos := v1.Group("/permitidos", middleware.RequireRole(model.RolAdmin))
		{
			permitidos.GET("", permitidosH.Listar)
			permitidos.POST("", permitidosH.Agregar)
			permitidos.DELETE("/:id", permitidosH.Eliminar)
		}

		clientes := v1.Group("/clientes")
		{
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.Obtener)
			clientes.GET("/:id/cuenta", clientesH.Cuenta)
			clientes.POST("", middleware.RequireWrite(), clientesH.Crear)
			clientes.PUT("/:id", middleware.RequireWrite(), clientesH.Actualizar)
			clientes.DELETE("/:id", middleware.RequireWrite(), clientesH.Eliminar)
			clientes.POST("/:id/cuenta/cobros", middleware.RequireWrite(), clientesH.Cobro)
			clientes.POST("/:id/cuenta/cargos", middleware.RequireWrite(), clientesH.Cargo)
		}

		proyectos := v1.Group("/proyectos")
		{
			proyectos.GET("", proyectosH.Listar)
			proyectos.GET("/:id", proyectosH.Obtener)
			proyectos.GET("/:id/caja", proyectosH.Caja)
			proyectos.POST("", middleware.RequireWrite(), proyectosH.Crear)
			proyectos.PUT("/:id", middleware.RequireWrite(), proyectosH.Actualizar)
			proyectos.DELETE("/:id", middleware.RequireWrite(), proyectosH.Eliminar)
			proyectos.POST("/:id/cobrar-cuota", middleware.RequireWrite(), proyectosH.CobrarCuota)
		}

		caja := v1.Group("/caja")
		{
			caja.GET("/movimientos", cajaH.ListMovimientos)
			caja.GET("/saldo", cajaH.Saldo)
			caja.POST("/movimientos", middleware.RequireWrite(), cajaH.RegistrarMovimiento)
			caja.POST("/transferencias", middleware.RequireWrite(), cajaH.Transferir)
		}

		presupuestos := v1.Group("/presupuestos")
		{
			presupuestos.GET("", presupuestosH.Listar)
			presupuestos.GET("/:id", presupuestosH.Obtener)
			presupuestos.GET("/:id/pdf", presupuestosH.ExportarPDF)
			presupuestos.POST("", middleware.RequireWrite(), presupuestosH.Crear)
			presupuestos.PUT("/:id", middleware.RequireWrite(), presupuestosH.Actualizar)
			presupuestos.PATCH("/:id/estado", middleware.RequireWrite(), presupuestosH.ActualizarEstado)
			presupuestos.DELETE("/:id", middleware.RequireWrite(), presupuestosH.Eliminar)
		}

		documentos := v1.Group("/documentos")
		{
			documentos.GET("", documentosH.Listar)
			documentos.POST("", middleware.RequireWrite(), documentosH.Subir)
			documentos.DELETE("/:id", middleware.RequireWrite(), documentosH.Eliminar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
