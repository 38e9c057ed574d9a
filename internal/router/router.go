package router

import (
	"time"

	"comercial/internal/audit"
	"comercial/internal/authz"
	"comercial/internal/config"
	"comercial/internal/handler"
	"comercial/internal/metrics"
	"comercial/internal/middleware"
	"comercial/internal/repository"
	"comercial/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps are the long-lived collaborators built by the composition root.
type Deps struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Audit    *audit.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, d Deps) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(d.DB)
	rolRepo := repository.NewRolRepository(d.DB)
	categoriaRepo := repository.NewCategoriaRepository(d.DB)
	productoRepo := repository.NewProductoRepository(d.DB)
	proveedorRepo := repository.NewProveedorRepository(d.DB)
	clienteRepo := repository.NewClienteRepository(d.DB)
	compraRepo := repository.NewCompraRepository(d.DB)
	ventaRepo := repository.NewVentaRepository(d.DB)
	auditoriaRepo := repository.NewAuditoriaRepository(d.DB)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg, d.Audit)
	rolSvc := service.NewRolService(rolRepo, d.Audit)
	categoriaSvc := service.NewCategoriaService(categoriaRepo, d.Audit)
	productoSvc := service.NewProductoService(productoRepo, categoriaRepo, d.Audit)
	proveedorSvc := service.NewProveedorService(proveedorRepo, d.Audit)
	clienteSvc := service.NewClienteService(clienteRepo, d.Audit)
	compraSvc := service.NewCompraService(compraRepo, productoRepo, proveedorRepo, d.Audit, d.Metrics)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, clienteRepo, d.Audit, d.Metrics)
	auditoriaSvc := service.NewAuditoriaService(auditoriaRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	rolesH := handler.NewRolesHandler(rolSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	comprasH := handler.NewComprasHandler(compraSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	auditoriaH := handler.NewAuditoriaHandler(auditoriaSvc)

	health := &handler.HealthCheck{
		StoragePath: cfg.StoragePath,
		Version:     cfg.Version,
		Debug:       cfg.Debug,
	}
	if d.Redis != nil {
		health.Cache = d.Redis
	}
	if sqlDB, err := d.DB.DB(); err == nil {
		health.DB = sqlDB
	}

	// Global middleware chain (order matters)
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", health.Health)
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	// The principal is attached when a valid token is present; the gate
	// below is the only place that answers 401/403.
	v1 := r.Group("/v1", middleware.Autenticar(cfg.JWTSecret, authSvc))
	perm := func(slugs ...string) gin.HandlerFunc { return middleware.RequirePermiso(d.Metrics, slugs...) }

	auth := v1.Group("/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(5), authH.Login)
		auth.POST("/refresh", authH.Refresh)
		auth.GET("/me", middleware.RequireAutenticado(d.Metrics), authH.Me)
	}

	usuarios := v1.Group("/usuarios")
	{
		usuarios.GET("", perm(authz.UsuariosVer), usuariosH.Listar)
		usuarios.POST("", perm(authz.UsuariosCrear), usuariosH.Crear)
		usuarios.GET("/:id", perm(authz.UsuariosVer), usuariosH.Obtener)
		usuarios.PUT("/:id", perm(authz.UsuariosEditar), usuariosH.Actualizar)
		usuarios.DELETE("/:id", perm(authz.UsuariosEliminar), usuariosH.Eliminar)
		usuarios.PATCH("/:id/estado", perm(authz.UsuariosEditar), usuariosH.AlternarEstado)
		usuarios.PUT("/:id/roles", perm(authz.UsuariosAsignarRoles), usuariosH.AsignarRoles)
	}

	roles := v1.Group("/roles")
	{
		roles.GET("", perm(authz.RolesVer), rolesH.Listar)
		roles.POST("", perm(authz.RolesCrear), rolesH.Crear)
		roles.PUT("/:id/permisos", perm(authz.RolesEditar), rolesH.AsignarPermisos)
	}
	v1.GET("/permisos", perm(authz.RolesVer, authz.RolesEditar), rolesH.ListarPermisos)

	categorias := v1.Group("/categorias")
	{
		categorias.GET("", perm(authz.CategoriasVer), categoriasH.Listar)
		categorias.POST("", perm(authz.CategoriasCrear), categoriasH.Crear)
		categorias.GET("/:id", perm(authz.CategoriasVer), categoriasH.Obtener)
		categorias.PUT("/:id", perm(authz.CategoriasEditar), categoriasH.Actualizar)
		categorias.DELETE("/:id", perm(authz.CategoriasEliminar), categoriasH.Desactivar)
	}

	productos := v1.Group("/productos")
	{
		productos.GET("", perm(authz.ProductosVer), productosH.Listar)
		productos.POST("", perm(authz.ProductosCrear), productosH.Crear)
		productos.GET("/:id", perm(authz.ProductosVer), productosH.ObtenerPorID)
		productos.PUT("/:id", perm(authz.ProductosEditar), productosH.Actualizar)
		productos.DELETE("/:id", perm(authz.ProductosEliminar), productosH.Desactivar)
	}

	proveedores := v1.Group("/proveedores")
	{
		proveedores.GET("", perm(authz.ProveedoresVer), proveedoresH.Listar)
		proveedores.POST("", perm(authz.ProveedoresCrear), proveedoresH.Crear)
		proveedores.GET("/:id", perm(authz.ProveedoresVer), proveedoresH.ObtenerPorID)
		proveedores.PUT("/:id", perm(authz.ProveedoresEditar), proveedoresH.Actualizar)
		proveedores.DELETE("/:id", perm(authz.ProveedoresEliminar), proveedoresH.Eliminar)
	}

	clientes := v1.Group("/clientes")
	{
		clientes.GET("", perm(authz.ClientesVer), clientesH.Listar)
		clientes.POST("", perm(authz.ClientesCrear), clientesH.Crear)
		clientes.GET("/:id", perm(authz.ClientesVer), clientesH.ObtenerPorID)
		clientes.PUT("/:id", perm(authz.ClientesEditar), clientesH.Actualizar)
		clientes.DELETE("/:id", perm(authz.ClientesEliminar), clientesH.Eliminar)
	}

	compras := v1.Group("/compras")
	{
		compras.GET("", perm(authz.ComprasVer), comprasH.Listar)
		compras.POST("", perm(authz.ComprasCrear), comprasH.Crear)
		compras.GET("/:id", perm(authz.ComprasVer), comprasH.Obtener)
		compras.GET("/:id/pdf", perm(authz.ComprasVer), comprasH.DescargarPDF)
		compras.PATCH("/:id/estado", perm(authz.ComprasEditar), comprasH.CambiarEstado)
		compras.DELETE("/:id", perm(authz.ComprasEliminar), comprasH.Eliminar)
		compras.POST("/:id/detalles", perm(authz.ComprasEditar), comprasH.AgregarDetalle)
		compras.PUT("/:id/detalles/:detalle_id", perm(authz.ComprasEditar), comprasH.ActualizarDetalle)
		compras.DELETE("/:id/detalles/:detalle_id", perm(authz.ComprasEditar), comprasH.EliminarDetalle)
		compras.POST("/:id/recalcular", perm(authz.ComprasEditar), comprasH.Recalcular)
	}

	ventas := v1.Group("/ventas")
	{
		ventas.GET("", perm(authz.VentasVer), ventasH.Listar)
		ventas.POST("", perm(authz.VentasCrear), ventasH.Crear)
		ventas.GET("/:id", perm(authz.VentasVer), ventasH.Obtener)
		ventas.GET("/:id/pdf", perm(authz.VentasVer), ventasH.DescargarPDF)
		ventas.PATCH("/:id/estado", perm(authz.VentasEditar), ventasH.CambiarEstado)
		ventas.DELETE("/:id", perm(authz.VentasEliminar), ventasH.Eliminar)
		ventas.POST("/:id/detalles", perm(authz.VentasEditar), ventasH.AgregarDetalle)
		ventas.PUT("/:id/detalles/:detalle_id", perm(authz.VentasEditar), ventasH.ActualizarDetalle)
		ventas.DELETE("/:id/detalles/:detalle_id", perm(authz.VentasEditar), ventasH.EliminarDetalle)
		ventas.POST("/:id/recalcular", perm(authz.VentasEditar), ventasH.Recalcular)
	}

	v1.GET("/auditoria", perm(authz.AuditoriaVer), auditoriaH.Listar)

	// Swagger UI outside production only
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
