//go:build integration

package router_test

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"comercial/internal/audit"
	"comercial/internal/authz"
	"comercial/internal/config"
	"comercial/internal/dto"
	"comercial/internal/infra"
	"comercial/internal/metrics"
	"comercial/internal/repository"
	"comercial/internal/router"
	"comercial/internal/seed"
	"comercial/internal/worker"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

const demoPassword = "integracion123"

// ── Helpers ──────────────────────────────────────────────────────────────────

type testEnv struct {
	server   *httptest.Server
	admin    string
	vendedor string
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, e.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func expect(t *testing.T, resp *http.Response, code int, dest any) {
	t.Helper()
	if dest == nil {
		resp.Body.Close()
		require.Equal(t, code, resp.StatusCode)
		return
	}
	require.Equal(t, code, resp.StatusCode)
	decodeJSON(t, resp, dest)
}

func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	var out dto.LoginResponse
	expect(t, e.do(t, http.MethodPost, "/v1/auth/login", dto.LoginRequest{Email: email, Password: demoPassword}, ""), http.StatusOK, &out)
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken
}

// ── Suite setup ──────────────────────────────────────────────────────────────

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("comercial_test"),
		tcPostgres.WithUsername("comercial"),
		tcPostgres.WithPassword("comercial"),
		testcontainers.WithWaitStrategy(tcPostgres.BasicWaitStrategies()...),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Env:                "test",
		Version:            "test",
		JWTSecret:          "integration-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    2,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		RateLimitPerMinute: 10000,
		StoragePath:        t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))

	rdb, err := infra.NewRedis(cfg.RedisURL, cfg.WorkerPoolSize)
	require.NoError(t, err)

	seed.BcryptCost = bcrypt.MinCost
	require.NoError(t, seed.Ejecutar(ctx,
		repository.NewRolRepository(db),
		repository.NewUsuarioRepository(db),
		seed.CuentasDemo(demoPassword),
	))

	workerCtx, cancel := context.WithCancel(ctx)
	t.Cleanup(cancel)
	pool := worker.NewPool(rdb)
	pool.Handle(worker.JobAuditoria, worker.NewAuditoriaWorker(repository.NewAuditoriaRepository(db)).Process)
	pool.Start(workerCtx, cfg.WorkerPoolSize)

	reg := prometheus.NewRegistry()
	engine := router.New(cfg, router.Deps{
		DB:       db,
		Redis:    rdb,
		Audit:    audit.New(worker.NewDispatcher(rdb)),
		Metrics:  metrics.New(reg),
		Gatherer: reg,
	})
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	env := &testEnv{server: srv}
	env.admin = env.login(t, "admin@example.com")
	env.vendedor = env.login(t, "vendedor@example.com")
	return env
}

type catalogo struct {
	productoA, productoB string
	proveedor, cliente   string
}

func crearCatalogo(t *testing.T, env *testEnv) catalogo {
	t.Helper()
	var cat dto.CategoriaResponse
	expect(t, env.do(t, http.MethodPost, "/v1/categorias", dto.CrearCategoriaRequest{Nombre: "Almacen"}, env.admin), http.StatusCreated, &cat)
	catID := cat.ID.String()

	var a, b dto.ProductoResponse
	expect(t, env.do(t, http.MethodPost, "/v1/productos", dto.CrearProductoRequest{
		Codigo: "YER-1", Nombre: "Yerba 1kg", CategoriaID: &catID,
		PrecioCompra: decimal.NewFromInt(8), PrecioVenta: decimal.NewFromInt(10), Stock: 100,
	}, env.admin), http.StatusCreated, &a)
	expect(t, env.do(t, http.MethodPost, "/v1/productos", dto.CrearProductoRequest{
		Codigo: "AZU-1", Nombre: "Azucar 1kg", CategoriaID: &catID,
		PrecioCompra: decimal.NewFromInt(12), PrecioVenta: decimal.RequireFromString("15.50"), Stock: 100,
	}, env.admin), http.StatusCreated, &b)

	var prov dto.ProveedorResponse
	expect(t, env.do(t, http.MethodPost, "/v1/proveedores", dto.CrearProveedorRequest{
		RazonSocial: "Distribuidora Norte", Documento: "20123456789",
	}, env.admin), http.StatusCreated, &prov)

	var cli dto.ClienteResponse
	expect(t, env.do(t, http.MethodPost, "/v1/clientes", dto.CrearClienteRequest{
		Codigo: "C-001", Nombre: "Juan Perez",
	}, env.vendedor), http.StatusCreated, &cli)

	return catalogo{productoA: a.ID, productoB: b.ID, proveedor: prov.ID, cliente: cli.ID}
}

func totalDe(t *testing.T, v decimal.Decimal, want string) {
	t.Helper()
	assert.True(t, v.Equal(decimal.RequireFromString(want)), "got %s want %s", v, want)
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E(t *testing.T) {
	env := setupTestEnv(t)
	cat := crearCatalogo(t, env)

	t.Run("compra sigue el total de sus detalles", func(t *testing.T) {
		var compra dto.CompraResponse
		expect(t, env.do(t, http.MethodPost, "/v1/compras", dto.CrearCompraRequest{ProveedorID: cat.proveedor}, env.admin), http.StatusCreated, &compra)
		totalDe(t, compra.Total, "0")
		base := "/v1/compras/" + compra.ID

		expect(t, env.do(t, http.MethodPost, base+"/detalles", dto.DetalleRequest{
			ProductoID: cat.productoA, Cantidad: 3, PrecioUnitario: decimal.NewFromInt(10), PorcentajeDescuento: decimal.NewFromInt(10),
		}, env.admin), http.StatusCreated, &compra)
		totalDe(t, compra.Total, "27.00")
		require.Len(t, compra.Detalles, 1)
		primero := compra.Detalles[0]
		totalDe(t, primero.Descuento, "3.00")
		totalDe(t, primero.PrecioBase, "30.00")

		expect(t, env.do(t, http.MethodPost, base+"/detalles", dto.DetalleRequest{
			ProductoID: cat.productoB, Cantidad: 1, PrecioUnitario: decimal.RequireFromString("15.50"),
		}, env.admin), http.StatusCreated, &compra)
		totalDe(t, compra.Total, "42.50")
		totalDe(t, compra.Subtotal, "45.50")
		totalDe(t, compra.DescuentoTotal, "3.00")

		expect(t, env.do(t, http.MethodDelete, base+"/detalles/"+primero.ID, nil, env.admin), http.StatusOK, &compra)
		totalDe(t, compra.Total, "15.50")

		expect(t, env.do(t, http.MethodPost, base+"/recalcular", nil, env.admin), http.StatusOK, &compra)
		totalDe(t, compra.Total, "15.50")

		var leida dto.CompraResponse
		expect(t, env.do(t, http.MethodGet, base, nil, env.admin), http.StatusOK, &leida)
		totalDe(t, leida.Total, "15.50")

		resp := env.do(t, http.MethodGet, base+"/pdf", nil, env.admin)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

		expect(t, env.do(t, http.MethodDelete, base, nil, env.admin), http.StatusNoContent, nil)
		expect(t, env.do(t, http.MethodGet, base, nil, env.admin), http.StatusNotFound, nil)
	})

	t.Run("venta con detalles iniciales", func(t *testing.T) {
		var venta dto.VentaResponse
		expect(t, env.do(t, http.MethodPost, "/v1/ventas", dto.CrearVentaRequest{
			ClienteID: cat.cliente,
			Detalles: []dto.DetalleRequest{
				{ProductoID: cat.productoA, Cantidad: 3, PrecioUnitario: decimal.NewFromInt(10), PorcentajeDescuento: decimal.NewFromInt(10)},
				{ProductoID: cat.productoB, Cantidad: 1, PrecioUnitario: decimal.RequireFromString("15.50")},
			},
		}, env.vendedor), http.StatusCreated, &venta)
		totalDe(t, venta.Total, "42.50")
		assert.Len(t, venta.Detalles, 2)

		var anulada dto.VentaResponse
		expect(t, env.do(t, http.MethodPatch, "/v1/ventas/"+venta.ID+"/estado", dto.CambiarEstadoRequest{Estado: "anulada"}, env.vendedor), http.StatusOK, &anulada)
		assert.Equal(t, "anulada", anulada.Estado)

		expect(t, env.do(t, http.MethodPost, "/v1/ventas/"+venta.ID+"/detalles", dto.DetalleRequest{
			ProductoID: cat.productoA, Cantidad: 1, PrecioUnitario: decimal.NewFromInt(10),
		}, env.vendedor), http.StatusUnprocessableEntity, nil)
	})

	t.Run("validacion de linea", func(t *testing.T) {
		var compra dto.CompraResponse
		expect(t, env.do(t, http.MethodPost, "/v1/compras", dto.CrearCompraRequest{ProveedorID: cat.proveedor}, env.admin), http.StatusCreated, &compra)
		expect(t, env.do(t, http.MethodPost, "/v1/compras/"+compra.ID+"/detalles", map[string]any{
			"producto_id": cat.productoA, "cantidad": 1, "precio_unitario": "10.001",
		}, env.admin), http.StatusUnprocessableEntity, nil)

		var leida dto.CompraResponse
		expect(t, env.do(t, http.MethodGet, "/v1/compras/"+compra.ID, nil, env.admin), http.StatusOK, &leida)
		assert.Empty(t, leida.Detalles)
		totalDe(t, leida.Total, "0")
	})

	t.Run("gate de permisos", func(t *testing.T) {
		expect(t, env.do(t, http.MethodGet, "/v1/compras", nil, ""), http.StatusUnauthorized, nil)
		expect(t, env.do(t, http.MethodGet, "/v1/compras", nil, env.vendedor), http.StatusForbidden, nil)
		expect(t, env.do(t, http.MethodGet, "/v1/ventas", nil, env.vendedor), http.StatusOK, nil)

		var me dto.MeResponse
		expect(t, env.do(t, http.MethodGet, "/v1/auth/me", nil, env.vendedor), http.StatusOK, &me)
		assert.Contains(t, me.Permisos, authz.VentasVer)
		assert.NotContains(t, me.Permisos, authz.ComprasVer)
	})

	t.Run("revocar un permiso aplica en la siguiente solicitud", func(t *testing.T) {
		var roles []dto.RolResponse
		expect(t, env.do(t, http.MethodGet, "/v1/roles", nil, env.admin), http.StatusOK, &roles)
		var vendedorID string
		for _, r := range roles {
			if r.Codigo == seed.RolVendedor {
				vendedorID = r.ID
			}
		}
		require.NotEmpty(t, vendedorID)

		sinListar := []string{authz.VentasCrear, authz.ClientesVer}
		expect(t, env.do(t, http.MethodPut, "/v1/roles/"+vendedorID+"/permisos", dto.AsignarPermisosRequest{Permisos: sinListar}, env.admin), http.StatusOK, nil)
		expect(t, env.do(t, http.MethodGet, "/v1/ventas", nil, env.vendedor), http.StatusForbidden, nil)

		expect(t, env.do(t, http.MethodPut, "/v1/roles/"+vendedorID+"/permisos", dto.AsignarPermisosRequest{Permisos: authz.PermisosVendedor}, env.admin), http.StatusOK, nil)
		expect(t, env.do(t, http.MethodGet, "/v1/ventas", nil, env.vendedor), http.StatusOK, nil)
	})

	t.Run("auditoria persistida por el worker", func(t *testing.T) {
		require.Eventually(t, func() bool {
			resp := env.do(t, http.MethodGet, "/v1/auditoria?tipo="+audit.TipoInsercion, nil, env.admin)
			var entries []dto.AuditoriaResponse
			if resp.StatusCode != http.StatusOK {
				resp.Body.Close()
				return false
			}
			decodeJSON(t, resp, &entries)
			return len(entries) > 0
		}, 15*time.Second, 250*time.Millisecond)
	})

	t.Run("health y metrics", func(t *testing.T) {
		var h struct {
			Status string `json:"status"`
		}
		expect(t, env.do(t, http.MethodGet, "/health", nil, ""), http.StatusOK, &h)
		assert.Equal(t, "ok", h.Status)

		resp := env.do(t, http.MethodGet, "/metrics", nil, "")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
