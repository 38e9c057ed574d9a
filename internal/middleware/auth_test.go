package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"comercial/internal/authz"
	"comercial/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-secret"

type stubLoader struct {
	permisos map[uuid.UUID][]string
	err      error
	calls    int
}

func (s *stubLoader) CargarPrincipal(_ context.Context, id uuid.UUID) (*authz.Principal, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	perms, ok := s.permisos[id]
	if !ok {
		return nil, service.ErrNoEncontrado
	}
	return authz.NewPrincipal(id, "Ana", "ana@example.com", perms), nil
}

func firmar(t *testing.T, id uuid.UUID, tipo string, exp time.Time) string {
	t.Helper()
	claims := JWTClaims{
		UserID: id.String(),
		Email:  "ana@example.com",
		Tipo:   tipo,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func gatedEngine(loader PrincipalLoader, perms ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Autenticar(testSecret, loader))
	r.GET("/ventas", RequirePermiso(nil, perms...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"usuario": GetPrincipal(c).Email})
	})
	return r
}

func do(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ventas", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGate_SinToken401(t *testing.T) {
	r := gatedEngine(&stubLoader{}, authz.VentasVer)
	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
}

func TestGate_ListaVaciaSinToken401(t *testing.T) {
	r := gatedEngine(&stubLoader{})
	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
}

func TestGate_TokenInvalido401(t *testing.T) {
	id := uuid.New()
	loader := &stubLoader{permisos: map[uuid.UUID][]string{id: {authz.VentasVer}}}
	r := gatedEngine(loader, authz.VentasVer)

	assert.Equal(t, http.StatusUnauthorized, do(r, "not-a-jwt").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, firmar(t, id, "access", time.Now().Add(-time.Minute))).Code, "expired")
	assert.Equal(t, http.StatusUnauthorized, do(r, firmar(t, id, "refresh", time.Now().Add(time.Hour))).Code, "refresh token")
	assert.Zero(t, loader.calls)
}

func TestGate_CualquierPermisoAlcanza200(t *testing.T) {
	id := uuid.New()
	loader := &stubLoader{permisos: map[uuid.UUID][]string{id: {authz.VentasVer}}}
	r := gatedEngine(loader, authz.VentasVer, authz.VentasEliminar)

	w := do(r, firmar(t, id, "access", time.Now().Add(time.Hour)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ana@example.com")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestGate_SinPermiso403(t *testing.T) {
	id := uuid.New()
	loader := &stubLoader{permisos: map[uuid.UUID][]string{id: {}}}
	r := gatedEngine(loader, authz.VentasEliminar)

	assert.Equal(t, http.StatusForbidden, do(r, firmar(t, id, "access", time.Now().Add(time.Hour))).Code)
}

func TestGate_PermisoRevocadoEntreRequests(t *testing.T) {
	id := uuid.New()
	loader := &stubLoader{permisos: map[uuid.UUID][]string{id: {authz.VentasVer}}}
	r := gatedEngine(loader, authz.VentasVer)
	token := firmar(t, id, "access", time.Now().Add(time.Hour))

	assert.Equal(t, http.StatusOK, do(r, token).Code)

	loader.permisos[id] = nil
	assert.Equal(t, http.StatusForbidden, do(r, token).Code, "same token, capability revoked")
	assert.Equal(t, 2, loader.calls)
}

func TestGate_UsuarioDesactivado401(t *testing.T) {
	loader := &stubLoader{permisos: map[uuid.UUID][]string{}}
	r := gatedEngine(loader, authz.VentasVer)

	assert.Equal(t, http.StatusUnauthorized, do(r, firmar(t, uuid.New(), "access", time.Now().Add(time.Hour))).Code)
}

func TestGate_FalloDelStore500(t *testing.T) {
	loader := &stubLoader{err: errors.New("db down")}
	r := gatedEngine(loader, authz.VentasVer)

	assert.Equal(t, http.StatusInternalServerError, do(r, firmar(t, uuid.New(), "access", time.Now().Add(time.Hour))).Code)
}
