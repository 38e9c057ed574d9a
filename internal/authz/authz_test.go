package authz

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAutorizar_SinPrincipal(t *testing.T) {
	assert.ErrorIs(t, Autorizar(nil, VentasVer), ErrNoAutenticado)
	assert.ErrorIs(t, Autorizar(nil, VentasVer, VentasEliminar), ErrNoAutenticado)
	assert.ErrorIs(t, Autorizar(nil), ErrNoAutenticado, "empty list still requires a principal")
}

func TestAutorizar_CualquieraAlcanza(t *testing.T) {
	p := NewPrincipal(uuid.New(), "Ana", "ana@example.com", []string{"sales.view"})

	assert.NoError(t, Autorizar(p, "sales.view", "sales.delete"))
	assert.NoError(t, Autorizar(p, "sales.delete", "sales.view"))
	assert.ErrorIs(t, Autorizar(p, "sales.delete"), ErrSinPermiso)
}

func TestAutorizar_SinCapacidades(t *testing.T) {
	p := NewPrincipal(uuid.New(), "Ana", "ana@example.com", nil)

	assert.ErrorIs(t, Autorizar(p, "sales.delete"), ErrSinPermiso)
	assert.ErrorIs(t, Autorizar(p), ErrSinPermiso)
}

func TestPrincipal_NilSafe(t *testing.T) {
	var p *Principal
	assert.False(t, p.Tiene(VentasVer))
	assert.Nil(t, p.Permisos())
	assert.Equal(t, "Invitado", p.Etiqueta())
}

func TestPermisos_Ordenados(t *testing.T) {
	p := NewPrincipal(uuid.New(), "Ana", "ana@example.com", []string{VentasVer, ComprasVer, VentasVer})
	assert.Equal(t, []string{ComprasVer, VentasVer}, p.Permisos())
}

func TestContexto(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))

	p := NewPrincipal(uuid.New(), "Ana", "ana@example.com", nil)
	ctx := WithPrincipal(context.Background(), p)
	assert.Same(t, p, FromContext(ctx))
}

func TestCatalogo_SinDuplicados(t *testing.T) {
	seen := map[string]bool{}
	for _, d := range Catalogo {
		assert.Falsef(t, seen[d.Slug], "duplicated slug %s", d.Slug)
		seen[d.Slug] = true
	}
	for _, s := range PermisosVendedor {
		assert.Truef(t, seen[s], "vendedor slug %s missing from catalog", s)
	}
}
