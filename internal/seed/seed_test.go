package seed

import (
	"context"
	"strings"
	"testing"

	"comercial/internal/authz"
	"comercial/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type memRoles struct {
	permisos  map[string]model.Permiso
	roles     map[string]*model.Rol
	asignados map[uuid.UUID][]string
}

func newMemRoles() *memRoles {
	return &memRoles{
		permisos:  map[string]model.Permiso{},
		roles:     map[string]*model.Rol{},
		asignados: map[uuid.UUID][]string{},
	}
}

func (m *memRoles) Create(_ context.Context, r *model.Rol) error {
	r.ID = uuid.New()
	m.roles[r.Codigo] = r
	return nil
}

func (m *memRoles) FindByID(_ context.Context, id uuid.UUID) (*model.Rol, error) {
	for _, r := range m.roles {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memRoles) List(context.Context) ([]model.Rol, error) { return nil, nil }

func (m *memRoles) ReemplazarPermisos(_ context.Context, id uuid.UUID, slugs []string) error {
	m.asignados[id] = append([]string(nil), slugs...)
	return nil
}

func (m *memRoles) ListPermisos(context.Context) ([]model.Permiso, error) { return nil, nil }

func (m *memRoles) AsegurarPermisos(_ context.Context, ps []model.Permiso) error {
	for _, p := range ps {
		if _, ok := m.permisos[p.Slug]; !ok {
			m.permisos[p.Slug] = p
		}
	}
	return nil
}

func (m *memRoles) AsegurarRol(ctx context.Context, r *model.Rol) (*model.Rol, error) {
	if existing, ok := m.roles[r.Codigo]; ok {
		return existing, nil
	}
	return r, m.Create(ctx, r)
}

type memUsuarios struct {
	users map[string]*model.Usuario
	roles map[uuid.UUID][]uuid.UUID
}

func (m *memUsuarios) Create(_ context.Context, u *model.Usuario) error {
	u.ID = uuid.New()
	m.users[strings.ToLower(u.Email)] = u
	return nil
}

func (m *memUsuarios) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	u, ok := m.users[strings.ToLower(email)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (m *memUsuarios) FindByID(context.Context, uuid.UUID) (*model.Usuario, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *memUsuarios) List(context.Context) ([]model.Usuario, error) { return nil, nil }
func (m *memUsuarios) Update(context.Context, *model.Usuario) error { return nil }
func (m *memUsuarios) Delete(context.Context, uuid.UUID) error { return nil }
func (m *memUsuarios) PermisosDe(context.Context, uuid.UUID) ([]string, error) { return nil, nil }

func (m *memUsuarios) ReemplazarRoles(_ context.Context, id uuid.UUID, rolIDs []uuid.UUID) error {
	m.roles[id] = rolIDs
	return nil
}

func TestEjecutar_Idempotente(t *testing.T) {
	BcryptCost = bcrypt.MinCost
	ctx := context.Background()
	roles := newMemRoles()
	usuarios := &memUsuarios{users: map[string]*model.Usuario{}, roles: map[uuid.UUID][]uuid.UUID{}}

	require.NoError(t, Ejecutar(ctx, roles, usuarios, CuentasDemo("clave-demo")))
	admin := usuarios.users["admin@example.com"]
	require.NotNil(t, admin)
	hash := admin.PasswordHash

	require.NoError(t, Ejecutar(ctx, roles, usuarios, CuentasDemo("otra-clave")))

	assert.Len(t, roles.permisos, len(authz.Catalogo))
	assert.Len(t, roles.roles, 2)
	assert.Len(t, usuarios.users, 2)
	assert.Equal(t, hash, usuarios.users["admin@example.com"].PasswordHash, "existing password is kept")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("clave-demo")))

	adminRol := roles.roles[RolAdmin]
	vendRol := roles.roles[RolVendedor]
	assert.Len(t, roles.asignados[adminRol.ID], len(authz.Catalogo))
	assert.ElementsMatch(t, authz.PermisosVendedor, roles.asignados[vendRol.ID])
	assert.NotContains(t, roles.asignados[vendRol.ID], authz.ComprasVer)

	assert.Equal(t, []uuid.UUID{adminRol.ID}, usuarios.roles[admin.ID])
	assert.Equal(t, []uuid.UUID{vendRol.ID}, usuarios.roles[usuarios.users["vendedor@example.com"].ID])
}

func TestEjecutar_RolDesconocido(t *testing.T) {
	BcryptCost = bcrypt.MinCost
	usuarios := &memUsuarios{users: map[string]*model.Usuario{}, roles: map[uuid.UUID][]uuid.UUID{}}
	err := Ejecutar(context.Background(), newMemRoles(), usuarios, []Cuenta{{Email: "x@example.com", Password: "12345678", Rol: "GERENTE"}})
	assert.ErrorContains(t, err, "GERENTE")
	assert.Empty(t, usuarios.users)
}
