// Package seed creates the permission catalog, the ADMIN and VENDEDOR roles
// and the demo accounts. Running it twice leaves the store unchanged.
package seed

import (
	"context"
	"fmt"

	"comercial/internal/authz"
	"comercial/internal/model"
	"comercial/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	RolAdmin    = "ADMIN"
	RolVendedor = "VENDEDOR"
)

// Cuenta is a demo login. Existing accounts keep their password.
type Cuenta struct {
	Nombre   string
	Email    string
	Password string
	Rol      string
}

// CuentasDemo are the accounts created by cmd/seed.
func CuentasDemo(password string) []Cuenta {
	return []Cuenta{
		{Nombre: "Administrador", Email: "admin@example.com", Password: password, Rol: RolAdmin},
		{Nombre: "Vendedor", Email: "vendedor@example.com", Password: password, Rol: RolVendedor},
	}
}

// BcryptCost is lowered by tests.
var BcryptCost = 12

func Ejecutar(ctx context.Context, roles repository.RolRepository, usuarios repository.UsuarioRepository, cuentas []Cuenta) error {
	permisos := make([]model.Permiso, len(authz.Catalogo))
	todos := make([]string, len(authz.Catalogo))
	for i, d := range authz.Catalogo {
		permisos[i] = model.Permiso{Slug: d.Slug, Nombre: d.Nombre, Modulo: d.Modulo}
		todos[i] = d.Slug
	}
	if err := roles.AsegurarPermisos(ctx, permisos); err != nil {
		return fmt.Errorf("seed permisos: %w", err)
	}

	defs := []struct {
		rol      model.Rol
		permisos []string
	}{
		{model.Rol{Codigo: RolAdmin, Nombre: "Administrador", Estado: true}, todos},
		{model.Rol{Codigo: RolVendedor, Nombre: "Vendedor", Estado: true}, authz.PermisosVendedor},
	}
	rolIDs := make(map[string]model.Rol, len(defs))
	for _, d := range defs {
		rol := d.rol
		stored, err := roles.AsegurarRol(ctx, &rol)
		if err != nil {
			return fmt.Errorf("seed rol %s: %w", d.rol.Codigo, err)
		}
		if err := roles.ReemplazarPermisos(ctx, stored.ID, d.permisos); err != nil {
			return fmt.Errorf("seed permisos de %s: %w", d.rol.Codigo, err)
		}
		rolIDs[d.rol.Codigo] = *stored
	}

	for _, c := range cuentas {
		rol, ok := rolIDs[c.Rol]
		if !ok {
			return fmt.Errorf("seed cuenta %s: rol desconocido %q", c.Email, c.Rol)
		}
		u, err := usuarios.FindByEmail(ctx, c.Email)
		switch {
		case err == nil:
			log.Info().Str("email", c.Email).Msg("seed: usuario existente, se conserva la contrasena")
		case repository.EsNoEncontrado(err):
			hash, herr := bcrypt.GenerateFromPassword([]byte(c.Password), BcryptCost)
			if herr != nil {
				return fmt.Errorf("seed cuenta %s: %w", c.Email, herr)
			}
			u = &model.Usuario{Nombre: c.Nombre, Email: c.Email, PasswordHash: string(hash), Estado: true}
			if err := usuarios.Create(ctx, u); err != nil {
				return fmt.Errorf("seed cuenta %s: %w", c.Email, err)
			}
			log.Info().Str("email", c.Email).Str("rol", c.Rol).Msg("seed: usuario creado")
		default:
			return fmt.Errorf("seed cuenta %s: %w", c.Email, err)
		}
		if err := usuarios.ReemplazarRoles(ctx, u.ID, []uuid.UUID{rol.ID}); err != nil {
			return fmt.Errorf("seed roles de %s: %w", c.Email, err)
		}
	}
	return nil
}
