// Package authz implements the per-request permission gate.
//
// A request is either unauthenticated (no Principal attached) or
// authenticated. Autorizar is a pure predicate evaluated from scratch on each
// call; callers must build the Principal from the authoritative capability
// set at check time.
package authz

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
)

var (
	// ErrNoAutenticado is returned when no principal is attached (HTTP 401).
	ErrNoAutenticado = errors.New("autenticacion requerida")
	// ErrSinPermiso is returned when the principal holds none of the required capabilities (HTTP 403).
	ErrSinPermiso = errors.New("permisos insuficientes")
)

// Principal is the authenticated actor of a request.
type Principal struct {
	UsuarioID uuid.UUID
	Nombre    string
	Email     string
	permisos  map[string]struct{}
}

func NewPrincipal(id uuid.UUID, nombre, email string, permisos []string) *Principal {
	set := make(map[string]struct{}, len(permisos))
	for _, p := range permisos {
		set[p] = struct{}{}
	}
	return &Principal{UsuarioID: id, Nombre: nombre, Email: email, permisos: set}
}

// Tiene reports whether the principal holds capability perm.
func (p *Principal) Tiene(perm string) bool {
	if p == nil {
		return false
	}
	_, ok := p.permisos[perm]
	return ok
}

// Permisos returns the capability set sorted.
func (p *Principal) Permisos() []string {
	if p == nil {
		return nil
	}
	out := make([]string, 0, len(p.permisos))
	for k := range p.permisos {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Etiqueta renders the principal the way the audit trail records it.
func (p *Principal) Etiqueta() string {
	if p == nil {
		return "Invitado"
	}
	return p.Nombre + " (" + p.Email + ")"
}

// Autorizar allows the request when p holds any one of requeridos.
// A nil principal is always ErrNoAutenticado, even for an empty list;
// a present principal with an empty list is ErrSinPermiso.
func Autorizar(p *Principal, requeridos ...string) error {
	if p == nil {
		return ErrNoAutenticado
	}
	for _, r := range requeridos {
		if p.Tiene(r) {
			return nil
		}
	}
	return ErrSinPermiso
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal attached to ctx, or nil.
func FromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey{}).(*Principal)
	return p
}
