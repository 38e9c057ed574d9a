package service

import (
	"context"

	"comercial/internal/audit"
	"comercial/internal/dto"
	"comercial/internal/model"
	"comercial/internal/repository"

	"github.com/google/uuid"
)

type RolService interface {
	Listar(ctx context.Context) ([]dto.RolResponse, error)
	Crear(ctx context.Context, req dto.CrearRolRequest) (*dto.RolResponse, error)
	AsignarPermisos(ctx context.Context, id uuid.UUID, permisos []string) (*dto.RolResponse, error)
	ListarPermisos(ctx context.Context) ([]dto.PermisoResponse, error)
}

type rolService struct {
	repo  repository.RolRepository
	audit *audit.Logger
}

func NewRolService(repo repository.RolRepository, auditLog *audit.Logger) RolService {
	return &rolService{repo: repo, audit: auditLog}
}

func (s *rolService) Listar(ctx context.Context) ([]dto.RolResponse, error) {
	roles, err := s.repo.List(ctx)
	if err != nil {
		return nil, traducir("listar roles", err)
	}
	resp := make([]dto.RolResponse, len(roles))
	for i := range roles {
		resp[i] = rolToResponse(&roles[i])
	}
	return resp, nil
}

func (s *rolService) Crear(ctx context.Context, req dto.CrearRolRequest) (*dto.RolResponse, error) {
	rol := &model.Rol{
		Codigo:      req.Codigo,
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Estado:      true,
	}
	if err := s.repo.Create(ctx, rol); err != nil {
		return nil, traducir("crear rol", err)
	}
	if len(req.Permisos) > 0 {
		if err := s.repo.ReemplazarPermisos(ctx, rol.ID, req.Permisos); err != nil {
			return nil, traducir("asignar permisos", err)
		}
	}
	s.audit.Insercion(ctx, "Rol creado", map[string]any{"codigo": rol.Codigo, "permisos": req.Permisos})
	return s.obtener(ctx, rol.ID)
}

// AsignarPermisos replaces the permission set of a role. Unknown slugs are ignored.
func (s *rolService) AsignarPermisos(ctx context.Context, id uuid.UUID, permisos []string) (*dto.RolResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, traducir("buscar rol", err)
	}
	if err := s.repo.ReemplazarPermisos(ctx, id, permisos); err != nil {
		return nil, traducir("asignar permisos", err)
	}
	s.audit.Actualizacion(ctx, "Permisos de rol actualizados", map[string]any{"id": id, "permisos": permisos})
	return s.obtener(ctx, id)
}

func (s *rolService) ListarPermisos(ctx context.Context) ([]dto.PermisoResponse, error) {
	permisos, err := s.repo.ListPermisos(ctx)
	if err != nil {
		return nil, traducir("listar permisos", err)
	}
	resp := make([]dto.PermisoResponse, len(permisos))
	for i, p := range permisos {
		resp[i] = dto.PermisoResponse{ID: p.ID.String(), Slug: p.Slug, Nombre: p.Nombre, Modulo: p.Modulo}
	}
	return resp, nil
}

func (s *rolService) obtener(ctx context.Context, id uuid.UUID) (*dto.RolResponse, error) {
	rol, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, traducir("buscar rol", err)
	}
	resp := rolToResponse(rol)
	return &resp, nil
}

func rolToResponse(r *model.Rol) dto.RolResponse {
	var slugs []string
	for _, p := range r.Permisos {
		slugs = append(slugs, p.Slug)
	}
	return dto.RolResponse{
		ID:          r.ID.String(),
		Codigo:      r.Codigo,
		Nombre:      r.Nombre,
		Descripcion: r.Descripcion,
		Estado:      r.Estado,
		Permisos:    slugs,
	}
}
