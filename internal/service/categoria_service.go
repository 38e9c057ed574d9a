package service

import (
	"context"

	"comercial/internal/audit"
	"comercial/internal/dto"
	"comercial/internal/model"
	"comercial/internal/repository"

	"github.com/google/uuid"
)

type CategoriaService interface {
	Crear(ctx context.Context, req dto.CrearCategoriaRequest) (dto.CategoriaResponse, error)
	Listar(ctx context.Context, filter dto.CategoriaFilter) ([]dto.CategoriaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (dto.CategoriaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (dto.CategoriaResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type categoriaService struct {
	repo  repository.CategoriaRepository
	audit *audit.Logger
}

func NewCategoriaService(repo repository.CategoriaRepository, auditLog *audit.Logger) CategoriaService {
	return &categoriaService{repo: repo, audit: auditLog}
}

// filtroEstado maps the ?estado= query to the repository filter.
var filtroEstado = map[string]*bool{
	"":          nil,
	"todas":     nil,
	"activas":   ptr(true),
	"inactivas": ptr(false),
}

func ptr[T any](v T) *T { return &v }

func toCategoriaResponse(c *model.Categoria) dto.CategoriaResponse {
	return dto.CategoriaResponse{ID: c.ID, Nombre: c.Nombre, Descripcion: c.Descripcion, Estado: c.Estado}
}

// nombreLibre fails with a field error when another category already uses
// nombre. The lower(nombre) index still backs this up as a 409.
func (s *categoriaService) nombreLibre(ctx context.Context, nombre string, propia uuid.UUID) error {
	otra, err := s.repo.FindByNombre(ctx, nombre)
	switch {
	case repository.EsNoEncontrado(err):
		return nil
	case err != nil:
		return traducir("buscar categoria", err)
	case otra.ID != propia:
		return invalido("nombre", "ya existe una categoria con ese nombre")
	}
	return nil
}

func (s *categoriaService) Crear(ctx context.Context, req dto.CrearCategoriaRequest) (dto.CategoriaResponse, error) {
	if err := s.nombreLibre(ctx, req.Nombre, uuid.Nil); err != nil {
		return dto.CategoriaResponse{}, err
	}
	c := &model.Categoria{Nombre: req.Nombre, Descripcion: req.Descripcion, Estado: true}
	if err := s.repo.Create(ctx, c); err != nil {
		return dto.CategoriaResponse{}, traducir("crear categoria", err)
	}
	resp := toCategoriaResponse(c)
	s.audit.Insercion(ctx, "Categoria creada", resp)
	return resp, nil
}

func (s *categoriaService) Listar(ctx context.Context, filter dto.CategoriaFilter) ([]dto.CategoriaResponse, error) {
	estado, ok := filtroEstado[filter.Estado]
	if !ok {
		return nil, invalido("estado", "debe ser activas, inactivas o todas")
	}
	list, err := s.repo.List(ctx, estado)
	if err != nil {
		return nil, traducir("listar categorias", err)
	}
	out := make([]dto.CategoriaResponse, len(list))
	for i := range list {
		out[i] = toCategoriaResponse(&list[i])
	}
	s.audit.Consulta(ctx, "Listado de categorias")
	return out, nil
}

func (s *categoriaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (dto.CategoriaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dto.CategoriaResponse{}, traducir("buscar categoria", err)
	}
	return toCategoriaResponse(c), nil
}

// Actualizar applies only the fields present in req.
func (s *categoriaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (dto.CategoriaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dto.CategoriaResponse{}, traducir("buscar categoria", err)
	}
	if req.Nombre != nil && *req.Nombre != c.Nombre {
		if err := s.nombreLibre(ctx, *req.Nombre, id); err != nil {
			return dto.CategoriaResponse{}, err
		}
		c.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		c.Descripcion = req.Descripcion
	}
	if req.Estado != nil {
		c.Estado = *req.Estado
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return dto.CategoriaResponse{}, traducir("actualizar categoria", err)
	}
	resp := toCategoriaResponse(c)
	s.audit.Actualizacion(ctx, "Categoria actualizada", resp)
	return resp, nil
}

func (s *categoriaService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return traducir("buscar categoria", err)
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return traducir("desactivar categoria", err)
	}
	s.audit.Eliminacion(ctx, "Categoria desactivada", id.String())
	return nil
}
