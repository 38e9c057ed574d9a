package service

import (
	"context"

	"comercial/internal/audit"
	"comercial/internal/dto"
	"comercial/internal/model"
	"comercial/internal/repository"

	"github.com/google/uuid"
)

type ProveedorService interface {
	Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error)
	Listar(ctx context.Context) ([]dto.ProveedorResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type proveedorService struct {
	repo  repository.ProveedorRepository
	audit *audit.Logger
}

func NewProveedorService(repo repository.ProveedorRepository, auditLog *audit.Logger) ProveedorService {
	return &proveedorService{repo: repo, audit: auditLog}
}

func (s *proveedorService) Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	p := &model.Proveedor{
		RazonSocial: req.RazonSocial,
		Documento:   req.Documento,
		Telefono:    req.Telefono,
		Email:       req.Email,
		Direccion:   req.Direccion,
		Estado:      true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, traducir("crear proveedor", err)
	}
	resp := proveedorToResponse(p)
	s.audit.Insercion(ctx, "Proveedor creado", resp)
	return resp, nil
}

func (s *proveedorService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, traducir("buscar proveedor", err)
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) Listar(ctx context.Context) ([]dto.ProveedorResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, traducir("listar proveedores", err)
	}
	resp := make([]dto.ProveedorResponse, len(list))
	for i := range list {
		resp[i] = *proveedorToResponse(&list[i])
	}
	s.audit.Consulta(ctx, "Listado de proveedores")
	return resp, nil
}

func (s *proveedorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, traducir("buscar proveedor", err)
	}
	if req.RazonSocial != nil {
		p.RazonSocial = *req.RazonSocial
	}
	if req.Telefono != nil {
		p.Telefono = req.Telefono
	}
	if req.Email != nil {
		p.Email = req.Email
	}
	if req.Direccion != nil {
		p.Direccion = req.Direccion
	}
	if req.Estado != nil {
		p.Estado = *req.Estado
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, traducir("actualizar proveedor", err)
	}
	s.audit.Actualizacion(ctx, "Proveedor actualizado", req)
	return proveedorToResponse(p), nil
}

func (s *proveedorService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return traducir("buscar proveedor", err)
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return traducir("desactivar proveedor", err)
	}
	s.audit.Eliminacion(ctx, "Proveedor desactivado", id.String())
	return nil
}

func proveedorToResponse(p *model.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:          p.ID.String(),
		RazonSocial: p.RazonSocial,
		Documento:   p.Documento,
		Telefono:    p.Telefono,
		Email:       p.Email,
		Direccion:   p.Direccion,
		Estado:      p.Estado,
	}
}
