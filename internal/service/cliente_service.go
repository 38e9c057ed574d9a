package service

import (
	"context"

	"comercial/internal/audit"
	"comercial/internal/dto"
	"comercial/internal/model"
	"comercial/internal/repository"

	"github.com/google/uuid"
)

type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Listar(ctx context.Context) ([]dto.ClienteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	repo  repository.ClienteRepository
	audit *audit.Logger
}

func NewClienteService(repo repository.ClienteRepository, auditLog *audit.Logger) ClienteService {
	return &clienteService{repo: repo, audit: auditLog}
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	if req.CreditoDisponible.IsNegative() {
		return nil, invalido("credito_disponible", "no puede ser negativo")
	}
	c := &model.Cliente{
		Codigo:            req.Codigo,
		Nombre:            req.Nombre,
		Telefono:          req.Telefono,
		Email:             req.Email,
		DiasCredito:       req.DiasCredito,
		CreditoDisponible: req.CreditoDisponible.Round(2),
		Estado:            true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, traducir("crear cliente", err)
	}
	resp := clienteToResponse(c)
	s.audit.Insercion(ctx, "Cliente creado", resp)
	return resp, nil
}

func (s *clienteService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, traducir("buscar cliente", err)
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Listar(ctx context.Context) ([]dto.ClienteResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, traducir("listar clientes", err)
	}
	resp := make([]dto.ClienteResponse, len(list))
	for i := range list {
		resp[i] = *clienteToResponse(&list[i])
	}
	s.audit.Consulta(ctx, "Listado de clientes")
	return resp, nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, traducir("buscar cliente", err)
	}
	if req.Nombre != nil {
		c.Nombre = *req.Nombre
	}
	if req.Telefono != nil {
		c.Telefono = req.Telefono
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.DiasCredito != nil {
		c.DiasCredito = *req.DiasCredito
	}
	if req.CreditoDisponible != nil {
		if req.CreditoDisponible.IsNegative() {
			return nil, invalido("credito_disponible", "no puede ser negativo")
		}
		c.CreditoDisponible = req.CreditoDisponible.Round(2)
	}
	if req.Estado != nil {
		c.Estado = *req.Estado
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, traducir("actualizar cliente", err)
	}
	s.audit.Actualizacion(ctx, "Cliente actualizado", req)
	return clienteToResponse(c), nil
}

func (s *clienteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return traducir("buscar cliente", err)
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return traducir("desactivar cliente", err)
	}
	s.audit.Eliminacion(ctx, "Cliente desactivado", id.String())
	return nil
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:                c.ID.String(),
		Codigo:            c.Codigo,
		Nombre:            c.Nombre,
		Telefono:          c.Telefono,
		Email:             c.Email,
		DiasCredito:       c.DiasCredito,
		CreditoDisponible: c.CreditoDisponible,
		Estado:            c.Estado,
	}
}
