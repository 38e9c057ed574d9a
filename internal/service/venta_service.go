package service

import (
	"context"
	"time"

	"comercial/internal/audit"
	"comercial/internal/authz"
	"comercial/internal/dto"
	"comercial/internal/metrics"
	"comercial/internal/model"
	"comercial/internal/repository"

	"github.com/google/uuid"
)

type VentaService interface {
	Crear(ctx context.Context, req dto.CrearVentaRequest) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.DocumentoFilter) (*dto.VentaListResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.VentaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error

	AgregarDetalle(ctx context.Context, ventaID uuid.UUID, req dto.DetalleRequest) (*dto.VentaResponse, error)
	ActualizarDetalle(ctx context.Context, ventaID, detalleID uuid.UUID, req dto.ActualizarDetalleRequest) (*dto.VentaResponse, error)
	EliminarDetalle(ctx context.Context, ventaID, detalleID uuid.UUID) (*dto.VentaResponse, error)
	RecalcularTotal(ctx context.Context, ventaID uuid.UUID) (*dto.VentaResponse, error)
}

type ventaService struct {
	docs     *documentos[model.Venta, model.DetalleVenta]
	clientes repository.ClienteRepository
	audit    *audit.Logger
}

func NewVentaService(
	repo repository.VentaRepository,
	productos repository.ProductoRepository,
	clientes repository.ClienteRepository,
	auditLog *audit.Logger,
	m *metrics.Metrics,
) VentaService {
	return &ventaService{
		docs: &documentos[model.Venta, model.DetalleVenta]{
			tipo:      "venta",
			estados:   []string{"pendiente", "completada", estadoAnulada},
			repo:      repo,
			productos: productos,
			audit:     auditLog,
			metrics:   m,
			idDe:      func(v *model.Venta) uuid.UUID { return v.ID },
			estadoDe:  func(v *model.Venta) string { return v.Estado },
			nuevo: func(ventaID, productoID uuid.UUID, l model.LineaDetalle) *model.DetalleVenta {
				return &model.DetalleVenta{VentaID: ventaID, ProductoID: productoID, LineaDetalle: l}
			},
			lineaDe:   func(d *model.DetalleVenta) *model.LineaDetalle { return &d.LineaDetalle },
			detalleID: func(d *model.DetalleVenta) uuid.UUID { return d.ID },
		},
		clientes: clientes,
		audit:    auditLog,
	}
}

func (s *ventaService) Crear(ctx context.Context, req dto.CrearVentaRequest) (*dto.VentaResponse, error) {
	p := authz.FromContext(ctx)
	if p == nil {
		return nil, authz.ErrNoAutenticado
	}

	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, invalido("cliente_id", "debe ser un uuid valido")
	}
	cli, err := s.clientes.FindByID(ctx, clienteID)
	if err != nil {
		if repository.EsNoEncontrado(err) {
			return nil, invalido("cliente_id", "el cliente no existe")
		}
		return nil, traducir("buscar cliente", err)
	}
	if !cli.Estado {
		return nil, invalido("cliente_id", "el cliente esta inactivo")
	}

	nuevas, err := s.docs.lineas(ctx, req.Detalles)
	if err != nil {
		return nil, err
	}
	venta := model.Venta{
		ClienteID:     clienteID,
		UsuarioID:     p.UsuarioID,
		NumeroTicket:  req.NumeroTicket,
		Fecha:         fechaODefault(req.Fecha),
		Estado:        "pendiente",
		Observaciones: req.Observaciones,
	}
	if err := s.docs.crear(ctx, &venta, nuevas); err != nil {
		return nil, err
	}

	resp, err := s.ObtenerPorID(ctx, venta.ID)
	if err != nil {
		return nil, err
	}
	s.audit.Insercion(ctx, "Venta creada", map[string]any{"id": resp.ID, "total": resp.Total})
	return resp, nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.DocumentoFilter) (*dto.VentaListResponse, error) {
	ventas, total, err := s.docs.listar(ctx, &filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VentaResponse, len(ventas))
	for i := range ventas {
		data[i] = *ventaToResponse(&ventas[i])
	}
	return &dto.VentaListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *ventaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	c, err := s.docs.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	return ventaToResponse(c), nil
}

func (s *ventaService) CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.VentaResponse, error) {
	if err := s.docs.cambiarEstado(ctx, id, estado); err != nil {
		return nil, err
	}
	return s.ObtenerPorID(ctx, id)
}

func (s *ventaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return s.docs.eliminar(ctx, id)
}

func (s *ventaService) AgregarDetalle(ctx context.Context, ventaID uuid.UUID, req dto.DetalleRequest) (*dto.VentaResponse, error) {
	if err := s.docs.agregar(ctx, ventaID, req); err != nil {
		return nil, err
	}
	return s.ObtenerPorID(ctx, ventaID)
}

func (s *ventaService) ActualizarDetalle(ctx context.Context, ventaID, detalleID uuid.UUID, req dto.ActualizarDetalleRequest) (*dto.VentaResponse, error) {
	if err := s.docs.actualizar(ctx, ventaID, detalleID, req); err != nil {
		return nil, err
	}
	return s.ObtenerPorID(ctx, ventaID)
}

func (s *ventaService) EliminarDetalle(ctx context.Context, ventaID, detalleID uuid.UUID) (*dto.VentaResponse, error) {
	if err := s.docs.eliminarDetalle(ctx, ventaID, detalleID); err != nil {
		return nil, err
	}
	return s.ObtenerPorID(ctx, ventaID)
}

// RecalcularTotal rewrites the cached totals from the stored lines.
func (s *ventaService) RecalcularTotal(ctx context.Context, ventaID uuid.UUID) (*dto.VentaResponse, error) {
	if err := s.docs.recalcular(ctx, ventaID); err != nil {
		return nil, err
	}
	return s.ObtenerPorID(ctx, ventaID)
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	r := &dto.VentaResponse{
		ID:             v.ID.String(),
		ClienteID:      v.ClienteID.String(),
		UsuarioID:      v.UsuarioID.String(),
		NumeroTicket:   v.NumeroTicket,
		Fecha:          v.Fecha.Format(time.RFC3339),
		Estado:         v.Estado,
		Subtotal:       v.Subtotal,
		DescuentoTotal: v.DescuentoTotal,
		Total:          v.Total,
		Observaciones:  v.Observaciones,
		Detalles:       make([]dto.DetalleResponse, len(v.Detalles)),
		CreatedAt:      v.CreatedAt.Format(time.RFC3339),
	}
	if v.Cliente != nil {
		r.Cliente = v.Cliente.Nombre
	}
	for i, d := range v.Detalles {
		r.Detalles[i] = mapDetalle(d.ID, d.ProductoID, d.Producto, d.LineaDetalle)
	}
	return r
}
