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

type CompraService interface {
	Crear(ctx context.Context, req dto.CrearCompraRequest) (*dto.CompraResponse, error)
	Listar(ctx context.Context, filter dto.DocumentoFilter) (*dto.CompraListResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CompraResponse, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.CompraResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error

	AgregarDetalle(ctx context.Context, compraID uuid.UUID, req dto.DetalleRequest) (*dto.CompraResponse, error)
	ActualizarDetalle(ctx context.Context, compraID, detalleID uuid.UUID, req dto.ActualizarDetalleRequest) (*dto.CompraResponse, error)
	EliminarDetalle(ctx context.Context, compraID, detalleID uuid.UUID) (*dto.CompraResponse, error)
	RecalcularTotal(ctx context.Context, compraID uuid.UUID) (*dto.CompraResponse, error)
}

type compraService struct {
	docs        *documentos[model.Compra, model.DetalleCompra]
	proveedores repository.ProveedorRepository
	audit       *audit.Logger
}

func NewCompraService(
	repo repository.CompraRepository,
	productos repository.ProductoRepository,
	proveedores repository.ProveedorRepository,
	auditLog *audit.Logger,
	m *metrics.Metrics,
) CompraService {
	return &compraService{
		docs: &documentos[model.Compra, model.DetalleCompra]{
			tipo:      "compra",
			estados:   []string{"pendiente", "recibida", estadoAnulada},
			repo:      repo,
			productos: productos,
			audit:     auditLog,
			metrics:   m,
			idDe:      func(c *model.Compra) uuid.UUID { return c.ID },
			estadoDe:  func(c *model.Compra) string { return c.Estado },
			nuevo: func(compraID, productoID uuid.UUID, l model.LineaDetalle) *model.DetalleCompra {
				return &model.DetalleCompra{CompraID: compraID, ProductoID: productoID, LineaDetalle: l}
			},
			lineaDe:   func(d *model.DetalleCompra) *model.LineaDetalle { return &d.LineaDetalle },
			detalleID: func(d *model.DetalleCompra) uuid.UUID { return d.ID },
		},
		proveedores: proveedores,
		audit:       auditLog,
	}
}

func (s *compraService) Crear(ctx context.Context, req dto.CrearCompraRequest) (*dto.CompraResponse, error) {
	p := authz.FromContext(ctx)
	if p == nil {
		return nil, authz.ErrNoAutenticado
	}

	proveedorID, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, invalido("proveedor_id", "debe ser un uuid valido")
	}
	prov, err := s.proveedores.FindByID(ctx, proveedorID)
	if err != nil {
		if repository.EsNoEncontrado(err) {
			return nil, invalido("proveedor_id", "el proveedor no existe")
		}
		return nil, traducir("buscar proveedor", err)
	}
	if !prov.Estado {
		return nil, invalido("proveedor_id", "el proveedor esta inactivo")
	}

	nuevas, err := s.docs.lineas(ctx, req.Detalles)
	if err != nil {
		return nil, err
	}
	compra := model.Compra{
		ProveedorID:       proveedorID,
		UsuarioID:         p.UsuarioID,
		NumeroComprobante: req.NumeroComprobante,
		Fecha:             fechaODefault(req.Fecha),
		Estado:            "pendiente",
		Observaciones:     req.Observaciones,
	}
	if err := s.docs.crear(ctx, &compra, nuevas); err != nil {
		return nil, err
	}

	resp, err := s.ObtenerPorID(ctx, compra.ID)
	if err != nil {
		return nil, err
	}
	s.audit.Insercion(ctx, "Compra creada", map[string]any{"id": resp.ID, "total": resp.Total})
	return resp, nil
}

func (s *compraService) Listar(ctx context.Context, filter dto.DocumentoFilter) (*dto.CompraListResponse, error) {
	compras, total, err := s.docs.listar(ctx, &filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CompraResponse, len(compras))
	for i := range compras {
		data[i] = *compraToResponse(&compras[i])
	}
	return &dto.CompraListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *compraService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CompraResponse, error) {
	c, err := s.docs.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	return compraToResponse(c), nil
}

func (s *compraService) CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.CompraResponse, error) {
	if err := s.docs.cambiarEstado(ctx, id, estado); err != nil {
		return nil, err
	}
	return s.ObtenerPorID(ctx, id)
}

func (s *compraService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return s.docs.eliminar(ctx, id)
}

func (s *compraService) AgregarDetalle(ctx context.Context, compraID uuid.UUID, req dto.DetalleRequest) (*dto.CompraResponse, error) {
	if err := s.docs.agregar(ctx, compraID, req); err != nil {
		return nil, err
	}
	return s.ObtenerPorID(ctx, compraID)
}

func (s *compraService) ActualizarDetalle(ctx context.Context, compraID, detalleID uuid.UUID, req dto.ActualizarDetalleRequest) (*dto.CompraResponse, error) {
	if err := s.docs.actualizar(ctx, compraID, detalleID, req); err != nil {
		return nil, err
	}
	return s.ObtenerPorID(ctx, compraID)
}

func (s *compraService) EliminarDetalle(ctx context.Context, compraID, detalleID uuid.UUID) (*dto.CompraResponse, error) {
	if err := s.docs.eliminarDetalle(ctx, compraID, detalleID); err != nil {
		return nil, err
	}
	return s.ObtenerPorID(ctx, compraID)
}

// RecalcularTotal rewrites the cached totals from the stored lines.
func (s *compraService) RecalcularTotal(ctx context.Context, compraID uuid.UUID) (*dto.CompraResponse, error) {
	if err := s.docs.recalcular(ctx, compraID); err != nil {
		return nil, err
	}
	return s.ObtenerPorID(ctx, compraID)
}

func compraToResponse(c *model.Compra) *dto.CompraResponse {
	r := &dto.CompraResponse{
		ID:                c.ID.String(),
		ProveedorID:       c.ProveedorID.String(),
		UsuarioID:         c.UsuarioID.String(),
		NumeroComprobante: c.NumeroComprobante,
		Fecha:             c.Fecha.Format(time.RFC3339),
		Estado:            c.Estado,
		Subtotal:          c.Subtotal,
		DescuentoTotal:    c.DescuentoTotal,
		Total:             c.Total,
		Observaciones:     c.Observaciones,
		Detalles:          make([]dto.DetalleResponse, len(c.Detalles)),
		CreatedAt:         c.CreatedAt.Format(time.RFC3339),
	}
	if c.Proveedor != nil {
		r.Proveedor = c.Proveedor.RazonSocial
	}
	for i, d := range c.Detalles {
		r.Detalles[i] = mapDetalle(d.ID, d.ProductoID, d.Producto, d.LineaDetalle)
	}
	return r
}
