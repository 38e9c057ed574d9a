package service

import (
	"context"

	"comercial/internal/audit"
	"comercial/internal/dto"
	"comercial/internal/model"
	"comercial/internal/repository"

	"github.com/google/uuid"
)

// ProductoService defines the business logic contract for products.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type productoService struct {
	repo       repository.ProductoRepository
	categorias repository.CategoriaRepository
	audit      *audit.Logger
}

func NewProductoService(repo repository.ProductoRepository, categorias repository.CategoriaRepository, auditLog *audit.Logger) ProductoService {
	return &productoService{repo: repo, categorias: categorias, audit: auditLog}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	catID, err := s.categoria(ctx, req.CategoriaID)
	if err != nil {
		return nil, err
	}
	if req.PrecioCompra.IsNegative() || req.PrecioVenta.IsNegative() {
		return nil, invalido("precio", "los precios no pueden ser negativos")
	}
	p := &model.Producto{
		Codigo:       req.Codigo,
		Nombre:       req.Nombre,
		Descripcion:  req.Descripcion,
		CategoriaID:  catID,
		PrecioCompra: req.PrecioCompra.Round(2),
		PrecioVenta:  req.PrecioVenta.Round(2),
		Stock:        req.Stock,
		Estado:       true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, traducir("crear producto", err)
	}
	resp := productoToResponse(p)
	s.audit.Insercion(ctx, "Producto creado", resp)
	return resp, nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, traducir("buscar producto", err)
	}
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	filter.Page, filter.Limit = paginado(filter.Page, filter.Limit)
	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, traducir("listar productos", err)
	}
	data := make([]dto.ProductoResponse, len(list))
	for i := range list {
		data[i] = *productoToResponse(&list[i])
	}
	s.audit.Consulta(ctx, "Listado de productos")
	return &dto.ProductoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, traducir("buscar producto", err)
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.CategoriaID != nil {
		if p.CategoriaID, err = s.categoria(ctx, req.CategoriaID); err != nil {
			return nil, err
		}
	}
	if req.PrecioCompra != nil {
		if req.PrecioCompra.IsNegative() {
			return nil, invalido("precio_compra", "no puede ser negativo")
		}
		p.PrecioCompra = req.PrecioCompra.Round(2)
	}
	if req.PrecioVenta != nil {
		if req.PrecioVenta.IsNegative() {
			return nil, invalido("precio_venta", "no puede ser negativo")
		}
		p.PrecioVenta = req.PrecioVenta.Round(2)
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.Estado != nil {
		p.Estado = *req.Estado
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, traducir("actualizar producto", err)
	}
	s.audit.Actualizacion(ctx, "Producto actualizado", req)
	return productoToResponse(p), nil
}

func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return traducir("buscar producto", err)
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return traducir("desactivar producto", err)
	}
	s.audit.Eliminacion(ctx, "Producto desactivado", id.String())
	return nil
}

// categoria resolves an optional categoria_id. Empty means no category.
func (s *productoService) categoria(ctx context.Context, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, invalido("categoria_id", "debe ser un uuid valido")
	}
	if _, err := s.categorias.FindByID(ctx, id); err != nil {
		if repository.EsNoEncontrado(err) {
			return nil, invalido("categoria_id", "la categoria no existe")
		}
		return nil, traducir("buscar categoria", err)
	}
	return &id, nil
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	r := &dto.ProductoResponse{
		ID:           p.ID.String(),
		Codigo:       p.Codigo,
		Nombre:       p.Nombre,
		Descripcion:  p.Descripcion,
		PrecioCompra: p.PrecioCompra,
		PrecioVenta:  p.PrecioVenta,
		Stock:        p.Stock,
		Estado:       p.Estado,
	}
	if p.CategoriaID != nil {
		s := p.CategoriaID.String()
		r.CategoriaID = &s
	}
	return r
}
