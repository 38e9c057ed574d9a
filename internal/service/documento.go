package service

// documento.go
// Line and total handling shared by compras and ventas. Each service supplies
// the accessors for its own aggregate and keeps the counterparty checks and
// the DTO mapping.

import (
	"context"
	"strings"
	"time"

	"comercial/internal/audit"
	"comercial/internal/dto"
	"comercial/internal/metrics"
	"comercial/internal/model"
	"comercial/internal/repository"

	"github.com/google/uuid"
)

type conImportes interface {
	Importes() model.LineaDetalle
}

// lineaNueva is a validated create-request line waiting for its header id.
type lineaNueva struct {
	productoID uuid.UUID
	linea      model.LineaDetalle
}

type documentos[A any, D conImportes] struct {
	tipo      string // "compra", "venta"
	estados   []string
	repo      repository.DocumentoRepository[A, D]
	productos repository.ProductoRepository
	audit     *audit.Logger
	metrics   *metrics.Metrics

	idDe      func(*A) uuid.UUID
	estadoDe  func(*A) string
	nuevo     func(docID, productoID uuid.UUID, l model.LineaDetalle) *D
	lineaDe   func(*D) *model.LineaDetalle
	detalleID func(*D) uuid.UUID
}

func (s *documentos[A, D]) titulo() string {
	return strings.ToUpper(s.tipo[:1]) + s.tipo[1:]
}

// lineas validates the lines of a create request against the catalog.
func (s *documentos[A, D]) lineas(ctx context.Context, items []dto.DetalleRequest) ([]lineaNueva, error) {
	out := make([]lineaNueva, 0, len(items))
	for _, item := range items {
		pid, l, err := lineaDesde(item)
		if err != nil {
			return nil, err
		}
		if err := productoVendible(ctx, s.productos, pid); err != nil {
			return nil, err
		}
		out = append(out, lineaNueva{productoID: pid, linea: l})
	}
	return out, nil
}

// crear writes the header and its initial lines in one transaction; the total
// is recomputed once at the end from the stored lines.
func (s *documentos[A, D]) crear(ctx context.Context, doc *A, nuevas []lineaNueva) error {
	start := time.Now()
	err := s.repo.WithTx(ctx, func(tx repository.DocumentoRepository[A, D]) error {
		if err := tx.Create(ctx, doc); err != nil {
			return traducir("crear "+s.tipo, err)
		}
		id := s.idDe(doc)
		for _, n := range nuevas {
			d := s.nuevo(id, n.productoID, n.linea)
			s.lineaDe(d).Recalcular()
			if err := tx.SaveDetalle(ctx, d); err != nil {
				return traducir("guardar detalle", err)
			}
		}
		_, err := recalcularTotal(ctx, id, tx.ListDetalles, tx.UpdateTotales)
		return err
	})
	if err != nil {
		s.audit.Error(ctx, "Error al crear "+s.tipo, err)
		return err
	}
	s.metrics.ObserveRecalculo(s.tipo, "crear", time.Since(start))
	return nil
}

func (s *documentos[A, D]) listar(ctx context.Context, filter *dto.DocumentoFilter) ([]A, int64, error) {
	filter.Page, filter.Limit = paginado(filter.Page, filter.Limit)
	docs, total, err := s.repo.List(ctx, *filter)
	if err != nil {
		return nil, 0, traducir("listar "+s.tipo+"s", err)
	}
	s.audit.Consulta(ctx, "Listado de "+s.tipo+"s")
	return docs, total, nil
}

func (s *documentos[A, D]) buscar(ctx context.Context, id uuid.UUID) (*A, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, traducir("buscar "+s.tipo, err)
	}
	return doc, nil
}

func (s *documentos[A, D]) cambiarEstado(ctx context.Context, id uuid.UUID, estado string) error {
	valido := false
	for _, e := range s.estados {
		valido = valido || e == estado
	}
	if !valido {
		n := len(s.estados)
		return invalido("estado", "debe ser "+strings.Join(s.estados[:n-1], ", ")+" o "+s.estados[n-1])
	}
	if err := s.repo.UpdateEstado(ctx, id, estado); err != nil {
		return traducir("cambiar estado", err)
	}
	s.audit.Actualizacion(ctx, "Estado de "+s.tipo+" actualizado", map[string]string{"id": id.String(), "estado": estado})
	return nil
}

// eliminar removes the header and its lines as one unit.
func (s *documentos[A, D]) eliminar(ctx context.Context, id uuid.UUID) error {
	err := s.repo.WithTx(ctx, func(tx repository.DocumentoRepository[A, D]) error {
		return traducir("eliminar "+s.tipo, tx.Delete(ctx, id))
	})
	if err != nil {
		return err
	}
	s.audit.Eliminacion(ctx, s.titulo()+" eliminada", id.String())
	return nil
}

// ── Detail lines ──────────────────────────────────────────────────────────────
// Every mutation runs: Recalcular → SaveDetalle/DeleteDetalle → recalcularTotal,
// inside one transaction. A failure anywhere rolls back the line write too.

func (s *documentos[A, D]) agregar(ctx context.Context, docID uuid.UUID, req dto.DetalleRequest) error {
	pid, l, err := lineaDesde(req)
	if err != nil {
		return err
	}
	if err := productoVendible(ctx, s.productos, pid); err != nil {
		return err
	}

	d := s.nuevo(docID, pid, l)
	err = s.mutar(ctx, docID, "agregar", func(tx repository.DocumentoRepository[A, D]) error {
		s.lineaDe(d).Recalcular()
		return traducir("guardar detalle", tx.SaveDetalle(ctx, d))
	})
	if err != nil {
		return err
	}
	s.audit.Insercion(ctx, "Detalle de "+s.tipo+" agregado", map[string]any{
		s.tipo + "_id": docID, "detalle_id": s.detalleID(d), "subtotal": s.lineaDe(d).Subtotal,
	})
	return nil
}

func (s *documentos[A, D]) actualizar(ctx context.Context, docID, detalleID uuid.UUID, req dto.ActualizarDetalleRequest) error {
	err := s.mutar(ctx, docID, "actualizar", func(tx repository.DocumentoRepository[A, D]) error {
		d, err := tx.FindDetalle(ctx, docID, detalleID)
		if err != nil {
			return traducir("buscar detalle", err)
		}
		l := s.lineaDe(d)
		if err := aplicarCambios(l, req); err != nil {
			return err
		}
		l.Recalcular()
		return traducir("guardar detalle", tx.SaveDetalle(ctx, d))
	})
	if err != nil {
		return err
	}
	s.audit.Actualizacion(ctx, "Detalle de "+s.tipo+" actualizado", req)
	return nil
}

func (s *documentos[A, D]) eliminarDetalle(ctx context.Context, docID, detalleID uuid.UUID) error {
	err := s.mutar(ctx, docID, "eliminar", func(tx repository.DocumentoRepository[A, D]) error {
		d, err := tx.FindDetalle(ctx, docID, detalleID)
		if err != nil {
			return traducir("buscar detalle", err)
		}
		return traducir("eliminar detalle", tx.DeleteDetalle(ctx, d))
	})
	if err != nil {
		return err
	}
	s.audit.Eliminacion(ctx, "Detalle de "+s.tipo+" eliminado", detalleID.String())
	return nil
}

// recalcular rewrites the cached totals from the stored lines.
func (s *documentos[A, D]) recalcular(ctx context.Context, docID uuid.UUID) error {
	start := time.Now()
	err := s.repo.WithTx(ctx, func(tx repository.DocumentoRepository[A, D]) error {
		if _, err := tx.FindByID(ctx, docID); err != nil {
			return traducir("buscar "+s.tipo, err)
		}
		_, err := recalcularTotal(ctx, docID, tx.ListDetalles, tx.UpdateTotales)
		return err
	})
	if err != nil {
		return err
	}
	s.metrics.ObserveRecalculo(s.tipo, "recalcular", time.Since(start))
	return nil
}

// mutar runs a line write and the total recompute of its document as one
// unit. Lines of an anulada document are frozen.
func (s *documentos[A, D]) mutar(ctx context.Context, docID uuid.UUID, origen string, escribir func(tx repository.DocumentoRepository[A, D]) error) error {
	start := time.Now()
	err := s.repo.WithTx(ctx, func(tx repository.DocumentoRepository[A, D]) error {
		doc, err := tx.FindByID(ctx, docID)
		if err != nil {
			return traducir("buscar "+s.tipo, err)
		}
		if s.estadoDe(doc) == estadoAnulada {
			return invalido("estado", "la "+s.tipo+" esta anulada y sus detalles no pueden modificarse")
		}
		if err := escribir(tx); err != nil {
			return err
		}
		_, err = recalcularTotal(ctx, docID, tx.ListDetalles, tx.UpdateTotales)
		return err
	})
	if err != nil {
		return err
	}
	s.metrics.ObserveRecalculo(s.tipo, origen, time.Since(start))
	return nil
}
