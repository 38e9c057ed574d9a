package service

// detalle.go
// Helpers shared by the compra and venta services: line validation, the
// aggregate total recompute and DTO mapping.

import (
	"context"
	"time"

	"comercial/internal/dto"
	"comercial/internal/model"
	"comercial/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const estadoAnulada = "anulada"

var cien = decimal.NewFromInt(100)

// maxImporte is the largest amount a decimal(12,2) column holds.
var maxImporte = decimal.RequireFromString("9999999999.99")

// validarLinea rejects malformed priced input before Recalcular runs.
func validarLinea(l model.LineaDetalle) error {
	campos := map[string]string{}
	if l.Cantidad <= 0 {
		campos["cantidad"] = "debe ser un entero mayor a 0"
	}
	switch {
	case l.PrecioUnitario.IsNegative():
		campos["precio_unitario"] = "no puede ser negativo"
	case !l.PrecioUnitario.Equal(l.PrecioUnitario.Round(2)):
		campos["precio_unitario"] = "admite como maximo 2 decimales"
	case l.PrecioUnitario.Mul(decimal.NewFromInt(int64(max(l.Cantidad, 1)))).GreaterThan(maxImporte):
		campos["precio_unitario"] = "el importe de la linea excede el maximo admitido"
	}
	switch {
	case l.PorcentajeDescuento.IsNegative(), l.PorcentajeDescuento.GreaterThan(cien):
		campos["porcentaje_descuento"] = "debe estar entre 0 y 100"
	case !l.PorcentajeDescuento.Equal(l.PorcentajeDescuento.Round(2)):
		campos["porcentaje_descuento"] = "admite como maximo 2 decimales"
	}
	if len(campos) > 0 {
		return &ValidacionError{Campos: campos}
	}
	return nil
}

// lineaDesde parses and validates one line of a create request.
func lineaDesde(req dto.DetalleRequest) (uuid.UUID, model.LineaDetalle, error) {
	l := model.LineaDetalle{
		Cantidad:            req.Cantidad,
		PrecioUnitario:      req.PrecioUnitario,
		PorcentajeDescuento: req.PorcentajeDescuento,
	}
	pid, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return uuid.Nil, l, invalido("producto_id", "debe ser un uuid valido")
	}
	return pid, l, validarLinea(l)
}

// aplicarCambios overwrites only the inputs present in req and validates the result.
func aplicarCambios(l *model.LineaDetalle, req dto.ActualizarDetalleRequest) error {
	if req.Cantidad != nil {
		l.Cantidad = *req.Cantidad
	}
	if req.PrecioUnitario != nil {
		l.PrecioUnitario = *req.PrecioUnitario
	}
	if req.PorcentajeDescuento != nil {
		l.PorcentajeDescuento = *req.PorcentajeDescuento
	}
	return validarLinea(*l)
}

// productoVendible checks that a line's product exists and is active.
func productoVendible(ctx context.Context, repo repository.ProductoRepository, id uuid.UUID) error {
	p, err := repo.FindByID(ctx, id)
	if err != nil {
		if repository.EsNoEncontrado(err) {
			return invalido("producto_id", "el producto no existe")
		}
		return traducir("buscar producto", err)
	}
	if !p.Estado {
		return invalido("producto_id", "el producto "+p.Nombre+" esta inactivo")
	}
	return nil
}

// recalcularTotal reads the aggregate's current lines from the store, sums
// them and persists the result. Calling it twice in a row writes the same values.
// A sum that does not fit the total columns is rejected before the write.
func recalcularTotal[D interface{ Importes() model.LineaDetalle }](
	ctx context.Context,
	id uuid.UUID,
	listar func(context.Context, uuid.UUID) ([]D, error),
	guardar func(context.Context, uuid.UUID, model.Totales) error,
) (model.Totales, error) {
	lineas, err := listar(ctx, id)
	if err != nil {
		return model.Totales{}, traducir("listar detalles", err)
	}
	t := model.Totalizar(lineas)
	if t.Subtotal.GreaterThan(maxImporte) {
		return model.Totales{}, invalido("total", "el total excede el maximo admitido")
	}
	if err := guardar(ctx, id, t); err != nil {
		return model.Totales{}, traducir("guardar total", err)
	}
	return t, nil
}

func mapDetalle(id, productoID uuid.UUID, producto *model.Producto, l model.LineaDetalle) dto.DetalleResponse {
	r := dto.DetalleResponse{
		ID:                  id.String(),
		ProductoID:          productoID.String(),
		Cantidad:            l.Cantidad,
		PrecioUnitario:      l.PrecioUnitario,
		PorcentajeDescuento: l.PorcentajeDescuento,
		Descuento:           l.Descuento,
		PrecioBase:          l.PrecioBase(),
		Subtotal:            l.Subtotal,
	}
	if producto != nil {
		r.Producto = producto.Nombre
	}
	return r
}

func fechaODefault(f *time.Time) time.Time {
	if f == nil || f.IsZero() {
		return time.Now()
	}
	return *f
}

func paginado(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	return page, limit
}
