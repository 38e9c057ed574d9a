package dto

import "github.com/shopspring/decimal"

// ─── Detail lines (shared by compras and ventas) ─────────────────────────────

type DetalleRequest struct {
	ProductoID          string          `json:"producto_id"          validate:"required,uuid"`
	Cantidad            int             `json:"cantidad"             validate:"required,min=1"`
	PrecioUnitario      decimal.Decimal `json:"precio_unitario"      validate:"min=0"`
	PorcentajeDescuento decimal.Decimal `json:"porcentaje_descuento" validate:"min=0,max=100"`
}

// ActualizarDetalleRequest only changes the fields that are present.
type ActualizarDetalleRequest struct {
	Cantidad            *int             `json:"cantidad"             validate:"omitempty,min=1"`
	PrecioUnitario      *decimal.Decimal `json:"precio_unitario"`
	PorcentajeDescuento *decimal.Decimal `json:"porcentaje_descuento"`
}

type DetalleResponse struct {
	ID                  string          `json:"id"`
	ProductoID          string          `json:"producto_id"`
	Producto            string          `json:"producto"`
	Cantidad            int             `json:"cantidad"`
	PrecioUnitario      decimal.Decimal `json:"precio_unitario"`
	PorcentajeDescuento decimal.Decimal `json:"porcentaje_descuento"`
	Descuento           decimal.Decimal `json:"descuento"`
	PrecioBase          decimal.Decimal `json:"precio_base"`
	Subtotal            decimal.Decimal `json:"subtotal"`
}

type CambiarEstadoRequest struct {
	Estado string `json:"estado" validate:"required"`
}

// DocumentoFilter is bound from the query string of GET /v1/compras and GET /v1/ventas.
type DocumentoFilter struct {
	Estado string `form:"estado"`                // empty = all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}
