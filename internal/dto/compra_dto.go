package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CrearCompraRequest struct {
	ProveedorID       string           `json:"proveedor_id"       validate:"required,uuid"`
	NumeroComprobante *string          `json:"numero_comprobante" validate:"omitempty,max=50"`
	Fecha             *time.Time       `json:"fecha"`
	Observaciones     *string          `json:"observaciones"`
	Detalles          []DetalleRequest `json:"detalles"           validate:"omitempty,dive"`
}

type CompraResponse struct {
	ID                string            `json:"id"`
	ProveedorID       string            `json:"proveedor_id"`
	Proveedor         string            `json:"proveedor"`
	UsuarioID         string            `json:"usuario_id"`
	NumeroComprobante *string           `json:"numero_comprobante"`
	Fecha             string            `json:"fecha"`
	Estado            string            `json:"estado"`
	Subtotal          decimal.Decimal   `json:"subtotal"`
	DescuentoTotal    decimal.Decimal   `json:"descuento_total"`
	Total             decimal.Decimal   `json:"total"`
	Observaciones     *string           `json:"observaciones"`
	Detalles          []DetalleResponse `json:"detalles"`
	CreatedAt         string            `json:"created_at"`
}

type CompraListResponse struct {
	Data  []CompraResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
