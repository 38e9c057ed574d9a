package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CrearVentaRequest struct {
	ClienteID     string           `json:"cliente_id"    validate:"required,uuid"`
	NumeroTicket  *string          `json:"numero_ticket" validate:"omitempty,max=50"`
	Fecha         *time.Time       `json:"fecha"`
	Observaciones *string          `json:"observaciones"`
	Detalles      []DetalleRequest `json:"detalles"      validate:"omitempty,dive"`
}

type VentaResponse struct {
	ID             string            `json:"id"`
	ClienteID      string            `json:"cliente_id"`
	Cliente        string            `json:"cliente"`
	UsuarioID      string            `json:"usuario_id"`
	NumeroTicket   *string           `json:"numero_ticket"`
	Fecha          string            `json:"fecha"`
	Estado         string            `json:"estado"`
	Subtotal       decimal.Decimal   `json:"subtotal"`
	DescuentoTotal decimal.Decimal   `json:"descuento_total"`
	Total          decimal.Decimal   `json:"total"`
	Observaciones  *string           `json:"observaciones"`
	Detalles       []DetalleResponse `json:"detalles"`
	CreatedAt      string            `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
