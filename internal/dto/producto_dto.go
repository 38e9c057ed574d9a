package dto

import "github.com/shopspring/decimal"

type CrearProductoRequest struct {
	Codigo       string          `json:"codigo"        validate:"required,min=1,max=50"`
	Nombre       string          `json:"nombre"        validate:"required,min=2,max=150"`
	Descripcion  *string         `json:"descripcion"`
	CategoriaID  *string         `json:"categoria_id"  validate:"omitempty,uuid"`
	PrecioCompra decimal.Decimal `json:"precio_compra" validate:"min=0"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"  validate:"min=0"`
	Stock        int             `json:"stock"         validate:"min=0"`
}

type ActualizarProductoRequest struct {
	Nombre       *string          `json:"nombre"        validate:"omitempty,min=2,max=150"`
	Descripcion  *string          `json:"descripcion"`
	CategoriaID  *string          `json:"categoria_id"  validate:"omitempty,uuid"`
	PrecioCompra *decimal.Decimal `json:"precio_compra"`
	PrecioVenta  *decimal.Decimal `json:"precio_venta"`
	Stock        *int             `json:"stock"         validate:"omitempty,min=0"`
	Estado       *bool            `json:"estado"`
}

type ProductoFilter struct {
	Nombre      string `form:"nombre"`
	CategoriaID string `form:"categoria_id" validate:"omitempty,uuid"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ProductoResponse struct {
	ID           string          `json:"id"`
	Codigo       string          `json:"codigo"`
	Nombre       string          `json:"nombre"`
	Descripcion  *string         `json:"descripcion"`
	CategoriaID  *string         `json:"categoria_id"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	Stock        int             `json:"stock"`
	Estado       bool            `json:"estado"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
