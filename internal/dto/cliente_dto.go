package dto

import "github.com/shopspring/decimal"

type CrearClienteRequest struct {
	Codigo            string          `json:"codigo"             validate:"required,min=1,max=30"`
	Nombre            string          `json:"nombre"             validate:"required,min=2,max=150"`
	Telefono          *string         `json:"telefono"`
	Email             *string         `json:"email"              validate:"omitempty,email"`
	DiasCredito       int             `json:"dias_credito"       validate:"min=0"`
	CreditoDisponible decimal.Decimal `json:"credito_disponible" validate:"min=0"`
}

type ActualizarClienteRequest struct {
	Nombre            *string          `json:"nombre"             validate:"omitempty,min=2,max=150"`
	Telefono          *string          `json:"telefono"`
	Email             *string          `json:"email"              validate:"omitempty,email"`
	DiasCredito       *int             `json:"dias_credito"       validate:"omitempty,min=0"`
	CreditoDisponible *decimal.Decimal `json:"credito_disponible"`
	Estado            *bool            `json:"estado"`
}

// ClienteResponse mirrors the client resource exposed to the SPA.
type ClienteResponse struct {
	ID                string          `json:"id"`
	Codigo            string          `json:"codigo"`
	Nombre            string          `json:"nombre"`
	Telefono          *string         `json:"telefono"`
	Email             *string         `json:"email"`
	DiasCredito       int             `json:"dias_credito"`
	CreditoDisponible decimal.Decimal `json:"credito_disponible"`
	Estado            bool            `json:"estado"`
}
