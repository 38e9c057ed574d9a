package dto

type CrearProveedorRequest struct {
	RazonSocial string  `json:"razon_social" validate:"required,min=2,max=200"`
	Documento   string  `json:"documento"    validate:"required,min=5,max=20"`
	Telefono    *string `json:"telefono"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Direccion   *string `json:"direccion"`
}

type ActualizarProveedorRequest struct {
	RazonSocial *string `json:"razon_social" validate:"omitempty,min=2,max=200"`
	Telefono    *string `json:"telefono"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Direccion   *string `json:"direccion"`
	Estado      *bool   `json:"estado"`
}

type ProveedorResponse struct {
	ID          string  `json:"id"`
	RazonSocial string  `json:"razon_social"`
	Documento   string  `json:"documento"`
	Telefono    *string `json:"telefono"`
	Email       *string `json:"email"`
	Direccion   *string `json:"direccion"`
	Estado      bool    `json:"estado"`
}
