package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CrearUsuarioRequest struct {
	Nombre   string   `json:"name"     validate:"required,min=2,max=100"`
	Email    string   `json:"email"    validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	Estado   *bool    `json:"estado"`
	Roles    []string `json:"roles"    validate:"omitempty,dive,uuid"`
}

type ActualizarUsuarioRequest struct {
	Nombre   string  `json:"name"     validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password string  `json:"password" validate:"omitempty,min=8"`
}

type AsignarRolesRequest struct {
	Roles []string `json:"roles" validate:"dive,uuid"`
}

type CrearRolRequest struct {
	Codigo      string   `json:"codigo"      validate:"required,min=2,max=30"`
	Nombre      string   `json:"nombre"      validate:"required,min=2,max=100"`
	Descripcion *string  `json:"descripcion"`
	Permisos    []string `json:"permisos"`
}

type AsignarPermisosRequest struct {
	Permisos []string `json:"permisos"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RolResponse struct {
	ID          string   `json:"id"`
	Codigo      string   `json:"codigo"`
	Nombre      string   `json:"nombre"`
	Descripcion *string  `json:"descripcion,omitempty"`
	Estado      bool     `json:"estado"`
	Permisos    []string `json:"permisos,omitempty"`
}

type PermisoResponse struct {
	ID     string `json:"id"`
	Slug   string `json:"slug"`
	Nombre string `json:"nombre"`
	Modulo string `json:"modulo"`
}

type UsuarioResponse struct {
	ID     string        `json:"id"`
	Nombre string        `json:"name"`
	Email  string        `json:"email"`
	Estado bool          `json:"estado"`
	Roles  []RolResponse `json:"roles"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"` // seconds
	User         UsuarioResponse `json:"user"`
}

// MeResponse is the current principal with its capability set at request time.
type MeResponse struct {
	ID       string   `json:"id"`
	Nombre   string   `json:"name"`
	Email    string   `json:"email"`
	Permisos []string `json:"permisos"`
}

type MensajeResponse struct {
	Message string `json:"message"`
}
