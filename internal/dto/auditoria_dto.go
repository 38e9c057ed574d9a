package dto

type AuditoriaFilter struct {
	Tipo  string `form:"tipo"`
	Limit int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type AuditoriaResponse struct {
	ID          string  `json:"id"`
	Tipo        string  `json:"tipo"`
	Nivel       string  `json:"nivel"`
	Descripcion string  `json:"descripcion"`
	Usuario     string  `json:"usuario"`
	IP          string  `json:"ip"`
	URL         string  `json:"url"`
	Error       *string `json:"error,omitempty"`
	Fecha       string  `json:"fecha"`
}
