package handler

import (
	"net/http"

	"comercial/internal/dto"
	"comercial/internal/service"

	"github.com/gin-gonic/gin"
)

type RolesHandler struct{ svc service.RolService }

func NewRolesHandler(svc service.RolService) *RolesHandler { return &RolesHandler{svc: svc} }

func (h *RolesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RolesHandler) Crear(c *gin.Context) {
	var req dto.CrearRolRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AsignarPermisos PUT /v1/roles/:id/permisos
func (h *RolesHandler) AsignarPermisos(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AsignarPermisosRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AsignarPermisos(c.Request.Context(), id, req.Permisos)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarPermisos GET /v1/permisos
func (h *RolesHandler) ListarPermisos(c *gin.Context) {
	resp, err := h.svc.ListarPermisos(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
