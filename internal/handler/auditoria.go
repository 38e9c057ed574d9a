package handler

import (
	"net/http"

	"comercial/internal/dto"
	"comercial/internal/service"

	"github.com/gin-gonic/gin"
)

type AuditoriaHandler struct{ svc service.AuditoriaService }

func NewAuditoriaHandler(svc service.AuditoriaService) *AuditoriaHandler {
	return &AuditoriaHandler{svc: svc}
}

// Listar godoc
// @Summary Ultimas entradas de auditoria
// @Tags auditoria
// @Produce json
// @Security BearerAuth
// @Param tipo  query string false "CONSULTA | INSERCION | ACTUALIZACION | ELIMINACION | ERROR | LOGIN"
// @Param limit query int    false "Cantidad maxima" default(100)
// @Success 200 {array} dto.AuditoriaResponse
// @Router /v1/auditoria [get]
func (h *AuditoriaHandler) Listar(c *gin.Context) {
	var filter dto.AuditoriaFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
