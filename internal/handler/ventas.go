package handler

import (
	"fmt"
	"net/http"

	"comercial/internal/dto"
	"comercial/internal/infra"
	"comercial/internal/service"

	"github.com/gin-gonic/gin"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler { return &VentasHandler{svc: svc} }

// Crear godoc
// @Summary      Registrar una venta
// @Description  Crea la venta y sus detalles iniciales en una sola transaccion. Los productos deben existir y estar activos.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearVentaRequest true "Venta"
// @Success      201  {object} dto.VentaResponse
// @Failure      401  {object} apierror.APIError
// @Failure      403  {object} apierror.APIError
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/ventas [post]
func (h *VentasHandler) Crear(c *gin.Context) {
	var req dto.CrearVentaRequest
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

// Listar godoc
// @Summary      Listar ventas
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        estado query string false "pendiente | completada | anulada"
// @Param        page   query int    false "Pagina" default(1)
// @Param        limit  query int    false "Tamano de pagina" default(50)
// @Success      200  {object} dto.VentaListResponse
// @Router       /v1/ventas [get]
func (h *VentasHandler) Listar(c *gin.Context) {
	var filter dto.DocumentoFilter
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

// Obtener GET /v1/ventas/:id
func (h *VentasHandler) Obtener(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarEstado PATCH /v1/ventas/:id/estado
func (h *VentasHandler) CambiarEstado(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CambiarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarEstado(c.Request.Context(), id, req.Estado)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar DELETE /v1/ventas/:id
func (h *VentasHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AgregarDetalle godoc
// @Summary      Agregar un detalle a la venta
// @Description  Calcula descuento y subtotal de la linea, la guarda y recalcula el total de la venta. Devuelve la venta actualizada.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string             true "ID de la venta"
// @Param        body body dto.DetalleRequest true "Detalle"
// @Success      201  {object} dto.VentaResponse
// @Failure      404  {object} apierror.APIError
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/ventas/{id}/detalles [post]
func (h *VentasHandler) AgregarDetalle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.DetalleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarDetalle(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ActualizarDetalle PUT /v1/ventas/:id/detalles/:detalle_id
func (h *VentasHandler) ActualizarDetalle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	detalleID, ok := parseID(c, "detalle_id")
	if !ok {
		return
	}
	var req dto.ActualizarDetalleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarDetalle(c.Request.Context(), id, detalleID, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EliminarDetalle DELETE /v1/ventas/:id/detalles/:detalle_id
func (h *VentasHandler) EliminarDetalle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	detalleID, ok := parseID(c, "detalle_id")
	if !ok {
		return
	}
	resp, err := h.svc.EliminarDetalle(c.Request.Context(), id, detalleID)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Recalcular POST /v1/ventas/:id/recalcular
func (h *VentasHandler) Recalcular(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.RecalcularTotal(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DescargarPDF GET /v1/ventas/:id/pdf
func (h *VentasHandler) DescargarPDF(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	venta, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	doc := infra.DocumentoPDF{
		Titulo:         "Comprobante de Venta",
		Fecha:          venta.Fecha,
		Estado:         venta.Estado,
		Contraparte:    "Cliente: " + venta.Cliente,
		Lineas:         lineasPDF(venta.Detalles),
		Subtotal:       venta.Subtotal,
		DescuentoTotal: venta.DescuentoTotal,
		Total:          venta.Total,
	}
	if venta.NumeroTicket != nil {
		doc.Numero = *venta.NumeroTicket
	}
	enviarPDF(c, doc, fmt.Sprintf("venta_%s.pdf", venta.ID))
}
