package handler

import (
	"fmt"
	"net/http"

	"comercial/internal/dto"
	"comercial/internal/infra"
	"comercial/internal/service"

	"github.com/gin-gonic/gin"
)

type ComprasHandler struct{ svc service.CompraService }

func NewComprasHandler(svc service.CompraService) *ComprasHandler { return &ComprasHandler{svc: svc} }

// Crear godoc
// @Summary      Registrar una compra
// @Description  Crea la compra y sus detalles iniciales en una sola transaccion. El total se calcula a partir de los detalles.
// @Tags         compras
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearCompraRequest true "Compra"
// @Success      201  {object} dto.CompraResponse
// @Failure      401  {object} apierror.APIError
// @Failure      403  {object} apierror.APIError
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/compras [post]
func (h *ComprasHandler) Crear(c *gin.Context) {
	var req dto.CrearCompraRequest
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
// @Summary      Listar compras
// @Tags         compras
// @Produce      json
// @Security     BearerAuth
// @Param        estado query string false "pendiente | recibida | anulada"
// @Param        page   query int    false "Pagina" default(1)
// @Param        limit  query int    false "Tamano de pagina" default(50)
// @Success      200  {object} dto.CompraListResponse
// @Router       /v1/compras [get]
func (h *ComprasHandler) Listar(c *gin.Context) {
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

// Obtener GET /v1/compras/:id
func (h *ComprasHandler) Obtener(c *gin.Context) {
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

// CambiarEstado PATCH /v1/compras/:id/estado
func (h *ComprasHandler) CambiarEstado(c *gin.Context) {
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

// Eliminar DELETE /v1/compras/:id (cascades to its detalles)
func (h *ComprasHandler) Eliminar(c *gin.Context) {
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
// @Summary      Agregar un detalle a la compra
// @Description  Calcula descuento y subtotal de la linea, la guarda y recalcula el total de la compra. Devuelve la compra actualizada.
// @Tags         compras
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string             true "ID de la compra"
// @Param        body body dto.DetalleRequest true "Detalle"
// @Success      201  {object} dto.CompraResponse
// @Failure      404  {object} apierror.APIError
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/compras/{id}/detalles [post]
func (h *ComprasHandler) AgregarDetalle(c *gin.Context) {
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

// ActualizarDetalle PUT /v1/compras/:id/detalles/:detalle_id
func (h *ComprasHandler) ActualizarDetalle(c *gin.Context) {
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

// EliminarDetalle DELETE /v1/compras/:id/detalles/:detalle_id
func (h *ComprasHandler) EliminarDetalle(c *gin.Context) {
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

// Recalcular POST /v1/compras/:id/recalcular
func (h *ComprasHandler) Recalcular(c *gin.Context) {
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

// DescargarPDF godoc
// @Summary      Descargar la compra en PDF
// @Tags         compras
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "ID de la compra"
// @Success      200 {file} binary
// @Failure      404 {object} apierror.APIError
// @Router       /v1/compras/{id}/pdf [get]
func (h *ComprasHandler) DescargarPDF(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	compra, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	doc := infra.DocumentoPDF{
		Titulo:         "Orden de Compra",
		Fecha:          compra.Fecha,
		Estado:         compra.Estado,
		Contraparte:    "Proveedor: " + compra.Proveedor,
		Lineas:         lineasPDF(compra.Detalles),
		Subtotal:       compra.Subtotal,
		DescuentoTotal: compra.DescuentoTotal,
		Total:          compra.Total,
	}
	if compra.NumeroComprobante != nil {
		doc.Numero = *compra.NumeroComprobante
	}
	enviarPDF(c, doc, fmt.Sprintf("compra_%s.pdf", compra.ID))
}

func lineasPDF(detalles []dto.DetalleResponse) []infra.LineaPDF {
	out := make([]infra.LineaPDF, len(detalles))
	for i, d := range detalles {
		out[i] = infra.LineaPDF{
			Producto:            d.Producto,
			Cantidad:            d.Cantidad,
			PrecioUnitario:      d.PrecioUnitario,
			PorcentajeDescuento: d.PorcentajeDescuento,
			Subtotal:            d.Subtotal,
		}
	}
	return out
}

func enviarPDF(c *gin.Context, doc infra.DocumentoPDF, nombre string) {
	data, err := infra.RenderDocumentoPDF(doc)
	if err != nil {
		responderError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+nombre+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
