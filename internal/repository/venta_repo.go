package repository

import (
	"comercial/internal/model"

	"gorm.io/gorm"
)

// VentaRepository persists Venta aggregates and their DetalleVenta lines.
type VentaRepository = DocumentoRepository[model.Venta, model.DetalleVenta]

func NewVentaRepository(db *gorm.DB) VentaRepository {
	return documentoRepo[model.Venta, model.DetalleVenta]{db: db, fk: "venta_id", contraparte: "Cliente"}
}
