package repository

import (
	"comercial/internal/model"

	"gorm.io/gorm"
)

// CompraRepository persists Compra aggregates and their DetalleCompra lines.
type CompraRepository = DocumentoRepository[model.Compra, model.DetalleCompra]

func NewCompraRepository(db *gorm.DB) CompraRepository {
	return documentoRepo[model.Compra, model.DetalleCompra]{db: db, fk: "compra_id", contraparte: "Proveedor"}
}
