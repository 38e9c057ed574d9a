package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Compra is a purchase order placed with a Proveedor.
// Estado: "pendiente" | "recibida" | "anulada"
type Compra struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProveedorID       uuid.UUID `gorm:"type:uuid;index;not null"`
	UsuarioID         uuid.UUID `gorm:"type:uuid;index;not null"`
	NumeroComprobante *string   `gorm:"type:varchar(50)"`
	Fecha             time.Time `gorm:"not null"`
	Estado            string    `gorm:"type:varchar(20);not null;default:'pendiente'"`
	// Cached from the current DetalleCompra set; see model.Totalizar
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DescuentoTotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Observaciones  *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Proveedor *Proveedor      `gorm:"foreignKey:ProveedorID"`
	Detalles  []DetalleCompra `gorm:"foreignKey:CompraID;constraint:OnDelete:CASCADE"`
}

// DetalleCompra is one product line of a Compra.
type DetalleCompra struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompraID   uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductoID uuid.UUID `gorm:"type:uuid;index;not null"`
	LineaDetalle
	CreatedAt time.Time
	UpdatedAt time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (DetalleCompra) TableName() string { return "detalle_compras" }
