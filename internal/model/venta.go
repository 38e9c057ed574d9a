package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta is a sale to a Cliente.
// Estado: "pendiente" | "completada" | "anulada"
type Venta struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID      uuid.UUID `gorm:"type:uuid;index;not null"`
	UsuarioID      uuid.UUID `gorm:"type:uuid;index;not null"`
	NumeroTicket   *string   `gorm:"type:varchar(50)"`
	Fecha          time.Time `gorm:"not null"`
	Estado         string    `gorm:"type:varchar(20);not null;default:'pendiente'"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DescuentoTotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Observaciones  *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Cliente  *Cliente       `gorm:"foreignKey:ClienteID"`
	Detalles []DetalleVenta `gorm:"foreignKey:VentaID;constraint:OnDelete:CASCADE"`
}

// DetalleVenta is one product line of a Venta.
type DetalleVenta struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID    uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductoID uuid.UUID `gorm:"type:uuid;index;not null"`
	LineaDetalle
	CreatedAt time.Time
	UpdatedAt time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (DetalleVenta) TableName() string { return "detalle_ventas" }
