package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a catalog item that purchase and sale lines point to.
type Producto struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo       string          `gorm:"uniqueIndex;not null"`
	Nombre       string          `gorm:"index;not null"`
	Descripcion  *string
	CategoriaID  *uuid.UUID      `gorm:"type:uuid;index"`
	PrecioCompra decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PrecioVenta  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Stock        int             `gorm:"not null;default:0"`
	Estado       bool            `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Categoria *Categoria `gorm:"foreignKey:CategoriaID"`
}
