package model

import (
	"time"

	"github.com/google/uuid"
)

// Proveedor is the counterparty of a Compra.
type Proveedor struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RazonSocial string    `gorm:"not null"`
	Documento   string    `gorm:"uniqueIndex;not null"`
	Telefono    *string
	Email       *string
	Direccion   *string
	Estado      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Proveedor) TableName() string { return "proveedores" }
