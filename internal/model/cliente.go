package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cliente is the counterparty of a Venta.
type Cliente struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo            string    `gorm:"uniqueIndex;not null"`
	Nombre            string    `gorm:"not null"`
	Telefono          *string
	Email             *string
	DiasCredito       int             `gorm:"not null;default:0"`
	CreditoDisponible decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Estado            bool            `gorm:"not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
