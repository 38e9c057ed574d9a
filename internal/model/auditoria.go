package model

import (
	"time"

	"github.com/google/uuid"
)

// Auditoria is a persisted audit trail entry.
// Tipo: "CONSULTA" | "INSERCION" | "ACTUALIZACION" | "ELIMINACION" | "ERROR" | "LOGIN"
type Auditoria struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Tipo        string    `gorm:"type:varchar(20);index;not null"`
	Nivel       string    `gorm:"type:varchar(10);not null"`
	Descripcion string    `gorm:"type:text;not null"`
	Usuario     string    `gorm:"not null"`
	IP          string    `gorm:"column:ip"`
	URL         string    `gorm:"column:url"`
	RequestID   string
	Error       *string
	Fecha       time.Time `gorm:"index;not null"`
}

func (Auditoria) TableName() string { return "auditorias" }
