package model

import (
	"time"

	"github.com/google/uuid"
)

// Categoria groups products. Names are unique ignoring case; the index is
// created by the schema patches since gorm tags cannot express lower().
type Categoria struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"size:100;not null"`
	Descripcion *string   `gorm:"size:255"`
	Estado      bool      `gorm:"not null;default:true;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Categoria) TableName() string { return "categorias" }
