package model

import (
	"time"

	"github.com/google/uuid"
)

// Rol bundles Permisos. Codigo is the stable key used by the seeder ("ADMIN", "VENDEDOR").
type Rol struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo      string    `gorm:"uniqueIndex;not null"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	Estado      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Permisos []Permiso `gorm:"many2many:rol_permisos;"`
}

func (Rol) TableName() string { return "roles" }

// Permiso is a capability label, e.g. "ventas.ver".
type Permiso struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Slug      string    `gorm:"uniqueIndex;not null"`
	Nombre    string    `gorm:"not null"`
	Modulo    string    `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
