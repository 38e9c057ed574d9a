package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario is a login account. Its capabilities come from the Permisos of its
// active Roles.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre       string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Estado       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Roles []Rol `gorm:"many2many:usuario_roles;"`
}
