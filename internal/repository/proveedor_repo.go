package repository

import (
	"context"

	"comercial/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProveedorRepository interface {
	Create(ctx context.Context, p *model.Proveedor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Proveedor, error)
	List(ctx context.Context) ([]model.Proveedor, error)
	Update(ctx context.Context, p *model.Proveedor) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type proveedorRepo struct{ catalogo[model.Proveedor] }

func NewProveedorRepository(db *gorm.DB) ProveedorRepository {
	return proveedorRepo{catalogo[model.Proveedor]{db: db}}
}

func (r proveedorRepo) List(ctx context.Context) ([]model.Proveedor, error) {
	return r.ordered(ctx, "razon_social")
}
