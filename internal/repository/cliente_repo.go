package repository

import (
	"context"

	"comercial/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	List(ctx context.Context) ([]model.Cliente, error)
	Update(ctx context.Context, c *model.Cliente) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type clienteRepo struct{ catalogo[model.Cliente] }

func NewClienteRepository(db *gorm.DB) ClienteRepository {
	return clienteRepo{catalogo[model.Cliente]{db: db}}
}

func (r clienteRepo) List(ctx context.Context) ([]model.Cliente, error) {
	return r.ordered(ctx, "nombre")
}
