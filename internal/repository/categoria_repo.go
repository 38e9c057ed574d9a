package repository

import (
	"context"

	"comercial/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoriaRepository interface {
	Create(ctx context.Context, c *model.Categoria) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Categoria, error)
	// FindByNombre matches case-insensitively, like the unique index.
	FindByNombre(ctx context.Context, nombre string) (*model.Categoria, error)
	// List returns every category when estado is nil.
	List(ctx context.Context, estado *bool) ([]model.Categoria, error)
	Update(ctx context.Context, c *model.Categoria) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type categoriaRepo struct{ catalogo[model.Categoria] }

func NewCategoriaRepository(db *gorm.DB) CategoriaRepository {
	return categoriaRepo{catalogo[model.Categoria]{db: db}}
}

func (r categoriaRepo) FindByNombre(ctx context.Context, nombre string) (*model.Categoria, error) {
	var c model.Categoria
	if err := r.db.WithContext(ctx).Where("lower(nombre) = lower(?)", nombre).Take(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r categoriaRepo) List(ctx context.Context, estado *bool) ([]model.Categoria, error) {
	if estado == nil {
		return r.ordered(ctx, "nombre")
	}
	var list []model.Categoria
	err := r.db.WithContext(ctx).Where("estado = ?", *estado).Order("nombre").Find(&list).Error
	return list, err
}
