package repository

import (
	"context"

	"comercial/internal/dto"
	"comercial/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	Update(ctx context.Context, p *model.Producto) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type productoRepo struct{ catalogo[model.Producto] }

func NewProductoRepository(db *gorm.DB) ProductoRepository {
	return productoRepo{catalogo[model.Producto]{db: db, omit: []string{"Categoria"}}}
}

// List pages over active products, optionally narrowed by name and category.
func (r productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Producto{}).Where("estado")
	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ? OR codigo ILIKE ?", "%"+filter.Nombre+"%", filter.Nombre+"%")
	}
	if filter.CategoriaID != "" {
		q = q.Where("categoria_id = ?", filter.CategoriaID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var productos []model.Producto
	err := q.Order("nombre").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&productos).Error
	return productos, total, err
}
