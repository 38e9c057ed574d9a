package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// catalogo implements the operations every catalog table shares: rows are
// looked up by uuid and removed by flipping estado to false.
type catalogo[T any] struct {
	db *gorm.DB
	// omit lists associations that must not be upserted alongside the row.
	omit []string
}

func (c catalogo[T]) tx(ctx context.Context) *gorm.DB {
	q := c.db.WithContext(ctx)
	if len(c.omit) > 0 {
		q = q.Omit(c.omit...)
	}
	return q
}

func (c catalogo[T]) Create(ctx context.Context, row *T) error {
	return c.tx(ctx).Create(row).Error
}

func (c catalogo[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	row := new(T)
	if err := c.db.WithContext(ctx).Where("id = ?", id).Take(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (c catalogo[T]) Update(ctx context.Context, row *T) error {
	return c.tx(ctx).Save(row).Error
}

// SoftDelete keeps the row so historic document lines still resolve it.
func (c catalogo[T]) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return c.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Update("estado", false).Error
}

// ordered lists every row sorted by col.
func (c catalogo[T]) ordered(ctx context.Context, col string) ([]T, error) {
	var rows []T
	err := c.db.WithContext(ctx).Order(col).Find(&rows).Error
	return rows, err
}
