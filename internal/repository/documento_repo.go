package repository

import (
	"context"

	"comercial/internal/dto"
	"comercial/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentoRepository persists an aggregate A (Compra, Venta) and its lines D.
// Every method runs against the transaction bound by WithTx, if any.
type DocumentoRepository[A, D any] interface {
	WithTx(ctx context.Context, fn func(tx DocumentoRepository[A, D]) error) error

	Create(ctx context.Context, doc *A) error
	FindByID(ctx context.Context, id uuid.UUID) (*A, error)
	List(ctx context.Context, filter dto.DocumentoFilter) ([]A, int64, error)
	UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error
	UpdateTotales(ctx context.Context, id uuid.UUID, t model.Totales) error
	// Delete removes the header together with its lines.
	Delete(ctx context.Context, id uuid.UUID) error

	SaveDetalle(ctx context.Context, d *D) error
	FindDetalle(ctx context.Context, docID, detalleID uuid.UUID) (*D, error)
	DeleteDetalle(ctx context.Context, d *D) error
	// ListDetalles always queries the store so that the total is computed from
	// the current line set, not from a collection loaded earlier in the request.
	ListDetalles(ctx context.Context, docID uuid.UUID) ([]D, error)
}

type documentoRepo[A, D any] struct {
	db *gorm.DB
	// fk is the line column pointing at the header, contraparte the
	// association preloaded with it.
	fk          string
	contraparte string
}

func (r documentoRepo[A, D]) WithTx(ctx context.Context, fn func(tx DocumentoRepository[A, D]) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bound := r
		bound.db = tx
		return fn(bound)
	})
}

func (r documentoRepo[A, D]) Create(ctx context.Context, doc *A) error {
	return r.db.WithContext(ctx).Omit("Detalles", r.contraparte).Create(doc).Error
}

func (r documentoRepo[A, D]) FindByID(ctx context.Context, id uuid.UUID) (*A, error) {
	doc := new(A)
	err := r.db.WithContext(ctx).
		Preload(r.contraparte).
		Preload("Detalles", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc") }).
		Preload("Detalles.Producto").
		Where("id = ?", id).
		Take(doc).Error
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (r documentoRepo[A, D]) List(ctx context.Context, filter dto.DocumentoFilter) ([]A, int64, error) {
	q := r.db.WithContext(ctx).Model(new(A))
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var docs []A
	err := q.Preload(r.contraparte).
		Order("fecha DESC, created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&docs).Error
	return docs, total, err
}

// actualizar reports gorm.ErrRecordNotFound when no header matched id.
func actualizar(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r documentoRepo[A, D]) UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error {
	return actualizar(r.db.WithContext(ctx).Model(new(A)).Where("id = ?", id).Update("estado", estado))
}

func (r documentoRepo[A, D]) UpdateTotales(ctx context.Context, id uuid.UUID, t model.Totales) error {
	return actualizar(r.db.WithContext(ctx).Model(new(A)).Where("id = ?", id).Updates(map[string]interface{}{
		"subtotal":        t.Subtotal,
		"descuento_total": t.DescuentoTotal,
		"total":           t.Total,
	}))
}

// Delete runs both statements in one transaction (a savepoint when called
// inside WithTx), so a failed header delete keeps the lines.
func (r documentoRepo[A, D]) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(r.fk+" = ?", id).Delete(new(D)).Error; err != nil {
			return err
		}
		return actualizar(tx.Where("id = ?", id).Delete(new(A)))
	})
}

// SaveDetalle inserts a line with a zero id and updates it otherwise.
func (r documentoRepo[A, D]) SaveDetalle(ctx context.Context, d *D) error {
	return r.db.WithContext(ctx).Omit("Producto").Save(d).Error
}

func (r documentoRepo[A, D]) FindDetalle(ctx context.Context, docID, detalleID uuid.UUID) (*D, error) {
	d := new(D)
	err := r.db.WithContext(ctx).Where("id = ? AND "+r.fk+" = ?", detalleID, docID).Take(d).Error
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r documentoRepo[A, D]) DeleteDetalle(ctx context.Context, d *D) error {
	return r.db.WithContext(ctx).Delete(d).Error
}

func (r documentoRepo[A, D]) ListDetalles(ctx context.Context, docID uuid.UUID) ([]D, error) {
	var detalles []D
	err := r.db.WithContext(ctx).Where(r.fk+" = ?", docID).Order("created_at asc").Find(&detalles).Error
	return detalles, err
}
