package repository

import (
	"context"

	"comercial/internal/model"

	"gorm.io/gorm"
)

type AuditoriaRepository interface {
	Create(ctx context.Context, a *model.Auditoria) error
	ListRecientes(ctx context.Context, tipo string, limit int) ([]model.Auditoria, error)
}

type auditoriaRepo struct{ db *gorm.DB }

func NewAuditoriaRepository(db *gorm.DB) AuditoriaRepository { return &auditoriaRepo{db: db} }

func (r *auditoriaRepo) Create(ctx context.Context, a *model.Auditoria) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *auditoriaRepo) ListRecientes(ctx context.Context, tipo string, limit int) ([]model.Auditoria, error) {
	var list []model.Auditoria
	q := r.db.WithContext(ctx)
	if tipo != "" {
		q = q.Where("tipo = ?", tipo)
	}
	err := q.Order("fecha DESC").Limit(limit).Find(&list).Error
	return list, err
}
