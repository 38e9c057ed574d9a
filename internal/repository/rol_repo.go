package repository

import (
	"context"

	"comercial/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RolRepository interface {
	Create(ctx context.Context, r *model.Rol) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Rol, error)
	List(ctx context.Context) ([]model.Rol, error)
	ReemplazarPermisos(ctx context.Context, id uuid.UUID, slugs []string) error
	ListPermisos(ctx context.Context) ([]model.Permiso, error)
	// AsegurarPermisos inserts missing slugs and leaves existing rows untouched.
	AsegurarPermisos(ctx context.Context, permisos []model.Permiso) error
	// AsegurarRol creates the role by codigo if it does not exist and returns the stored row.
	AsegurarRol(ctx context.Context, r *model.Rol) (*model.Rol, error)
}

type rolRepo struct{ db *gorm.DB }

func NewRolRepository(db *gorm.DB) RolRepository { return &rolRepo{db: db} }

func (r *rolRepo) Create(ctx context.Context, rol *model.Rol) error {
	return r.db.WithContext(ctx).Omit("Permisos.*").Create(rol).Error
}

func (r *rolRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Rol, error) {
	var rol model.Rol
	if err := r.db.WithContext(ctx).Preload("Permisos").First(&rol, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rol, nil
}

func (r *rolRepo) List(ctx context.Context) ([]model.Rol, error) {
	var roles []model.Rol
	err := r.db.WithContext(ctx).Preload("Permisos").Order("nombre asc").Find(&roles).Error
	return roles, err
}

func (r *rolRepo) ReemplazarPermisos(ctx context.Context, id uuid.UUID, slugs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var permisos []model.Permiso
		if len(slugs) > 0 {
			if err := tx.Where("slug IN ?", slugs).Find(&permisos).Error; err != nil {
				return err
			}
		}
		return tx.Model(&model.Rol{ID: id}).Association("Permisos").Replace(permisos)
	})
}

func (r *rolRepo) ListPermisos(ctx context.Context) ([]model.Permiso, error) {
	var permisos []model.Permiso
	err := r.db.WithContext(ctx).Order("modulo asc, slug asc").Find(&permisos).Error
	return permisos, err
}

func (r *rolRepo) AsegurarPermisos(ctx context.Context, permisos []model.Permiso) error {
	if len(permisos) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "slug"}}, DoNothing: true}).
		Create(&permisos).Error
}

func (r *rolRepo) AsegurarRol(ctx context.Context, rol *model.Rol) (*model.Rol, error) {
	db := r.db.WithContext(ctx)
	err := db.Omit("Permisos").
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "codigo"}}, DoNothing: true}).
		Create(rol).Error
	if err != nil {
		return nil, err
	}
	var stored model.Rol
	if err := db.First(&stored, "codigo = ?", rol.Codigo).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}
