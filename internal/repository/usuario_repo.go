package repository

import (
	"context"

	"comercial/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByEmail(ctx context.Context, email string) (*model.Usuario, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
	List(ctx context.Context) ([]model.Usuario, error)
	Update(ctx context.Context, u *model.Usuario) error
	Delete(ctx context.Context, id uuid.UUID) error
	ReemplazarRoles(ctx context.Context, id uuid.UUID, rolIDs []uuid.UUID) error
	// PermisosDe returns the slugs granted through the user's active roles.
	PermisosDe(ctx context.Context, id uuid.UUID) ([]string, error)
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Omit("Roles.*").Create(u).Error
}

func (r *usuarioRepo) FindByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Preload("Roles").First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) List(ctx context.Context) ([]model.Usuario, error) {
	var users []model.Usuario
	err := r.db.WithContext(ctx).Preload("Roles").Order("nombre asc").Find(&users).Error
	return users, err
}

func (r *usuarioRepo) Update(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Omit("Roles").Save(u).Error
}

func (r *usuarioRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM usuario_roles WHERE usuario_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Usuario{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ReemplazarRoles syncs the role set. Ids that do not exist are ignored.
func (r *usuarioRepo) ReemplazarRoles(ctx context.Context, id uuid.UUID, rolIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u := model.Usuario{ID: id}
		var roles []model.Rol
		if len(rolIDs) > 0 {
			if err := tx.Where("id IN ?", rolIDs).Find(&roles).Error; err != nil {
				return err
			}
		}
		return tx.Model(&u).Association("Roles").Replace(roles)
	})
}

func (r *usuarioRepo) PermisosDe(ctx context.Context, id uuid.UUID) ([]string, error) {
	var slugs []string
	err := r.db.WithContext(ctx).
		Table("permisos p").
		Distinct("p.slug").
		Joins("JOIN rol_permisos rp ON rp.permiso_id = p.id").
		Joins("JOIN roles r ON r.id = rp.rol_id AND r.estado = true").
		Joins("JOIN usuario_roles ur ON ur.rol_id = r.id").
		Where("ur.usuario_id = ?", id).
		Pluck("p.slug", &slugs).Error
	return slugs, err
}
