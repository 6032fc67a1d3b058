package repository

import (
	"context"
	"time"

	"agriportal/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoleRepository interface {
	Create(ctx context.Context, role *model.Role) error
	Update(ctx context.Context, role *model.Role) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Role, error)
	FindByName(ctx context.Context, name string) (*model.Role, error)
	ListAll(ctx context.Context) ([]model.Role, error)
	ListPermissions(ctx context.Context, roleID uuid.UUID) ([]model.RolePermission, error)
	ListAllPermissions(ctx context.Context) ([]model.RolePermission, error)
	DeletePermissions(ctx context.Context, roleID uuid.UUID) error
	InsertPermissions(ctx context.Context, rows []model.RolePermission) error
	MarkPermissionsSaved(ctx context.Context, roleID uuid.UUID, at time.Time) error
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) Create(ctx context.Context, role *model.Role) error {
	return GetDB(ctx, r.db).Create(role).Error
}

func (r *roleRepository) Update(ctx context.Context, role *model.Role) error {
	return GetDB(ctx, r.db).Save(role).Error
}

func (r *roleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Role{}).Error
}

func (r *roleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Role, error) {
	var role model.Role
	if err := GetDB(ctx, r.db).First(&role, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	if err := GetDB(ctx, r.db).Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) ListAll(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	if err := GetDB(ctx, r.db).Order("created_at asc").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *roleRepository) ListPermissions(ctx context.Context, roleID uuid.UUID) ([]model.RolePermission, error) {
	var rows []model.RolePermission
	if err := GetDB(ctx, r.db).Where("role_id = ?", roleID).Order("menu_id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *roleRepository) ListAllPermissions(ctx context.Context) ([]model.RolePermission, error) {
	var rows []model.RolePermission
	if err := GetDB(ctx, r.db).Order("role_id asc, menu_id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *roleRepository) DeletePermissions(ctx context.Context, roleID uuid.UUID) error {
	return GetDB(ctx, r.db).Where("role_id = ?", roleID).Delete(&model.RolePermission{}).Error
}

func (r *roleRepository) InsertPermissions(ctx context.Context, rows []model.RolePermission) error {
	if len(rows) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Create(&rows).Error
}

func (r *roleRepository) MarkPermissionsSaved(ctx context.Context, roleID uuid.UUID, at time.Time) error {
	return GetDB(ctx, r.db).Model(&model.Role{}).
		Where("id = ?", roleID).
		Update("permissions_saved_at", at).Error
}
