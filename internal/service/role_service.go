package service

import (
	"context"
	"encoding/json"
	"errors"

	"agriportal/internal/auth"
	"agriportal/internal/model"
	"agriportal/internal/repository"
	"agriportal/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type SaveRoleRequest struct {
	ID          string `json:"id"` // Empty for create, set for update
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsElevated  bool   `json:"is_elevated"`
}

type RoleResponse struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	Description           string `json:"description"`
	IsElevated            bool   `json:"is_elevated"`
	IsSystem              bool   `json:"is_system"`
	PermissionsConfigured bool   `json:"permissions_configured"`
	CreatedAt             string `json:"created_at"`
}

// --- Interface ---

type RoleService interface {
	ListRoles(ctx context.Context) ([]RoleResponse, error)
	GetRole(ctx context.Context, id string) (*RoleResponse, error)
	// SaveRole creates the role when no id is supplied and updates it
	// otherwise. A duplicate name is a conflict either way.
	SaveRole(ctx context.Context, actor auth.Actor, req SaveRoleRequest) (*RoleResponse, error)
	DeleteRole(ctx context.Context, actor auth.Actor, id string) error
}

type roleService struct {
	roleRepo  repository.RoleRepository
	auditRepo repository.AuditRepository
}

func NewRoleService(roleRepo repository.RoleRepository, auditRepo repository.AuditRepository) RoleService {
	return &roleService{roleRepo: roleRepo, auditRepo: auditRepo}
}

// --- Implementation ---

func (s *roleService) ListRoles(ctx context.Context) ([]RoleResponse, error) {
	roles, err := s.roleRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		res = append(res, toRoleResponse(r))
	}
	return res, nil
}

func (s *roleService) GetRole(ctx context.Context, id string) (*RoleResponse, error) {
	roleID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validation("invalid role id")
	}

	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("role", id)
		}
		return nil, err
	}

	resp := toRoleResponse(*role)
	return &resp, nil
}

func (s *roleService) SaveRole(ctx context.Context, actor auth.Actor, req SaveRoleRequest) (*RoleResponse, error) {
	existing, err := s.roleRepo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if req.ID == "" {
		if existing != nil {
			return nil, apperror.Conflict("role '" + req.Name + "' already exists")
		}
		role := model.Role{
			Name:        req.Name,
			Description: req.Description,
			IsElevated:  req.IsElevated,
		}
		if err := s.roleRepo.Create(ctx, &role); err != nil {
			return nil, err
		}
		s.logRoleChange(ctx, actor, model.ActionCreateRole, &role)
		resp := toRoleResponse(role)
		return &resp, nil
	}

	roleID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, apperror.Validation("invalid role id")
	}
	if existing != nil && existing.ID != roleID {
		return nil, apperror.Conflict("role '" + req.Name + "' already exists")
	}

	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("role", req.ID)
		}
		return nil, err
	}

	role.Name = req.Name
	role.Description = req.Description
	role.IsElevated = req.IsElevated
	if err := s.roleRepo.Update(ctx, role); err != nil {
		return nil, err
	}
	s.logRoleChange(ctx, actor, model.ActionUpdateRole, role)

	resp := toRoleResponse(*role)
	return &resp, nil
}

func (s *roleService) DeleteRole(ctx context.Context, actor auth.Actor, id string) error {
	roleID, err := uuid.Parse(id)
	if err != nil {
		return apperror.Validation("invalid role id")
	}

	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("role", id)
		}
		return err
	}

	if role.IsSystem {
		return apperror.Conflict("cannot delete system role '" + role.Name + "'")
	}

	if err := s.roleRepo.DeletePermissions(ctx, roleID); err != nil {
		return err
	}
	return s.roleRepo.Delete(ctx, roleID)
}

// --- Helpers ---

func (s *roleService) logRoleChange(ctx context.Context, actor auth.Actor, action string, role *model.Role) {
	details, _ := json.Marshal(role)
	entry := &model.AuditLog{
		Action:     action,
		EntityID:   role.ID.String(),
		EntityName: role.Name,
		Details:    string(details),
	}
	if actor.UserID != uuid.Nil {
		userID := actor.UserID
		entry.UserID = &userID
	}
	_ = s.auditRepo.Log(ctx, entry)
}

func toRoleResponse(r model.Role) RoleResponse {
	return RoleResponse{
		ID:                    r.ID.String(),
		Name:                  r.Name,
		Description:           r.Description,
		IsElevated:            r.IsElevated,
		IsSystem:              r.IsSystem,
		PermissionsConfigured: r.PermissionsSavedAt != nil,
		CreatedAt:             r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
