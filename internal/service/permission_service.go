package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"agriportal/internal/auth"
	"agriportal/internal/model"
	"agriportal/internal/repository"
	"agriportal/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BuildMap folds legacy parallel-array permission payloads into a single
// menu→authType map. The two sequences must be index-aligned; a length
// mismatch is a validation error, never a partial map. A duplicated menu id
// resolves deterministically: the last entry wins.
func BuildMap(menuIDs, authTypes []string) (map[string]string, error) {
	if len(menuIDs) != len(authTypes) {
		return nil, apperror.Validation("menuids and authtypes must have the same length")
	}
	m := make(map[string]string, len(menuIDs))
	for i, menuID := range menuIDs {
		m[menuID] = authTypes[i]
	}
	return m, nil
}

// PermissionService resolves effective authorization levels and owns the
// replace-all save contract for a role's permission rows.
type PermissionService interface {
	// Resolve returns the effective authType of the actor for menuID.
	// The super user short-circuits to AuthFull before any lookup.
	Resolve(ctx context.Context, actor auth.Actor, menuID string) (string, error)
	// EffectiveMap returns the actor's authType for every known menu,
	// defaulting to AuthNone where no grant is stored.
	EffectiveMap(ctx context.Context, actor auth.Actor) (map[string]string, error)
	// IsElevated reports whether the role may mutate records it does not own
	IsElevated(ctx context.Context, roleID uuid.UUID) (bool, error)
	ListRows(ctx context.Context, roleID *uuid.UUID) ([]model.RolePermission, error)
	// ReplaceAll atomically replaces every permission row of the role with
	// the given map. An empty map is a legal save meaning "no access to
	// anything", distinct from a role that was never configured.
	ReplaceAll(ctx context.Context, actor auth.Actor, roleID uuid.UUID, perms map[string]string) (map[string]string, error)
}

// roleGrants is the cached resolution state for one role
type roleGrants struct {
	roleName  string
	elevated  bool
	byMenu    map[string]string
	expiresAt time.Time
}

type permissionService struct {
	roleRepo  repository.RoleRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager

	cacheTTL time.Duration
	cache    sync.Map // uuid.UUID -> roleGrants
}

func NewPermissionService(
	roleRepo repository.RoleRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) PermissionService {
	return &permissionService{
		roleRepo:  roleRepo,
		auditRepo: auditRepo,
		txManager: txManager,
		cacheTTL:  5 * time.Minute,
	}
}

func (s *permissionService) Resolve(ctx context.Context, actor auth.Actor, menuID string) (string, error) {
	if actor.IsSuperUser {
		return model.AuthFull, nil
	}

	grants, err := s.grantsForRole(ctx, actor.RoleID)
	if err != nil {
		return "", err
	}

	if authType, ok := grants.byMenu[menuID]; ok {
		return authType, nil
	}
	return model.AuthNone, nil
}

func (s *permissionService) EffectiveMap(ctx context.Context, actor auth.Actor) (map[string]string, error) {
	effective := make(map[string]string, len(model.KnownMenus()))

	if actor.IsSuperUser {
		for _, menu := range model.KnownMenus() {
			effective[menu] = model.AuthFull
		}
		return effective, nil
	}

	grants, err := s.grantsForRole(ctx, actor.RoleID)
	if err != nil {
		return nil, err
	}

	for _, menu := range model.KnownMenus() {
		if authType, ok := grants.byMenu[menu]; ok {
			effective[menu] = authType
		} else {
			effective[menu] = model.AuthNone
		}
	}
	return effective, nil
}

func (s *permissionService) IsElevated(ctx context.Context, roleID uuid.UUID) (bool, error) {
	grants, err := s.grantsForRole(ctx, roleID)
	if err != nil {
		// An unconfigured role can still be elevated; fall back to the row
		if errors.Is(err, apperror.ErrPermissionsNotConfigured) {
			role, roleErr := s.roleRepo.FindByID(ctx, roleID)
			if roleErr != nil {
				return false, roleErr
			}
			return role.IsElevated, nil
		}
		return false, err
	}
	return grants.elevated, nil
}

func (s *permissionService) ListRows(ctx context.Context, roleID *uuid.UUID) ([]model.RolePermission, error) {
	if roleID == nil {
		return s.roleRepo.ListAllPermissions(ctx)
	}
	if _, err := s.findRole(ctx, *roleID); err != nil {
		return nil, err
	}
	return s.roleRepo.ListPermissions(ctx, *roleID)
}

func (s *permissionService) ReplaceAll(ctx context.Context, actor auth.Actor, roleID uuid.UUID, perms map[string]string) (map[string]string, error) {
	for menuID, authType := range perms {
		if !model.IsKnownMenu(menuID) {
			return nil, apperror.Validation("unknown menu id '" + menuID + "'")
		}
		if !model.ValidAuthType(authType) {
			return nil, apperror.Validation("invalid auth type '" + authType + "' for menu '" + menuID + "'")
		}
	}

	role, err := s.findRole(ctx, roleID)
	if err != nil {
		return nil, err
	}

	rows := make([]model.RolePermission, 0, len(perms))
	for menuID, authType := range perms {
		rows = append(rows, model.RolePermission{
			RoleID:   roleID,
			MenuID:   menuID,
			AuthType: authType,
		})
	}

	// Delete-all-then-insert must be atomic: a concurrent reader must never
	// observe the role with transiently zero rows mid-save.
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.roleRepo.DeletePermissions(txCtx, roleID); err != nil {
			return err
		}
		if err := s.roleRepo.InsertPermissions(txCtx, rows); err != nil {
			return err
		}
		return s.roleRepo.MarkPermissionsSaved(txCtx, roleID, time.Now())
	})
	if err != nil {
		return nil, err
	}

	s.cache.Delete(roleID)
	s.logSave(ctx, actor, role, perms)

	return s.EffectiveMap(ctx, auth.Actor{RoleID: roleID, RoleName: role.Name})
}

// grantsForRole loads and caches the resolution state of a role. A role
// with zero rows that was never saved is reported as unconfigured — a
// condition the caller must surface distinctly from an explicit deny.
// The unconfigured condition is not cached so an administrator's first
// save takes effect immediately.
func (s *permissionService) grantsForRole(ctx context.Context, roleID uuid.UUID) (roleGrants, error) {
	if cached, ok := s.cache.Load(roleID); ok {
		grants := cached.(roleGrants)
		if time.Now().Before(grants.expiresAt) {
			return grants, nil
		}
	}

	role, err := s.findRole(ctx, roleID)
	if err != nil {
		return roleGrants{}, err
	}

	rows, err := s.roleRepo.ListPermissions(ctx, roleID)
	if err != nil {
		return roleGrants{}, err
	}

	if len(rows) == 0 && role.PermissionsSavedAt == nil {
		return roleGrants{}, apperror.PermissionsNotConfigured(role.Name)
	}

	byMenu := make(map[string]string, len(rows))
	for _, row := range rows {
		byMenu[row.MenuID] = row.AuthType
	}

	grants := roleGrants{
		roleName:  role.Name,
		elevated:  role.IsElevated,
		byMenu:    byMenu,
		expiresAt: time.Now().Add(s.cacheTTL),
	}
	s.cache.Store(roleID, grants)
	return grants, nil
}

func (s *permissionService) findRole(ctx context.Context, roleID uuid.UUID) (*model.Role, error) {
	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("role", roleID.String())
		}
		return nil, err
	}
	return role, nil
}

func (s *permissionService) logSave(ctx context.Context, actor auth.Actor, role *model.Role, perms map[string]string) {
	details, _ := json.Marshal(perms)
	entry := &model.AuditLog{
		Action:     model.ActionSaveRolePermissions,
		EntityID:   role.ID.String(),
		EntityName: role.Name,
		Details:    string(details),
	}
	if actor.UserID != uuid.Nil {
		userID := actor.UserID
		entry.UserID = &userID
	}
	// Audit failures never fail the save itself
	_ = s.auditRepo.Log(ctx, entry)
}
