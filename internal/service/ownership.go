package service

import (
	"context"

	"agriportal/internal/auth"
	"agriportal/pkg/apperror"

	"github.com/google/uuid"
)

// OwnershipGuard decides whether an actor may mutate a specific record.
// It is evaluated in addition to the menu-level permission check: a Full
// grant on a menu does not bypass ownership, and ownership does not bypass
// the menu gate. Reads are gated by the menu check alone.
type OwnershipGuard struct {
	perms PermissionService
}

func NewOwnershipGuard(perms PermissionService) *OwnershipGuard {
	return &OwnershipGuard{perms: perms}
}

// CanMutate reports whether actor owns the record or holds an elevated role
func (g *OwnershipGuard) CanMutate(ctx context.Context, actor auth.Actor, ownerID uuid.UUID) (bool, error) {
	if actor.IsSuperUser {
		return true, nil
	}
	if actor.Owns(ownerID) {
		return true, nil
	}
	return g.perms.IsElevated(ctx, actor.RoleID)
}

// Require returns Forbidden unless CanMutate allows the mutation
func (g *OwnershipGuard) Require(ctx context.Context, actor auth.Actor, ownerID uuid.UUID) error {
	allowed, err := g.CanMutate(ctx, actor, ownerID)
	if err != nil {
		return err
	}
	if !allowed {
		return apperror.Forbidden("only the record owner or an elevated role may modify this record")
	}
	return nil
}
