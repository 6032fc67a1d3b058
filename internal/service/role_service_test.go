package service

import (
	"context"
	"testing"

	"agriportal/internal/auth"
	"agriportal/internal/model"
	"agriportal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveRoleCreateAndUpdate(t *testing.T) {
	roleRepo := newFakeRoleRepo()
	svc := NewRoleService(roleRepo, &fakeAuditRepo{})
	actor := auth.Actor{IsSuperUser: true}

	created, err := svc.SaveRole(context.Background(), actor, SaveRoleRequest{
		Name:        "inspector",
		Description: "District inspector",
	})
	require.NoError(t, err)
	assert.False(t, created.PermissionsConfigured)

	// Duplicate name on create
	_, err = svc.SaveRole(context.Background(), actor, SaveRoleRequest{Name: "inspector"})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	// Update by id keeps the same name without conflicting with itself
	updated, err := svc.SaveRole(context.Background(), actor, SaveRoleRequest{
		ID:         created.ID,
		Name:       "inspector",
		IsElevated: true,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, updated.IsElevated)

	// Renaming onto another role's name conflicts
	_, err = svc.SaveRole(context.Background(), actor, SaveRoleRequest{Name: "supervisor"})
	require.NoError(t, err)
	_, err = svc.SaveRole(context.Background(), actor, SaveRoleRequest{
		ID:   created.ID,
		Name: "supervisor",
	})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestDeleteRoleGuardsSystemRoles(t *testing.T) {
	roleRepo := newFakeRoleRepo()
	svc := NewRoleService(roleRepo, &fakeAuditRepo{})
	actor := auth.Actor{IsSuperUser: true}

	system := roleRepo.addRole(&model.Role{Name: "administrator", IsSystem: true})
	custom := roleRepo.addRole(&model.Role{Name: "custom"})

	assert.ErrorIs(t, svc.DeleteRole(context.Background(), actor, system.ID.String()), apperror.ErrConflict)
	assert.NoError(t, svc.DeleteRole(context.Background(), actor, custom.ID.String()))
	assert.ErrorIs(t, svc.DeleteRole(context.Background(), actor, uuid.New().String()), apperror.ErrNotFound)
}
