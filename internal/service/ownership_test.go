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

func TestOwnershipGuard(t *testing.T) {
	roleRepo, _, perms := newPermFixture()
	guard := NewOwnershipGuard(perms)

	plain := configuredRole(roleRepo, map[string]string{
		model.MenuInspectionPlanning: model.AuthFull,
	})
	supervisor := roleRepo.addRole(&model.Role{Name: "supervisor", IsElevated: true})
	_ = roleRepo.MarkPermissionsSaved(context.Background(), supervisor.ID, supervisor.CreatedAt)

	ownerID := uuid.New()

	cases := []struct {
		name    string
		actor   auth.Actor
		allowed bool
	}{
		{"owner may mutate", auth.Actor{UserID: ownerID, RoleID: plain.ID}, true},
		{"non-owner with plain role is denied", auth.Actor{UserID: uuid.New(), RoleID: plain.ID}, false},
		{"non-owner with elevated role may mutate", auth.Actor{UserID: uuid.New(), RoleID: supervisor.ID}, true},
		{"super user may mutate anything", auth.Actor{IsSuperUser: true}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := guard.CanMutate(context.Background(), tc.actor, ownerID)
			require.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)

			err = guard.Require(context.Background(), tc.actor, ownerID)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, apperror.ErrForbidden)
			}
		})
	}
}
