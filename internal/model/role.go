package model

import (
	"time"

	"github.com/google/uuid"
)

// Authorization levels a role can hold for a menu
const (
	AuthFull = "F"
	AuthRead = "R"
	AuthNone = "N"
)

// ValidAuthType reports whether t is one of the known authorization levels
func ValidAuthType(t string) bool {
	return t == AuthFull || t == AuthRead || t == AuthNone
}

// CanView reports whether the resolved level allows reading the menu's records
func CanView(authType string) bool {
	return authType == AuthFull || authType == AuthRead
}

// CanMutate reports whether the resolved level allows create/update/delete
func CanMutate(authType string) bool {
	return authType == AuthFull
}

// Menu identifiers — the functional areas subject to permission grants
const (
	MenuInspectionPlanning = "inspection-planning"
	MenuFieldExecution     = "field-execution"
	MenuSeizureManagement  = "seizure-management"
	MenuLabSamples         = "lab-samples"
	MenuLegalModule        = "legal-module"
	MenuReports            = "reports"
	MenuUserManagement     = "user-management"
	MenuRoleManagement     = "role-management"
	MenuAuditLogs          = "audit-logs"
)

// KnownMenus lists every menu id in display order
func KnownMenus() []string {
	return []string{
		MenuInspectionPlanning,
		MenuFieldExecution,
		MenuSeizureManagement,
		MenuLabSamples,
		MenuLegalModule,
		MenuReports,
		MenuUserManagement,
		MenuRoleManagement,
		MenuAuditLogs,
	}
}

// IsKnownMenu reports whether menuID belongs to the registry
func IsKnownMenu(menuID string) bool {
	for _, m := range KnownMenus() {
		if m == menuID {
			return true
		}
	}
	return false
}

// Role represents a named permission group for officers
type Role struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsElevated  bool      `gorm:"default:false" json:"is_elevated"` // May mutate records it does not own
	IsSystem    bool      `gorm:"default:false" json:"is_system"`   // Prevent deletion of built-in roles
	// Nil until the first permission save. Distinguishes "never configured"
	// from "explicitly saved with zero grants".
	PermissionsSavedAt *time.Time `json:"permissions_saved_at"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// RolePermission maps a role to a menu with an authorization level.
// One row per (role, menu); absence of a row means AuthNone.
type RolePermission struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RoleID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_role_menu" json:"role_id"`
	Role      *Role     `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE" json:"-"`
	MenuID    string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_role_menu" json:"menu_id"`
	AuthType  string    `gorm:"type:varchar(1);not null" json:"auth_type"`
	CreatedAt time.Time `json:"created_at"`
}
