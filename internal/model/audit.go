package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateInspection = "CREATE_INSPECTION"
	ActionUpdateInspection = "UPDATE_INSPECTION"
	ActionDeleteInspection = "DELETE_INSPECTION"

	ActionCreateFieldExecution = "CREATE_FIELD_EXECUTION"
	ActionUpdateFieldExecution = "UPDATE_FIELD_EXECUTION"
	ActionDeleteFieldExecution = "DELETE_FIELD_EXECUTION"

	ActionCreateSeizure = "CREATE_SEIZURE"
	ActionUpdateSeizure = "UPDATE_SEIZURE"
	ActionDeleteSeizure = "DELETE_SEIZURE"

	ActionCreateLabSample = "CREATE_LAB_SAMPLE"
	ActionUpdateLabSample = "UPDATE_LAB_SAMPLE"
	ActionDeleteLabSample = "DELETE_LAB_SAMPLE"

	ActionCreateFIRCase = "CREATE_FIR_CASE"
	ActionUpdateFIRCase = "UPDATE_FIR_CASE"
	ActionDeleteFIRCase = "DELETE_FIR_CASE"

	ActionSaveRolePermissions = "SAVE_ROLE_PERMISSIONS"
	ActionCreateRole          = "CREATE_ROLE"
	ActionUpdateRole          = "UPDATE_ROLE"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nil for the super-user session
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/code)
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
