package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InspectionTask statuses
const (
	InspectionScheduled  = "scheduled"
	InspectionInProgress = "in-progress"
	InspectionCompleted  = "completed"
	InspectionCancelled  = "cancelled"
)

// ValidInspectionStatus reports whether s belongs to the InspectionTask vocabulary
func ValidInspectionStatus(s string) bool {
	switch s {
	case InspectionScheduled, InspectionInProgress, InspectionCompleted, InspectionCancelled:
		return true
	}
	return false
}

// InspectionTask is the root of the case graph: a planned inspection of a
// target (dealer, manufacturer, warehouse) in a district.
type InspectionTask struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code       string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"` // Owning officer
	User       *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	District   string         `gorm:"type:varchar(100);not null;index" json:"district"`
	Taluka     string         `gorm:"type:varchar(100)" json:"taluka"`
	Location   string         `gorm:"type:varchar(255)" json:"location"`
	TargetType string         `gorm:"type:varchar(100)" json:"target_type"` // dealer, manufacturer, warehouse...
	Status     string         `gorm:"type:varchar(20);not null;default:scheduled;index" json:"status"`
	Remarks    string         `gorm:"type:text" json:"remarks"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
