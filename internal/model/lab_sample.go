package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LabSample statuses
const (
	SamplePending      = "pending"
	SampleInTransit    = "in-transit"
	SampleReceived     = "received"
	SampleUnderTesting = "under-testing"
	SampleCompleted    = "completed"
	SampleReported     = "reported"
)

// ValidSampleStatus reports whether s belongs to the LabSample vocabulary
func ValidSampleStatus(s string) bool {
	switch s {
	case SamplePending, SampleInTransit, SampleReceived, SampleUnderTesting, SampleCompleted, SampleReported:
		return true
	}
	return false
}

// LabSample tracks a sample drawn from a seizure and dispatched to a
// laboratory. It cannot exist without its parent Seizure.
type LabSample struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SampleCode  string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"sample_code"`
	SeizureID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"seizure_id"`
	Seizure     *Seizure       `gorm:"foreignKey:SeizureID" json:"seizure,omitempty"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	District    string         `gorm:"type:varchar(100);index" json:"district"`
	Department  string         `gorm:"type:varchar(255)" json:"department"`
	Destination string         `gorm:"type:varchar(255)" json:"destination"` // Receiving laboratory
	Status      string         `gorm:"type:varchar(30);not null;default:pending;index" json:"status"`
	TestResult  string         `gorm:"type:text" json:"test_result"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
