package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FIRCase statuses
const (
	FIRDraft              = "draft"
	FIRPending            = "pending"
	FIRUnderInvestigation = "under-investigation"
	FIRCaseFiled          = "case-filed"
	FIRCourtProceedings   = "court-proceedings"
	FIRClosed             = "closed"
	FIRDisposed           = "disposed"
)

// ValidFIRStatus reports whether s belongs to the FIRCase vocabulary
func ValidFIRStatus(s string) bool {
	switch s {
	case FIRDraft, FIRPending, FIRUnderInvestigation, FIRCaseFiled, FIRCourtProceedings, FIRClosed, FIRDisposed:
		return true
	}
	return false
}

// FIRCase is a legal case escalated from the enforcement chain. Unlike the
// rest of the chain its upstream links are optional: a case may be filed
// from an external complaint with no seizure or lab sample behind it.
type FIRCase struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FIRCode     string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"fir_code"`
	LabSampleID *uuid.UUID `gorm:"type:uuid;index" json:"lab_sample_id,omitempty"`
	LabSample   *LabSample `gorm:"foreignKey:LabSampleID" json:"lab_sample,omitempty"`
	SeizureID   *uuid.UUID `gorm:"type:uuid;index" json:"seizure_id,omitempty"`
	Seizure     *Seizure   `gorm:"foreignKey:SeizureID" json:"seizure,omitempty"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	District    string     `gorm:"type:varchar(100);index" json:"district"`
	// Violation metadata
	ViolationType string         `gorm:"type:varchar(255)" json:"violation_type"`
	AccusedName   string         `gorm:"type:varchar(255)" json:"accused_name"`
	PoliceStation string         `gorm:"type:varchar(255)" json:"police_station"`
	ActSection    string         `gorm:"type:varchar(255)" json:"act_section"`
	Status        string         `gorm:"type:varchar(30);not null;default:draft;index" json:"status"`
	Details       string         `gorm:"type:text" json:"details"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
