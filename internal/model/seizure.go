package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Seizure statuses
const (
	SeizurePending            = "pending"
	SeizureUnderInvestigation = "under-investigation"
	SeizureCaseFiled          = "case-filed"
	SeizureClosed             = "closed"
	SeizureDisposed           = "disposed"
)

// ValidSeizureStatus reports whether s belongs to the Seizure vocabulary
func ValidSeizureStatus(s string) bool {
	switch s {
	case SeizurePending, SeizureUnderInvestigation, SeizureCaseFiled, SeizureClosed, SeizureDisposed:
		return true
	}
	return false
}

// Seizure records stock impounded during a field execution.
// It cannot exist without its parent FieldExecution.
type Seizure struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SeizureCode      string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"seizure_code"`
	FieldExecutionID uuid.UUID       `gorm:"type:uuid;not null;index" json:"field_execution_id"`
	FieldExecution   *FieldExecution `gorm:"foreignKey:FieldExecutionID" json:"field_execution,omitempty"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User             *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	District         string          `gorm:"type:varchar(100);index" json:"district"`
	Location         string          `gorm:"type:varchar(255)" json:"location"`
	Quantity         decimal.Decimal `gorm:"type:decimal(14,3)" json:"quantity"`
	QuantityUnit     string          `gorm:"type:varchar(20)" json:"quantity_unit"` // kg, litre, bags...
	EstimatedValue   decimal.Decimal `gorm:"type:decimal(14,2)" json:"estimated_value"`
	Status           string          `gorm:"type:varchar(30);not null;default:pending;index" json:"status"`
	Remarks          string          `gorm:"type:text" json:"remarks"`
	CreatedAt        time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
}
