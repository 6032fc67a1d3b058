package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FieldExecution records the findings of carrying out an inspection on site.
// It cannot exist without its parent InspectionTask.
type FieldExecution struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FieldCode    string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"field_code"`
	InspectionID uuid.UUID       `gorm:"type:uuid;not null;index" json:"inspection_id"`
	Inspection   *InspectionTask `gorm:"foreignKey:InspectionID" json:"inspection,omitempty"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User         *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	District     string          `gorm:"type:varchar(100);index" json:"district"`
	CompanyName  string          `gorm:"type:varchar(255)" json:"company_name"`
	ProductName  string          `gorm:"type:varchar(255)" json:"product_name"`
	DealerName   string          `gorm:"type:varchar(255)" json:"dealer_name"`
	BatchNumber  string          `gorm:"type:varchar(100)" json:"batch_number"`
	// Optional chemical assay readings noted during the visit
	ChemicalName    string         `gorm:"type:varchar(255)" json:"chemical_name,omitempty"`
	AssayPercentage *float64       `json:"assay_percentage,omitempty"`
	Findings        string         `gorm:"type:text" json:"findings"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
