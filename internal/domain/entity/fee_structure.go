package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeeStructure defines the termly school fees for one class. At most one
// structure exists per (class_id, academic_year, term); the composite unique
// index makes the create path atomic under concurrent issuance.
type FeeStructure struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClassID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_fee_structures_cohort" json:"class_id"`
	AcademicYear string    `gorm:"size:20;not null;uniqueIndex:idx_fee_structures_cohort" json:"academic_year"`
	Term         int       `gorm:"not null;uniqueIndex:idx_fee_structures_cohort" json:"term"`

	Tuition       int64 `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Library       int64 `gorm:"default:0" json:"-"`
	Lab           int64 `gorm:"default:0" json:"-"`
	Sports        int64 `gorm:"default:0" json:"-"`
	Transport     int64 `gorm:"default:0" json:"-"`
	Miscellaneous int64 `gorm:"default:0" json:"-"`
	Total         int64 `gorm:"not null" json:"-"`

	DueDate   time.Time `gorm:"type:date;not null" json:"due_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Class       Class        `gorm:"foreignKey:ClassID" json:"class,omitempty"`
	StudentFees []StudentFee `gorm:"foreignKey:FeeStructureID;constraint:OnDelete:CASCADE" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (f FeeStructure) MarshalJSON() ([]byte, error) {
	type Alias FeeStructure
	return json.Marshal(&struct {
		Alias
		Tuition       float64 `json:"tuition"`
		Library       float64 `json:"library"`
		Lab           float64 `json:"lab"`
		Sports        float64 `json:"sports"`
		Transport     float64 `json:"transport"`
		Miscellaneous float64 `json:"miscellaneous"`
		Total         float64 `json:"total"`
	}{
		Alias:         Alias(f),
		Tuition:       float64(f.Tuition) / 100,
		Library:       float64(f.Library) / 100,
		Lab:           float64(f.Lab) / 100,
		Sports:        float64(f.Sports) / 100,
		Transport:     float64(f.Transport) / 100,
		Miscellaneous: float64(f.Miscellaneous) / 100,
		Total:         float64(f.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new fee structure
func (f *FeeStructure) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FeeStructure model
func (FeeStructure) TableName() string {
	return "fee_structures"
}

// Components returns the stored breakdown as a value object.
func (f *FeeStructure) Components() FeeComponents {
	return FeeComponents{
		Tuition:       f.Tuition,
		Library:       f.Library,
		Lab:           f.Lab,
		Sports:        f.Sports,
		Transport:     f.Transport,
		Miscellaneous: f.Miscellaneous,
	}
}

// ApplyComponents overwrites the breakdown and recomputes the total.
func (f *FeeStructure) ApplyComponents(c FeeComponents) {
	f.Tuition = c.Tuition
	f.Library = c.Library
	f.Lab = c.Lab
	f.Sports = c.Sports
	f.Transport = c.Transport
	f.Miscellaneous = c.Miscellaneous
	f.Total = c.Total()
}

// Cohort returns the structure's billing cohort key.
func (f *FeeStructure) Cohort() CohortKey {
	return ClassCohort(f.ClassID, f.AcademicYear, f.Term)
}
