package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AcademicTerm is calendar state: a term within an academic year, with the
// start and end dates that bound feeding-fee issuance and supply due-date
// defaults.
type AcademicTerm struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AcademicYear string    `gorm:"size:20;not null;uniqueIndex:idx_academic_terms_key" json:"academic_year"`
	Term         int       `gorm:"not null;uniqueIndex:idx_academic_terms_key" json:"term"`
	StartDate    time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate      time.Time `gorm:"type:date;not null" json:"end_date"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new academic term
func (t *AcademicTerm) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AcademicTerm model
func (AcademicTerm) TableName() string {
	return "academic_terms"
}

// Contains reports whether the date falls inside the term, inclusive.
func (t *AcademicTerm) Contains(date time.Time) bool {
	return !date.Before(t.StartDate) && !date.After(t.EndDate)
}
