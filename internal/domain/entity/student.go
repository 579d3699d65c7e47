package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Student is roster state owned by the school-administration side of the
// system; the billing engine only reads it through the roster provider.
type Student struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	FirstName     string     `gorm:"size:100;not null" json:"first_name"`
	LastName      string     `gorm:"size:100;not null" json:"last_name"`
	Admission     string     `gorm:"size:50;uniqueIndex" json:"admission_number"`
	ClassID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"class_id"`
	GuardianEmail string     `gorm:"size:255" json:"guardian_email,omitempty"`
	IsActive      bool       `gorm:"default:true" json:"is_active"`
	EnrolledAt    *time.Time `gorm:"type:date" json:"enrolled_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Relationships
	Class Class `gorm:"foreignKey:ClassID" json:"class,omitempty"`
}

// BeforeCreate generates a UUID before creating a new student
func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Student model
func (Student) TableName() string {
	return "students"
}

// DisplayName is the roster name used for sorting debtor summaries.
func (s *Student) DisplayName() string {
	return s.FirstName + " " + s.LastName
}
