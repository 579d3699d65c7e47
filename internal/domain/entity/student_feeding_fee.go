package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sekyere/schoolfees-api/internal/domain/enum"
	"gorm.io/gorm"
)

// StudentFeedingFee is one student's obligation under one feeding fee rate:
// daily rate times the number of issued billable days. One record exists per
// (student_id, feeding_fee_id).
type StudentFeedingFee struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_student_feeding_fees_ledger" json:"student_id"`
	FeedingFeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_student_feeding_fees_ledger;index" json:"feeding_fee_id"`

	AmountDue  int64 `gorm:"not null" json:"-"`  // Stored in cents, excluded from JSON
	AmountPaid int64 `gorm:"default:0" json:"-"` // Mutated only by payment recording

	// DueDate is the last issued billable day of the rate.
	DueDate   time.Time `gorm:"type:date;not null" json:"due_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Student    Student             `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	FeedingFee FeedingFeeRate      `gorm:"foreignKey:FeedingFeeID" json:"-"`
	Payments   []FeedingFeePayment `gorm:"foreignKey:StudentFeedingFeeID" json:"payments,omitempty"`
}

// MarshalJSON attaches the derived balance and status alongside decimal amounts.
func (f StudentFeedingFee) MarshalJSON() ([]byte, error) {
	type Alias StudentFeedingFee
	return json.Marshal(&struct {
		Alias
		AmountDue  float64        `json:"amount_due"`
		AmountPaid float64        `json:"amount_paid"`
		Balance    float64        `json:"balance"`
		Status     enum.FeeStatus `json:"status"`
	}{
		Alias:      Alias(f),
		AmountDue:  float64(f.AmountDue) / 100,
		AmountPaid: float64(f.AmountPaid) / 100,
		Balance:    float64(f.Balance()) / 100,
		Status:     f.Status(time.Now()),
	})
}

// BeforeCreate generates a UUID before creating a new student feeding fee
func (f *StudentFeedingFee) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StudentFeedingFee model
func (StudentFeedingFee) TableName() string {
	return "student_feeding_fees"
}

// Balance is amount_due - amount_paid, clamped at zero.
func (f *StudentFeedingFee) Balance() int64 {
	return clampBalance(f.AmountDue, f.AmountPaid, 0)
}

// Status derives the settlement state at the given time.
func (f *StudentFeedingFee) Status(now time.Time) enum.FeeStatus {
	return deriveStatus(f.AmountDue, f.AmountPaid, 0, f.DueDate, now)
}
