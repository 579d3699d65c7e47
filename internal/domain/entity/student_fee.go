package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sekyere/schoolfees-api/internal/domain/enum"
	"gorm.io/gorm"
)

// StudentFee is one student's obligation under one fee structure. At most one
// record exists per (student_id, fee_structure_id); balance and status are
// derived at read time, never stored.
type StudentFee struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_student_fees_ledger" json:"student_id"`
	FeeStructureID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_student_fees_ledger;index" json:"fee_structure_id"`

	AmountDue  int64 `gorm:"not null" json:"-"`  // Stored in cents, excluded from JSON
	AmountPaid int64 `gorm:"default:0" json:"-"` // Mutated only by payment recording
	Discount   int64 `gorm:"default:0" json:"-"`

	DueDate   time.Time `gorm:"type:date;not null" json:"due_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Student      Student      `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	FeeStructure FeeStructure `gorm:"foreignKey:FeeStructureID" json:"-"`
	Payments     []FeePayment `gorm:"foreignKey:StudentFeeID" json:"payments,omitempty"`
}

// MarshalJSON attaches the derived balance and status alongside decimal amounts.
func (f StudentFee) MarshalJSON() ([]byte, error) {
	type Alias StudentFee
	return json.Marshal(&struct {
		Alias
		AmountDue  float64        `json:"amount_due"`
		AmountPaid float64        `json:"amount_paid"`
		Discount   float64        `json:"discount"`
		Balance    float64        `json:"balance"`
		Status     enum.FeeStatus `json:"status"`
	}{
		Alias:      Alias(f),
		AmountDue:  float64(f.AmountDue) / 100,
		AmountPaid: float64(f.AmountPaid) / 100,
		Discount:   float64(f.Discount) / 100,
		Balance:    float64(f.Balance()) / 100,
		Status:     f.Status(time.Now()),
	})
}

// BeforeCreate generates a UUID before creating a new student fee
func (f *StudentFee) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StudentFee model
func (StudentFee) TableName() string {
	return "student_fees"
}

// Balance is amount_due - amount_paid - discount, clamped at zero so
// overpayment displays as settled while amount_paid keeps the true total.
func (f *StudentFee) Balance() int64 {
	return clampBalance(f.AmountDue, f.AmountPaid, f.Discount)
}

// Status derives the settlement state at the given time.
func (f *StudentFee) Status(now time.Time) enum.FeeStatus {
	return deriveStatus(f.AmountDue, f.AmountPaid, f.Discount, f.DueDate, now)
}

// Outstanding reports whether the record still owes anything.
func (f *StudentFee) Outstanding(now time.Time) bool {
	return f.Status(now) != enum.FeeStatusPaid
}

func clampBalance(due, paid, discount int64) int64 {
	balance := due - paid - discount
	if balance < 0 {
		return 0
	}
	return balance
}

// deriveStatus is the single status rule shared by school and feeding fees:
// paid when nothing is left and something was paid, overdue when a balance
// survives past the due date, partial when some but not all was paid,
// pending when untouched.
func deriveStatus(due, paid, discount int64, dueDate, now time.Time) enum.FeeStatus {
	balance := clampBalance(due, paid, discount)
	if balance == 0 && paid > 0 {
		return enum.FeeStatusPaid
	}
	if balance > 0 && !dueDate.IsZero() && now.After(dueDate) {
		return enum.FeeStatusOverdue
	}
	if paid > 0 && paid < due {
		return enum.FeeStatusPartial
	}
	return enum.FeeStatusPending
}
