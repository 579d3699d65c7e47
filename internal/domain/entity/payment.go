package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sekyere/schoolfees-api/internal/domain/enum"
	"gorm.io/gorm"
)

// FeePayment is an append-only record of money received against a student
// fee. Payments are never mutated or deleted; the owning record's
// amount_paid is kept in step inside the same transaction.
type FeePayment struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentFeeID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_fee_id"`

	Amount        int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	PaymentDate   time.Time          `gorm:"type:date;not null" json:"payment_date"`
	ReceiptNumber string             `gorm:"size:100;unique;not null" json:"receipt_number"`
	Method        enum.PaymentMethod `gorm:"default:0" json:"method"`
	RecordedBy    *uuid.UUID         `gorm:"type:uuid" json:"recorded_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// Relationships
	StudentFee StudentFee `gorm:"foreignKey:StudentFeeID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p FeePayment) MarshalJSON() ([]byte, error) {
	type Alias FeePayment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new fee payment
func (p *FeePayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FeePayment model
func (FeePayment) TableName() string {
	return "fee_payments"
}

// FeedingFeePayment is the feeding-fee counterpart of FeePayment.
type FeedingFeePayment struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentFeedingFeeID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_feeding_fee_id"`

	Amount        int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	PaymentDate   time.Time          `gorm:"type:date;not null" json:"payment_date"`
	ReceiptNumber string             `gorm:"size:100;unique;not null" json:"receipt_number"`
	Method        enum.PaymentMethod `gorm:"default:0" json:"method"`
	RecordedBy    *uuid.UUID         `gorm:"type:uuid" json:"recorded_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// Relationships
	StudentFeedingFee StudentFeedingFee `gorm:"foreignKey:StudentFeedingFeeID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p FeedingFeePayment) MarshalJSON() ([]byte, error) {
	type Alias FeedingFeePayment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new feeding fee payment
func (p *FeedingFeePayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FeedingFeePayment model
func (FeedingFeePayment) TableName() string {
	return "feeding_fee_payments"
}
