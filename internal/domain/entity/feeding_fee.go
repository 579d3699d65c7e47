package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeedingFeeRate defines the daily feeding rate for one term. At most one
// rate exists per (academic_year, term); unlike school fees it is not
// re-issuable at a different rate, the caller must delete and recreate.
type FeedingFeeRate struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AcademicYear string    `gorm:"size:20;not null;uniqueIndex:idx_feeding_fee_rates_cohort" json:"academic_year"`
	Term         int       `gorm:"not null;uniqueIndex:idx_feeding_fee_rates_cohort" json:"term"`

	DailyRate int64 `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON

	// IssuedDates holds the billable weekdays (ISO dates, ascending, weekends
	// excluded) the rate was issued over.
	IssuedDates []string `gorm:"serializer:json" json:"issued_dates"`

	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	StudentFeedingFees []StudentFeedingFee `gorm:"foreignKey:FeedingFeeID;constraint:OnDelete:CASCADE" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (f FeedingFeeRate) MarshalJSON() ([]byte, error) {
	type Alias FeedingFeeRate
	return json.Marshal(&struct {
		Alias
		DailyRate float64 `json:"daily_rate"`
		DayCount  int     `json:"day_count"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(f),
		DailyRate: float64(f.DailyRate) / 100,
		DayCount:  f.DayCount(),
		Total:     float64(f.AmountDue()) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new feeding fee rate
func (f *FeedingFeeRate) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FeedingFeeRate model
func (FeedingFeeRate) TableName() string {
	return "feeding_fee_rates"
}

// DayCount returns the number of billable days the rate covers.
func (f *FeedingFeeRate) DayCount() int {
	return len(f.IssuedDates)
}

// AmountDue is the proration: daily rate times billable day count.
func (f *FeedingFeeRate) AmountDue() int64 {
	return f.DailyRate * int64(f.DayCount())
}

// LastIssuedDate returns the final billable day, used as the payment due
// date on student feeding fees. Falls back to EndDate when no days exist.
func (f *FeedingFeeRate) LastIssuedDate() time.Time {
	if len(f.IssuedDates) == 0 {
		return f.EndDate
	}
	last, err := time.Parse("2006-01-02", f.IssuedDates[len(f.IssuedDates)-1])
	if err != nil {
		return f.EndDate
	}
	return last
}

// Cohort returns the rate's billing cohort key.
func (f *FeedingFeeRate) Cohort() CohortKey {
	return GlobalCohort(f.AcademicYear, f.Term)
}
