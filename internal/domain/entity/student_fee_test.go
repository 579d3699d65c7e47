package entity

import (
	"testing"
	"time"

	"github.com/sekyere/schoolfees-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
)

func TestStudentFeeBalanceClampsAtZero(t *testing.T) {
	fee := StudentFee{AmountDue: 10000, AmountPaid: 12000}
	assert.Equal(t, int64(0), fee.Balance())

	fee = StudentFee{AmountDue: 10000, AmountPaid: 4000, Discount: 1000}
	assert.Equal(t, int64(5000), fee.Balance())
}

func TestStudentFeeStatusDerivation(t *testing.T) {
	dueDate := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	beforeDue := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	afterDue := time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		fee  StudentFee
		now  time.Time
		want enum.FeeStatus
	}{
		{"untouched before due date", StudentFee{AmountDue: 10000, DueDate: dueDate}, beforeDue, enum.FeeStatusPending},
		{"partially paid", StudentFee{AmountDue: 10000, AmountPaid: 4000, DueDate: dueDate}, beforeDue, enum.FeeStatusPartial},
		{"fully paid", StudentFee{AmountDue: 10000, AmountPaid: 10000, DueDate: dueDate}, afterDue, enum.FeeStatusPaid},
		{"overpaid", StudentFee{AmountDue: 10000, AmountPaid: 11000, DueDate: dueDate}, afterDue, enum.FeeStatusPaid},
		{"discount settles the rest", StudentFee{AmountDue: 10000, AmountPaid: 8000, Discount: 2000, DueDate: dueDate}, afterDue, enum.FeeStatusPaid},
		{"unpaid past due date", StudentFee{AmountDue: 10000, DueDate: dueDate}, afterDue, enum.FeeStatusOverdue},
		{"partial past due date", StudentFee{AmountDue: 10000, AmountPaid: 4000, DueDate: dueDate}, afterDue, enum.FeeStatusOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fee.Status(tt.now))
		})
	}
}

func TestStudentFeeOutstanding(t *testing.T) {
	dueDate := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	open := StudentFee{AmountDue: 10000, AmountPaid: 4000, DueDate: dueDate}
	settled := StudentFee{AmountDue: 10000, AmountPaid: 10000, DueDate: dueDate}

	assert.True(t, open.Outstanding(now))
	assert.False(t, settled.Outstanding(now))
}

func TestStudentFeedingFeeStatus(t *testing.T) {
	dueDate := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	afterDue := time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC)

	fee := StudentFeedingFee{AmountDue: 5000, AmountPaid: 2000, DueDate: dueDate}
	assert.Equal(t, int64(3000), fee.Balance())
	assert.Equal(t, enum.FeeStatusOverdue, fee.Status(afterDue))

	fee.AmountPaid = 5000
	assert.Equal(t, enum.FeeStatusPaid, fee.Status(afterDue))
}
