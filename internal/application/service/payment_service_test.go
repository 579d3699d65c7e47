package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sekyere/schoolfees-api/internal/domain/entity"
	"github.com/sekyere/schoolfees-api/internal/domain/enum"
	"github.com/sekyere/schoolfees-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	svc         *PaymentService
	studentFees *fakeStudentFeeRepo
	feedingFees *fakeFeedingFeeRepo
	payments    *fakePaymentRepo
}

func newPaymentFixture() *paymentFixture {
	studentFees := newFakeStudentFeeRepo()
	feedingFees := newFakeFeedingFeeRepo()
	payments := newFakePaymentRepo(studentFees, feedingFees)
	return &paymentFixture{
		svc:         NewPaymentService(payments, studentFees, feedingFees, nil, nil, entity.ReceiptHeader{SchoolName: "Test Academy"}),
		studentFees: studentFees,
		feedingFees: feedingFees,
		payments:    payments,
	}
}

func (f *paymentFixture) seedFee(amountDue int64) *entity.StudentFee {
	fee := &entity.StudentFee{
		ID:             uuid.New(),
		StudentID:      uuid.New(),
		FeeStructureID: uuid.New(),
		AmountDue:      amountDue,
		DueDate:        time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		Student:        entity.Student{FirstName: "Ama", LastName: "Mensah"},
	}
	f.studentFees.fees = append(f.studentFees.fees, fee)
	return fee
}

func (f *paymentFixture) seedFeedingFee(amountDue int64) *entity.StudentFeedingFee {
	fee := &entity.StudentFeedingFee{
		ID:           uuid.New(),
		StudentID:    uuid.New(),
		FeedingFeeID: uuid.New(),
		AmountDue:    amountDue,
		DueDate:      time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
	}
	f.feedingFees.fees = append(f.feedingFees.fees, fee)
	return fee
}

func TestRecordFeePaymentAccumulates(t *testing.T) {
	f := newPaymentFixture()
	fee := f.seedFee(10000)
	ctx := context.Background()

	_, err := f.svc.RecordFeePayment(ctx, &RecordPaymentInput{
		LedgerRecordID: fee.ID,
		Amount:         4000,
		ReceiptNumber:  "RCT-0001",
		Method:         enum.PaymentMethodCash,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4000), fee.AmountPaid)
	assert.Equal(t, enum.FeeStatusPartial, fee.Status(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))

	// Overpayment is accepted: the raw total stays, the balance clamps.
	_, err = f.svc.RecordFeePayment(ctx, &RecordPaymentInput{
		LedgerRecordID: fee.ID,
		Amount:         7000,
		ReceiptNumber:  "RCT-0002",
		Method:         enum.PaymentMethodMobileMoney,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(11000), fee.AmountPaid)
	assert.Equal(t, int64(0), fee.Balance())
	assert.Equal(t, enum.FeeStatusPaid, fee.Status(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)))

	payments, err := f.svc.ListFeePayments(ctx, fee.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}

func TestRecordFeePaymentRejectsNonPositiveAmount(t *testing.T) {
	f := newPaymentFixture()
	fee := f.seedFee(10000)

	_, err := f.svc.RecordFeePayment(context.Background(), &RecordPaymentInput{
		LedgerRecordID: fee.ID,
		Amount:         0,
		Method:         enum.PaymentMethodCash,
	})

	assert.ErrorIs(t, err, apperror.ErrInvalidAmount)
	assert.Equal(t, int64(0), fee.AmountPaid)
}

func TestRecordFeePaymentUnknownRecord(t *testing.T) {
	f := newPaymentFixture()

	_, err := f.svc.RecordFeePayment(context.Background(), &RecordPaymentInput{
		LedgerRecordID: uuid.New(),
		Amount:         1000,
		Method:         enum.PaymentMethodCash,
	})

	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestRecordFeePaymentDuplicateReceipt(t *testing.T) {
	f := newPaymentFixture()
	fee := f.seedFee(10000)
	ctx := context.Background()

	_, err := f.svc.RecordFeePayment(ctx, &RecordPaymentInput{
		LedgerRecordID: fee.ID,
		Amount:         4000,
		ReceiptNumber:  "RCT-0001",
		Method:         enum.PaymentMethodCash,
	})
	require.NoError(t, err)

	_, err = f.svc.RecordFeePayment(ctx, &RecordPaymentInput{
		LedgerRecordID: fee.ID,
		Amount:         3000,
		ReceiptNumber:  "RCT-0001",
		Method:         enum.PaymentMethodCash,
	})

	assert.ErrorIs(t, err, apperror.ErrDuplicateReceipt)
	// The rejected payment left the aggregate untouched.
	assert.Equal(t, int64(4000), fee.AmountPaid)
}

func TestRecordFeePaymentGeneratesReceiptNumber(t *testing.T) {
	f := newPaymentFixture()
	fee := f.seedFee(10000)

	payment, err := f.svc.RecordFeePayment(context.Background(), &RecordPaymentInput{
		LedgerRecordID: fee.ID,
		Amount:         1000,
		Method:         enum.PaymentMethodBank,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(payment.ReceiptNumber, "RCT-"))
	assert.False(t, payment.PaymentDate.IsZero())
}

func TestRecordFeedingPayment(t *testing.T) {
	f := newPaymentFixture()
	fee := f.seedFeedingFee(5000)
	ctx := context.Background()

	payment, err := f.svc.RecordFeedingPayment(ctx, &RecordPaymentInput{
		LedgerRecordID: fee.ID,
		Amount:         5000,
		ReceiptNumber:  "RCT-0009",
		Method:         enum.PaymentMethodCash,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5000), fee.AmountPaid)
	assert.Equal(t, enum.FeeStatusPaid, fee.Status(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)))

	payments, err := f.svc.ListFeedingPayments(ctx, fee.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, payment.ID, payments[0].ID)
}

func TestListFeePaymentsUnknownRecord(t *testing.T) {
	f := newPaymentFixture()

	_, err := f.svc.ListFeePayments(context.Background(), uuid.New())

	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
