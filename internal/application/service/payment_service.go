package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sekyere/schoolfees-api/internal/domain/entity"
	"github.com/sekyere/schoolfees-api/internal/domain/enum"
	"github.com/sekyere/schoolfees-api/internal/domain/repository"
	"github.com/sekyere/schoolfees-api/pkg/apperror"
	"github.com/sekyere/schoolfees-api/pkg/email"
	"github.com/sekyere/schoolfees-api/pkg/printer"
	"github.com/sekyere/schoolfees-api/pkg/utils"
	"gorm.io/gorm"
)

// PaymentService appends payments against ledger records and keeps the
// amount_paid aggregate consistent. Payments are never capped: overpayment
// is legal, the raw total stays auditable and the displayed balance clamps
// to zero.
type PaymentService struct {
	paymentRepo    repository.PaymentRepository
	studentFeeRepo repository.StudentFeeRepository
	feedingFeeRepo repository.StudentFeedingFeeRepository
	emailService   *email.EmailService // optional, nil disables notifications
	printer        printer.Printer     // optional, nil disables printing
	school         entity.ReceiptHeader
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	studentFeeRepo repository.StudentFeeRepository,
	feedingFeeRepo repository.StudentFeedingFeeRepository,
	emailService *email.EmailService,
	p printer.Printer,
	school entity.ReceiptHeader,
) *PaymentService {
	return &PaymentService{
		paymentRepo:    paymentRepo,
		studentFeeRepo: studentFeeRepo,
		feedingFeeRepo: feedingFeeRepo,
		emailService:   emailService,
		printer:        p,
		school:         school,
	}
}

// RecordPaymentInput represents a payment against one ledger record
type RecordPaymentInput struct {
	LedgerRecordID uuid.UUID
	Amount         int64 // cents
	PaymentDate    time.Time
	ReceiptNumber  string
	Method         enum.PaymentMethod
	RecordedBy     *uuid.UUID
}

// RecordFeePayment appends a payment against a school fee record. The
// payment insert and the owning record's amount_paid increment happen in one
// store transaction; a duplicate receipt number rejects the whole call.
func (s *PaymentService) RecordFeePayment(ctx context.Context, input *RecordPaymentInput) (*entity.FeePayment, error) {
	if input.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount
	}

	fee, err := s.studentFeeRepo.GetByID(ctx, input.LedgerRecordID)
	if err != nil {
		return nil, err
	}
	if fee == nil {
		return nil, apperror.NewNotFoundError("Student fee")
	}

	payment := &entity.FeePayment{
		StudentFeeID:  fee.ID,
		Amount:        input.Amount,
		PaymentDate:   paymentDateOrNow(input.PaymentDate),
		ReceiptNumber: receiptNumberOrNew(input.ReceiptNumber),
		Method:        input.Method,
		RecordedBy:    input.RecordedBy,
	}

	if err := s.paymentRepo.RecordFeePayment(ctx, payment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.ErrDuplicateReceipt
		}
		return nil, err
	}

	fee.AmountPaid += input.Amount
	s.dispatchReceipt(s.composeFeeReceipt(fee, payment), fee.Student.GuardianEmail)

	return payment, nil
}

// RecordFeedingPayment appends a payment against a feeding fee record.
func (s *PaymentService) RecordFeedingPayment(ctx context.Context, input *RecordPaymentInput) (*entity.FeedingFeePayment, error) {
	if input.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount
	}

	fee, err := s.feedingFeeRepo.GetByID(ctx, input.LedgerRecordID)
	if err != nil {
		return nil, err
	}
	if fee == nil {
		return nil, apperror.NewNotFoundError("Student feeding fee")
	}

	payment := &entity.FeedingFeePayment{
		StudentFeedingFeeID: fee.ID,
		Amount:              input.Amount,
		PaymentDate:         paymentDateOrNow(input.PaymentDate),
		ReceiptNumber:       receiptNumberOrNew(input.ReceiptNumber),
		Method:              input.Method,
		RecordedBy:          input.RecordedBy,
	}

	if err := s.paymentRepo.RecordFeedingPayment(ctx, payment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.ErrDuplicateReceipt
		}
		return nil, err
	}

	fee.AmountPaid += input.Amount
	s.dispatchReceipt(s.composeFeedingReceipt(fee, payment), fee.Student.GuardianEmail)

	return payment, nil
}

// ListFeePayments lists payments recorded against one school fee record
func (s *PaymentService) ListFeePayments(ctx context.Context, studentFeeID uuid.UUID) ([]entity.FeePayment, error) {
	fee, err := s.studentFeeRepo.GetByID(ctx, studentFeeID)
	if err != nil {
		return nil, err
	}
	if fee == nil {
		return nil, apperror.NewNotFoundError("Student fee")
	}
	return s.paymentRepo.ListFeePayments(ctx, studentFeeID)
}

// ListFeedingPayments lists payments recorded against one feeding fee record
func (s *PaymentService) ListFeedingPayments(ctx context.Context, studentFeedingFeeID uuid.UUID) ([]entity.FeedingFeePayment, error) {
	fee, err := s.feedingFeeRepo.GetByID(ctx, studentFeedingFeeID)
	if err != nil {
		return nil, err
	}
	if fee == nil {
		return nil, apperror.NewNotFoundError("Student feeding fee")
	}
	return s.paymentRepo.ListFeedingPayments(ctx, studentFeedingFeeID)
}

func (s *PaymentService) composeFeeReceipt(fee *entity.StudentFee, payment *entity.FeePayment) *entity.FeeReceipt {
	r := &entity.FeeReceipt{
		Header:        s.school,
		ReceiptNumber: payment.ReceiptNumber,
		Date:          payment.PaymentDate.Format("2006-01-02"),
		StudentName:   fee.Student.DisplayName(),
		Description:   fmt.Sprintf("School Fees - Term %d, %s", fee.FeeStructure.Term, fee.FeeStructure.AcademicYear),
		Method:        payment.Method.String(),
		Amount:        float64(payment.Amount) / 100,
		TotalDue:      float64(fee.AmountDue) / 100,
		TotalPaid:     float64(fee.AmountPaid) / 100,
		Balance:       float64(fee.Balance()) / 100,
	}
	if fee.Student.Class.Name != "" {
		r.ClassName = fee.Student.Class.Name
	}
	return r
}

func (s *PaymentService) composeFeedingReceipt(fee *entity.StudentFeedingFee, payment *entity.FeedingFeePayment) *entity.FeeReceipt {
	return &entity.FeeReceipt{
		Header:        s.school,
		ReceiptNumber: payment.ReceiptNumber,
		Date:          payment.PaymentDate.Format("2006-01-02"),
		StudentName:   fee.Student.DisplayName(),
		Description:   fmt.Sprintf("Feeding Fee - Term %d, %s", fee.FeedingFee.Term, fee.FeedingFee.AcademicYear),
		Method:        payment.Method.String(),
		Amount:        float64(payment.Amount) / 100,
		TotalDue:      float64(fee.AmountDue) / 100,
		TotalPaid:     float64(fee.AmountPaid) / 100,
		Balance:       float64(fee.Balance()) / 100,
	}
}

// dispatchReceipt prints and emails the receipt best-effort; the payment is
// already committed, so notification failures are logged, never unwound.
func (s *PaymentService) dispatchReceipt(r *entity.FeeReceipt, guardianEmail string) {
	if s.printer != nil {
		if err := s.printer.Print(FormatFeeReceipt(r)); err != nil {
			log.Printf("Printer error (receipt %s): %v", r.ReceiptNumber, err)
		}
	}
	if s.emailService != nil && guardianEmail != "" {
		data := email.PaymentReceiptData{
			StudentName:   r.StudentName,
			Description:   r.Description,
			ReceiptNumber: r.ReceiptNumber,
			Date:          r.Date,
			Method:        r.Method,
			Amount:        r.Amount,
			TotalDue:      r.TotalDue,
			TotalPaid:     r.TotalPaid,
			Balance:       r.Balance,
		}
		if err := s.emailService.SendPaymentReceiptEmail(guardianEmail, data); err != nil {
			log.Printf("Email error (receipt %s): %v", r.ReceiptNumber, err)
		}
	}
}

func paymentDateOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

// receiptNumberOrNew falls back to a generated receipt number when the
// caller did not supply one.
func receiptNumberOrNew(n string) string {
	if n != "" {
		return n
	}
	return utils.GenerateReceiptNumber()
}
