package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sekyere/schoolfees-api/internal/domain/entity"
	domainRepo "github.com/sekyere/schoolfees-api/internal/domain/repository"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

// RecordFeePayment inserts the payment row and increments the owning
// record's amount_paid in one transaction. The increment runs as a single
// SQL expression so concurrent payments never lose updates.
func (r *paymentRepository) RecordFeePayment(ctx context.Context, payment *entity.FeePayment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		return tx.Model(&entity.StudentFee{}).
			Where("id = ?", payment.StudentFeeID).
			Update("amount_paid", gorm.Expr("amount_paid + ?", payment.Amount)).Error
	})
}

// RecordFeedingPayment is the feeding ledger analog of RecordFeePayment.
func (r *paymentRepository) RecordFeedingPayment(ctx context.Context, payment *entity.FeedingFeePayment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		return tx.Model(&entity.StudentFeedingFee{}).
			Where("id = ?", payment.StudentFeedingFeeID).
			Update("amount_paid", gorm.Expr("amount_paid + ?", payment.Amount)).Error
	})
}

func (r *paymentRepository) ListFeePayments(ctx context.Context, studentFeeID uuid.UUID) ([]entity.FeePayment, error) {
	var payments []entity.FeePayment
	err := r.db.WithContext(ctx).
		Where("student_fee_id = ?", studentFeeID).
		Order("payment_date DESC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) ListFeedingPayments(ctx context.Context, studentFeedingFeeID uuid.UUID) ([]entity.FeedingFeePayment, error) {
	var payments []entity.FeedingFeePayment
	err := r.db.WithContext(ctx).
		Where("student_feeding_fee_id = ?", studentFeedingFeeID).
		Order("payment_date DESC").
		Find(&payments).Error
	return payments, err
}
