package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sekyere/schoolfees-api/internal/domain/entity"
)

// PaymentRepository appends payment records. Recording is transactional: the
// payment insert and the owning record's amount_paid increment happen in one
// transaction with an atomic SQL increment, so concurrent payments against
// the same record cannot lose updates and a partial write cannot leave the
// aggregate out of step with the payment log.
type PaymentRepository interface {
	RecordFeePayment(ctx context.Context, payment *entity.FeePayment) error
	RecordFeedingPayment(ctx context.Context, payment *entity.FeedingFeePayment) error
	ListFeePayments(ctx context.Context, studentFeeID uuid.UUID) ([]entity.FeePayment, error)
	ListFeedingPayments(ctx context.Context, studentFeedingFeeID uuid.UUID) ([]entity.FeedingFeePayment, error)
}
