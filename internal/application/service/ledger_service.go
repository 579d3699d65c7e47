package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sekyere/schoolfees-api/internal/domain/entity"
	"github.com/sekyere/schoolfees-api/internal/domain/enum"
	"github.com/sekyere/schoolfees-api/internal/domain/repository"
	"github.com/sekyere/schoolfees-api/pkg/apperror"
	"github.com/sekyere/schoolfees-api/pkg/pagination"
	"gorm.io/gorm"
)

// LedgerService owns the per-student ledger records: one StudentFee per
// (student, fee structure) and one StudentFeedingFee per (student, rate).
// Ensure calls are the fan-out unit of issuance and are safe to retry.
type LedgerService struct {
	studentFeeRepo repository.StudentFeeRepository
	feedingFeeRepo repository.StudentFeedingFeeRepository
}

// NewLedgerService creates a new ledger service
func NewLedgerService(studentFeeRepo repository.StudentFeeRepository, feedingFeeRepo repository.StudentFeedingFeeRepository) *LedgerService {
	return &LedgerService{
		studentFeeRepo: studentFeeRepo,
		feedingFeeRepo: feedingFeeRepo,
	}
}

// EnsureStudentFee bills one student under a fee structure.
//
// A missing record is created at the structure's current total. An existing
// record is re-priced only when the catalog reported a price change AND the
// record is either untouched or stale; a second issuance at the same price is
// a complete no-op. Price-change propagation deliberately re-prices
// fully-paid records too: the balance simply recomputes, and recorded
// payments are never altered.
func (s *LedgerService) EnsureStudentFee(ctx context.Context, studentID uuid.UUID, fs *entity.FeeStructure, priceChanged bool) (*entity.StudentFee, bool, bool, error) {
	existing, err := s.studentFeeRepo.GetByStudentAndStructure(ctx, studentID, fs.ID)
	if err != nil {
		return nil, false, false, err
	}

	if existing == nil {
		fee := &entity.StudentFee{
			StudentID:      studentID,
			FeeStructureID: fs.ID,
			AmountDue:      fs.Total,
			AmountPaid:     0,
			DueDate:        fs.DueDate,
		}
		if err := s.studentFeeRepo.Create(ctx, fee); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Concurrent fan-out already billed this student; fall back
				// to the existing record.
				return s.repriceExisting(ctx, studentID, fs, priceChanged)
			}
			return nil, false, false, err
		}
		return fee, true, false, nil
	}

	if priceChanged && (existing.AmountPaid == 0 || existing.AmountDue != fs.Total) {
		if err := s.studentFeeRepo.Reprice(ctx, existing.ID, fs.Total, fs.DueDate); err != nil {
			return nil, false, false, err
		}
		existing.AmountDue = fs.Total
		existing.DueDate = fs.DueDate
		return existing, false, true, nil
	}

	return existing, false, false, nil
}

func (s *LedgerService) repriceExisting(ctx context.Context, studentID uuid.UUID, fs *entity.FeeStructure, priceChanged bool) (*entity.StudentFee, bool, bool, error) {
	existing, err := s.studentFeeRepo.GetByStudentAndStructure(ctx, studentID, fs.ID)
	if err != nil {
		return nil, false, false, err
	}
	if existing == nil {
		return nil, false, false, apperror.ErrInternalServer
	}
	if priceChanged && (existing.AmountPaid == 0 || existing.AmountDue != fs.Total) {
		if err := s.studentFeeRepo.Reprice(ctx, existing.ID, fs.Total, fs.DueDate); err != nil {
			return nil, false, false, err
		}
		existing.AmountDue = fs.Total
		existing.DueDate = fs.DueDate
		return existing, false, true, nil
	}
	return existing, false, false, nil
}

// EnsureStudentFeedingFee bills one student under a feeding rate. The amount
// due is the proration: daily rate times issued-day count.
func (s *LedgerService) EnsureStudentFeedingFee(ctx context.Context, studentID uuid.UUID, rate *entity.FeedingFeeRate, rateChanged bool) (*entity.StudentFeedingFee, bool, bool, error) {
	amountDue := rate.AmountDue()

	existing, err := s.feedingFeeRepo.GetByStudentAndRate(ctx, studentID, rate.ID)
	if err != nil {
		return nil, false, false, err
	}

	if existing == nil {
		fee := &entity.StudentFeedingFee{
			StudentID:    studentID,
			FeedingFeeID: rate.ID,
			AmountDue:    amountDue,
			AmountPaid:   0,
			DueDate:      rate.LastIssuedDate(),
		}
		if err := s.feedingFeeRepo.Create(ctx, fee); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				existing, err = s.feedingFeeRepo.GetByStudentAndRate(ctx, studentID, rate.ID)
				if err != nil || existing == nil {
					return nil, false, false, err
				}
				return existing, false, false, nil
			}
			return nil, false, false, err
		}
		return fee, true, false, nil
	}

	if rateChanged && (existing.AmountPaid == 0 || existing.AmountDue != amountDue) {
		if err := s.feedingFeeRepo.Reprice(ctx, existing.ID, amountDue); err != nil {
			return nil, false, false, err
		}
		existing.AmountDue = amountDue
		return existing, false, true, nil
	}

	return existing, false, false, nil
}

// GetStudentFee retrieves one ledger record by ID
func (s *LedgerService) GetStudentFee(ctx context.Context, id uuid.UUID) (*entity.StudentFee, error) {
	fee, err := s.studentFeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fee == nil {
		return nil, apperror.NewNotFoundError("Student fee")
	}
	return fee, nil
}

// GetStudentFeedingFee retrieves one feeding fee record by ID
func (s *LedgerService) GetStudentFeedingFee(ctx context.Context, id uuid.UUID) (*entity.StudentFeedingFee, error) {
	fee, err := s.feedingFeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fee == nil {
		return nil, apperror.NewNotFoundError("Student feeding fee")
	}
	return fee, nil
}

// ListStudentFees lists ledger records with filters; the optional status
// filter is applied after the fetch because status is derived, not stored.
func (s *LedgerService) ListStudentFees(ctx context.Context, params *repository.StudentFeeFilterParams, status *enum.FeeStatus) (*pagination.PaginatedResult[entity.StudentFee], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	fees, total, err := s.studentFeeRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	if status != nil {
		now := time.Now()
		filtered := make([]entity.StudentFee, 0, len(fees))
		for _, fee := range fees {
			if fee.Status(now) == *status {
				filtered = append(filtered, fee)
			}
		}
		fees = filtered
	}

	return pagination.NewPaginatedResult(fees, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// ListStudentFeedingFees lists feeding fee records for one rate
func (s *LedgerService) ListStudentFeedingFees(ctx context.Context, rateID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.StudentFeedingFee], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	fees, total, err := s.feedingFeeRepo.ListByRate(ctx, rateID, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(fees, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// StudentStatement returns everything one student owes or has paid, across
// school and feeding fees.
type StudentStatement struct {
	Student     *entity.Student            `json:"student"`
	Fees        []entity.StudentFee        `json:"fees"`
	FeedingFees []entity.StudentFeedingFee `json:"feeding_fees"`
}

// GetStudentStatement assembles the full ledger view for one student.
func (s *LedgerService) GetStudentStatement(ctx context.Context, roster repository.RosterProvider, studentID uuid.UUID) (*StudentStatement, error) {
	student, err := roster.GetStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}

	fees, err := s.studentFeeRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	feeding, err := s.feedingFeeRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return &StudentStatement{Student: student, Fees: fees, FeedingFees: feeding}, nil
}
