package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sekyere/schoolfees-api/internal/domain/entity"
	"github.com/sekyere/schoolfees-api/pkg/pagination"
)

// StudentFeeRepository owns the per-student school fee ledger records.
type StudentFeeRepository interface {
	GetByStudentAndStructure(ctx context.Context, studentID, structureID uuid.UUID) (*entity.StudentFee, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StudentFee, error)
	Create(ctx context.Context, fee *entity.StudentFee) error
	// Reprice updates amount_due and due_date on an existing record without
	// touching amount_paid; used by price-change propagation.
	Reprice(ctx context.Context, id uuid.UUID, amountDue int64, dueDate time.Time) error
	List(ctx context.Context, params *StudentFeeFilterParams) ([]entity.StudentFee, int64, error)
	// ListOutstandingByClass returns every student fee in the class whose
	// balance can still be owed, with Student preloaded for name sorting.
	ListOutstandingByClass(ctx context.Context, classID uuid.UUID) ([]entity.StudentFee, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.StudentFee, error)
}

// StudentFeeFilterParams contains filtering parameters for ledger queries
type StudentFeeFilterParams struct {
	Pagination  *pagination.PaginationParams
	StructureID *uuid.UUID
	StudentID   *uuid.UUID
	ClassID     *uuid.UUID
}

// StudentFeedingFeeRepository owns the per-student feeding fee records.
type StudentFeedingFeeRepository interface {
	GetByStudentAndRate(ctx context.Context, studentID, rateID uuid.UUID) (*entity.StudentFeedingFee, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StudentFeedingFee, error)
	Create(ctx context.Context, fee *entity.StudentFeedingFee) error
	Reprice(ctx context.Context, id uuid.UUID, amountDue int64) error
	ListByRate(ctx context.Context, rateID uuid.UUID, params *pagination.PaginationParams) ([]entity.StudentFeedingFee, int64, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.StudentFeedingFee, error)
	// ListOutstanding returns all feeding fee records that may still be owed,
	// unscoped; class filtering happens in the presentation layer.
	ListOutstanding(ctx context.Context) ([]entity.StudentFeedingFee, error)
}
