package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sekyere/schoolfees-api/internal/domain/entity"
	domainRepo "github.com/sekyere/schoolfees-api/internal/domain/repository"
	"github.com/sekyere/schoolfees-api/pkg/pagination"
	"gorm.io/gorm"
)

type studentFeeRepository struct {
	db *gorm.DB
}

// NewStudentFeeRepository creates a new student fee repository
func NewStudentFeeRepository(db *gorm.DB) domainRepo.StudentFeeRepository {
	return &studentFeeRepository{db: db}
}

func (r *studentFeeRepository) GetByStudentAndStructure(ctx context.Context, studentID, structureID uuid.UUID) (*entity.StudentFee, error) {
	var fee entity.StudentFee
	err := r.db.WithContext(ctx).
		First(&fee, "student_id = ? AND fee_structure_id = ?", studentID, structureID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &fee, err
}

func (r *studentFeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StudentFee, error) {
	var fee entity.StudentFee
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Student.Class").
		Preload("FeeStructure").
		First(&fee, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &fee, err
}

func (r *studentFeeRepository) Create(ctx context.Context, fee *entity.StudentFee) error {
	return r.db.WithContext(ctx).Create(fee).Error
}

// Reprice writes only amount_due and due_date; amount_paid keeps whatever
// concurrent payments have accumulated.
func (r *studentFeeRepository) Reprice(ctx context.Context, id uuid.UUID, amountDue int64, dueDate time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entity.StudentFee{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"amount_due": amountDue,
			"due_date":   dueDate,
		}).Error
}

func (r *studentFeeRepository) List(ctx context.Context, params *domainRepo.StudentFeeFilterParams) ([]entity.StudentFee, int64, error) {
	var fees []entity.StudentFee
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.StudentFee{})

	if params.StructureID != nil {
		query = query.Where("fee_structure_id = ?", *params.StructureID)
	}
	if params.StudentID != nil {
		query = query.Where("student_id = ?", *params.StudentID)
	}
	if params.ClassID != nil {
		query = query.Joins("JOIN students ON students.id = student_fees.student_id").
			Where("students.class_id = ?", *params.ClassID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p := params.Pagination
	if p == nil {
		p = pagination.DefaultPagination()
	}
	p.Validate()

	err := query.Offset(p.Offset()).Limit(p.PerPage).
		Preload("Student").
		Preload("Student.Class").
		Preload("FeeStructure").
		Order("created_at DESC").
		Find(&fees).Error

	return fees, total, err
}

// ListOutstandingByClass filters to balance-carrying records in SQL; status
// severity and grouping happen in the service.
func (r *studentFeeRepository) ListOutstandingByClass(ctx context.Context, classID uuid.UUID) ([]entity.StudentFee, error) {
	var fees []entity.StudentFee
	err := r.db.WithContext(ctx).
		Joins("JOIN students ON students.id = student_fees.student_id").
		Where("students.class_id = ? AND students.is_active = ?", classID, true).
		Where("student_fees.amount_due > student_fees.amount_paid + student_fees.discount").
		Preload("Student").
		Preload("FeeStructure").
		Find(&fees).Error
	return fees, err
}

func (r *studentFeeRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.StudentFee, error) {
	var fees []entity.StudentFee
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Preload("FeeStructure").
		Order("created_at DESC").
		Find(&fees).Error
	return fees, err
}

type studentFeedingFeeRepository struct {
	db *gorm.DB
}

// NewStudentFeedingFeeRepository creates a new student feeding fee repository
func NewStudentFeedingFeeRepository(db *gorm.DB) domainRepo.StudentFeedingFeeRepository {
	return &studentFeedingFeeRepository{db: db}
}

func (r *studentFeedingFeeRepository) GetByStudentAndRate(ctx context.Context, studentID, rateID uuid.UUID) (*entity.StudentFeedingFee, error) {
	var fee entity.StudentFeedingFee
	err := r.db.WithContext(ctx).
		First(&fee, "student_id = ? AND feeding_fee_id = ?", studentID, rateID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &fee, err
}

func (r *studentFeedingFeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StudentFeedingFee, error) {
	var fee entity.StudentFeedingFee
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Student.Class").
		Preload("FeedingFee").
		First(&fee, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &fee, err
}

func (r *studentFeedingFeeRepository) Create(ctx context.Context, fee *entity.StudentFeedingFee) error {
	return r.db.WithContext(ctx).Create(fee).Error
}

func (r *studentFeedingFeeRepository) Reprice(ctx context.Context, id uuid.UUID, amountDue int64) error {
	return r.db.WithContext(ctx).
		Model(&entity.StudentFeedingFee{}).
		Where("id = ?", id).
		Update("amount_due", amountDue).Error
}

func (r *studentFeedingFeeRepository) ListByRate(ctx context.Context, rateID uuid.UUID, params *pagination.PaginationParams) ([]entity.StudentFeedingFee, int64, error) {
	var fees []entity.StudentFeedingFee
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.StudentFeedingFee{}).
		Where("feeding_fee_id = ?", rateID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Student").
		Preload("Student.Class").
		Order("created_at DESC").
		Find(&fees).Error

	return fees, total, err
}

func (r *studentFeedingFeeRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.StudentFeedingFee, error) {
	var fees []entity.StudentFeedingFee
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Preload("FeedingFee").
		Order("created_at DESC").
		Find(&fees).Error
	return fees, err
}

func (r *studentFeedingFeeRepository) ListOutstanding(ctx context.Context) ([]entity.StudentFeedingFee, error) {
	var fees []entity.StudentFeedingFee
	err := r.db.WithContext(ctx).
		Joins("JOIN students ON students.id = student_feeding_fees.student_id").
		Where("students.is_active = ?", true).
		Where("student_feeding_fees.amount_due > student_feeding_fees.amount_paid").
		Preload("Student").
		Preload("Student.Class").
		Preload("FeedingFee").
		Find(&fees).Error
	return fees, err
}
