package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sekyere/schoolfees-api/internal/domain/entity"
	domainRepo "github.com/sekyere/schoolfees-api/internal/domain/repository"
	"gorm.io/gorm"
)

type feeCatalogRepository struct {
	db *gorm.DB
}

// NewFeeCatalogRepository creates a new fee catalog repository
func NewFeeCatalogRepository(db *gorm.DB) domainRepo.FeeCatalogRepository {
	return &feeCatalogRepository{db: db}
}

func (r *feeCatalogRepository) GetFeeStructure(ctx context.Context, classID uuid.UUID, year string, term int) (*entity.FeeStructure, error) {
	var fs entity.FeeStructure
	err := r.db.WithContext(ctx).
		First(&fs, "class_id = ? AND academic_year = ? AND term = ?", classID, year, term).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &fs, err
}

func (r *feeCatalogRepository) GetFeeStructureByID(ctx context.Context, id uuid.UUID) (*entity.FeeStructure, error) {
	var fs entity.FeeStructure
	err := r.db.WithContext(ctx).Preload("Class").First(&fs, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &fs, err
}

func (r *feeCatalogRepository) CreateFeeStructure(ctx context.Context, fs *entity.FeeStructure) error {
	return r.db.WithContext(ctx).Create(fs).Error
}

func (r *feeCatalogRepository) UpdateFeeStructure(ctx context.Context, fs *entity.FeeStructure) error {
	return r.db.WithContext(ctx).Save(fs).Error
}

func (r *feeCatalogRepository) DeleteFeeStructure(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var feeIDs []uuid.UUID
		if err := tx.Model(&entity.StudentFee{}).
			Where("fee_structure_id = ?", id).
			Pluck("id", &feeIDs).Error; err != nil {
			return err
		}
		if len(feeIDs) > 0 {
			if err := tx.Delete(&entity.FeePayment{}, "student_fee_id IN ?", feeIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&entity.StudentFee{}, "id IN ?", feeIDs).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&entity.FeeStructure{}, "id = ?", id).Error
	})
}

func (r *feeCatalogRepository) ListFeeStructures(ctx context.Context, params *domainRepo.FeeStructureFilterParams) ([]entity.FeeStructure, error) {
	var structures []entity.FeeStructure

	query := r.db.WithContext(ctx).Model(&entity.FeeStructure{}).Preload("Class")

	if params.ClassID != nil {
		query = query.Where("class_id = ?", *params.ClassID)
	}
	if params.AcademicYear != "" {
		query = query.Where("academic_year = ?", params.AcademicYear)
	}
	if params.Term != nil {
		query = query.Where("term = ?", *params.Term)
	}

	err := query.Order("academic_year DESC, term ASC").Find(&structures).Error
	return structures, err
}

func (r *feeCatalogRepository) GetFeedingRate(ctx context.Context, year string, term int) (*entity.FeedingFeeRate, error) {
	var rate entity.FeedingFeeRate
	err := r.db.WithContext(ctx).
		First(&rate, "academic_year = ? AND term = ?", year, term).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rate, err
}

func (r *feeCatalogRepository) GetFeedingRateByID(ctx context.Context, id uuid.UUID) (*entity.FeedingFeeRate, error) {
	var rate entity.FeedingFeeRate
	err := r.db.WithContext(ctx).First(&rate, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rate, err
}

func (r *feeCatalogRepository) CreateFeedingRate(ctx context.Context, rate *entity.FeedingFeeRate) error {
	return r.db.WithContext(ctx).Create(rate).Error
}

func (r *feeCatalogRepository) UpdateFeedingRate(ctx context.Context, rate *entity.FeedingFeeRate) error {
	return r.db.WithContext(ctx).Save(rate).Error
}

func (r *feeCatalogRepository) DeleteFeedingRate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var feeIDs []uuid.UUID
		if err := tx.Model(&entity.StudentFeedingFee{}).
			Where("feeding_fee_id = ?", id).
			Pluck("id", &feeIDs).Error; err != nil {
			return err
		}
		if len(feeIDs) > 0 {
			if err := tx.Delete(&entity.FeedingFeePayment{}, "student_feeding_fee_id IN ?", feeIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&entity.StudentFeedingFee{}, "id IN ?", feeIDs).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&entity.FeedingFeeRate{}, "id = ?", id).Error
	})
}

func (r *feeCatalogRepository) ListFeedingRates(ctx context.Context, year string) ([]entity.FeedingFeeRate, error) {
	var rates []entity.FeedingFeeRate

	query := r.db.WithContext(ctx).Model(&entity.FeedingFeeRate{})
	if year != "" {
		query = query.Where("academic_year = ?", year)
	}

	err := query.Order("academic_year DESC, term ASC").Find(&rates).Error
	return rates, err
}
