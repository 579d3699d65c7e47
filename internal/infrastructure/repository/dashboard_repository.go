package repository

import (
	"context"

	"github.com/sekyere/schoolfees-api/internal/domain/entity"
	domainRepo "github.com/sekyere/schoolfees-api/internal/domain/repository"
	"gorm.io/gorm"
)

type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *gorm.DB) domainRepo.DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) SchoolFeeTotals(ctx context.Context) (*domainRepo.CollectionTotals, error) {
	var totals domainRepo.CollectionTotals
	err := r.db.WithContext(ctx).
		Model(&entity.StudentFee{}).
		Select("COALESCE(SUM(amount_due - discount), 0) AS billed, COALESCE(SUM(amount_paid), 0) AS collected, COUNT(*) AS records").
		Scan(&totals).Error
	return &totals, err
}

func (r *dashboardRepository) FeedingFeeTotals(ctx context.Context) (*domainRepo.CollectionTotals, error) {
	var totals domainRepo.CollectionTotals
	err := r.db.WithContext(ctx).
		Model(&entity.StudentFeedingFee{}).
		Select("COALESCE(SUM(amount_due), 0) AS billed, COALESCE(SUM(amount_paid), 0) AS collected, COUNT(*) AS records").
		Scan(&totals).Error
	return &totals, err
}

func (r *dashboardRepository) CollectionByTerm(ctx context.Context, year string) ([]domainRepo.TermCollection, error) {
	var terms []domainRepo.TermCollection
	err := r.db.WithContext(ctx).
		Model(&entity.StudentFee{}).
		Select("fee_structures.academic_year, fee_structures.term, "+
			"COALESCE(SUM(student_fees.amount_due - student_fees.discount), 0) AS billed, "+
			"COALESCE(SUM(student_fees.amount_paid), 0) AS collected").
		Joins("JOIN fee_structures ON fee_structures.id = student_fees.fee_structure_id").
		Where("fee_structures.academic_year = ?", year).
		Group("fee_structures.academic_year, fee_structures.term").
		Order("fee_structures.term ASC").
		Scan(&terms).Error
	return terms, err
}
