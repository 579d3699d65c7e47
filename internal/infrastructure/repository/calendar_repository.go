package repository

import (
	"context"
	"errors"

	"github.com/sekyere/schoolfees-api/internal/domain/entity"
	domainRepo "github.com/sekyere/schoolfees-api/internal/domain/repository"
	"gorm.io/gorm"
)

type calendarRepository struct {
	db *gorm.DB
}

// NewCalendarRepository creates a calendar provider backed by the local
// academic_terms table.
func NewCalendarRepository(db *gorm.DB) domainRepo.CalendarProvider {
	return &calendarRepository{db: db}
}

func (r *calendarRepository) ActiveTerms(ctx context.Context) ([]entity.AcademicTerm, error) {
	var terms []entity.AcademicTerm
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("academic_year DESC, term ASC").
		Find(&terms).Error
	return terms, err
}

func (r *calendarRepository) FindTerm(ctx context.Context, year string, term int) (*entity.AcademicTerm, error) {
	var t entity.AcademicTerm
	err := r.db.WithContext(ctx).
		First(&t, "academic_year = ? AND term = ?", year, term).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &t, err
}
