package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sekyere/schoolfees-api/internal/domain/entity"
	domainRepo "github.com/sekyere/schoolfees-api/internal/domain/repository"
	"gorm.io/gorm"
)

type rosterRepository struct {
	db *gorm.DB
}

// NewRosterRepository creates a roster provider backed by the local
// students and classes tables.
func NewRosterRepository(db *gorm.DB) domainRepo.RosterProvider {
	return &rosterRepository{db: db}
}

func (r *rosterRepository) ListActiveStudents(ctx context.Context, classID uuid.UUID) ([]entity.Student, error) {
	var students []entity.Student
	err := r.db.WithContext(ctx).
		Where("class_id = ? AND is_active = ?", classID, true).
		Order("first_name ASC, last_name ASC").
		Find(&students).Error
	return students, err
}

func (r *rosterRepository) ListAllActiveStudents(ctx context.Context) ([]entity.Student, error) {
	var students []entity.Student
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("first_name ASC, last_name ASC").
		Find(&students).Error
	return students, err
}

func (r *rosterRepository) ListActiveClasses(ctx context.Context) ([]entity.Class, error) {
	var classes []entity.Class
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("level ASC, name ASC").
		Find(&classes).Error
	return classes, err
}

func (r *rosterRepository) GetClass(ctx context.Context, id uuid.UUID) (*entity.Class, error) {
	var class entity.Class
	err := r.db.WithContext(ctx).First(&class, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &class, err
}

func (r *rosterRepository) GetStudent(ctx context.Context, id uuid.UUID) (*entity.Student, error) {
	var student entity.Student
	err := r.db.WithContext(ctx).Preload("Class").First(&student, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &student, err
}
