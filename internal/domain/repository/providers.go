package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sekyere/schoolfees-api/internal/domain/entity"
)

// RosterProvider supplies the active student body. Class and student
// management is owned elsewhere; the billing engine only reads.
type RosterProvider interface {
	ListActiveStudents(ctx context.Context, classID uuid.UUID) ([]entity.Student, error)
	ListAllActiveStudents(ctx context.Context) ([]entity.Student, error)
	ListActiveClasses(ctx context.Context) ([]entity.Class, error)
	GetClass(ctx context.Context, id uuid.UUID) (*entity.Class, error)
	GetStudent(ctx context.Context, id uuid.UUID) (*entity.Student, error)
}

// CalendarProvider supplies academic terms: due-date defaults and the bounds
// feeding-fee date ranges must fall within.
type CalendarProvider interface {
	ActiveTerms(ctx context.Context) ([]entity.AcademicTerm, error)
	FindTerm(ctx context.Context, year string, term int) (*entity.AcademicTerm, error)
}
