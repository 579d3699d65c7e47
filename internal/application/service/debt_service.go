package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sekyere/schoolfees-api/internal/domain/entity"
	"github.com/sekyere/schoolfees-api/internal/domain/repository"
	"github.com/sekyere/schoolfees-api/pkg/apperror"
)

// DebtService builds the "who owes what" read models. A student appears in a
// debt report only while they carry at least one record with a non-zero
// balance; summaries are computed on read, never stored.
type DebtService struct {
	studentFeeRepo repository.StudentFeeRepository
	feedingFeeRepo repository.StudentFeedingFeeRepository
	roster         repository.RosterProvider
}

// NewDebtService creates a new debt service
func NewDebtService(
	studentFeeRepo repository.StudentFeeRepository,
	feedingFeeRepo repository.StudentFeedingFeeRepository,
	roster repository.RosterProvider,
) *DebtService {
	return &DebtService{
		studentFeeRepo: studentFeeRepo,
		feedingFeeRepo: feedingFeeRepo,
		roster:         roster,
	}
}

// SchoolFeeOwers returns one summary row per student in the class who still
// owes school fees, sorted by student name.
func (s *DebtService) SchoolFeeOwers(ctx context.Context, classID uuid.UUID) ([]entity.StudentDebtSummary, error) {
	class, err := s.roster.GetClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, apperror.NewNotFoundError("Class")
	}

	fees, err := s.studentFeeRepo.ListOutstandingByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	byStudent := make(map[uuid.UUID]*entity.StudentDebtSummary)
	for i := range fees {
		fee := &fees[i]
		balance := fee.Balance()
		if balance == 0 {
			continue
		}

		summary, ok := byStudent[fee.StudentID]
		if !ok {
			summary = &entity.StudentDebtSummary{
				StudentID:   fee.StudentID,
				StudentName: fee.Student.DisplayName(),
				ClassID:     classID,
				ClassName:   class.Name,
			}
			byStudent[fee.StudentID] = summary
		}

		summary.RecordCount++
		summary.TotalBalance += balance
		if status := fee.Status(now); status.Severity() > summary.Status.Severity() {
			summary.Status = status
		}
	}

	return sortedSummaries(byStudent), nil
}

// FeedingFeeOwers returns one summary row per student who still owes feeding
// fees, optionally restricted to a class.
func (s *DebtService) FeedingFeeOwers(ctx context.Context, classID *uuid.UUID) ([]entity.StudentDebtSummary, error) {
	fees, err := s.feedingFeeRepo.ListOutstanding(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	byStudent := make(map[uuid.UUID]*entity.StudentDebtSummary)
	for i := range fees {
		fee := &fees[i]
		if classID != nil && fee.Student.ClassID != *classID {
			continue
		}
		balance := fee.Balance()
		if balance == 0 {
			continue
		}

		summary, ok := byStudent[fee.StudentID]
		if !ok {
			summary = &entity.StudentDebtSummary{
				StudentID:   fee.StudentID,
				StudentName: fee.Student.DisplayName(),
				ClassID:     fee.Student.ClassID,
				ClassName:   fee.Student.Class.Name,
			}
			byStudent[fee.StudentID] = summary
		}

		summary.RecordCount++
		summary.TotalBalance += balance
		if status := fee.Status(now); status.Severity() > summary.Status.Severity() {
			summary.Status = status
		}
	}

	return sortedSummaries(byStudent), nil
}

func sortedSummaries(byStudent map[uuid.UUID]*entity.StudentDebtSummary) []entity.StudentDebtSummary {
	summaries := make([]entity.StudentDebtSummary, 0, len(byStudent))
	for _, summary := range byStudent {
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].StudentName < summaries[j].StudentName
	})
	return summaries
}
