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
	"github.com/sekyere/schoolfees-api/pkg/dates"
	"gorm.io/gorm"
)

// CatalogService owns the fee catalog: termly fee structures per class and
// daily feeding rates per term. Upserts are idempotent by cohort key; the
// changed flag tells the caller whether a price actually moved, which is what
// decides whether propagation to student records happens.
type CatalogService struct {
	catalogRepo repository.FeeCatalogRepository
	calendar    repository.CalendarProvider
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalogRepo repository.FeeCatalogRepository, calendar repository.CalendarProvider) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		calendar:    calendar,
	}
}

// UpsertFeeStructureInput carries the pricing for one billing cohort.
type UpsertFeeStructureInput struct {
	Cohort     entity.CohortKey
	Components entity.FeeComponents
	DueDate    time.Time // zero value: defaults to the term's end date
}

// UpsertFeeStructure creates or re-prices the fee structure for a cohort.
//
// When no structure exists for (class, year, term) one is created and
// changed=true. When one exists with the same total, nothing is written and
// changed=false: a repeated issuance click is a no-op. When the total
// differs, the structure is updated in place and changed=true so the caller
// can propagate the new price to student records.
func (s *CatalogService) UpsertFeeStructure(ctx context.Context, input *UpsertFeeStructureInput) (*entity.FeeStructure, bool, error) {
	key := input.Cohort
	if key.ScopeType != enum.FeeScopeClass || key.ScopeID == uuid.Nil {
		return nil, false, apperror.NewBadRequestError("Fee structures are keyed by a class cohort")
	}

	existing, err := s.catalogRepo.GetFeeStructure(ctx, key.ScopeID, key.AcademicYear, key.Term)
	if err != nil {
		return nil, false, err
	}

	if existing == nil {
		dueDate, err := s.resolveDueDate(ctx, key.AcademicYear, key.Term, input.DueDate)
		if err != nil {
			return nil, false, err
		}

		fs := &entity.FeeStructure{
			ClassID:      key.ScopeID,
			AcademicYear: key.AcademicYear,
			Term:         key.Term,
			DueDate:      dueDate,
		}
		fs.ApplyComponents(input.Components)

		if err := s.catalogRepo.CreateFeeStructure(ctx, fs); err != nil {
			// A concurrent issuance won the create race; the unique index
			// guarantees there is exactly one structure for the key.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, false, apperror.ErrConflictingKey
			}
			return nil, false, err
		}
		return fs, true, nil
	}

	if existing.Total == input.Components.Total() {
		return existing, false, nil
	}

	existing.ApplyComponents(input.Components)
	if !input.DueDate.IsZero() {
		existing.DueDate = input.DueDate
	}
	if err := s.catalogRepo.UpdateFeeStructure(ctx, existing); err != nil {
		return nil, false, err
	}
	return existing, true, nil
}

// UpsertFeedingRateInput carries the pricing for a termly feeding fee.
type UpsertFeedingRateInput struct {
	Cohort    entity.CohortKey
	DailyRate int64
	StartDate time.Time
	EndDate   time.Time
}

// UpsertFeedingRate follows the same idempotent pattern as fee structures,
// keyed by the global (academic_year, term) cohort. The billable weekday
// range is computed up front; an empty range is rejected before any write.
func (s *CatalogService) UpsertFeedingRate(ctx context.Context, input *UpsertFeedingRateInput) (*entity.FeedingFeeRate, bool, error) {
	key := input.Cohort
	if key.ScopeType != enum.FeeScopeGlobal {
		return nil, false, apperror.NewBadRequestError("Feeding fees are keyed by a global cohort")
	}

	days, err := dates.Weekdays(input.StartDate, input.EndDate)
	if err != nil {
		return nil, false, err
	}
	if len(days) == 0 {
		return nil, false, apperror.ErrEmptyDateRange
	}

	existing, err := s.catalogRepo.GetFeedingRate(ctx, key.AcademicYear, key.Term)
	if err != nil {
		return nil, false, err
	}

	if existing == nil {
		rate := &entity.FeedingFeeRate{
			AcademicYear: key.AcademicYear,
			Term:         key.Term,
			DailyRate:    input.DailyRate,
			IssuedDates:  dates.FormatISO(days),
			StartDate:    days[0],
			EndDate:      days[len(days)-1],
		}
		if err := s.catalogRepo.CreateFeedingRate(ctx, rate); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, false, apperror.ErrConflictingKey
			}
			return nil, false, err
		}
		return rate, true, nil
	}

	newTotal := input.DailyRate * int64(len(days))
	if existing.AmountDue() == newTotal {
		return existing, false, nil
	}

	existing.DailyRate = input.DailyRate
	existing.IssuedDates = dates.FormatISO(days)
	existing.StartDate = days[0]
	existing.EndDate = days[len(days)-1]
	if err := s.catalogRepo.UpdateFeedingRate(ctx, existing); err != nil {
		return nil, false, err
	}
	return existing, true, nil
}

// GetFeedingRate returns the feeding fee for a term, or nil when none exists.
func (s *CatalogService) GetFeedingRate(ctx context.Context, year string, term int) (*entity.FeedingFeeRate, error) {
	return s.catalogRepo.GetFeedingRate(ctx, year, term)
}

// GetFeeStructure retrieves a fee structure by ID
func (s *CatalogService) GetFeeStructure(ctx context.Context, id uuid.UUID) (*entity.FeeStructure, error) {
	fs, err := s.catalogRepo.GetFeeStructureByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fs == nil {
		return nil, apperror.NewNotFoundError("Fee structure")
	}
	return fs, nil
}

// ListFeeStructures lists fee structures with optional class/year/term filters
func (s *CatalogService) ListFeeStructures(ctx context.Context, params *repository.FeeStructureFilterParams) ([]entity.FeeStructure, error) {
	return s.catalogRepo.ListFeeStructures(ctx, params)
}

// ListFeedingRates lists feeding fee rates, optionally for one academic year
func (s *CatalogService) ListFeedingRates(ctx context.Context, year string) ([]entity.FeedingFeeRate, error) {
	return s.catalogRepo.ListFeedingRates(ctx, year)
}

// DeleteFeeStructure removes a structure together with its dependent student
// fees and payments.
func (s *CatalogService) DeleteFeeStructure(ctx context.Context, id uuid.UUID) error {
	fs, err := s.catalogRepo.GetFeeStructureByID(ctx, id)
	if err != nil {
		return err
	}
	if fs == nil {
		return apperror.NewNotFoundError("Fee structure")
	}
	return s.catalogRepo.DeleteFeeStructure(ctx, id)
}

// DeleteFeedingRate removes a feeding fee rate together with its dependent
// records; the delete-and-recreate path for changing a feeding rate.
func (s *CatalogService) DeleteFeedingRate(ctx context.Context, id uuid.UUID) error {
	rate, err := s.catalogRepo.GetFeedingRateByID(ctx, id)
	if err != nil {
		return err
	}
	if rate == nil {
		return apperror.NewNotFoundError("Feeding fee")
	}
	return s.catalogRepo.DeleteFeedingRate(ctx, id)
}

// resolveDueDate falls back to the academic term's end date when the caller
// did not supply a due date.
func (s *CatalogService) resolveDueDate(ctx context.Context, year string, term int, dueDate time.Time) (time.Time, error) {
	if !dueDate.IsZero() {
		return dueDate, nil
	}
	at, err := s.calendar.FindTerm(ctx, year, term)
	if err != nil {
		return time.Time{}, err
	}
	if at == nil {
		return time.Time{}, apperror.NewBadRequestError("No due date given and no academic term found for " + year)
	}
	return at.EndDate, nil
}
