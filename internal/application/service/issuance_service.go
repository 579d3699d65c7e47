package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sekyere/schoolfees-api/internal/domain/entity"
	"github.com/sekyere/schoolfees-api/internal/domain/repository"
	"github.com/sekyere/schoolfees-api/pkg/apperror"
)

// IssuanceService drives a whole issuance run: price the cohort through the
// catalog, then fan out over the roster ensuring one ledger record per
// student. Catalog-level validation errors abort before any write; fan-out
// failures are collected into the report and never abort the batch.
type IssuanceService struct {
	catalogService *CatalogService
	ledgerService  *LedgerService
	roster         repository.RosterProvider
	calendar       repository.CalendarProvider
}

// NewIssuanceService creates a new issuance service
func NewIssuanceService(
	catalogService *CatalogService,
	ledgerService *LedgerService,
	roster repository.RosterProvider,
	calendar repository.CalendarProvider,
) *IssuanceService {
	return &IssuanceService{
		catalogService: catalogService,
		ledgerService:  ledgerService,
		roster:         roster,
		calendar:       calendar,
	}
}

// IssueSchoolFeesInput describes one school fee issuance run. A nil ClassID
// targets every active class.
type IssueSchoolFeesInput struct {
	ClassID      *uuid.UUID
	AcademicYear string
	Term         int
	Components   entity.FeeComponents
	DueDate      time.Time // zero value: defaults to the term's end date
}

// IssueSchoolFees prices each targeted class and bills its active students.
// Per-class flow: upsert the fee structure, fetch the roster, ensure one
// student fee per student. A roster or pricing error for one class becomes a
// failure entry for that class; the run continues with the next class.
func (s *IssuanceService) IssueSchoolFees(ctx context.Context, input *IssueSchoolFeesInput) (*entity.IssuanceReport, error) {
	if err := validateIssuanceInput(input.AcademicYear, input.Term); err != nil {
		return nil, err
	}
	if input.Components.HasNegative() {
		return nil, apperror.ErrInvalidAmount
	}

	classes, err := s.targetClasses(ctx, input.ClassID)
	if err != nil {
		return nil, err
	}

	report := &entity.IssuanceReport{
		AcademicYear: input.AcademicYear,
		Term:         input.Term,
	}

	for _, class := range classes {
		report.AddClass(s.issueToClass(ctx, class, input))
	}

	return report, nil
}

// issueToClass prices one class and fans out over its roster. Per-student
// failures become report entries so one bad record does not abort the class.
func (s *IssuanceService) issueToClass(ctx context.Context, class entity.Class, input *IssueSchoolFeesInput) entity.ClassIssuance {
	result := entity.ClassIssuance{
		ClassID:   class.ID,
		ClassName: class.Name,
	}

	fs, changed, err := s.catalogService.UpsertFeeStructure(ctx, &UpsertFeeStructureInput{
		Cohort:     entity.ClassCohort(class.ID, input.AcademicYear, input.Term),
		Components: input.Components,
		DueDate:    input.DueDate,
	})
	if err != nil {
		result.Failed++
		result.Failures = append(result.Failures, entity.StudentIssuanceFailure{
			Reason: "pricing failed: " + err.Error(),
		})
		return result
	}
	result.Priced = changed

	students, err := s.roster.ListActiveStudents(ctx, class.ID)
	if err != nil {
		result.Failed++
		result.Failures = append(result.Failures, entity.StudentIssuanceFailure{
			Reason: "roster lookup failed: " + err.Error(),
		})
		return result
	}

	for _, student := range students {
		_, created, updated, err := s.ledgerService.EnsureStudentFee(ctx, student.ID, fs, changed)
		if err != nil {
			result.Failed++
			result.Failures = append(result.Failures, entity.StudentIssuanceFailure{
				StudentID:   student.ID,
				StudentName: student.DisplayName(),
				Reason:      err.Error(),
			})
			continue
		}
		switch {
		case created:
			result.Created++
		case updated:
			result.Updated++
		default:
			result.Unchanged++
		}
	}

	return result
}

// IssueFeedingFeeInput describes one feeding fee issuance run.
type IssueFeedingFeeInput struct {
	AcademicYear string
	Term         int
	DailyRate    int64 // cents
	StartDate    time.Time
	EndDate      time.Time
}

// IssueFeedingFee creates the termly feeding rate and bills every active
// student. Unlike school fees a feeding rate is not re-issuable: an existing
// rate for the (year, term) pair is refused and the caller must delete and
// recreate it.
func (s *IssuanceService) IssueFeedingFee(ctx context.Context, input *IssueFeedingFeeInput) (*entity.IssuanceReport, error) {
	if err := validateIssuanceInput(input.AcademicYear, input.Term); err != nil {
		return nil, err
	}
	if input.DailyRate <= 0 {
		return nil, apperror.ErrInvalidAmount
	}

	existing, err := s.catalogService.GetFeedingRate(ctx, input.AcademicYear, input.Term)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ErrDuplicateFeedingFee
	}

	if err := s.validateRangeInTerm(ctx, input); err != nil {
		return nil, err
	}

	rate, _, err := s.catalogService.UpsertFeedingRate(ctx, &UpsertFeedingRateInput{
		Cohort:    entity.GlobalCohort(input.AcademicYear, input.Term),
		DailyRate: input.DailyRate,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	})
	if err != nil {
		return nil, err
	}

	report := &entity.IssuanceReport{
		AcademicYear: input.AcademicYear,
		Term:         input.Term,
	}
	result := entity.ClassIssuance{
		ClassName: "All active students",
		Priced:    true,
	}

	students, err := s.roster.ListAllActiveStudents(ctx)
	if err != nil {
		result.Failed++
		result.Failures = append(result.Failures, entity.StudentIssuanceFailure{
			Reason: "roster lookup failed: " + err.Error(),
		})
		report.AddClass(result)
		return report, nil
	}

	for _, student := range students {
		_, created, updated, err := s.ledgerService.EnsureStudentFeedingFee(ctx, student.ID, rate, false)
		if err != nil {
			result.Failed++
			result.Failures = append(result.Failures, entity.StudentIssuanceFailure{
				StudentID:   student.ID,
				StudentName: student.DisplayName(),
				Reason:      err.Error(),
			})
			continue
		}
		switch {
		case created:
			result.Created++
		case updated:
			result.Updated++
		default:
			result.Unchanged++
		}
	}

	report.AddClass(result)
	return report, nil
}

// targetClasses resolves the fan-out target: one class or all active ones.
func (s *IssuanceService) targetClasses(ctx context.Context, classID *uuid.UUID) ([]entity.Class, error) {
	if classID != nil {
		class, err := s.roster.GetClass(ctx, *classID)
		if err != nil {
			return nil, err
		}
		if class == nil {
			return nil, apperror.NewNotFoundError("Class")
		}
		return []entity.Class{*class}, nil
	}
	return s.roster.ListActiveClasses(ctx)
}

// validateRangeInTerm rejects a feeding date range that falls outside the
// known academic term.
func (s *IssuanceService) validateRangeInTerm(ctx context.Context, input *IssueFeedingFeeInput) error {
	term, err := s.calendar.FindTerm(ctx, input.AcademicYear, input.Term)
	if err != nil {
		return err
	}
	if term == nil {
		// The calendar does not know this term; the range stands on its own.
		return nil
	}
	if !term.Contains(input.StartDate) || !term.Contains(input.EndDate) {
		return apperror.NewBadRequestError("Date range falls outside the academic term")
	}
	return nil
}

func validateIssuanceInput(academicYear string, term int) error {
	if academicYear == "" {
		return apperror.NewBadRequestError("Academic year is required")
	}
	if term < 1 || term > 3 {
		return apperror.NewBadRequestError("Term must be between 1 and 3")
	}
	return nil
}
