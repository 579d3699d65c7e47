package service

import (
	"context"

	"github.com/sekyere/schoolfees-api/internal/domain/repository"
)

// DashboardService provides collection statistics for the fees dashboard
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
	calendar      repository.CalendarProvider
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(dashboardRepo repository.DashboardRepository, calendar repository.CalendarProvider) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo, calendar: calendar}
}

// DashboardStats represents collection statistics across both fee ledgers
type DashboardStats struct {
	SchoolFees  CollectionSummary `json:"school_fees"`
	FeedingFees CollectionSummary `json:"feeding_fees"`
	ByTerm      []TermSummary     `json:"by_term,omitempty"`
}

// CollectionSummary aggregates one ledger's billed versus collected amounts
type CollectionSummary struct {
	TotalBilled    float64 `json:"total_billed"`
	TotalCollected float64 `json:"total_collected"`
	Outstanding    float64 `json:"outstanding"`
	CollectionRate float64 `json:"collection_rate"`
	Records        int64   `json:"records"`
}

// TermSummary represents collection per academic term
type TermSummary struct {
	AcademicYear   string  `json:"academic_year"`
	Term           int     `json:"term"`
	TotalBilled    float64 `json:"total_billed"`
	TotalCollected float64 `json:"total_collected"`
	CollectionRate float64 `json:"collection_rate"`
}

// GetDashboardStats returns collection statistics, broken down by term for
// one academic year. When no year is given the current active term's year is
// used; with no active terms the breakdown is omitted.
func (s *DashboardService) GetDashboardStats(ctx context.Context, academicYear string) (*DashboardStats, error) {
	stats := &DashboardStats{}

	if academicYear == "" {
		year, err := s.currentAcademicYear(ctx)
		if err != nil {
			return nil, err
		}
		academicYear = year
	}

	schoolTotals, err := s.dashboardRepo.SchoolFeeTotals(ctx)
	if err != nil {
		return nil, err
	}
	stats.SchoolFees = summarize(schoolTotals)

	feedingTotals, err := s.dashboardRepo.FeedingFeeTotals(ctx)
	if err != nil {
		return nil, err
	}
	stats.FeedingFees = summarize(feedingTotals)

	if academicYear != "" {
		terms, err := s.dashboardRepo.CollectionByTerm(ctx, academicYear)
		if err != nil {
			return nil, err
		}
		for _, t := range terms {
			stats.ByTerm = append(stats.ByTerm, TermSummary{
				AcademicYear:   t.AcademicYear,
				Term:           t.Term,
				TotalBilled:    float64(t.Billed) / 100,
				TotalCollected: float64(t.Collected) / 100,
				CollectionRate: collectionRate(t.Billed, t.Collected),
			})
		}
	}

	return stats, nil
}

// currentAcademicYear picks the most recent active term's year. ActiveTerms
// sorts by year descending, so the first entry is the current one.
func (s *DashboardService) currentAcademicYear(ctx context.Context) (string, error) {
	terms, err := s.calendar.ActiveTerms(ctx)
	if err != nil {
		return "", err
	}
	if len(terms) == 0 {
		return "", nil
	}
	return terms[0].AcademicYear, nil
}

func summarize(totals *repository.CollectionTotals) CollectionSummary {
	outstanding := totals.Billed - totals.Collected
	if outstanding < 0 {
		outstanding = 0 // overpayment does not create negative debt
	}
	return CollectionSummary{
		TotalBilled:    float64(totals.Billed) / 100,
		TotalCollected: float64(totals.Collected) / 100,
		Outstanding:    float64(outstanding) / 100,
		CollectionRate: collectionRate(totals.Billed, totals.Collected),
		Records:        totals.Records,
	}
}

func collectionRate(billed, collected int64) float64 {
	if billed == 0 {
		return 0
	}
	rate := float64(collected) / float64(billed) * 100
	if rate > 100 {
		rate = 100
	}
	return rate
}
