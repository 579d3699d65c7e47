package service

import (
	"context"
	"testing"

	"github.com/sekyere/schoolfees-api/internal/domain/entity"
	"github.com/sekyere/schoolfees-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDashboardRepo struct {
	school  repository.CollectionTotals
	feeding repository.CollectionTotals
	byTerm  []repository.TermCollection

	byTermYear string // records the year the service asked for
}

func (r *fakeDashboardRepo) SchoolFeeTotals(ctx context.Context) (*repository.CollectionTotals, error) {
	totals := r.school
	return &totals, nil
}

func (r *fakeDashboardRepo) FeedingFeeTotals(ctx context.Context) (*repository.CollectionTotals, error) {
	totals := r.feeding
	return &totals, nil
}

func (r *fakeDashboardRepo) CollectionByTerm(ctx context.Context, year string) ([]repository.TermCollection, error) {
	r.byTermYear = year
	return r.byTerm, nil
}

func newDashboardFixture(repo *fakeDashboardRepo, terms ...entity.AcademicTerm) *DashboardService {
	return NewDashboardService(repo, &fakeCalendar{terms: terms})
}

func TestGetDashboardStats(t *testing.T) {
	svc := newDashboardFixture(&fakeDashboardRepo{
		school:  repository.CollectionTotals{Billed: 1000000, Collected: 750000, Records: 40},
		feeding: repository.CollectionTotals{Billed: 200000, Collected: 200000, Records: 40},
	})

	stats, err := svc.GetDashboardStats(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 10000.0, stats.SchoolFees.TotalBilled)
	assert.Equal(t, 7500.0, stats.SchoolFees.TotalCollected)
	assert.Equal(t, 2500.0, stats.SchoolFees.Outstanding)
	assert.Equal(t, 75.0, stats.SchoolFees.CollectionRate)
	assert.Equal(t, int64(40), stats.SchoolFees.Records)
	assert.Empty(t, stats.ByTerm)
}

func TestGetDashboardStatsOverpaymentClamps(t *testing.T) {
	svc := newDashboardFixture(&fakeDashboardRepo{
		school: repository.CollectionTotals{Billed: 100000, Collected: 120000, Records: 2},
	})

	stats, err := svc.GetDashboardStats(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 0.0, stats.SchoolFees.Outstanding)
	assert.Equal(t, 100.0, stats.SchoolFees.CollectionRate)
}

func TestGetDashboardStatsByTerm(t *testing.T) {
	svc := newDashboardFixture(&fakeDashboardRepo{
		byTerm: []repository.TermCollection{
			{AcademicYear: "2026/2027", Term: 1, Billed: 500000, Collected: 250000},
			{AcademicYear: "2026/2027", Term: 2, Billed: 500000, Collected: 0},
		},
	})

	stats, err := svc.GetDashboardStats(context.Background(), "2026/2027")
	require.NoError(t, err)

	require.Len(t, stats.ByTerm, 2)
	assert.Equal(t, 50.0, stats.ByTerm[0].CollectionRate)
	assert.Equal(t, 0.0, stats.ByTerm[1].CollectionRate)
}

func TestGetDashboardStatsDefaultsToActiveTermYear(t *testing.T) {
	repo := &fakeDashboardRepo{
		byTerm: []repository.TermCollection{
			{AcademicYear: "2026/2027", Term: 1, Billed: 500000, Collected: 250000},
		},
	}
	svc := newDashboardFixture(repo,
		entity.AcademicTerm{AcademicYear: "2025/2026", Term: 3, IsActive: false},
		entity.AcademicTerm{AcademicYear: "2026/2027", Term: 1, IsActive: true},
	)

	stats, err := svc.GetDashboardStats(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "2026/2027", repo.byTermYear)
	require.Len(t, stats.ByTerm, 1)
	assert.Equal(t, 50.0, stats.ByTerm[0].CollectionRate)
}
