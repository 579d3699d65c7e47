package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIssuanceReportOutcome(t *testing.T) {
	empty := &IssuanceReport{}
	assert.Equal(t, IssuanceOutcomeNotIssued, empty.Outcome())

	clean := &IssuanceReport{}
	clean.AddClass(ClassIssuance{Created: 10})
	clean.AddClass(ClassIssuance{Created: 3, Unchanged: 7})
	assert.Equal(t, IssuanceOutcomeIssued, clean.Outcome())
	assert.Equal(t, 13, clean.TotalWritten())

	partial := &IssuanceReport{}
	partial.AddClass(ClassIssuance{Created: 9, Failed: 1})
	assert.Equal(t, IssuanceOutcomePartial, partial.Outcome())
	assert.Equal(t, 1, partial.TotalFailed())
}

func TestFeeComponents(t *testing.T) {
	c := FeeComponents{Tuition: 80000, Library: 5000, Sports: 15000}
	assert.Equal(t, int64(100000), c.Total())
	assert.False(t, c.HasNegative())

	c.Transport = -1
	assert.True(t, c.HasNegative())
}

func TestFeedingFeeRateProration(t *testing.T) {
	rate := FeedingFeeRate{
		DailyRate:   500,
		IssuedDates: []string{"2026-01-12", "2026-01-13", "2026-01-14"},
	}
	assert.Equal(t, 3, rate.DayCount())
	assert.Equal(t, int64(1500), rate.AmountDue())
	assert.Equal(t, "2026-01-14", rate.LastIssuedDate().Format("2006-01-02"))
}
