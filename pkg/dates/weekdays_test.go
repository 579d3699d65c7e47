package dates

import (
	"testing"
	"time"

	"github.com/sekyere/schoolfees-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekdaysSingleWeek(t *testing.T) {
	// Monday June 3 through Sunday June 9, 2024.
	days, err := Weekdays(day(2024, time.June, 3), day(2024, time.June, 9))
	require.NoError(t, err)

	require.Len(t, days, 5)
	assert.Equal(t, day(2024, time.June, 3), days[0])
	assert.Equal(t, day(2024, time.June, 7), days[4])
	for _, d := range days {
		assert.NotEqual(t, time.Saturday, d.Weekday())
		assert.NotEqual(t, time.Sunday, d.Weekday())
	}
}

func TestWeekdaysInclusiveBounds(t *testing.T) {
	// A single weekday range counts that day.
	days, err := Weekdays(day(2024, time.June, 5), day(2024, time.June, 5))
	require.NoError(t, err)
	assert.Len(t, days, 1)
}

func TestWeekdaysWeekendOnlyRangeIsEmpty(t *testing.T) {
	days, err := Weekdays(day(2024, time.June, 8), day(2024, time.June, 9))
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestWeekdaysReversedRange(t *testing.T) {
	_, err := Weekdays(day(2024, time.June, 9), day(2024, time.June, 3))
	assert.ErrorIs(t, err, apperror.ErrInvalidDateRange)
}

func TestWeekdaysIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, time.June, 3, 23, 45, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 3, 1, 0, 0, 0, time.UTC)

	days, err := Weekdays(start, end)
	require.NoError(t, err)
	assert.Len(t, days, 1)
}

func TestCountWeekdaysAcrossMonth(t *testing.T) {
	// January 2024 starts on a Monday and has 23 weekdays.
	count, err := CountWeekdays(day(2024, time.January, 1), day(2024, time.January, 31))
	require.NoError(t, err)
	assert.Equal(t, 23, count)
}

func TestFormatISO(t *testing.T) {
	days, err := Weekdays(day(2024, time.June, 3), day(2024, time.June, 4))
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-06-03", "2024-06-04"}, FormatISO(days))
}
