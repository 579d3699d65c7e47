package dates

import (
	"time"

	"github.com/sekyere/schoolfees-api/pkg/apperror"
)

// ISODate is the wire format used for issued feeding-fee dates.
const ISODate = "2006-01-02"

// Weekdays returns every Monday-to-Friday calendar day in [start, end],
// inclusive, in ascending order. An empty result is valid; the caller decides
// whether that is an error for its use case.
func Weekdays(start, end time.Time) ([]time.Time, error) {
	start = truncateToDay(start)
	end = truncateToDay(end)

	if start.After(end) {
		return nil, apperror.ErrInvalidDateRange
	}

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
			continue
		default:
			days = append(days, d)
		}
	}
	return days, nil
}

// CountWeekdays returns the number of billable weekdays in [start, end].
func CountWeekdays(start, end time.Time) (int, error) {
	days, err := Weekdays(start, end)
	if err != nil {
		return 0, err
	}
	return len(days), nil
}

// FormatISO renders a day sequence as ISO date strings for persistence.
func FormatISO(days []time.Time) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.Format(ISODate)
	}
	return out
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
