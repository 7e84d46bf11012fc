package util

import "time"

// ReportWindow returns the inclusive [start, end] window for a report:
// the full calendar year, or a single month (1-12) when month is non-nil.
func ReportWindow(year int, month *int) (time.Time, time.Time) {
	if month != nil {
		start := time.Date(year, time.Month(*month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
		return start, end
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
	return start, end
}

// MonthWindow returns the inclusive [start, end] window for one month.
func MonthWindow(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
}
