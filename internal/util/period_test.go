package util

import (
	"testing"
	"time"
)

func TestReportWindow_FullYear(t *testing.T) {
	start, end := ReportWindow(2025, nil)

	if start.Year() != 2025 || start.Month() != time.January || start.Day() != 1 {
		t.Errorf("Expected start 2025-01-01, got %v", start)
	}
	if end.Year() != 2025 || end.Month() != time.December || end.Day() != 31 {
		t.Errorf("Expected end 2025-12-31, got %v", end)
	}
}

func TestReportWindow_SingleMonth(t *testing.T) {
	month := 2
	start, end := ReportWindow(2024, &month)

	if start.Month() != time.February || start.Day() != 1 {
		t.Errorf("Expected start Feb 1, got %v", start)
	}
	// 2024 is a leap year
	if end.Month() != time.February || end.Day() != 29 {
		t.Errorf("Expected end Feb 29, got %v", end)
	}
}

func TestReportWindow_December(t *testing.T) {
	month := 12
	start, end := ReportWindow(2025, &month)

	if start.Month() != time.December || start.Day() != 1 {
		t.Errorf("Expected start Dec 1, got %v", start)
	}
	if end.Year() != 2025 || end.Month() != time.December || end.Day() != 31 {
		t.Errorf("Expected end 2025-12-31, got %v", end)
	}
}

func TestMonthWindow(t *testing.T) {
	start, end := MonthWindow(2025, time.April)

	if start.Day() != 1 || start.Month() != time.April {
		t.Errorf("Expected start Apr 1, got %v", start)
	}
	if end.Day() != 30 || end.Month() != time.April {
		t.Errorf("Expected end Apr 30, got %v", end)
	}
	if !end.After(start) {
		t.Error("Expected end after start")
	}
}
