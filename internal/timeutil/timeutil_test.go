package timeutil

import (
	"testing"
	"time"
)

func TestParseAndFormatDate(t *testing.T) {
	parsed, err := ParseDate("2025-06-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := FormatDate(parsed); got != "2025-06-01" {
		t.Fatalf("expected round-trip, got %s", got)
	}
}

func TestParseDateRejectsBadInput(t *testing.T) {
	if _, err := ParseDate("06/01/2025"); err == nil {
		t.Fatalf("expected error for non-ISO date")
	}
}

func TestDaysBetween(t *testing.T) {
	a, _ := ParseDate("2025-05-16")
	b, _ := ParseDate("2025-06-01")
	if got := DaysBetween(a, b); got != 16 {
		t.Fatalf("expected 16 days, got %d", got)
	}
	if got := DaysBetween(b, a); got != -16 {
		t.Fatalf("expected -16 days, got %d", got)
	}
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2025, 5, 16, 23, 0, 0, 0, time.UTC)
	b := time.Date(2025, 5, 17, 1, 0, 0, 0, time.UTC)
	if got := DaysBetween(a, b); got != 1 {
		t.Fatalf("expected 1 day across midnight, got %d", got)
	}
}
