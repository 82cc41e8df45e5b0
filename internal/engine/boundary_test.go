package engine

import (
	"testing"
	"time"
)

func TestLogicalDateGraceWindow(t *testing.T) {
	grace := DefaultGraceWindow
	loc := time.UTC

	// 01:00 is within the grace window: still yesterday's ledger.
	at := time.Date(2026, 3, 10, 1, 0, 0, 0, loc)
	if got := LogicalDate(at, grace); got != "2026-03-09" {
		t.Fatalf("LogicalDate(01:00)=%q, want 2026-03-09", got)
	}

	// 02:29:59 is the last instant inside the window.
	at = time.Date(2026, 3, 10, 2, 29, 59, 0, loc)
	if got := LogicalDate(at, grace); got != "2026-03-09" {
		t.Fatalf("LogicalDate(02:29:59)=%q, want 2026-03-09", got)
	}

	// 02:30 exactly belongs to the new day.
	at = time.Date(2026, 3, 10, 2, 30, 0, 0, loc)
	if got := LogicalDate(at, grace); got != "2026-03-10" {
		t.Fatalf("LogicalDate(02:30)=%q, want 2026-03-10", got)
	}

	// Midnight itself is inside the window.
	at = time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
	if got := LogicalDate(at, grace); got != "2026-03-09" {
		t.Fatalf("LogicalDate(00:00)=%q, want 2026-03-09", got)
	}

	// Ordinary evening hours map to the same day.
	at = time.Date(2026, 3, 10, 22, 45, 0, 0, loc)
	if got := LogicalDate(at, grace); got != "2026-03-10" {
		t.Fatalf("LogicalDate(22:45)=%q, want 2026-03-10", got)
	}
}

func TestLogicalDateZeroGrace(t *testing.T) {
	at := time.Date(2026, 3, 10, 0, 0, 1, 0, time.UTC)
	if got := LogicalDate(at, 0); got != "2026-03-10" {
		t.Fatalf("LogicalDate with zero grace=%q, want 2026-03-10", got)
	}
}

func TestLogicalDateAcrossMonthBoundary(t *testing.T) {
	at := time.Date(2026, 3, 1, 1, 15, 0, 0, time.UTC)
	if got := LogicalDate(at, DefaultGraceWindow); got != "2026-02-28" {
		t.Fatalf("LogicalDate(Mar 1, 01:15)=%q, want 2026-02-28", got)
	}
}

func TestEndOfDay(t *testing.T) {
	at := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	end := EndOfDay(at)
	if end.Format(DateKeyFormat) != "2026-03-10" {
		t.Fatalf("EndOfDay date=%q, want 2026-03-10", end.Format(DateKeyFormat))
	}
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Fatalf("EndOfDay time=%v, want 23:59:59", end)
	}
}

func TestDayBounds(t *testing.T) {
	start, end, err := DayBounds("2026-03-10", time.UTC)
	if err != nil {
		t.Fatalf("DayBounds: %v", err)
	}
	if !end.Equal(start.AddDate(0, 0, 1)) {
		t.Fatalf("end=%v, want start+1d", end)
	}
	if start.Format(DateKeyFormat) != "2026-03-10" {
		t.Fatalf("start=%v, want 2026-03-10", start)
	}

	if _, _, err := DayBounds("10/03/2026", time.UTC); err == nil {
		t.Fatalf("expected error for locale-formatted date key")
	}
}
