package core

import "testing"

func TestCountDaysInclusive(t *testing.T) {
	tests := []struct {
		name  string
		start DateString
		end   DateString
		want  int
	}{
		{"same day", "2026-03-10", "2026-03-10", 1},
		{"simple span", "2026-03-01", "2026-03-07", 7},
		{"end before start", "2026-03-10", "2026-03-09", 0},
		{"across month boundary", "2026-01-30", "2026-02-02", 4},
		{"across leap day", "2024-02-28", "2024-03-01", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountDaysInclusive(tt.start, tt.end); got != tt.want {
				t.Errorf("CountDaysInclusive(%s, %s) = %d, want %d", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestMonthRangeLengths(t *testing.T) {
	tests := []struct {
		name string
		date DateString
		days int
	}{
		{"non-leap february", "2026-02-10", 28},
		{"leap february", "2024-02-10", 29},
		{"april", "2026-04-15", 30},
		{"june", "2026-06-01", 30},
		{"september", "2026-09-30", 30},
		{"november", "2026-11-11", 30},
		{"january", "2026-01-31", 31},
		{"december", "2026-12-01", 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := MonthRange(tt.date)
			if got := CountDaysInclusive(r.StartDate, r.EndDate); got != tt.days {
				t.Errorf("MonthRange(%s) spans %d days, want %d", tt.date, got, tt.days)
			}
			if !IsDateWithinRange(tt.date, r) {
				t.Errorf("MonthRange(%s) = %v does not contain the input date", tt.date, r)
			}
		})
	}
}

func TestWeekRange(t *testing.T) {
	tests := []struct {
		name      string
		date      DateString
		weekStart int
		want      DateRange
	}{
		{"monday start, mid-week", "2026-04-16", 1, DateRange{"2026-04-13", "2026-04-19"}},
		{"monday start, on monday", "2026-04-13", 1, DateRange{"2026-04-13", "2026-04-19"}},
		{"sunday start", "2026-04-16", 0, DateRange{"2026-04-12", "2026-04-18"}},
		{"saturday start", "2026-04-16", 6, DateRange{"2026-04-11", "2026-04-17"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekRange(tt.date, tt.weekStart); got != tt.want {
				t.Errorf("WeekRange(%s, %d) = %v, want %v", tt.date, tt.weekStart, got, tt.want)
			}
		})
	}
}

func TestBiweeklyRangeForDate(t *testing.T) {
	anchor := DateString("2026-01-15")
	tests := []struct {
		name      string
		date      DateString
		wantStart DateString
	}{
		{"on the anchor", "2026-01-15", "2026-01-15"},
		{"last day of tile zero", "2026-01-28", "2026-01-15"},
		{"exactly one tile forward", "2026-01-29", "2026-01-29"},
		{"two tiles forward", "2026-02-12", "2026-02-12"},
		{"day before anchor", "2026-01-14", "2026-01-01"},
		{"exactly one tile back", "2026-01-01", "2026-01-01"},
		{"two tiles back", "2025-12-31", "2025-12-18"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := BiweeklyRangeForDate(anchor, tt.date)
			if r.StartDate != tt.wantStart {
				t.Errorf("BiweeklyRangeForDate(%s, %s).StartDate = %s, want %s", anchor, tt.date, r.StartDate, tt.wantStart)
			}
			if got := CountDaysInclusive(r.StartDate, r.EndDate); got != 14 {
				t.Errorf("tile length = %d days, want 14", got)
			}
			if !IsDateWithinRange(tt.date, r) {
				t.Errorf("tile %v does not contain %s", r, tt.date)
			}
		})
	}
}

func TestWeekRangesOverlappingRange(t *testing.T) {
	// February 2026 starts on a Sunday and has 28 days. With Monday
	// weeks that gives five overlapping windows, the first and last
	// partially outside the month.
	feb := DateRange{StartDate: "2026-02-01", EndDate: "2026-02-28"}
	weeks := WeekRangesOverlappingRange(feb, 1)
	if len(weeks) != 5 {
		t.Fatalf("got %d week windows, want 5: %v", len(weeks), weeks)
	}
	if weeks[0].StartDate != "2026-01-26" {
		t.Errorf("first window starts %s, want 2026-01-26", weeks[0].StartDate)
	}
	if weeks[4].EndDate != "2026-03-01" {
		t.Errorf("last window ends %s, want 2026-03-01", weeks[4].EndDate)
	}
	for i := 1; i < len(weeks); i++ {
		if AddDays(weeks[i-1].StartDate, 7) != weeks[i].StartDate {
			t.Errorf("windows not chronological at index %d: %v", i, weeks)
		}
	}
}

func TestIntersectRanges(t *testing.T) {
	tests := []struct {
		name   string
		a, b   DateRange
		want   DateRange
		wantOK bool
	}{
		{
			"partial overlap",
			DateRange{"2026-04-01", "2026-04-15"},
			DateRange{"2026-04-10", "2026-04-30"},
			DateRange{"2026-04-10", "2026-04-15"},
			true,
		},
		{
			"contained",
			DateRange{"2026-04-01", "2026-04-30"},
			DateRange{"2026-04-10", "2026-04-12"},
			DateRange{"2026-04-10", "2026-04-12"},
			true,
		},
		{
			"disjoint",
			DateRange{"2026-04-01", "2026-04-10"},
			DateRange{"2026-04-11", "2026-04-20"},
			DateRange{},
			false,
		},
		{
			"single shared day",
			DateRange{"2026-04-01", "2026-04-10"},
			DateRange{"2026-04-10", "2026-04-20"},
			DateRange{"2026-04-10", "2026-04-10"},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := IntersectRanges(tt.a, tt.b)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("IntersectRanges(%v, %v) = %v, %v; want %v, %v", tt.a, tt.b, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNextPeriodRange(t *testing.T) {
	tests := []struct {
		name    string
		cycle   CycleType
		current DateRange
		anchor  DateString
		want    DateRange
	}{
		{
			"monthly april to may",
			CycleMonthly,
			DateRange{"2026-04-01", "2026-04-30"},
			"",
			DateRange{"2026-05-01", "2026-05-31"},
		},
		{
			"monthly across year end",
			CycleMonthly,
			DateRange{"2025-12-01", "2025-12-31"},
			"",
			DateRange{"2026-01-01", "2026-01-31"},
		},
		{
			"biweekly without anchor tiles from period start",
			CycleBiweekly,
			DateRange{"2026-01-01", "2026-01-14"},
			"",
			DateRange{"2026-01-15", "2026-01-28"},
		},
		{
			"biweekly with explicit anchor",
			CycleBiweekly,
			DateRange{"2026-01-15", "2026-01-28"},
			"2026-01-01",
			DateRange{"2026-01-29", "2026-02-11"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextPeriodRange(tt.cycle, tt.current, tt.anchor); got != tt.want {
				t.Errorf("NextPeriodRange(%s, %v, %q) = %v, want %v", tt.cycle, tt.current, tt.anchor, got, tt.want)
			}
		})
	}
}

func TestAddDaysAndCompare(t *testing.T) {
	if got := AddDays("2026-02-28", 1); got != "2026-03-01" {
		t.Errorf("AddDays(2026-02-28, 1) = %s, want 2026-03-01", got)
	}
	if got := AddDays("2026-03-01", -1); got != "2026-02-28" {
		t.Errorf("AddDays(2026-03-01, -1) = %s, want 2026-02-28", got)
	}
	if CompareDateStrings("2026-02-09", "2026-02-10") >= 0 {
		t.Error("2026-02-09 should sort before 2026-02-10")
	}
	if CompareDateStrings("2026-02-10", "2026-02-10") != 0 {
		t.Error("equal dates should compare equal")
	}
}

func TestParseDateRejectsBadInput(t *testing.T) {
	for _, bad := range []DateString{"", "2026-2-1", "20260201", "2026-13-01", "2026-02-30", "not a date"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) expected error", bad)
		}
	}
}
