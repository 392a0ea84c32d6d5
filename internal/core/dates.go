package core

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// DateRange is an inclusive span of calendar dates.
type DateRange struct {
	StartDate DateString
	EndDate   DateString
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar date.
// Parsing in UTC avoids local-timezone drift around midnight.
func ParseDate(d DateString) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, string(d), time.UTC)
	if err != nil {
		return time.Time{}, Validationf("invalid date %q, expected YYYY-MM-DD", d)
	}
	return t, nil
}

// FormatDate renders a time as a YYYY-MM-DD date string.
func FormatDate(t time.Time) DateString {
	return DateString(t.UTC().Format(dateLayout))
}

// Validate checks that the date string is a real YYYY-MM-DD calendar date.
func (d DateString) Validate() error {
	_, err := ParseDate(d)
	return err
}

// mustDate parses a date string that higher layers have already
// validated. Invalid input maps to the zero time.
func mustDate(d DateString) time.Time {
	t, _ := time.ParseInLocation(dateLayout, string(d), time.UTC)
	return t
}

// CompareDateStrings orders two date strings. The zero-padded format
// makes the lexicographic comparison agree with calendar order.
func CompareDateStrings(a, b DateString) int {
	return strings.Compare(string(a), string(b))
}

// AddDays returns the date n days after d; n may be negative.
func AddDays(d DateString, n int) DateString {
	return FormatDate(mustDate(d).AddDate(0, 0, n))
}

// DaysBetween returns the signed number of days from a to b.
func DaysBetween(a, b DateString) int {
	return int(mustDate(b).Sub(mustDate(a)).Hours() / 24)
}

// CountDaysInclusive counts the days from start through end, both
// endpoints included. Returns 0 when end precedes start.
func CountDaysInclusive(start, end DateString) int {
	if CompareDateStrings(end, start) < 0 {
		return 0
	}
	return DaysBetween(start, end) + 1
}

// IsDateWithinRange reports whether d falls inside r, inclusive.
func IsDateWithinRange(d DateString, r DateRange) bool {
	return CompareDateStrings(d, r.StartDate) >= 0 && CompareDateStrings(d, r.EndDate) <= 0
}

// IntersectRanges returns the overlap of two ranges. ok is false when
// they do not overlap.
func IntersectRanges(a, b DateRange) (DateRange, bool) {
	start := a.StartDate
	if CompareDateStrings(b.StartDate, start) > 0 {
		start = b.StartDate
	}
	end := a.EndDate
	if CompareDateStrings(b.EndDate, end) < 0 {
		end = b.EndDate
	}
	if CompareDateStrings(start, end) > 0 {
		return DateRange{}, false
	}
	return DateRange{StartDate: start, EndDate: end}, true
}

// WeekRange returns the 7-day window containing d whose start weekday is
// weekStart (0=Sunday..6=Saturday).
func WeekRange(d DateString, weekStart int) DateRange {
	t := mustDate(d)
	back := (int(t.Weekday()) - weekStart + 7) % 7
	start := t.AddDate(0, 0, -back)
	return DateRange{
		StartDate: FormatDate(start),
		EndDate:   FormatDate(start.AddDate(0, 0, 6)),
	}
}

// MonthRange returns the calendar-month boundaries of the month
// containing d, handling 28/29/30/31-day months.
func MonthRange(d DateString) DateRange {
	t := mustDate(d)
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return DateRange{StartDate: FormatDate(first), EndDate: FormatDate(last)}
}

// BiweeklyRangeForDate returns the 14-day window containing d, tiled
// from anchor. Dates before the anchor land in negative-index tiles.
func BiweeklyRangeForDate(anchor, d DateString) DateRange {
	idx := floorDiv(DaysBetween(anchor, d), 14)
	start := AddDays(anchor, idx*14)
	return DateRange{StartDate: start, EndDate: AddDays(start, 13)}
}

// WeekRangesOverlappingRange lists, in chronological order, every week
// window that intersects the given range. The first and last windows may
// extend past the range's edges.
func WeekRangesOverlappingRange(r DateRange, weekStart int) []DateRange {
	if CompareDateStrings(r.StartDate, r.EndDate) > 0 {
		return nil
	}
	var weeks []DateRange
	week := WeekRange(r.StartDate, weekStart)
	for CompareDateStrings(week.StartDate, r.EndDate) <= 0 {
		weeks = append(weeks, week)
		next := AddDays(week.StartDate, 7)
		week = DateRange{StartDate: next, EndDate: AddDays(next, 6)}
	}
	return weeks
}

// NextPeriodRange computes the period range following current. Monthly
// cycles advance to the calendar month after current's end date;
// biweekly cycles advance to the next 14-day tile, anchored to
// biweeklyAnchor or, when empty, to current's start date.
func NextPeriodRange(cycle CycleType, current DateRange, biweeklyAnchor DateString) DateRange {
	if cycle == CycleBiweekly {
		anchor := biweeklyAnchor
		if anchor == "" {
			anchor = current.StartDate
		}
		tile := BiweeklyRangeForDate(anchor, current.EndDate)
		start := AddDays(tile.StartDate, 14)
		return DateRange{StartDate: start, EndDate: AddDays(start, 13)}
	}
	t := mustDate(current.EndDate)
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return MonthRange(FormatDate(first))
}

// floorDiv divides rounding toward negative infinity, unlike Go's
// truncated integer division.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
