package core

// ResolveCurrentPeriodRange resolves the budgeting window containing
// date for the given cycle type. Biweekly resolution tiles from the
// anchor date, falling back to date itself when no anchor is configured.
func ResolveCurrentPeriodRange(cycle CycleType, date DateString, biweeklyAnchor DateString) DateRange {
	if cycle == CycleBiweekly {
		anchor := biweeklyAnchor
		if anchor == "" {
			anchor = date
		}
		return BiweeklyRangeForDate(anchor, date)
	}
	return MonthRange(date)
}

// CreateNextPeriodRange computes the window that follows current.
func CreateNextPeriodRange(cycle CycleType, current DateRange, biweeklyAnchor DateString) DateRange {
	return NextPeriodRange(cycle, current, biweeklyAnchor)
}

// IsDateInPeriod reports whether d falls inside the period's range.
func IsDateInPeriod(d DateString, p Period) bool {
	return IsDateWithinRange(d, p.Range())
}

// DayAfterPeriod returns the first date after the period ends.
func DayAfterPeriod(p Period) DateString {
	return AddDays(p.EndDate, 1)
}
