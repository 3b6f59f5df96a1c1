// Package calendar lays out the Monday-first practice calendar.
package calendar

import (
	"errors"
	"time"
)

var ErrInvalidMonth = errors.New("month must be in YYYY-MM format")

// YearMonth identifies a calendar month
type YearMonth struct {
	Year  int
	Month time.Month
}

// ParseYearMonth parses "YYYY-MM"
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, ErrInvalidMonth
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

// Of returns the month containing t
func Of(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

func (ym YearMonth) String() string {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// Days returns the number of days in the month
func (ym YearMonth) Days() int {
	return time.Date(ym.Year, ym.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Date is a local calendar date without time of day
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the date of t in loc
func DateOf(t time.Time, loc *time.Location) Date {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ActivityDates collapses timestamps into the set of local dates they fall on
func ActivityDates(timestamps []time.Time, loc *time.Location) map[Date]bool {
	dates := make(map[Date]bool, len(timestamps))
	for _, ts := range timestamps {
		dates[DateOf(ts, loc)] = true
	}
	return dates
}

// Day is one cell of the month grid
type Day struct {
	Day    int  `json:"day"`
	Active bool `json:"active"`
}

// Grid is a Monday-first month view
type Grid struct {
	Month         string `json:"month"`
	LeadingBlanks int    `json:"leadingBlanks"`
	Days          []Day  `json:"days"`
}

// MonthGrid builds the grid for ym, marking days present in activity
func MonthGrid(ym YearMonth, activity map[Date]bool) Grid {
	first := time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
	n := ym.Days()

	days := make([]Day, n)
	for i := range days {
		d := i + 1
		days[i] = Day{Day: d, Active: activity[Date{Year: ym.Year, Month: ym.Month, Day: d}]}
	}

	return Grid{
		Month:         ym.String(),
		LeadingBlanks: (int(first.Weekday()) + 6) % 7,
		Days:          days,
	}
}
