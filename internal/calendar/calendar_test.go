package calendar

import (
	"testing"
	"time"
)

func TestParseYearMonth(t *testing.T) {
	tests := []struct {
		in      string
		want    YearMonth
		wantErr bool
	}{
		{in: "2024-02", want: YearMonth{2024, time.February}},
		{in: "1999-12", want: YearMonth{1999, time.December}},
		{in: "2024-13", wantErr: true},
		{in: "2024/02", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseYearMonth(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseYearMonth(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseYearMonth(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMonthGridLayout(t *testing.T) {
	tests := []struct {
		month  YearMonth
		blanks int
		days   int
	}{
		{YearMonth{2024, time.January}, 0, 31},   // Monday
		{YearMonth{2024, time.February}, 3, 29},  // Thursday, leap year
		{YearMonth{2023, time.February}, 2, 28},  // Wednesday
		{YearMonth{2024, time.September}, 6, 30}, // Sunday
		{YearMonth{2025, time.June}, 6, 30},      // Sunday
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			g := MonthGrid(tt.month, nil)
			if g.LeadingBlanks != tt.blanks {
				t.Errorf("LeadingBlanks = %d, want %d", g.LeadingBlanks, tt.blanks)
			}
			if len(g.Days) != tt.days {
				t.Errorf("len(Days) = %d, want %d", len(g.Days), tt.days)
			}
			if g.Month != tt.month.String() {
				t.Errorf("Month = %q", g.Month)
			}
		})
	}
}

func TestMonthGridActivity(t *testing.T) {
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	timestamps := []time.Time{
		time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 4, 18, 0, 0, 0, time.UTC),
		// 23:30 UTC on the 9th is already the 10th in Warsaw
		time.Date(2024, 3, 9, 23, 30, 0, 0, time.UTC),
		time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC),
	}
	activity := ActivityDates(timestamps, warsaw)
	if len(activity) != 3 {
		t.Fatalf("len(ActivityDates) = %d, want 3", len(activity))
	}

	g := MonthGrid(YearMonth{2024, time.March}, activity)
	for _, d := range g.Days {
		want := d.Day == 4 || d.Day == 10
		if d.Active != want {
			t.Errorf("day %d active = %v, want %v", d.Day, d.Active, want)
		}
	}
}
