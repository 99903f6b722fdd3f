package sla

import (
	"testing"
	"time"
)

// testSchedule mirrors the production default calendar: Mon-Thu 07:00-17:00,
// Fri 07:00-16:00, Sat 08:00-13:00, Sun closed.
func testSchedule(t *testing.T) *WeeklySchedule {
	t.Helper()
	ws, err := NewWeeklySchedule(map[time.Weekday][]ClockInterval{
		time.Monday:    {{Start: 7 * 60, End: 17 * 60}},
		time.Tuesday:   {{Start: 7 * 60, End: 17 * 60}},
		time.Wednesday: {{Start: 7 * 60, End: 17 * 60}},
		time.Thursday:  {{Start: 7 * 60, End: 17 * 60}},
		time.Friday:    {{Start: 7 * 60, End: 16 * 60}},
		time.Saturday:  {{Start: 8 * 60, End: 13 * 60}},
	})
	if err != nil {
		t.Fatalf("NewWeeklySchedule: %v", err)
	}
	return ws
}

// 2024-01-08 is a Monday.
func instant(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func TestBusinessHoursBetween(t *testing.T) {
	ws := testSchedule(t)

	tests := []struct {
		name  string
		start string
		end   string
		want  float64
	}{
		{"full monday window", "2024-01-08 07:00", "2024-01-08 17:00", 10.0},
		{"monday into tuesday counts only monday window", "2024-01-08 07:00", "2024-01-09 07:00", 10.0},
		{"closed sunday contributes nothing", "2024-01-06 12:00", "2024-01-08 08:00", 2.0},
		{"before opening clamps to window start", "2024-01-08 05:00", "2024-01-08 09:00", 2.0},
		{"after closing contributes nothing", "2024-01-08 17:30", "2024-01-08 19:00", 0.0},
		{"friday shorter window", "2024-01-12 07:00", "2024-01-12 17:00", 9.0},
		{"full week", "2024-01-08 00:00", "2024-01-15 00:00", 54.0},
		{"partial hour", "2024-01-08 07:00", "2024-01-08 07:30", 0.5},
		{"end equals start", "2024-01-08 09:00", "2024-01-08 09:00", 0.0},
		{"end before start", "2024-01-08 12:00", "2024-01-08 09:00", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ws.BusinessHoursBetween(instant(t, tt.start), instant(t, tt.end))
			if got != tt.want {
				t.Errorf("BusinessHoursBetween(%s, %s) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestBusinessHoursBetweenZeroInstants(t *testing.T) {
	ws := testSchedule(t)
	now := instant(t, "2024-01-08 12:00")

	if got := ws.BusinessHoursBetween(time.Time{}, now); got != 0.0 {
		t.Errorf("zero start: got %v, want 0.0", got)
	}
	if got := ws.BusinessHoursBetween(now, time.Time{}); got != 0.0 {
		t.Errorf("zero end: got %v, want 0.0", got)
	}
}

func TestBusinessHoursBetweenLongSpan(t *testing.T) {
	ws := testSchedule(t)

	// Two full years: well past the informal day cap older implementations
	// used; the computed bound must not truncate the result.
	start := instant(t, "2024-01-08 00:00")
	end := start.AddDate(2, 0, 0)
	got := ws.BusinessHoursBetween(start, end)
	if got < 5000.0 {
		t.Errorf("two-year span = %v hours, expected thousands", got)
	}
}

func TestNewWeeklyScheduleValidation(t *testing.T) {
	tests := []struct {
		name      string
		intervals []ClockInterval
	}{
		{"overlapping", []ClockInterval{{Start: 7 * 60, End: 12 * 60}, {Start: 11 * 60, End: 17 * 60}}},
		{"inverted", []ClockInterval{{Start: 17 * 60, End: 7 * 60}}},
		{"zero width", []ClockInterval{{Start: 9 * 60, End: 9 * 60}}},
		{"past midnight", []ClockInterval{{Start: 23 * 60, End: 25 * 60}}},
		{"negative", []ClockInterval{{Start: -60, End: 9 * 60}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWeeklySchedule(map[time.Weekday][]ClockInterval{time.Monday: tt.intervals})
			if err == nil {
				t.Errorf("expected validation error for %v", tt.intervals)
			}
		})
	}
}

func TestNewWeeklyScheduleSortsIntervals(t *testing.T) {
	ws, err := NewWeeklySchedule(map[time.Weekday][]ClockInterval{
		time.Monday: {{Start: 14 * 60, End: 17 * 60}, {Start: 7 * 60, End: 12 * 60}},
	})
	if err != nil {
		t.Fatalf("NewWeeklySchedule: %v", err)
	}
	intervals := ws.Intervals(time.Monday)
	if len(intervals) != 2 || intervals[0].Start != 7*60 {
		t.Errorf("intervals not sorted: %v", intervals)
	}
	// Split-day schedule: morning plus afternoon across lunch.
	got := ws.BusinessHoursBetween(instant(t, "2024-01-08 07:00"), instant(t, "2024-01-08 17:00"))
	if got != 8.0 {
		t.Errorf("split day = %v, want 8.0", got)
	}
}

func TestParseClockInterval(t *testing.T) {
	iv, err := ParseClockInterval("07:00-17:00")
	if err != nil {
		t.Fatalf("ParseClockInterval: %v", err)
	}
	if iv.Start != 7*60 || iv.End != 17*60 {
		t.Errorf("got %+v", iv)
	}

	for _, bad := range []string{"", "07:00", "7am-5pm", "07:00/17:00"} {
		if _, err := ParseClockInterval(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
