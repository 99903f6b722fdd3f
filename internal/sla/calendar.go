package sla

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// ClockInterval is one open span within a day, in minutes from midnight.
// The span is half-open: a ticket closed exactly at End accrues no time past it.
type ClockInterval struct {
	Start int
	End   int
}

// ParseClockInterval parses "HH:MM-HH:MM" into a ClockInterval.
func ParseClockInterval(s string) (ClockInterval, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return ClockInterval{}, fmt.Errorf("invalid interval %q: expected HH:MM-HH:MM", s)
	}
	start, err := parseClock(parts[0])
	if err != nil {
		return ClockInterval{}, fmt.Errorf("invalid interval %q: %w", s, err)
	}
	end, err := parseClock(parts[1])
	if err != nil {
		return ClockInterval{}, fmt.Errorf("invalid interval %q: %w", s, err)
	}
	return ClockInterval{Start: start, End: end}, nil
}

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// WeeklySchedule holds the business calendar: the ordered open intervals for
// each weekday. It is immutable after construction and safe for concurrent use.
type WeeklySchedule struct {
	days [7][]ClockInterval
}

// NewWeeklySchedule validates and builds a schedule. Intervals within a day
// must be inside 00:00-24:00, have positive width, and must not overlap; they
// are sorted during construction. A weekday with no intervals is fully closed.
func NewWeeklySchedule(days map[time.Weekday][]ClockInterval) (*WeeklySchedule, error) {
	ws := &WeeklySchedule{}
	for day, intervals := range days {
		if day < time.Sunday || day > time.Saturday {
			return nil, fmt.Errorf("invalid weekday %d", day)
		}
		sorted := append([]ClockInterval(nil), intervals...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
		for i, iv := range sorted {
			if iv.Start < 0 || iv.End > minutesPerDay {
				return nil, fmt.Errorf("%s interval %d outside day bounds", day, i)
			}
			if iv.End <= iv.Start {
				return nil, fmt.Errorf("%s interval %d has non-positive width", day, i)
			}
			if i > 0 && iv.Start < sorted[i-1].End {
				return nil, fmt.Errorf("%s intervals %d and %d overlap", day, i-1, i)
			}
		}
		ws.days[day] = sorted
	}
	return ws, nil
}

// Intervals returns the open intervals for a weekday.
func (s *WeeklySchedule) Intervals(day time.Weekday) []ClockInterval {
	return s.days[day]
}

// BusinessHoursBetween converts the half-open wall-clock interval [start, end)
// into the number of hours that fall inside the schedule's open intervals.
// Zero instants or end <= start yield 0.0. Arithmetic is carried in seconds
// and converted to hours only at the return boundary.
func (s *WeeklySchedule) BusinessHoursBetween(start, end time.Time) float64 {
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return 0.0
	}
	end = end.In(start.Location())

	var totalSeconds float64
	cursor := start
	midnight := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())

	// The loop visits each calendar day the interval touches, so the day
	// span itself bounds iteration even against corrupted inputs.
	maxDays := int(end.Sub(start).Hours()/24) + 2
	for i := 0; i < maxDays; i++ {
		for _, iv := range s.days[midnight.Weekday()] {
			openFrom := midnight.Add(time.Duration(iv.Start) * time.Minute)
			openTo := midnight.Add(time.Duration(iv.End) * time.Minute)

			from := cursor
			if openFrom.After(from) {
				from = openFrom
			}
			to := end
			if openTo.Before(to) {
				to = openTo
			}
			if to.After(from) {
				totalSeconds += to.Sub(from).Seconds()
			}
		}
		midnight = midnight.AddDate(0, 0, 1)
		cursor = midnight
		if !midnight.Before(end) {
			break
		}
	}
	return totalSeconds / 3600.0
}
