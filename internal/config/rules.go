package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/spec-kit/sla-compliance-service/internal/ingest"
	"github.com/spec-kit/sla-compliance-service/internal/sla"
)

// RulesConfig is the static rule surface of the SLA engine: the business
// calendar, the priority deadline table, status keywords, the source clock
// offset and the layout of the input export. It is read once at startup and
// handed to the engine as plain parameters.
type RulesConfig struct {
	OffsetHours          float64             `yaml:"offset_hours"`
	Delimiter            string              `yaml:"delimiter"`
	Schedule             map[string][]string `yaml:"schedule"`
	ResolvedKeywords     []string            `yaml:"resolved_keywords"`
	Deadlines            []DeadlineRule      `yaml:"deadlines"`
	DefaultDeadlineHours float64             `yaml:"default_deadline_hours"`
	Columns              ColumnsConfig       `yaml:"columns"`
}

// DeadlineRule is one ordered entry of the priority lookup.
type DeadlineRule struct {
	Match string  `yaml:"match"`
	Hours float64 `yaml:"hours"`
}

// ColumnsConfig names the required columns of the ticket export.
type ColumnsConfig struct {
	ID       string `yaml:"id"`
	Status   string `yaml:"status"`
	Opened   string `yaml:"opened"`
	Priority string `yaml:"priority"`
	Assignee string `yaml:"assignee"`
	Modified string `yaml:"modified"`
}

// DefaultRules returns the compiled-in rule tables: the source system exports
// UTC timestamps five hours ahead of business-local time, and the calendar
// runs Mon-Thu 07:00-17:00, Fri to 16:00, Sat 08:00-13:00, closed Sunday.
func DefaultRules() RulesConfig {
	return RulesConfig{
		OffsetHours: 5,
		Delimiter:   ",",
		Schedule: map[string][]string{
			"monday":    {"07:00-17:00"},
			"tuesday":   {"07:00-17:00"},
			"wednesday": {"07:00-17:00"},
			"thursday":  {"07:00-17:00"},
			"friday":    {"07:00-16:00"},
			"saturday":  {"08:00-13:00"},
			"sunday":    {},
		},
		ResolvedKeywords: []string{"resuelto", "resolved", "cerrado", "closed", "solucionado", "solved"},
		Deadlines: []DeadlineRule{
			// Compound labels first so "muy alta" never falls into "alta".
			{Match: "muy baja", Hours: 2.0 / 60.0},
			{Match: "muy alta", Hours: 4},
			{Match: "alta", Hours: 8},
			{Match: "media", Hours: 16},
			{Match: "baja", Hours: 32},
		},
		DefaultDeadlineHours: 8,
		Columns: ColumnsConfig{
			ID:       "Número",
			Status:   "Estado",
			Opened:   "Fecha de apertura",
			Priority: "Prioridad",
			Assignee: "Asignado a",
			Modified: "Última modificación",
		},
	}
}

// LoadRules reads the rules file at path, layered over the defaults. An empty
// path or a missing file yields the defaults; a present but invalid file is
// an error rather than a silent fallback.
func LoadRules(path string) (RulesConfig, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return rules, nil
		}
		return rules, err
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return rules, fmt.Errorf("parse %s: %w", path, err)
	}
	if _, err := rules.BuildSchedule(); err != nil {
		return rules, fmt.Errorf("invalid schedule in %s: %w", path, err)
	}
	return rules, nil
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// BuildSchedule converts the configured day tables into a validated schedule.
func (r RulesConfig) BuildSchedule() (*sla.WeeklySchedule, error) {
	days := make(map[time.Weekday][]sla.ClockInterval, len(r.Schedule))
	for name, spans := range r.Schedule {
		day, ok := weekdayNames[sla.NormalizeText(name)]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		intervals := make([]sla.ClockInterval, 0, len(spans))
		for _, span := range spans {
			iv, err := sla.ParseClockInterval(span)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			intervals = append(intervals, iv)
		}
		days[day] = intervals
	}
	return sla.NewWeeklySchedule(days)
}

// NormalizerOptions converts the rule tables for the ticket normalizer.
func (r RulesConfig) NormalizerOptions() sla.NormalizerOptions {
	tiers := make([]sla.DeadlineTier, 0, len(r.Deadlines))
	for _, rule := range r.Deadlines {
		tiers = append(tiers, sla.DeadlineTier{Match: rule.Match, Hours: rule.Hours})
	}
	return sla.NormalizerOptions{
		OffsetHours:          r.OffsetHours,
		ResolvedKeywords:     r.ResolvedKeywords,
		DeadlineTiers:        tiers,
		DefaultDeadlineHours: r.DefaultDeadlineHours,
	}
}

// IngestColumns converts the column names for the dataset reader.
func (r RulesConfig) IngestColumns() ingest.Columns {
	return ingest.Columns{
		ID:       r.Columns.ID,
		Status:   r.Columns.Status,
		Opened:   r.Columns.Opened,
		Priority: r.Columns.Priority,
		Assignee: r.Columns.Assignee,
		Modified: r.Columns.Modified,
	}
}

// DelimiterRune returns the configured CSV delimiter, defaulting to comma.
func (r RulesConfig) DelimiterRune() rune {
	for _, c := range r.Delimiter {
		return c
	}
	return ','
}
