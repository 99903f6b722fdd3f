package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()

	schedule, err := rules.BuildSchedule()
	if err != nil {
		t.Fatalf("BuildSchedule: %v", err)
	}
	if got := len(schedule.Intervals(time.Sunday)); got != 0 {
		t.Errorf("sunday should be closed, got %d intervals", got)
	}
	if got := schedule.Intervals(time.Monday); len(got) != 1 || got[0].Start != 7*60 || got[0].End != 17*60 {
		t.Errorf("unexpected monday window: %v", got)
	}
	if got := schedule.Intervals(time.Friday); len(got) != 1 || got[0].End != 16*60 {
		t.Errorf("unexpected friday window: %v", got)
	}

	opts := rules.NormalizerOptions()
	if opts.OffsetHours != 5 || opts.DefaultDeadlineHours != 8 {
		t.Errorf("unexpected normalizer options: %+v", opts)
	}
	if len(opts.DeadlineTiers) != 5 || opts.DeadlineTiers[1].Match != "muy alta" {
		t.Errorf("deadline tier order not preserved: %+v", opts.DeadlineTiers)
	}

	if rules.DelimiterRune() != ',' {
		t.Errorf("default delimiter = %q", rules.DelimiterRune())
	}
	if rules.IngestColumns().ID != "Número" {
		t.Errorf("unexpected default columns: %+v", rules.IngestColumns())
	}
}

func TestLoadRulesMissingFileUsesDefaults(t *testing.T) {
	rules, err := LoadRules(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if rules.OffsetHours != 5 {
		t.Errorf("expected defaults, got %+v", rules)
	}
}

func TestLoadRulesOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
offset_hours: 0
delimiter: ";"
schedule:
  monday: ["09:00-18:00"]
  sunday: []
deadlines:
  - match: urgente
    hours: 2
default_deadline_hours: 24
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if rules.OffsetHours != 0 || rules.DefaultDeadlineHours != 24 {
		t.Errorf("overrides not applied: %+v", rules)
	}
	if rules.DelimiterRune() != ';' {
		t.Errorf("delimiter = %q", rules.DelimiterRune())
	}
	if len(rules.Deadlines) != 1 || rules.Deadlines[0].Match != "urgente" {
		t.Errorf("deadlines = %+v", rules.Deadlines)
	}
	// Unset sections keep their defaults.
	if rules.Columns.Status != "Estado" {
		t.Errorf("columns lost defaults: %+v", rules.Columns)
	}

	schedule, err := rules.BuildSchedule()
	if err != nil {
		t.Fatalf("BuildSchedule: %v", err)
	}
	if got := schedule.Intervals(time.Monday); len(got) != 1 || got[0].Start != 9*60 {
		t.Errorf("monday override not applied: %v", got)
	}
}

func TestLoadRulesRejectsInvalidSchedule(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad interval", "schedule:\n  monday: [\"17:00-07:00\"]\n"},
		{"unknown day", "schedule:\n  someday: [\"07:00-17:00\"]\n"},
		{"bad yaml", "schedule: [not a map\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "rules.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadRules(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}
