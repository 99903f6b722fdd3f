package sla

import (
	"testing"
	"time"

	"github.com/spec-kit/sla-compliance-service/internal/domain"
)

func testNormalizer() *Normalizer {
	return NewNormalizer(NormalizerOptions{
		OffsetHours:      5,
		ResolvedKeywords: []string{"resuelto", "resolved", "cerrado", "closed", "solucionado", "solved"},
		DeadlineTiers: []DeadlineTier{
			{Match: "muy baja", Hours: 2.0 / 60.0},
			{Match: "muy alta", Hours: 4},
			{Match: "alta", Hours: 8},
			{Match: "media", Hours: 16},
			{Match: "baja", Hours: 32},
		},
		DefaultDeadlineHours: 8,
	})
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Resolución", "resolucion"},
		{"  MUY ALTA  ", "muy alta"},
		{"Pendiente de confirmación", "pendiente de confirmacion"},
		{"ÁÉÍÓÚÑü", "aeiounu"},
		{"", ""},
		{"   ", ""},
		{"already plain", "already plain"},
	}
	for _, tt := range tests {
		if got := NormalizeText(tt.input); got != tt.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsResolved(t *testing.T) {
	n := testNormalizer()

	tests := []struct {
		status string
		want   bool
	}{
		{"Resuelto - Pendiente de confirmación", true},
		{"RESUELTO", true},
		{"Cerrado", true},
		{"Closed by requester", true},
		{"Solucionado", true},
		{"Solved", true},
		{"En progreso", false},
		{"Nuevo", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := n.IsResolved(tt.status); got != tt.want {
			t.Errorf("IsResolved(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestDeadlineHours(t *testing.T) {
	n := testNormalizer()

	tests := []struct {
		priority string
		want     float64
	}{
		// Tie-break: compound tiers must win over the plain labels they contain.
		{"Muy alta", 4},
		{"muy ALTA", 4},
		{"Alta", 8},
		{"Media", 16},
		{"Baja", 32},
		{"Muy baja", 2.0 / 60.0},
		{"desconocida", 8},
		{"", 8},
	}
	for _, tt := range tests {
		if got := n.DeadlineHours(tt.priority); got != tt.want {
			t.Errorf("DeadlineHours(%q) = %v, want %v", tt.priority, got, tt.want)
		}
	}
}

func TestParseInstant(t *testing.T) {
	n := testNormalizer()

	got := n.ParseInstant("15/01/2024 14:30")
	if got == nil {
		t.Fatal("expected instant, got nil")
	}
	// Offset of 5h subtracted from the parsed value.
	want := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseInstant = %v, want %v", got, want)
	}

	for _, raw := range []string{"", "   ", "not a date", "2024/99/99"} {
		if got := n.ParseInstant(raw); got != nil {
			t.Errorf("ParseInstant(%q) = %v, want nil", raw, got)
		}
	}

	// Date-only and seconds variants still parse.
	for _, raw := range []string{"15/01/2024", "15/01/2024 14:30:45", "15-01-2024 14:30", "2024-01-15 14:30:45"} {
		if got := n.ParseInstant(raw); got == nil {
			t.Errorf("ParseInstant(%q) = nil, want instant", raw)
		}
	}
}

func TestNormalize(t *testing.T) {
	n := testNormalizer()

	t.Run("resolved ticket", func(t *testing.T) {
		ticket := n.Normalize(domain.RawTicket{
			ID:          "INC-100",
			Status:      "Resuelto",
			Priority:    "Muy alta",
			OpenedRaw:   "15/01/2024 08:00",
			ModifiedRaw: "15/01/2024 12:00",
			Assignee:    "tech.garcia",
		})
		if ticket.Opened == nil || ticket.Closed == nil {
			t.Fatalf("expected both instants, got %+v", ticket)
		}
		if !ticket.Resolved || ticket.DeadlineHours != 4 {
			t.Errorf("unexpected normalization: %+v", ticket)
		}
	})

	t.Run("open ticket never carries a close instant", func(t *testing.T) {
		ticket := n.Normalize(domain.RawTicket{
			ID:          "INC-101",
			Status:      "En progreso",
			Priority:    "Media",
			OpenedRaw:   "15/01/2024 08:00",
			ModifiedRaw: "15/01/2024 12:00",
		})
		if ticket.Resolved || ticket.Closed != nil {
			t.Errorf("open ticket got close instant: %+v", ticket)
		}
	})

	t.Run("malformed fields degrade to defaults", func(t *testing.T) {
		ticket := n.Normalize(domain.RawTicket{ID: "INC-102", OpenedRaw: "garbage"})
		if ticket.Opened != nil || ticket.Resolved || ticket.DeadlineHours != 8 {
			t.Errorf("unexpected defaults: %+v", ticket)
		}
		if !n.Degraded(ticket) {
			t.Error("expected ticket to be flagged degraded")
		}
	})
}
