package sla

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/spec-kit/sla-compliance-service/internal/domain"
)

// Source exports use a day-first timestamp format; later layouts are
// fallbacks for variants seen in the wild.
var instantLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2/1/2006 15:04",
	"02-01-2006 15:04:05",
	"02-01-2006 15:04",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// NormalizeText lowercases s, trims surrounding whitespace and strips
// diacritics so that free-text labels from different source systems compare
// equal ("Resolución" -> "resolucion"). Missing input yields the empty string.
func NormalizeText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return strings.ToLower(strings.TrimSpace(stripped))
}

// DeadlineTier maps a normalized priority substring to its SLA deadline.
// Tiers are evaluated in order; keep compound labels ("muy alta") ahead of
// the plain labels they contain ("alta").
type DeadlineTier struct {
	Match string
	Hours float64
}

// NormalizerOptions carries the static rule tables a Normalizer applies.
type NormalizerOptions struct {
	// OffsetHours is the systematic clock skew between source-system
	// timestamps and business-local time; it is subtracted from every
	// parsed instant.
	OffsetHours float64
	// ResolvedKeywords classify a ticket as resolved when any of them is a
	// substring of the normalized status label.
	ResolvedKeywords []string
	// DeadlineTiers is the ordered priority lookup; DefaultDeadlineHours
	// applies when no tier matches.
	DeadlineTiers        []DeadlineTier
	DefaultDeadlineHours float64
}

// Normalizer turns raw export rows into canonical tickets. Every method
// degrades to a safe default on malformed input; a bad record must never
// abort the batch.
type Normalizer struct {
	opts NormalizerOptions
}

// NewNormalizer builds a Normalizer from its rule tables.
func NewNormalizer(opts NormalizerOptions) *Normalizer {
	return &Normalizer{opts: opts}
}

// ParseInstant parses a raw timestamp and applies the configured offset.
// It returns nil for blank or unparseable input.
func (n *Normalizer) ParseInstant(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range instantLayouts {
		parsed, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		adjusted := parsed.Add(-time.Duration(n.opts.OffsetHours * float64(time.Hour)))
		return &adjusted
	}
	return nil
}

// IsResolved reports whether the status label marks the ticket as resolved.
// Matching is substring containment over normalized text: source systems use
// many label variants ("Resuelto - Pendiente de confirmación").
func (n *Normalizer) IsResolved(statusLabel string) bool {
	status := NormalizeText(statusLabel)
	if status == "" {
		return false
	}
	for _, keyword := range n.opts.ResolvedKeywords {
		if strings.Contains(status, NormalizeText(keyword)) {
			return true
		}
	}
	return false
}

// DeadlineHours resolves the priority label to its SLA deadline, falling back
// to the default tier for unrecognized or missing labels.
func (n *Normalizer) DeadlineHours(priorityLabel string) float64 {
	priority := NormalizeText(priorityLabel)
	if priority != "" {
		for _, tier := range n.opts.DeadlineTiers {
			if strings.Contains(priority, NormalizeText(tier.Match)) {
				return tier.Hours
			}
		}
	}
	return n.opts.DefaultDeadlineHours
}

// Normalize derives the canonical form of one raw ticket. The close instant
// is only set for resolved tickets whose modification timestamp parsed.
func (n *Normalizer) Normalize(raw domain.RawTicket) domain.NormalizedTicket {
	ticket := domain.NormalizedTicket{
		ID:            strings.TrimSpace(raw.ID),
		Assignee:      strings.TrimSpace(raw.Assignee),
		Opened:        n.ParseInstant(raw.OpenedRaw),
		Resolved:      n.IsResolved(raw.Status),
		DeadlineHours: n.DeadlineHours(raw.Priority),
	}
	if ticket.Resolved {
		ticket.Closed = n.ParseInstant(raw.ModifiedRaw)
	}
	return ticket
}

// Degraded reports whether normalization had to fall back on a default for
// the opened timestamp, the one field the clock cannot work without.
func (n *Normalizer) Degraded(ticket domain.NormalizedTicket) bool {
	return ticket.Opened == nil
}
