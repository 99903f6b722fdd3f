package sla

import (
	"sort"

	"github.com/spec-kit/sla-compliance-service/internal/domain"
)

// Summarize groups evaluations by assignee and computes the compliance report
// rows. Breached counts both resolved and still-open breaches; the compliance
// percentage covers resolved tickets only and is 0.0 when none are resolved.
// Output is sorted by assignee for deterministic reports.
func Summarize(evaluations []domain.SlaEvaluation) []domain.AssigneeSummary {
	type tally struct {
		assigned         int
		resolved         int
		breached         int
		breachedResolved int
	}
	groups := make(map[string]*tally)
	for _, eval := range evaluations {
		group, ok := groups[eval.Assignee]
		if !ok {
			group = &tally{}
			groups[eval.Assignee] = group
		}
		group.assigned++
		if eval.Resolved {
			group.resolved++
		}
		if eval.Status.IsBreach() {
			group.breached++
			if eval.Resolved {
				group.breachedResolved++
			}
		}
	}

	summaries := make([]domain.AssigneeSummary, 0, len(groups))
	for assignee, group := range groups {
		compliance := 0.0
		if group.resolved > 0 {
			compliance = float64(group.resolved-group.breachedResolved) / float64(group.resolved) * 100.0
		}
		summaries = append(summaries, domain.AssigneeSummary{
			Assignee:      assignee,
			Assigned:      group.assigned,
			Resolved:      group.resolved,
			Breached:      group.breached,
			CompliancePct: compliance,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Assignee < summaries[j].Assignee })
	return summaries
}
