package workflow

import (
	"sort"

	"github.com/rmaciel/fundiario/internal/domain"
)

// Frontier returns the project's active-step index: the ordinal position of
// the first step, in ordinal order, whose status is not COMPLETED. When
// every step is completed the frontier rests on the last template position,
// templateLen-1.
//
// The terminal fallback deliberately uses the template length rather than
// the step count. The two only diverge when a project's stored steps drift
// from its template (e.g. a partial migration); see DESIGN.md.
func Frontier(steps []*domain.Step, templateLen int) int {
	ordered := make([]*domain.Step, len(steps))
	copy(ordered, steps)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Ordinal < ordered[j].Ordinal
	})

	for i, s := range ordered {
		if !s.Completed() {
			return i
		}
	}
	return templateLen - 1
}
