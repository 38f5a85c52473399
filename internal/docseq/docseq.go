// Package docseq parses and formats sequential document numbers of the form
// NNNN/YYYY and computes the per-label, per-year maximum over a snapshot of
// steps. Atomic allocation on top of this scan lives in the repository
// layer (DocumentSequenceRepo).
package docseq

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/rmaciel/fundiario/internal/domain"
)

var numberPattern = regexp.MustCompile(`^(\d{1,6})/(\d{4})`)

// Parse extracts the sequence and year from a document number. Values not
// matching the NNNN/YYYY pattern report ok=false and are skipped by the
// scan; they never affect the maximum.
func Parse(number string) (seq int, year int, ok bool) {
	m := numberPattern.FindStringSubmatch(number)
	if m == nil {
		return 0, 0, false
	}
	seq, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, false
	}
	year, err = strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, false
	}
	return seq, year, true
}

// Format renders a sequence/year pair as a document number, zero-padding
// the sequence to four digits.
func Format(seq int, year int) string {
	return fmt.Sprintf("%04d/%d", seq, year)
}

// MaxSequence scans every step of every project in the snapshot and returns
// the highest sequence among document numbers whose label matches and whose
// year equals the given year. Returns 0 when no number matches, so the next
// allocation starts at 1.
func MaxSequence(projects []*domain.Project, label string, year int) int {
	max := 0
	for _, p := range projects {
		for _, s := range p.Steps {
			if s.Label != label || s.DocumentNumber == nil {
				continue
			}
			seq, y, ok := Parse(*s.DocumentNumber)
			if !ok || y != year {
				continue
			}
			if seq > max {
				max = seq
			}
		}
	}
	return max
}

// NextNumber computes the next document number for a label from a snapshot:
// one past the current-year maximum, formatted NNNN/YYYY.
func NextNumber(projects []*domain.Project, label string, year int) string {
	return Format(MaxSequence(projects, label, year)+1, year)
}
