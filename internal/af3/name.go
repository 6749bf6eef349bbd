package af3

import (
	"fmt"
	"strings"
)

// nameOverride substitutes the PTM suffix of a single clean name. Each
// each-site variant gets its name through one of these, leaving the
// shared suffix accumulator untouched.
type nameOverride struct {
	name   string
	suffix string
}

// jobName deterministically composes the job name: unique clean names in
// first-appearance order with their stoichiometry and PTM suffixes, then
// the ligand segment when any ligands are present.
//
// A nil override renders the shared suffixes as accumulated.
func jobName(seqs []*SequenceInput, suffixes map[string]string, override *nameOverride, ligSegment string) string {
	var order []string
	counts := map[string]int{}
	for _, s := range seqs {
		if counts[s.CleanName] == 0 {
			order = append(order, s.CleanName)
		}
		counts[s.CleanName]++
	}

	parts := make([]string, 0, len(order))
	for _, name := range order {
		suffix := suffixes[name]
		if override != nil && override.name == name {
			suffix = override.suffix
		}
		parts = append(parts, stoichPart(name, counts[name])+suffix)
	}

	name := strings.Join(parts, "-")
	if ligSegment != "" {
		name += "-" + ligSegment
	}
	return name
}

// stoichPart renders a name with its count, "3xFOO" when count > 1.
func stoichPart(name string, count int) string {
	if count > 1 {
		return fmt.Sprintf("%dx%s", count, name)
	}
	return name
}
