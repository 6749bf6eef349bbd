package af3

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ptmCodes is the closed mapping from the symbolic PTM keys accepted on
// the command line to the chemical component codes the inference tool
// expects on lysine.
var ptmCodes = map[string]string{
	"me1": "MLZ", // N6-methyllysine
	"me2": "MLY", // N6,N6-dimethyllysine
	"me3": "M3L", // N6,N6,N6-trimethyllysine
	"ac":  "ALY", // N6-acetyllysine
}

// Modification is one entry of a protein chain's modification list.
type Modification struct {
	PTMType     string `json:"ptmType"`
	PTMPosition int    `json:"ptmPosition"`
}

// PTMKind discriminates the three PTM directive forms.
type PTMKind int

const (
	// PTMExplicit modifies a single position of one chain
	PTMExplicit PTMKind = iota

	// PTMAll modifies every lysine of one chain
	PTMAll

	// PTMEach produces one job variant per lysine of one chain
	PTMEach
)

// PTMDirective is one parsed PTM flag, classified up front so unknown
// syntax is rejected before any file is touched.
type PTMDirective struct {
	Kind PTMKind

	// 1-based index into the sequence file arguments. 0 means "the
	// last protein input" and is only legal for PTMAll
	Index int

	// 1-based residue position, PTMExplicit only
	Position int

	// symbolic PTM key, eg "me3"
	Type string
}

// ParsePTM parses an explicit single-site directive, IDX:POS:TYPE.
func ParsePTM(arg string) (PTMDirective, error) {
	parts := strings.Split(arg, ":")
	if len(parts) != 3 {
		return PTMDirective{}, fmt.Errorf("invalid PTM directive %q, expected IDX:POS:TYPE", arg)
	}

	idx, err := strconv.Atoi(parts[0])
	if err != nil {
		return PTMDirective{}, fmt.Errorf("invalid PTM index %q in %q", parts[0], arg)
	}
	pos, err := strconv.Atoi(parts[1])
	if err != nil {
		return PTMDirective{}, fmt.Errorf("invalid PTM position %q in %q", parts[1], arg)
	}

	return PTMDirective{Kind: PTMExplicit, Index: idx, Position: pos, Type: parts[2]}, nil
}

// ParsePTMAll parses an all-sites directive, TYPE or IDX:TYPE. Without
// an index the directive targets the last protein input.
func ParsePTMAll(arg string) (PTMDirective, error) {
	parts := strings.Split(arg, ":")
	switch len(parts) {
	case 1:
		return PTMDirective{Kind: PTMAll, Type: parts[0]}, nil
	case 2:
		idx, err := strconv.Atoi(parts[0])
		if err != nil {
			return PTMDirective{}, fmt.Errorf("invalid PTM index %q in %q", parts[0], arg)
		}
		return PTMDirective{Kind: PTMAll, Index: idx, Type: parts[1]}, nil
	}
	return PTMDirective{}, fmt.Errorf("invalid PTM directive %q, expected TYPE or IDX:TYPE", arg)
}

// ParsePTMEach parses an each-site directive, IDX:TYPE.
func ParsePTMEach(arg string) (PTMDirective, error) {
	parts := strings.Split(arg, ":")
	if len(parts) != 2 {
		return PTMDirective{}, fmt.Errorf("invalid PTM directive %q, expected IDX:TYPE", arg)
	}

	idx, err := strconv.Atoi(parts[0])
	if err != nil {
		return PTMDirective{}, fmt.Errorf("invalid PTM index %q in %q", parts[0], arg)
	}

	return PTMDirective{Kind: PTMEach, Index: idx, Type: parts[1]}, nil
}

// ptmState accumulates resolved PTM directives: per-chain modification
// lists keyed by 1-based sequence index, name suffixes keyed by clean
// name, and the variant requests produced by each-site directives.
type ptmState struct {
	mods     map[int][]Modification
	suffixes map[string]string
	variants []variantRequest
}

// variantRequest is one each-site job variant: a single extra
// modification plus the name suffix that identifies it.
type variantRequest struct {
	// 1-based index of the target chain
	Index int

	// clean name of the target chain
	Name string

	// eg "_K14me3"
	Suffix string

	Mod Modification
}

// resolvePTMs evaluates every directive against the loaded sequences and
// merges the results into a fresh accumulator. All validation happens
// here, before anything is written.
func resolvePTMs(seqs []*SequenceInput, counts map[string]int, directives []PTMDirective) (*ptmState, error) {
	state := &ptmState{
		mods:     map[int][]Modification{},
		suffixes: map[string]string{},
	}

	for _, d := range directives {
		code, ok := ptmCodes[d.Type]
		if !ok {
			return nil, fmt.Errorf("unknown PTM type %q, known types: %s", d.Type, strings.Join(knownPTMTypes(), ", "))
		}

		idx := d.Index
		if d.Kind == PTMAll && idx == 0 {
			if idx = lastProteinIndex(seqs); idx == 0 {
				return nil, fmt.Errorf("no protein input to apply PTM %q to", d.Type)
			}
		}
		if idx < 1 || idx > len(seqs) {
			return nil, fmt.Errorf("PTM index %d out of range, have %d sequence files", idx, len(seqs))
		}

		target := seqs[idx-1]
		if target.Type != Protein {
			return nil, fmt.Errorf("PTM target %s is %s, not protein", target.CleanName, target.Type)
		}

		// a PTM always applies to the resolved index, not the name
		if counts[target.CleanName] > 1 {
			stderr.Printf("warning: %s appears %d times, PTM naming may be ambiguous", target.CleanName, counts[target.CleanName])
		}

		switch d.Kind {
		case PTMExplicit:
			if d.Position < 1 || d.Position > len(target.Residues) {
				return nil, fmt.Errorf("PTM position %d out of range for %s (%d residues)", d.Position, target.CleanName, len(target.Residues))
			}

			// the suffix names whatever residue is there, lysine or not
			residue := target.Residues[d.Position-1]
			state.mods[idx] = append(state.mods[idx], Modification{PTMType: code, PTMPosition: d.Position})
			state.suffixes[target.CleanName] += fmt.Sprintf("_%c%d%s", residue, d.Position, d.Type)

		case PTMAll:
			sites := lysines(target.Residues)
			if len(sites) == 0 && d.Index != 0 {
				stderr.Printf("warning: no lysines in %s for %s", target.CleanName, d.Type)
			}
			for _, pos := range sites {
				state.mods[idx] = append(state.mods[idx], Modification{PTMType: code, PTMPosition: pos})
			}
			state.suffixes[target.CleanName] += "_KALL" + d.Type

		case PTMEach:
			sites := lysines(target.Residues)
			if len(sites) == 0 {
				stderr.Printf("warning: no lysines in %s, no %s jobs to create", target.CleanName, d.Type)
				continue
			}

			stderr.Printf("%s on each of %d lysines in %s: creating %d jobs", d.Type, len(sites), target.CleanName, len(sites))
			for _, pos := range sites {
				state.variants = append(state.variants, variantRequest{
					Index:  idx,
					Name:   target.CleanName,
					Suffix: fmt.Sprintf("_K%d%s", pos, d.Type),
					Mod:    Modification{PTMType: code, PTMPosition: pos},
				})
			}
		}
	}

	return state, nil
}

// lysines returns the 1-based position of every K, left to right.
func lysines(residues string) []int {
	var sites []int
	for i, r := range residues {
		if r == 'K' {
			sites = append(sites, i+1)
		}
	}
	return sites
}

// lastProteinIndex returns the 1-based index of the last protein-typed
// input, or 0 when there is none.
func lastProteinIndex(seqs []*SequenceInput) int {
	for i := len(seqs) - 1; i >= 0; i-- {
		if seqs[i].Type == Protein {
			return i + 1
		}
	}
	return 0
}

func knownPTMTypes() []string {
	keys := make([]string, 0, len(ptmCodes))
	for k := range ptmCodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
