// Package af3 compiles AlphaFold3 job definitions from sequence files
// and PTM/ligand directives: a deterministic job name, a job document
// for the inference tool, and an entry in the shared job ledger.
package af3

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// MoleculeType tags a chain in the job document.
type MoleculeType string

const (
	// Protein chains may carry modifications
	Protein MoleculeType = "protein"
	// DNA is any sequence over {G,A,T,C} only
	DNA MoleculeType = "dna"
	// RNA is any sequence over {G,A,U,C} only
	RNA MoleculeType = "rna"
)

// SequenceInput is one molecule chain loaded from a sequence file.
type SequenceInput struct {
	// the file reference as given on the command line
	SourceName string

	// the path that was actually read
	Path string

	// the file stem with a single leading "h" stripped, the canonical
	// identity used for grouping and job naming
	CleanName string

	// the residue string: header lines dropped, whitespace stripped,
	// uppercased. Never empty
	Residues string

	// classification of Residues, computed once at load time
	Type MoleculeType
}

// loadSequences reads every file reference in order. Bare file names are
// resolved against seqDir, anything with a path separator is used as is.
func loadSequences(refs []string, seqDir string) ([]*SequenceInput, error) {
	seqs := make([]*SequenceInput, 0, len(refs))
	for _, ref := range refs {
		s, err := loadSequence(ref, seqDir)
		if err != nil {
			return nil, err
		}
		seqs = append(seqs, s)
	}
	return seqs, nil
}

func loadSequence(ref, seqDir string) (*SequenceInput, error) {
	path := resolvePath(ref, seqDir)

	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sequence file %s: %v", ref, err)
	}

	// drop FASTA headers, strip whitespace, uppercase the rest
	var b strings.Builder
	for _, line := range strings.Split(string(dat), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), ">") {
			continue
		}
		for _, r := range line {
			if !unicode.IsSpace(r) {
				b.WriteRune(unicode.ToUpper(r))
			}
		}
	}

	residues := b.String()
	if residues == "" {
		return nil, fmt.Errorf("no sequence content in %s", path)
	}

	return &SequenceInput{
		SourceName: ref,
		Path:       path,
		CleanName:  cleanName(ref),
		Residues:   residues,
		Type:       classify(residues),
	}, nil
}

// resolvePath joins a bare file name with the configured sequence
// directory. References that already carry a directory are kept as is.
func resolvePath(ref, seqDir string) string {
	if filepath.Base(ref) == ref {
		return filepath.Join(seqDir, ref)
	}
	return ref
}

// cleanName strips the file suffix and the single leading "h" that marks
// human constructs by lab convention (hH3.fasta -> H3).
func cleanName(ref string) string {
	stem := filepath.Base(ref)
	if ext := filepath.Ext(stem); ext != "" {
		stem = strings.TrimSuffix(stem, ext)
	}
	if len(stem) > 1 && stem[0] == 'h' {
		stem = stem[1:]
	}
	return stem
}

// classify types a residue string by its alphabet: {G,A,T,C} only is
// DNA, {G,A,U,C} only is RNA, anything else is protein.
func classify(residues string) MoleculeType {
	dna, rna := true, true
	for _, r := range residues {
		switch r {
		case 'G', 'A', 'C':
		case 'T':
			rna = false
		case 'U':
			dna = false
		default:
			return Protein
		}
	}

	if dna {
		return DNA
	}
	if rna {
		return RNA
	}
	return Protein
}

// moleculeCounts maps each clean name to its occurrence count across the
// inputs. Used for stoichiometric naming and ambiguity warnings only.
func moleculeCounts(seqs []*SequenceInput) map[string]int {
	counts := map[string]int{}
	for _, s := range seqs {
		counts[s.CleanName]++
	}
	return counts
}
