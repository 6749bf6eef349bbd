package af3

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// modelSeeds is the fixed seed list every job is submitted with.
var modelSeeds = []int{1, 2, 8, 42, 88}

// Field names, field order and these two tags are a compatibility
// contract with the AlphaFold3 input format and must not change.
const (
	dialect        = "alphafold3"
	dialectVersion = 1
)

// chainAlphabet bounds chain identifiers: one ASCII letter per chain,
// sequence chains first, ligand chains after.
const chainAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ProteinChain is the protein leaf of a chain entry.
type ProteinChain struct {
	ID            string         `json:"id"`
	Sequence      string         `json:"sequence"`
	Modifications []Modification `json:"modifications,omitempty"`
}

// NucleicChain is the dna/rna leaf of a chain entry. Nucleic chains
// never carry modifications.
type NucleicChain struct {
	ID       string `json:"id"`
	Sequence string `json:"sequence"`
}

// LigandEntry is the ligand leaf of a chain entry: either a single
// component code or a SMILES string, never both.
type LigandEntry struct {
	ID       string   `json:"id"`
	CCDCodes []string `json:"ccdCodes,omitempty"`
	Smiles   string   `json:"smiles,omitempty"`
}

// ChainEntry is a single-key object tagged by molecule type.
type ChainEntry struct {
	Protein *ProteinChain `json:"protein,omitempty"`
	DNA     *NucleicChain `json:"dna,omitempty"`
	RNA     *NucleicChain `json:"rna,omitempty"`
	Ligand  *LigandEntry  `json:"ligand,omitempty"`
}

// JobDocument is the top-level job definition consumed by the inference
// tool, one per job directory.
type JobDocument struct {
	Name       string       `json:"name"`
	ModelSeeds []int        `json:"modelSeeds"`
	Sequences  []ChainEntry `json:"sequences"`
	Dialect    string       `json:"dialect"`
	Version    int          `json:"version"`
}

// Outcome reports what materialize did with one job variant.
type Outcome int

const (
	// Created means the job document was written
	Created Outcome = iota

	// Skipped means a completed job document already existed and
	// overwrite was not forced
	Skipped

	// Planned means dry-run reported the job without writing it
	Planned
)

// docPath returns the job document path inside a job's directory.
func docPath(outDir, name string) string {
	return filepath.Join(outDir, name, name+"_job.json")
}

// buildDocument assembles the chain list in contract order: sequence
// chains in input order, then ligand chain instances in input order,
// with identifiers assigned A through Z. A variant's extra modification
// is appended last on its target chain.
func buildDocument(name string, seqs []*SequenceInput, mods map[int][]Modification, variant *variantRequest, ligands []LigandChain) (*JobDocument, error) {
	total := len(seqs) + len(ligands)
	if total > len(chainAlphabet) {
		return nil, fmt.Errorf("%d chains exceed the %d available single-letter identifiers", total, len(chainAlphabet))
	}

	next := 0
	id := func() string {
		s := string(chainAlphabet[next])
		next++
		return s
	}

	entries := make([]ChainEntry, 0, total)
	for i, s := range seqs {
		switch s.Type {
		case Protein:
			chainMods := append([]Modification(nil), mods[i+1]...)
			if variant != nil && variant.Index == i+1 {
				chainMods = append(chainMods, variant.Mod)
			}
			entries = append(entries, ChainEntry{Protein: &ProteinChain{
				ID:            id(),
				Sequence:      s.Residues,
				Modifications: chainMods,
			}})
		case DNA:
			entries = append(entries, ChainEntry{DNA: &NucleicChain{ID: id(), Sequence: s.Residues}})
		case RNA:
			entries = append(entries, ChainEntry{RNA: &NucleicChain{ID: id(), Sequence: s.Residues}})
		}
	}

	for _, l := range ligands {
		entry := &LigandEntry{ID: id()}
		if l.Kind == LigandComponent {
			entry.CCDCodes = []string{l.CCDCode}
		} else {
			entry.Smiles = l.Smiles
		}
		entries = append(entries, ChainEntry{Ligand: entry})
	}

	return &JobDocument{
		Name:       name,
		ModelSeeds: modelSeeds,
		Sequences:  entries,
		Dialect:    dialect,
		Version:    dialectVersion,
	}, nil
}

// materialize writes the job document to <outDir>/<name>/<name>_job.json.
// An existing document is skipped unless force is set; dry-run reports
// the action without touching the filesystem.
func materialize(doc *JobDocument, outDir string, force, dryRun bool) (Outcome, error) {
	path := docPath(outDir, doc.Name)

	if _, err := os.Stat(path); err == nil && !force {
		stderr.Printf("%s already exists, skipping (use --force to overwrite)", doc.Name)
		return Skipped, nil
	}

	if dryRun {
		stderr.Printf("dry-run: would write %s with %d chains", path, len(doc.Sequences))
		return Planned, nil
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to serialize job %s: %v", doc.Name, err)
	}
	out = append(out, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("failed to create job directory for %s: %v", doc.Name, err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return 0, fmt.Errorf("failed to write job %s: %v", doc.Name, err)
	}

	return Created, nil
}
