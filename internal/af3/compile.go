package af3

import (
	"github.com/cryolab/af3job/config"
)

// Request is one job creation request: the sequence files plus the
// parsed PTM and ligand directives.
type Request struct {
	// sequence file references in chain order, bare names resolved
	// against the configured sequence directory
	SeqFiles []string

	// parsed PTM directives in flag order
	PTMs []PTMDirective

	// raw ligand directive, eg "SAH:2,GTP,inhibitor.smi"
	Ligands string

	// overwrite an existing job document
	Force bool

	// report actions without touching the filesystem
	DryRun bool

	// skip the ledger append
	NoLedger bool
}

// Result tallies what happened to each produced variant so batch
// callers can count skips separately from failures.
type Result struct {
	Created []string
	Skipped []string
	Planned []string
}

// Compile runs the full pipeline: load sequences, resolve ligand and
// PTM directives, then synthesize a name and materialize a job document
// once per variant. Without each-site directives exactly one job is
// produced; with them, one per lysine. Shared state (sequences, ligands,
// the PTM accumulator) is computed exactly once either way.
func Compile(req Request, conf config.Config) (*Result, error) {
	seqs, err := loadSequences(req.SeqFiles, conf.SeqDir)
	if err != nil {
		return nil, err
	}

	counts := moleculeCounts(seqs)

	ligands, ligSegment, err := resolveLigands(req.Ligands, conf.SeqDir)
	if err != nil {
		return nil, err
	}
	for _, l := range ligands {
		if counts[l.Name] > 0 {
			stderr.Printf("warning: ligand %s shares a name with a sequence input, naming may be ambiguous", l.Name)
			break
		}
	}

	state, err := resolvePTMs(seqs, counts, req.PTMs)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	run := func(override *nameOverride, variant *variantRequest) error {
		name := jobName(seqs, state.suffixes, override, ligSegment)

		doc, err := buildDocument(name, seqs, state.mods, variant, ligands)
		if err != nil {
			return err
		}

		outcome, err := materialize(doc, conf.OutDir, req.Force, req.DryRun)
		if err != nil {
			return err
		}

		switch outcome {
		case Created:
			stderr.Printf("created %s", docPath(conf.OutDir, name))
			if !req.NoLedger {
				if err := appendLedger(conf.Ledger, name); err != nil {
					return err
				}
			}
			res.Created = append(res.Created, name)
		case Skipped:
			res.Skipped = append(res.Skipped, name)
		case Planned:
			res.Planned = append(res.Planned, name)
		}
		return nil
	}

	if len(state.variants) == 0 {
		if err := run(nil, nil); err != nil {
			return nil, err
		}
		return res, nil
	}

	for i := range state.variants {
		v := &state.variants[i]
		if err := run(&nameOverride{name: v.Name, suffix: v.Suffix}, v); err != nil {
			return nil, err
		}
	}
	return res, nil
}
