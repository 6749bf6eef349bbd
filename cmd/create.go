package cmd

import (
	"os"

	"github.com/cryolab/af3job/config"
	"github.com/cryolab/af3job/internal/af3"
	"github.com/spf13/cobra"
)

// exitSkipped signals that every requested job already existed, so batch
// scripts can tally skips separately from failures (exit 1).
const exitSkipped = 3

// createCmd compiles one job, or one job per lysine with --ptm-each.
var createCmd = &cobra.Command{
	Use:   "create SEQFILE [SEQFILE...]",
	Short: "Compile a job definition from sequence files and PTM/ligand directives",
	Long: `Compile an AlphaFold3 job definition from one or more sequence files.

Bare file names are resolved against the configured sequence directory
(--seq-dir). The job name is composed from the molecule stoichiometry,
any PTM suffixes and the ligand stoichiometry; the job document is
written to <out>/<name>/<name>_job.json and the name is appended to the
shared ledger.

PTM directives come in three forms:

  --ptm 1:14:me3      trimethylate position 14 of the first sequence
  --ptm-all ac        acetylate every lysine of the last protein input
  --ptm-all 2:ac      acetylate every lysine of the second input
  --ptm-each 1:me1    one job per lysine of the first input

Ligands are a comma separated list of chemical component codes or SMILES
files, each with an optional count`,
	Example: `  af3job create hH3.fasta hH4.fasta --ptm 1:14:me3 --ligands SAH
  af3job create hH3.fasta --ptm-each 1:ac --ligands "SAH:2,GTP"`,
	Args: cobra.MinimumNArgs(1),
	Run:  runCreate,
}

func runCreate(cmd *cobra.Command, args []string) {
	req, err := parseCreateFlags(cmd, args)
	if err != nil {
		stderr.Fatal(err)
	}

	res, err := af3.Compile(*req, config.New())
	if err != nil {
		stderr.Fatal(err)
	}

	if len(res.Created) == 0 && len(res.Planned) == 0 && len(res.Skipped) > 0 {
		os.Exit(exitSkipped)
	}
}

// parseCreateFlags classifies the directive flags into tagged variants
// up front, so unknown syntax is rejected before any file is read.
func parseCreateFlags(cmd *cobra.Command, args []string) (*af3.Request, error) {
	req := &af3.Request{SeqFiles: args}

	explicit, _ := cmd.Flags().GetStringArray("ptm")
	for _, arg := range explicit {
		d, err := af3.ParsePTM(arg)
		if err != nil {
			return nil, err
		}
		req.PTMs = append(req.PTMs, d)
	}

	all, _ := cmd.Flags().GetStringArray("ptm-all")
	for _, arg := range all {
		d, err := af3.ParsePTMAll(arg)
		if err != nil {
			return nil, err
		}
		req.PTMs = append(req.PTMs, d)
	}

	each, _ := cmd.Flags().GetStringArray("ptm-each")
	for _, arg := range each {
		d, err := af3.ParsePTMEach(arg)
		if err != nil {
			return nil, err
		}
		req.PTMs = append(req.PTMs, d)
	}

	req.Ligands, _ = cmd.Flags().GetString("ligands")
	req.Force, _ = cmd.Flags().GetBool("force")
	req.DryRun, _ = cmd.Flags().GetBool("dry-run")
	req.NoLedger, _ = cmd.Flags().GetBool("no-ledger")

	return req, nil
}

// registerCreateFlags adds the create flags to a command. Split out of
// init so tests can build a fresh flag set per case.
func registerCreateFlags(cmd *cobra.Command) {
	cmd.Flags().StringArray("ptm", nil, "Explicit PTM directive, IDX:POS:TYPE")
	cmd.Flags().StringArray("ptm-all", nil, "PTM on every lysine of one chain, TYPE or IDX:TYPE")
	cmd.Flags().StringArray("ptm-each", nil, "One job variant per lysine, IDX:TYPE")
	cmd.Flags().StringP("ligands", "l", "", "Comma separated ligands, CODE[:N] or FILE.smi[:N]")
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing job document")
	cmd.Flags().Bool("dry-run", false, "Report actions without writing anything")
	cmd.Flags().Bool("no-ledger", false, "Skip the ledger append")
}

// set flags
func init() {
	rootCmd.AddCommand(createCmd)
	registerCreateFlags(createCmd)
}
