package cmd

import (
	"fmt"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/cryolab/af3job/config"
	"github.com/cryolab/af3job/internal/af3"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// batchManifest is the YAML document consumed by "af3job batch".
type batchManifest struct {
	Jobs []batchEntry `yaml:"jobs"`
}

// batchEntry holds one create invocation's worth of directives.
type batchEntry struct {
	Sequences []string `yaml:"sequences"`
	PTMs      []string `yaml:"ptms"`
	PTMsAll   []string `yaml:"ptms_all"`
	PTMsEach  []string `yaml:"ptms_each"`
	Ligands   string   `yaml:"ligands"`
}

// batchCmd compiles every job in a YAML manifest.
var batchCmd = &cobra.Command{
	Use:   "batch MANIFEST",
	Short: "Compile every job listed in a YAML manifest",
	Long: `Compile every job listed in a YAML manifest, sequentially. Jobs that
already exist are skipped and tallied separately; a failing entry does
not stop the rest of the batch.

Manifest format:

  jobs:
    - sequences: [hH3.fasta, hH4.fasta]
      ptms: ["1:14:me3"]
      ligands: "SAH:2"
    - sequences: [hH3.fasta]
      ptms_each: ["1:ac"]`,
	Args: cobra.ExactArgs(1),
	Run:  runBatch,
}

func runBatch(cmd *cobra.Command, args []string) {
	dat, err := os.ReadFile(args[0])
	if err != nil {
		stderr.Fatalf("failed to read manifest: %v", err)
	}

	var manifest batchManifest
	if err := yaml.Unmarshal(dat, &manifest); err != nil {
		stderr.Fatalf("failed to parse manifest %s: %v", args[0], err)
	}
	if len(manifest.Jobs) == 0 {
		stderr.Fatalf("no jobs in manifest %s", args[0])
	}

	force, _ := cmd.Flags().GetBool("force")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	noLedger, _ := cmd.Flags().GetBool("no-ledger")
	conf := config.New()

	var created, skipped, failed int
	bar := pb.StartNew(len(manifest.Jobs))
	for _, entry := range manifest.Jobs {
		req, err := entry.request(force, dryRun, noLedger)
		if err == nil {
			var res *af3.Result
			if res, err = af3.Compile(*req, conf); err == nil {
				created += len(res.Created) + len(res.Planned)
				skipped += len(res.Skipped)
			}
		}
		if err != nil {
			stderr.Printf("batch entry %v failed: %v", entry.Sequences, err)
			failed++
		}
		bar.Increment()
	}
	bar.Finish()

	fmt.Printf("%d created, %d skipped, %d failed\n", created, skipped, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

// request converts a manifest entry into a compile request, classifying
// the directive strings the same way the create flags are.
func (e batchEntry) request(force, dryRun, noLedger bool) (*af3.Request, error) {
	if len(e.Sequences) == 0 {
		return nil, fmt.Errorf("batch entry without sequences")
	}

	req := &af3.Request{
		SeqFiles: e.Sequences,
		Ligands:  e.Ligands,
		Force:    force,
		DryRun:   dryRun,
		NoLedger: noLedger,
	}

	for _, arg := range e.PTMs {
		d, err := af3.ParsePTM(arg)
		if err != nil {
			return nil, err
		}
		req.PTMs = append(req.PTMs, d)
	}
	for _, arg := range e.PTMsAll {
		d, err := af3.ParsePTMAll(arg)
		if err != nil {
			return nil, err
		}
		req.PTMs = append(req.PTMs, d)
	}
	for _, arg := range e.PTMsEach {
		d, err := af3.ParsePTMEach(arg)
		if err != nil {
			return nil, err
		}
		req.PTMs = append(req.PTMs, d)
	}

	return req, nil
}

// set flags
func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().BoolP("force", "f", false, "Overwrite existing job documents")
	batchCmd.Flags().Bool("dry-run", false, "Report actions without writing anything")
	batchCmd.Flags().Bool("no-ledger", false, "Skip the ledger append")
}
