package cmd

import (
	"fmt"
	"os"

	"github.com/cryolab/af3job/config"
	"github.com/cryolab/af3job/internal/af3"
	"github.com/spf13/cobra"
)

// jobsCmd prints the job names recorded in the ledger, one per line.
var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List the job names recorded in the ledger",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		conf := config.New()

		names, err := af3.ReadLedger(conf.Ledger)
		if err != nil {
			if os.IsNotExist(err) {
				stderr.Printf("no ledger at %s", conf.Ledger)
				return
			}
			stderr.Fatal(err)
		}

		for _, name := range names {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
}
