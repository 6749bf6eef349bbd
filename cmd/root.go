// Package cmd is for command line interactions with the af3job application
package cmd

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "af3job",
	Short: `Compile AlphaFold3 job definitions for batch submission.
Turns sequence files plus PTM and ligand directives into job documents
and registers the job names in the shared ledger`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		stderr.Fatalf("%v", err)
	}
}

// set flags
func init() {
	rootCmd.PersistentFlags().String("seq-dir", "", "Directory that bare sequence and SMILES file names resolve against")
	rootCmd.PersistentFlags().String("out", "", "Root directory that job directories are created under")
	rootCmd.PersistentFlags().String("ledger", "", "Path to the job ledger file")

	// bind the parameters to viper, overridable as AF3JOB_SEQ_DIR etc
	viper.BindPFlag("seq-dir", rootCmd.PersistentFlags().Lookup("seq-dir"))
	viper.BindPFlag("out", rootCmd.PersistentFlags().Lookup("out"))
	viper.BindPFlag("ledger", rootCmd.PersistentFlags().Lookup("ledger"))

	viper.SetEnvPrefix("AF3JOB")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
