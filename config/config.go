// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the root-level settings struct and is a mix of settings
// from AF3JOB_* environment variables and command line flags
type Config struct {
	// directory that bare sequence and SMILES file names are
	// resolved against
	SeqDir string `mapstructure:"seq-dir"`

	// root directory that job directories are created under
	OutDir string `mapstructure:"out"`

	// path to the ledger file that job names are appended to
	Ledger string `mapstructure:"ledger"`
}

// New returns a Config populated by Viper settings and/or
// command line arguments
func New() Config {
	var c Config

	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode settings: %v", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	// fall back to the shared cluster layout
	if c.SeqDir == "" {
		c.SeqDir = filepath.Join(home, "af3", "sequences")
	}
	if c.OutDir == "" {
		c.OutDir = filepath.Join(home, "af3", "jobs")
	}
	if c.Ledger == "" {
		c.Ledger = filepath.Join(c.OutDir, "jobs.txt")
	}

	return c
}
