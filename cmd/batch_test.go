package cmd

import (
	"os"
	"path"
	"reflect"
	"testing"

	"github.com/cryolab/af3job/internal/af3"
	"gopkg.in/yaml.v3"
)

func Test_batchManifest(t *testing.T) {
	dat, err := os.ReadFile(path.Join("..", "test", "batch.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	var manifest batchManifest
	if err := yaml.Unmarshal(dat, &manifest); err != nil {
		t.Fatalf("failed to parse manifest: %v", err)
	}
	if len(manifest.Jobs) != 3 {
		t.Fatalf("got %d jobs, want 3", len(manifest.Jobs))
	}

	req, err := manifest.Jobs[0].request(false, false, false)
	if err != nil {
		t.Fatalf("request() error = %v", err)
	}

	if !reflect.DeepEqual(req.SeqFiles, []string{"hH3.fasta", "hH4.fasta"}) {
		t.Errorf("SeqFiles = %v", req.SeqFiles)
	}
	want := []af3.PTMDirective{{Kind: af3.PTMExplicit, Index: 1, Position: 14, Type: "me3"}}
	if !reflect.DeepEqual(req.PTMs, want) {
		t.Errorf("PTMs = %v, want %v", req.PTMs, want)
	}
	if req.Ligands != "SAH:2" {
		t.Errorf("Ligands = %q, want SAH:2", req.Ligands)
	}
}

func Test_batchEntry_request_errors(t *testing.T) {
	tests := []struct {
		name  string
		entry batchEntry
	}{
		{"no sequences", batchEntry{}},
		{"bad explicit directive", batchEntry{Sequences: []string{"a.fasta"}, PTMs: []string{"me3"}}},
		{"bad each directive", batchEntry{Sequences: []string{"a.fasta"}, PTMsEach: []string{"me3"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.entry.request(false, false, false); err == nil {
				t.Errorf("request() expected error for %s", tt.name)
			}
		})
	}
}
