package af3

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func Test_resolveLigands(t *testing.T) {
	tests := []struct {
		name        string
		spec        string
		wantNames   []string
		wantSegment string
	}{
		{"single code", "SAH", []string{"SAH"}, "SAH"},
		{"count expansion", "SAH:2,GTP", []string{"SAH", "SAH", "GTP"}, "2xSAH-GTP"},
		{"repeated items accumulate", "SAH,SAH,GTP", []string{"SAH", "SAH", "GTP"}, "2xSAH-GTP"},
		{"order preserved", "GTP,SAH:2", []string{"GTP", "SAH", "SAH"}, "GTP-2xSAH"},
		{"empty spec", "", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chains, segment, err := resolveLigands(tt.spec, "")
			if err != nil {
				t.Fatalf("resolveLigands(%q) error = %v", tt.spec, err)
			}

			if len(chains) != len(tt.wantNames) {
				t.Fatalf("resolveLigands(%q) = %d chains, want %d", tt.spec, len(chains), len(tt.wantNames))
			}
			for i, c := range chains {
				if c.Name != tt.wantNames[i] {
					t.Errorf("chains[%d].Name = %q, want %q", i, c.Name, tt.wantNames[i])
				}
				if c.Kind != LigandComponent {
					t.Errorf("chains[%d].Kind = %v, want component", i, c.Kind)
				}
			}
			if segment != tt.wantSegment {
				t.Errorf("segment = %q, want %q", segment, tt.wantSegment)
			}
		})
	}
}

func Test_resolveLigands_badCounts(t *testing.T) {
	for _, spec := range []string{"SAH:0", "SAH:-1", "SAH:x", "SAH:1.5", "SAH:01"} {
		t.Run(spec, func(t *testing.T) {
			if _, _, err := resolveLigands(spec, ""); err == nil {
				t.Errorf("resolveLigands(%q) expected count error", spec)
			}
		})
	}
}

func Test_resolveLigands_smiles(t *testing.T) {
	dir := t.TempDir()

	// whitespace and newlines inside the file are stripped
	smi := "  CC(=O)Nc1\n ccc(O)cc1 \n"
	if err := os.WriteFile(filepath.Join(dir, "apap.smi"), []byte(smi), 0644); err != nil {
		t.Fatal(err)
	}

	chains, segment, err := resolveLigands("apap.smi:2,apap.smi,SAH", dir)
	if err != nil {
		t.Fatalf("resolveLigands() error = %v", err)
	}

	if len(chains) != 4 {
		t.Fatalf("got %d chains, want 4", len(chains))
	}
	for i := 0; i < 3; i++ {
		if chains[i].Kind != LigandSmiles {
			t.Errorf("chains[%d].Kind = %v, want smiles", i, chains[i].Kind)
		}
		if chains[i].Smiles != "CC(=O)Nc1ccc(O)cc1" {
			t.Errorf("chains[%d].Smiles = %q, want sanitized string", i, chains[i].Smiles)
		}
	}
	if segment != "3xapap-SAH" {
		t.Errorf("segment = %q, want 3xapap-SAH", segment)
	}
}

func Test_resolveLigands_smilesErrors(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "blank.smi"), []byte("  \n \n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := resolveLigands("blank.smi", dir); err == nil {
		t.Error("resolveLigands() expected error for blank SMILES file")
	}
	if _, _, err := resolveLigands("missing.smi", dir); err == nil {
		t.Error("resolveLigands() expected error for missing SMILES file")
	}
}

// A SMILES string full of JSON-hostile characters must survive the trip
// through the serialized job document byte for byte.
func Test_smilesRoundTrip(t *testing.T) {
	dir := t.TempDir()

	raw := `C\C=C\C"quoted"\\backslashes`
	if err := os.WriteFile(filepath.Join(dir, "odd.smi"), []byte(raw+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	chains, _, err := resolveLigands("odd.smi", dir)
	if err != nil {
		t.Fatalf("resolveLigands() error = %v", err)
	}

	out, err := json.Marshal(LigandEntry{ID: "A", Smiles: chains[0].Smiles})
	if err != nil {
		t.Fatalf("marshal error = %v", err)
	}

	var decoded LigandEntry
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}
	if decoded.Smiles != raw {
		t.Errorf("round trip = %q, want %q", decoded.Smiles, raw)
	}
}
