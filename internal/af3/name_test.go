package af3

import "testing"

func Test_jobName(t *testing.T) {
	xxy := []*SequenceInput{
		{CleanName: "X"}, {CleanName: "X"}, {CleanName: "Y"},
	}
	h3h4 := []*SequenceInput{
		{CleanName: "H3"}, {CleanName: "H4"},
	}

	tests := []struct {
		name       string
		seqs       []*SequenceInput
		suffixes   map[string]string
		override   *nameOverride
		ligSegment string
		want       string
	}{
		{
			"stoichiometry",
			xxy, nil, nil, "",
			"2xX-Y",
		},
		{
			"ptm suffix",
			h3h4, map[string]string{"H3": "_K14me3"}, nil, "",
			"H3_K14me3-H4",
		},
		{
			"suffixes accumulate per name",
			h3h4, map[string]string{"H3": "_K9ac_KALLme1"}, nil, "",
			"H3_K9ac_KALLme1-H4",
		},
		{
			"override substitutes the shared suffix",
			h3h4, map[string]string{"H3": "_KALLme1"}, &nameOverride{name: "H3", suffix: "_K4me1"}, "",
			"H3_K4me1-H4",
		},
		{
			"override for an absent name changes nothing",
			h3h4, nil, &nameOverride{name: "H2B", suffix: "_K5ac"}, "",
			"H3-H4",
		},
		{
			"ligand segment appended",
			h3h4, nil, nil, "2xSAH-GTP",
			"H3-H4-2xSAH-GTP",
		},
		{
			"stoichiometry with suffix and ligands",
			xxy, map[string]string{"X": "_K2me2"}, nil, "SAH",
			"2xX_K2me2-Y-SAH",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := jobName(tt.seqs, tt.suffixes, tt.override, tt.ligSegment); got != tt.want {
				t.Errorf("jobName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func Test_stoichPart(t *testing.T) {
	if got := stoichPart("FOO", 1); got != "FOO" {
		t.Errorf("stoichPart(FOO, 1) = %q, want FOO", got)
	}
	if got := stoichPart("FOO", 3); got != "3xFOO" {
		t.Errorf("stoichPart(FOO, 3) = %q, want 3xFOO", got)
	}
}
