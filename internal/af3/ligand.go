package af3

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// smilesExt marks a ligand code as a SMILES file reference rather than a
// chemical component code.
const smilesExt = ".smi"

var countPattern = regexp.MustCompile(`^[1-9][0-9]*$`)

// LigandKind discriminates the two ligand chain forms.
type LigandKind int

const (
	// LigandComponent references a chemical component code
	LigandComponent LigandKind = iota

	// LigandSmiles embeds a SMILES string read from a file
	LigandSmiles
)

// LigandChain is one instantiated ligand chain.
type LigandChain struct {
	// the identifier used for naming: the component code itself, or
	// the SMILES file's stem
	Name string

	Kind LigandKind

	// chemical component code, LigandComponent only
	CCDCode string

	// sanitized SMILES string, LigandSmiles only
	Smiles string
}

// resolveLigands parses a comma separated ligand directive, eg
// "SAH:2,GTP" or "inhibitor.smi", into instantiated chains plus the
// ligand segment of the job name. Counts expand in place, preserving
// item order. SMILES files are read and sanitized once per unique stem
// however often they are referenced.
func resolveLigands(spec, seqDir string) ([]LigandChain, string, error) {
	if spec == "" {
		return nil, "", nil
	}

	smilesCache := map[string]string{}

	var chains []LigandChain
	for _, item := range strings.Split(spec, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		code, count := item, 1
		if i := strings.LastIndex(item, ":"); i >= 0 {
			tail := item[i+1:]
			if !countPattern.MatchString(tail) {
				return nil, "", fmt.Errorf("invalid ligand count %q in %q", tail, item)
			}
			code = item[:i]
			count, _ = strconv.Atoi(tail)
		}

		chain := LigandChain{Name: code, Kind: LigandComponent, CCDCode: code}
		if strings.HasSuffix(code, smilesExt) {
			stem := strings.TrimSuffix(filepath.Base(code), smilesExt)
			smiles, ok := smilesCache[stem]
			if !ok {
				var err error
				if smiles, err = readSmiles(code, seqDir); err != nil {
					return nil, "", err
				}
				smilesCache[stem] = smiles
			}
			chain = LigandChain{Name: stem, Kind: LigandSmiles, Smiles: smiles}
		}

		for i := 0; i < count; i++ {
			chains = append(chains, chain)
		}
	}

	return chains, ligandSegment(chains), nil
}

// readSmiles reads a SMILES file and strips all whitespace, internal
// newlines included.
func readSmiles(ref, seqDir string) (string, error) {
	path := resolvePath(ref, seqDir)

	dat, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read SMILES file %s: %v", ref, err)
	}

	var b strings.Builder
	for _, r := range string(dat) {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no SMILES content in %s", path)
	}

	return b.String(), nil
}

// ligandSegment renders the ligand part of the job name: unique names in
// first-appearance order, with the same Nx stoichiometry rule as the
// molecule segment, joined by "-".
func ligandSegment(chains []LigandChain) string {
	var order []string
	counts := map[string]int{}
	for _, c := range chains {
		if counts[c.Name] == 0 {
			order = append(order, c.Name)
		}
		counts[c.Name]++
	}

	parts := make([]string, 0, len(order))
	for _, name := range order {
		parts = append(parts, stoichPart(name, counts[name]))
	}
	return strings.Join(parts, "-")
}
