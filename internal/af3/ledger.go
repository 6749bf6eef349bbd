package af3

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ledgerHeader is the first line of the ledger file, the token the
// downstream submission and monitoring scripts recognize it by.
const ledgerHeader = "job_name"

// appendLedger records name in the ledger at path. A missing or empty
// file is created with the header; a legacy headerless file gets the
// header prepended. Appending a name already present is a no-op, so
// re-running job creation never duplicates a line.
func appendLedger(path, name string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create ledger directory: %v", err)
	}

	dat, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read ledger %s: %v", path, err)
	}

	content := string(dat)
	if content == "" {
		content = ledgerHeader + "\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to create ledger %s: %v", path, err)
		}
	} else if first := strings.SplitN(content, "\n", 2)[0]; !strings.Contains(first, ledgerHeader) {
		content = ledgerHeader + "\n" + content
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to migrate ledger %s: %v", path, err)
		}
	}

	for _, line := range strings.Split(content, "\n") {
		if line == name {
			return nil // already ledgered
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open ledger %s: %v", path, err)
	}

	entry := name + "\n"
	if !strings.HasSuffix(content, "\n") {
		entry = "\n" + entry
	}
	if _, err := f.WriteString(entry); err != nil {
		f.Close()
		return fmt.Errorf("failed to append to ledger %s: %v", path, err)
	}

	return f.Close()
}

// ReadLedger returns the job names recorded in the ledger at path, the
// header line excluded.
func ReadLedger(path string) ([]string, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var names []string
	for i, line := range strings.Split(strings.TrimRight(string(dat), "\n"), "\n") {
		if i == 0 && strings.Contains(line, ledgerHeader) {
			continue
		}
		if line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}
