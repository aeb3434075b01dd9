package output

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
)

// FileWriter implements engine.SubdomainWriter. Output is one subdomain
// per line, lexicographically sorted, each line newline-terminated, UTF-8.
type FileWriter struct{}

// Write replaces the file at path with the serialized list. The content
// is staged in a temp file in the same directory and renamed into place,
// so a failed write never leaves a partial file behind and the handle is
// released on every exit path.
func (FileWriter) Write(path string, subdomains []string) error {
	sorted := make([]string, len(subdomains))
	copy(sorted, subdomains)
	sort.Strings(sorted)

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}

	if err := writeLines(tmp, sorted); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

func writeLines(f *os.File, lines []string) error {
	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}
