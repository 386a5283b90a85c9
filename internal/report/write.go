package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/renameio"
)

// PathFor returns the conventional artifact location for a scored input:
// correctness_summary.json in the input's directory.
func PathFor(sourcePath string) string {
	return filepath.Join(filepath.Dir(sourcePath), Filename)
}

// Write persists the report as indented JSON. The write is atomic: readers
// observe either the previous artifact or the new one, never a partial file,
// and any previous artifact is replaced wholesale.
func Write(path string, rep *Report) error {
	if rep == nil {
		return errors.New("report: nil report")
	}

	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshal: %w", err)
	}
	b = append(b, '\n')

	if err := renameio.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("report: write %q: %w", path, err)
	}
	return nil
}
