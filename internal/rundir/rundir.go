// Package rundir manages the artifact directory for one benchmark run.
package rundir

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Canonical artifact names inside a run directory.
const (
	LogFile       = "run.log"
	OutputsFile   = "outputs.csv"
	SummaryFile   = "summary.json"
	TelemetryFile = "telemetry.json"
)

// Dir is one run's artifact directory.
type Dir struct {
	Path string
}

// New creates <resultsRoot>/<model>_run_<promptsBase>_<timestamp>. Slashes in
// the model name are flattened so hub-style names stay one path element.
func New(resultsRoot, model, promptsPath string, now time.Time) (*Dir, error) {
	resultsRoot = strings.TrimSpace(resultsRoot)
	if resultsRoot == "" {
		return nil, errors.New("rundir: empty results root")
	}

	name := strings.ReplaceAll(strings.TrimSpace(model), "/", "_") +
		"_run_" +
		strings.TrimSuffix(filepath.Base(promptsPath), ".json") +
		"_" +
		now.Format("20060102_150405")

	path := filepath.Join(resultsRoot, name)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("rundir: create %q: %w", path, err)
	}
	return &Dir{Path: path}, nil
}

// Join returns the path of a named artifact inside the run directory.
func (d *Dir) Join(name string) string {
	return filepath.Join(d.Path, name)
}

// Archive zips the run directory into a sibling <dir>.zip and returns the
// archive path.
func (d *Dir) Archive() (string, error) {
	if d == nil || strings.TrimSpace(d.Path) == "" {
		return "", errors.New("rundir: nil dir")
	}

	zipPath := d.Path + ".zip"
	f, err := os.Create(zipPath)
	if err != nil {
		return "", fmt.Errorf("rundir: create archive %q: %w", zipPath, err)
	}

	zw := zip.NewWriter(f)
	walkErr := filepath.WalkDir(d.Path, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(d.Path, path)
		if err != nil {
			return err
		}

		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()

		_, err = io.Copy(w, src)
		return err
	})

	if walkErr != nil {
		_ = zw.Close()
		_ = f.Close()
		return "", fmt.Errorf("rundir: archive %q: %w", d.Path, walkErr)
	}
	if err := zw.Close(); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("rundir: finalize archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("rundir: close archive: %w", err)
	}
	return zipPath, nil
}
