package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Pair is one prompt/output row of an outputs table.
type Pair struct {
	Prompt string
	Output string
}

var outputsHeader = []string{"prompt", "output", "latency_s", "correct"}

// ReadPairs loads prompt/output pairs from a CSV table. Columns are located
// by the header row; rows missing a column yield the empty string for it.
func ReadPairs(path string) ([]Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("dataset: empty table %q", path)
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: read header %q: %w", path, err)
	}

	promptIdx, outputIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "prompt":
			promptIdx = i
		case "output":
			outputIdx = i
		}
	}

	var pairs []Pair
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read row %q: %w", path, err)
		}
		pairs = append(pairs, Pair{
			Prompt: field(rec, promptIdx),
			Output: field(rec, outputIdx),
		})
	}
	return pairs, nil
}

func field(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}

// OutputWriter appends benchmark rows to an outputs.csv table.
type OutputWriter struct {
	f *os.File
	w *csv.Writer
}

// NewOutputWriter creates the outputs table at path and writes the header.
func NewOutputWriter(path string) (*OutputWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: create %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(outputsHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("dataset: write header %q: %w", path, err)
	}
	return &OutputWriter{f: f, w: w}, nil
}

// Append writes one benchmark row.
func (ow *OutputWriter) Append(prompt, output string, latencyS float64, correct bool) error {
	if ow == nil || ow.w == nil {
		return errors.New("dataset: nil output writer")
	}
	return ow.w.Write([]string{
		prompt,
		output,
		strconv.FormatFloat(latencyS, 'f', 3, 64),
		strconv.FormatBool(correct),
	})
}

// Close flushes buffered rows and closes the file.
func (ow *OutputWriter) Close() error {
	if ow == nil || ow.f == nil {
		return nil
	}
	ow.w.Flush()
	if err := ow.w.Error(); err != nil {
		_ = ow.f.Close()
		return fmt.Errorf("dataset: flush outputs: %w", err)
	}
	return ow.f.Close()
}
