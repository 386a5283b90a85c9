// Package dataset reads prompt lists and reads/writes the per-run outputs
// table.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// LoadPrompts reads a prompts file. The file is either a JSON object with a
// "prompts" array or a bare JSON array of strings.
func LoadPrompts(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read prompts %q: %w", path, err)
	}

	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapped struct {
			Prompts []string `json:"prompts"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, fmt.Errorf("dataset: parse prompts %q: %w", path, err)
		}
		return wrapped.Prompts, nil
	}

	var prompts []string
	if err := json.Unmarshal(trimmed, &prompts); err != nil {
		return nil, fmt.Errorf("dataset: parse prompts %q: %w", path, err)
	}
	return prompts, nil
}
