package llm

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/stellarlinkco/model-bench/internal/config"
)

// FromConfig resolves a provider and the effective model name. Flags override
// config values; an empty provider flag falls back to the config default.
func FromConfig(cfg *config.Config, providerFlag string, modelFlag string) (Provider, string, error) {
	if cfg == nil {
		return nil, "", errors.New("llm: nil config")
	}

	name := strings.TrimSpace(providerFlag)
	if name == "" {
		name = strings.TrimSpace(cfg.LLM.DefaultProvider)
	}
	name = normalizeProvider(name)
	if name == "" {
		return nil, "", errors.New("llm: missing provider")
	}

	pcfg, ok := cfg.LLM.Providers[name]
	if !ok {
		available := make([]string, 0, len(cfg.LLM.Providers))
		for k := range cfg.LLM.Providers {
			available = append(available, k)
		}
		sort.Strings(available)
		return nil, "", fmt.Errorf("llm: provider %q not configured (available: %s)", name, strings.Join(available, ", "))
	}

	model := strings.TrimSpace(modelFlag)
	if model == "" {
		model = strings.TrimSpace(pcfg.Model)
	}
	modelName := model
	if modelName == "" {
		modelName = "default"
	}

	switch name {
	case "claude":
		return NewClaudeProvider(pcfg.APIKey, pcfg.BaseURL, model), modelName, nil
	case "openai":
		return NewOpenAIProvider(pcfg.APIKey, pcfg.BaseURL, model), modelName, nil
	default:
		return nil, "", fmt.Errorf("llm: unsupported provider %q", name)
	}
}

func normalizeProvider(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "anthropic":
		return "claude"
	default:
		return name
	}
}
