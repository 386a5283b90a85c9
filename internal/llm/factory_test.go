package llm

import (
	"strings"
	"testing"

	"github.com/stellarlinkco/model-bench/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		LLM: config.LLMConfig{
			DefaultProvider: "claude",
			Providers: map[string]config.ProviderConfig{
				"claude": {APIKey: "k1", Model: "claude-m"},
				"openai": {APIKey: "k2", Model: "gpt-m"},
			},
		},
	}
}

func TestFromConfig_Default(t *testing.T) {
	t.Parallel()

	p, model, err := FromConfig(testConfig(), "", "")
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if p.Name() != "claude" {
		t.Fatalf("Name: got %q", p.Name())
	}
	if model != "claude-m" {
		t.Fatalf("model: got %q", model)
	}
}

func TestFromConfig_FlagOverrides(t *testing.T) {
	t.Parallel()

	p, model, err := FromConfig(testConfig(), "openai", "gpt-other")
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if p.Name() != "openai" {
		t.Fatalf("Name: got %q", p.Name())
	}
	if model != "gpt-other" {
		t.Fatalf("model: got %q", model)
	}
}

func TestFromConfig_AnthropicAlias(t *testing.T) {
	t.Parallel()

	p, _, err := FromConfig(testConfig(), "Anthropic", "")
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if p.Name() != "claude" {
		t.Fatalf("Name: got %q", p.Name())
	}
}

func TestFromConfig_Errors(t *testing.T) {
	t.Parallel()

	if _, _, err := FromConfig(nil, "", ""); err == nil {
		t.Fatalf("nil config: expected error")
	}

	_, _, err := FromConfig(testConfig(), "mystery", "")
	if err == nil {
		t.Fatalf("unknown provider: expected error")
	}
	if !strings.Contains(err.Error(), "not configured") {
		t.Fatalf("error: got %q", err)
	}
	if !strings.Contains(err.Error(), "claude, openai") {
		t.Fatalf("available list: got %q", err)
	}

	cfg := testConfig()
	cfg.LLM.DefaultProvider = " "
	if _, _, err := FromConfig(cfg, "", ""); err == nil {
		t.Fatalf("missing provider: expected error")
	}
}

func TestFromConfig_DefaultModelName(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	p := cfg.LLM.Providers["openai"]
	p.Model = ""
	cfg.LLM.Providers["openai"] = p

	_, model, err := FromConfig(cfg, "openai", "")
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if model != "default" {
		t.Fatalf("model: got %q", model)
	}
}
