package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIProvider_Generate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path: got %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "2x"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 9, "completion_tokens": 2, "total_tokens": 11}
		}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("test-key", srv.URL, "test-model")
	gen, err := p.Generate(context.Background(), "What is the derivative of x^2?", 16)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if gen.Text != "2x" {
		t.Fatalf("Text: got %q", gen.Text)
	}
	if gen.InputTokens != 9 || gen.OutputTokens != 2 {
		t.Fatalf("usage: got in=%d out=%d", gen.InputTokens, gen.OutputTokens)
	}
	if gen.LatencyMs < 0 {
		t.Fatalf("LatencyMs: got %d", gen.LatencyMs)
	}
}

func TestOpenAIProvider_EmptyChoices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object": "chat.completion", "choices": []}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("test-key", srv.URL, "test-model")
	if _, err := p.Generate(context.Background(), "hi", 8); err == nil {
		t.Fatalf("Generate: expected error")
	}
}

func TestProviders_NilGuards(t *testing.T) {
	t.Parallel()

	var op *OpenAIProvider
	if _, err := op.Generate(context.Background(), "x", 1); err == nil {
		t.Fatalf("nil openai provider: expected error")
	}

	var cp *ClaudeProvider
	if _, err := cp.Generate(context.Background(), "x", 1); err == nil {
		t.Fatalf("nil claude provider: expected error")
	}

	if got := NewClaudeProvider("k", "", "").Name(); got != "claude" {
		t.Fatalf("Name: got %q", got)
	}
}
