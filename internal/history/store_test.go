package history

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stellarlinkco/model-bench/internal/config"
)

func memStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(":memory:")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_SaveAndGet(t *testing.T) {
	t.Parallel()

	s := memStore(t)
	ctx := context.Background()

	run := &Run{
		Model:           "tiny-1b",
		Provider:        "openai",
		PromptsFile:     "prompts.json",
		Total:           10,
		Correct:         7,
		AccuracyPercent: 70.0,
		TotalLatencyMs:  1234,
		RunDir:          "/results/tiny-1b_run_prompts_20260101_000000",
	}
	if err := s.Save(ctx, run); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if run.ID == 0 {
		t.Fatalf("ID not assigned")
	}
	if run.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt not filled")
	}

	got, err := s.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Model != "tiny-1b" || got.Correct != 7 || got.AccuracyPercent != 70.0 {
		t.Fatalf("Get: got %+v", got)
	}
}

func TestStore_Get_NotFound(t *testing.T) {
	t.Parallel()

	s := memStore(t)
	_, err := s.Get(context.Background(), 999)
	if err == nil {
		t.Fatalf("Get: expected error")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Fatalf("error: got %q", err)
	}
}

func TestStore_ListAndByModel(t *testing.T) {
	t.Parallel()

	s := memStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, model := range []string{"a", "b", "a"} {
		run := &Run{
			Model:     model,
			Provider:  "claude",
			Total:     1,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := s.Save(ctx, run); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List: got %d runs", len(all))
	}
	// Newest first.
	if all[0].Model != "a" || !all[0].CreatedAt.After(all[2].CreatedAt) {
		t.Fatalf("List order: got %+v", all)
	}

	onlyA, err := s.ByModel(ctx, "a", 10)
	if err != nil {
		t.Fatalf("ByModel: %v", err)
	}
	if len(onlyA) != 2 {
		t.Fatalf("ByModel: got %d runs", len(onlyA))
	}
	for _, r := range onlyA {
		if r.Model != "a" {
			t.Fatalf("ByModel: got model %q", r.Model)
		}
	}

	limited, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("List limit: got %d runs", len(limited))
	}
}

func TestStore_Save_Validation(t *testing.T) {
	t.Parallel()

	s := memStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, nil); err == nil {
		t.Fatalf("nil run: expected error")
	}
	if err := s.Save(ctx, &Run{Model: " ", Provider: "p"}); err == nil {
		t.Fatalf("missing model: expected error")
	}
}

func TestOpen_StorageTypes(t *testing.T) {
	t.Parallel()

	{
		s, err := Open(&config.Config{Storage: config.StorageConfig{Type: "memory"}})
		if err != nil {
			t.Fatalf("Open(memory): %v", err)
		}
		_ = s.Close()
	}
	{
		_, err := Open(&config.Config{Storage: config.StorageConfig{Type: "redis"}})
		if err == nil {
			t.Fatalf("Open(redis): expected error")
		}
	}
	{
		if _, err := Open(nil); err == nil {
			t.Fatalf("Open(nil): expected error")
		}
	}
}
