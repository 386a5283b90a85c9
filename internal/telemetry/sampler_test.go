package telemetry

import (
	"context"
	"testing"
)

func TestSampler_Sample(t *testing.T) {
	t.Parallel()

	snap, err := Sampler{}.Sample(context.Background())
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}

	if snap.Timestamp == "" {
		t.Fatalf("Timestamp empty")
	}
	if snap.System == "" {
		t.Fatalf("System empty")
	}
	if snap.RAMPercent < 0 || snap.RAMPercent > 100 {
		t.Fatalf("RAMPercent: got %v", snap.RAMPercent)
	}
	if snap.RAMUsedGB < 0 {
		t.Fatalf("RAMUsedGB: got %v", snap.RAMUsedGB)
	}
}

func TestSampler_NilContext(t *testing.T) {
	t.Parallel()

	if _, err := (Sampler{}).Sample(nil); err == nil {
		t.Fatalf("Sample: expected error")
	}
}

func TestRoundGB(t *testing.T) {
	t.Parallel()

	if got := roundGB(1 << 30); got != 1.0 {
		t.Fatalf("roundGB(1GiB): got %v", got)
	}
	if got := roundGB(3 << 29); got != 1.5 {
		t.Fatalf("roundGB(1.5GiB): got %v", got)
	}
}
