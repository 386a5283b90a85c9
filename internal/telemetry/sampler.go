// Package telemetry samples host resource usage during a benchmark run.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Snapshot is one point-in-time reading of host resource usage. The JSON
// field names are the telemetry.json artifact contract.
type Snapshot struct {
	Timestamp    string  `json:"timestamp"`
	System       string  `json:"system"`
	Platform     string  `json:"platform"`
	CPUPercent   float64 `json:"cpu_percent"`
	RAMPercent   float64 `json:"ram_percent"`
	SwapPercent  float64 `json:"swap_percent"`
	RAMUsedGB    float64 `json:"ram_used_gb"`
	SwapUsedGB   float64 `json:"swap_used_gb"`
	ProcessCount int     `json:"process_count"`
}

// Source produces telemetry snapshots. The benchmark runner depends on this
// interface, not on the host sampler, so runs can be tested without probing
// the machine.
type Source interface {
	Sample(ctx context.Context) (*Snapshot, error)
}

// Sampler reads host CPU, memory, and swap statistics.
type Sampler struct{}

// Sample collects one snapshot. Swap may legitimately be absent on some
// hosts; that reads as zero rather than an error.
func (Sampler) Sample(ctx context.Context) (*Snapshot, error) {
	if ctx == nil {
		return nil, errors.New("telemetry: nil context")
	}

	snap := &Snapshot{
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
		System:    runtime.GOOS,
	}

	if platform, _, version, err := host.PlatformInformationWithContext(ctx); err == nil {
		snap.Platform = platform
		if version != "" {
			snap.Platform = platform + " " + version
		}
	}

	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return nil, fmt.Errorf("telemetry: cpu: %w", err)
	}
	if len(percents) > 0 {
		snap.CPUPercent = percents[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("telemetry: memory: %w", err)
	}
	snap.RAMPercent = vm.UsedPercent
	snap.RAMUsedGB = roundGB(vm.Used)

	if swap, err := mem.SwapMemoryWithContext(ctx); err == nil {
		snap.SwapPercent = swap.UsedPercent
		snap.SwapUsedGB = roundGB(swap.Used)
	}

	if pids, err := process.PidsWithContext(ctx); err == nil {
		snap.ProcessCount = len(pids)
	}

	return snap, nil
}

func roundGB(bytes uint64) float64 {
	gb := float64(bytes) / (1 << 30)
	return math.Round(gb*100) / 100
}
