package checks

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"runtime/debug"

	"github.com/jonwraymond/sitehealth/health"
)

// MemoryThresholds are heap usage ratios of the memory limit.
type MemoryThresholds struct {
	// Warning defaults to 0.8.
	Warning float64
	// Critical defaults to 0.95.
	Critical float64
}

// MemorySample is one reading of heap usage against a limit, in bytes.
type MemorySample struct {
	Used  uint64
	Limit uint64
}

// MemoryUsage compares live heap with the process memory limit.
type MemoryUsage struct {
	health.Base
	thresholds MemoryThresholds
	sample     func() MemorySample
}

// NewMemoryUsage creates the core.memory_usage check.
func NewMemoryUsage(t MemoryThresholds) *MemoryUsage {
	if t.Warning <= 0 || t.Warning >= 1 {
		t.Warning = 0.8
	}
	if t.Critical <= t.Warning || t.Critical > 1 {
		t.Critical = math.Min(t.Warning+0.15, 0.99)
	}
	return &MemoryUsage{
		Base:       health.NewBase(ProviderSlug, "memory_usage", health.CategoryPerformance, "Memory usage"),
		thresholds: t,
		sample:     readMemory,
	}
}

// readMemory uses GOMEMLIMIT when one is set and the memory obtained from
// the OS otherwise.
func readMemory() MemorySample {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	limit := stats.Sys
	if l := debug.SetMemoryLimit(-1); l > 0 && l != math.MaxInt64 {
		limit = uint64(l)
	}
	return MemorySample{Used: stats.HeapAlloc, Limit: limit}
}

// Perform reads the current sample.
func (c *MemoryUsage) Perform(ctx context.Context) (health.Result, error) {
	if err := ctx.Err(); err != nil {
		return health.Result{}, err
	}

	s := c.sample()
	if s.Limit == 0 {
		return c.Warning("Memory statistics are unavailable."), nil
	}

	ratio := float64(s.Used) / float64(s.Limit)
	switch {
	case ratio >= c.thresholds.Critical:
		return c.Critical(fmt.Sprintf("Memory usage is above %.0f%% of the available memory.", c.thresholds.Critical*100)), nil
	case ratio >= c.thresholds.Warning:
		return c.Warning(fmt.Sprintf("Memory usage is above %.0f%% of the available memory.", c.thresholds.Warning*100)), nil
	}
	return c.Good("Memory usage is within normal limits."), nil
}
