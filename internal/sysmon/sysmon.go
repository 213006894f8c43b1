// Package sysmon provides system-wide CPU and memory usage sampling.
package sysmon

import (
	"context"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/agbru/trapcalc/internal/logging"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent  float64 // 0.0 .. 100.0
	MemPercent  float64 // 0.0 .. 100.0
	LogicalCPUs int
	TotalMemory uint64 // bytes
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Fields that cannot be read
// are left at zero.
func Sample(ctx context.Context) Stats {
	var s Stats
	cpuPcts, err := cpu.PercentWithContext(ctx, 0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		s.LogicalCPUs = n
	}
	vmem, err := mem.VirtualMemoryWithContext(ctx)
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
		s.TotalMemory = vmem.Total
	}
	return s
}

// Fields renders the snapshot as structured log fields.
func (s Stats) Fields() []logging.Field {
	return []logging.Field{
		logging.Float64("cpu_percent", s.CPUPercent),
		logging.Float64("mem_percent", s.MemPercent),
		logging.Int("logical_cpus", s.LogicalCPUs),
		logging.Uint64("total_memory", s.TotalMemory),
	}
}
