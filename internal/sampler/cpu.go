package sampler

import (
	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/Dicklesworthstone/statline/internal/apperrors"
)

// CPUCollector computes utilization from the delta between the counters
// captured at construction and the counters read on each call. Callers must
// let some time pass between NewCPUCollector and the reads.
type CPUCollector struct {
	src      CPUSource
	prevAll  cpu.TimesStat
	prevCore []cpu.TimesStat
}

// NewCPUCollector snapshots the aggregate and per-core counters. A failure
// here is a KindConstructionFailed error.
func NewCPUCollector(src CPUSource) (*CPUCollector, error) {
	all, err := src.Times(false)
	if err != nil {
		return nil, apperrors.New(apperrors.SourceCPU, apperrors.KindConstructionFailed,
			"unable to create cpu percent collector", err)
	}
	if len(all) == 0 {
		return nil, apperrors.New(apperrors.SourceCPU, apperrors.KindConstructionFailed,
			"no aggregate cpu counters reported", nil)
	}
	cores, err := src.Times(true)
	if err != nil {
		return nil, apperrors.New(apperrors.SourceCPU, apperrors.KindConstructionFailed,
			"unable to create per-cpu percent collector", err)
	}
	return &CPUCollector{src: src, prevAll: all[0], prevCore: cores}, nil
}

// PerCore returns per-core utilization in the order the OS reports cores.
// Cores absent from the first snapshot read as 0.
func (c *CPUCollector) PerCore() ([]float64, error) {
	cores, err := c.src.Times(true)
	if err != nil {
		return nil, apperrors.New(apperrors.SourceCPU, apperrors.KindReadFailed,
			"unable to read per-cpu usage", err)
	}
	out := make([]float64, len(cores))
	for i, cur := range cores {
		if i >= len(c.prevCore) {
			continue
		}
		out[i] = busyPercent(c.prevCore[i], cur)
	}
	return out, nil
}

// Total returns whole-machine utilization capped to [0, 100].
func (c *CPUCollector) Total() (float64, error) {
	all, err := c.src.Times(false)
	if err != nil {
		return 0, apperrors.New(apperrors.SourceCPU, apperrors.KindReadFailed,
			"unable to determine cpu usage percent", err)
	}
	if len(all) == 0 {
		return 0, apperrors.New(apperrors.SourceCPU, apperrors.KindReadFailed,
			"no aggregate cpu counters reported", nil)
	}
	pct := busyPercent(c.prevAll, all[0])
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return pct, nil
}

func busyPercent(prev, cur cpu.TimesStat) float64 {
	dt := cur.Total() - prev.Total()
	if dt <= 0 {
		return 0
	}
	di := (cur.Idle + cur.Iowait) - (prev.Idle + prev.Iowait)
	return 100 * (1 - di/dt)
}
