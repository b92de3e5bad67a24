// Package sampler reads CPU, memory and battery figures from the host.
//
// Each sampler reads through a small source interface so the platform
// providers (gopsutil, distatus/battery) can be replaced in tests.
package sampler

import (
	"github.com/distatus/battery"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/Dicklesworthstone/statline/internal/apperrors"
	"github.com/Dicklesworthstone/statline/internal/model"
)

// CPUSource returns cumulative CPU time counters, per core when percpu is
// set, otherwise a single aggregate entry.
type CPUSource interface {
	Times(percpu bool) ([]cpu.TimesStat, error)
}

// MemorySource returns current virtual memory statistics.
type MemorySource interface {
	VirtualMemory() (*mem.VirtualMemoryStat, error)
}

// BatterySource enumerates the batteries known to the platform. Errors must
// be *apperrors.SampleError so callers can tell missing hardware from
// broken providers.
type BatterySource interface {
	Batteries() ([]model.BatteryReading, error)
}

// SystemCPU reads /proc/stat (or the platform equivalent) via gopsutil.
type SystemCPU struct{}

func (SystemCPU) Times(percpu bool) ([]cpu.TimesStat, error) { return cpu.Times(percpu) }

// SystemMemory reads virtual memory statistics via gopsutil.
type SystemMemory struct{}

func (SystemMemory) VirtualMemory() (*mem.VirtualMemoryStat, error) { return mem.VirtualMemory() }

// SystemBatteries reads batteries via distatus/battery.
type SystemBatteries struct {
	// getAll defaults to battery.GetAll.
	getAll func() ([]*battery.Battery, error)
}

func (s SystemBatteries) Batteries() ([]model.BatteryReading, error) {
	getAll := s.getAll
	if getAll == nil {
		getAll = battery.GetAll
	}
	bats, err := getAll()
	if err != nil {
		if serr := batteryError(err); serr != nil {
			return nil, serr
		}
	}

	out := make([]model.BatteryReading, 0, len(bats))
	for _, b := range bats {
		if b == nil {
			continue
		}
		out = append(out, model.BatteryReading{
			Current: b.Current,
			Full:    b.Full,
			State:   stateName(b.State),
		})
	}
	return out, nil
}

// stateName normalises a distatus state for model.ParseBatteryState. Idle
// (macOS "charge hold", Linux "Not charging") is plugged in but neither
// charging nor full, and is reported as Unknown.
func stateName(s battery.State) string {
	switch s.Raw {
	case battery.Idle:
		return model.StateUnknown.String()
	case battery.Undefined:
		return model.StateOther.String()
	}
	return s.String()
}

// batteryError maps distatus/battery errors onto a *apperrors.SampleError.
// It returns nil when err only carries partial failures of fields this
// program never reads.
func batteryError(err error) error {
	fail := func(kind apperrors.Kind, cause error) error {
		return apperrors.New(apperrors.SourceBattery, kind, batteryMsg(kind), cause)
	}
	switch e := err.(type) {
	case battery.ErrFatal:
		if e.Err == battery.ErrNotFound {
			return fail(apperrors.KindNotFound, nil)
		}
		return fail(apperrors.KindConstructionFailed, e)
	case battery.Errors:
		if len(e) == 0 {
			return nil
		}
		// Only the first battery is ever displayed.
		switch first := e[0].(type) {
		case nil:
			return nil
		case battery.ErrPartial:
			if first.State != nil || first.Current != nil || first.Full != nil {
				return fail(apperrors.KindReadFailed, first)
			}
			return nil
		default:
			return fail(apperrors.KindReadFailed, first)
		}
	default:
		if err == battery.ErrNotFound {
			return fail(apperrors.KindNotFound, nil)
		}
		return fail(apperrors.KindConstructionFailed, err)
	}
}

func batteryMsg(kind apperrors.Kind) string {
	switch kind {
	case apperrors.KindConstructionFailed:
		return "unable to enumerate batteries"
	case apperrors.KindNotFound:
		return "unable to find any batteries"
	default:
		return "unable to access battery information"
	}
}
